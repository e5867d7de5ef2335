package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
		values Values
		want   []FieldError
	}{
		{
			name:   "valid login",
			fields: LoginFields,
			values: Values{"email": "you@agency.com", "password": "x"},
		},
		{
			name:   "blank is missing",
			fields: LoginFields,
			values: Values{"email": "   ", "password": ""},
			want: []FieldError{
				{Field: "email", Message: "Email is required."},
				{Field: "password", Message: "Password is required."},
			},
		},
		{
			name:   "bad email",
			fields: LoginFields,
			values: Values{"email": "not-an-email", "password": "x"},
			want:   []FieldError{{Field: "email", Message: "Email must be a valid email address."}},
		},
		{
			name:   "display name form is not a bare address",
			fields: LoginFields,
			values: Values{"email": "Jordan <you@agency.com>", "password": "x"},
			want:   []FieldError{{Field: "email", Message: "Email must be a valid email address."}},
		},
		{
			name:   "relative url",
			fields: []Field{{Name: "calendly_url", Label: "Calendly URL", Kind: KindURL, Required: true}},
			values: Values{"calendly_url": "calendly.com/acme"},
			want:   []FieldError{{Field: "calendly_url", Message: "Calendly URL must be a valid URL."}},
		},
		{
			name:   "non http scheme",
			fields: []Field{{Name: "calendly_url", Label: "Calendly URL", Kind: KindURL, Required: true}},
			values: Values{"calendly_url": "ftp://calendly.com/acme"},
			want:   []FieldError{{Field: "calendly_url", Message: "Calendly URL must be a valid URL."}},
		},
		{
			name:   "optional blank is fine",
			fields: []Field{{Name: "note", Label: "Note", Kind: KindURL}},
			values: Values{"note": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate("test", tt.fields, tt.values)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "test", verr.Form)
			assert.Equal(t, tt.want, verr.Fields)
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "a", Message: "A is required."},
		{Field: "b", Message: "B is required."},
	}}
	assert.Equal(t, "A is required. B is required.", err.Error())
}
