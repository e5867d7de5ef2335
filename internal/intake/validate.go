package intake

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

// FieldError describes why one field was rejected
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned before any collaborator call when the form
// input is incomplete or malformed
type ValidationError struct {
	Form   string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, " ")
}

// Validate checks values against the field definitions of a form
func Validate(form string, fields []Field, values Values) error {
	var errs []FieldError
	for _, field := range fields {
		v := values[field.Name]
		if strings.TrimSpace(v) == "" {
			if field.Required {
				errs = append(errs, FieldError{Field: field.Name, Message: fmt.Sprintf("%s is required.", field.Label)})
			}
			continue
		}

		switch field.Kind {
		case KindEmail:
			if !isEmail(v) {
				errs = append(errs, FieldError{Field: field.Name, Message: fmt.Sprintf("%s must be a valid email address.", field.Label)})
			}
		case KindURL:
			if !isHTTPURL(v) {
				errs = append(errs, FieldError{Field: field.Name, Message: fmt.Sprintf("%s must be a valid URL.", field.Label)})
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Form: form, Fields: errs}
	}
	return nil
}

func isEmail(v string) bool {
	v = strings.TrimSpace(v)
	addr, err := mail.ParseAddress(v)
	return err == nil && addr.Address == v
}

func isHTTPURL(v string) bool {
	u, err := url.ParseRequestURI(strings.TrimSpace(v))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
