package intake

import (
	"errors"
	"fmt"
)

var ErrUnknownField = errors.New("unknown form field")

type FieldKind int

const (
	KindText FieldKind = iota
	KindEmail
	KindPassword
	KindURL
)

// Field describes one fixed input of a form
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
}

// Values maps field names to their current input
type Values map[string]string

// Form is the per-field input held until submission or reset. The key set
// is fixed at construction. Form is not safe for concurrent use; the owning
// Controller serializes access.
type Form struct {
	fields []Field
	values Values
}

func NewForm(fields ...Field) *Form {
	f := &Form{fields: fields}
	f.Reset()
	return f
}

// Set replaces the value of one field
func (f *Form) Set(name, value string) error {
	if _, ok := f.values[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	f.values[name] = value
	return nil
}

func (f *Form) Get(name string) string {
	return f.values[name]
}

// Values returns a copy of the current input
func (f *Form) Values() Values {
	out := make(Values, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

func (f *Form) Fields() []Field {
	return f.fields
}

// Reset restores every field to the empty initial value
func (f *Form) Reset() {
	f.values = make(Values, len(f.fields))
	for _, field := range f.fields {
		f.values[field.Name] = ""
	}
}
