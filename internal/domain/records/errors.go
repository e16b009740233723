package records

import (
	"errors"
	"sort"
	"strings"
)

var ErrNotFound = errors.New("record not found")

// FieldErrors asocia un campo de formulario con su primer error.
type FieldErrors map[string]string

func (f FieldErrors) Add(field, msg string) {
	if _, ok := f[field]; ok {
		return
	}
	f[field] = msg
}

func (f FieldErrors) Merge(other FieldErrors) {
	for k, v := range other {
		f.Add(k, v)
	}
}

func (f FieldErrors) Empty() bool { return len(f) == 0 }

// ValidationError agrupa los errores por campo de una escritura rechazada.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

// ConflictError lo devuelven los stores cuando se viola un índice único.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return "unique constraint violated: " + e.Field
}

// AsValidation extrae los errores por campo, si los hay.
func AsValidation(err error) (FieldErrors, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}
