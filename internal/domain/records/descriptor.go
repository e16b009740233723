package records

import (
	"context"

	"vet-clinic/internal/domain/access"
)

// UniqueRule declara un campo que no puede repetirse (sin distinguir mayúsculas).
type UniqueRule[T any] struct {
	Field   string
	Message string
	Value   func(T) string
}

// Descriptor describe una entidad para el flujo CRUD genérico.
type Descriptor[T any] struct {
	// Kind es el segmento de URL del listado ("clients"); Noun el singular ("client").
	Kind       string
	Noun       string
	Capability access.Capability

	ID     func(T) string
	WithID func(T, string) T
	Label  func(T) string

	// Normalize recorta espacios y aplica valores por defecto antes de validar.
	Normalize func(T) T
	// Messages reemplaza el texto de validación por campo o campo.regla.
	Messages map[string]string
	// Check aplica reglas que cruzan registros (por ejemplo referencias).
	Check  func(ctx context.Context, v T) (FieldErrors, error)
	Unique []UniqueRule[T]

	SearchFields func(T) []string
	Less         func(a, b T) bool
}

// Existence lo cumple cualquier Service y sirve para validar referencias.
type Existence interface {
	Exists(ctx context.Context, id string) (bool, error)
}
