package records

import "context"

// Repository es la persistencia de una entidad. GetByID, Update y Delete
// devuelven ErrNotFound; Create y Update devuelven *ConflictError ante un
// índice único violado.
type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, v T) error
	Update(ctx context.Context, v T) error
	Delete(ctx context.Context, id string) error
}
