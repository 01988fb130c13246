package dogs

import "context"

type Repository interface {
	Create(ctx context.Context, d Dog) error
	Update(ctx context.Context, d Dog) error
	GetByID(ctx context.Context, id string) (Dog, error)
	List(ctx context.Context, filter ListFilter) ([]Dog, error)
}

// ListFilter: Gender vacío no filtra. Orden por nombre.
type ListFilter struct {
	Gender Gender
}
