package heats

import "context"

type Repository interface {
	Create(ctx context.Context, c HeatCycle) error
	Update(ctx context.Context, c HeatCycle) error
	GetByID(ctx context.Context, id string) (HeatCycle, error)
	Delete(ctx context.Context, id string) error
	// ListByDog devuelve los ciclos del perro ordenados por StartDate ascendente.
	ListByDog(ctx context.Context, dogID string) ([]HeatCycle, error)
}
