package adoptions

import "context"

type Repository interface {
	Create(ctx context.Context, a Application) error
	Update(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	List(ctx context.Context) ([]Application, error)
	ListByAnimal(ctx context.Context, animalID string) ([]Application, error)
}
