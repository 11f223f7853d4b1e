package incidents

import "context"

type Repository interface {
	Create(ctx context.Context, in Incident) error
	Update(ctx context.Context, in Incident) error
	GetByID(ctx context.Context, id string) (Incident, error)
	List(ctx context.Context) ([]Incident, error)
}

// Dispatcher reenvía el reporte al backend de la ONG. Devuelve el ID remoto si lo hay.
type Dispatcher interface {
	Dispatch(ctx context.Context, r Report) (remoteID string, err error)
}
