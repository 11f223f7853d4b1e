package donations

import "context"

type Repository interface {
	Create(ctx context.Context, d Donation) error
	List(ctx context.Context) ([]Donation, error)
}
