package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"ngo-animal-rescue/internal/domain/donations"
)

// donationsRepo es append-only: una donación registrada no se edita.
type donationsRepo struct {
	mu    sync.RWMutex
	items []donations.Donation
	ids   map[string]struct{}
}

func NewDonationsRepo(seed ...donations.Donation) donations.Repository {
	r := &donationsRepo{
		items: make([]donations.Donation, 0, len(seed)),
		ids:   make(map[string]struct{}, len(seed)),
	}
	for _, d := range seed {
		r.items = append(r.items, d)
		r.ids[d.ID] = struct{}{}
	}
	return r
}

func (r *donationsRepo) Create(ctx context.Context, d donations.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("donation id required")
	}
	if _, exists := r.ids[d.ID]; exists {
		return errors.New("donation already exists")
	}
	r.items = append(r.items, d)
	r.ids[d.ID] = struct{}{}
	return nil
}

func (r *donationsRepo) List(ctx context.Context) ([]donations.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]donations.Donation, len(r.items))
	copy(out, r.items)
	return out, nil
}
