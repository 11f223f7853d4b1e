package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"ngo-animal-rescue/internal/domain/adoptions"
)

type adoptionsRepo struct {
	mu   sync.RWMutex
	byID map[string]adoptions.Application
}

// NewAdoptionsRepo arranca con seed (puede venir vacío).
func NewAdoptionsRepo(seed ...adoptions.Application) adoptions.Repository {
	r := &adoptionsRepo{
		byID: make(map[string]adoptions.Application, len(seed)),
	}
	for _, a := range seed {
		r.byID[a.ID] = cloneApplication(a)
	}
	return r
}

func (r *adoptionsRepo) Create(ctx context.Context, a adoptions.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("application id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("application already exists")
	}
	r.byID[a.ID] = cloneApplication(a)
	return nil
}

func (r *adoptionsRepo) Update(ctx context.Context, a adoptions.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("application id required")
	}
	if _, exists := r.byID[a.ID]; !exists {
		return ErrNotFound
	}
	r.byID[a.ID] = cloneApplication(a)
	return nil
}

func (r *adoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return adoptions.Application{}, ErrNotFound
	}
	return cloneApplication(a), nil
}

func (r *adoptionsRepo) List(ctx context.Context) ([]adoptions.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.Application, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, cloneApplication(a))
	}
	return out, nil
}

func (r *adoptionsRepo) ListByAnimal(ctx context.Context, animalID string) ([]adoptions.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.Application, 0)
	for _, a := range r.byID {
		if a.AnimalID == animalID {
			out = append(out, cloneApplication(a))
		}
	}
	return out, nil
}

func cloneApplication(a adoptions.Application) adoptions.Application {
	if a.DecidedAt != nil {
		t := *a.DecidedAt
		a.DecidedAt = &t
	}
	return a
}
