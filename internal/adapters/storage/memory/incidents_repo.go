package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"ngo-animal-rescue/internal/domain/incidents"
)

type incidentsRepo struct {
	mu   sync.RWMutex
	byID map[string]incidents.Incident
}

func NewIncidentsRepo(seed ...incidents.Incident) incidents.Repository {
	r := &incidentsRepo{
		byID: make(map[string]incidents.Incident, len(seed)),
	}
	for _, in := range seed {
		r.byID[in.ID] = cloneIncident(in)
	}
	return r
}

func (r *incidentsRepo) Create(ctx context.Context, in incidents.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(in.ID) == "" {
		return errors.New("incident id required")
	}
	if _, exists := r.byID[in.ID]; exists {
		return errors.New("incident already exists")
	}
	r.byID[in.ID] = cloneIncident(in)
	return nil
}

func (r *incidentsRepo) Update(ctx context.Context, in incidents.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[in.ID]; !exists {
		return ErrNotFound
	}
	r.byID[in.ID] = cloneIncident(in)
	return nil
}

func (r *incidentsRepo) GetByID(ctx context.Context, id string) (incidents.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	in, ok := r.byID[id]
	if !ok {
		return incidents.Incident{}, ErrNotFound
	}
	return cloneIncident(in), nil
}

func (r *incidentsRepo) List(ctx context.Context) ([]incidents.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]incidents.Incident, 0, len(r.byID))
	for _, in := range r.byID {
		out = append(out, cloneIncident(in))
	}
	return out, nil
}

func cloneIncident(in incidents.Incident) incidents.Incident {
	if in.Location != nil {
		loc := *in.Location
		in.Location = &loc
	}
	if in.Images != nil {
		in.Images = append([]string(nil), in.Images...)
	}
	return in
}
