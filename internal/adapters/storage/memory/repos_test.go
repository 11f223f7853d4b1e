package memory

import (
	"context"
	"testing"
	"time"

	"ngo-animal-rescue/internal/domain/adoptions"
	"ngo-animal-rescue/internal/domain/donations"
	"ngo-animal-rescue/internal/domain/incidents"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdoptionsRepo_ClonesDecidedAt(t *testing.T) {
	ctx := context.Background()
	repo := NewAdoptionsRepo(adoptions.Seed()...)

	decided := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	a.DecidedAt = &decided
	require.NoError(t, repo.Update(ctx, a))

	// mutar el puntero del caller no toca lo guardado
	decided = decided.Add(time.Hour)
	got, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *got.DecidedAt)

	assert.ErrorIs(t, repo.Update(ctx, adoptions.Application{ID: "nope"}), ErrNotFound)
	assert.Error(t, repo.Create(ctx, adoptions.Application{ID: "1"}))

	byAnimal, err := repo.ListByAnimal(ctx, "4")
	require.NoError(t, err)
	assert.Len(t, byAnimal, 1)
}

func TestIncidentsRepo_ClonesLocation(t *testing.T) {
	ctx := context.Background()
	repo := NewIncidentsRepo()

	loc := &incidents.Location{Lat: 1, Lng: 2}
	require.NoError(t, repo.Create(ctx, incidents.Incident{ID: "x", Location: loc, Images: []string{"a.jpg"}}))
	loc.Lat = 50

	got, err := repo.GetByID(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Location.Lat)

	got.Images[0] = "changed.jpg"
	again, _ := repo.GetByID(ctx, "x")
	assert.Equal(t, "a.jpg", again.Images[0])

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDonationsRepo_AppendOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewDonationsRepo(donations.Seed()...)

	assert.Error(t, repo.Create(ctx, donations.Donation{ID: "1"}))
	assert.Error(t, repo.Create(ctx, donations.Donation{}))
	require.NoError(t, repo.Create(ctx, donations.Donation{ID: "4", Amount: 10}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 4)
}
