package dashboard

import (
	"context"
	"errors"
	"testing"

	"ngo-animal-rescue/internal/domain/adoptions"
	"ngo-animal-rescue/internal/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAnimals []catalog.Animal

func (t testAnimals) List() []catalog.Animal { return t }
func (t testAnimals) State() catalog.State   { return catalog.State{Status: catalog.StatusReady} }

type testApps []adoptions.Application

func (t testApps) List(ctx context.Context, status adoptions.Status) ([]adoptions.Application, error) {
	return t, nil
}

type testIncidents struct {
	open int
	err  error
}

func (t testIncidents) Open(ctx context.Context) (int, error) { return t.open, t.err }

type testDonations float64

func (t testDonations) Total(ctx context.Context) (float64, error) { return float64(t), nil }

func TestSummary(t *testing.T) {
	svc := NewService(
		testAnimals(catalog.Fixtures()),
		testApps(adoptions.Seed()),
		testIncidents{open: 1},
		testDonations(400),
	)

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, sum.Animals)
	assert.Equal(t, catalog.StatusReady, sum.CatalogStatus)
	assert.Equal(t, map[catalog.AdoptionStatus]int{
		catalog.StatusAvailable:       3,
		catalog.StatusUnderTreatment:  1,
		catalog.StatusPendingAdoption: 1,
	}, sum.AnimalsBy)

	assert.Equal(t, 2, sum.Applications)
	assert.Equal(t, 1, sum.ApplicationsBy[adoptions.StatusPending])
	assert.Equal(t, 1, sum.ApplicationsBy[adoptions.StatusReviewing])
	assert.Equal(t, 1, sum.OpenIncidents)
	assert.InDelta(t, 400.0, sum.DonationTotal, 0.001)
}

func TestSummary_SourceErrorFails(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(testAnimals(nil), testApps(nil), testIncidents{err: boom}, testDonations(0))

	_, err := svc.Summary(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSummary_OptionalSources(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sum.Animals)
	assert.Empty(t, sum.ApplicationsBy)
}
