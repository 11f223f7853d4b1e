package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ngo-animal-rescue/internal/platform/validation"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test sources
// -------------------------

type sourceFunc func(ctx context.Context) ([]Animal, error)

func (f sourceFunc) List(ctx context.Context) ([]Animal, error) { return f(ctx) }

var errRemoteDown = errors.New("remote: connection refused")

func failingSource() Source {
	return sourceFunc(func(ctx context.Context) ([]Animal, error) {
		return nil, errRemoteDown
	})
}

func staticSource(items ...Animal) Source {
	return sourceFunc(func(ctx context.Context) ([]Animal, error) {
		return items, nil
	})
}

type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *outcomeRecorder) CatalogLoad(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *outcomeRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.outcomes...)
}

func newTestCatalog(t *testing.T, primary Source, opts Options) *Catalog {
	t.Helper()

	c := New(primary, opts)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	var n atomic.Int64
	c.newID = func() string {
		return "new-" + string(rune('a'+n.Add(1)-1))
	}
	return c
}

func ids(list []Animal) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

// -------------------------
// Load
// -------------------------

func TestLoad_RemoteSuccess(t *testing.T) {
	rec := &outcomeRecorder{}
	c := newTestCatalog(t, staticSource(Animal{ID: "a1", Name: "Toby", Species: SpeciesDog}), Options{Recorder: rec})

	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, []string{"a1"}, ids(c.List()))
	assert.Equal(t, State{Status: StatusReady}, c.State())
	assert.Equal(t, []string{"remote"}, rec.all())
}

func TestLoad_FallsBackToFixtures(t *testing.T) {
	rec := &outcomeRecorder{}
	c := newTestCatalog(t, failingSource(), Options{Recorder: rec})

	require.NoError(t, c.Load(context.Background()))

	st := c.State()
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
	assert.Equal(t, StatusReady, st.Status)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(c.List()))
	assert.Equal(t, []string{"fallback"}, rec.all())
}

func TestLoad_FallbackWaitsDelay(t *testing.T) {
	c := newTestCatalog(t, failingSource(), Options{FallbackDelay: 30 * time.Millisecond})

	start := time.Now()
	require.NoError(t, c.Load(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestLoad_NilPrimaryUsesFallback(t *testing.T) {
	c := newTestCatalog(t, nil, Options{})

	require.NoError(t, c.Load(context.Background()))
	assert.Len(t, c.List(), 5)
}

func TestLoad_BothFailKeepsPreviousList(t *testing.T) {
	rec := &outcomeRecorder{}
	primaryUp := true
	primary := sourceFunc(func(ctx context.Context) ([]Animal, error) {
		if primaryUp {
			return []Animal{{ID: "a1", Name: "Toby"}}, nil
		}
		return nil, errRemoteDown
	})
	c := newTestCatalog(t, primary, Options{
		Fallback: sourceFunc(func(ctx context.Context) ([]Animal, error) {
			return nil, errors.New("fixtures: unavailable")
		}),
		Recorder: rec,
	})

	require.NoError(t, c.Load(context.Background()))

	primaryUp = false
	err := c.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoadFailed)

	st := c.State()
	assert.Equal(t, StatusError, st.Status)
	assert.False(t, st.Loading)
	assert.Equal(t, LoadErrorMessage, st.Error)
	assert.Equal(t, []string{"a1"}, ids(c.List()))
	assert.Equal(t, []string{"remote", "error"}, rec.all())
}

func TestLoad_SupersededResultIsDiscarded(t *testing.T) {
	rec := &outcomeRecorder{}
	release := make(chan struct{})
	started := make(chan struct{})

	var calls atomic.Int32
	primary := sourceFunc(func(ctx context.Context) ([]Animal, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return []Animal{{ID: "stale", Name: "Old"}}, nil
		}
		return []Animal{{ID: "fresh", Name: "New"}}, nil
	})
	c := newTestCatalog(t, primary, Options{Recorder: rec})

	firstErr := make(chan error, 1)
	go func() { firstErr <- c.Load(context.Background()) }()
	<-started

	require.NoError(t, c.Load(context.Background()))
	close(release)

	assert.ErrorIs(t, <-firstErr, ErrSuperseded)
	assert.Equal(t, []string{"fresh"}, ids(c.List()))
	assert.Equal(t, StatusReady, c.State().Status)
	assert.Equal(t, []string{"remote", "superseded"}, rec.all())
}

func TestLoad_CancelDuringFallbackDelay(t *testing.T) {
	rec := &outcomeRecorder{}
	c := newTestCatalog(t, failingSource(), Options{FallbackDelay: time.Hour, Recorder: rec})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Load(ctx) }()

	require.Eventually(t, func() bool { return c.State().Loading }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Load did not return after cancel")
	}

	assert.Equal(t, State{Status: StatusIdle}, c.State())
	assert.Empty(t, c.List())
	assert.Equal(t, []string{"cancelled"}, rec.all())
}

func TestLoad_CancelAfterDataKeepsReady(t *testing.T) {
	var up atomic.Bool
	up.Store(true)
	primary := sourceFunc(func(ctx context.Context) ([]Animal, error) {
		if up.Load() {
			return []Animal{{ID: "a1", Name: "Toby"}}, nil
		}
		<-ctx.Done()
		return nil, ctx.Err()
	})
	c := newTestCatalog(t, primary, Options{})
	require.NoError(t, c.Load(context.Background()))

	up.Store(false)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := c.Load(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StatusReady, c.State().Status)
	assert.Equal(t, []string{"a1"}, ids(c.List()))
}

func TestLoad_DoesNotAliasSourceSlice(t *testing.T) {
	items := []Animal{{ID: "a1", Name: "Toby", MedicalRecords: []MedicalRecord{{Treatment: "x"}}}}
	c := newTestCatalog(t, staticSource(items...), Options{})
	require.NoError(t, c.Load(context.Background()))

	items[0].Name = "mutated"
	items[0].MedicalRecords[0].Treatment = "mutated"

	got, ok := c.GetByID("a1")
	require.True(t, ok)
	assert.Equal(t, "Toby", got.Name)
	assert.Equal(t, "x", got.MedicalRecords[0].Treatment)
}

// -------------------------
// Filter
// -------------------------

func TestFilter_Scenario(t *testing.T) {
	c := newTestCatalog(t, failingSource(), Options{})
	require.NoError(t, c.Load(context.Background()))

	got := c.Filter(Criteria{Search: "luna", Species: SpeciesCat, Status: StatusAvailable})
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestFilterAnimals(t *testing.T) {
	all := Fixtures()

	cases := []struct {
		name string
		c    Criteria
		want []string
	}{
		{name: "empty criteria keeps everything", c: Criteria{}, want: []string{"1", "2", "3", "4", "5"}},
		{name: "search is case-insensitive on name", c: Criteria{Search: "MAX"}, want: []string{"1"}},
		{name: "search matches breed", c: Criteria{Search: "retriever"}, want: []string{"1", "5"}},
		{name: "search matches description", c: Criteria{Search: "fetch"}, want: []string{"1"}},
		{name: "species exact", c: Criteria{Species: SpeciesCat}, want: []string{"2", "4"}},
		{name: "status exact", c: Criteria{Status: StatusUnderTreatment}, want: []string{"3"}},
		{name: "all three must match", c: Criteria{Search: "retriever", Species: SpeciesCat}, want: []string{}},
		{name: "status is not a substring match", c: Criteria{Status: "Adopt"}, want: []string{}},
		{name: "no matches", c: Criteria{Search: "zebra"}, want: []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(FilterAnimals(all, tc.c)))
		})
	}
}

func TestFilterAnimals_SubsetInOrderAndIdempotent(t *testing.T) {
	all := Fixtures()
	criteria := []Criteria{
		{},
		{Search: "e"},
		{Species: SpeciesDog},
		{Search: "a", Status: StatusAvailable},
		{Species: SpeciesBird},
	}

	for _, cr := range criteria {
		once := FilterAnimals(all, cr)
		twice := FilterAnimals(once, cr)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("filter not idempotent for %+v (-once +twice):\n%s", cr, diff)
		}

		// subsecuencia de la entrada, mismo orden
		j := 0
		for _, a := range all {
			if j < len(once) && once[j].ID == a.ID {
				j++
			}
		}
		assert.Equal(t, len(once), j, "not an ordered subset for %+v", cr)
	}

	if diff := cmp.Diff(all, FilterAnimals(all, Criteria{})); diff != "" {
		t.Fatalf("empty criteria changed the list (-want +got):\n%s", diff)
	}
}

// -------------------------
// Mutations
// -------------------------

func loadedCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := newTestCatalog(t, failingSource(), Options{})
	require.NoError(t, c.Load(context.Background()))
	return c
}

func TestAdd_PrependsWithIDAndCreatedAt(t *testing.T) {
	c := loadedCatalog(t)
	before := ids(c.List())

	got, err := c.Add(context.Background(), Animal{ID: "ignored", Name: "Nala", Species: SpeciesCat, Age: 1})
	require.NoError(t, err)

	assert.Equal(t, "new-a", got.ID)
	assert.Equal(t, "Nala", got.Name)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), got.CreatedAt)

	list := c.List()
	require.Len(t, list, len(before)+1)
	assert.Equal(t, got.ID, list[0].ID)
	assert.Equal(t, before, ids(list[1:]))

	second, err := c.Add(context.Background(), Animal{Name: "Kiwi", Species: SpeciesBird})
	require.NoError(t, err)
	assert.NotEqual(t, got.ID, second.ID)
	assert.Equal(t, second.ID, c.List()[0].ID)
}

func TestAdd_PartialEntityRoundTripsUnchanged(t *testing.T) {
	c := loadedCatalog(t)

	inputs := []Animal{
		{Species: SpeciesDog, Breed: "Mix"},
		{Name: " Rex ", Age: -1},
	}
	for _, in := range inputs {
		got, err := c.Add(context.Background(), in)
		require.NoError(t, err)

		stored, ok := c.GetByID(got.ID)
		require.True(t, ok)

		want := in
		want.ID = got.ID
		want.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		if diff := cmp.Diff(want, stored); diff != "" {
			t.Fatalf("stored animal mismatch (-want +got):\n%s", diff)
		}
	}
	assert.Len(t, c.List(), 7)
}

func TestValidateAnimal(t *testing.T) {
	err := ValidateAnimal(Animal{Name: " ", Species: "Fish", Age: -1})
	require.Error(t, err)

	fields, ok := validation.Fields(err)
	require.True(t, ok)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "species")
	assert.Contains(t, fields, "age")

	assert.NoError(t, ValidateAnimal(Animal{Name: "Nala", Species: SpeciesCat}))
}

func TestAdd_DefaultIDsAreUnique(t *testing.T) {
	c := New(nil, Options{})

	a, err := c.Add(context.Background(), Animal{Name: "A"})
	require.NoError(t, err)
	b, err := c.Add(context.Background(), Animal{Name: "B"})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestUpdate_ReturnsMergedAnimal(t *testing.T) {
	c := loadedCatalog(t)

	name := "Lunita"
	status := StatusAdopted
	got, err := c.Update(context.Background(), "2", Patch{Name: &name, AdoptionStatus: &status})
	require.NoError(t, err)

	// el resultado es el registro post-merge, no el patch
	assert.Equal(t, "2", got.ID)
	assert.Equal(t, "Lunita", got.Name)
	assert.Equal(t, StatusAdopted, got.AdoptionStatus)
	assert.Equal(t, "Siamese", got.Breed)
	assert.Equal(t, SpeciesCat, got.Species)

	stored, ok := c.GetByID("2")
	require.True(t, ok)
	assert.Equal(t, got, stored)

	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(c.List()))
}

func TestUpdate_UnknownIDChangesNothing(t *testing.T) {
	c := loadedCatalog(t)
	before := c.List()

	name := "Ghost"
	_, err := c.Update(context.Background(), "nope", Patch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	if diff := cmp.Diff(before, c.List()); diff != "" {
		t.Fatalf("list changed (-before +after):\n%s", diff)
	}
}

func TestUpdate_InvalidPatchRejected(t *testing.T) {
	c := loadedCatalog(t)

	age := -3
	_, err := c.Update(context.Background(), "1", Patch{Age: &age})
	_, ok := validation.Fields(err)
	require.True(t, ok)

	got, _ := c.GetByID("1")
	assert.Equal(t, 3, got.Age)
}

func TestRemove_Idempotent(t *testing.T) {
	c := loadedCatalog(t)

	require.NoError(t, c.Remove(context.Background(), "3"))
	assert.Equal(t, []string{"1", "2", "4", "5"}, ids(c.List()))

	_, ok := c.GetByID("3")
	assert.False(t, ok)

	require.NoError(t, c.Remove(context.Background(), "3"))
	require.NoError(t, c.Remove(context.Background(), "missing"))
	assert.Len(t, c.List(), 4)
}

func TestList_ReturnsCopies(t *testing.T) {
	c := loadedCatalog(t)

	list := c.List()
	list[0].Name = "changed"
	list[0].MedicalRecords[0].Notes = "changed"

	got, _ := c.GetByID(list[0].ID)
	assert.Equal(t, "Max", got.Name)
	assert.NotEqual(t, "changed", got.MedicalRecords[0].Notes)
}

func TestSubscribe_NotifiedOnChanges(t *testing.T) {
	c := newTestCatalog(t, failingSource(), Options{})

	var n atomic.Int32
	unsub := c.Subscribe(func() { n.Add(1) })

	require.NoError(t, c.Load(context.Background())) // loading + ready
	assert.Equal(t, int32(2), n.Load())

	_, err := c.Add(context.Background(), Animal{Name: "Nala"})
	require.NoError(t, err)
	assert.Equal(t, int32(3), n.Load())

	unsub()
	unsub()
	require.NoError(t, c.Remove(context.Background(), "1"))
	assert.Equal(t, int32(3), n.Load())
}
