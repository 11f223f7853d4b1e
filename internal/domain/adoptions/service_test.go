package adoptions

import (
	"context"
	"errors"
	"testing"
	"time"

	"ngo-animal-rescue/internal/domain/catalog"
	"ngo-animal-rescue/internal/platform/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Application
}

func newTestRepo(seed ...Application) *testRepo {
	r := &testRepo{byID: map[string]Application{}}
	for _, a := range seed {
		r.byID[a.ID] = a
	}
	return r
}

func (r *testRepo) Create(ctx context.Context, a Application) error {
	if a.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Application) error {
	if _, ok := r.byID[a.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Application, error) {
	a, ok := r.byID[id]
	if !ok {
		return Application{}, errRepoNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context) ([]Application, error) {
	out := make([]Application, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

func (r *testRepo) ListByAnimal(ctx context.Context, animalID string) ([]Application, error) {
	out := make([]Application, 0)
	for _, a := range r.byID {
		if a.AnimalID == animalID {
			out = append(out, a)
		}
	}
	return out, nil
}

type testAnimals map[string]catalog.Animal

func (t testAnimals) GetByID(id string) (catalog.Animal, bool) {
	a, ok := t[id]
	return a, ok
}

func fixedNow() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

func newTestService(seed ...Application) (*Service, *testRepo) {
	repo := newTestRepo(seed...)
	animals := testAnimals{
		"2": {ID: "2", Name: "Luna", AdoptionStatus: catalog.StatusAvailable},
		"9": {ID: "9", Name: "Old", AdoptionStatus: catalog.StatusAdopted},
	}
	svc := NewService(repo, animals, nil)
	svc.now = fixedNow
	return svc, repo
}

func validForm() Form {
	return Form{
		AnimalID:      "2",
		FirstName:     "Ana",
		LastName:      "Pérez",
		Email:         "ana@example.com",
		Phone:         "555-000-1111",
		Address:       "1 Main St",
		City:          "Lima",
		State:         "LIM",
		ZipCode:       "15001",
		HousingType:   "House",
		WorkSchedule:  "9-5",
		ActivityLevel: "moderate",
		WhyAdopt:      "We have a big yard",
		AgreeTerms:    true,
	}
}

func TestSubmit_CreatesPendingApplication(t *testing.T) {
	svc, repo := newTestService()

	app, err := svc.Submit(context.Background(), validForm())
	require.NoError(t, err)

	assert.NotEmpty(t, app.ID)
	assert.Equal(t, StatusPending, app.Status)
	assert.Equal(t, "2", app.AnimalID)
	assert.Equal(t, "house", app.HousingType)
	assert.Equal(t, fixedNow(), app.AppliedAt)
	assert.Nil(t, app.DecidedAt)

	stored, err := repo.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, app, stored)
}

func TestForm_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(f *Form)
		field  string
		msg    string
	}{
		{"first name", func(f *Form) { f.FirstName = "" }, "firstName", "First name is required"},
		{"email format", func(f *Form) { f.Email = "ana" }, "email", "Invalid email format"},
		{"zip", func(f *Form) { f.ZipCode = " " }, "zipCode", "Zip code is required"},
		{"housing unknown", func(f *Form) { f.HousingType = "castle" }, "housingType", "Housing type is required"},
		{"pets details when owned before", func(f *Form) { f.HasOwnedPetsBefore = true }, "currentPets", "Please provide details about your current pets"},
		{"children ages when has children", func(f *Form) { f.HasChildren = true }, "childrenAges", "Please provide ages of children"},
		{"activity level", func(f *Form) { f.ActivityLevel = "" }, "activityLevel", "Activity level is required"},
		{"why adopt", func(f *Form) { f.WhyAdopt = "" }, "whyAdopt", "Please tell us why you want to adopt"},
		{"terms", func(f *Form) { f.AgreeTerms = false }, "agreeTerms", "You must agree to the terms"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm()
			tc.mutate(&f)

			fields, ok := validation.Fields(f.Validate())
			require.True(t, ok)
			assert.Equal(t, tc.msg, fields[tc.field])
			assert.Len(t, fields, 1)
		})
	}

	require.NoError(t, validForm().Validate())
}

func TestSubmit_AnimalChecks(t *testing.T) {
	cases := []struct {
		animalID string
		msg      string
	}{
		{"", "Please select an animal"},
		{"404", "Selected animal was not found"},
		{"9", "This animal has already been adopted"},
	}

	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			svc, repo := newTestService()
			f := validForm()
			f.AnimalID = tc.animalID

			_, err := svc.Submit(context.Background(), f)
			fields, ok := validation.Fields(err)
			require.True(t, ok)
			assert.Equal(t, tc.msg, fields["animalId"])
			assert.Empty(t, repo.byID)
		})
	}
}

func TestTransitions(t *testing.T) {
	svc, _ := newTestService(Seed()...)
	ctx := context.Background()

	// 1 está Pending
	app, err := svc.StartReview(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, StatusReviewing, app.Status)

	// Idempotente
	app, err = svc.StartReview(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, StatusReviewing, app.Status)

	app, err = svc.Approve(ctx, "1", "home visit ok")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, app.Status)
	assert.Equal(t, "home visit ok", app.Notes)
	require.NotNil(t, app.DecidedAt)
	assert.Equal(t, fixedNow(), *app.DecidedAt)

	// Idempotente en el estado destino
	_, err = svc.Approve(ctx, "1", "")
	require.NoError(t, err)

	// Cambiar de decisión no se permite
	_, err = svc.Reject(ctx, "1", "")
	assert.ErrorIs(t, err, ErrBadState)
	_, err = svc.StartReview(ctx, "1")
	assert.ErrorIs(t, err, ErrBadState)

	// 2 está Reviewing: puede rechazarse directo
	app, err = svc.Reject(ctx, "2", "")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, app.Status)
	assert.Equal(t, "First-time pet owner, good initial interview", app.Notes)

	_, err = svc.Approve(ctx, "missing", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_NewestFirstAndFilters(t *testing.T) {
	svc, _ := newTestService(Seed()...)
	ctx := context.Background()

	created, err := svc.Submit(ctx, validForm())
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{created.ID, "1", "2"}, []string{all[0].ID, all[1].ID, all[2].ID})

	pending, err := svc.List(ctx, StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	_, err = svc.List(ctx, "Whatever")
	assert.ErrorIs(t, err, ErrInvalidInput)

	forLuna, err := svc.ListByAnimal(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, forLuna, 2)
	assert.Equal(t, created.ID, forLuna[0].ID)
}
