package adoptions

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"time"

	"ngo-animal-rescue/internal/domain/catalog"
	"ngo-animal-rescue/internal/platform/validation"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
)

// AnimalLookup es la parte del catálogo que necesita una solicitud.
type AnimalLookup interface {
	GetByID(id string) (catalog.Animal, bool)
}

type Service struct {
	repo    Repository
	animals AnimalLookup
	rec     validation.Recorder
	now     func() time.Time
}

func NewService(repo Repository, animals AnimalLookup, rec validation.Recorder) *Service {
	return &Service{
		repo:    repo,
		animals: animals,
		rec:     rec,
		now:     time.Now,
	}
}

func (f Form) Validate() error {
	errs := validation.Errors{}
	errs.Required("firstName", f.FirstName, "First name is required")
	errs.Required("lastName", f.LastName, "Last name is required")
	errs.Email("email", f.Email, "Email is required", "Invalid email format")
	errs.Required("phone", f.Phone, "Phone number is required")
	errs.Required("address", f.Address, "Address is required")
	errs.Required("city", f.City, "City is required")
	errs.Required("state", f.State, "State is required")
	errs.Required("zipCode", f.ZipCode, "Zip code is required")

	if errs.Required("housingType", f.HousingType, "Housing type is required") {
		errs.Check(slices.Contains(housingTypes, norm(f.HousingType)), "housingType", "Housing type is required")
	}
	if f.HasOwnedPetsBefore {
		errs.Required("currentPets", f.CurrentPets, "Please provide details about your current pets")
	}
	if f.HasChildren {
		errs.Required("childrenAges", f.ChildrenAges, "Please provide ages of children")
	}

	errs.Required("workSchedule", f.WorkSchedule, "Work schedule is required")
	if errs.Required("activityLevel", f.ActivityLevel, "Activity level is required") {
		errs.Check(slices.Contains(activityLevels, norm(f.ActivityLevel)), "activityLevel", "Activity level is required")
	}
	errs.Required("whyAdopt", f.WhyAdopt, "Please tell us why you want to adopt")
	errs.Check(f.AgreeTerms, "agreeTerms", "You must agree to the terms")
	return errs.Err()
}

// Submit valida el formulario y que el animal exista en el catálogo.
func (s *Service) Submit(ctx context.Context, f Form) (Application, error) {
	err := f.Validate()

	animalID := strings.TrimSpace(f.AnimalID)
	if err == nil {
		errs := validation.Errors{}
		if errs.Required("animalId", animalID, "Please select an animal") {
			a, ok := s.lookup(animalID)
			switch {
			case !ok:
				errs.Add("animalId", "Selected animal was not found")
			case a.AdoptionStatus == catalog.StatusAdopted:
				errs.Add("animalId", "This animal has already been adopted")
			}
		}
		err = errs.Err()
	}
	if err != nil {
		return Application{}, validation.Reject(s.rec, "adoption", err)
	}

	now := s.now()
	app := Application{
		ID:       uuid.NewString(),
		AnimalID: animalID,
		Applicant: Applicant{
			FirstName: strings.TrimSpace(f.FirstName),
			LastName:  strings.TrimSpace(f.LastName),
			Email:     strings.TrimSpace(f.Email),
			Phone:     strings.TrimSpace(f.Phone),
			Address:   strings.TrimSpace(f.Address),
			City:      strings.TrimSpace(f.City),
			State:     strings.TrimSpace(f.State),
			ZipCode:   strings.TrimSpace(f.ZipCode),
		},
		HousingType:        norm(f.HousingType),
		HasOwnedPetsBefore: f.HasOwnedPetsBefore,
		HasChildren:        f.HasChildren,
		WorkSchedule:       strings.TrimSpace(f.WorkSchedule),
		ActivityLevel:      norm(f.ActivityLevel),
		WhyAdopt:           strings.TrimSpace(f.WhyAdopt),
		Status:             StatusPending,
		AppliedAt:          now,
		UpdatedAt:          now,
	}
	if f.HasOwnedPetsBefore {
		app.CurrentPets = strings.TrimSpace(f.CurrentPets)
	}
	if f.HasChildren {
		app.ChildrenAges = strings.TrimSpace(f.ChildrenAges)
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Application{}, ErrInvalidInput
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, ErrNotFound
	}
	return a, nil
}

// List devuelve las solicitudes, más recientes primero. status vacío = todas.
func (s *Service) List(ctx context.Context, status Status) ([]Application, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidInput
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Application, 0, len(items))
	for _, a := range items {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]Application, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, ErrInvalidInput
	}
	items, err := s.repo.ListByAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	return items, nil
}

// StartReview: Pending -> Reviewing. Idempotente.
func (s *Service) StartReview(ctx context.Context, id string) (Application, error) {
	return s.transition(ctx, id, StatusReviewing, "")
}

// Approve: Pending|Reviewing -> Approved. Idempotente.
func (s *Service) Approve(ctx context.Context, id, notes string) (Application, error) {
	return s.transition(ctx, id, StatusApproved, notes)
}

// Reject: Pending|Reviewing -> Rejected. Idempotente.
func (s *Service) Reject(ctx context.Context, id, notes string) (Application, error) {
	return s.transition(ctx, id, StatusRejected, notes)
}

func (s *Service) transition(ctx context.Context, id string, to Status, notes string) (Application, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}

	// Idempotente
	if a.Status == to {
		return a, nil
	}
	if !a.Status.Open() {
		return Application{}, ErrBadState
	}
	if to == StatusReviewing && a.Status != StatusPending {
		return Application{}, ErrBadState
	}

	now := s.now()
	a.Status = to
	a.UpdatedAt = now
	if to == StatusApproved || to == StatusRejected {
		a.DecidedAt = &now
	}
	if n := strings.TrimSpace(notes); n != "" {
		a.Notes = n
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

func (s *Service) lookup(id string) (catalog.Animal, bool) {
	if s.animals == nil {
		return catalog.Animal{}, false
	}
	return s.animals.GetByID(id)
}

func sortNewestFirst(items []Application) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AppliedAt.After(items[j].AppliedAt)
	})
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
