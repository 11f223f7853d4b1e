package incidents

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"ngo-animal-rescue/internal/platform/httpclient"
	"ngo-animal-rescue/internal/platform/logger"
	"ngo-animal-rescue/internal/platform/validation"

	"github.com/google/uuid"
)

const (
	minDescriptionLen = 10

	MsgDispatchFailed = "Failed to report emergency. Please try again."
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrDispatchUnavailable = errors.New("emergency dispatch not configured")
)

// DispatchError: el backend rechazó o no recibió el reporte. Message es para el usuario.
type DispatchError struct {
	Message string
	Err     error
}

func (e *DispatchError) Error() string { return e.Message }

func (e *DispatchError) Unwrap() error { return e.Err }

type Service struct {
	repo       Repository
	dispatcher Dispatcher
	log        logger.Logger
	rec        validation.Recorder
	now        func() time.Time
}

func NewService(repo Repository, d Dispatcher, log logger.Logger, rec validation.Recorder) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:       repo,
		dispatcher: d,
		log:        log.With(map[string]any{"component": "incidents"}),
		rec:        rec,
		now:        time.Now,
	}
}

func (r Report) Validate() error {
	errs := validation.Errors{}

	if r.Location == nil {
		errs.Add("location", "Location is required to report an emergency")
	} else {
		lat, lng := r.Location.Lat, r.Location.Lng
		errs.Check(!math.IsNaN(lat) && lat >= -90 && lat <= 90, "location", "Latitude must be between -90 and 90")
		errs.Check(!math.IsNaN(lng) && lng >= -180 && lng <= 180, "location", "Longitude must be between -180 and 180")
	}

	d := r.Description
	if errs.Required("description", d.MainDescription, "Description is required") {
		errs.MinLen("description", d.MainDescription, minDescriptionLen, "Please provide more details")
	}
	if errs.Required("animalType", string(d.AnimalType), "Animal type is required") {
		errs.Check(d.AnimalType.Valid(), "animalType", "Animal type is required")
	}
	if errs.Required("urgencyLevel", string(d.UrgencyLevel), "Urgency level is required") {
		errs.Check(d.UrgencyLevel.Valid(), "urgencyLevel", "Urgency level is required")
	}
	errs.Check(d.AnimalCount > 0, "animalCount", "Number must be positive")

	return errs.Err()
}

// Report valida, despacha al backend y sólo si éste acepta lo registra localmente.
func (s *Service) Report(ctx context.Context, r Report) (Incident, error) {
	r.Description.MainDescription = strings.TrimSpace(r.Description.MainDescription)
	r.Description.AnimalType = AnimalType(strings.ToLower(strings.TrimSpace(string(r.Description.AnimalType))))
	r.Description.UrgencyLevel = Urgency(strings.ToLower(strings.TrimSpace(string(r.Description.UrgencyLevel))))

	if err := r.Validate(); err != nil {
		return Incident{}, validation.Reject(s.rec, "emergency", err)
	}
	if s.dispatcher == nil {
		return Incident{}, ErrDispatchUnavailable
	}

	remoteID, err := s.dispatcher.Dispatch(ctx, r)
	if err != nil {
		s.log.Error("dispatching emergency failed", map[string]any{
			"error":   err,
			"urgency": string(r.Description.UrgencyLevel),
		})
		return Incident{}, &DispatchError{
			Message: httpclient.RemoteMessage(err, MsgDispatchFailed),
			Err:     err,
		}
	}

	now := s.now()
	loc := *r.Location
	in := Incident{
		ID:          uuid.NewString(),
		RemoteID:    remoteID,
		Location:    &loc,
		Description: r.Description,
		Status:      StatusReported,
		ReportedAt:  now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, in); err != nil {
		// ya está en el backend; sólo falla la copia local
		s.log.Warn("recording dispatched emergency failed", map[string]any{"error": err, "remote_id": remoteID})
		return in, nil
	}

	s.log.Info("emergency reported", map[string]any{
		"id":        in.ID,
		"remote_id": remoteID,
		"urgency":   string(r.Description.UrgencyLevel),
	})
	return in, nil
}

// List: más recientes primero. status vacío = todos.
func (s *Service) List(ctx context.Context, status Status) ([]Incident, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidInput
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Incident, 0, len(items))
	for _, in := range items {
		if status == "" || in.Status == status {
			out = append(out, in)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReportedAt.After(out[j].ReportedAt)
	})
	return out, nil
}

// Open cuenta los incidentes no resueltos.
func (s *Service) Open(ctx context.Context) (int, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, in := range items {
		if in.Status != StatusResolved {
			n++
		}
	}
	return n, nil
}

// UpdateStatus lo usa el admin. Cualquier estado válido está permitido (se puede reabrir).
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status, notes string) (Incident, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Incident{}, ErrInvalidInput
	}
	if !status.Valid() {
		errs := validation.Errors{}
		errs.Add("status", "Status must be Reported, Under Investigation or Resolved")
		return Incident{}, errs
	}

	in, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Incident{}, ErrNotFound
	}

	if in.Status == status && strings.TrimSpace(notes) == "" {
		return in, nil
	}

	in.Status = status
	in.UpdatedAt = s.now()
	if n := strings.TrimSpace(notes); n != "" {
		in.Notes = n
	}
	if err := s.repo.Update(ctx, in); err != nil {
		return Incident{}, err
	}
	return in, nil
}
