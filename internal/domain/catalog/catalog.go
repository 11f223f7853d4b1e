package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"ngo-animal-rescue/internal/platform/logger"
	"ngo-animal-rescue/internal/platform/validation"

	"github.com/google/uuid"
)

const (
	DefaultFallbackDelay = 500 * time.Millisecond

	// LoadErrorMessage es lo que ve el usuario si fallan remoto y fallback.
	LoadErrorMessage = "Failed to fetch animals"

	ReloadInterruptedMessage = "Reload interrupted, please try again"
)

var (
	ErrNotFound   = errors.New("animal not found")
	ErrNoSource   = errors.New("catalog: no source configured")
	ErrSuperseded = errors.New("catalog: load superseded by a newer load")
	ErrLoadFailed = errors.New("catalog: primary and fallback sources failed")
)

// Source es la colección autoritativa (API remota, Postgres, fixtures).
type Source interface {
	List(ctx context.Context) ([]Animal, error)
}

// Reader es lo único que necesitan las vistas de sólo lectura.
type Reader interface {
	List() []Animal
	GetByID(id string) (Animal, bool)
	Filter(c Criteria) []Animal
	State() State
	Subscribe(fn func()) (unsubscribe func())
}

// Editor son las mutaciones del admin. Hoy son locales (se pierden al reiniciar);
// la firma con ctx/error permite cambiarlas por una implementación con backend.
type Editor interface {
	Add(ctx context.Context, a Animal) (Animal, error)
	Update(ctx context.Context, id string, p Patch) (Animal, error)
	Remove(ctx context.Context, id string) error
}

type LoadStatus string

const (
	StatusIdle    LoadStatus = "idle"
	StatusLoading LoadStatus = "loading"
	StatusReady   LoadStatus = "ready"
	StatusError   LoadStatus = "error"
)

// State es lo observable de la carga. Ready con o sin fallback se ven igual.
type State struct {
	Status  LoadStatus `json:"status"`
	Loading bool       `json:"loading"`
	Error   string     `json:"error,omitempty"`
}

// Recorder recibe el resultado de cada carga (métricas). Opcional.
type Recorder interface {
	CatalogLoad(outcome string)
}

type Options struct {
	Fallback      Source // default FixtureSource
	FallbackDelay time.Duration
	Logger        logger.Logger
	Recorder      Recorder
}

// Catalog es la lista de animales de la sesión más la vista filtrada.
// Funciona como cache local delante de la fuente autoritativa.
type Catalog struct {
	primary  Source
	fallback Source
	delay    time.Duration
	log      logger.Logger
	rec      Recorder

	now   func() time.Time
	newID func() string

	mu      sync.RWMutex
	animals []Animal
	status  LoadStatus
	errMsg  string
	gen     uint64 // generación de Load; resultados viejos se descartan

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

func New(primary Source, opts Options) *Catalog {
	fb := opts.Fallback
	if fb == nil {
		fb = FixtureSource{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Catalog{
		primary:  primary,
		fallback: fb,
		delay:    opts.FallbackDelay,
		log:      log.With(map[string]any{"component": "catalog"}),
		rec:      opts.Recorder,
		now:      time.Now,
		newID:    func() string { return uuid.Must(uuid.NewV7()).String() },
		animals:  []Animal{},
		status:   StatusIdle,
		subs:     make(map[int]func()),
	}
}

// Load hace un único intento contra la fuente primaria; si falla espera el delay
// simulado y usa el fallback. Sin reintentos.
// Si otra Load empezó después, o ctx se cancela, el resultado se descarta.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.status = StatusLoading
	c.errMsg = ""
	c.mu.Unlock()
	c.notify()

	items, err := c.fetchPrimary(ctx)
	if err == nil {
		return c.settle(ctx, gen, items, false, nil)
	}

	if ctx.Err() != nil {
		return c.abandon(gen, ctx.Err())
	}

	c.log.Info("animals collection not available, using fixtures", map[string]any{"error": err})

	if err := sleep(ctx, c.delay); err != nil {
		return c.abandon(gen, err)
	}

	items, err = c.fallback.List(ctx)
	return c.settle(ctx, gen, items, true, err)
}

func (c *Catalog) fetchPrimary(ctx context.Context) ([]Animal, error) {
	if c.primary == nil {
		return nil, ErrNoSource
	}
	return c.primary.List(ctx)
}

func (c *Catalog) settle(ctx context.Context, gen uint64, items []Animal, fallback bool, err error) error {
	if ctx.Err() != nil {
		return c.abandon(gen, ctx.Err())
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.record("superseded")
		return ErrSuperseded
	}

	if err != nil {
		c.status = StatusError
		c.errMsg = LoadErrorMessage
		c.mu.Unlock()

		c.log.Error("loading animals failed", map[string]any{"error": err})
		c.record("error")
		c.notify()
		return errors.Join(ErrLoadFailed, err)
	}

	list := make([]Animal, 0, len(items))
	for _, a := range items {
		list = append(list, a.clone())
	}
	c.animals = list
	c.status = StatusReady
	c.errMsg = ""
	c.mu.Unlock()

	if fallback {
		c.record("fallback")
	} else {
		c.record("remote")
	}
	c.notify()
	return nil
}

// abandon: nadie espera ya este resultado. Si sigue siendo la última carga,
// se vuelve al estado anterior para no dejar loading=true colgado.
func (c *Catalog) abandon(gen uint64, cause error) error {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.record("superseded")
		return ErrSuperseded
	}
	c.gen++
	if c.status == StatusLoading {
		c.status = StatusIdle
		if len(c.animals) > 0 {
			c.status = StatusReady
		}
	}
	c.mu.Unlock()

	c.record("cancelled")
	c.notify()
	return cause
}

// Add asigna ID (UUIDv7, ordenado por tiempo) y CreatedAt, y lo pone primero.
// No valida ni normaliza: el resto de los campos queda tal cual llegó.
// Sólo local: no sobrevive a un reinicio.
func (c *Catalog) Add(ctx context.Context, a Animal) (Animal, error) {
	a = a.clone()
	a.ID = c.newID()
	a.CreatedAt = c.now()

	c.mu.Lock()
	list := make([]Animal, 0, len(c.animals)+1)
	list = append(list, a)
	list = append(list, c.animals...)
	c.animals = list
	c.mu.Unlock()

	c.notify()
	return a.clone(), nil
}

// Update hace merge del patch y devuelve el animal ya actualizado.
func (c *Catalog) Update(ctx context.Context, id string, p Patch) (Animal, error) {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return Animal{}, ErrNotFound
	}

	merged := p.apply(c.animals[idx].clone())
	if err := ValidateAnimal(merged); err != nil {
		c.mu.Unlock()
		return Animal{}, err
	}

	list := make([]Animal, len(c.animals))
	copy(list, c.animals)
	list[idx] = merged
	c.animals = list
	c.mu.Unlock()

	c.notify()
	return merged.clone(), nil
}

// Remove es idempotente.
func (c *Catalog) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return nil
	}

	list := make([]Animal, 0, len(c.animals)-1)
	list = append(list, c.animals[:idx]...)
	list = append(list, c.animals[idx+1:]...)
	c.animals = list
	c.mu.Unlock()

	c.notify()
	return nil
}

func (c *Catalog) GetByID(id string) (Animal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return Animal{}, false
	}
	return c.animals[idx].clone(), true
}

func (c *Catalog) List() []Animal {
	return c.Filter(Criteria{})
}

// Filter se evalúa en cada llamada sobre la lista actual.
func (c *Catalog) Filter(cr Criteria) []Animal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return FilterAnimals(c.animals, cr)
}

func (c *Catalog) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return State{
		Status:  c.status,
		Loading: c.status == StatusLoading,
		Error:   c.errMsg,
	}
}

func (c *Catalog) Subscribe(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			c.subMu.Unlock()
		})
	}
}

func (c *Catalog) indexOf(id string) int {
	for i := range c.animals {
		if c.animals[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) notify() {
	c.subMu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (c *Catalog) record(outcome string) {
	if c.rec != nil {
		c.rec.CatalogLoad(outcome)
	}
}

// ValidateAnimal son las reglas del formulario de alta/edición del admin.
func ValidateAnimal(a Animal) error {
	errs := validation.Errors{}
	errs.Required("name", a.Name, "Name is required")
	errs.Check(a.Species == "" || a.Species.Valid(), "species", "Species must be Dog, Cat, Bird or Other")
	errs.Check(a.Age >= 0, "age", "Age cannot be negative")
	errs.Check(a.AdoptionStatus == "" || a.AdoptionStatus.Valid(), "adoptionStatus", "Unknown adoption status")
	return errs.Err()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
