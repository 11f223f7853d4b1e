package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"ngo-animal-rescue/internal/platform/logger"
	"ngo-animal-rescue/internal/ports/auth"
	"ngo-animal-rescue/internal/ports/storage"
)

const DefaultKey = "user"

// Recorder recibe las transiciones de la sesión (métricas). Opcional.
type Recorder interface {
	SessionEvent(event string)
}

type Options struct {
	Key      string // default "user"
	Logger   logger.Logger
	Recorder Recorder
}

// Store es la única fuente de verdad de "quién está logueado".
// La copia en memoria manda; el local storage es sólo cache para sobrevivir reinicios.
type Store struct {
	storage storage.LocalStorage
	key     string
	log     logger.Logger
	rec     Recorder
	now     func() time.Time

	mu       sync.RWMutex
	identity *auth.Identity
	version  uint64 // sube en cada mutación; las escrituras diferidas viejas se descartan
	ready    bool

	readyCh     chan struct{}
	hydrateOnce sync.Once

	// serializa escrituras al storage (login/update/logout)
	persistMu sync.Mutex
	pending   sync.WaitGroup

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

func NewStore(st storage.LocalStorage, opts Options) *Store {
	key := strings.TrimSpace(opts.Key)
	if key == "" {
		key = DefaultKey
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Store{
		storage: st,
		key:     key,
		log:     log.With(map[string]any{"component": "session"}),
		rec:     opts.Recorder,
		now:     time.Now,
		readyCh: make(chan struct{}),
		subs:    make(map[int]func()),
	}
}

// Hydrate lee la identidad persistida una sola vez.
// Cualquier problema (storage caído, blob corrupto, versión desconocida, token vencido)
// termina en "sin sesión", nunca en error.
func (s *Store) Hydrate(ctx context.Context) {
	s.hydrateOnce.Do(func() {
		id, ok := s.readPersisted(ctx)

		s.mu.Lock()
		// Si ya hubo un Login/Update antes de hidratar, la memoria gana.
		if ok && s.version == 0 {
			s.identity = &id
		}
		s.ready = true
		s.mu.Unlock()

		close(s.readyCh)
		s.notify()
	})
}

func (s *Store) readPersisted(ctx context.Context) (auth.Identity, bool) {
	if s.storage == nil {
		return auth.Identity{}, false
	}

	raw, found, err := s.storage.GetItem(ctx, s.key)
	if err != nil {
		s.log.Warn("reading persisted identity failed, starting logged out", map[string]any{
			"key":   s.key,
			"error": err,
		})
		return auth.Identity{}, false
	}
	if !found {
		return auth.Identity{}, false
	}

	id, err := decodeRecord(raw)
	if err != nil {
		s.log.Warn("discarding persisted identity", map[string]any{
			"key":   s.key,
			"error": err,
		})
		s.discard(ctx)
		return auth.Identity{}, false
	}

	if tokenExpired(id.Token, s.now()) {
		s.log.Info("persisted session token expired, discarding", map[string]any{
			"key":     s.key,
			"user_id": id.ID,
		})
		s.discard(ctx)
		return auth.Identity{}, false
	}

	s.record("restored")
	return id, true
}

// discard borra el registro leído por Hydrate, salvo que ya haya habido una mutación:
// en ese caso lo que está en el storage es el registro nuevo.
func (s *Store) discard(ctx context.Context) {
	s.record("discarded")

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.RLock()
	mutated := s.version != 0
	s.mu.RUnlock()
	if mutated {
		return
	}

	if err := s.storage.RemoveItem(ctx, s.key); err != nil {
		s.log.Warn("removing discarded identity failed", map[string]any{"error": err})
	}
}

// Ready indica si Hydrate terminó. Antes de eso no se toman decisiones de autorización.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// WaitReady bloquea hasta que Hydrate termine o ctx se cancele.
func (s *Store) WaitReady(ctx context.Context) error {
	select {
	case <-s.readyCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Login fija la identidad y la persiste en el momento.
// No hay camino de rechazo: un fallo del storage se loguea y la sesión en memoria sigue válida.
func (s *Store) Login(ctx context.Context, id auth.Identity) {
	v := s.set(&id)
	s.persist(ctx, v, id)

	s.record("login")
	s.notify()
}

// UpdateIdentity reemplaza la identidad completa (tras editar el perfil).
// La escritura al storage es diferida; Flush espera a que termine.
func (s *Store) UpdateIdentity(ctx context.Context, id auth.Identity) {
	v := s.set(&id)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.persist(context.WithoutCancel(ctx), v, id)
	}()

	s.record("update")
	s.notify()
}

// Logout limpia memoria y storage. Idempotente.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	had := s.identity != nil
	s.identity = nil
	s.version++
	s.mu.Unlock()

	if s.storage != nil {
		s.persistMu.Lock()
		err := s.storage.RemoveItem(ctx, s.key)
		s.persistMu.Unlock()
		if err != nil {
			s.log.Warn("removing persisted identity failed", map[string]any{"error": err})
		}
	}

	if had {
		s.record("logout")
		s.notify()
	}
}

// Flush espera las escrituras diferidas pendientes (shutdown / tests).
func (s *Store) Flush() {
	s.pending.Wait()
}

// Current devuelve una copia de la identidad actual.
func (s *Store) Current() (auth.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return auth.Identity{}, false
	}
	return *s.identity, true
}

// IsAdmin: true sólo si hay identidad y su rol es exactamente NGO_ADMIN.
// Sin rol (registro incompleto) = no admin.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.identity != nil && s.identity.Role == auth.RoleNGOAdmin
}

// Subscribe registra fn para cada cambio de sesión. Devuelve la función para desuscribirse.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) set(id *auth.Identity) uint64 {
	cp := *id

	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = &cp
	s.version++
	return s.version
}

// persist escribe sólo si v sigue siendo la última mutación.
func (s *Store) persist(ctx context.Context, v uint64, id auth.Identity) {
	if s.storage == nil {
		return
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.RLock()
	current := s.version
	s.mu.RUnlock()
	if current != v {
		return
	}

	raw, err := encodeRecord(id, s.now())
	if err != nil {
		s.log.Error("encoding identity failed", map[string]any{"error": err})
		return
	}
	if err := s.storage.SetItem(ctx, s.key, raw); err != nil {
		level := s.log.Error
		if errors.Is(err, storage.ErrUnavailable) {
			level = s.log.Warn
		}
		level("persisting identity failed", map[string]any{
			"key":   s.key,
			"error": err,
		})
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *Store) record(event string) {
	if s.rec != nil {
		s.rec.SessionEvent(event)
	}
}
