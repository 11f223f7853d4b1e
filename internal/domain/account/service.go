package account

import (
	"context"
	"errors"
	"net/http"

	"ngo-animal-rescue/internal/domain/session"
	"ngo-animal-rescue/internal/platform/httpclient"
	"ngo-animal-rescue/internal/platform/logger"
	"ngo-animal-rescue/internal/platform/validation"
	"ngo-animal-rescue/internal/ports/auth"
)

var (
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrGatewayNotReady = errors.New("auth gateway not configured")
)

type Service struct {
	gw      auth.Gateway
	session *session.Store
	log     logger.Logger
	rec     validation.Recorder
}

func NewService(gw auth.Gateway, s *session.Store, log logger.Logger, rec validation.Recorder) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		gw:      gw,
		session: s,
		log:     log.With(map[string]any{"component": "account"}),
		rec:     rec,
	}
}

// Login valida, autentica contra el backend y abre la sesión local.
func (s *Service) Login(ctx context.Context, f LoginForm) (auth.Identity, error) {
	if err := f.Validate(); err != nil {
		return auth.Identity{}, validation.Reject(s.rec, "login", err)
	}
	if s.gw == nil {
		return auth.Identity{}, ErrGatewayNotReady
	}

	id, err := s.gw.Login(ctx, auth.Credentials{
		Email:    trimForm(f.Email),
		Password: f.Password,
	})
	if err != nil {
		s.log.Warn("login failed", map[string]any{"error": err})
		return auth.Identity{}, remoteError(err, MsgInvalidCredentials)
	}
	if !id.Valid() {
		return auth.Identity{}, &Error{Message: MsgInvalidCredentials, Err: errors.New("login response without id or email")}
	}

	s.session.Login(ctx, id)
	return id, nil
}

// Register crea la cuenta con rol USER. No abre sesión: el usuario luego hace login.
func (s *Service) Register(ctx context.Context, f SignupForm) (auth.Identity, error) {
	if err := f.Validate(); err != nil {
		return auth.Identity{}, validation.Reject(s.rec, "signup", err)
	}
	if s.gw == nil {
		return auth.Identity{}, ErrGatewayNotReady
	}

	id, err := s.gw.Register(ctx, auth.Registration{
		Username: trimForm(f.Name),
		Email:    trimForm(f.Email),
		Password: f.Password,
		Role:     auth.RoleUser,
	})
	if err != nil {
		s.log.Warn("registration failed", map[string]any{"error": err})
		return auth.Identity{}, remoteError(err, MsgRegistrationFailed)
	}
	return id, nil
}

// Logout es sólo local.
func (s *Service) Logout(ctx context.Context) {
	s.session.Logout(ctx)
}

// Profile trae el perfil remoto y refresca la identidad de la sesión.
func (s *Service) Profile(ctx context.Context) (auth.Identity, error) {
	cur, ok := s.session.Current()
	if !ok {
		return auth.Identity{}, ErrNotLoggedIn
	}
	if s.gw == nil {
		return auth.Identity{}, ErrGatewayNotReady
	}

	remote, err := s.gw.GetProfile(ctx, cur.Token)
	if err != nil {
		s.log.Warn("fetching profile failed", map[string]any{"error": err, "user_id": cur.ID})
		return auth.Identity{}, remoteError(err, MsgFetchFailed)
	}

	next := mergeIdentity(cur, remote)
	s.session.UpdateIdentity(ctx, next)
	return next, nil
}

func (s *Service) UpdateProfile(ctx context.Context, f ProfileForm) (auth.Identity, error) {
	cur, ok := s.session.Current()
	if !ok {
		return auth.Identity{}, ErrNotLoggedIn
	}
	if err := f.Validate(); err != nil {
		return auth.Identity{}, validation.Reject(s.rec, "profile", err)
	}
	if s.gw == nil {
		return auth.Identity{}, ErrGatewayNotReady
	}

	remote, err := s.gw.UpdateProfile(ctx, cur.Token, auth.ProfileUpdate{
		Username: trimForm(f.Username),
		Email:    trimForm(f.Email),
		Password: f.NewPassword,
	})
	if err != nil {
		s.log.Warn("updating profile failed", map[string]any{"error": err, "user_id": cur.ID})
		return auth.Identity{}, remoteError(err, MsgProfileFailed)
	}

	next := mergeIdentity(cur, remote)
	s.session.UpdateIdentity(ctx, next)
	return next, nil
}

// DeleteAccount borra la cuenta remota y cierra la sesión local.
// Si el backend falla la sesión queda intacta.
func (s *Service) DeleteAccount(ctx context.Context) error {
	cur, ok := s.session.Current()
	if !ok {
		return ErrNotLoggedIn
	}
	if s.gw == nil {
		return ErrGatewayNotReady
	}

	if err := s.gw.DeleteProfile(ctx, cur.Token); err != nil {
		s.log.Warn("deleting account failed", map[string]any{"error": err, "user_id": cur.ID})
		return &Error{Message: MsgDeleteFailed, Status: statusOf(err), Err: err}
	}

	s.session.Logout(ctx)
	s.log.Info("account deleted", map[string]any{"user_id": cur.ID})
	return nil
}

// mergeIdentity: el perfil remoto reemplaza los datos visibles, pero
// conserva token/rol/id de la sesión si el backend no los devuelve.
func mergeIdentity(cur, remote auth.Identity) auth.Identity {
	next := remote
	if next.ID == "" {
		next.ID = cur.ID
	}
	if next.Token == "" {
		next.Token = cur.Token
	}
	if next.Role == "" {
		next.Role = cur.Role
	}
	if next.Username == "" {
		next.Username = cur.Username
	}
	if next.Email == "" {
		next.Email = cur.Email
	}
	return next
}

func remoteError(err error, fallback string) *Error {
	status := statusOf(err)
	msg := httpclient.RemoteMessage(err, fallback)
	if status == http.StatusTooManyRequests {
		msg = MsgTooManyRequests
	}
	return &Error{Message: msg, Status: status, Err: err}
}

func statusOf(err error) int {
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}
