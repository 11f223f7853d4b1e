package account

import (
	"errors"
	"net/http"

	"ngo-animal-rescue/internal/domain/session"
	"ngo-animal-rescue/internal/platform/httpx"
	"ngo-animal-rescue/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, store *session.Store, requireReady, requireAuth func(http.Handler) http.Handler) {
	// Siempre responde: el cliente lo usa para esperar la hidratación
	r.Get("/session", sessionHandler(store))

	r.Route("/auth", func(ar chi.Router) {
		ar.Use(requireReady)
		ar.Post("/login", loginHandler(svc))
		ar.Post("/register", registerHandler(svc))
		ar.Post("/logout", logoutHandler(svc))
	})

	r.Group(func(pr chi.Router) {
		pr.Use(requireAuth)

		pr.Get("/me/profile", getProfileHandler(svc))
		pr.Put("/me/profile", updateProfileHandler(svc))
		pr.Delete("/me/profile", deleteAccountHandler(svc))
	})
}

type sessionResponse struct {
	Ready    bool          `json:"ready"`
	LoggedIn bool          `json:"logged_in"`
	IsAdmin  bool          `json:"is_admin"`
	User     *userResponse `json:"user,omitempty"`
}

// userResponse nunca expone el token.
type userResponse struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     auth.Role `json:"role,omitempty"`
}

func toUserResponse(id auth.Identity) userResponse {
	return userResponse{
		ID:       id.ID,
		Username: id.Username,
		Email:    id.Email,
		Role:     id.Role,
	}
}

// sessionHandler godoc
// @Summary Sesión actual
// @Description Estado del Session Store: si ya hidrató, si hay usuario y si es NGO_ADMIN.
// @Tags auth
// @Produce json
// @Success 200 {object} sessionResponse
// @Router /session [get]
func sessionHandler(store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := sessionResponse{
			Ready:   store.Ready(),
			IsAdmin: store.IsAdmin(),
		}
		if id, ok := store.Current(); ok {
			u := toUserResponse(id)
			out.LoggedIn = true
			out.User = &u
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// loginHandler godoc
// @Summary Login
// @Description Autentica contra el backend de la ONG y abre la sesión local (persistida).
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body LoginForm true "Credenciales"
// @Success 200 {object} userResponse
// @Failure 401 {object} httpx.ErrorBody "Invalid credentials. Please try again."
// @Failure 422 {object} httpx.ErrorBody
// @Router /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f LoginForm
		if err := httpx.DecodeJSON(w, r, &f); err != nil {
			httpx.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		id, err := svc.Login(r.Context(), f)
		if err != nil {
			writeServiceError(w, r, err, http.StatusUnauthorized)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(id))
	}
}

// registerHandler godoc
// @Summary Registro
// @Description Crea la cuenta con rol USER. No inicia sesión.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body SignupForm true "Datos de registro"
// @Success 201 {object} userResponse
// @Failure 422 {object} httpx.ErrorBody
// @Failure 502 {object} httpx.ErrorBody "Registration failed. Please try again."
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f SignupForm
		if err := httpx.DecodeJSON(w, r, &f); err != nil {
			httpx.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		id, err := svc.Register(r.Context(), f)
		if err != nil {
			writeServiceError(w, r, err, http.StatusBadGateway)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toUserResponse(id))
	}
}

// logoutHandler godoc
// @Summary Logout
// @Description Cierra la sesión local. Idempotente.
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func logoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.Logout(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}

// getProfileHandler godoc
// @Summary Perfil
// @Tags profile
// @Produce json
// @Success 200 {object} userResponse
// @Failure 401 {object} httpx.ErrorBody
// @Router /me/profile [get]
func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := svc.Profile(r.Context())
		if err != nil {
			writeServiceError(w, r, err, http.StatusBadGateway)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(id))
	}
}

// updateProfileHandler godoc
// @Summary Editar perfil
// @Description newPassword es opcional; si viene debe coincidir con confirmPassword.
// @Tags profile
// @Accept json
// @Produce json
// @Param payload body ProfileForm true "Perfil"
// @Success 200 {object} userResponse
// @Failure 401 {object} httpx.ErrorBody
// @Failure 422 {object} httpx.ErrorBody
// @Router /me/profile [put]
func updateProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f ProfileForm
		if err := httpx.DecodeJSON(w, r, &f); err != nil {
			httpx.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		id, err := svc.UpdateProfile(r.Context(), f)
		if err != nil {
			writeServiceError(w, r, err, http.StatusBadGateway)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(id))
	}
}

// deleteAccountHandler godoc
// @Summary Borrar cuenta
// @Description Borra la cuenta en el backend y cierra la sesión local.
// @Tags profile
// @Success 204
// @Failure 401 {object} httpx.ErrorBody
// @Failure 502 {object} httpx.ErrorBody "Failed to delete account"
// @Router /me/profile [delete]
func deleteAccountHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteAccount(r.Context()); err != nil {
			writeServiceError(w, r, err, http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// writeServiceError: 4xx del backend se propagan; sin respuesta o 5xx => fallbackStatus.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallbackStatus int) {
	if httpx.Invalid(w, r, err) {
		return
	}

	switch {
	case errors.Is(err, ErrNotLoggedIn):
		httpx.Error(w, r, http.StatusUnauthorized, err.Error())
		return
	case errors.Is(err, ErrGatewayNotReady):
		httpx.Error(w, r, http.StatusServiceUnavailable, err.Error())
		return
	}

	var ae *Error
	if errors.As(err, &ae) {
		status := fallbackStatus
		if ae.Status >= 400 && ae.Status < 500 {
			status = ae.Status
		}
		httpx.Error(w, r, status, ae.Message)
		return
	}

	httpx.Error(w, r, http.StatusInternalServerError, "internal error")
}
