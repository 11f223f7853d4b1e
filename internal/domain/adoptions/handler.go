package adoptions

import (
	"context"
	"errors"
	"net/http"

	"ngo-animal-rescue/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes: enviar solicitud es público; revisar/decidir es de admin.
func RegisterRoutes(r chi.Router, svc *Service, requireAdmin func(http.Handler) http.Handler) {
	r.Post("/adoptions", submitHandler(svc))

	r.Group(func(ar chi.Router) {
		ar.Use(requireAdmin)

		ar.Get("/admin/adoptions", listHandler(svc))
		ar.Get("/admin/adoptions/{applicationID}", getHandler(svc))
		ar.Post("/admin/adoptions/{applicationID}/review", reviewHandler(svc))
		ar.Post("/admin/adoptions/{applicationID}/approve", decideHandler(svc.Approve))
		ar.Post("/admin/adoptions/{applicationID}/reject", decideHandler(svc.Reject))
	})
}

type decisionRequest struct {
	Notes string `json:"notes"`
}

// submitHandler godoc
// @Summary Enviar solicitud de adopción
// @Description Valida el formulario completo y que el animal exista en el catálogo. Queda en estado Pending.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param payload body Form true "Formulario de adopción"
// @Success 201 {object} Application
// @Failure 400 {object} httpx.ErrorBody
// @Failure 422 {object} httpx.ErrorBody
// @Router /adoptions [post]
func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f Form
		if err := httpx.DecodeJSON(w, r, &f); err != nil {
			httpx.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		app, err := svc.Submit(r.Context(), f)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, app)
	}
}

// listHandler godoc
// @Summary Listar solicitudes
// @Description Más recientes primero. Filtros opcionales por estado o por animal.
// @Tags adoptions
// @Produce json
// @Param status query string false "Pending, Reviewing, Approved o Rejected"
// @Param animalId query string false "ID del animal"
// @Success 200 {array} Application
// @Router /admin/adoptions [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			items []Application
			err   error
		)
		if animalID := r.URL.Query().Get("animalId"); animalID != "" {
			items, err = svc.ListByAnimal(r.Context(), animalID)
		} else {
			items, err = svc.List(r.Context(), Status(r.URL.Query().Get("status")))
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

// getHandler godoc
// @Summary Detalle de solicitud
// @Tags adoptions
// @Produce json
// @Param applicationID path string true "ID de la solicitud"
// @Success 200 {object} Application
// @Failure 404 {object} httpx.ErrorBody
// @Router /admin/adoptions/{applicationID} [get]
func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app, err := svc.GetByID(r.Context(), chi.URLParam(r, "applicationID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, app)
	}
}

// reviewHandler godoc
// @Summary Pasar a revisión
// @Tags adoptions
// @Produce json
// @Param applicationID path string true "ID de la solicitud"
// @Success 200 {object} Application
// @Failure 404 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody
// @Router /admin/adoptions/{applicationID}/review [post]
func reviewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app, err := svc.StartReview(r.Context(), chi.URLParam(r, "applicationID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, app)
	}
}

// decideHandler godoc
// @Summary Aprobar o rechazar solicitud
// @Description Body opcional con notas. Repetir la misma decisión es idempotente; cambiarla da 409.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param applicationID path string true "ID de la solicitud"
// @Param payload body decisionRequest false "Notas"
// @Success 200 {object} Application
// @Failure 404 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody
// @Router /admin/adoptions/{applicationID}/approve [post]
// @Router /admin/adoptions/{applicationID}/reject [post]
func decideHandler(decide func(ctx context.Context, id, notes string) (Application, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req decisionRequest
		if r.ContentLength != 0 {
			if err := httpx.DecodeJSON(w, r, &req); err != nil {
				httpx.Error(w, r, http.StatusBadRequest, err.Error())
				return
			}
		}

		app, err := decide(r.Context(), chi.URLParam(r, "applicationID"), req.Notes)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, app)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if httpx.Invalid(w, r, err) {
		return
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.Error(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.Error(w, r, http.StatusNotFound, "application not found")
	case errors.Is(err, ErrBadState):
		httpx.Error(w, r, http.StatusConflict, err.Error())
	default:
		httpx.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
