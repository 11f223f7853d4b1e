package incidents

import (
	"errors"
	"net/http"

	"ngo-animal-rescue/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, requireAdmin func(http.Handler) http.Handler) {
	// Reportar no requiere login
	r.Post("/emergencies", reportHandler(svc))

	r.Group(func(ar chi.Router) {
		ar.Use(requireAdmin)

		ar.Get("/admin/emergencies", listHandler(svc))
		ar.Patch("/admin/emergencies/{incidentID}", updateStatusHandler(svc))
	})
}

type updateStatusRequest struct {
	Status Status `json:"status"`
	Notes  string `json:"notes"`
}

// reportHandler godoc
// @Summary Reportar emergencia
// @Description Sin autenticación. Requiere ubicación (lat/lng). Se reenvía al backend de la ONG y, si lo acepta, queda registrada localmente.
// @Tags emergencies
// @Accept json
// @Produce json
// @Param payload body Report true "Ubicación y descripción estructurada"
// @Success 201 {object} Incident
// @Failure 400 {object} httpx.ErrorBody
// @Failure 422 {object} httpx.ErrorBody
// @Failure 502 {object} httpx.ErrorBody "Failed to report emergency. Please try again."
// @Router /emergencies [post]
func reportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Report
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		in, err := svc.Report(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, in)
	}
}

// listHandler godoc
// @Summary Listar emergencias
// @Tags emergencies
// @Produce json
// @Param status query string false "Reported, Under Investigation o Resolved"
// @Success 200 {array} Incident
// @Router /admin/emergencies [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), Status(r.URL.Query().Get("status")))
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

// updateStatusHandler godoc
// @Summary Cambiar estado de una emergencia
// @Tags emergencies
// @Accept json
// @Produce json
// @Param incidentID path string true "ID del incidente"
// @Param payload body updateStatusRequest true "Nuevo estado y notas opcionales"
// @Success 200 {object} Incident
// @Failure 404 {object} httpx.ErrorBody
// @Failure 422 {object} httpx.ErrorBody
// @Router /admin/emergencies/{incidentID} [patch]
func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStatusRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		in, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "incidentID"), req.Status, req.Notes)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, in)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if httpx.Invalid(w, r, err) {
		return
	}

	var de *DispatchError
	switch {
	case errors.As(err, &de):
		httpx.Error(w, r, http.StatusBadGateway, de.Message)
	case errors.Is(err, ErrDispatchUnavailable):
		httpx.Error(w, r, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, ErrInvalidInput):
		httpx.Error(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.Error(w, r, http.StatusNotFound, "incident not found")
	default:
		httpx.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
