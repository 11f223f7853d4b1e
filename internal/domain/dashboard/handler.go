package dashboard

import (
	"net/http"

	"ngo-animal-rescue/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, requireAdmin func(http.Handler) http.Handler) {
	r.With(requireAdmin).Get("/admin/dashboard", summaryHandler(svc))
}

// summaryHandler godoc
// @Summary Resumen del panel de administración
// @Description Animales por estado de adopción, solicitudes por estado, emergencias abiertas y total donado.
// @Tags dashboard
// @Produce json
// @Success 200 {object} Summary
// @Failure 403 {object} httpx.ErrorBody
// @Router /admin/dashboard [get]
func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := svc.Summary(r.Context())
		if err != nil {
			httpx.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, sum)
	}
}
