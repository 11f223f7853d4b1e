package donations

import (
	"net/http"

	"ngo-animal-rescue/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, requireAdmin func(http.Handler) http.Handler) {
	r.Post("/donations", donateHandler(svc))

	r.Group(func(ar chi.Router) {
		ar.Use(requireAdmin)
		ar.Get("/admin/donations", listHandler(svc))
	})
}

type listResponse struct {
	Items []Donation `json:"items"`
	Total float64    `json:"total"`
	Count int        `json:"count"`
}

// donateHandler godoc
// @Summary Registrar donación
// @Description Pago simulado. Con paymentMethod=card se validan los datos de la tarjeta y sólo se guardan los últimos 4 dígitos.
// @Tags donations
// @Accept json
// @Produce json
// @Param payload body Request true "Donación y tarjeta opcional"
// @Success 201 {object} Donation
// @Failure 400 {object} httpx.ErrorBody
// @Failure 422 {object} httpx.ErrorBody
// @Router /donations [post]
func donateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		d, err := svc.Donate(r.Context(), req)
		if err != nil {
			if httpx.Invalid(w, r, err) {
				return
			}
			httpx.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, d)
	}
}

// listHandler godoc
// @Summary Listar donaciones
// @Tags donations
// @Produce json
// @Success 200 {object} listResponse
// @Router /admin/donations [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}
		total, err := svc.Total(r.Context())
		if err != nil {
			httpx.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Count: len(items)})
	}
}
