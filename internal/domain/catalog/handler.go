package catalog

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"ngo-animal-rescue/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta el catálogo público y, detrás de requireAdmin, las mutaciones.
func RegisterRoutes(r chi.Router, c *Catalog, requireAdmin func(http.Handler) http.Handler) {
	r.Get("/animals", listAnimalsHandler(c))
	r.Get("/animals/{animalID}", getAnimalHandler(c))

	r.Group(func(ar chi.Router) {
		ar.Use(requireAdmin)

		ar.Post("/animals/reload", reloadHandler(c))
		ar.Post("/admin/animals", createAnimalHandler(c))
		ar.Patch("/admin/animals/{animalID}", updateAnimalHandler(c))
		ar.Delete("/admin/animals/{animalID}", deleteAnimalHandler(c))
	})
}

type listResponse struct {
	Items []Animal `json:"items"`
	Total int      `json:"total"`
	State State    `json:"state"`
}

type animalRequest struct {
	Name              string          `json:"name"`
	Species           Species         `json:"species"`
	Breed             string          `json:"breed"`
	Age               int             `json:"age"`
	Gender            string          `json:"gender"`
	HealthStatus      string          `json:"healthStatus"`
	VaccinationStatus string          `json:"vaccinationStatus"`
	Neutered          bool            `json:"neutered"`
	AdoptionStatus    AdoptionStatus  `json:"adoptionStatus"`
	RescueDate        string          `json:"rescueDate"` // YYYY-MM-DD o RFC3339
	Description       string          `json:"description"`
	MedicalRecords    []MedicalRecord `json:"medicalRecords"`
	Image             string          `json:"image"`
}

type patchRequest struct {
	Name              *string          `json:"name"`
	Species           *Species         `json:"species"`
	Breed             *string          `json:"breed"`
	Age               *int             `json:"age"`
	Gender            *string          `json:"gender"`
	HealthStatus      *string          `json:"healthStatus"`
	VaccinationStatus *string          `json:"vaccinationStatus"`
	Neutered          *bool            `json:"neutered"`
	AdoptionStatus    *AdoptionStatus  `json:"adoptionStatus"`
	RescueDate        *string          `json:"rescueDate"`
	Description       *string          `json:"description"`
	MedicalRecords    *[]MedicalRecord `json:"medicalRecords"`
	Image             *string          `json:"image"`
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Description Devuelve el catálogo filtrado. Los tres filtros se combinan (AND); vacío = sin filtro. `search` busca en nombre, raza y descripción sin distinguir mayúsculas.
// @Tags animals
// @Produce json
// @Param search query string false "Texto libre"
// @Param species query string false "Dog, Cat, Bird u Other"
// @Param status query string false "Available, Pending Adoption, Adopted o Under Treatment"
// @Success 200 {object} listResponse
// @Router /animals [get]
func listAnimalsHandler(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items := c.Filter(Criteria{
			Search:  q.Get("search"),
			Species: Species(q.Get("species")),
			Status:  AdoptionStatus(q.Get("status")),
		})

		httpx.WriteJSON(w, http.StatusOK, listResponse{
			Items: items,
			Total: len(items),
			State: c.State(),
		})
	}
}

// getAnimalHandler godoc
// @Summary Detalle de un animal
// @Tags animals
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} Animal
// @Failure 404 {object} httpx.ErrorBody
// @Router /animals/{animalID} [get]
func getAnimalHandler(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := c.GetByID(chi.URLParam(r, "animalID"))
		if !ok {
			httpx.Error(w, r, http.StatusNotFound, ErrNotFound.Error())
			return
		}
		httpx.WriteJSON(w, http.StatusOK, a)
	}
}

// reloadHandler godoc
// @Summary Recargar catálogo
// @Description Vuelve a pedir la colección a la fuente primaria (fallback a fixtures si falla). Sólo NGO_ADMIN.
// @Tags animals
// @Produce json
// @Success 200 {object} State
// @Failure 409 {object} httpx.ErrorBody "otra recarga más nueva ganó"
// @Failure 502 {object} httpx.ErrorBody
// @Router /animals/reload [post]
func reloadHandler(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := c.Load(r.Context())
		switch {
		case err == nil:
			httpx.WriteJSON(w, http.StatusOK, c.State())
		case errors.Is(err, ErrSuperseded):
			httpx.Error(w, r, http.StatusConflict, "reload superseded by a newer one")
		case errors.Is(err, ErrLoadFailed):
			httpx.Error(w, r, http.StatusBadGateway, LoadErrorMessage)
		default:
			// cliente se fue o timeout
			httpx.Error(w, r, http.StatusServiceUnavailable, ReloadInterruptedMessage)
		}
	}
}

// createAnimalHandler godoc
// @Summary Agregar animal
// @Description Alta local (no se envía al backend). El ID lo asigna el servicio y el animal queda primero en la lista.
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body animalRequest true "Datos del animal"
// @Success 201 {object} Animal
// @Failure 400 {object} httpx.ErrorBody
// @Failure 422 {object} httpx.ErrorBody
// @Router /admin/animals [post]
func createAnimalHandler(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req animalRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		rescued, err := parseDate(req.RescueDate)
		if err != nil {
			httpx.Error(w, r, http.StatusBadRequest, "rescueDate must be YYYY-MM-DD")
			return
		}

		a := Animal{
			Name:              strings.TrimSpace(req.Name),
			Species:           req.Species,
			Breed:             req.Breed,
			Age:               req.Age,
			Gender:            req.Gender,
			HealthStatus:      req.HealthStatus,
			VaccinationStatus: req.VaccinationStatus,
			Neutered:          req.Neutered,
			AdoptionStatus:    req.AdoptionStatus,
			RescueDate:        rescued,
			Description:       req.Description,
			MedicalRecords:    req.MedicalRecords,
			Image:             req.Image,
		}
		if err := ValidateAnimal(a); err != nil {
			httpx.Invalid(w, r, err)
			return
		}

		a, err = c.Add(r.Context(), a)
		if err != nil {
			httpx.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, a)
	}
}

// updateAnimalHandler godoc
// @Summary Editar animal
// @Description Merge parcial: los campos ausentes no se tocan. Devuelve el animal ya actualizado.
// @Tags animals
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body patchRequest true "Campos a cambiar"
// @Success 200 {object} Animal
// @Failure 400 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Failure 422 {object} httpx.ErrorBody
// @Router /admin/animals/{animalID} [patch]
func updateAnimalHandler(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req patchRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		p := Patch{
			Name:              req.Name,
			Species:           req.Species,
			Breed:             req.Breed,
			Age:               req.Age,
			Gender:            req.Gender,
			HealthStatus:      req.HealthStatus,
			VaccinationStatus: req.VaccinationStatus,
			Neutered:          req.Neutered,
			AdoptionStatus:    req.AdoptionStatus,
			Description:       req.Description,
			MedicalRecords:    req.MedicalRecords,
			Image:             req.Image,
		}
		if req.RescueDate != nil {
			t, err := parseDate(*req.RescueDate)
			if err != nil {
				httpx.Error(w, r, http.StatusBadRequest, "rescueDate must be YYYY-MM-DD")
				return
			}
			p.RescueDate = &t
		}

		a, err := c.Update(r.Context(), chi.URLParam(r, "animalID"), p)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Error(w, r, http.StatusNotFound, err.Error())
				return
			}
			if httpx.Invalid(w, r, err) {
				return
			}
			httpx.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, a)
	}
}

// deleteAnimalHandler godoc
// @Summary Quitar animal
// @Description Idempotente: un ID inexistente también responde 204.
// @Tags animals
// @Param animalID path string true "ID del animal"
// @Success 204
// @Router /admin/animals/{animalID} [delete]
func deleteAnimalHandler(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c.Remove(r.Context(), chi.URLParam(r, "animalID")); err != nil {
			httpx.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
