package catalog

import (
	"strings"
	"time"
)

// Species de los animales del refugio.
// @Enum Dog, Cat, Bird, Other
type Species string

const (
	SpeciesDog   Species = "Dog"
	SpeciesCat   Species = "Cat"
	SpeciesBird  Species = "Bird"
	SpeciesOther Species = "Other"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesOther:
		return true
	}
	return false
}

// AdoptionStatus es estado descriptivo: lo fija el admin, esta capa no valida transiciones.
// @Enum Available, Pending Adoption, Adopted, Under Treatment
type AdoptionStatus string

const (
	StatusAvailable       AdoptionStatus = "Available"
	StatusPendingAdoption AdoptionStatus = "Pending Adoption"
	StatusAdopted         AdoptionStatus = "Adopted"
	StatusUnderTreatment  AdoptionStatus = "Under Treatment"
)

func (s AdoptionStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusPendingAdoption, StatusAdopted, StatusUnderTreatment:
		return true
	}
	return false
}

type MedicalRecord struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Treatment string `json:"treatment"`
	Notes     string `json:"notes"`
}

// Animal es el registro del catálogo. El formato JSON es el de la API remota (camelCase).
type Animal struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Species Species `json:"species"`
	Breed   string  `json:"breed"`
	Age     int     `json:"age"` // años
	Gender  string  `json:"gender"`

	HealthStatus      string         `json:"healthStatus"`
	VaccinationStatus string         `json:"vaccinationStatus"`
	Neutered          bool           `json:"neutered"`
	AdoptionStatus    AdoptionStatus `json:"adoptionStatus"`

	RescueDate  time.Time `json:"rescueDate,omitzero"`
	Description string    `json:"description"`

	MedicalRecords []MedicalRecord `json:"medicalRecords"`
	Image          string          `json:"image,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
}

func (a Animal) clone() Animal {
	if a.MedicalRecords != nil {
		recs := make([]MedicalRecord, len(a.MedicalRecords))
		copy(recs, a.MedicalRecords)
		a.MedicalRecords = recs
	}
	return a
}

// Patch: punteros para merge parcial, nil = no tocar.
type Patch struct {
	Name    *string  `json:"name"`
	Species *Species `json:"species"`
	Breed   *string  `json:"breed"`
	Age     *int     `json:"age"`
	Gender  *string  `json:"gender"`

	HealthStatus      *string         `json:"healthStatus"`
	VaccinationStatus *string         `json:"vaccinationStatus"`
	Neutered          *bool           `json:"neutered"`
	AdoptionStatus    *AdoptionStatus `json:"adoptionStatus"`

	RescueDate  *time.Time `json:"rescueDate"`
	Description *string    `json:"description"`

	MedicalRecords *[]MedicalRecord `json:"medicalRecords"`
	Image          *string          `json:"image"`
}

func (p Patch) apply(a Animal) Animal {
	if p.Name != nil {
		a.Name = strings.TrimSpace(*p.Name)
	}
	if p.Species != nil {
		a.Species = *p.Species
	}
	if p.Breed != nil {
		a.Breed = strings.TrimSpace(*p.Breed)
	}
	if p.Age != nil {
		a.Age = *p.Age
	}
	if p.Gender != nil {
		a.Gender = *p.Gender
	}
	if p.HealthStatus != nil {
		a.HealthStatus = *p.HealthStatus
	}
	if p.VaccinationStatus != nil {
		a.VaccinationStatus = *p.VaccinationStatus
	}
	if p.Neutered != nil {
		a.Neutered = *p.Neutered
	}
	if p.AdoptionStatus != nil {
		a.AdoptionStatus = *p.AdoptionStatus
	}
	if p.RescueDate != nil {
		a.RescueDate = *p.RescueDate
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.MedicalRecords != nil {
		recs := make([]MedicalRecord, len(*p.MedicalRecords))
		copy(recs, *p.MedicalRecords)
		a.MedicalRecords = recs
	}
	if p.Image != nil {
		a.Image = *p.Image
	}
	return a
}
