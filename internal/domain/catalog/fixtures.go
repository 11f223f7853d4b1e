package catalog

import (
	"context"
	"time"
)

// FixtureSource devuelve el set estático que viaja con el binario.
// Es el fallback cuando la colección remota no responde.
type FixtureSource struct{}

func (FixtureSource) List(ctx context.Context) ([]Animal, error) {
	return Fixtures(), nil
}

func mustDate(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Fixtures devuelve una copia nueva en cada llamada (los callers pueden mutarla).
func Fixtures() []Animal {
	return []Animal{
		{
			ID:                "1",
			Name:              "Max",
			Species:           SpeciesDog,
			Breed:             "Golden Retriever",
			Age:               3,
			Gender:            "Male",
			Description:       "Friendly and energetic golden retriever who loves to play fetch.",
			HealthStatus:      "Healthy",
			VaccinationStatus: "Up to date",
			Neutered:          true,
			AdoptionStatus:    StatusAvailable,
			RescueDate:        mustDate("2023-05-10T08:00:00Z"),
			Image:             "https://images.unsplash.com/photo-1552053831-71594a27632d?auto=format&fit=crop&w=600&q=60",
			MedicalRecords: []MedicalRecord{
				{Date: "2023-05-12", Treatment: "Initial checkup", Notes: "Healthy, slight dehydration"},
				{Date: "2023-06-15", Treatment: "Vaccination", Notes: "DHPP vaccine administered"},
			},
		},
		{
			ID:                "2",
			Name:              "Luna",
			Species:           SpeciesCat,
			Breed:             "Siamese",
			Age:               2,
			Gender:            "Female",
			Description:       "Gentle and quiet Siamese cat who loves to cuddle.",
			HealthStatus:      "Healthy",
			VaccinationStatus: "Up to date",
			Neutered:          true,
			AdoptionStatus:    StatusAvailable,
			RescueDate:        mustDate("2023-06-03T10:15:00Z"),
			Image:             "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcRFa4-yfH0zPL9wuhDaze0WB5gor4S10tKTog&s",
			MedicalRecords: []MedicalRecord{
				{Date: "2023-06-04", Treatment: "Initial checkup", Notes: "Mild ear infection"},
				{Date: "2023-06-11", Treatment: "Follow-up", Notes: "Ear infection clearing up"},
			},
		},
		{
			ID:                "3",
			Name:              "Rocky",
			Species:           SpeciesDog,
			Breed:             "German Shepherd",
			Age:               4,
			Gender:            "Male",
			Description:       "Loyal and protective German Shepherd, good with children and other pets.",
			HealthStatus:      "Recovery",
			VaccinationStatus: "Up to date",
			Neutered:          true,
			AdoptionStatus:    StatusUnderTreatment,
			RescueDate:        mustDate("2023-04-22T14:30:00Z"),
			Image:             "https://images.unsplash.com/photo-1589941013453-ec89f33b5e95?auto=format&fit=crop&w=600&q=60",
			MedicalRecords: []MedicalRecord{
				{Date: "2023-04-23", Treatment: "Emergency care", Notes: "Broken leg from accident"},
				{Date: "2023-05-20", Treatment: "Cast removal", Notes: "Healing well, needs physical therapy"},
			},
		},
		{
			ID:                "4",
			Name:              "Whiskers",
			Species:           SpeciesCat,
			Breed:             "Maine Coon",
			Age:               1,
			Gender:            "Male",
			Description:       "Playful and curious Maine Coon kitten with beautiful long fur.",
			HealthStatus:      "Healthy",
			VaccinationStatus: "Up to date",
			Neutered:          false,
			AdoptionStatus:    StatusPendingAdoption,
			RescueDate:        mustDate("2023-07-15T09:45:00Z"),
			Image:             "https://images.unsplash.com/photo-1615455134691-6141b358fd0b?auto=format&fit=crop&w=600&q=60",
			MedicalRecords: []MedicalRecord{
				{Date: "2023-07-16", Treatment: "Initial checkup", Notes: "Healthy, slightly underweight"},
				{Date: "2023-07-30", Treatment: "Follow-up", Notes: "Weight gain, healthy development"},
			},
		},
		{
			ID:                "5",
			Name:              "Bella",
			Species:           SpeciesDog,
			Breed:             "Labrador Retriever",
			Age:               6,
			Gender:            "Female",
			Description:       "Sweet and calm Labrador who loves water and being around people.",
			HealthStatus:      "Healthy",
			VaccinationStatus: "Up to date",
			Neutered:          true,
			AdoptionStatus:    StatusAvailable,
			RescueDate:        mustDate("2023-02-10T11:20:00Z"),
			Image:             "https://images.unsplash.com/photo-1591160690555-5debfba289f0?auto=format&fit=crop&w=600&q=60",
			MedicalRecords: []MedicalRecord{
				{Date: "2023-02-12", Treatment: "Initial checkup", Notes: "Healthy, good condition"},
				{Date: "2023-03-15", Treatment: "Dental cleaning", Notes: "Teeth cleaned, no issues"},
			},
		},
	}
}
