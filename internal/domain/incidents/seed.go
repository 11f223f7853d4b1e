package incidents

import "time"

func seedTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Seed son los incidentes de demo del panel de admin.
func Seed() []Incident {
	return []Incident{
		{
			ID:    "1",
			Place: "Central Park, near the fountain",
			Description: Description{
				MainDescription: "Stray dog limping near Central Park",
				AnimalType:      AnimalDog,
				UrgencyLevel:    UrgencyHigh,
				AnimalCount:     1,
			},
			ReporterName:  "Maria Thompson",
			ReporterPhone: "555-111-2222",
			Images:        []string{"https://images.unsplash.com/photo-1583512603784-a8e3ea8355b4?auto=format&fit=crop&w=600&q=60"},
			Status:        StatusUnderInvestigation,
			Notes:         "Dispatch sent a volunteer to assess",
			ReportedAt:    seedTime("2023-08-06T16:30:00Z"),
			UpdatedAt:     seedTime("2023-08-06T16:30:00Z"),
		},
		{
			ID:    "2",
			Place: "Behind Food Mart at 123 Commerce St",
			Description: Description{
				MainDescription: "Kittens abandoned in a box behind grocery store",
				AnimalType:      AnimalCat,
				UrgencyLevel:    UrgencyMedium,
				AnimalCount:     1,
			},
			ReporterName:  "James Wilson",
			ReporterPhone: "555-333-4444",
			Images:        []string{"https://images.unsplash.com/photo-1589883661923-6476cb0ae9f2?auto=format&fit=crop&w=600&q=60"},
			Status:        StatusResolved,
			Notes:         "Kittens rescued and brought to shelter, appear healthy",
			ReportedAt:    seedTime("2023-08-05T13:15:00Z"),
			UpdatedAt:     seedTime("2023-08-05T13:15:00Z"),
		},
	}
}
