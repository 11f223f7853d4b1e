package adoptions

import "time"

func seedTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Seed son las solicitudes de demo con las que arranca el panel de admin.
func Seed() []Application {
	return []Application{
		{
			ID:       "1",
			AnimalID: "4",
			Applicant: Applicant{
				FirstName: "David",
				LastName:  "Wilson",
				Email:     "david@example.com",
				Phone:     "555-222-3333",
				Address:   "101 Cedar St",
				City:      "Anytown",
				State:     "USA",
			},
			HousingType:        "house",
			HasOwnedPetsBefore: true,
			CurrentPets:        "1 cat, 5 years old",
			HasChildren:        false,
			Status:             StatusPending,
			Notes:              "Home visit scheduled for next week",
			AppliedAt:          seedTime("2023-08-01T14:30:00Z"),
			UpdatedAt:          seedTime("2023-08-01T14:30:00Z"),
		},
		{
			ID:       "2",
			AnimalID: "2",
			Applicant: Applicant{
				FirstName: "Emma",
				LastName:  "Garcia",
				Email:     "emma@example.com",
				Phone:     "555-444-5555",
				Address:   "202 Maple Ave",
				City:      "Somewhere",
				State:     "USA",
			},
			HousingType: "apartment",
			HasChildren: true,
			Status:      StatusReviewing,
			Notes:       "First-time pet owner, good initial interview",
			AppliedAt:   seedTime("2023-07-25T10:15:00Z"),
			UpdatedAt:   seedTime("2023-07-25T10:15:00Z"),
		},
	}
}
