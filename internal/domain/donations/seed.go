package donations

import "time"

func seedTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Seed: donaciones históricas de demo. Algunos métodos (paypal) ya no se ofrecen en el formulario.
func Seed() []Donation {
	return []Donation{
		{
			ID:            "1",
			DonorName:     "Robert Brown",
			DonorEmail:    "robert@example.com",
			Amount:        100,
			Type:          TypeGeneral,
			PaymentMethod: MethodCard,
			Notes:         "In memory of Buddy",
			Payment:       Payment{Status: PaymentSimulated},
			Date:          seedTime("2023-08-05T09:30:00Z"),
		},
		{
			ID:            "2",
			DonorName:     "Jennifer Lee",
			DonorEmail:    "jennifer@example.com",
			Amount:        50,
			Type:          TypeMedical,
			PaymentMethod: "paypal",
			IsRecurring:   true,
			Frequency:     FrequencyMonthly,
			Payment:       Payment{Status: PaymentSimulated},
			Date:          seedTime("2023-08-03T15:45:00Z"),
		},
		{
			ID:            "3",
			DonorName:     "Anonymous",
			Amount:        250,
			Type:          TypeShelter,
			PaymentMethod: MethodNetBanking,
			Notes:         "Anonymous donation",
			Payment:       Payment{Status: PaymentSimulated},
			Date:          seedTime("2023-07-28T11:20:00Z"),
		},
	}
}
