package donations

import "time"

type Type string

const (
	TypeGeneral Type = "general"
	TypeMedical Type = "medical"
	TypeFood    Type = "food"
	TypeShelter Type = "shelter"
	TypeRescue  Type = "rescue"
)

func (t Type) Valid() bool {
	switch t {
	case TypeGeneral, TypeMedical, TypeFood, TypeShelter, TypeRescue:
		return true
	}
	return false
}

type PaymentMethod string

const (
	MethodCard       PaymentMethod = "card"
	MethodUPI        PaymentMethod = "upi"
	MethodNetBanking PaymentMethod = "netbanking"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCard, MethodUPI, MethodNetBanking:
		return true
	}
	return false
}

type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnually  Frequency = "annually"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnually:
		return true
	}
	return false
}

// PaymentSimulated: no hay pasarela real, el pago siempre se marca así.
const PaymentSimulated = "simulated"

type Payment struct {
	Status string `json:"status"`
	Last4  string `json:"last4,omitempty"`
}

type Donation struct {
	ID         string `json:"id"`
	DonorName  string `json:"donorName"`
	DonorEmail string `json:"donorEmail,omitempty"`

	Amount        float64       `json:"amount"`
	Type          Type          `json:"purpose"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	IsRecurring   bool          `json:"isRecurring"`
	Frequency     Frequency     `json:"frequency,omitempty"`
	Notes         string        `json:"notes,omitempty"`

	Payment Payment   `json:"payment"`
	Date    time.Time `json:"date"`
}

type Form struct {
	Amount        float64       `json:"amount"`
	DonorName     string        `json:"donorName"`
	Email         string        `json:"email"`
	DonationType  Type          `json:"donationType"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	IsRecurring   bool          `json:"isRecurring"`
	Frequency     Frequency     `json:"frequency"`
}

type CardForm struct {
	CardNumber  string `json:"cardNumber"`
	CardName    string `json:"cardName"`
	ExpiryMonth string `json:"expiryMonth"` // MM
	ExpiryYear  string `json:"expiryYear"`  // YY
	CVV         string `json:"cvv"`
}

// Request es el body de POST /donations. Card sólo se exige con paymentMethod=card.
type Request struct {
	Donation Form      `json:"donation"`
	Card     *CardForm `json:"card,omitempty"`
}
