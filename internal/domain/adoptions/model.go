package adoptions

import "time"

type Status string

const (
	StatusPending   Status = "Pending"
	StatusReviewing Status = "Reviewing"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewing, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Open: todavía no hay decisión.
func (s Status) Open() bool {
	return s == StatusPending || s == StatusReviewing
}

type Applicant struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
}

// Application referencia al animal por ID; no es dueña del registro.
type Application struct {
	ID        string    `json:"id"`
	AnimalID  string    `json:"animalId"`
	Applicant Applicant `json:"applicant"`

	HousingType        string `json:"housingType"`
	HasOwnedPetsBefore bool   `json:"hasOwnedPetsBefore"`
	CurrentPets        string `json:"currentPets,omitempty"`
	HasChildren        bool   `json:"hasChildren"`
	ChildrenAges       string `json:"childrenAges,omitempty"`
	WorkSchedule       string `json:"workSchedule"`
	ActivityLevel      string `json:"activityLevel"`
	WhyAdopt           string `json:"whyAdopt"`

	Status Status `json:"status"`
	Notes  string `json:"notes,omitempty"`

	AppliedAt time.Time  `json:"applicationDate"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DecidedAt *time.Time `json:"approvalDate,omitempty"`
}

var (
	housingTypes   = []string{"house", "apartment", "condo", "mobile", "other"}
	activityLevels = []string{"sedentary", "moderate", "active", "athletic"}
)

// Form es lo que completa el solicitante.
type Form struct {
	AnimalID string `json:"animalId"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`

	HousingType        string `json:"housingType"`
	HasOwnedPetsBefore bool   `json:"hasOwnedPetsBefore"`
	CurrentPets        string `json:"currentPets"`
	HasChildren        bool   `json:"hasChildren"`
	ChildrenAges       string `json:"childrenAges"`
	WorkSchedule       string `json:"workSchedule"`
	ActivityLevel      string `json:"activityLevel"`
	WhyAdopt           string `json:"whyAdopt"`
	AgreeTerms         bool   `json:"agreeTerms"`
}
