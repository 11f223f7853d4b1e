package incidents

type Status string

const (
	StatusReported           Status = "Reported"
	StatusUnderInvestigation Status = "Under Investigation"
	StatusResolved           Status = "Resolved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusReported, StatusUnderInvestigation, StatusResolved:
		return true
	}
	return false
}

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

type AnimalType string

const (
	AnimalDog       AnimalType = "dog"
	AnimalCat       AnimalType = "cat"
	AnimalBird      AnimalType = "bird"
	AnimalLivestock AnimalType = "livestock"
	AnimalWildlife  AnimalType = "wildlife"
	AnimalOther     AnimalType = "other"
)

func (a AnimalType) Valid() bool {
	switch a {
	case AnimalDog, AnimalCat, AnimalBird, AnimalLivestock, AnimalWildlife, AnimalOther:
		return true
	}
	return false
}
