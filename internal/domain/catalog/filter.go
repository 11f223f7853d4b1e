package catalog

import "strings"

// Criteria: string vacío = sin filtro en ese eje.
type Criteria struct {
	Search  string
	Species Species
	Status  AdoptionStatus
}

// Matches exige los tres predicados a la vez.
// Search es substring case-insensitive sobre name, breed o description;
// Species y Status son igualdad exacta.
func (c Criteria) Matches(a Animal) bool {
	if c.Search != "" {
		term := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(a.Name), term) &&
			!strings.Contains(strings.ToLower(a.Breed), term) &&
			!strings.Contains(strings.ToLower(a.Description), term) {
			return false
		}
	}
	if c.Species != "" && a.Species != c.Species {
		return false
	}
	if c.Status != "" && a.AdoptionStatus != c.Status {
		return false
	}
	return true
}

// FilterAnimals es pura: conserva el orden de entrada y no cachea nada.
func FilterAnimals(in []Animal, c Criteria) []Animal {
	out := make([]Animal, 0, len(in))
	for _, a := range in {
		if c.Matches(a) {
			out = append(out, a.clone())
		}
	}
	return out
}
