package incidents

import "time"

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Description es la descripción estructurada que espera el backend.
type Description struct {
	MainDescription string     `json:"mainDescription"`
	AnimalType      AnimalType `json:"animalType"`
	UrgencyLevel    Urgency    `json:"urgencyLevel"`
	AnimalCount     int        `json:"animalCount"`
}

// Report es el payload de POST /emergencies. No requiere autenticación.
type Report struct {
	Location    *Location   `json:"location"`
	Description Description `json:"description"`
}

// Incident es el registro local de una emergencia ya despachada.
type Incident struct {
	ID       string `json:"id"`
	RemoteID string `json:"remoteId,omitempty"`

	Location    *Location   `json:"location,omitempty"`
	Place       string      `json:"place,omitempty"` // dirección en texto (datos de demo)
	Description Description `json:"description"`

	ReporterName  string   `json:"reporterName,omitempty"`
	ReporterPhone string   `json:"reporterPhone,omitempty"`
	Images        []string `json:"images,omitempty"`

	Status Status `json:"status"`
	Notes  string `json:"notes,omitempty"`

	ReportedAt time.Time `json:"date"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
