package calendar

import "time"

// Entry es una entrada del calendario: una ventana de disponibilidad de un cuidador
// o una solicitud de cuidado para una o más mascotas.
type Entry struct {
	ID     string
	UserID string

	Type EntryType

	// Intervalo semiabierto [StartDate, EndDate), siempre en UTC.
	StartDate time.Time
	EndDate   time.Time

	Status Status

	Pets   []string
	Reason string

	// NeighborDistanceRange es opcional (nil = sin preferencia).
	NeighborDistanceRange *int

	IsDeleted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateInput llega desde el handler con las fechas sin normalizar.
type CreateInput struct {
	UserID                string
	Type                  EntryType
	StartDate             string
	EndDate               string
	Status                *Status
	Pets                  []string
	Reason                *string
	NeighborDistanceRange *int
}

// Patch representa un update parcial: nil = no tocar.
type Patch struct {
	Type                  *EntryType
	StartDate             *string
	EndDate               *string
	Status                *Status
	Pets                  *[]string
	Reason                *string
	NeighborDistanceRange *int
}

func (p Patch) touchesInterval() bool {
	return p.StartDate != nil || p.EndDate != nil
}

func (p Patch) touchesTypeFields() bool {
	return p.Type != nil || p.Pets != nil || p.Reason != nil
}

// Stats es el resumen agregado de /calendar/stats/overview.
type Stats struct {
	TotalEntries        int
	EntriesByType       map[EntryType]int
	EntriesByStatus     map[Status]int
	AvailabilityEntries int
	RequestEntries      int
}
