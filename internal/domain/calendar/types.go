package calendar

type EntryType string

const (
	EntryTypeAvailability EntryType = "availability"
	EntryTypeRequest      EntryType = "request"
)

func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeAvailability, EntryTypeRequest:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusAvailable Status = "available"
	StatusRequested Status = "requested"
	StatusBooked    Status = "booked"
	StatusCancelled Status = "cancelled"
	StatusInReview  Status = "in_review"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusRequested, StatusBooked, StatusCancelled, StatusInReview:
		return true
	default:
		return false
	}
}

// DefaultStatus devuelve el estado inicial según el tipo de entrada.
func DefaultStatus(t EntryType) Status {
	if t == EntryTypeAvailability {
		return StatusAvailable
	}
	return StatusRequested
}

const (
	MaxReasonLength  = 500
	MinNeighborRange = 1
	MaxNeighborRange = 50
)
