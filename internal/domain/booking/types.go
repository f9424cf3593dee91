package booking

// Status is the lifecycle state of a booking.
//
// REQUEST is the initial state assigned on admission. CANCELLED is terminal
// and absorbing. A cancelled booking stops occupying its room for the stay's
// date range.
type Status string

const (
	StatusRequest   Status = "REQUEST"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusRequest, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Occupies reports whether a booking in this status blocks its room's
// calendar.
func (s Status) Occupies() bool {
	return s == StatusRequest || s == StatusConfirmed
}
