package room

// Type is the comfort class of a room.
type Type string

const (
	TypeEconom   Type = "ECONOM"
	TypeStandart Type = "STANDART"
	TypeLuxe     Type = "LUXE"
	TypeDeluxe   Type = "DELUXE"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeEconom, TypeStandart, TypeLuxe, TypeDeluxe:
		return true
	default:
		return false
	}
}
