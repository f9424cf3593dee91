package booking

import (
	"errors"
	"regexp"
	"time"
	"unicode/utf8"
)

var (
	ErrInvalidRange    = errors.New("check-out must be after check-in")
	ErrCheckInInPast   = errors.New("check-in date is in the past")
	ErrInvalidGuestRef = errors.New("guest name and surname must be 3-50 Cyrillic letters with optional hyphens")
	ErrInvalidAge      = errors.New("guest age must be between 0 and 127")
	ErrInvalidDocument = errors.New("identity document number must be 3-20 digits")
)

const (
	MinNameLength     = 3
	MaxNameLength     = 50
	MinAge            = 0
	MaxAge            = 127
	MinDocumentLength = 3
	MaxDocumentLength = 20
)

var (
	cyrillicNamePattern = regexp.MustCompile(`^[А-ЯЁа-яё]+(?:-[А-ЯЁа-яё]+)*$`)
	documentPattern     = regexp.MustCompile(`^\d+$`)
)

// StayRange is a half-open date interval [CheckIn, CheckOut): the guest
// occupies the room on the check-in night but not on the check-out night, so
// back-to-back stays never conflict.
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	checkIn = toDate(checkIn)
	checkOut = toDate(checkOut)
	if !checkOut.After(checkIn) {
		return StayRange{}, ErrInvalidRange
	}
	return StayRange{checkIn: checkIn, checkOut: checkOut}, nil
}

func (r StayRange) CheckIn() time.Time {
	return r.checkIn
}

func (r StayRange) CheckOut() time.Time {
	return r.checkOut
}

func (r StayRange) Nights() int64 {
	return int64(r.checkOut.Sub(r.checkIn).Hours() / 24)
}

// Overlaps implements the strict overlap test on half-open ranges:
// [a,b) and [c,d) conflict iff a < d && c < b.
func (r StayRange) Overlaps(other StayRange) bool {
	return r.checkIn.Before(other.checkOut) && other.checkIn.Before(r.checkOut)
}

// ValidateNotPast rejects ranges starting before today.
func (r StayRange) ValidateNotPast(today time.Time) error {
	if r.checkIn.Before(toDate(today)) {
		return ErrCheckInInPast
	}
	return nil
}

func toDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Guest exists only as part of a booking's guest list; it has no independent
// lifecycle. The order of guests matters for display, not for pricing.
type Guest struct {
	name           string
	surname        string
	age            int
	documentNumber string
}

func NewGuest(name, surname string, age int, documentNumber string) (Guest, error) {
	if !validName(name) || !validName(surname) {
		return Guest{}, ErrInvalidGuestRef
	}
	if age < MinAge || age > MaxAge {
		return Guest{}, ErrInvalidAge
	}
	if l := len(documentNumber); l < MinDocumentLength || l > MaxDocumentLength || !documentPattern.MatchString(documentNumber) {
		return Guest{}, ErrInvalidDocument
	}
	return Guest{
		name:           name,
		surname:        surname,
		age:            age,
		documentNumber: documentNumber,
	}, nil
}

func validName(s string) bool {
	l := utf8.RuneCountInString(s)
	return l >= MinNameLength && l <= MaxNameLength && cyrillicNamePattern.MatchString(s)
}

func (g Guest) Name() string           { return g.name }
func (g Guest) Surname() string        { return g.surname }
func (g Guest) Age() int               { return g.age }
func (g Guest) DocumentNumber() string { return g.documentNumber }
