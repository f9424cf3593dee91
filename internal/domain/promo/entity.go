package promo

import (
	"errors"
	"regexp"
	"time"
	"unicode/utf8"

	"hotel-booking/internal/domain/shared/money"
)

var (
	ErrInvalidCode = errors.New("promo code must be 1-20 letters or digits")
	ErrExpired     = errors.New("promo code has expired")
	ErrNotYetValid = errors.New("promo code is not yet valid")
	ErrInactive    = errors.New("promo code is inactive")
)

const MaxCodeLength = 20

var codePattern = regexp.MustCompile(`^[а-яА-ЯёЁa-zA-Z0-9]+$`)

// PromoCode is immutable reference data during evaluation. Applying it never
// writes anything back; usage limiting is an external concern.
type PromoCode struct {
	code       string
	discount   Discount
	validFrom  time.Time
	validUntil time.Time
	active     bool
}

func NewPromoCode(code string, discount Discount, validFrom, validUntil time.Time, active bool) (*PromoCode, error) {
	if utf8.RuneCountInString(code) > MaxCodeLength || !codePattern.MatchString(code) {
		return nil, ErrInvalidCode
	}
	return &PromoCode{
		code:       code,
		discount:   discount,
		validFrom:  validFrom,
		validUntil: validUntil,
		active:     active,
	}, nil
}

// ValidateUsage checks the activity flag and the validity window against the
// given date. The window invariant validFrom <= validUntil lives here, not in
// field-level validation.
func (p *PromoCode) ValidateUsage(today time.Time) error {
	if !p.active {
		return ErrInactive
	}
	if p.validUntil.Before(p.validFrom) {
		return ErrInvalidValue
	}
	if today.Before(p.validFrom) {
		return ErrNotYetValid
	}
	if today.After(p.validUntil) {
		return ErrExpired
	}
	return nil
}

// Apply validates the code against today and adjusts the subtotal. It is a
// pure function of (subtotal, promo, today).
func (p *PromoCode) Apply(subtotal money.Money, today time.Time) (money.Money, error) {
	if err := p.ValidateUsage(today); err != nil {
		return money.Money{}, err
	}
	return p.discount.Apply(subtotal), nil
}

func (p *PromoCode) Code() string          { return p.code }
func (p *PromoCode) Discount() Discount    { return p.discount }
func (p *PromoCode) ValidFrom() time.Time  { return p.validFrom }
func (p *PromoCode) ValidUntil() time.Time { return p.validUntil }
func (p *PromoCode) IsActive() bool        { return p.active }
