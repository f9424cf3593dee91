package promo

import (
	"errors"

	"hotel-booking/internal/domain/shared/money"
)

var ErrInvalidValue = errors.New("promo discount value is out of range")

// Kind distinguishes a fixed amount off from a percentage off.
type Kind string

const (
	KindFixed   Kind = "FIXED"
	KindPercent Kind = "PERCENT"
)

func (k Kind) IsValid() bool {
	return k == KindFixed || k == KindPercent
}

// Discount converts a subtotal into the adjusted total. It never returns a
// negative amount.
type Discount struct {
	kind      Kind
	amountOff money.Money
	percent   float64
}

func NewFixedDiscount(amountOff money.Money) (Discount, error) {
	if !amountOff.IsPositive() {
		return Discount{}, ErrInvalidValue
	}
	return Discount{kind: KindFixed, amountOff: amountOff}, nil
}

func NewPercentDiscount(percent float64) (Discount, error) {
	if percent < 0 || percent > 100 {
		return Discount{}, ErrInvalidValue
	}
	return Discount{kind: KindPercent, percent: percent}, nil
}

func (d Discount) Kind() Kind {
	return d.kind
}

func (d Discount) AmountOff() money.Money {
	return d.amountOff
}

func (d Discount) Percent() float64 {
	return d.percent
}

func (d Discount) Apply(subtotal money.Money) money.Money {
	if d.kind == KindPercent {
		return subtotal.ApplyPercentOff(d.percent)
	}
	return subtotal.SubFloor(d.amountOff)
}
