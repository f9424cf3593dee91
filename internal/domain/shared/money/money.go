package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("money: invalid amount")

// Money keeps amounts in integer kopecks to avoid floating point issues.
// Rendering always carries exactly two decimal digits.
type Money struct {
	kopecks int64
}

func FromKopecks(v int64) Money {
	return Money{kopecks: v}
}

// Parse accepts decimal strings with at most two fractional digits,
// e.g. "1500", "1500.5", "1500.00".
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" || len(frac) > 2 {
		return Money{}, ErrInvalidAmount
	}
	rub, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	var kop int64
	if frac != "" {
		for len(frac) < 2 {
			frac += "0"
		}
		kop, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return Money{}, ErrInvalidAmount
		}
	}
	total := rub*100 + kop
	if neg {
		total = -total
	}
	return Money{kopecks: total}, nil
}

// Must parses the amount and panics on failure; useful in tests and fixtures.
func Must(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Kopecks() int64 {
	return m.kopecks
}

func (m Money) Add(other Money) Money {
	return Money{kopecks: m.kopecks + other.kopecks}
}

// SubFloor subtracts other clamping the result at zero.
func (m Money) SubFloor(other Money) Money {
	res := m.kopecks - other.kopecks
	if res < 0 {
		res = 0
	}
	return Money{kopecks: res}
}

func (m Money) MulInt(times int64) Money {
	return Money{kopecks: m.kopecks * times}
}

// ApplyPercentOff reduces the amount by percent, rounding half-up. This is the
// only place monetary rounding happens, so callers must apply it to the final
// total rather than to intermediate values.
func (m Money) ApplyPercentOff(percent float64) Money {
	// Basis points keep the computation in integers: percentages like 29.9
	// have no exact float form and would misround .5 boundaries otherwise.
	bp := int64(math.Round(percent * 100))
	if bp < 0 {
		bp = 0
	}
	if bp > 10000 {
		bp = 10000
	}
	rounded := (m.kopecks*(10000-bp) + 5000) / 10000
	if rounded < 0 {
		rounded = 0
	}
	return Money{kopecks: rounded}
}

func (m Money) IsPositive() bool {
	return m.kopecks > 0
}

func (m Money) IsZero() bool {
	return m.kopecks == 0
}

func (m Money) Equal(other Money) bool {
	return m.kopecks == other.kopecks
}

// String renders the amount with two decimal digits, e.g. "4950.00".
func (m Money) String() string {
	v := m.kopecks
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
