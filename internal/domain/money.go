package domain

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits carried by Money.
const Scale = 4

// maxIntegerDigits is the number of integer digits in the largest Money value,
// 1844674407370955.1615.
const maxIntegerDigits = 16

var (
	// ErrNegativeAmount is returned when a negative value is converted to Money.
	ErrNegativeAmount = errors.New("amount must not be negative")
	// ErrInvalidAmount is returned for NaN or infinite float input.
	ErrInvalidAmount = errors.New("amount is not a finite number")
	// ErrMoneyOverflow is returned when a value does not fit in the Money range.
	ErrMoneyOverflow = errors.New("amount overflows the money range")
)

// Money is a non-negative fixed-point amount with four decimal places,
// stored as a count of 1/10000 units. The zero value is 0.0000.
type Money struct {
	units uint64
}

// NewMoney builds Money from a raw count of 1/10000 units.
func NewMoney(units uint64) Money {
	return Money{units: units}
}

// ParseMoney converts decimal text such as "12.3456" into Money.
// Digits beyond the fourth decimal place are rounded half away from zero.
func ParseMoney(text string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return Money{}, fmt.Errorf("could not parse amount %q: %w", text, err)
	}
	m, err := fromDecimal(d)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", err, text)
	}
	return m, nil
}

// MoneyFromFloat converts a floating point value into Money using the same
// rounding as ParseMoney.
func MoneyFromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}, ErrInvalidAmount
	}
	m, err := fromDecimal(decimal.NewFromFloat(f))
	if err != nil {
		return Money{}, fmt.Errorf("%w: %v", err, f)
	}
	return m, nil
}

// fromDecimal rounds d to Scale places. The magnitude is checked from the
// coefficient and exponent first, since rounding or shifting values such as
// 1e-9999999 or 1e9999999 would build a huge big.Int.
func fromDecimal(d decimal.Decimal) (Money, error) {
	coefficient := d.Coefficient()
	if coefficient.Sign() == 0 {
		return Money{}, nil
	}

	// |d| lies in [10^(magnitude-1), 10^magnitude).
	digits := len(coefficient.Abs(coefficient).Text(10))
	magnitude := int64(digits) + int64(d.Exponent())
	if magnitude < -Scale {
		// Below 0.00001, rounds to zero.
		return Money{}, nil
	}
	if magnitude > maxIntegerDigits {
		if d.IsNegative() {
			return Money{}, ErrNegativeAmount
		}
		return Money{}, ErrMoneyOverflow
	}

	rounded := d.Round(Scale)
	if rounded.IsNegative() {
		return Money{}, ErrNegativeAmount
	}

	scaled := rounded.Shift(Scale).BigInt()
	if !scaled.IsUint64() {
		return Money{}, ErrMoneyOverflow
	}
	return Money{units: scaled.Uint64()}, nil
}

// Units returns the raw count of 1/10000 units.
func (m Money) Units() uint64 {
	return m.units
}

// IsZero reports whether m is 0.0000.
func (m Money) IsZero() bool {
	return m.units == 0
}

// Add returns m + other, or ErrMoneyOverflow if the sum does not fit.
func (m Money) Add(other Money) (Money, error) {
	if m.units > math.MaxUint64-other.units {
		return Money{}, ErrMoneyOverflow
	}
	return Money{units: m.units + other.units}, nil
}

// minus is only called once the caller has checked m >= other.
func (m Money) minus(other Money) Money {
	return Money{units: m.units - other.units}
}

// Cmp returns -1, 0 or +1 depending on whether m is less than, equal to or
// greater than other.
func (m Money) Cmp(other Money) int {
	switch {
	case m.units < other.units:
		return -1
	case m.units > other.units:
		return 1
	default:
		return 0
	}
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.units < other.units
}

// Decimal returns m as an exact decimal value.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(m.units), -Scale)
}

// Float64 returns the nearest float64 to m. Intended for display only.
func (m Money) Float64() float64 {
	f, _ := m.Decimal().Float64()
	return f
}

// String renders m with exactly four fractional digits.
func (m Money) String() string {
	return m.Decimal().StringFixed(Scale)
}

// MarshalText implements encoding.TextMarshaler.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := ParseMoney(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
