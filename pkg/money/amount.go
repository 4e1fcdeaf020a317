// Package money provides the INR amount type used throughout the engine.
// Amounts are decimal values; display formatting (currency symbol, locale
// separators) is a presentation concern and lives outside this package.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a decimal INR amount. The zero value is zero rupees.
type Amount struct {
	decimal.Decimal
}

// Zero returns a zero amount.
func Zero() Amount {
	return Amount{}
}

// FromInt creates an amount from a whole-rupee value.
func FromInt(v int64) Amount {
	return Amount{decimal.NewFromInt(v)}
}

// FromDecimal wraps a decimal value as an amount.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{d}
}

// FromString parses a plain decimal string. Unlike UnmarshalJSON it reports
// parse failures to the caller.
func FromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{d}, nil
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{a.Decimal.Add(b.Decimal)}
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return Amount{a.Decimal.Sub(b.Decimal)}
}

// Abs returns the magnitude of the amount.
func (a Amount) Abs() Amount {
	return Amount{a.Decimal.Abs()}
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.Decimal.IsZero()
}

// UnmarshalJSON decodes an amount from the vocabularies the platform backend
// actually emits: JSON numbers, quoted numbers, and formatted display strings
// ("₹1,250.00", "Rs. 500"). Absent, null, or unparsable values decode to
// zero rather than failing the whole record.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	s = strings.Trim(s, `"`)
	s = sanitize(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// sanitize strips currency markers and digit separators from a display string.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"₹", "Rs.", "Rs", "INR"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}
