// Package money converts between display amounts ("12.34") and the integer
// minor units used everywhere else.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalid     = errors.New("invalid amount")
	ErrTooPrecise  = errors.New("amount has more decimal places than the currency allows")
	ErrOutOfRange  = errors.New("amount is out of range")
	ErrUnknownCode = errors.New("unknown currency code")
)

// Currency describes how many decimal places a currency's minor unit has.
type Currency struct {
	Code     string
	Exponent int32
}

// Currencies lists the supported currencies by ISO 4217 code.
var Currencies = map[string]Currency{
	"USD": {"USD", 2},
	"EUR": {"EUR", 2},
	"GBP": {"GBP", 2},
	"INR": {"INR", 2},
	"CAD": {"CAD", 2},
	"AUD": {"AUD", 2},
	"CHF": {"CHF", 2},
	"JPY": {"JPY", 0},
	"KRW": {"KRW", 0},
	"KWD": {"KWD", 3},
	"BHD": {"BHD", 3},
}

// Lookup returns the currency for an ISO 4217 code, case-insensitively.
func Lookup(code string) (Currency, error) {
	c, ok := Currencies[strings.ToUpper(code)]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %q", ErrUnknownCode, code)
	}
	return c, nil
}

// Parse converts a decimal string into minor units, e.g. "12.34" USD -> 1234.
// Amounts with more decimal places than the currency allows are rejected
// rather than rounded.
func (c Currency) Parse(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	minor := d.Shift(c.Exponent)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%w: %q in %s", ErrTooPrecise, s, c.Code)
	}
	n := minor.BigInt()
	if !n.IsInt64() {
		return 0, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}
	return n.Int64(), nil
}

// Format renders minor units as a fixed-point decimal string, e.g. 1234 -> "12.34".
func (c Currency) Format(amount int64) string {
	return decimal.New(amount, -c.Exponent).StringFixed(c.Exponent)
}

// FormatWithCode renders minor units followed by the currency code, e.g. "12.34 USD".
func (c Currency) FormatWithCode(amount int64) string {
	return c.Format(amount) + " " + c.Code
}
