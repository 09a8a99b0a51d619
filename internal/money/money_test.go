package money

import (
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParse(t *testing.T) {
	usd, err := Lookup("usd")
	assert.NoError(t, err)
	jpy, err := Lookup("JPY")
	assert.NoError(t, err)
	kwd, err := Lookup("KWD")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		currency Currency
		input    string
		want     int64
		wantErr  error
	}{
		{name: "DollarsAndCents", currency: usd, input: "12.34", want: 1234},
		{name: "WholeDollars", currency: usd, input: "100", want: 10000},
		{name: "OneDecimal", currency: usd, input: "0.5", want: 50},
		{name: "Whitespace", currency: usd, input: " 7.00 ", want: 700},
		{name: "Negative", currency: usd, input: "-5", want: -500},
		{name: "TrailingZerosBeyondPrecision", currency: usd, input: "1.2300", want: 123},
		{name: "NoMinorUnit", currency: jpy, input: "1500", want: 1500},
		{name: "ThreeDecimals", currency: kwd, input: "1.234", want: 1234},
		{name: "TooPrecise", currency: usd, input: "0.001", wantErr: ErrTooPrecise},
		{name: "TooPreciseYen", currency: jpy, input: "10.5", wantErr: ErrTooPrecise},
		{name: "Garbage", currency: usd, input: "twelve", wantErr: ErrInvalid},
		{name: "Empty", currency: usd, input: "", wantErr: ErrInvalid},
		{name: "Overflow", currency: usd, input: "100000000000000000000", wantErr: ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.currency.Parse(tt.input)
			if tt.wantErr != nil {
				assert.IsError(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	usd := Currencies["USD"]
	assert.Equal(t, "12.34", usd.Format(1234))
	assert.Equal(t, "0.05", usd.Format(5))
	assert.Equal(t, "-0.50", usd.Format(-50))
	assert.Equal(t, "0.00", usd.Format(0))
	assert.Equal(t, "12.34 USD", usd.FormatWithCode(1234))
	assert.Equal(t, "1500", Currencies["JPY"].Format(1500))
	assert.Equal(t, "1.234", Currencies["KWD"].Format(1234))
	assert.Equal(t, "92233720368547758.07", usd.Format(math.MaxInt64))
}

func TestRoundTrip(t *testing.T) {
	usd := Currencies["USD"]
	for _, amount := range []int64{1, 99, 100, 123456789} {
		got, err := usd.Parse(usd.Format(amount))
		assert.NoError(t, err)
		assert.Equal(t, amount, got)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("XYZ")
	assert.IsError(t, err, ErrUnknownCode)
}
