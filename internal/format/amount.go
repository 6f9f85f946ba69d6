package format

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmptyAmount is returned by ParseAmount for blank input.
var ErrEmptyAmount = errors.New("empty amount")

// ErrNotPlain is returned by ParseAmount for anything other than an
// optionally signed run of digits with at most one decimal point.
var ErrNotPlain = errors.New("not a plain decimal")

var plainDecimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

var groupingReplacer = strings.NewReplacer(
	",", "",
	"_", "",
	" ", "",
	"\u00a0", "", // no-break space
	"\u202f", "", // narrow no-break space
)

// StripGrouping removes thousands separators: "1,250.00" -> "1250.00".
func StripGrouping(s string) string {
	return groupingReplacer.Replace(strings.TrimSpace(s))
}

// ParseAmount parses a display amount, which may contain grouping
// separators, into an exact decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	plain := StripGrouping(s)
	if plain == "" {
		return decimal.Decimal{}, ErrEmptyAmount
	}
	// Exponent forms like "1e50000000" would rescale to huge integers.
	if !plainDecimal.MatchString(plain) {
		return decimal.Decimal{}, ErrNotPlain
	}
	return decimal.NewFromString(plain)
}

// zeroDecimal and threeDecimal list ISO 4217 currencies whose minor unit
// differs from 2 places.
var (
	zeroDecimal = map[string]bool{
		"BIF": true, "CLP": true, "DJF": true, "GNF": true, "ISK": true,
		"JPY": true, "KMF": true, "KRW": true, "PYG": true, "RWF": true,
		"UGX": true, "VND": true, "VUV": true, "XAF": true, "XOF": true,
		"XPF": true,
	}
	threeDecimal = map[string]bool{
		"BHD": true, "IQD": true, "JOD": true, "KWD": true, "LYD": true,
		"OMR": true, "TND": true,
	}
)

// MinorUnits returns the number of decimal places for a currency code.
// Unknown codes default to 2.
func MinorUnits(currency string) int32 {
	c := strings.ToUpper(currency)
	switch {
	case zeroDecimal[c]:
		return 0
	case threeDecimal[c]:
		return 3
	}
	return 2
}
