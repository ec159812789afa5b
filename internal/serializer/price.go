package serializer

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidPrice is returned for amounts that are not a fixed-point
// number with at most 3 integer digits and 2 decimal places.
var ErrInvalidPrice = errors.New("invalid price")

// ParsePrice converts a decimal string like "5.25" to cents. Floats are
// avoided on purpose so "0.1" style inputs stay exact.
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidPrice
	}

	whole, frac := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		whole, frac = s[:dot], s[dot+1:]
	}

	if whole == "" || len(whole) > 3 || !allDigits(whole) {
		return 0, ErrInvalidPrice
	}
	if len(frac) > 2 || !allDigits(frac) {
		return 0, ErrInvalidPrice
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}

	cents := int64(0)
	if frac != "" {
		// "5.2" means 20 cents, not 2
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, ErrInvalidPrice
		}
	}

	return units*100 + cents, nil
}

// FormatPrice renders cents as a two-decimal string, e.g. 525 -> "5.25"
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
}

// allDigits rejects anything strconv would tolerate beyond plain
// digits, like a leading sign inside the fraction
func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
