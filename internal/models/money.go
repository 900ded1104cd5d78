package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Cents is a money amount in integer cents. All arithmetic is exact;
// decimal formatting happens only at the API and report boundaries.
type Cents int64

// ParseCents reads a decimal amount like "50", "50.5" or "49.99".
// More than two fractional digits is an error, never silent rounding.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	wholeStr, fracStr, hasFrac := strings.Cut(s, ".")
	if wholeStr == "" && fracStr == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	var whole int64
	if wholeStr != "" {
		var err error
		whole, err = strconv.ParseInt(wholeStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}

	var frac int64
	if hasFrac {
		if fracStr == "" || len(fracStr) > 2 {
			return 0, fmt.Errorf("invalid amount %q: at most two decimal places", s)
		}
		var err error
		frac, err = strconv.ParseInt(fracStr, 10, 64)
		if err != nil || frac < 0 {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		if len(fracStr) == 1 {
			frac *= 10
		}
	}

	total := whole*100 + frac
	if negative {
		total = -total
	}
	return Cents(total), nil
}

// Mul scales the amount, used for daily_rate times day count.
func (c Cents) Mul(n int64) Cents {
	return Cents(int64(c) * n)
}

// String renders the amount with two decimal places.
func (c Cents) String() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON emits the decimal string form so clients never deal in
// raw cents.
func (c Cents) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts both "49.99" and a bare number of units.
func (c *Cents) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		parsed, err := ParseCents(str)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	parsed, err := ParseCents(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
