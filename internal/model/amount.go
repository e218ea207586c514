package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a price in Kenyan shillings.
//
// Decimal fields arrive from the API as strings ("1500.00"); older endpoints
// send plain numbers. Both decode to the same value.
type Amount float64

// NewAmount returns a pointer to v, handy for optional price fields.
func NewAmount(v float64) *Amount {
	a := Amount(v)
	return &a
}

// Float returns the amount as a float64.
func (a Amount) Float() float64 {
	return float64(a)
}

// String formats the amount as "KES 1,500" or "KES 1,500.50".
func (a Amount) String() string {
	sign := ""
	if a < 0 {
		sign = "-"
	}

	formatted := strconv.FormatFloat(math.Abs(float64(a)), 'f', 2, 64)
	whole, frac, _ := strings.Cut(formatted, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if frac == "00" {
		return fmt.Sprintf("KES %s%s", sign, b.String())
	}
	return fmt.Sprintf("KES %s%s.%s", sign, b.String(), frac)
}

// UnmarshalJSON accepts a number or a numeric string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", s, err)
		}
		*a = Amount(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	*a = Amount(v)
	return nil
}
