// Package money holds the rupee helpers shared by the totals engine,
// the catalog importers and the renderers.
package money

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts a user-entered amount into a decimal. Anything that is not
// a number (empty cells, "abc", "12,34x") becomes zero so that a half-typed
// form field never poisons a total. Thousands separators and a leading rupee
// sign are tolerated.
func Parse(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Format renders an amount with exactly two fraction digits ("1180.00").
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatINR renders an amount using Indian digit grouping with a rupee sign,
// e.g. 118000 -> "₹1,18,000.00".
func FormatINR(d decimal.Decimal) string {
	neg := d.IsNegative()
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var grouped string
	if len(intPart) <= 3 {
		grouped = intPart
	} else {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		grouped = strings.Join(parts, ",") + "," + tail
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return sign + "₹" + grouped + "." + frac
}

// Lenient is a decimal that decodes from a JSON number, a numeric string or
// anything else (treated as zero). It is used on request bodies coming from
// live-edited forms.
type Lenient decimal.Decimal

// Decimal returns the underlying value.
func (l Lenient) Decimal() decimal.Decimal {
	return decimal.Decimal(l)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Lenient) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	*l = Lenient(Parse(string(data)))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l Lenient) MarshalJSON() ([]byte, error) {
	return decimal.Decimal(l).MarshalJSON()
}
