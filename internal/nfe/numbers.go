package nfe

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseDecimal reads a monetary or quantity value. NF-e files use a dot as the
// decimal separator, but hand-edited files sometimes carry the Brazilian
// "1.234,56" form, so both are accepted. Anything unreadable yields nil.
func ParseDecimal(raw string) *decimal.Decimal {
	s := strings.Join(strings.Fields(raw), "")
	s = strings.TrimPrefix(s, "R$")
	if s == "" {
		return nil
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastComma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// ParseDate reads the calendar date of an emission timestamp such as
// "2024-01-01T10:30:00-03:00" or a bare "2024-01-01". Time and offset are
// dropped; the result is midnight UTC of the printed date.
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if len(s) < 10 {
		return nil
	}
	s = s[:10]
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
