// Package currency provides formatting and simple arithmetic helpers for
// Rand amounts and contribution dates.
package currency

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Format renders an amount with a currency symbol and thousands
// separators, e.g. Format(45000, "R") == "R45,000". The amount is
// rounded to cents once before the whole and fractional parts are
// split, so a fraction that rounds up carries into the whole part.
func Format(amount float64, symbol string) string {
	if symbol == "" {
		symbol = "R"
	}
	cents := int64(math.Round(math.Abs(amount) * 100))
	neg := amount < 0 && cents != 0

	s := groupThousands(strconv.FormatInt(cents/100, 10))
	if frac := cents % 100; frac != 0 {
		s += fmt.Sprintf(".%02d", frac)
	}
	if neg {
		return "-" + symbol + s
	}
	return symbol + s
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Parse extracts a numeric amount from a currency string, ignoring the
// symbol and separators. Returns 0 for unparseable input.
func Parse(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// Percentage computes round(100*part/total), returning 0 when total is
// zero.
func Percentage(part, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(part / total * 100))
}

// FormatDate renders a date for display, e.g. "15 Dec 2024".
func FormatDate(t time.Time) string {
	return t.Format("2 Jan 2006")
}

// TimeUntil describes the time remaining until the target in the largest
// sensible unit: days under a week, weeks under a month, months beyond.
func TimeUntil(target, now time.Time) string {
	diff := target.Sub(now)
	if diff < 0 {
		return "Expired"
	}

	days := int(math.Ceil(diff.Hours() / 24))
	switch {
	case days == 1:
		return "1 day"
	case days < 7:
		return fmt.Sprintf("%d days", days)
	case days < 30:
		return fmt.Sprintf("%d weeks", int(math.Ceil(float64(days)/7)))
	default:
		return fmt.Sprintf("%d months", int(math.Ceil(float64(days)/30)))
	}
}
