// Package money holds display helpers for dollar amounts.
//
// Amounts are carried as float64 at full precision and rounded only at the
// presentation boundary.
package money

import (
	"fmt"
	"math"
)

// Round rounds an amount to cents using round-half-to-even.
func Round(amount float64) float64 {
	cents := amount * 100
	// Values like 12.65 are stored as 12.649999..., snap them before rounding
	// so half-even sees the intended tie.
	snapped := math.Round(cents*1e6) / 1e6
	return math.RoundToEven(snapped) / 100
}

// Format renders an amount as "$1,234.50".
func Format(amount float64) string {
	r := Round(amount)
	sign := ""
	if r < 0 {
		sign = "-"
		r = -r
	}
	whole := int64(r)
	cents := int64(math.Round((r - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}
	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(whole), cents)
}

// PerHour renders a rate as "$30/hr", dropping cents when they are zero.
func PerHour(rate float64) string {
	r := Round(rate)
	if r == math.Trunc(r) {
		return fmt.Sprintf("$%s/hr", groupThousands(int64(r)))
	}
	return Format(r) + "/hr"
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	pre := len(s) % 3
	if pre > 0 {
		out = append(out, s[:pre]...)
	}
	for i := pre; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
