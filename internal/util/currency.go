package util

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR renders an amount with the rupee sign and Indian digit
// grouping (₹12,34,567). Fractions are dropped - chat answers quote
// whole rupees.
func FormatINR(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "₹0"
	}
	neg := v < 0
	s := fmt.Sprintf("%.0f", math.Abs(v))
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		groups := []string{}
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(groups, ",") + "," + tail
	}
	if neg {
		return "-₹" + s
	}
	return "₹" + s
}

func FormatINRDecimal(d decimal.Decimal) string {
	return FormatINR(d.InexactFloat64())
}

func DecimalPointer(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func Float64Pointer(f float64) *float64 {
	return &f
}
