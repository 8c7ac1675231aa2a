// Package rules is the deterministic calculation engine. Every function
// here is pure: explicit numeric inputs in, a typed result out, no I/O.
// The generation layer narrates these results; it never derives numbers
// of its own.
package rules

import "math"

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*10) / 10
}

// CalculateSavingsRate returns savings as a percentage of income,
// 0 when income is non-positive.
func CalculateSavingsRate(totalIncome, totalExpenses float64) float64 {
	if totalIncome <= 0 {
		return 0
	}
	savings := totalIncome - totalExpenses
	return round2((savings / totalIncome) * 100)
}
