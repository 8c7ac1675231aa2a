// Package params pulls numeric calculation inputs out of free text.
// Extraction is best effort by design: regex patterns misfire on
// compound phrasing, so callers must treat a nil or partial result as
// "calculation skipped" and never substitute guessed defaults.
package params

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	lakh  = 100000
	crore = 10000000
)

type LoanParams struct {
	Principal    *float64
	AnnualRate   *float64
	TenureMonths *int
}

type SIPParams struct {
	Monthly    *float64
	AnnualRate *float64
	Years      *int
}

type GoalParams struct {
	Target *float64
	Years  *int
}

var (
	loanPrincipalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:loan|borrow|principal)\D*?(?:rs\.?|₹|inr)?\s*(\d+(?:,\d+)*(?:\.\d+)?)`),
		regexp.MustCompile(`(\d+(?:,\d+)*(?:\.\d+)?)\s*(?:lakh|lac|crore|cr)?\s*(?:loan|rs|₹)`),
	}
	ratePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:%|percent|per\s*cent)`),
		regexp.MustCompile(`(?:rate|interest)\D*?(\d+(?:\.\d+)?)`),
	}
	yearPattern  = regexp.MustCompile(`(\d+)\s*(?:years?|yrs?)`)
	monthPattern = regexp.MustCompile(`(\d+)\s*months?`)

	sipAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:sip|invest|monthly)\D*?(?:rs\.?|₹|inr)?\s*(\d+(?:,\d+)*(?:\.\d+)?)`),
		regexp.MustCompile(`(\d+(?:,\d+)*(?:\.\d+)?)\s*(?:per\s*month|monthly|pm)`),
	}
	sipRatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:%|percent)\s*(?:return|growth)`),
		regexp.MustCompile(`(?:return|expect)\D*?(\d+(?:\.\d+)?)\s*%`),
	}

	goalTargetPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:target|goal|need|want)\D*?(?:rs\.?|₹|inr)?\s*(\d+(?:,\d+)*(?:\.\d+)?)`),
		regexp.MustCompile(`(\d+(?:,\d+)*(?:\.\d+)?)\s*(?:lakh|lac|crore|cr)`),
	}
)

func firstMatch(patterns []*regexp.Regexp, text string) (float64, bool) {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}

// applyUnitMultiplier scales by lakh/crore when either unit appears in
// the message. Matching the whole message rather than the captured span
// is a known limitation carried over from the source behavior.
func applyUnitMultiplier(amount float64, text string) float64 {
	if strings.Contains(text, "crore") || regexp.MustCompile(`\d\s*cr\b`).MatchString(text) {
		return amount * crore
	}
	if strings.Contains(text, "lakh") || strings.Contains(text, "lac") {
		return amount * lakh
	}
	return amount
}

// ExtractLoanParams pulls principal, rate, and tenure for an EMI
// calculation. Returns nil when nothing at all was found.
func ExtractLoanParams(message string) *LoanParams {
	text := strings.ToLower(message)
	p := &LoanParams{}

	if amount, ok := firstMatch(loanPrincipalPatterns, text); ok {
		amount = applyUnitMultiplier(amount, text)
		p.Principal = &amount
	}

	if rate, ok := firstMatch(ratePatterns, text); ok {
		p.AnnualRate = &rate
	}

	if m := yearPattern.FindStringSubmatch(text); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			months := years * 12
			p.TenureMonths = &months
		}
	} else if m := monthPattern.FindStringSubmatch(text); m != nil {
		if months, err := strconv.Atoi(m[1]); err == nil {
			p.TenureMonths = &months
		}
	}

	if p.Principal == nil && p.AnnualRate == nil && p.TenureMonths == nil {
		return nil
	}
	return p
}

// ExtractSIPParams pulls the monthly amount, expected return, and
// duration for a SIP projection.
func ExtractSIPParams(message string) *SIPParams {
	text := strings.ToLower(message)
	p := &SIPParams{}

	if amount, ok := firstMatch(sipAmountPatterns, text); ok {
		p.Monthly = &amount
	}

	if rate, ok := firstMatch(sipRatePatterns, text); ok {
		p.AnnualRate = &rate
	}

	if m := yearPattern.FindStringSubmatch(text); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			p.Years = &years
		}
	}

	if p.Monthly == nil && p.AnnualRate == nil && p.Years == nil {
		return nil
	}
	return p
}

// ExtractGoalParams pulls the target amount and horizon for a goal
// feasibility check.
func ExtractGoalParams(message string) *GoalParams {
	text := strings.ToLower(message)
	p := &GoalParams{}

	if amount, ok := firstMatch(goalTargetPatterns, text); ok {
		amount = applyUnitMultiplier(amount, text)
		p.Target = &amount
	}

	if m := yearPattern.FindStringSubmatch(text); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			p.Years = &years
		}
	}

	if p.Target == nil && p.Years == nil {
		return nil
	}
	return p
}
