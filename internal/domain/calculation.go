package domain

type CalculationKind string

const (
	CalculationEMI              CalculationKind = "emi"
	CalculationSIP              CalculationKind = "sip"
	CalculationCompoundInterest CalculationKind = "compound_interest"
	CalculationGoal             CalculationKind = "goal"
	CalculationAffordability    CalculationKind = "loan_affordability"
	CalculationPrepayment       CalculationKind = "loan_prepayment"
	CalculationLifeInsurance    CalculationKind = "life_insurance"
	CalculationHealthInsurance  CalculationKind = "health_insurance"
	CalculationHealthScore      CalculationKind = "health_score"
)

// CalculationField is one labeled output of a calculation, pre-formatted
// for display. The prompt builder and the template fallback render these
// verbatim - they never derive new numbers from them.
type CalculationField struct {
	Label string
	Value string
}

// Calculation is the common surface of every rules-engine result. Each
// calculation kind has its own struct with explicit named fields; this
// interface only exists so the orchestrator can narrate results without
// caring which kind it holds.
type Calculation interface {
	Kind() CalculationKind
	Fields() []CalculationField
}
