package domain

// ModelTier selects the latency/quality tradeoff for a generation call.
// The fast tier gets a tighter prompt budget and a shorter timeout.
type ModelTier string

const (
	TierFast     ModelTier = "fast"
	TierDetailed ModelTier = "detailed"
)
