package domain

// AdvisoryContext is everything the orchestrator may draw on when
// composing a response. Any field may be absent - a missing source
// degrades the answer, it never fails the request.
type AdvisoryContext struct {
	Snapshot        *FinancialSnapshot
	Knowledge       []KnowledgeChunk
	Recommendations *RecommendationSet
	History         []ChatTurn
}
