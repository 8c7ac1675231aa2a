package domain

// KnowledgeChunk is a ranked passage returned by the retrieval store.
// Relevance is normalized to [0, 1]; the core reads ranked lists and
// never persists them.
type KnowledgeChunk struct {
	Content   string
	Category  Category
	Source    string
	Relevance float64
}
