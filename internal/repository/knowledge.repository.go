package repository

import (
	"context"
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"clarifi/internal/domain"

	"github.com/gocarina/gocsv"
)

//go:embed seed/knowledge_base.csv
var knowledgeSeedCsv []byte

// KnowledgeRepository is the retrieval collaborator. Results come back
// ordered by descending relevance and may be empty - an empty list is
// valid input to the prompt builder.
type KnowledgeRepository interface {
	Search(ctx context.Context, query string, category domain.Category, topK int) ([]domain.KnowledgeChunk, error)
}

type knowledgeDocument struct {
	Title    string `csv:"title"`
	Category string `csv:"category"`
	Source   string `csv:"source"`
	Content  string `csv:"content"`
}

type knowledgeRepositoryHandler struct {
	documents []knowledgeDocument
}

func NewKnowledgeRepository() (KnowledgeRepository, error) {
	documents := []knowledgeDocument{}
	if err := gocsv.UnmarshalBytes(knowledgeSeedCsv, &documents); err != nil {
		return nil, fmt.Errorf("failed to load knowledge seed: %w", err)
	}
	return &knowledgeRepositoryHandler{documents: documents}, nil
}

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true,
	"was": true, "i": true, "my": true, "me": true, "to": true,
	"of": true, "in": true, "on": true, "for": true, "and": true,
	"or": true, "do": true, "does": true, "what": true, "how": true,
	"should": true, "can": true, "it": true, "be": true, "with": true,
}

func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if !stopwords[tok] {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Search scores documents by keyword overlap with the query, normalized
// to [0, 1] by query length. The vector store's internals are a
// collaborator concern; this seeded corpus honors the same contract.
func (h *knowledgeRepositoryHandler) Search(ctx context.Context, query string, category domain.Category, topK int) ([]domain.KnowledgeChunk, error) {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 || topK <= 0 {
		return nil, nil
	}

	chunks := []domain.KnowledgeChunk{}
	for _, doc := range h.documents {
		if category != "" && domain.Category(doc.Category) != category {
			continue
		}

		docTokens := map[string]bool{}
		for _, tok := range tokenize(doc.Title + " " + doc.Content) {
			docTokens[tok] = true
		}

		hits := 0
		for _, tok := range queryTokens {
			if docTokens[tok] {
				hits++
			}
		}
		if hits == 0 {
			continue
		}

		chunks = append(chunks, domain.KnowledgeChunk{
			Content:   doc.Content,
			Category:  domain.Category(doc.Category),
			Source:    doc.Source,
			Relevance: float64(hits) / float64(len(queryTokens)),
		})
	}

	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].Relevance > chunks[j].Relevance
	})
	if len(chunks) > topK {
		chunks = chunks[:topK]
	}
	return chunks, nil
}
