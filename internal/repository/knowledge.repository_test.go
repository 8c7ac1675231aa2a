package repository

import (
	"context"
	"testing"

	"clarifi/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_KnowledgeRepository_Search(t *testing.T) {
	repo, err := NewKnowledgeRepository()
	require.NoError(t, err)

	t.Run("returns relevant chunks ordered by score", func(t *testing.T) {
		chunks, err := repo.Search(context.Background(), "how much emergency fund should I keep", "", 3)
		require.NoError(t, err)
		require.NotEmpty(t, chunks)

		require.Contains(t, chunks[0].Content, "emergency fund")
		for i := 1; i < len(chunks); i++ {
			require.LessOrEqual(t, chunks[i].Relevance, chunks[i-1].Relevance)
		}
	})

	t.Run("relevance stays within unit range", func(t *testing.T) {
		chunks, err := repo.Search(context.Background(), "sip mutual fund rupee cost averaging", "", 10)
		require.NoError(t, err)
		for _, chunk := range chunks {
			require.GreaterOrEqual(t, chunk.Relevance, 0.0)
			require.LessOrEqual(t, chunk.Relevance, 1.0)
		}
	})

	t.Run("category filter excludes other categories", func(t *testing.T) {
		chunks, err := repo.Search(context.Background(), "tax deduction section 80c", domain.CategoryTax, 5)
		require.NoError(t, err)
		require.NotEmpty(t, chunks)
		for _, chunk := range chunks {
			require.Equal(t, domain.CategoryTax, chunk.Category)
		}
	})

	t.Run("no matches yields empty result, not an error", func(t *testing.T) {
		chunks, err := repo.Search(context.Background(), "zzzz qqqq xxxx", "", 3)
		require.NoError(t, err)
		require.Empty(t, chunks)
	})

	t.Run("respects topK", func(t *testing.T) {
		chunks, err := repo.Search(context.Background(), "tax loan insurance investment savings", "", 2)
		require.NoError(t, err)
		require.LessOrEqual(t, len(chunks), 2)
	})
}
