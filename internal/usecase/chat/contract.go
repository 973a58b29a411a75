package chat

import (
	"context"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// Embedder vectorizes the query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Retriever ranks stored chunks against the query vector.
type Retriever interface {
	TopK(ctx context.Context, queryVector []float32, k int) []domain.Chunk
}
