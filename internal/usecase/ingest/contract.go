package ingest

import (
	"context"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// Repository persists documents and their chunks.
type Repository interface {
	Put(ctx context.Context, doc domain.Document, chunks []domain.Chunk) error
	List(ctx context.Context) []domain.Document
	Delete(ctx context.Context, documentID string) error
	Stats(ctx context.Context) domain.CorpusStats
}

// Embedder vectorizes chunk text. Batch-capable providers are used
// directly; others go through domain.BatchFallback.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
