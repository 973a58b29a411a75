package domain

import "context"

// Responder produces a natural-language answer for a query, conditioned on
// the retrieved context chunks and pinned to the detected language.
type Responder interface {
	Generate(ctx context.Context, query string, language Language, contextChunks []Chunk) (string, error)
}
