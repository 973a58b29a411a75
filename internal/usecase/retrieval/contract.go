package retrieval

import (
	"context"
	"iter"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// ChunkSource supplies the full corpus scan. The sequence must be lazy
// and deterministic in order for identical store contents.
type ChunkSource interface {
	AllChunks(ctx context.Context) iter.Seq[domain.Chunk]
}
