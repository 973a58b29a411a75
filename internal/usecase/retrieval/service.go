// Package retrieval ranks stored chunks against a query embedding by
// cosine similarity. It is a deliberate brute-force linear scan: cost is
// O(corpus size x embedding dimension) per query, which is the right
// trade at small corpus scale. An approximate index can replace this
// behind the same TopK contract.
package retrieval

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/kailas-cloud/ragchat/internal/domain"
	"github.com/kailas-cloud/ragchat/internal/metrics"
)

// Service ranks chunks for queries.
type Service struct {
	source ChunkSource
}

// New creates a retrieval service over a chunk source.
func New(source ChunkSource) *Service {
	return &Service{source: source}
}

// TopK returns the k most similar chunks to the query vector, each
// annotated with its similarity as RelevanceScore. Results are sorted
// descending by score; ties keep scan order so identical queries return
// identical results. k <= 0 or an empty corpus returns no results.
func (s *Service) TopK(ctx context.Context, queryVector []float32, k int) []domain.Chunk {
	if k <= 0 {
		return nil
	}

	start := time.Now()

	var scored []domain.Chunk
	for chunk := range s.source.AllChunks(ctx) {
		chunk.RelevanceScore = CosineSimilarity(queryVector, chunk.Embedding)
		scored = append(scored, chunk)
	}

	metrics.RetrievalScanDuration.Observe(time.Since(start).Seconds())
	metrics.RetrievalChunksScanned.Observe(float64(len(scored)))

	if len(scored) == 0 {
		return nil
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// CosineSimilarity computes dot(a,b) / (|a| * |b|) with float64
// accumulation. Vectors of different lengths or zero magnitude score 0,
// so a corpus mixing embedding dimensions degrades instead of panicking.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		av, bv := float64(a[i]), float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
