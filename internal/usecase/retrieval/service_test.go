package retrieval

import (
	"context"
	"iter"
	"math"
	"testing"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

type staticSource struct {
	chunks []domain.Chunk
}

func (s *staticSource) AllChunks(_ context.Context) iter.Seq[domain.Chunk] {
	return func(yield func(domain.Chunk) bool) {
		for _, c := range s.chunks {
			if !yield(c) {
				return
			}
		}
	}
}

func chunkWithEmbedding(id string, embedding []float32) domain.Chunk {
	return domain.Chunk{ID: id, Content: "chunk " + id, Embedding: embedding}
}

func TestTopK_RanksByDescendingSimilarity(t *testing.T) {
	source := &staticSource{chunks: []domain.Chunk{
		chunkWithEmbedding("orthogonal", []float32{0, 1, 0}),
		chunkWithEmbedding("exact", []float32{1, 0, 0}),
		chunkWithEmbedding("close", []float32{1, 0.2, 0}),
	}}
	svc := New(source)

	got := svc.TopK(context.Background(), []float32{1, 0, 0}, 3)
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}

	wantOrder := []string{"exact", "close", "orthogonal"}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("position %d: got %q, want %q", i, got[i].ID, want)
		}
	}
	if got[0].RelevanceScore < got[1].RelevanceScore || got[1].RelevanceScore < got[2].RelevanceScore {
		t.Errorf("scores not descending: %v, %v, %v",
			got[0].RelevanceScore, got[1].RelevanceScore, got[2].RelevanceScore)
	}
	if math.Abs(got[0].RelevanceScore-1.0) > 1e-9 {
		t.Errorf("exact match score = %v, want 1.0", got[0].RelevanceScore)
	}
}

func TestTopK_TruncatesToK(t *testing.T) {
	source := &staticSource{chunks: []domain.Chunk{
		chunkWithEmbedding("a", []float32{1, 0}),
		chunkWithEmbedding("b", []float32{0.9, 0.1}),
		chunkWithEmbedding("c", []float32{0, 1}),
	}}
	svc := New(source)

	got := svc.TopK(context.Background(), []float32{1, 0}, 2)
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}

	// k larger than the corpus returns everything.
	got = svc.TopK(context.Background(), []float32{1, 0}, 50)
	if len(got) != 3 {
		t.Errorf("got %d results, want 3", len(got))
	}
}

func TestTopK_NonPositiveK(t *testing.T) {
	source := &staticSource{chunks: []domain.Chunk{
		chunkWithEmbedding("a", []float32{1, 0}),
	}}
	svc := New(source)

	if got := svc.TopK(context.Background(), []float32{1, 0}, 0); got != nil {
		t.Errorf("k=0: got %d results, want none", len(got))
	}
	if got := svc.TopK(context.Background(), []float32{1, 0}, -5); got != nil {
		t.Errorf("k<0: got %d results, want none", len(got))
	}
}

func TestTopK_EmptyCorpus(t *testing.T) {
	svc := New(&staticSource{})
	if got := svc.TopK(context.Background(), []float32{1, 0}, 5); got != nil {
		t.Errorf("empty corpus: got %d results, want none", len(got))
	}
}

func TestTopK_TiesKeepScanOrder(t *testing.T) {
	source := &staticSource{chunks: []domain.Chunk{
		chunkWithEmbedding("first", []float32{1, 0}),
		chunkWithEmbedding("second", []float32{2, 0}), // same direction, same score
		chunkWithEmbedding("third", []float32{0, 1}),
	}}
	svc := New(source)

	got := svc.TopK(context.Background(), []float32{1, 0}, 2)
	if len(got) != 2 {
		t.Fatalf("got %d results", len(got))
	}
	if got[0].ID != "first" || got[1].ID != "second" {
		t.Errorf("tie order not stable: %q, %q", got[0].ID, got[1].ID)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"scaled", []float32{1, 1}, []float32{5, 5}, 1.0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"both empty", nil, nil, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CosineSimilarity(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	a := []float32{0.3, -0.5, 0.8, 0.1}
	b := []float32{-0.2, 0.9, 0.4, 0.7}
	if ab, ba := CosineSimilarity(a, b), CosineSimilarity(b, a); math.Abs(ab-ba) > 1e-12 {
		t.Errorf("not symmetric: %v vs %v", ab, ba)
	}
}
