package embcache

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

type countingEmbedder struct {
	calls int
	err   error
}

func (m *countingEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{
		Embedding:   []float32{float32(len(text)), 0.5},
		TotalTokens: 11,
	}, nil
}

func TestEmbed_CachesRepeatedText(t *testing.T) {
	inner := &countingEmbedder{}
	cached := New(inner, NewMemoryStore(10), nil)
	ctx := context.Background()

	first, err := cached.Embed(ctx, "same question")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("inner calls = %d", inner.calls)
	}
	if first.TotalTokens != 11 {
		t.Errorf("miss TotalTokens = %d", first.TotalTokens)
	}

	second, err := cached.Embed(ctx, "same question")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner called again on cache hit: %d", inner.calls)
	}
	if second.TotalTokens != 0 {
		t.Errorf("hit TotalTokens = %d, want 0", second.TotalTokens)
	}
	if len(second.Embedding) != 2 || second.Embedding[0] != first.Embedding[0] {
		t.Errorf("cached vector differs: %v vs %v", second.Embedding, first.Embedding)
	}
}

func TestEmbed_DistinctTextsMiss(t *testing.T) {
	inner := &countingEmbedder{}
	cached := New(inner, NewMemoryStore(10), nil)
	ctx := context.Background()

	if _, err := cached.Embed(ctx, "first"); err != nil {
		t.Fatal(err)
	}
	if _, err := cached.Embed(ctx, "second"); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}
}

func TestEmbed_ErrorNotCached(t *testing.T) {
	inner := &countingEmbedder{err: errors.New("provider down")}
	cached := New(inner, NewMemoryStore(10), nil)
	ctx := context.Background()

	if _, err := cached.Embed(ctx, "q"); err == nil {
		t.Fatal("expected error")
	}

	inner.err = nil
	if _, err := cached.Embed(ctx, "q"); err != nil {
		t.Fatalf("Embed after recovery: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}
}

func TestMemoryStore_EvictsOldest(t *testing.T) {
	s := NewMemoryStore(2)

	s.Set("a", []float32{1})
	s.Set("b", []float32{2})
	s.Set("c", []float32{3}) // evicts "a"

	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	if _, ok := s.Get("a"); ok {
		t.Error("oldest entry not evicted")
	}
	if _, ok := s.Get("b"); !ok {
		t.Error("entry b evicted early")
	}
	if _, ok := s.Get("c"); !ok {
		t.Error("entry c missing")
	}
}

func TestMemoryStore_UpdateDoesNotGrow(t *testing.T) {
	s := NewMemoryStore(2)
	s.Set("a", []float32{1})
	s.Set("a", []float32{2})
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	vec, ok := s.Get("a")
	if !ok || vec[0] != 2 {
		t.Errorf("updated value = %v", vec)
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore(64)
	done := make(chan struct{})

	for g := 0; g < 4; g++ {
		go func(g int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("key-%d-%d", g, i%16)
				s.Set(key, []float32{float32(i)})
				s.Get(key)
			}
		}(g)
	}
	for g := 0; g < 4; g++ {
		<-done
	}
}
