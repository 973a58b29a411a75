// Package embcache caches query embeddings so repeated questions do not
// spend provider tokens. Document embeddings bypass it: a document is
// embedded once at upload, queries repeat.
package embcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// store is the consumer interface for the embedding cache (ISP).
type store interface {
	Get(key string) ([]float32, bool)
	Set(key string, vec []float32)
}

// CachedEmbedder caches embeddings keyed by the hash of the input text.
type CachedEmbedder struct {
	inner      domain.Embedder
	store      store
	cacheTotal *prometheus.CounterVec
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(inner domain.Embedder, s store, cacheTotal *prometheus.CounterVec) *CachedEmbedder {
	return &CachedEmbedder{
		inner:      inner,
		store:      s,
		cacheTotal: cacheTotal,
	}
}

// Embed returns a cached embedding or calls the inner embedder.
// Cache hit: TotalTokens = 0 (no real tokens consumed).
// Cache miss: full EmbeddingResult from inner.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	key := cacheKey(text)

	if vec, ok := c.store.Get(key); ok {
		c.incCache("hit")
		return domain.EmbeddingResult{Embedding: vec}, nil
	}

	c.incCache("miss")

	result, err := c.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed text: %w", err)
	}

	c.store.Set(key, result.Embedding)
	return result, nil
}

func (c *CachedEmbedder) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// MemoryStore is a bounded in-memory vector cache. When full, inserting
// evicts the oldest entry (FIFO). Safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]float32
	order   []string
	maxSize int
}

// NewMemoryStore creates a cache holding at most maxSize vectors.
// Non-positive maxSize falls back to 1024.
func NewMemoryStore(maxSize int) *MemoryStore {
	if maxSize <= 0 {
		maxSize = 1024
	}
	return &MemoryStore{
		entries: make(map[string][]float32, maxSize),
		maxSize: maxSize,
	}
}

// Get returns the cached vector for a key.
func (m *MemoryStore) Get(key string) ([]float32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	vec, ok := m.entries[key]
	return vec, ok
}

// Set stores a vector, evicting the oldest entry when full.
func (m *MemoryStore) Set(key string, vec []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; exists {
		m.entries[key] = vec
		return
	}

	if len(m.entries) >= m.maxSize {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
	}

	m.entries[key] = vec
	m.order = append(m.order, key)
}

// Len returns the current number of cached vectors.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
