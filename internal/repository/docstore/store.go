// Package docstore persists documents as flat JSON files: one index file
// mapping document id to metadata, plus one chunk file per document with
// embeddings inline. The layout matches the historical on-disk format, so
// existing corpora stay readable.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

const indexFilename = "documents_index.json"

// Store is a flat-file document store. All writes are serialized through
// a single mutex; readers that race a writer may observe an index entry
// whose chunk file is not on disk yet, which degrades to an empty read.
type Store struct {
	dataDir string
	logger  *zap.Logger

	mu    sync.RWMutex
	index indexFile
}

// New opens (or initializes) a store rooted at dataDir. A corrupt index
// file is logged and replaced by an empty index rather than failing
// startup; chunk files are left in place and become reachable again once
// their documents are re-uploaded.
func New(dataDir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dataDir, err)
	}

	s := &Store{
		dataDir: dataDir,
		logger:  logger,
		index:   newIndexFile(),
	}

	raw, err := os.ReadFile(s.indexPath())
	switch {
	case os.IsNotExist(err):
		// Fresh store.
	case err != nil:
		return nil, fmt.Errorf("read index %s: %w", s.indexPath(), err)
	default:
		if jsonErr := json.Unmarshal(raw, &s.index); jsonErr != nil {
			logger.Warn("index file corrupt, starting with empty index",
				zap.String("path", s.indexPath()),
				zap.Error(jsonErr),
			)
			s.index = newIndexFile()
		}
		if s.index.Documents == nil {
			s.index.Documents = map[string]indexEntry{}
		}
	}

	return s, nil
}

// Put writes the chunk file for a document and then its index entry.
// The chunk file lands first so an indexed document always has its chunks
// on disk; if the index write fails the chunk file is removed again,
// leaving the store as if the call never happened, so a retry is safe.
func (s *Store) Put(_ context.Context, doc domain.Document, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chunkPath := s.chunkPath(doc.ID)
	if err := writeJSONAtomic(chunkPath, chunksToDTO(chunks)); err != nil {
		return fmt.Errorf("write chunk file %s: %w", chunkPath, err)
	}

	prevEntry, existed := s.index.Documents[doc.ID]
	prevUpdated := s.index.LastUpdated

	s.index.Documents[doc.ID] = entryFromDocument(doc)
	s.index.LastUpdated = time.Now().UTC()

	if err := writeJSONAtomic(s.indexPath(), s.index); err != nil {
		// Roll back so a retry starts from a clean slate.
		if existed {
			s.index.Documents[doc.ID] = prevEntry
		} else {
			delete(s.index.Documents, doc.ID)
		}
		s.index.LastUpdated = prevUpdated
		if rmErr := os.Remove(chunkPath); rmErr != nil && !os.IsNotExist(rmErr) {
			s.logger.Warn("orphan chunk file left after failed index write",
				zap.String("path", chunkPath),
				zap.Error(rmErr),
			)
		}
		return fmt.Errorf("write index: %w", err)
	}

	return nil
}

// List returns metadata for every indexed document in insertion order
// (oldest first, id as tie-break).
func (s *Store) List(_ context.Context) []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, 0, len(s.index.Documents))
	for id, entry := range s.index.Documents {
		docs = append(docs, entry.toDocument(id))
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.Before(docs[j].CreatedAt)
		}
		return docs[i].ID < docs[j].ID
	})
	return docs
}

// GetChunks returns the ordered chunk sequence for one document. A
// document that is absent from the index, or whose chunk file is missing
// or malformed, yields an empty sequence, never an error: one broken
// document must not make the rest of the corpus unreadable.
func (s *Store) GetChunks(_ context.Context, documentID string) []domain.Chunk {
	s.mu.RLock()
	_, indexed := s.index.Documents[documentID]
	s.mu.RUnlock()
	if !indexed {
		return nil
	}
	return s.readChunkFile(documentID)
}

// AllChunks lazily yields every chunk of every indexed document, in index
// insertion order with chunk order preserved within a document. This is
// the per-query scan: nothing is cached between calls.
func (s *Store) AllChunks(ctx context.Context) iter.Seq[domain.Chunk] {
	return func(yield func(domain.Chunk) bool) {
		for _, doc := range s.List(ctx) {
			if ctx.Err() != nil {
				return
			}
			for _, c := range s.readChunkFile(doc.ID) {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Delete removes a document's chunk file and index entry. Deleting an
// unknown id is a no-op.
func (s *Store) Delete(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.chunkPath(documentID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove chunk file: %w", err)
	}

	if _, ok := s.index.Documents[documentID]; !ok {
		return nil
	}

	delete(s.index.Documents, documentID)
	s.index.LastUpdated = time.Now().UTC()
	if err := writeJSONAtomic(s.indexPath(), s.index); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// Exists reports whether a document id is present in the index.
func (s *Store) Exists(_ context.Context, documentID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index.Documents[documentID]
	return ok
}

// Ping verifies the data directory is reachable and writable.
func (s *Store) Ping(_ context.Context) error {
	probe := filepath.Join(s.dataDir, ".ping")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("data dir not writable: %w", err)
	}
	if err := os.Remove(probe); err != nil {
		return fmt.Errorf("data dir cleanup: %w", err)
	}
	return nil
}

// Stats aggregates corpus counters from the index and chunk file sizes
// from disk.
func (s *Store) Stats(_ context.Context) domain.CorpusStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := domain.CorpusStats{
		Categories: map[string]int{},
		Languages:  map[string]int{},
		FileTypes:  map[string]int{},
	}
	for id, entry := range s.index.Documents {
		st.TotalDocuments++
		st.TotalChunks += entry.TotalChunks
		st.Categories[entry.Category]++
		st.Languages[entry.Language]++
		st.FileTypes[entry.FileType]++
		if info, err := os.Stat(s.chunkPath(id)); err == nil {
			st.StorageBytes += info.Size()
		}
	}
	return st
}

// readChunkFile loads and decodes one chunk file. Missing or malformed
// files are skipped with a warning.
func (s *Store) readChunkFile(documentID string) []domain.Chunk {
	path := s.chunkPath(documentID)
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("chunk file unreadable, skipping document",
				zap.String("document_id", documentID),
				zap.Error(err),
			)
		} else {
			s.logger.Warn("chunk file missing for indexed document",
				zap.String("document_id", documentID),
			)
		}
		return nil
	}

	var dtos []chunkDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		s.logger.Warn("chunk file malformed, skipping document",
			zap.String("document_id", documentID),
			zap.Error(err),
		)
		return nil
	}

	chunks := make([]domain.Chunk, 0, len(dtos))
	for _, dto := range dtos {
		chunks = append(chunks, dto.toDomain(documentID))
	}
	return chunks
}

func (s *Store) indexPath() string {
	return filepath.Join(s.dataDir, indexFilename)
}

func (s *Store) chunkPath(documentID string) string {
	return filepath.Join(s.dataDir, documentID+"_chunks.json")
}

// writeJSONAtomic marshals v and renames a temp file over the target so
// readers never observe a torn write.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
