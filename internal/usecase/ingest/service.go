// Package ingest runs the upload pipeline: validate, extract text,
// detect language, chunk, embed, persist.
package ingest

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragchat/internal/chunker"
	"github.com/kailas-cloud/ragchat/internal/domain"
	"github.com/kailas-cloud/ragchat/internal/extract"
	"github.com/kailas-cloud/ragchat/internal/langdetect"
)

// Options bounds document intake.
type Options struct {
	MaxFileSizeBytes     int64
	MaxChunksPerDocument int
}

// Result reports the outcome of one ingested document.
type Result struct {
	Document domain.Document
	Pages    int
}

// Service ingests uploaded documents into the store.
type Service struct {
	repo     Repository
	embedder Embedder
	splitter chunker.Splitter
	opts     Options
	logger   *zap.Logger
}

// New creates an ingest service.
func New(repo Repository, embedder Embedder, splitter chunker.Splitter, opts Options, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		embedder: embedder,
		splitter: splitter,
		opts:     opts,
		logger:   logger,
	}
}

// Ingest processes one uploaded file and persists its chunks. The
// document id is a fresh UUID, so re-uploading the same file creates a
// new document. An embedding failure aborts the whole upload and leaves
// nothing behind, so a retry cannot accumulate partial entries.
func (s *Service) Ingest(ctx context.Context, filename string, content []byte, category string) (Result, error) {
	if s.opts.MaxFileSizeBytes > 0 && int64(len(content)) > s.opts.MaxFileSizeBytes {
		return Result{}, fmt.Errorf("%w: %d bytes (limit %d)",
			domain.ErrFileTooLarge, len(content), s.opts.MaxFileSizeBytes)
	}

	srcType, err := extract.TypeForFilename(filename)
	if err != nil {
		return Result{}, err
	}

	extracted, err := extract.FromBytes(content, srcType)
	if err != nil {
		return Result{}, fmt.Errorf("extract %s: %w", filename, err)
	}

	segments := s.splitter.Split(extracted.Text)
	if len(segments) == 0 {
		return Result{}, fmt.Errorf("%w: %s", domain.ErrEmptyDocument, filename)
	}
	if s.opts.MaxChunksPerDocument > 0 && len(segments) > s.opts.MaxChunksPerDocument {
		s.logger.Warn("document truncated to chunk cap",
			zap.String("filename", filename),
			zap.Int("chunks", len(segments)),
			zap.Int("cap", s.opts.MaxChunksPerDocument),
		)
		segments = segments[:s.opts.MaxChunksPerDocument]
	}

	language := langdetect.Detect(extracted.Text)
	if category == "" {
		category = "general"
	}

	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}
	embedded, err := s.embedTexts(ctx, texts)
	if err != nil {
		return Result{}, fmt.Errorf("embed %s: %w", filename, err)
	}

	docID := uuid.NewString()
	now := time.Now().UTC()

	chunks := make([]domain.Chunk, len(segments))
	for i, seg := range segments {
		chunks[i] = domain.Chunk{
			ID:         docID + "_" + strconv.Itoa(i),
			DocumentID: docID,
			Content:    seg.Text,
			SourceFile: filename,
			SourceType: srcType,
			PageNumber: extracted.PageFor(seg.Start),
			ChunkIndex: i,
			Language:   language,
			Category:   category,
			Metadata:   domain.NewChunkMetadata(seg.Text),
			Embedding:  embedded.Embeddings[i],
			CreatedAt:  now,
		}
	}

	doc := domain.Document{
		ID:          docID,
		Filename:    filename,
		FileType:    srcType,
		Category:    category,
		Language:    language,
		TotalChunks: len(chunks),
		CreatedAt:   now,
	}

	if err := s.repo.Put(ctx, doc, chunks); err != nil {
		return Result{}, fmt.Errorf("persist %s: %w", filename, err)
	}

	s.logger.Info("document ingested",
		zap.String("document_id", docID),
		zap.String("filename", filename),
		zap.String("language", string(language)),
		zap.Int("chunks", len(chunks)),
		zap.Int("embedding_tokens", embedded.TotalTokens),
	)

	return Result{Document: doc, Pages: extracted.Pages}, nil
}

// List returns all indexed document metadata.
func (s *Service) List(ctx context.Context) []domain.Document {
	return s.repo.List(ctx)
}

// Stats summarizes the indexed corpus.
func (s *Service) Stats(ctx context.Context) domain.CorpusStats {
	return s.repo.Stats(ctx)
}

// Delete removes a document. Unknown ids are a no-op.
func (s *Service) Delete(ctx context.Context, documentID string) error {
	if err := s.repo.Delete(ctx, documentID); err != nil {
		return fmt.Errorf("delete %s: %w", documentID, err)
	}
	return nil
}

// embedTexts uses native batching when the provider supports it.
func (s *Service) embedTexts(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := s.embedder.(domain.BatchEmbedder); ok {
		return be.BatchEmbed(ctx, texts)
	}
	return domain.BatchFallback(ctx, s.embedder, texts)
}
