// Package chat answers user queries with retrieval-augmented responses:
// detect the query language, embed the query, rank stored chunks and
// condition the generated answer on the winners.
package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragchat/internal/domain"
	"github.com/kailas-cloud/ragchat/internal/langdetect"
)

// Request is one chat turn.
type Request struct {
	Message        string
	IncludeContext bool
	MaxContext     int
}

// Source describes one context chunk used for an answer.
type Source struct {
	Filename       string
	SourceType     domain.SourceType
	PageNumber     int
	RelevanceScore float64
	Preview        string
}

// Response is the answer to one chat turn.
type Response struct {
	Answer      string
	Language    domain.Language
	Sources     []Source
	ContextUsed bool
	Confidence  float64
}

// Limits clamp per-request context sizes.
type Limits struct {
	DefaultTopK int
	MaxTopK     int
}

// Service coordinates one chat turn end to end.
type Service struct {
	embedder  Embedder
	retriever Retriever
	responder domain.Responder
	limits    Limits
	logger    *zap.Logger
}

// New creates a chat service.
func New(embedder Embedder, retriever Retriever, responder domain.Responder, limits Limits, logger *zap.Logger) *Service {
	return &Service{
		embedder:  embedder,
		retriever: retriever,
		responder: responder,
		limits:    limits,
		logger:    logger,
	}
}

// Chat handles one message. An empty corpus or IncludeContext=false is
// not an error: the reply falls back to a per-language template and
// reports that no context was used. Embedder or responder failures are
// fatal to the request and propagate to the caller.
func (s *Service) Chat(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Message) == "" {
		return Response{}, domain.ErrEmptyMessage
	}

	language := langdetect.Detect(req.Message)

	var contextChunks []domain.Chunk
	if req.IncludeContext {
		k := s.clampTopK(req.MaxContext)

		embResult, err := s.embedder.Embed(ctx, req.Message)
		if err != nil {
			return Response{}, fmt.Errorf("embed query: %w", err)
		}

		contextChunks = s.retriever.TopK(ctx, embResult.Embedding, k)
	}

	if len(contextChunks) == 0 {
		s.logger.Debug("no context available for query", zap.String("language", string(language)))
		return Response{
			Answer:      noContextReply(language),
			Language:    language,
			ContextUsed: false,
		}, nil
	}

	answer, err := s.responder.Generate(ctx, req.Message, language, contextChunks)
	if err != nil {
		return Response{}, fmt.Errorf("generate response: %w", err)
	}

	return Response{
		Answer:      answer,
		Language:    language,
		Sources:     sourcesFromChunks(contextChunks),
		ContextUsed: true,
		Confidence:  confidence(contextChunks),
	}, nil
}

func (s *Service) clampTopK(k int) int {
	if k <= 0 {
		k = s.limits.DefaultTopK
	}
	if s.limits.MaxTopK > 0 && k > s.limits.MaxTopK {
		k = s.limits.MaxTopK
	}
	return k
}

const previewRunes = 100

func sourcesFromChunks(chunks []domain.Chunk) []Source {
	sources := make([]Source, len(chunks))
	for i, c := range chunks {
		preview := c.Content
		if runes := []rune(preview); len(runes) > previewRunes {
			preview = string(runes[:previewRunes]) + "..."
		}
		sources[i] = Source{
			Filename:       c.SourceFile,
			SourceType:     c.SourceType,
			PageNumber:     c.PageNumber,
			RelevanceScore: c.RelevanceScore,
			Preview:        preview,
		}
	}
	return sources
}

// confidence is the mean relevance of the used context, capped below 1
// so the API never claims certainty.
func confidence(chunks []domain.Chunk) float64 {
	if len(chunks) == 0 {
		return 0
	}
	var sum float64
	for _, c := range chunks {
		sum += c.RelevanceScore
	}
	conf := sum / float64(len(chunks))
	if conf < 0 {
		conf = 0
	}
	if conf > 0.95 {
		conf = 0.95
	}
	return conf
}
