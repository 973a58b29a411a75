package openai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// Responder generates answers via the OpenAI chat completions API,
// conditioned on retrieved context and pinned to the detected language.
type Responder struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// ResponderConfig holds the response generation settings.
type ResponderConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      *zap.Logger
}

// NewResponder creates an OpenAI-compatible chat responder.
func NewResponder(cfg *ResponderConfig) *Responder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Responder{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		logger:      cfg.Logger,
	}
}

var languageNames = map[domain.Language]string{
	domain.LanguageEnglish: "English",
	domain.LanguageArabic:  "Arabic",
	domain.LanguageFrench:  "French",
}

// Generate implements domain.Responder.
func (r *Responder) Generate(
	ctx context.Context, query string, language domain.Language, contextChunks []domain.Chunk,
) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		MaxTokens:   r.maxTokens,
		Temperature: r.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(language, contextChunks)},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w: %w", domain.ErrResponderError, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response: %w", domain.ErrResponderError)
	}

	r.logger.Debug("response generated",
		zap.String("model", r.model),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return resp.Choices[0].Message.Content, nil
}

// systemPrompt frames the retrieved chunks as the only allowed knowledge
// and pins the answer language.
func systemPrompt(language domain.Language, contextChunks []domain.Chunk) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant answering questions from a document knowledge base.\n")
	b.WriteString("Use only the provided context. Cite the source file when making claims, ")
	b.WriteString("and say so when the context does not answer the question.\n")

	name := languageNames[language]
	if name == "" {
		name = languageNames[domain.DefaultLanguage]
	}
	fmt.Fprintf(&b, "Respond in %s.\n\nContext:\n", name)

	for _, c := range contextChunks {
		b.WriteString("---\n")
		fmt.Fprintf(&b, "Source: %s", c.SourceFile)
		if c.PageNumber > 0 {
			fmt.Fprintf(&b, " (page %d)", c.PageNumber)
		}
		b.WriteString("\n")
		b.WriteString(c.Content)
		b.WriteString("\n")
	}

	return b.String()
}
