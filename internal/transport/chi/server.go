// Package chi is the HTTP transport: handwritten chi handlers over the
// chat, ingest and health services.
package chi

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragchat/internal/domain"
	chatuc "github.com/kailas-cloud/ragchat/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/ragchat/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/ragchat/internal/usecase/ingest"
	"github.com/kailas-cloud/ragchat/internal/version"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the RAG chatbot HTTP API.
type Server struct {
	chat          *chatuc.Service
	ingest        *ingestuc.Service
	health        *healthuc.Service
	maxUploadSize int64
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	chat *chatuc.Service,
	ingest *ingestuc.Service,
	health *healthuc.Service,
	maxUploadSize int64,
	logger *zap.Logger,
) *Server {
	s := &Server{
		chat:          chat,
		ingest:        ingest,
		health:        health,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyMessage, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrUnsupportedFileType, http.StatusBadRequest, codeUnsupportedFileType),
		sentinelHandler(domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, codeFileTooLarge),
		sentinelHandler(domain.ErrEmptyDocument, http.StatusUnprocessableEntity, codeEmptyDocument),
		sentinelHandler(domain.ErrExtractionFailed, http.StatusUnprocessableEntity, codeExtractionFailed),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeDocumentNotFound),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProviderError),
		sentinelHandler(domain.ErrResponderError, http.StatusBadGateway, codeResponderError),
	}
	return s
}

// Routes mounts all API routes on a router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/chat", s.handleChat)
	r.Post("/v1/documents", s.handleUpload)
	r.Get("/v1/documents", s.handleListDocuments)
	r.Get("/v1/documents/stats", s.handleStats)
	r.Delete("/v1/documents/{id}", s.handleDeleteDocument)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
}

// handleChat handles POST /v1/chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	includeContext := true
	if req.IncludeContext != nil {
		includeContext = *req.IncludeContext
	}

	resp, err := s.chat.Chat(r.Context(), chatuc.Request{
		Message:        req.Message,
		IncludeContext: includeContext,
		MaxContext:     req.MaxContext,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponseFromDomain(resp))
}

// handleUpload handles POST /v1/documents (multipart upload).
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize+1)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.handleDomainError(w, domain.ErrFileTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, "Missing file field: "+err.Error())
		return
	}
	defer file.Close()

	content, err := readUpload(file, s.maxUploadSize)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	category := r.FormValue("category")
	if category == "" {
		category = r.URL.Query().Get("category")
	}

	result, err := s.ingest.Ingest(r.Context(), header.Filename, content, category)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponseFromDomain(result))
}

// handleListDocuments handles GET /v1/documents.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs := s.ingest.List(r.Context())

	items := make([]documentInfo, len(docs))
	for i, d := range docs {
		items[i] = documentInfoFromDomain(d)
	}
	writeJSON(w, http.StatusOK, documentListResponse{Documents: items, Total: len(items)})
}

// handleStats handles GET /v1/documents/stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statsResponseFromDomain(s.ingest.Stats(r.Context())))
}

// handleDeleteDocument handles DELETE /v1/documents/{id}.
// Delete is idempotent, so unknown ids also return success.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.ingest.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Success: true, DocumentID: id})
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	languages := make([]string, 0, 3)
	for _, l := range domain.SupportedLanguages() {
		languages = append(languages, string(l))
	}

	writeJSON(w, status, healthResponse{
		Status:             string(report.Status),
		Version:            version.Version,
		Checks:             report.Checks,
		SupportedLanguages: languages,
		SupportedFormats:   []string{".pdf", ".md", ".markdown", ".txt", ".json"},
	})
}

// readUpload reads the upload body while enforcing the size limit even
// when the multipart part has already been buffered to disk.
func readUpload(file multipart.File, limit int64) ([]byte, error) {
	content, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > limit {
		return nil, domain.ErrFileTooLarge
	}
	return content, nil
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := err.Error()
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
