package chi

import (
	"time"

	"github.com/kailas-cloud/ragchat/internal/domain"
	chatuc "github.com/kailas-cloud/ragchat/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/ragchat/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/ragchat/internal/usecase/ingest"
)

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest             = "bad_request"
	codeValidationFailed       = "validation_failed"
	codeUnsupportedFileType    = "unsupported_file_type"
	codeFileTooLarge           = "file_too_large"
	codeEmptyDocument          = "empty_document"
	codeExtractionFailed       = "extraction_failed"
	codeDocumentNotFound       = "document_not_found"
	codeEmbeddingProviderError = "embedding_provider_error"
	codeResponderError         = "responder_error"
	codeInternalError          = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type chatRequest struct {
	Message        string `json:"message"`
	IncludeContext *bool  `json:"include_context,omitempty"`
	MaxContext     int    `json:"max_context,omitempty"`
}

type chatSource struct {
	Filename       string  `json:"filename"`
	SourceType     string  `json:"source_type"`
	PageNumber     int     `json:"page_number,omitempty"`
	RelevanceScore float64 `json:"relevance_score"`
	Preview        string  `json:"content_preview"`
}

type chatResponse struct {
	Response    string       `json:"response"`
	Language    string       `json:"language"`
	Sources     []chatSource `json:"sources"`
	ContextUsed bool         `json:"context_used"`
	Confidence  float64      `json:"confidence"`
}

func chatResponseFromDomain(resp chatuc.Response) chatResponse {
	sources := make([]chatSource, len(resp.Sources))
	for i, src := range resp.Sources {
		sources[i] = chatSource{
			Filename:       src.Filename,
			SourceType:     string(src.SourceType),
			PageNumber:     src.PageNumber,
			RelevanceScore: src.RelevanceScore,
			Preview:        src.Preview,
		}
	}
	return chatResponse{
		Response:    resp.Answer,
		Language:    string(resp.Language),
		Sources:     sources,
		ContextUsed: resp.ContextUsed,
		Confidence:  resp.Confidence,
	}
}

type uploadResponse struct {
	Success    bool   `json:"success"`
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	FileType   string `json:"file_type"`
	Chunks     int    `json:"chunks"`
	Pages      int    `json:"pages,omitempty"`
	Language   string `json:"language"`
	Category   string `json:"category"`
}

func uploadResponseFromDomain(result ingestuc.Result) uploadResponse {
	return uploadResponse{
		Success:    true,
		DocumentID: result.Document.ID,
		Filename:   result.Document.Filename,
		FileType:   string(result.Document.FileType),
		Chunks:     result.Document.TotalChunks,
		Pages:      result.Pages,
		Language:   string(result.Document.Language),
		Category:   result.Document.Category,
	}
}

type documentInfo struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	Category   string    `json:"category"`
	Language   string    `json:"language"`
	Chunks     int       `json:"chunks"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func documentInfoFromDomain(d domain.Document) documentInfo {
	return documentInfo{
		ID:         d.ID,
		Filename:   d.Filename,
		FileType:   string(d.FileType),
		Category:   d.Category,
		Language:   string(d.Language),
		Chunks:     d.TotalChunks,
		UploadedAt: d.CreatedAt,
	}
}

type documentListResponse struct {
	Documents []documentInfo `json:"documents"`
	Total     int            `json:"total"`
}

type deleteResponse struct {
	Success    bool   `json:"success"`
	DocumentID string `json:"document_id"`
}

type statsResponse struct {
	TotalDocuments int            `json:"total_documents"`
	TotalChunks    int            `json:"total_chunks"`
	Categories     map[string]int `json:"categories"`
	Languages      map[string]int `json:"languages"`
	FileTypes      map[string]int `json:"file_types"`
	StorageBytes   int64          `json:"storage_bytes"`
}

func statsResponseFromDomain(st domain.CorpusStats) statsResponse {
	return statsResponse{
		TotalDocuments: st.TotalDocuments,
		TotalChunks:    st.TotalChunks,
		Categories:     st.Categories,
		Languages:      st.Languages,
		FileTypes:      st.FileTypes,
		StorageBytes:   st.StorageBytes,
	}
}

type healthResponse struct {
	Status             string                          `json:"status"`
	Version            string                          `json:"version"`
	Checks             map[string]healthuc.CheckResult `json:"checks"`
	SupportedLanguages []string                        `json:"supported_languages"`
	SupportedFormats   []string                        `json:"supported_formats"`
}
