package ragchat

import "time"

// ChatRequest is one chat turn.
type ChatRequest struct {
	Message string `json:"message"`
	// IncludeContext controls document retrieval. Nil means the server
	// default (enabled).
	IncludeContext *bool `json:"include_context,omitempty"`
	// MaxContext caps how many chunks ground the answer. Zero uses the
	// server default.
	MaxContext int `json:"max_context,omitempty"`
}

// ChatSource describes one context chunk the answer was grounded on.
type ChatSource struct {
	Filename       string  `json:"filename"`
	SourceType     string  `json:"source_type"`
	PageNumber     int     `json:"page_number,omitempty"`
	RelevanceScore float64 `json:"relevance_score"`
	Preview        string  `json:"content_preview"`
}

// ChatResponse is the answer to one chat turn.
type ChatResponse struct {
	Response    string       `json:"response"`
	Language    string       `json:"language"`
	Sources     []ChatSource `json:"sources"`
	ContextUsed bool         `json:"context_used"`
	Confidence  float64      `json:"confidence"`
}

// UploadResult reports one ingested document.
type UploadResult struct {
	Success    bool   `json:"success"`
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	FileType   string `json:"file_type"`
	Chunks     int    `json:"chunks"`
	Pages      int    `json:"pages,omitempty"`
	Language   string `json:"language"`
	Category   string `json:"category"`
}

// DocumentInfo is the stored metadata of one document.
type DocumentInfo struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	Category   string    `json:"category"`
	Language   string    `json:"language"`
	Chunks     int       `json:"chunks"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// CorpusStats aggregates counters over the stored corpus.
type CorpusStats struct {
	TotalDocuments int            `json:"total_documents"`
	TotalChunks    int            `json:"total_chunks"`
	Categories     map[string]int `json:"categories"`
	Languages      map[string]int `json:"languages"`
	FileTypes      map[string]int `json:"file_types"`
	StorageBytes   int64          `json:"storage_bytes"`
}

// HealthStatus is the service health report.
type HealthStatus struct {
	Status             string            `json:"status"`
	Version            string            `json:"version"`
	Checks             map[string]string `json:"checks"`
	SupportedLanguages []string          `json:"supported_languages"`
	SupportedFormats   []string          `json:"supported_formats"`
}
