package ragchat

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors matched against the error codes the API returns.
// Use errors.Is() to check.
var (
	ErrEmptyMessage           = errors.New("message is empty")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrFileTooLarge           = errors.New("file too large")
	ErrEmptyDocument          = errors.New("document contains no extractable text")
	ErrExtractionFailed       = errors.New("text extraction failed")
	ErrDocumentNotFound       = errors.New("document not found")
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	ErrResponderError         = errors.New("response generation error")
)

var sentinelByCode = map[string]error{
	"validation_failed":        ErrEmptyMessage,
	"unsupported_file_type":    ErrUnsupportedFileType,
	"file_too_large":           ErrFileTooLarge,
	"empty_document":           ErrEmptyDocument,
	"extraction_failed":        ErrExtractionFailed,
	"document_not_found":       ErrDocumentNotFound,
	"embedding_provider_error": ErrEmbeddingProviderError,
	"responder_error":          ErrResponderError,
}

// APIError is a structured error response from the service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("ragchat: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("ragchat: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
}

// Is matches the API error against the sentinel for its error code.
func (e *APIError) Is(target error) bool {
	sentinel, ok := sentinelByCode[e.Code]
	return ok && target == sentinel
}

func decodeError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
