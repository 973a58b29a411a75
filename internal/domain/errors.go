package domain

import "errors"

var (
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrEmptyMessage signals a chat request with no message text.
	ErrEmptyMessage = errors.New("empty message")
	// ErrUnsupportedFileType signals an upload with an unknown extension.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrFileTooLarge signals an upload over the size limit.
	ErrFileTooLarge = errors.New("file too large")
	// ErrEmptyDocument signals an upload whose extracted text is empty.
	ErrEmptyDocument = errors.New("document contains no extractable text")
	// ErrExtractionFailed signals that text extraction from the source failed.
	ErrExtractionFailed = errors.New("text extraction failed")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrResponderError signals a response generation failure.
	ErrResponderError = errors.New("response generation error")
)
