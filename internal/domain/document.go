package domain

import "time"

// SourceType identifies the format a document was ingested from.
type SourceType string

// Supported source types.
const (
	SourcePDF      SourceType = "pdf"
	SourceMarkdown SourceType = "md"
	SourceText     SourceType = "txt"
	SourceJSON     SourceType = "json"
)

// Document is the indexed metadata for one uploaded document. The chunk
// payload lives in the per-document chunk file, never in the index.
type Document struct {
	ID          string
	Filename    string
	FileType    SourceType
	Category    string
	Language    Language
	TotalChunks int
	CreatedAt   time.Time
}

// ChunkMetadata carries display counters derivable from the content.
type ChunkMetadata struct {
	WordCount int
	CharCount int
}

// Chunk is a contiguous text segment of a document paired with its
// embedding vector. ChunkIndex is 0-based and contiguous per document;
// ID is DocumentID + "_" + ChunkIndex.
type Chunk struct {
	ID         string
	DocumentID string
	Content    string
	SourceFile string
	SourceType SourceType
	PageNumber int // 0 when the source has no pages
	ChunkIndex int
	Language   Language
	Category   string
	Metadata   ChunkMetadata
	Embedding  []float32
	CreatedAt  time.Time

	// RelevanceScore is transient: recomputed per query, zero at rest.
	RelevanceScore float64
}

// NewChunkMetadata computes the cached counters for a content span.
func NewChunkMetadata(content string) ChunkMetadata {
	words := 0
	inWord := false
	for _, r := range content {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			inWord = false
		case !inWord:
			words++
			inWord = true
		}
	}
	return ChunkMetadata{WordCount: words, CharCount: len([]rune(content))}
}
