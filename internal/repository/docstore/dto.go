package docstore

import (
	"time"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// indexFile mirrors the on-disk index layout.
type indexFile struct {
	Documents   map[string]indexEntry `json:"documents"`
	LastUpdated time.Time             `json:"last_updated"`
}

func newIndexFile() indexFile {
	return indexFile{Documents: map[string]indexEntry{}, LastUpdated: time.Now().UTC()}
}

// indexEntry is the per-document metadata stored in the index. Field
// names match the historical file format.
type indexEntry struct {
	Filename    string    `json:"filename"`
	FileType    string    `json:"file_type"`
	Category    string    `json:"category"`
	Language    string    `json:"language"`
	TotalChunks int       `json:"total_chunks"`
	CreatedAt   time.Time `json:"created_at"`
}

func entryFromDocument(doc domain.Document) indexEntry {
	return indexEntry{
		Filename:    doc.Filename,
		FileType:    string(doc.FileType),
		Category:    doc.Category,
		Language:    string(doc.Language),
		TotalChunks: doc.TotalChunks,
		CreatedAt:   doc.CreatedAt,
	}
}

func (e indexEntry) toDocument(id string) domain.Document {
	return domain.Document{
		ID:          id,
		Filename:    e.Filename,
		FileType:    domain.SourceType(e.FileType),
		Category:    e.Category,
		Language:    domain.Language(e.Language),
		TotalChunks: e.TotalChunks,
		CreatedAt:   e.CreatedAt,
	}
}

// chunkDTO mirrors one element of a chunk file, embedding inline.
type chunkDTO struct {
	ID         string       `json:"id"`
	Content    string       `json:"content"`
	SourceFile string       `json:"source_file"`
	SourceType string       `json:"source_type"`
	PageNumber int          `json:"page_number,omitempty"`
	ChunkIndex int          `json:"chunk_index"`
	Language   string       `json:"language"`
	Category   string       `json:"category"`
	Metadata   chunkMetaDTO `json:"metadata"`
	Embedding  []float32    `json:"embedding"`
	CreatedAt  time.Time    `json:"created_at"`
}

type chunkMetaDTO struct {
	WordCount int `json:"word_count"`
	CharCount int `json:"char_count"`
}

func chunksToDTO(chunks []domain.Chunk) []chunkDTO {
	dtos := make([]chunkDTO, len(chunks))
	for i, c := range chunks {
		dtos[i] = chunkDTO{
			ID:         c.ID,
			Content:    c.Content,
			SourceFile: c.SourceFile,
			SourceType: string(c.SourceType),
			PageNumber: c.PageNumber,
			ChunkIndex: c.ChunkIndex,
			Language:   string(c.Language),
			Category:   c.Category,
			Metadata:   chunkMetaDTO{WordCount: c.Metadata.WordCount, CharCount: c.Metadata.CharCount},
			Embedding:  c.Embedding,
			CreatedAt:  c.CreatedAt,
		}
	}
	return dtos
}

func (d chunkDTO) toDomain(documentID string) domain.Chunk {
	return domain.Chunk{
		ID:         d.ID,
		DocumentID: documentID,
		Content:    d.Content,
		SourceFile: d.SourceFile,
		SourceType: domain.SourceType(d.SourceType),
		PageNumber: d.PageNumber,
		ChunkIndex: d.ChunkIndex,
		Language:   domain.Language(d.Language),
		Category:   d.Category,
		Metadata:   domain.ChunkMetadata{WordCount: d.Metadata.WordCount, CharCount: d.Metadata.CharCount},
		Embedding:  d.Embedding,
		CreatedAt:  d.CreatedAt,
	}
}
