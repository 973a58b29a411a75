// Package extract turns uploaded document bytes into plain text ready
// for chunking. PDF extraction uses MuPDF via go-fitz; Markdown is
// normalized through the goldmark AST so headings become section breaks.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// Result is the extracted text of one document.
type Result struct {
	Text  string
	Pages int
	// PageOffsets holds the rune offset where each page's text begins,
	// aligned with 1-based page numbers. Nil for unpaged sources.
	PageOffsets []int
}

// PageFor returns the 1-based page number containing the given rune
// offset, or 0 for unpaged sources.
func (r Result) PageFor(runeOffset int) int {
	if len(r.PageOffsets) == 0 {
		return 0
	}
	page := 1
	for i, off := range r.PageOffsets {
		if runeOffset < off {
			break
		}
		page = i + 1
	}
	return page
}

// TypeForFilename maps a filename extension to a source type.
func TypeForFilename(filename string) (domain.SourceType, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return domain.SourcePDF, nil
	case ".md", ".markdown":
		return domain.SourceMarkdown, nil
	case ".txt":
		return domain.SourceText, nil
	case ".json":
		return domain.SourceJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, filepath.Ext(filename))
	}
}

// FromBytes extracts text from raw document bytes of the given type.
func FromBytes(content []byte, srcType domain.SourceType) (Result, error) {
	switch srcType {
	case domain.SourcePDF:
		return fromPDF(content)
	case domain.SourceMarkdown:
		return fromMarkdown(content)
	case domain.SourceJSON:
		return fromJSON(content)
	case domain.SourceText:
		return Result{Text: string(content)}, nil
	default:
		return Result{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, srcType)
	}
}
