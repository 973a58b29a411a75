package extract

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// fromPDF extracts text page by page and records where each page starts
// so chunks can be attributed back to pages.
func fromPDF(content []byte) (Result, error) {
	doc, err := fitz.NewFromMemory(content)
	if err != nil {
		return Result{}, fmt.Errorf("%w: open pdf: %w", domain.ErrExtractionFailed, err)
	}
	defer doc.Close()

	var b strings.Builder
	pages := doc.NumPage()
	offsets := make([]int, 0, pages)
	written := 0

	for i := 0; i < pages; i++ {
		text, err := doc.Text(i)
		if err != nil || strings.TrimSpace(text) == "" {
			// A page that fails to render loses only itself.
			offsets = append(offsets, written)
			continue
		}
		if written > 0 {
			b.WriteString("\n\n")
			written += 2
		}
		offsets = append(offsets, written)
		b.WriteString(text)
		written += len([]rune(text))
	}

	return Result{Text: b.String(), Pages: pages, PageOffsets: offsets}, nil
}
