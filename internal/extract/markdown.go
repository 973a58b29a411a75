package extract

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// fromMarkdown walks the goldmark AST and rebuilds the document as
// heading-delimited sections separated by blank lines, so the chunker's
// paragraph-break preference lines up with document structure.
func fromMarkdown(content []byte) (Result, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(content))

	var sections []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sections = append(sections, s)
		}
		current.Reset()
	}

	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Parent() == nil || n.Parent().Kind() != ast.KindDocument {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			flush()
			current.WriteString(strings.Repeat("#", h.Level))
			current.WriteString(" ")
			current.WriteString(string(nodeLines(h, content)))
			current.WriteString("\n")
			return ast.WalkSkipChildren, nil
		}
		if block := nodeLines(n, content); len(block) > 0 {
			current.Write(block)
			current.WriteString("\n")
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: walk markdown: %w", domain.ErrExtractionFailed, err)
	}
	flush()

	return Result{Text: strings.Join(sections, "\n\n")}, nil
}

// nodeLines returns the raw source lines of a block node, including the
// lines of its nested blocks (lists, quotes).
func nodeLines(n ast.Node, src []byte) []byte {
	var b []byte
	appendLines := func(node ast.Node) {
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b = append(b, seg.Value(src)...)
		}
	}
	appendLines(n)
	if len(b) == 0 {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			b = append(b, nodeLines(c, src)...)
		}
	}
	return b
}
