// Package chunker splits extracted document text into overlapping
// fixed-size segments for embedding and retrieval.
package chunker

import "strings"

// Default splitting parameters, tuned for sentence-transformer style
// embedding models.
const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// lookbackWindow bounds how far back from the target cut point the
// splitter searches for a natural break.
const lookbackWindow = 100

// Segment is one chunk of the source text. Positions are rune offsets
// into the original text, so Text == original[Start:End] in runes.
type Segment struct {
	Text  string
	Start int
	End   int
}

// Splitter produces overlapping segments of fixed maximum size.
// Adjacent segments share exactly Overlap runes: the tail of segment i
// equals the head of segment i+1. The zero value is not usable; call New.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

// New creates a Splitter. Non-positive size falls back to the default;
// an overlap that is negative or not smaller than the size falls back to
// the default (clamped below the size).
func New(chunkSize, overlap int) Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = DefaultOverlap
		if overlap >= chunkSize {
			overlap = chunkSize / 5
		}
	}
	return Splitter{ChunkSize: chunkSize, Overlap: overlap}
}

// Split cuts text into overlapping segments. Empty or whitespace-only
// input yields no segments. Text shorter than the chunk size yields
// exactly one segment. Splitting never drops runes: concatenating each
// segment's non-overlapping prefix (and the final segment in full)
// reconstructs the input exactly.
func (s Splitter) Split(text string) []Segment {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= s.ChunkSize {
		return []Segment{{Text: text, Start: 0, End: len(runes)}}
	}

	var segments []Segment
	start := 0
	for {
		end := start + s.ChunkSize
		if end >= len(runes) {
			segments = append(segments, Segment{
				Text:  string(runes[start:]),
				Start: start,
				End:   len(runes),
			})
			return segments
		}

		end = snapToBreak(runes, start, end, s.Overlap)
		segments = append(segments, Segment{
			Text:  string(runes[start:end]),
			Start: start,
			End:   end,
		})
		start = end - s.Overlap
	}
}

// snapToBreak moves the cut point back to the nearest natural break
// (paragraph, sentence end, newline, then any space) within the lookback
// window. Falls back to the hard cut when no break is found. The result
// always stays past start+overlap so the next segment makes progress.
func snapToBreak(runes []rune, start, end, overlap int) int {
	window := lookbackWindow
	if max := end - (start + overlap) - 1; window > max {
		window = max
	}
	if window <= 0 {
		return end
	}

	floor := end - window

	// Break candidates in preference order. A candidate cuts after the
	// matched rune so separators stay with the preceding chunk.
	type matcher func(i int) bool
	paragraph := func(i int) bool { return runes[i] == '\n' && i > 0 && runes[i-1] == '\n' }
	sentence := func(i int) bool {
		if i+1 >= end {
			return false
		}
		r, next := runes[i], runes[i+1]
		return (r == '.' || r == '!' || r == '?' || r == '؟') && (next == ' ' || next == '\n')
	}
	newline := func(i int) bool { return runes[i] == '\n' }
	space := func(i int) bool { return runes[i] == ' ' || runes[i] == '\t' }

	for _, match := range []matcher{paragraph, sentence, newline, space} {
		for i := end - 1; i >= floor; i-- {
			if match(i) {
				return i + 1
			}
		}
	}
	return end
}
