package chunker

import (
	"strings"
	"testing"
)

func TestSplit_EmptyInput(t *testing.T) {
	s := New(1000, 200)

	for _, input := range []string{"", "   ", "\n\t\n", "  \n  "} {
		if got := s.Split(input); len(got) != 0 {
			t.Errorf("Split(%q): expected no segments, got %d", input, len(got))
		}
	}
}

func TestSplit_ShortInputSingleSegment(t *testing.T) {
	s := New(1000, 200)

	text := "a short document"
	segs := s.Split(text)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Text != text {
		t.Errorf("segment text mismatch: %q", segs[0].Text)
	}
	if segs[0].Start != 0 || segs[0].End != len([]rune(text)) {
		t.Errorf("segment bounds: got [%d:%d]", segs[0].Start, segs[0].End)
	}
}

func TestSplit_HardCutSizes(t *testing.T) {
	// No natural breaks anywhere: every cut is a hard cut.
	text := strings.Repeat("a", 2500)
	s := New(1000, 200)

	segs := s.Split(text)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	if got := len([]rune(segs[0].Text)); got != 1000 {
		t.Errorf("segment 0 length: got %d, want 1000", got)
	}
	if got := len([]rune(segs[1].Text)); got != 1000 {
		t.Errorf("segment 1 length: got %d, want 1000", got)
	}
	if got := len([]rune(segs[2].Text)); got > 1000 {
		t.Errorf("segment 2 length: got %d, want <= 1000", got)
	}
	if segs[0].Text[800:1000] != segs[1].Text[0:200] {
		t.Error("tail of segment 0 does not equal head of segment 1")
	}
}

func TestSplit_OverlapInvariant(t *testing.T) {
	text := loremText(12000)
	s := New(1000, 200)

	segs := s.Split(text)
	if len(segs) < 2 {
		t.Fatalf("expected multiple segments, got %d", len(segs))
	}

	for i := 0; i < len(segs)-1; i++ {
		tail := []rune(segs[i].Text)
		head := []rune(segs[i+1].Text)
		if len(tail) < s.Overlap || len(head) < s.Overlap {
			t.Fatalf("segment %d too short for overlap check", i)
		}
		if string(tail[len(tail)-s.Overlap:]) != string(head[:s.Overlap]) {
			t.Errorf("overlap mismatch between segments %d and %d", i, i+1)
		}
	}
}

func TestSplit_Lossless(t *testing.T) {
	for _, tc := range []struct {
		name string
		text string
	}{
		{"plain", loremText(5000)},
		{"unbroken", strings.Repeat("x", 3333)},
		{"multibyte", strings.Repeat("déjà vu encore une fois. ", 300)},
		{"newlines", strings.Repeat("line one\nline two\n\n", 250)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := New(1000, 200)
			segs := s.Split(tc.text)

			var b strings.Builder
			for i, seg := range segs {
				runes := []rune(seg.Text)
				if i == len(segs)-1 {
					b.WriteString(seg.Text)
				} else {
					b.WriteString(string(runes[:len(runes)-s.Overlap]))
				}
			}
			if b.String() != tc.text {
				t.Error("reconstructed text does not match original")
			}
		})
	}
}

func TestSplit_MaxSegmentSize(t *testing.T) {
	s := New(500, 100)
	for _, seg := range s.Split(loremText(8000)) {
		if got := len([]rune(seg.Text)); got > 500 {
			t.Errorf("segment exceeds chunk size: %d", got)
		}
	}
}

func TestSplit_PrefersSentenceBreaks(t *testing.T) {
	// Sentence ends fall inside the lookback window of every cut.
	text := strings.Repeat("This is a sentence of some words. ", 200)
	s := New(1000, 200)

	segs := s.Split(text)
	for i, seg := range segs[:len(segs)-1] {
		if !strings.HasSuffix(seg.Text, ".") && !strings.HasSuffix(seg.Text, " ") {
			t.Errorf("segment %d does not end on a natural break: ...%q", i, tailOf(seg.Text, 20))
		}
	}
}

func TestNew_InvalidParamsFallBack(t *testing.T) {
	s := New(0, -1)
	if s.ChunkSize != DefaultChunkSize || s.Overlap != DefaultOverlap {
		t.Errorf("got size=%d overlap=%d", s.ChunkSize, s.Overlap)
	}

	s = New(100, 100) // overlap must be smaller than size
	if s.Overlap >= s.ChunkSize {
		t.Errorf("overlap %d not clamped below size %d", s.Overlap, s.ChunkSize)
	}
}

func tailOf(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

// loremText builds deterministic prose of roughly n runes with word,
// sentence and paragraph breaks.
func loremText(n int) string {
	var b strings.Builder
	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf"}
	i := 0
	for b.Len() < n {
		b.WriteString(words[i%len(words)])
		i++
		switch {
		case i%13 == 0:
			b.WriteString(".\n\n")
		case i%7 == 0:
			b.WriteString(". ")
		default:
			b.WriteString(" ")
		}
	}
	return b.String()
}
