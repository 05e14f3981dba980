package splitters

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitEmptyInput(t *testing.T) {
	s := NewTextSplitter(100, 10)
	if got := s.Split("   \n\t  "); len(got) != 0 {
		t.Fatalf("expected no chunks for whitespace input, got %d", len(got))
	}
	if got := s.Split(""); len(got) != 0 {
		t.Fatalf("expected no chunks for empty input, got %d", len(got))
	}
}

func TestSplitRespectsMaxChunkSize(t *testing.T) {
	s := NewTextSplitter(50, 10)
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40)

	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected the text to split into multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > 50 {
			t.Errorf("chunk %d has %d runes, want <= 50", i, n)
		}
	}
}

func TestSplitHardCutsUnbreakableText(t *testing.T) {
	s := NewTextSplitter(20, 0)
	text := strings.Repeat("x", 100)

	chunks := s.Split(text)
	if len(chunks) == 0 {
		t.Fatal("expected chunks for unbreakable text")
	}
	var total int
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > 20 {
			t.Errorf("chunk %d has %d runes, want <= 20", i, n)
		}
		total += utf8.RuneCountInString(c)
	}
	if total != 100 {
		t.Errorf("hard cut lost or duplicated text: %d runes total, want 100", total)
	}
}

func TestSplitPreservesOrderWithoutOverlap(t *testing.T) {
	s := NewTextSplitter(16, 0)
	text := "alpha beta.\n\ngamma delta.\n\nepsilon zeta."

	chunks := s.Split(text)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %q", len(chunks), chunks)
	}
	joined := strings.Join(chunks, " ")
	want := "alpha beta. gamma delta. epsilon zeta."
	if joined != want {
		t.Errorf("rejoined chunks = %q, want %q", joined, want)
	}
}

func TestSplitCarriesOverlap(t *testing.T) {
	s := NewTextSplitter(30, 10)
	text := "Aaa bbb ccc. Ddd eee fff. Ggg hhh iii. Jjj kkk lll."

	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d: %q", len(chunks), chunks)
	}
	for i := 1; i < len(chunks); i++ {
		head := strings.Fields(chunks[i])[0]
		if !strings.Contains(chunks[i-1], head) {
			t.Errorf("chunk %d does not start with text carried from chunk %d: %q after %q",
				i, i-1, chunks[i], chunks[i-1])
		}
	}
}

func TestOverlapTailSnapsToWordBoundary(t *testing.T) {
	if got := overlapTail("alpha beta gamma", 7); got != "gamma" {
		t.Errorf("tail = %q, want the whole last word", got)
	}
	// The last overlap runes of an unbroken word carry nothing rather
	// than a mid-word fragment.
	if got := overlapTail("prefix abcdefghijklmnop", 5); got != "" {
		t.Errorf("tail = %q, want empty for a mid-word cut", got)
	}
	// A chunk shorter than the overlap is carried whole.
	if got := overlapTail("tiny", 10); got != "tiny" {
		t.Errorf("tail = %q, want the whole chunk", got)
	}
}

func TestNewTextSplitterClampsOverlap(t *testing.T) {
	s := NewTextSplitter(100, 200)
	if s.Overlap >= s.MaxChunkSize {
		t.Errorf("overlap %d not clamped below max chunk size %d", s.Overlap, s.MaxChunkSize)
	}
}
