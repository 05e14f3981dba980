package splitters

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"contentforge/internal/content_service/rag/interfaces"
)

// TextSplitter implements the Splitter interface. It prefers semantic
// boundaries, paragraphs first and then sentences, and only falls back
// to a hard character cutoff for text with no usable boundary, so no
// chunk ever exceeds MaxChunkSize characters. Consecutive chunks share
// a configurable overlap to preserve local context.
type TextSplitter struct {
	MaxChunkSize int
	Overlap      int
}

// NewTextSplitter creates a splitter. Overlap must be smaller than
// MaxChunkSize; out-of-range values are clamped.
func NewTextSplitter(maxChunkSize, overlap int) *TextSplitter {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}
	return &TextSplitter{MaxChunkSize: maxChunkSize, Overlap: overlap}
}

var (
	paragraphRe = regexp.MustCompile(`\n\s*\n`)
	sentenceRe  = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?]+\s*)`)
)

// Split cuts text into ordered chunks of at most MaxChunkSize
// characters. Empty or whitespace-only input yields no chunks.
func (s *TextSplitter) Split(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	units := s.units(trimmed)

	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, unit := range units {
		unitLen := utf8.RuneCountInString(unit)
		sep := 0
		if currentLen > 0 {
			sep = 1
		}

		if currentLen > 0 && currentLen+sep+unitLen > s.MaxChunkSize {
			chunk := current.String()
			chunks = append(chunks, chunk)

			current.Reset()
			currentLen = 0
			if tail := overlapTail(chunk, s.Overlap); tail != "" {
				current.WriteString(tail)
				currentLen = utf8.RuneCountInString(tail)
			}
			sep = 0
			if currentLen > 0 {
				sep = 1
			}
		}

		if sep == 1 {
			current.WriteString(" ")
			currentLen++
		}
		current.WriteString(unit)
		currentLen += unitLen
	}

	if currentLen > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// units breaks the text into pieces that each fit a chunk together with
// the overlap carried in from the previous one: paragraphs where they
// fit, sentences where a paragraph is too long, hard cuts where even a
// sentence is too long.
func (s *TextSplitter) units(text string) []string {
	// A unit must leave room for the overlap tail and a separator.
	budget := s.MaxChunkSize - s.Overlap - 1
	if budget < 1 {
		budget = 1
	}

	var units []string
	for _, para := range paragraphRe.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if utf8.RuneCountInString(para) <= budget {
			units = append(units, para)
			continue
		}
		for _, sentence := range splitSentences(para) {
			if utf8.RuneCountInString(sentence) <= budget {
				units = append(units, sentence)
				continue
			}
			units = append(units, hardCut(sentence, budget)...)
		}
	}
	return units
}

// splitSentences cuts a paragraph on sentence punctuation. Text without
// terminal punctuation comes back as a single piece.
func splitSentences(text string) []string {
	spans := sentenceRe.FindAllStringIndex(text, -1)
	if len(spans) == 0 {
		return []string{text}
	}
	sentences := make([]string, 0, len(spans)+1)
	consumed := 0
	for _, span := range spans {
		// Keep any unmatched gap attached to the following sentence.
		if t := strings.TrimSpace(text[consumed:span[1]]); t != "" {
			sentences = append(sentences, t)
		}
		consumed = span[1]
	}
	// Trailing text after the last terminal is still a unit.
	if rest := strings.TrimSpace(text[consumed:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

// hardCut slices text into pieces of at most size runes.
func hardCut(text string, size int) []string {
	runes := []rune(text)
	pieces := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		pieces = append(pieces, string(runes[start:end]))
	}
	return pieces
}

// overlapTail returns the last overlap runes of a chunk, snapped to the
// nearest word boundary so the carried context stays readable. A tail
// that sits entirely inside one word carries nothing rather than a
// mid-word fragment.
func overlapTail(chunk string, overlap int) string {
	if overlap <= 0 {
		return ""
	}
	runes := []rune(chunk)
	if len(runes) <= overlap {
		return chunk
	}
	tail := string(runes[len(runes)-overlap:])
	idx := strings.IndexAny(tail, " \t\n")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(tail[idx+1:])
}

// compile-time check to ensure TextSplitter implements the Splitter interface
var _ interfaces.Splitter = (*TextSplitter)(nil)
