package loaders

import (
	"context"
	"regexp"
	"strings"

	"contentforge/internal/content_service/rag/interfaces"
)

// TxtLoader implements the FileLoader interface for plain text files.
type TxtLoader struct{}

// NewTxtLoader creates a new TxtLoader.
func NewTxtLoader() *TxtLoader {
	return &TxtLoader{}
}

// Extract returns the file content as-is, normalized to Unix line endings.
func (l *TxtLoader) Extract(ctx context.Context, name string, data []byte) (string, error) {
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}

// MarkdownLoader implements the FileLoader interface for Markdown
// files. Markup that carries no prose (image references, code fences)
// is stripped so the embeddings are not polluted with syntax.
type MarkdownLoader struct{}

// NewMarkdownLoader creates a new MarkdownLoader.
func NewMarkdownLoader() *MarkdownLoader {
	return &MarkdownLoader{}
}

var (
	mdImageRe = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	mdLinkRe  = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)
	mdFenceRe = regexp.MustCompile("(?s)```.*?```")
)

// Extract strips images, code fences and link targets, keeping link
// labels and all prose.
func (l *MarkdownLoader) Extract(ctx context.Context, name string, data []byte) (string, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = mdFenceRe.ReplaceAllString(text, "")
	text = mdImageRe.ReplaceAllString(text, "")
	text = mdLinkRe.ReplaceAllString(text, "$1")
	return text, nil
}

// compile-time checks to ensure the loaders implement the FileLoader interface
var (
	_ interfaces.FileLoader = (*TxtLoader)(nil)
	_ interfaces.FileLoader = (*MarkdownLoader)(nil)
)
