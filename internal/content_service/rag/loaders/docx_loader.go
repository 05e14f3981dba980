package loaders

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/v2/document"

	"contentforge/internal/content_service/rag/interfaces"
)

// DocxLoader implements the FileLoader interface for Word (.docx) files.
type DocxLoader struct{}

// NewDocxLoader creates a new DocxLoader.
func NewDocxLoader() *DocxLoader {
	return &DocxLoader{}
}

// Extract concatenates the text of every paragraph run in the document.
func (l *DocxLoader) Extract(ctx context.Context, name string, data []byte) (string, error) {
	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx %s: %w", name, err)
	}
	defer doc.Close()

	var sb strings.Builder
	for _, para := range doc.Paragraphs() {
		var line strings.Builder
		for _, run := range para.Runs() {
			line.WriteString(run.Text())
		}
		if text := strings.TrimSpace(line.String()); text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("no extractable text in docx %s", name)
	}
	return out, nil
}

// compile-time check to ensure DocxLoader implements the FileLoader interface
var _ interfaces.FileLoader = (*DocxLoader)(nil)
