package loaders

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"contentforge/internal/content_service/rag/interfaces"
)

// PdfLoader implements the FileLoader interface for PDF files.
type PdfLoader struct{}

// NewPdfLoader creates a new PdfLoader.
func NewPdfLoader() *PdfLoader {
	return &PdfLoader{}
}

// Extract reads every page of the PDF and concatenates the plain text,
// one paragraph per page. Pages that fail text extraction are skipped
// rather than failing the whole document.
func (l *PdfLoader) Extract(ctx context.Context, name string, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf %s: %w", name, err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("no extractable text in pdf %s", name)
	}
	return out, nil
}

// compile-time check to ensure PdfLoader implements the FileLoader interface
var _ interfaces.FileLoader = (*PdfLoader)(nil)
