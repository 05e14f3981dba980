package loaders

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"contentforge/internal/content_service/rag/interfaces"
)

// XlsxLoader implements the FileLoader interface for Excel (.xlsx)
// files. Each sheet becomes a labeled section, each row one line of
// tab-separated cells.
type XlsxLoader struct{}

// NewXlsxLoader creates a new XlsxLoader.
func NewXlsxLoader() *XlsxLoader {
	return &XlsxLoader{}
}

// Extract renders all sheets into plain text.
func (l *XlsxLoader) Extract(ctx context.Context, name string, data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to open xlsx %s: %w", name, err)
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("Sheet: %s\n", sheet))
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, "\t"))
			if line == "" {
				continue
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("no extractable text in xlsx %s", name)
	}
	return out, nil
}

// compile-time check to ensure XlsxLoader implements the FileLoader interface
var _ interfaces.FileLoader = (*XlsxLoader)(nil)
