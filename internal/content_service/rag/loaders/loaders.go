package loaders

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"contentforge/internal/content_service/rag/interfaces"
	"contentforge/internal/models"
)

// supported maps the ingestion allow-list extensions to the MIME type
// prefixes we accept for them. Content is sniffed, not trusted from the
// file name: a .pdf that does not hold PDF bytes is rejected up front
// instead of failing deep inside the extractor.
var supported = map[string][]string{
	".txt":  {"text/plain"},
	".md":   {"text/plain", "text/markdown"},
	".pdf":  {"application/pdf"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	".xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
}

// ForFile picks the extractor for an uploaded file, validating the
// extension against the allow-list and the sniffed content type against
// the extension. Returns UnsupportedTypeError for anything else.
func ForFile(name string, data []byte) (interfaces.FileLoader, error) {
	ext := strings.ToLower(filepath.Ext(name))
	mimes, ok := supported[ext]
	if !ok {
		return nil, &models.UnsupportedTypeError{FileName: name, Ext: ext}
	}

	detected := mimetype.Detect(data)
	matched := false
	for _, m := range mimes {
		if detected.Is(m) || strings.HasPrefix(detected.String(), m) {
			matched = true
			break
		}
	}
	if !matched {
		return nil, &models.UnsupportedTypeError{FileName: name, Ext: detected.String()}
	}

	switch ext {
	case ".txt":
		return NewTxtLoader(), nil
	case ".md":
		return NewMarkdownLoader(), nil
	case ".pdf":
		return NewPdfLoader(), nil
	case ".docx":
		return NewDocxLoader(), nil
	case ".xlsx":
		return NewXlsxLoader(), nil
	}
	return nil, &models.UnsupportedTypeError{FileName: name, Ext: ext}
}

// SupportedExtensions lists the allow-list, for error messages and the
// upload UI.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(supported))
	for ext := range supported {
		exts = append(exts, ext)
	}
	return exts
}
