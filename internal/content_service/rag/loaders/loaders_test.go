package loaders

import (
	"context"
	"errors"
	"strings"
	"testing"

	"contentforge/internal/models"
)

func TestForFileRejectsUnknownExtension(t *testing.T) {
	_, err := ForFile("payload.exe", []byte{0x4d, 0x5a, 0x90, 0x00})
	var unsupported *models.UnsupportedTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedTypeError, got %T: %v", err, err)
	}
	if unsupported.FileName != "payload.exe" {
		t.Errorf("fileName = %q", unsupported.FileName)
	}
}

func TestForFileRejectsMismatchedContent(t *testing.T) {
	// A .pdf extension over plain text bytes must be rejected by the
	// content sniff before reaching the extractor.
	_, err := ForFile("report.pdf", []byte("just some plain text"))
	var unsupported *models.UnsupportedTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedTypeError, got %T: %v", err, err)
	}
}

func TestTxtLoaderExtractsText(t *testing.T) {
	loader, err := ForFile("notes.txt", []byte("First line.\nSecond line.\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := loader.Extract(context.Background(), "notes.txt", []byte("First line.\nSecond line.\n"))
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}
	if !strings.Contains(text, "First line.") || !strings.Contains(text, "Second line.") {
		t.Errorf("extracted text = %q", text)
	}
}

func TestMarkdownLoaderStripsSyntax(t *testing.T) {
	src := []byte("# Heading\n\nSome *emphasized* prose with a [link](https://example.com).\n\n```go\ncode block\n```\n")
	loader, err := ForFile("readme.md", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := loader.Extract(context.Background(), "readme.md", src)
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}
	if strings.Contains(text, "](") {
		t.Errorf("link syntax survived extraction: %q", text)
	}
	if !strings.Contains(text, "Heading") || !strings.Contains(text, "prose") {
		t.Errorf("extracted text lost content: %q", text)
	}
}

func TestSupportedExtensionsCoverAllowList(t *testing.T) {
	exts := SupportedExtensions()
	want := map[string]bool{".txt": true, ".md": true, ".pdf": true, ".docx": true, ".xlsx": true}
	if len(exts) != len(want) {
		t.Fatalf("got %d extensions, want %d", len(exts), len(want))
	}
	for _, ext := range exts {
		if !want[ext] {
			t.Errorf("unexpected extension %q", ext)
		}
	}
}
