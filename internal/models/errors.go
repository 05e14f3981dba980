package models

import (
	"fmt"
	"strings"
)

// ValidationError reports a malformed request. Fields lists the
// violated field names.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// UnsupportedTypeError marks a single file in a batch whose type is not
// on the ingestion allow-list. It never aborts the batch.
type UnsupportedTypeError struct {
	FileName string
	Ext      string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q for %s", e.Ext, e.FileName)
}

// InvalidURLError marks a single syntactically invalid URL in a batch.
type InvalidURLError struct {
	URL string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid url: %s", e.URL)
}

// ProviderUnavailableError reports that the embedding or generation
// provider could not be reached. Ingestion catches it and degrades to
// storing documents without vectors.
type ProviderUnavailableError struct {
	Provider string
	Err      error
}

func (e *ProviderUnavailableError) Error() string {
	return fmt.Sprintf("provider %s unavailable: %v", e.Provider, e.Err)
}

func (e *ProviderUnavailableError) Unwrap() error { return e.Err }

// IndexUnavailableError reports a vector index backend failure. After an
// upsert fails with it the index state is unknown: callers must not
// assume the points were written.
type IndexUnavailableError struct {
	Op  string
	Err error
}

func (e *IndexUnavailableError) Error() string {
	return fmt.Sprintf("vector index unavailable during %s: %v", e.Op, e.Err)
}

func (e *IndexUnavailableError) Unwrap() error { return e.Err }

// GenerationError reports a generation provider failure on the query
// path. Unlike ingestion there is no degrade path: a query without a
// model answer has no value.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ConfigurationError reports an invalid deployment configuration, such
// as an embedding dimensionality that does not match the vector
// collection. It is fatal at startup, never raised per call.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}
