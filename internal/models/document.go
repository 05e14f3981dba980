package models

import "time"

// SourceType identifies where a document's text came from.
type SourceType string

const (
	SourceTypeFile    SourceType = "file"
	SourceTypeURL     SourceType = "url"
	SourceTypeProfile SourceType = "company_profile"
)

// Document represents one ingested file or URL. A document whose Error
// field is set failed extraction or validation: it is reported back to
// the caller for visibility but is never chunked, embedded or added to
// the catalog.
type Document struct {
	ID            string     `json:"id"`
	SourceType    SourceType `json:"sourceType"`
	Title         string     `json:"title,omitempty"`
	FileName      string     `json:"fileName,omitempty"`
	URL           string     `json:"url,omitempty"`
	ExtractedText string     `json:"-"`
	WordCount     int        `json:"wordCount"`
	ChunkCount    int        `json:"chunkCount"`
	Timestamp     time.Time  `json:"timestamp"`
	Error         string     `json:"error,omitempty"`

	// PointIDs are the vector point ids produced for this document at
	// ingest time; DeleteDocument retracts exactly these.
	PointIDs []string `json:"-"`
}

// Clone returns a copy safe to hand out of the catalog.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	cd := *d
	cd.PointIDs = append([]string(nil), d.PointIDs...)
	return &cd
}

// FileUpload carries one uploaded file through the ingestion boundary.
// Staging to disk is the controller's concern; the catalog only sees
// the name and raw bytes.
type FileUpload struct {
	Name string
	Data []byte
}
