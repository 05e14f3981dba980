package models

import "time"

// IngestFailure records one file or URL that was rejected or failed
// extraction within a batch.
type IngestFailure struct {
	FileName string `json:"fileName,omitempty"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error"`
}

// IngestResult is the outcome of a batch ingestion. Documents holds the
// successfully catalogued documents; Failed holds the per-item errors.
// A batch with failures is a partial success, not an error.
type IngestResult struct {
	Documents       []*Document     `json:"documents"`
	Failed          []IngestFailure `json:"failed,omitempty"`
	SuccessfulCount int             `json:"successfulCount"`
	FailedCount     int             `json:"failedCount"`
	TotalChunks     int             `json:"totalChunks"`
	VectorsStored   bool            `json:"vectorsStored"`
}

// DataStats is a read-only snapshot of the catalog combined with a
// best-effort look at the vector collection. When the index is
// unreachable the vector numbers are zero and QdrantStatus reads
// "disconnected" instead of the call failing.
type DataStats struct {
	HasCompanyData bool       `json:"hasCompanyData"`
	HasDocuments   bool       `json:"hasDocuments"`
	DocumentCount  int        `json:"documentCount"`
	VectorCount    int64      `json:"vectorCount"`
	CollectionSize int64      `json:"collectionSize"`
	LastUpload     *time.Time `json:"lastUpload,omitempty"`
	LastUpdate     *time.Time `json:"lastUpdate,omitempty"`
	QdrantStatus   string     `json:"qdrantStatus"`
}

// RetrievedContext is one chunk returned by similarity search at query
// time, tagged for citation in the generated answer. It is never
// persisted.
type RetrievedContext struct {
	Text       string  `json:"text"`
	Score      float32 `json:"score"`
	SourceType string  `json:"type"`
	SourceRef  string  `json:"source,omitempty"`
}

// RAGResult is the answer to a retrieval-augmented query together with
// the context it was grounded on.
type RAGResult struct {
	Query    string             `json:"query"`
	Response string             `json:"response"`
	Context  []RetrievedContext `json:"context"`
}

// SuggestionResult carries generated content suggestions. Parsed is
// true when the model output contained decodable JSON; otherwise Data
// falls back to the raw text variant.
type SuggestionResult struct {
	Parsed      bool        `json:"parsed"`
	Data        interface{} `json:"data"`
	RawResponse string      `json:"rawResponse"`
}
