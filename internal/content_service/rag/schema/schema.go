package schema

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	// PayloadKeyText is the key for the chunk's text content.
	PayloadKeyText = "text"
	// PayloadKeySourceID is the key for the owning document or profile id.
	PayloadKeySourceID = "source_id"
	// PayloadKeySourceType is the key for the source type ("file", "url", "company_profile").
	PayloadKeySourceType = "type"
	// PayloadKeyTitle is the key for the human-readable source reference
	// (file name, URL or section label) used for citations.
	PayloadKeyTitle = "title"
	// PayloadKeySequence is the key for the chunk's position within its source.
	PayloadKeySequence = "sequence"
)

// Chunk is a bounded slice of a document's or the company profile's
// text: the unit of embedding and retrieval. Ordering via SequenceIndex
// is significant and preserved.
type Chunk struct {
	// ID is derived deterministically from the source id and sequence
	// index so the chunk's vector point can be retracted later without
	// a lookup.
	ID string

	// SourceID points back at the owning document or profile. The
	// catalog owns the lifecycle; this is for lookup only.
	SourceID string

	Text          string
	SequenceIndex int

	// Metadata mirrors what is stored in the vector point payload.
	Metadata map[string]interface{}
}

// ChunkID derives the deterministic id for the chunk at the given
// position of a source. The same (sourceID, index) pair always yields
// the same UUID, which is what makes targeted point deletion possible.
func ChunkID(sourceID string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s:%d", sourceID, index))).String()
}

// VectorPoint is one (id, vector, payload) entry in the vector index.
type VectorPoint struct {
	ID      string
	Vector  []float32
	Payload map[string]interface{}
}

// ScoredPoint is a search hit: the stored payload plus its similarity
// score, in [0,1] for cosine distance.
type ScoredPoint struct {
	Payload map[string]interface{}
	Score   float32
}

// IndexInfo is the introspection snapshot of a collection.
type IndexInfo struct {
	PointCount  int64
	VectorCount int64
}

// PointFromChunk builds the vector point for an embedded chunk.
func PointFromChunk(chunk *Chunk, vector []float32) *VectorPoint {
	payload := make(map[string]interface{}, len(chunk.Metadata)+3)
	for k, v := range chunk.Metadata {
		payload[k] = v
	}
	payload[PayloadKeyText] = chunk.Text
	payload[PayloadKeySourceID] = chunk.SourceID
	payload[PayloadKeySequence] = chunk.SequenceIndex
	return &VectorPoint{
		ID:      chunk.ID,
		Vector:  vector,
		Payload: payload,
	}
}
