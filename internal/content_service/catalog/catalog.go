package catalog

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"contentforge/internal/content_service/rag/interfaces"
	"contentforge/internal/content_service/rag/loaders"
	"contentforge/internal/content_service/rag/schema"
	"contentforge/internal/models"
	"contentforge/pkg/logger"
)

// Catalog orchestrates ingestion: it keeps the Store and the vector
// index in sync, degrading to text-only storage whenever the embedding
// provider or the index is unavailable. Textual data availability wins
// over vector availability in every conflict.
type Catalog struct {
	store     *Store
	splitter  interfaces.Splitter
	embedder  interfaces.Embedder
	index     interfaces.VectorIndex
	urlLoader interfaces.URLLoader
	log       *logger.Logger
}

// NewCatalog wires the catalog with its collaborators.
func NewCatalog(store *Store, splitter interfaces.Splitter, embedder interfaces.Embedder, index interfaces.VectorIndex, urlLoader interfaces.URLLoader) *Catalog {
	return &Catalog{
		store:     store,
		splitter:  splitter,
		embedder:  embedder,
		index:     index,
		urlLoader: urlLoader,
		log:       logger.New("catalog"),
	}
}

// UploadProfile validates and stores the company profile, replacing any
// prior one wholesale. The prior version's vector points are retracted
// and the new text is chunked, embedded and indexed; when the provider
// or index is down the profile is stored with VectorCount 0 instead of
// failing the upload.
func (c *Catalog) UploadProfile(ctx context.Context, input *models.CompanyProfileInput) (*models.CompanyProfile, error) {
	if fields := validateProfileInput(input); len(fields) > 0 {
		return nil, &models.ValidationError{Fields: fields}
	}

	prior := c.store.Profile()
	profile := profileFromInput(input)
	profile.ID = uuid.NewString()
	profile.UploadedAt = time.Now().UTC()

	if prior != nil {
		c.retractPoints(ctx, prior.PointIDs, "prior profile")
	}
	c.indexProfile(ctx, profile)

	c.store.ReplaceProfile(profile)
	return profile, nil
}

// UpdateProfile replaces the stored profile's content while preserving
// its identity and upload time. It requires an existing profile and
// retracts only that profile's own points, so document vectors are
// never touched by a profile update.
func (c *Catalog) UpdateProfile(ctx context.Context, input *models.CompanyProfileInput) (*models.CompanyProfile, error) {
	if fields := validateProfileInput(input); len(fields) > 0 {
		return nil, &models.ValidationError{Fields: fields}
	}

	prior := c.store.Profile()
	if prior == nil {
		return nil, &models.NotFoundError{Resource: "company profile"}
	}

	profile := profileFromInput(input)
	profile.ID = prior.ID
	profile.UploadedAt = prior.UploadedAt
	now := time.Now().UTC()
	profile.UpdatedAt = &now

	c.retractPoints(ctx, prior.PointIDs, "prior profile")
	c.indexProfile(ctx, profile)

	c.store.ReplaceProfile(profile)
	return profile, nil
}

// DeleteProfile removes the profile and retracts its vector points,
// returning the deleted snapshot.
func (c *Catalog) DeleteProfile(ctx context.Context) (*models.CompanyProfile, error) {
	removed := c.store.RemoveProfile()
	if removed == nil {
		return nil, &models.NotFoundError{Resource: "company profile"}
	}
	c.retractPoints(ctx, removed.PointIDs, "deleted profile")
	return removed, nil
}

// GetProfile returns the current profile snapshot.
func (c *Catalog) GetProfile() (*models.CompanyProfile, error) {
	p := c.store.Profile()
	if p == nil {
		return nil, &models.NotFoundError{Resource: "company profile"}
	}
	return p, nil
}

// IngestFiles ingests a batch of uploaded files. Per-file validation
// and extraction failures are collected and never abort the batch; the
// surviving files are chunked and embedded in one batched call. An
// embedding or index failure degrades the whole batch to documents
// without vectors.
func (c *Catalog) IngestFiles(ctx context.Context, uploads []*models.FileUpload) (*models.IngestResult, error) {
	result := &models.IngestResult{Documents: []*models.Document{}}

	type pending struct {
		doc    *models.Document
		chunks []*schema.Chunk
	}
	var batch []pending
	var allChunks []*schema.Chunk

	for _, up := range uploads {
		loader, err := loaders.ForFile(up.Name, up.Data)
		if err != nil {
			result.Failed = append(result.Failed, models.IngestFailure{FileName: up.Name, Error: err.Error()})
			continue
		}
		text, err := loader.Extract(ctx, up.Name, up.Data)
		if err != nil {
			result.Failed = append(result.Failed, models.IngestFailure{FileName: up.Name, Error: err.Error()})
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			result.Failed = append(result.Failed, models.IngestFailure{FileName: up.Name, Error: "no extractable text"})
			continue
		}

		doc := &models.Document{
			ID:            uuid.NewString(),
			SourceType:    models.SourceTypeFile,
			Title:         strings.TrimSuffix(up.Name, filepath.Ext(up.Name)),
			FileName:      up.Name,
			ExtractedText: text,
			WordCount:     len(strings.Fields(text)),
			Timestamp:     time.Now().UTC(),
		}
		chunks := c.chunksFor(doc.ID, models.SourceTypeFile, up.Name, text)
		doc.ChunkCount = len(chunks)

		batch = append(batch, pending{doc: doc, chunks: chunks})
		allChunks = append(allChunks, chunks...)
	}

	stored := c.indexChunks(ctx, allChunks)
	for _, p := range batch {
		if stored {
			p.doc.PointIDs = chunkIDs(p.chunks)
		}
		c.store.AppendDocument(p.doc)
		result.Documents = append(result.Documents, p.doc.Clone())
		result.TotalChunks += len(p.chunks)
	}
	result.SuccessfulCount = len(batch)
	result.FailedCount = len(result.Failed)
	result.VectorsStored = stored && len(allChunks) > 0
	return result, nil
}

// IngestURLs ingests a batch of web pages. Syntactically invalid URLs
// fail fast per item without being fetched; fetch and extraction
// failures are collected per item. The embedding and degradation policy
// matches IngestFiles.
func (c *Catalog) IngestURLs(ctx context.Context, rawURLs []string) (*models.IngestResult, error) {
	result := &models.IngestResult{Documents: []*models.Document{}}

	type pending struct {
		doc    *models.Document
		chunks []*schema.Chunk
	}
	var batch []pending
	var allChunks []*schema.Chunk

	for _, raw := range rawURLs {
		raw = strings.TrimSpace(raw)
		if err := validateURL(raw); err != nil {
			result.Failed = append(result.Failed, models.IngestFailure{URL: raw, Error: err.Error()})
			continue
		}
		title, text, err := c.urlLoader.ExtractURL(ctx, raw)
		if err != nil {
			result.Failed = append(result.Failed, models.IngestFailure{URL: raw, Error: err.Error()})
			continue
		}
		if title == "" {
			title = raw
		}

		doc := &models.Document{
			ID:            uuid.NewString(),
			SourceType:    models.SourceTypeURL,
			Title:         title,
			URL:           raw,
			ExtractedText: text,
			WordCount:     len(strings.Fields(text)),
			Timestamp:     time.Now().UTC(),
		}
		chunks := c.chunksFor(doc.ID, models.SourceTypeURL, raw, text)
		doc.ChunkCount = len(chunks)

		batch = append(batch, pending{doc: doc, chunks: chunks})
		allChunks = append(allChunks, chunks...)
	}

	stored := c.indexChunks(ctx, allChunks)
	for _, p := range batch {
		if stored {
			p.doc.PointIDs = chunkIDs(p.chunks)
		}
		c.store.AppendDocument(p.doc)
		result.Documents = append(result.Documents, p.doc.Clone())
		result.TotalChunks += len(p.chunks)
	}
	result.SuccessfulCount = len(batch)
	result.FailedCount = len(result.Failed)
	result.VectorsStored = stored && len(allChunks) > 0
	return result, nil
}

// ListDocuments returns snapshots of every catalogued document.
func (c *Catalog) ListDocuments() []*models.Document {
	return c.store.Documents()
}

// GetDocument looks a document up by id, file name or URL.
func (c *Catalog) GetDocument(idOrName string) (*models.Document, error) {
	d := c.store.FindDocument(idOrName)
	if d == nil {
		return nil, &models.NotFoundError{Resource: "document"}
	}
	return d, nil
}

// DeleteDocument removes a document by id, file name or URL (first
// match wins) and retracts exactly the vector points recorded for it at
// ingest time. Retraction failure is logged and tolerated; the catalog
// removal stands, so stale vectors may remain searchable until the
// index recovers.
func (c *Catalog) DeleteDocument(ctx context.Context, idOrName string) (*models.Document, error) {
	removed := c.store.RemoveDocument(idOrName)
	if removed == nil {
		return nil, &models.NotFoundError{Resource: "document"}
	}
	c.retractPoints(ctx, removed.PointIDs, "deleted document")
	return removed, nil
}

// Stats snapshots the catalog and takes a best-effort look at the
// vector collection. An unreachable index never fails the call: the
// vector numbers stay zero and QdrantStatus reads "disconnected".
func (c *Catalog) Stats(ctx context.Context) *models.DataStats {
	profile := c.store.Profile()
	docs := c.store.Documents()

	stats := &models.DataStats{
		HasCompanyData: profile != nil,
		HasDocuments:   len(docs) > 0,
		DocumentCount:  len(docs),
		QdrantStatus:   "connected",
	}

	var lastUpload time.Time
	if profile != nil {
		lastUpload = profile.UploadedAt
		stats.LastUpdate = profile.UpdatedAt
	}
	for _, d := range docs {
		if d.Timestamp.After(lastUpload) {
			lastUpload = d.Timestamp
		}
	}
	if !lastUpload.IsZero() {
		stats.LastUpload = &lastUpload
	}

	info, err := c.index.Info(ctx)
	if err != nil {
		c.log.WithError(err).Warn("vector index unreachable, reporting catalog-only stats")
		stats.QdrantStatus = "disconnected"
		return stats
	}
	stats.VectorCount = info.VectorCount
	stats.CollectionSize = info.PointCount
	return stats
}

// chunksFor splits the text and wraps each piece with its deterministic
// id and citation metadata.
func (c *Catalog) chunksFor(sourceID string, sourceType models.SourceType, titleRef, text string) []*schema.Chunk {
	pieces := c.splitter.Split(text)
	chunks := make([]*schema.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = &schema.Chunk{
			ID:            schema.ChunkID(sourceID, i),
			SourceID:      sourceID,
			Text:          piece,
			SequenceIndex: i,
			Metadata: map[string]interface{}{
				schema.PayloadKeySourceType: string(sourceType),
				schema.PayloadKeyTitle:      titleRef,
			},
		}
	}
	return chunks
}

// indexProfile chunks, embeds and indexes the profile text, recording
// the point ids on success. A provider or index failure leaves the
// profile with VectorCount 0.
func (c *Catalog) indexProfile(ctx context.Context, profile *models.CompanyProfile) {
	chunks := c.chunksFor(profile.ID, models.SourceTypeProfile, "company profile", FlattenProfile(profile))
	if c.indexChunks(ctx, chunks) {
		profile.PointIDs = chunkIDs(chunks)
		profile.VectorCount = len(chunks)
	}
}

// indexChunks embeds and upserts the chunks as one batch. It reports
// whether the vectors were stored; any failure is logged and degrades
// to false rather than propagating.
func (c *Catalog) indexChunks(ctx context.Context, chunks []*schema.Chunk) bool {
	if len(chunks) == 0 {
		return false
	}
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}

	vectors, err := c.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		c.log.WithError(err).Warn("embedding unavailable, storing text without vectors")
		return false
	}

	points := make([]*schema.VectorPoint, len(chunks))
	for i, ch := range chunks {
		points[i] = schema.PointFromChunk(ch, vectors[i])
	}
	if _, err := c.index.Upsert(ctx, points); err != nil {
		c.log.WithError(err).Warn("vector index unavailable, storing text without vectors")
		return false
	}
	return true
}

// retractPoints deletes the given point ids, tolerating failure. Stale
// vectors are an accepted consistency gap when the index is down.
func (c *Catalog) retractPoints(ctx context.Context, ids []string, what string) {
	if len(ids) == 0 {
		return
	}
	if err := c.index.DeletePoints(ctx, ids); err != nil {
		c.log.WithError(err).WithPayload(map[string]interface{}{
			"points": len(ids),
			"owner":  what,
		}).Warn("failed to retract vector points, stale vectors may remain")
	}
}

func chunkIDs(chunks []*schema.Chunk) []string {
	ids := make([]string, len(chunks))
	for i, ch := range chunks {
		ids[i] = ch.ID
	}
	return ids
}

func validateProfileInput(input *models.CompanyProfileInput) []string {
	var fields []string
	if input == nil {
		return []string{"description", "goals", "targets"}
	}
	if strings.TrimSpace(input.Description) == "" {
		fields = append(fields, "description")
	}
	if len(input.Goals) == 0 {
		fields = append(fields, "goals")
	}
	if len(input.Targets) == 0 {
		fields = append(fields, "targets")
	}
	return fields
}

func profileFromInput(input *models.CompanyProfileInput) *models.CompanyProfile {
	return &models.CompanyProfile{
		Description: strings.TrimSpace(input.Description),
		Goals:       append([]string(nil), input.Goals...),
		Targets:     append([]string(nil), input.Targets...),
		Products:    append([]string(nil), input.Products...),
		Industry:    strings.TrimSpace(input.Industry),
		Values:      append([]string(nil), input.Values...),
	}
}

// FlattenProfile renders the profile as labeled prose sections in a
// fixed order so its chunks read naturally when retrieved as context.
func FlattenProfile(p *models.CompanyProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company Description: %s\n\n", p.Description)
	fmt.Fprintf(&b, "Goals: %s\n\n", strings.Join(p.Goals, ", "))
	fmt.Fprintf(&b, "Target Audience: %s\n\n", strings.Join(p.Targets, ", "))
	if len(p.Products) > 0 {
		fmt.Fprintf(&b, "Products and Services: %s\n\n", strings.Join(p.Products, ", "))
	}
	if p.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n\n", p.Industry)
	}
	if len(p.Values) > 0 {
		fmt.Fprintf(&b, "Company Values: %s\n\n", strings.Join(p.Values, ", "))
	}
	return strings.TrimSpace(b.String())
}

func validateURL(raw string) error {
	parsed, err := url.ParseRequestURI(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return &models.InvalidURLError{URL: raw}
	}
	return nil
}
