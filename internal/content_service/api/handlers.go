package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"contentforge/internal/content_service/catalog"
	"contentforge/internal/content_service/pipeline"
	"contentforge/internal/models"
	"contentforge/pkg/logger"
)

// maxUploadBytes bounds a single uploaded file.
const maxUploadBytes = 32 << 20

// API provides the HTTP handlers for the content service.
type API struct {
	catalog     *catalog.Catalog
	queries     *pipeline.QueryEngine
	suggestions *pipeline.SuggestionEngine
	logger      *logger.Logger
}

// NewAPI creates a new API handler.
func NewAPI(cat *catalog.Catalog, queries *pipeline.QueryEngine, suggestions *pipeline.SuggestionEngine, logger *logger.Logger) *API {
	return &API{
		catalog:     cat,
		queries:     queries,
		suggestions: suggestions,
		logger:      logger,
	}
}

// UploadCompanyHandler handles the upload of a new company profile,
// replacing any existing one.
func (a *API) UploadCompanyHandler(c *gin.Context) {
	var input models.CompanyProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		a.logger.WithError(err).Warn("Invalid request payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	profile, err := a.catalog.UploadProfile(c.Request.Context(), &input)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": profile})
}

// GetCompanyHandler returns the current company profile.
func (a *API) GetCompanyHandler(c *gin.Context) {
	profile, err := a.catalog.GetProfile()
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": profile})
}

// UpdateCompanyHandler replaces the content of the existing profile.
func (a *API) UpdateCompanyHandler(c *gin.Context) {
	var input models.CompanyProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		a.logger.WithError(err).Warn("Invalid request payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	profile, err := a.catalog.UpdateProfile(c.Request.Context(), &input)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": profile})
}

// DeleteCompanyHandler deletes the profile and returns the removed
// snapshot.
func (a *API) DeleteCompanyHandler(c *gin.Context) {
	profile, err := a.catalog.DeleteProfile(c.Request.Context())
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": profile})
}

// StatsHandler returns the catalog snapshot combined with a best-effort
// look at the vector collection. It never fails on an unreachable
// index.
func (a *API) StatsHandler(c *gin.Context) {
	stats := a.catalog.Stats(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// UploadFilesHandler ingests a multipart batch of files under the
// "files" form field. Per-file failures are reported in the result, not
// as an HTTP error.
func (a *API) UploadFilesHandler(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		a.logger.WithError(err).Warn("Invalid multipart request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart request"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}

	uploads := make([]*models.FileUpload, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxUploadBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large", "details": fh.Filename})
			return
		}
		f, err := fh.Open()
		if err != nil {
			a.respondError(c, err)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			a.respondError(c, err)
			return
		}
		uploads = append(uploads, &models.FileUpload{Name: fh.Filename, Data: data})
	}

	result, err := a.catalog.IngestFiles(c.Request.Context(), uploads)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// IngestLinksHandler ingests a batch of URLs.
func (a *API) IngestLinksHandler(c *gin.Context) {
	var payload struct {
		URLs []string `json:"urls"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || len(payload.URLs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No urls provided"})
		return
	}

	result, err := a.catalog.IngestURLs(c.Request.Context(), payload.URLs)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// ListDocumentsHandler returns all catalogued documents.
func (a *API) ListDocumentsHandler(c *gin.Context) {
	docs := a.catalog.ListDocuments()
	c.JSON(http.StatusOK, gin.H{"success": true, "data": docs})
}

// GetDocumentHandler returns a single document by id, file name or
// URL.
func (a *API) GetDocumentHandler(c *gin.Context) {
	doc, err := a.catalog.GetDocument(c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": doc})
}

// DeleteDocumentHandler removes a document by id, file name or URL.
func (a *API) DeleteDocumentHandler(c *gin.Context) {
	doc, err := a.catalog.DeleteDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": doc})
}

// RAGHandler answers a free-text query with retrieval-augmented
// generation.
func (a *API) RAGHandler(c *gin.Context) {
	var payload struct {
		Query          string  `json:"query"`
		TopK           int     `json:"topK"`
		ScoreThreshold float32 `json:"scoreThreshold"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	result, err := a.queries.Query(c.Request.Context(), payload.Query, payload.TopK, payload.ScoreThreshold)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// SuggestionsHandler generates content suggestions from the stored
// company profile.
func (a *API) SuggestionsHandler(c *gin.Context) {
	var payload struct {
		ContentType string `json:"contentType"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	result, err := a.suggestions.Suggest(c.Request.Context(), payload.ContentType)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// AnalyzeHandler produces a structured analysis of the stored company
// profile.
func (a *API) AnalyzeHandler(c *gin.Context) {
	result, err := a.suggestions.Analyze(c.Request.Context())
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// respondError maps the error taxonomy onto HTTP statuses: validation
// to 400, missing resources to 404, everything else to 500.
func (a *API) respondError(c *gin.Context, err error) {
	var validation *models.ValidationError
	var notFound *models.NotFoundError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": validation.Fields})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	default:
		a.logger.WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
	}
}
