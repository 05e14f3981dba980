package api

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all the routes for the content service.
func RegisterRoutes(router *gin.Engine, api *API) {
	data := router.Group("/api/data")
	{
		data.POST("/upload", api.UploadCompanyHandler)
		data.GET("/company", api.GetCompanyHandler)
		data.PUT("/company", api.UpdateCompanyHandler)
		data.DELETE("/company", api.DeleteCompanyHandler)
		data.GET("/stats", api.StatsHandler)
		data.POST("/files", api.UploadFilesHandler)
		data.POST("/links", api.IngestLinksHandler)
		data.GET("/documents", api.ListDocumentsHandler)
		data.GET("/documents/:id", api.GetDocumentHandler)
		data.DELETE("/documents/:id", api.DeleteDocumentHandler)
	}

	content := router.Group("/api/content")
	{
		content.POST("/rag", api.RAGHandler)
		content.POST("/suggestions", api.SuggestionsHandler)
		content.POST("/analyze", api.AnalyzeHandler)
	}
}
