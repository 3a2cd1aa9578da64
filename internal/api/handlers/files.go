package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/trilhadev/course-viewer-backend/pkg/view"
)

// FileHandler resolves lesson files into embeddable views
type FileHandler struct {
	Resolver *view.Resolver
}

// NewFileHandler creates handler with injected resolver
func NewFileHandler(resolver *view.Resolver) *FileHandler {
	return &FileHandler{Resolver: resolver}
}

// Resolve handles GET /api/files/:fileId - returns {url, kind, content_type}
func (h *FileHandler) Resolve(c *gin.Context) {
	fileView, err := h.Resolver.Resolve(c.Request.Context(), c.Param("fileId"))
	if err != nil {
		FailWith(c, err)
		return
	}
	RespondOK(c, "file resolved", fileView)
}
