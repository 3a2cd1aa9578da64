package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/trilhadev/course-viewer-backend/internal/services"
)

// AdminHandler processes operator requests
type AdminHandler struct {
	Service *services.AdminService
}

// NewAdminHandler creates handler with injected service
func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{Service: service}
}

// ForceUpdate handles POST /api/admin/force-update - drops the snapshot
// and rebuilds synchronously, returning the fresh catalog
func (h *AdminHandler) ForceUpdate(c *gin.Context) {
	courses, err := h.Service.ForceUpdate(c.Request.Context())
	if err != nil {
		FailWith(c, err)
		return
	}
	RespondOK(c, "course structure updated", courses)
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.Service.Stats(c.Request.Context())
	if err != nil {
		FailWith(c, err)
		return
	}
	RespondOK(c, "stats computed", stats)
}
