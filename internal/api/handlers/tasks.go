package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trilhadev/course-viewer-backend/pkg/task"
)

// TaskHandler lets clients poll background rebuild tasks
type TaskHandler struct {
	Tasks *task.Manager
}

// NewTaskHandler creates handler with the task registry
func NewTaskHandler(tasks *task.Manager) *TaskHandler {
	return &TaskHandler{Tasks: tasks}
}

// Get handles GET /api/tasks/:taskId
func (h *TaskHandler) Get(c *gin.Context) {
	t, ok := h.Tasks.Get(c.Param("taskId"))
	if !ok {
		RespondError(c, http.StatusNotFound, "task not found")
		return
	}
	RespondOK(c, "task retrieved", t)
}
