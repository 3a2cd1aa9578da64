package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trilhadev/course-viewer-backend/internal/services"
	"github.com/trilhadev/course-viewer-backend/pkg/task"
)

// RebuildStartResponse tells the client which task to poll
type RebuildStartResponse struct {
	TaskID string `json:"task_id"`
}

// CourseHandler processes catalog-related HTTP requests
type CourseHandler struct {
	Service *services.CourseService
	Tasks   *task.Manager
	log     *zap.SugaredLogger
}

// NewCourseHandler creates handler with injected dependencies
func NewCourseHandler(service *services.CourseService, tasks *task.Manager, log *zap.SugaredLogger) *CourseHandler {
	return &CourseHandler{Service: service, Tasks: tasks, log: log}
}

// List handles GET /api/courses - the whole catalog
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.Service.ListCourses(c.Request.Context())
	if err != nil {
		FailWith(c, err)
		return
	}
	RespondOK(c, "courses retrieved", courses)
}

// Get handles GET /api/courses/:courseId
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Service.GetCourse(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		FailWith(c, err)
		return
	}
	RespondOK(c, "course retrieved", course)
}

// LevelModules handles GET /api/courses/:courseId/levels/:levelId
func (h *CourseHandler) LevelModules(c *gin.Context) {
	modules, err := h.Service.GetLevelModules(c.Request.Context(),
		c.Param("courseId"), c.Param("levelId"))
	if err != nil {
		FailWith(c, err)
		return
	}
	RespondOK(c, "modules retrieved", modules)
}

// Module handles GET /api/courses/:courseId/levels/:levelId/modules/:moduleId
func (h *CourseHandler) Module(c *gin.Context) {
	module, err := h.Service.GetModule(c.Request.Context(),
		c.Param("courseId"), c.Param("levelId"), c.Param("moduleId"))
	if err != nil {
		FailWith(c, err)
		return
	}
	RespondOK(c, "module retrieved", module)
}

// Rebuild handles POST /api/courses/rebuild - kicks the rebuild off in the
// background and hands back a task id to poll
func (h *CourseHandler) Rebuild(c *gin.Context) {
	taskID := h.Tasks.Create(task.TypeRebuild)

	go func() {
		// the request context dies when the response is sent, and the
		// rebuild has to outlive it
		ctx := context.Background()

		h.Tasks.Start(taskID)
		h.Tasks.SetMessage(taskID, "walking remote course tree")

		courses, err := h.Service.Rebuild(ctx)
		if err != nil {
			h.log.Errorw("background rebuild failed", "task_id", taskID, "error", err)
			h.Tasks.Fail(taskID, err.Error())
			return
		}

		h.Tasks.Complete(taskID, gin.H{"courses": len(courses)})
	}()

	RespondOK(c, "rebuild started", RebuildStartResponse{TaskID: taskID})
}
