package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trilhadev/course-viewer-backend/internal/services"
	"github.com/trilhadev/course-viewer-backend/pkg/session"
)

// sessionUserID reads the user id the auth middleware stashed on the context
func sessionUserID(c *gin.Context) string {
	return c.GetString(session.ContextUserKey)
}

// SetWatchedRequest toggles one lesson's watched state
type SetWatchedRequest struct {
	CourseID string `json:"course_id" binding:"required"`
	LessonID string `json:"lesson_id" binding:"required"`
	Watched  *bool  `json:"watched" binding:"required"`
}

// ProgressHandler processes watched-lesson requests for the session user
type ProgressHandler struct {
	Users   *services.UserService
	Courses *services.CourseService
}

// NewProgressHandler creates handler with injected services
func NewProgressHandler(users *services.UserService, courses *services.CourseService) *ProgressHandler {
	return &ProgressHandler{Users: users, Courses: courses}
}

// List handles GET /api/progress - the session user's watched pairs
func (h *ProgressHandler) List(c *gin.Context) {
	watched, err := h.Users.ListWatched(sessionUserID(c))
	if err != nil {
		FailWith(c, err)
		return
	}
	RespondOK(c, "progress retrieved", gin.H{"watched_lessons": watched})
}

// Set handles POST /api/progress - marks or unmarks one lesson
func (h *ProgressHandler) Set(c *gin.Context) {
	var req SetWatchedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "course_id, lesson_id and watched are required")
		return
	}

	err := h.Users.SetWatched(sessionUserID(c), req.CourseID, req.LessonID, *req.Watched)
	if err != nil {
		FailWith(c, err)
		return
	}
	RespondOK(c, "progress updated", nil)
}

// CourseSummary handles GET /api/progress/courses/:courseId - computed
// completion state of one course for the session user
func (h *ProgressHandler) CourseSummary(c *gin.Context) {
	progress, err := h.Courses.CourseProgress(c.Request.Context(),
		sessionUserID(c), c.Param("courseId"))
	if err != nil {
		FailWith(c, err)
		return
	}
	RespondOK(c, "progress computed", progress)
}
