package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trilhadev/course-viewer-backend/internal/api/handlers"
	"github.com/trilhadev/course-viewer-backend/internal/services"
	"github.com/trilhadev/course-viewer-backend/pkg/session"
	"github.com/trilhadev/course-viewer-backend/pkg/task"
	"github.com/trilhadev/course-viewer-backend/pkg/view"
)

// Server holds all the app components together
type Server struct {
	Engine *gin.Engine

	// handlers for different parts of the API
	AuthHandler     *handlers.AuthHandler
	CourseHandler   *handlers.CourseHandler
	FileHandler     *handlers.FileHandler
	ProgressHandler *handlers.ProgressHandler
	TaskHandler     *handlers.TaskHandler
	AdminHandler    *handlers.AdminHandler

	cookies *session.Codec
	stop    chan struct{}
}

// NewServer wires up all the dependencies and returns a ready-to-use server
func NewServer(
	courseSvc *services.CourseService,
	userSvc *services.UserService,
	adminSvc *services.AdminService,
	resolver *view.Resolver,
	cookies *session.Codec,
	log *zap.SugaredLogger,
	debug bool,
) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	tasks := task.NewManager()
	stop := make(chan struct{})
	// clean finished tasks out every hour so the registry doesn't grow forever
	go tasks.CleanupRoutine(1*time.Hour, 24*time.Hour, stop)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(log))
	engine.Use(CORSMiddleware())

	server := &Server{
		Engine:          engine,
		AuthHandler:     handlers.NewAuthHandler(userSvc, cookies),
		CourseHandler:   handlers.NewCourseHandler(courseSvc, tasks, log),
		FileHandler:     handlers.NewFileHandler(resolver),
		ProgressHandler: handlers.NewProgressHandler(userSvc, courseSvc),
		TaskHandler:     handlers.NewTaskHandler(tasks),
		AdminHandler:    handlers.NewAdminHandler(adminSvc),
		cookies:         cookies,
		stop:            stop,
	}

	server.setupRoutes()
	return server
}

// setupRoutes maps all the endpoints to handler functions
func (s *Server) setupRoutes() {
	// auth doesn't need a session, everything else does
	s.Engine.POST("/api/auth/login", s.AuthHandler.Login)
	s.Engine.POST("/api/auth/logout", s.AuthHandler.Logout)
	s.Engine.GET("/api/auth/me", s.AuthHandler.Me)

	authed := s.Engine.Group("/api", RequireSession(s.cookies))

	// catalog reads
	authed.GET("/courses", s.CourseHandler.List)
	authed.GET("/courses/:courseId", s.CourseHandler.Get)
	authed.GET("/courses/:courseId/levels/:levelId", s.CourseHandler.LevelModules)
	authed.GET("/courses/:courseId/levels/:levelId/modules/:moduleId", s.CourseHandler.Module)

	// lesson file resolution
	authed.GET("/files/:fileId", s.FileHandler.Resolve)

	// progress tracking
	authed.GET("/progress", s.ProgressHandler.List)
	authed.POST("/progress", s.ProgressHandler.Set)
	authed.GET("/progress/courses/:courseId", s.ProgressHandler.CourseSummary)

	// rebuild + task polling
	authed.POST("/courses/rebuild", s.CourseHandler.Rebuild)
	authed.GET("/tasks/:taskId", s.TaskHandler.Get)

	// admin endpoints
	authed.POST("/admin/force-update", s.AdminHandler.ForceUpdate)
	authed.GET("/admin/stats", s.AdminHandler.Stats)
}

// Run starts serving on addr, blocking until the listener dies
func (s *Server) Run(addr string) error {
	return s.Engine.Run(addr)
}

// Close stops the background task cleanup
func (s *Server) Close() {
	close(s.stop)
}
