package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/trilhadev/course-viewer-backend/internal/api"
	"github.com/trilhadev/course-viewer-backend/internal/config"
	"github.com/trilhadev/course-viewer-backend/internal/drive"
	"github.com/trilhadev/course-viewer-backend/internal/models"
	"github.com/trilhadev/course-viewer-backend/internal/services"
	"github.com/trilhadev/course-viewer-backend/internal/storage"
	"github.com/trilhadev/course-viewer-backend/pkg/extract"
	"github.com/trilhadev/course-viewer-backend/pkg/session"
	"github.com/trilhadev/course-viewer-backend/pkg/util"
	"github.com/trilhadev/course-viewer-backend/pkg/view"
)

// main entry point - sets up everything and starts the server
func main() {
	// load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Failed to load .env file: %s\n", err)
		// not a big deal - Docker will set these anyway
	}

	cfg := config.Load()

	logger, err := buildLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("Could not build logger: %s\n", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if !util.EnsureDirectoryExists(cfg.DataDir) {
		sugar.Fatalw("could not create data directory", "path", cfg.DataDir)
	}

	ctx := context.Background()

	// drive client + extraction pipeline
	driveClient, err := drive.NewClient(ctx, cfg.CredentialsJSON, cfg.CredentialsFile)
	if err != nil {
		sugar.Fatalw("could not set up drive client", "error", err)
	}
	extractor := extract.NewExtractor(driveClient, sugar)

	// stores - the course store builds lazily on first read
	courseStore := storage.NewCourseStore(cfg.DataDir, func(ctx context.Context) ([]*models.Course, error) {
		return extractor.Extract(ctx, cfg.RootFolderID)
	}, sugar)
	userStore := storage.NewUserStore(cfg.DataDir, sugar)

	resolver := view.NewResolver(driveClient, sugar, view.DefaultTTL)
	cookies := session.NewCodec(cfg.SessionSecret)

	// service layer
	courseSvc := services.NewCourseService(courseStore, userStore, extractor, cfg.RootFolderID, sugar)
	userSvc := services.NewUserService(userStore, sugar)
	adminSvc := services.NewAdminService(courseSvc, userSvc, resolver, sugar)

	// optional periodic refresh, same job the rebuild endpoint runs
	if cfg.RefreshInterval > 0 {
		go refreshLoop(courseSvc, cfg.RefreshInterval, sugar)
	}

	// wire everything together
	server := api.NewServer(courseSvc, userSvc, adminSvc, resolver, cookies, sugar, cfg.Debug)
	defer server.Close()

	sugar.Infow("starting server", "addr", cfg.Addr)
	if err := server.Run(cfg.Addr); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}

// buildLogger picks the zap config for the mode we're in
func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// refreshLoop rebuilds the course tree on a schedule so the catalog
// tracks Drive without anyone pressing the update button
func refreshLoop(courses *services.CourseService, interval time.Duration, log *zap.SugaredLogger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if _, err := courses.Rebuild(context.Background()); err != nil {
			log.Warnw("scheduled rebuild failed", "error", err)
		}
	}
}
