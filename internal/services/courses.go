package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/trilhadev/course-viewer-backend/internal/apperr"
	"github.com/trilhadev/course-viewer-backend/internal/models"
	"github.com/trilhadev/course-viewer-backend/internal/storage"
	"github.com/trilhadev/course-viewer-backend/pkg/extract"
)

// CourseService handles all catalog business logic: reads off the stored
// snapshot, rebuilds from the remote store, and computed progress.
type CourseService struct {
	Store        *storage.CourseStore
	Users        *storage.UserStore
	Extractor    *extract.Extractor
	RootFolderID string

	log *zap.SugaredLogger

	// at most one remote traversal in flight - a second rebuild trigger
	// waits for the current one instead of walking Drive concurrently
	rebuildMu sync.Mutex
}

// NewCourseService creates service with dependencies
func NewCourseService(store *storage.CourseStore, users *storage.UserStore, extractor *extract.Extractor, rootFolderID string, log *zap.SugaredLogger) *CourseService {
	return &CourseService{
		Store:        store,
		Users:        users,
		Extractor:    extractor,
		RootFolderID: rootFolderID,
		log:          log,
	}
}

// ListCourses returns the whole catalog, building it on first access
func (s *CourseService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return s.Store.Load(ctx)
}

// GetCourse returns one course by id
func (s *CourseService) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	courses, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range courses {
		if c.ID == courseID {
			return c, nil
		}
	}
	return nil, apperr.NotFound("course", courseID)
}

// GetLevelModules returns the modules of one level within a course
func (s *CourseService) GetLevelModules(ctx context.Context, courseID, levelID string) ([]*models.Module, error) {
	course, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	level := course.FindLevel(levelID)
	if level == nil {
		return nil, apperr.NotFound("level", levelID)
	}
	return level.Modules, nil
}

// GetModule returns one module by its course/level/module id path
func (s *CourseService) GetModule(ctx context.Context, courseID, levelID, moduleID string) (*models.Module, error) {
	course, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	level := course.FindLevel(levelID)
	if level == nil {
		return nil, apperr.NotFound("level", levelID)
	}

	module := level.FindModule(moduleID)
	if module == nil {
		return nil, apperr.NotFound("module", moduleID)
	}
	return module, nil
}

// Rebuild walks the remote store and replaces the snapshot with the result.
// Nothing is persisted when the walk fails partway.
func (s *CourseService) Rebuild(ctx context.Context) ([]*models.Course, error) {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	s.log.Infow("rebuilding course tree", "root", s.RootFolderID)
	courses, err := s.Extractor.Extract(ctx, s.RootFolderID)
	if err != nil {
		return nil, err
	}

	if err := s.Store.Save(courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// ForceUpdate throws the snapshot away and rebuilds from scratch
func (s *CourseService) ForceUpdate(ctx context.Context) ([]*models.Course, error) {
	if err := s.Store.Reset(); err != nil {
		return nil, err
	}
	return s.Rebuild(ctx)
}

// CourseProgress computes how much of a course the user has completed.
// Only watched records matching lessons in the current tree count, so
// progress stays sane after a rebuild shuffles lesson ids.
func (s *CourseService) CourseProgress(ctx context.Context, userID, courseID string) (*models.CourseProgress, error) {
	course, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	user, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	lessonIDs := course.LessonIDs()
	completed := 0
	for _, id := range lessonIDs {
		if user.HasWatched(courseID, id) {
			completed++
		}
	}

	progress := &models.CourseProgress{
		CourseID:       courseID,
		UserID:         userID,
		CompletedItems: completed,
		TotalItems:     len(lessonIDs),
	}
	if progress.TotalItems > 0 {
		progress.CompletionPct = float32(completed) / float32(progress.TotalItems) * 100
		progress.IsCompleted = completed == progress.TotalItems
	}
	return progress, nil
}
