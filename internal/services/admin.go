package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/trilhadev/course-viewer-backend/internal/models"
	"github.com/trilhadev/course-viewer-backend/pkg/view"
)

// AdminService handles the few operator-facing operations
type AdminService struct {
	Courses  *CourseService
	Users    *UserService
	Resolver *view.Resolver
	log      *zap.SugaredLogger
}

// NewAdminService creates service with dependencies
func NewAdminService(courses *CourseService, users *UserService, resolver *view.Resolver, log *zap.SugaredLogger) *AdminService {
	return &AdminService{Courses: courses, Users: users, Resolver: resolver, log: log}
}

// ForceUpdate discards the snapshot and rebuilds synchronously
func (s *AdminService) ForceUpdate(ctx context.Context) ([]*models.Course, error) {
	s.log.Infow("forced course update requested")
	return s.Courses.ForceUpdate(ctx)
}

// Stats collects rough counters about what the system is holding
func (s *AdminService) Stats(ctx context.Context) (*models.CatalogStats, error) {
	courses, err := s.Courses.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.Users.Store.Load()
	if err != nil {
		return nil, err
	}

	stats := &models.CatalogStats{
		Courses:     len(courses),
		Users:       len(users),
		CachedViews: s.Resolver.CachedCount(),
	}
	for _, c := range courses {
		stats.Lessons += len(c.LessonIDs())
	}
	for _, u := range users {
		stats.WatchedTotal += len(u.WatchedLessons)
	}
	return stats, nil
}
