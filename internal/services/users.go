package services

import (
	"go.uber.org/zap"

	"github.com/trilhadev/course-viewer-backend/internal/models"
	"github.com/trilhadev/course-viewer-backend/internal/storage"
)

// UserService handles login and watched-lesson tracking
type UserService struct {
	Store *storage.UserStore
	log   *zap.SugaredLogger
}

// NewUserService creates service with dependencies
func NewUserService(store *storage.UserStore, log *zap.SugaredLogger) *UserService {
	return &UserService{Store: store, log: log}
}

// Authenticate resolves a login email to a user. There is no password -
// access to the app is gated by knowing an email on the list.
func (s *UserService) Authenticate(email string) (*models.User, error) {
	user, err := s.Store.FindByEmail(email)
	if err != nil {
		return nil, err
	}

	s.log.Infow("user authenticated", "user_id", user.ID)
	return user, nil
}

// GetUser returns one user by id
func (s *UserService) GetUser(userID string) (*models.User, error) {
	return s.Store.FindByID(userID)
}

// ListWatched returns all watched pairs for a user
func (s *UserService) ListWatched(userID string) ([]models.WatchedLesson, error) {
	return s.Store.ListWatched(userID)
}

// SetWatched toggles one lesson's watched state. Both directions are
// idempotent, so the frontend can fire-and-forget repeated toggles.
func (s *UserService) SetWatched(userID, courseID, lessonID string, watched bool) error {
	if watched {
		return s.Store.MarkWatched(userID, courseID, lessonID)
	}
	return s.Store.MarkUnwatched(userID, courseID, lessonID)
}
