package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/trilhadev/course-viewer-backend/internal/apperr"
	"github.com/trilhadev/course-viewer-backend/internal/models"
)

const usersFileName = "users.json"

// seedUsers is the static user list written on first access. There is no
// signup flow - accounts are provisioned by editing users.json.
func seedUsers() []*models.User {
	return []*models.User{
		{ID: "1", Email: "ana@example.com", Name: "Ana", WatchedLessons: []models.WatchedLesson{}},
		{ID: "2", Email: "bruno@example.com", Name: "Bruno", WatchedLessons: []models.WatchedLesson{}},
	}
}

// UserStore persists the full user list (watched lessons included) as one
// JSON file. Every mutation is a read-modify-write of the whole list,
// last-writer-wins. The mutex serializes writers within this process; the
// human-paced write rate makes anything stronger not worth it.
type UserStore struct {
	path string
	log  *zap.SugaredLogger

	mu sync.Mutex
}

// NewUserStore creates a store writing under dataDir
func NewUserStore(dataDir string, log *zap.SugaredLogger) *UserStore {
	return &UserStore{
		path: filepath.Join(dataDir, usersFileName),
		log:  log,
	}
}

// Load reads all users, seeding the file on first access
func (s *UserStore) Load() ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// FindByID returns one user or apperr.ErrNotFound
func (s *UserStore) FindByID(userID string) (*models.User, error) {
	users, err := s.Load()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user", userID)
}

// FindByEmail resolves a login email to a user, ignoring case
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	users, err := s.Load()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.EmailMatches(email) {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user", email)
}

// MarkWatched records a lesson as watched. Idempotent - marking an
// already-watched pair changes nothing and reports no error.
func (s *UserStore) MarkWatched(userID, courseID, lessonID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}

	user := findUser(users, userID)
	if user == nil {
		return apperr.NotFound("user", userID)
	}

	if user.HasWatched(courseID, lessonID) {
		return nil
	}

	user.WatchedLessons = append(user.WatchedLessons, models.WatchedLesson{
		CourseID: courseID,
		LessonID: lessonID,
	})
	return s.save(users)
}

// MarkUnwatched removes a lesson from the watched set. Unmarking a pair
// that was never watched is a no-op.
func (s *UserStore) MarkUnwatched(userID, courseID, lessonID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}

	user := findUser(users, userID)
	if user == nil {
		return apperr.NotFound("user", userID)
	}

	kept := user.WatchedLessons[:0]
	for _, wl := range user.WatchedLessons {
		if wl.CourseID == courseID && wl.LessonID == lessonID {
			continue
		}
		kept = append(kept, wl)
	}
	if len(kept) == len(user.WatchedLessons) {
		return nil
	}

	user.WatchedLessons = kept
	return s.save(users)
}

// IsWatched reports whether the user has the pair in their watched set
func (s *UserStore) IsWatched(userID, courseID, lessonID string) (bool, error) {
	user, err := s.FindByID(userID)
	if err != nil {
		return false, err
	}
	return user.HasWatched(courseID, lessonID), nil
}

// ListWatched returns all watched pairs for a user
func (s *UserStore) ListWatched(userID string) ([]models.WatchedLesson, error) {
	user, err := s.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return user.WatchedLessons, nil
}

// load reads the file, seeding it if it doesn't exist yet. Caller holds the lock.
func (s *UserStore) load() ([]*models.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			users := seedUsers()
			s.log.Infow("no user file found, seeding", "users", len(users))
			if err := s.save(users); err != nil {
				return nil, err
			}
			return users, nil
		}
		return nil, &apperr.StorageError{Path: s.path, Err: err}
	}

	var users []*models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, &apperr.StorageError{Path: s.path, Err: fmt.Errorf("decoding users: %w", err)}
	}
	return users, nil
}

// save replaces the whole user file atomically. Caller holds the lock.
func (s *UserStore) save(users []*models.User) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &apperr.StorageError{Path: s.path, Err: err}
	}

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return &apperr.StorageError{Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), usersFileName+".tmp-*")
	if err != nil {
		return &apperr.StorageError{Path: s.path, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &apperr.StorageError{Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &apperr.StorageError{Path: s.path, Err: err}
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return &apperr.StorageError{Path: s.path, Err: err}
	}
	return nil
}

func findUser(users []*models.User, userID string) *models.User {
	for _, u := range users {
		if u.ID == userID {
			return u
		}
	}
	return nil
}
