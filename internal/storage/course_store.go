package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/trilhadev/course-viewer-backend/internal/apperr"
	"github.com/trilhadev/course-viewer-backend/internal/models"
)

const coursesFileName = "courses.json"

// BuildFunc produces a fresh course tree. The store calls it lazily the
// first time Load finds no snapshot on disk.
type BuildFunc func(ctx context.Context) ([]*models.Course, error)

// CourseStore persists the full course tree as a single JSON snapshot.
// Writers always replace the whole file (temp file + rename) so a reader
// never sees a half-written tree.
type CourseStore struct {
	path  string
	build BuildFunc
	log   *zap.SugaredLogger

	mu sync.Mutex // serializes writes and the lazy first build
}

// NewCourseStore creates a store writing under dataDir
func NewCourseStore(dataDir string, build BuildFunc, log *zap.SugaredLogger) *CourseStore {
	return &CourseStore{
		path:  filepath.Join(dataDir, coursesFileName),
		build: build,
		log:   log,
	}
}

// Load reads the current snapshot. A missing snapshot is not an error - it
// triggers the first build, persists it, and returns the result.
func (s *CourseStore) Load(ctx context.Context) ([]*models.Course, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.buildAndSave(ctx)
		}
		return nil, &apperr.StorageError{Path: s.path, Err: err}
	}

	var courses []*models.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, &apperr.StorageError{Path: s.path, Err: fmt.Errorf("decoding snapshot: %w", err)}
	}
	return courses, nil
}

// Save atomically replaces the snapshot with the given tree
func (s *CourseStore) Save(courses []*models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(courses)
}

// Reset deletes the snapshot so the next Load rebuilds from scratch.
// A snapshot that was never written is fine.
func (s *CourseStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return &apperr.StorageError{Path: s.path, Err: err}
	}
	return nil
}

// buildAndSave runs the first build under the lock, so two concurrent
// first loads don't both walk the remote tree
func (s *CourseStore) buildAndSave(ctx context.Context) ([]*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// someone else may have finished the build while we waited
	if data, err := os.ReadFile(s.path); err == nil {
		var courses []*models.Course
		if err := json.Unmarshal(data, &courses); err == nil {
			return courses, nil
		}
	}

	s.log.Infow("no course snapshot found, building from remote store")
	courses, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.write(courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// write does the temp-file-then-rename dance. Caller holds the lock.
func (s *CourseStore) write(courses []*models.Course) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &apperr.StorageError{Path: s.path, Err: err}
	}

	data, err := json.MarshalIndent(courses, "", "  ")
	if err != nil {
		return &apperr.StorageError{Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), coursesFileName+".tmp-*")
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

	s.log.Debugw("course snapshot written", "path", s.path, "courses", len(courses))
	return nil
}
