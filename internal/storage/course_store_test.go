package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/trilhadev/course-viewer-backend/internal/models"
)

func sampleCourses() []*models.Course {
	return []*models.Course{
		{
			ID:    "c1",
			Title: "Formação Backend",
			Tags:  []string{"backend"},
			Type:  models.TypeTraining,
			Levels: []*models.Level{
				{
					ID: "l1", Title: "Nível 1", LevelIndex: 1,
					Modules: []*models.Module{
						{
							ID: "m1", Title: "Módulo 1", Sort: 1,
							SubModules: []*models.SubModule{
								{
									ID: "m1", Sort: 1, Title: "Aulas",
									Lessons: []*models.Lesson{
										{ID: "a1", Title: "aula1.mp4", Kind: models.LessonVideo, SourceFileID: "a1"},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func noBuild(t *testing.T) BuildFunc {
	return func(context.Context) ([]*models.Course, error) {
		t.Fatalf("build should not have been called")
		return nil, nil
	}
}

func TestCourseStore_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewCourseStore(dir, noBuild(t), zap.NewNop().Sugar())

	want := sampleCourses()
	if err := store.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestCourseStore_LazyFirstBuild(t *testing.T) {
	dir := t.TempDir()
	builds := 0
	store := NewCourseStore(dir, func(context.Context) ([]*models.Course, error) {
		builds++
		return sampleCourses(), nil
	}, zap.NewNop().Sugar())

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if builds != 1 {
		t.Fatalf("expected exactly one build, got %d", builds)
	}
	if len(got) != 1 || got[0].ID != "c1" {
		t.Fatalf("unexpected first-build result: %+v", got)
	}

	// second load reads the persisted snapshot, no rebuild
	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if builds != 1 {
		t.Fatalf("snapshot should have been persisted, build ran %d times", builds)
	}
}

func TestCourseStore_BuildFailureIsNotPersisted(t *testing.T) {
	dir := t.TempDir()
	store := NewCourseStore(dir, func(context.Context) ([]*models.Course, error) {
		return nil, errors.New("drive down")
	}, zap.NewNop().Sugar())

	if _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected build error to propagate")
	}
	if _, err := os.Stat(filepath.Join(dir, coursesFileName)); !os.IsNotExist(err) {
		t.Fatalf("a failed build must not leave a snapshot behind")
	}
}

func TestCourseStore_ResetForcesRebuild(t *testing.T) {
	dir := t.TempDir()
	builds := 0
	store := NewCourseStore(dir, func(context.Context) ([]*models.Course, error) {
		builds++
		return sampleCourses(), nil
	}, zap.NewNop().Sugar())

	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := store.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load after Reset failed: %v", err)
	}
	if builds != 2 {
		t.Fatalf("expected a rebuild after Reset, builds = %d", builds)
	}
}

func TestCourseStore_ResetWithoutSnapshot(t *testing.T) {
	store := NewCourseStore(t.TempDir(), noBuild(t), zap.NewNop().Sugar())
	if err := store.Reset(); err != nil {
		t.Fatalf("Reset on a missing snapshot should be a no-op, got %v", err)
	}
}

func TestCourseStore_CorruptSnapshotIsStorageError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, coursesFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("could not write corrupt snapshot: %v", err)
	}

	store := NewCourseStore(dir, noBuild(t), zap.NewNop().Sugar())
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected an error for a corrupt snapshot")
	}
}
