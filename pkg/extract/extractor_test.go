package extract

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/trilhadev/course-viewer-backend/internal/apperr"
	"github.com/trilhadev/course-viewer-backend/internal/drive"
	"github.com/trilhadev/course-viewer-backend/internal/models"
)

// fakeDrive serves a canned folder hierarchy from memory
type fakeDrive struct {
	children map[string][]drive.File // folder id -> children, in listing order
	texts    map[string]string       // file id -> content
	failOn   string                  // folder id whose listing fails
	listed   []string                // every folder id listed, in call order
}

func (f *fakeDrive) ListChildren(_ context.Context, folderID string) ([]drive.File, error) {
	if folderID == f.failOn {
		return nil, &apperr.UpstreamError{Op: "list folder " + folderID, Err: errors.New("boom")}
	}
	f.listed = append(f.listed, folderID)
	return f.children[folderID], nil
}

func (f *fakeDrive) GetFile(_ context.Context, fileID string) (drive.File, error) {
	return drive.File{ID: fileID}, nil
}

func (f *fakeDrive) DownloadText(_ context.Context, fileID string) (string, error) {
	text, ok := f.texts[fileID]
	if !ok {
		return "", &apperr.UpstreamError{Op: "download file " + fileID, Err: errors.New("no content")}
	}
	return text, nil
}

func (f *fakeDrive) AccessToken(context.Context) (string, error) {
	return "token", nil
}

func folder(id, name string) drive.File {
	return drive.File{ID: id, Name: name, MimeType: drive.MimeFolder}
}

func file(id, name, mime string) drive.File {
	return drive.File{ID: id, Name: name, MimeType: mime}
}

func newTestExtractor(fd *fakeDrive) *Extractor {
	return NewExtractor(fd, zap.NewNop().Sugar())
}

func TestExtract_TrainingHierarchy(t *testing.T) {
	fd := &fakeDrive{children: map[string][]drive.File{
		"root": {folder("course1", "Formação Backend")},
		"course1": {folder("level1", "Nível 1")},
		"level1": {folder("module1", "Módulo 1")},
		"module1": {file("f1", "aula1.mp4", "video/mp4"), file("f2", "aula1.pdf", "application/pdf")},
	}}

	courses, err := newTestExtractor(fd).Extract(context.Background(), "root")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("expected 1 course, got %d", len(courses))
	}

	course := courses[0]
	if course.Type != models.TypeTraining {
		t.Fatalf("expected training, got %q", course.Type)
	}
	if course.ID != "course1" || course.Title != "Formação Backend" {
		t.Fatalf("unexpected course identity: %+v", course)
	}

	if len(course.Levels) != 1 {
		t.Fatalf("expected 1 level, got %d", len(course.Levels))
	}
	level := course.Levels[0]
	if level.ID != "level1" || level.LevelIndex != 1 {
		t.Fatalf("unexpected level: %+v", level)
	}

	if len(level.Modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(level.Modules))
	}
	module := level.Modules[0]
	if module.ID != "module1" || module.Sort != 1 {
		t.Fatalf("unexpected module: %+v", module)
	}

	// files directly in the module land in one default submodule
	if len(module.SubModules) != 1 {
		t.Fatalf("expected 1 submodule, got %d", len(module.SubModules))
	}
	sub := module.SubModules[0]
	if sub.Title != "Aulas" || sub.ID != "module1" || sub.Sort != 1 {
		t.Fatalf("unexpected default submodule: %+v", sub)
	}

	if len(sub.Lessons) != 2 {
		t.Fatalf("expected 2 lessons, got %d", len(sub.Lessons))
	}
	if sub.Lessons[0].Kind != models.LessonVideo || sub.Lessons[0].ID != "f1" {
		t.Fatalf("first lesson should be the video in listing order: %+v", sub.Lessons[0])
	}
	if sub.Lessons[1].Kind != models.LessonDocs || sub.Lessons[1].ID != "f2" {
		t.Fatalf("second lesson should be the pdf: %+v", sub.Lessons[1])
	}
}

func TestExtract_FlatCourseGetsSyntheticLevel(t *testing.T) {
	fd := &fakeDrive{children: map[string][]drive.File{
		"root": {folder("c1", "Curso de Git")},
		"c1": {folder("m1", "Introdução"), folder("m2", "Branches")},
		"m1": {file("a1", "video.mp4", "video/mp4")},
		"m2": {file("a2", "guia.pdf", "application/pdf")},
	}}

	courses, err := newTestExtractor(fd).Extract(context.Background(), "root")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	course := courses[0]
	if course.Type != models.TypeCourse {
		t.Fatalf("expected plain course, got %q", course.Type)
	}
	if len(course.Levels) != 1 {
		t.Fatalf("flat course must have exactly one level, got %d", len(course.Levels))
	}

	level := course.Levels[0]
	if level.ID != "c1" {
		t.Fatalf("synthetic level should reuse the course id, got %q", level.ID)
	}
	if level.Title != "Conteúdo do Curso" || level.LevelIndex != 1 {
		t.Fatalf("unexpected synthetic level: %+v", level)
	}
	if len(level.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(level.Modules))
	}
	if level.Modules[0].Sort != 1 || level.Modules[1].Sort != 2 {
		t.Fatalf("module sorts must be dense 1-based: %d, %d",
			level.Modules[0].Sort, level.Modules[1].Sort)
	}
}

func TestExtract_RealSubModules(t *testing.T) {
	fd := &fakeDrive{children: map[string][]drive.File{
		"root": {folder("c1", "Curso")},
		"c1":   {folder("m1", "Módulo 1")},
		"m1":   {folder("s1", "Parte A"), folder("s2", "Parte B")},
		"s1":   {file("a1", "um.mp4", "video/mp4"), folder("deep", "ignored")},
		"s2":   {file("a2", "dois.mp4", "video/mp4")},
	}}

	courses, err := newTestExtractor(fd).Extract(context.Background(), "root")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	module := courses[0].Levels[0].Modules[0]
	if len(module.SubModules) != 2 {
		t.Fatalf("expected 2 submodules, got %d", len(module.SubModules))
	}
	if module.SubModules[0].ID != "s1" || module.SubModules[0].Sort != 1 {
		t.Fatalf("unexpected first submodule: %+v", module.SubModules[0])
	}
	if module.SubModules[1].ID != "s2" || module.SubModules[1].Sort != 2 {
		t.Fatalf("unexpected second submodule: %+v", module.SubModules[1])
	}

	// the folder nested inside a submodule is not a lesson
	if len(module.SubModules[0].Lessons) != 1 {
		t.Fatalf("expected 1 lesson in Parte A, got %d", len(module.SubModules[0].Lessons))
	}
}

func TestExtract_ModuleMetadata(t *testing.T) {
	fd := &fakeDrive{
		children: map[string][]drive.File{
			"root": {folder("c1", "Curso")},
			"c1":   {folder("m1", "Módulo 1")},
			"m1": {
				file("meta", "metadata.md", "text/markdown"),
				file("a1", "aula.mp4", "video/mp4"),
			},
		},
		texts: map[string]string{
			"meta": "@descrição Módulo inicial @link desafio: https://example.com/d1",
		},
	}

	courses, err := newTestExtractor(fd).Extract(context.Background(), "root")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	module := courses[0].Levels[0].Modules[0]
	if module.Metadata == nil {
		t.Fatalf("expected metadata on module")
	}
	if module.Metadata.Description != "Módulo inicial" {
		t.Fatalf("unexpected description: %q", module.Metadata.Description)
	}
	if module.Metadata.ChallengeURL != "https://example.com/d1" {
		t.Fatalf("unexpected challenge url: %q", module.Metadata.ChallengeURL)
	}

	// the metadata file must not show up as a lesson
	lessons := module.SubModules[0].Lessons
	if len(lessons) != 1 || lessons[0].ID != "a1" {
		t.Fatalf("metadata file leaked into lessons: %+v", lessons)
	}
}

func TestExtract_UnreadableMetadataIsNotAnError(t *testing.T) {
	fd := &fakeDrive{children: map[string][]drive.File{
		"root": {folder("c1", "Curso")},
		"c1":   {folder("m1", "Módulo 1")},
		"m1":   {file("meta", "metadata.md", "text/markdown"), file("a1", "aula.mp4", "video/mp4")},
	}} // no texts: the download fails

	courses, err := newTestExtractor(fd).Extract(context.Background(), "root")
	if err != nil {
		t.Fatalf("a broken metadata file must not abort the build: %v", err)
	}
	if courses[0].Levels[0].Modules[0].Metadata != nil {
		t.Fatalf("expected no metadata when the file is unreadable")
	}
}

func TestExtract_Tags(t *testing.T) {
	fd := &fakeDrive{children: map[string][]drive.File{
		"root": {folder("c1", "[go] [backend] Formação Backend")},
		"c1":   {},
	}}

	courses, err := newTestExtractor(fd).Extract(context.Background(), "root")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	tags := courses[0].Tags
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "backend" {
		t.Fatalf("unexpected tags: %v", tags)
	}
}

func TestExtract_MissingRootFolderID(t *testing.T) {
	_, err := newTestExtractor(&fakeDrive{}).Extract(context.Background(), "")

	var configErr *apperr.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestExtract_ListingFailureAbortsBuild(t *testing.T) {
	fd := &fakeDrive{
		children: map[string][]drive.File{
			"root": {folder("c1", "Curso A"), folder("c2", "Curso B")},
			"c1":   {folder("m1", "Módulo 1")},
			"c2":   {},
		},
		failOn: "m1",
	}

	_, err := newTestExtractor(fd).Extract(context.Background(), "root")

	var upstreamErr *apperr.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestExtract_LooseRootFilesIgnored(t *testing.T) {
	fd := &fakeDrive{children: map[string][]drive.File{
		"root": {file("readme", "README.md", "text/markdown"), folder("c1", "Curso")},
		"c1":   {},
	}}

	courses, err := newTestExtractor(fd).Extract(context.Background(), "root")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(courses) != 1 || courses[0].ID != "c1" {
		t.Fatalf("loose root files must not become courses: %+v", courses)
	}
}
