package extract

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/trilhadev/course-viewer-backend/internal/apperr"
	"github.com/trilhadev/course-viewer-backend/internal/drive"
	"github.com/trilhadev/course-viewer-backend/internal/models"
)

// course names containing this token are multi-level trainings
const trainingIndicator = "formação"

// titles for the containers we synthesize when the remote hierarchy is flat
const (
	defaultSubModuleTitle = "Aulas"
	defaultLevelTitle     = "Conteúdo do Curso"
)

// Extractor walks the remote folder hierarchy and builds the normalized
// course tree. The walk is sequential on purpose - sort and level numbers
// come from listing order, so there is nothing to fan out.
type Extractor struct {
	client drive.Client
	log    *zap.SugaredLogger
}

// NewExtractor creates an extractor with its collaborators
func NewExtractor(client drive.Client, log *zap.SugaredLogger) *Extractor {
	return &Extractor{client: client, log: log}
}

// Extract builds the full course tree from the root folder. Any listing
// failure aborts the whole build - partial trees are never returned, the
// caller retries the build as a unit.
func (e *Extractor) Extract(ctx context.Context, rootFolderID string) ([]*models.Course, error) {
	if rootFolderID == "" {
		return nil, &apperr.ConfigError{Key: "GOOGLE_FOLDER_ID"}
	}

	children, err := e.client.ListChildren(ctx, rootFolderID)
	if err != nil {
		return nil, err
	}

	courses := []*models.Course{}
	for _, child := range children {
		if !child.IsFolder() {
			continue // loose files at the root are not courses
		}

		course, err := e.extractCourse(ctx, child)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	e.log.Infow("course extraction completed", "courses", len(courses))
	return courses, nil
}

// extractCourse turns one root-level folder into a course
func (e *Extractor) extractCourse(ctx context.Context, folder drive.File) (*models.Course, error) {
	course := &models.Course{
		ID:          folder.ID,
		Title:       folder.Name,
		Tags:        extractTags(folder.Name),
		Description: fmt.Sprintf("Descrição para %s", folder.Name),
		Type:        classifyCourseType(folder.Name),
		Levels:      []*models.Level{},
	}

	children, err := e.client.ListChildren(ctx, folder.ID)
	if err != nil {
		return nil, err
	}

	if course.Type == models.TypeTraining {
		// each folder child is a level of the training
		for _, child := range children {
			if !child.IsFolder() {
				continue
			}
			level, err := e.extractLevel(ctx, child, len(course.Levels)+1)
			if err != nil {
				return nil, err
			}
			course.Levels = append(course.Levels, level)
		}
	} else {
		// flat course: one synthetic level wraps the folder's modules directly
		level := &models.Level{
			ID:         course.ID,
			Title:      defaultLevelTitle,
			LevelIndex: 1,
			Modules:    []*models.Module{},
		}
		if err := e.fillModules(ctx, level, children); err != nil {
			return nil, err
		}
		course.Levels = append(course.Levels, level)
	}

	e.log.Debugw("extracted course",
		"title", course.Title, "type", course.Type, "levels", len(course.Levels))
	return course, nil
}

// extractLevel turns a folder inside a training into a level
func (e *Extractor) extractLevel(ctx context.Context, folder drive.File, index int) (*models.Level, error) {
	level := &models.Level{
		ID:         folder.ID,
		Title:      folder.Name,
		LevelIndex: index,
		Modules:    []*models.Module{},
	}

	children, err := e.client.ListChildren(ctx, folder.ID)
	if err != nil {
		return nil, err
	}

	return level, e.fillModules(ctx, level, children)
}

// fillModules appends a module for every folder among the given children
func (e *Extractor) fillModules(ctx context.Context, level *models.Level, children []drive.File) error {
	for _, child := range children {
		if !child.IsFolder() {
			continue
		}
		module, err := e.extractModule(ctx, child, len(level.Modules)+1)
		if err != nil {
			return err
		}
		level.Modules = append(level.Modules, module)
	}
	return nil
}

// extractModule turns a folder into a module with its submodules and lessons
func (e *Extractor) extractModule(ctx context.Context, folder drive.File, sort int) (*models.Module, error) {
	module := &models.Module{
		ID:         folder.ID,
		Title:      folder.Name,
		Sort:       sort,
		SubModules: []*models.SubModule{},
	}

	children, err := e.client.ListChildren(ctx, folder.ID)
	if err != nil {
		return nil, err
	}

	// loose files inside the module land in a synthesized default submodule,
	// created the first time one shows up
	var defaultSub *models.SubModule

	for _, child := range children {
		if child.IsFolder() {
			sub, err := e.extractSubModule(ctx, child, len(module.SubModules)+1)
			if err != nil {
				return nil, err
			}
			module.SubModules = append(module.SubModules, sub)
			continue
		}

		if strings.EqualFold(child.Name, MetadataFileName) {
			module.Metadata = e.fetchMetadata(ctx, child.ID)
			continue // the metadata file is not a lesson
		}

		if defaultSub == nil {
			defaultSub = &models.SubModule{
				ID:      module.ID, // no real folder backs it, reuse the module id
				Sort:    len(module.SubModules) + 1,
				Title:   defaultSubModuleTitle,
				Lessons: []*models.Lesson{},
			}
			module.SubModules = append(module.SubModules, defaultSub)
		}
		defaultSub.Lessons = append(defaultSub.Lessons, lessonFromFile(child))
	}

	e.log.Debugw("extracted module", "title", module.Title, "submodules", len(module.SubModules))
	return module, nil
}

// extractSubModule turns a folder inside a module into a submodule
func (e *Extractor) extractSubModule(ctx context.Context, folder drive.File, sort int) (*models.SubModule, error) {
	sub := &models.SubModule{
		ID:      folder.ID,
		Sort:    sort,
		Title:   folder.Name,
		Lessons: []*models.Lesson{},
	}

	children, err := e.client.ListChildren(ctx, folder.ID)
	if err != nil {
		return nil, err
	}

	for _, child := range children {
		if child.IsFolder() {
			continue // nesting stops here, deeper folders are ignored
		}
		sub.Lessons = append(sub.Lessons, lessonFromFile(child))
	}

	return sub, nil
}

// fetchMetadata downloads and parses a module's metadata file. Failures are
// logged and swallowed - a module without readable metadata is still a valid
// module, and a broken metadata file must never abort a build.
func (e *Extractor) fetchMetadata(ctx context.Context, fileID string) *models.ModuleMetadata {
	raw, err := e.client.DownloadText(ctx, fileID)
	if err != nil {
		e.log.Warnw("could not read module metadata", "file_id", fileID, "error", err)
		return nil
	}

	meta := ParseMetadata(raw)
	if meta.Description == "" && meta.ChallengeURL == "" {
		return nil
	}
	return &meta
}

// lessonFromFile builds a lesson record from one non-folder child
func lessonFromFile(f drive.File) *models.Lesson {
	return &models.Lesson{
		ID:           f.ID,
		Title:        f.Name,
		Kind:         ClassifyLesson(f.MimeType),
		SourceFileID: f.ID,
	}
}

// classifyCourseType decides course vs training from the folder name
func classifyCourseType(name string) models.CourseType {
	if strings.Contains(strings.ToLower(name), trainingIndicator) {
		return models.TypeTraining
	}
	return models.TypeCourse
}

// extractTags pulls bracket-delimited tags out of a course name,
// e.g. "[go] [backend] Formação Backend" -> {go, backend}
func extractTags(name string) []string {
	tags := []string{}
	rest := name
	for {
		open := strings.Index(rest, "[")
		if open < 0 {
			break
		}
		end := strings.Index(rest[open:], "]")
		if end < 0 {
			break
		}
		tag := strings.TrimSpace(strings.ToLower(rest[open+1 : open+end]))
		if tag != "" {
			tags = append(tags, tag)
		}
		rest = rest[open+end+1:]
	}
	return tags
}
