package models

// LessonKind says how a lesson should be presented
type LessonKind string

const (
	LessonVideo LessonKind = "video" // playable video
	LessonDocs  LessonKind = "docs"  // document-like content
	LessonImage LessonKind = "image" // decided at view time, never during extraction
	LessonOther LessonKind = "other" // anything we can't do better with
)

// CourseType distinguishes flat courses from multi-level trainings
type CourseType string

const (
	TypeCourse   CourseType = "course"
	TypeTraining CourseType = "training"
)

// Lesson is a single viewable content item backed by a remote file
type Lesson struct {
	ID           string     `json:"id"` // remote file id - stable only while the file isn't moved
	Title        string     `json:"title"`
	Kind         LessonKind `json:"kind"`
	SourceFileID string     `json:"source_file_id"` // same as ID today, kept explicit for the view layer
	Description  string     `json:"description,omitempty"`
}

// SubModule groups lessons inside a module
type SubModule struct {
	ID      string    `json:"id"`   // remote folder id, or the parent module id for the default submodule
	Sort    int       `json:"sort"` // 1-based discovery order
	Title   string    `json:"title"`
	Lessons []*Lesson `json:"lessons"`
}

// ModuleMetadata holds the optional fields parsed from a module's metadata file
type ModuleMetadata struct {
	Description  string `json:"description,omitempty"`
	ChallengeURL string `json:"challenge_url,omitempty"`
}

// Module is an ordered section within a level
type Module struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Sort       int             `json:"sort"` // 1-based discovery order
	Metadata   *ModuleMetadata `json:"metadata,omitempty"`
	SubModules []*SubModule    `json:"submodules"` // always at least one after extraction
}

// Level groups modules within a training. Flat courses get exactly one
// synthetic level wrapping their modules.
type Level struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	LevelIndex int       `json:"level_index"` // 1-based
	Modules    []*Module `json:"modules"`
}

// Course is a top-level catalog entry
type Course struct {
	ID          string     `json:"id"` // remote folder id
	Title       string     `json:"title"`
	Tags        []string   `json:"tags"`
	Description string     `json:"description,omitempty"`
	Type        CourseType `json:"type"`
	Levels      []*Level   `json:"levels"`
}

// FindLevel looks a level up by id
func (c *Course) FindLevel(levelID string) *Level {
	for _, l := range c.Levels {
		if l.ID == levelID {
			return l
		}
	}
	return nil
}

// FindModule looks a module up by id
func (l *Level) FindModule(moduleID string) *Module {
	for _, m := range l.Modules {
		if m.ID == moduleID {
			return m
		}
	}
	return nil
}

// LessonIDs collects every lesson id in the course, in traversal order.
// Used by the progress summaries so watched records whose lessons
// disappeared in a rebuild simply don't count.
func (c *Course) LessonIDs() []string {
	var ids []string
	for _, level := range c.Levels {
		for _, module := range level.Modules {
			for _, sub := range module.SubModules {
				for _, lesson := range sub.Lessons {
					ids = append(ids, lesson.ID)
				}
			}
		}
	}
	return ids
}
