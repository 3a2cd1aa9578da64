package models

import "strings"

// WatchedLesson marks one completed lesson for a user
type WatchedLesson struct {
	CourseID string `json:"course_id"`
	LessonID string `json:"lesson_id"`
}

// User represents someone allowed to watch courses
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"` // case-insensitive unique key, used for login
	Name  string `json:"name"`

	// set semantics - a (course, lesson) pair appears at most once
	WatchedLessons []WatchedLesson `json:"watched_lessons"`
}

// HasWatched reports whether the pair is in the user's watched set
func (u *User) HasWatched(courseID, lessonID string) bool {
	for _, wl := range u.WatchedLessons {
		if wl.CourseID == courseID && wl.LessonID == lessonID {
			return true
		}
	}
	return false
}

// EmailMatches compares emails ignoring case
func (u *User) EmailMatches(email string) bool {
	return strings.EqualFold(u.Email, email)
}
