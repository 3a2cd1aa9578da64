package extract

import (
	"strings"

	"github.com/trilhadev/course-viewer-backend/internal/drive"
	"github.com/trilhadev/course-viewer-backend/internal/models"
)

// document mime types that count as "docs" lessons
var docMimeTypes = map[string]bool{
	"application/pdf":              true,
	drive.MimeDocument:             true,
	drive.MimeSpreadsheet:          true,
	drive.MimePresentation:         true,
	"text/plain":                   true,
	"application/msword":           true,
	"application/vnd.ms-excel":     true,
	"application/vnd.ms-powerpoint": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
}

// IsVideo reports whether a mime type is playable video
func IsVideo(mimeType string) bool {
	return strings.HasPrefix(mimeType, "video/") || mimeType == drive.MimeVideo
}

// IsDoc reports whether a mime type is document-like content
func IsDoc(mimeType string) bool {
	return docMimeTypes[mimeType]
}

// ClassifyLesson maps a mime type to a lesson kind. Total and deterministic:
// every input lands in exactly one of video/docs/other. Images deliberately
// fall through to "other" here - whether something renders as an image is a
// view-time decision made by the resolver, not a catalog property.
func ClassifyLesson(mimeType string) models.LessonKind {
	switch {
	case IsVideo(mimeType):
		return models.LessonVideo
	case IsDoc(mimeType):
		return models.LessonDocs
	default:
		return models.LessonOther
	}
}
