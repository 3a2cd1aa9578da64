package models

// ViewKind says how the frontend should embed a resolved file
type ViewKind string

const (
	ViewIframe ViewKind = "iframe"
	ViewImage  ViewKind = "image"
	ViewVideo  ViewKind = "video"
	ViewOther  ViewKind = "other"
)

// FileView is the result of resolving a lesson's file for display
type FileView struct {
	URL         string   `json:"url"`
	Kind        ViewKind `json:"kind"`
	ContentType string   `json:"content_type"`
}
