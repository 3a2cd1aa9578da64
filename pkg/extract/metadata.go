package extract

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/trilhadev/course-viewer-backend/internal/models"
)

// MetadataFileName is the optional per-module metadata file
const MetadataFileName = "metadata.md"

// markers used inside metadata files
const (
	markerDescription = "@descrição"
	markerChallenge   = "@link desafio:"
)

// metadata files come from a shared Drive folder anyone can edit, so the
// description is stripped down to plain text before it ever reaches storage
var metadataPolicy = bluemonday.StrictPolicy()

// ParseMetadata extracts the optional fields from a module's metadata file.
// A field whose marker is absent stays empty; empty or garbage input yields
// the zero value. Never an error - a missing or malformed metadata file just
// means "no metadata".
func ParseMetadata(raw string) models.ModuleMetadata {
	meta := models.ModuleMetadata{}
	if strings.TrimSpace(raw) == "" {
		return meta
	}

	if desc := sectionAfter(raw, markerDescription); desc != "" {
		meta.Description = metadataPolicy.Sanitize(desc)
	}
	meta.ChallengeURL = sectionAfter(raw, markerChallenge)

	return meta
}

// sectionAfter returns the trimmed text between a marker and the next
// @-marker (or end of text), or "" when the marker is absent.
func sectionAfter(raw, marker string) string {
	idx := strings.Index(raw, marker)
	if idx < 0 {
		return ""
	}

	rest := raw[idx+len(marker):]
	if end := strings.Index(rest, "@"); end >= 0 {
		rest = rest[:end]
	}

	return strings.TrimSpace(rest)
}
