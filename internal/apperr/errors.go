package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound covers every "the id you asked for doesn't exist" case -
// unknown user, course, level, module or lesson.
var ErrNotFound = errors.New("not found")

// ConfigError means required external configuration is missing or broken.
// There is no recovery path at runtime - fix the env and restart.
type ConfigError struct {
	Key string // which setting is missing
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Key)
}

// UpstreamError wraps a failure talking to the remote file store.
// Not retried internally - the caller triggers a fresh attempt.
type UpstreamError struct {
	Op  string // what we were doing, e.g. "list folder"
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// StorageError wraps local durable-storage failures other than not-found.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NotFound wraps ErrNotFound with some context about what was missing.
func NotFound(what, id string) error {
	return fmt.Errorf("%s %q: %w", what, id, ErrNotFound)
}
