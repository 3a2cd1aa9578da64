package view

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/trilhadev/course-viewer-backend/internal/drive"
	"github.com/trilhadev/course-viewer-backend/internal/models"
)

// DefaultTTL is how long a resolved view URL stays cached. Preview links
// are fine for a while but the embedded access tokens on image URLs are not.
const DefaultTTL = 30 * time.Minute

type cacheEntry struct {
	view      models.FileView
	expiresAt time.Time
}

// Resolver turns a lesson's file id into something the frontend can embed.
// Results are cached per file id with a fixed TTL, evicted lazily on the
// next lookup past expiry. The cache is unbounded - the catalog is small
// enough that nobody has cared yet.
type Resolver struct {
	client drive.Client
	log    *zap.SugaredLogger
	ttl    time.Duration
	now    func() time.Time // swapped out in tests

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewResolver creates a resolver with the given cache TTL
func NewResolver(client drive.Client, log *zap.SugaredLogger, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Resolver{
		client: client,
		log:    log,
		ttl:    ttl,
		now:    time.Now,
		cache:  make(map[string]cacheEntry),
	}
}

// Resolve returns the viewing URL and render kind for a file, hitting the
// remote store only on cache misses
func (r *Resolver) Resolve(ctx context.Context, fileID string) (models.FileView, error) {
	if view, ok := r.cached(fileID); ok {
		return view, nil
	}

	file, err := r.client.GetFile(ctx, fileID)
	if err != nil {
		return models.FileView{}, err
	}

	view, err := r.viewFor(ctx, file)
	if err != nil {
		return models.FileView{}, err
	}

	r.mu.Lock()
	r.cache[fileID] = cacheEntry{view: view, expiresAt: r.now().Add(r.ttl)}
	r.mu.Unlock()

	r.log.Debugw("resolved file view", "file_id", fileID, "kind", view.Kind)
	return view, nil
}

// CachedCount returns the number of live cache entries, for the stats endpoint
func (r *Resolver) CachedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	count := 0
	for _, entry := range r.cache {
		if now.Before(entry.expiresAt) {
			count++
		}
	}
	return count
}

// cached returns a live entry, deleting it when expired
func (r *Resolver) cached(fileID string) (models.FileView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.cache[fileID]
	if !ok {
		return models.FileView{}, false
	}
	if !r.now().Before(entry.expiresAt) {
		delete(r.cache, fileID)
		return models.FileView{}, false
	}
	return entry.view, true
}

// viewFor applies the resolution rules in order, first match wins
func (r *Resolver) viewFor(ctx context.Context, file drive.File) (models.FileView, error) {
	mime := file.MimeType

	switch {
	case mime == drive.MimeDocument:
		return models.FileView{
			URL:         fmt.Sprintf("https://docs.google.com/document/d/%s/edit?usp=sharing&embedded=true", file.ID),
			Kind:        models.ViewIframe,
			ContentType: mime,
		}, nil

	case mime == drive.MimeSpreadsheet:
		return models.FileView{
			URL:         fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit?usp=sharing&embedded=true", file.ID),
			Kind:        models.ViewIframe,
			ContentType: mime,
		}, nil

	case mime == drive.MimePresentation:
		return models.FileView{
			URL:         fmt.Sprintf("https://docs.google.com/presentation/d/%s/edit?usp=sharing&embedded=true", file.ID),
			Kind:        models.ViewIframe,
			ContentType: mime,
		}, nil

	case mime == "application/pdf":
		return models.FileView{
			URL:         previewURL(file.ID),
			Kind:        models.ViewIframe,
			ContentType: mime,
		}, nil

	case strings.HasPrefix(mime, "image/"):
		// direct media URL, needs a fresh token baked in
		token, err := r.client.AccessToken(ctx)
		if err != nil {
			return models.FileView{}, err
		}
		return models.FileView{
			URL:         fmt.Sprintf("https://www.googleapis.com/drive/v3/files/%s?alt=media&access_token=%s", file.ID, token),
			Kind:        models.ViewImage,
			ContentType: mime,
		}, nil

	case strings.HasPrefix(mime, "video/") || mime == drive.MimeVideo:
		return models.FileView{
			URL:         previewURL(file.ID),
			Kind:        models.ViewVideo,
			ContentType: mime,
		}, nil

	default:
		return models.FileView{
			URL:         previewURL(file.ID),
			Kind:        models.ViewOther,
			ContentType: mime,
		}, nil
	}
}

func previewURL(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/file/d/%s/preview", fileID)
}
