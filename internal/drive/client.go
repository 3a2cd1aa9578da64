package drive

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/trilhadev/course-viewer-backend/internal/apperr"
)

// Drive mime types we care about
const (
	MimeFolder       = "application/vnd.google-apps.folder"
	MimeDocument     = "application/vnd.google-apps.document"
	MimeSpreadsheet  = "application/vnd.google-apps.spreadsheet"
	MimePresentation = "application/vnd.google-apps.presentation"
	MimeVideo        = "application/vnd.google-apps.video"
)

// File is the slice of Drive metadata the rest of the app needs
type File struct {
	ID       string
	Name     string
	MimeType string
}

// IsFolder reports whether this entry is a folder
func (f File) IsFolder() bool {
	return f.MimeType == MimeFolder
}

// Client is what the extractor and the view resolver need from the remote
// store: list a folder, fetch one file's metadata, download a small text
// file, and mint an access token for direct media URLs.
type Client interface {
	ListChildren(ctx context.Context, folderID string) ([]File, error)
	GetFile(ctx context.Context, fileID string) (File, error)
	DownloadText(ctx context.Context, fileID string) (string, error)
	AccessToken(ctx context.Context) (string, error)
}

// apiClient talks to the real Drive v3 API with a service account
type apiClient struct {
	svc    *gdrive.Service
	tokens oauth2.TokenSource
}

// NewClient builds a Drive client from service-account credentials,
// either inline JSON or a file path (inline wins when both are set).
func NewClient(ctx context.Context, credentialsJSON, credentialsFile string) (Client, error) {
	raw := []byte(credentialsJSON)
	if len(raw) == 0 {
		if credentialsFile == "" {
			return nil, &apperr.ConfigError{Key: "GOOGLE_CREDENTIALS_JSON or GOOGLE_CREDENTIALS_FILE"}
		}
		var err error
		raw, err = os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("reading credentials file: %w", err)
		}
	}

	creds, err := google.CredentialsFromJSON(ctx, raw, gdrive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parsing service account credentials: %w", err)
	}

	svc, err := gdrive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}

	return &apiClient{svc: svc, tokens: creds.TokenSource}, nil
}

// ListChildren returns the immediate, non-trashed children of a folder
// ordered by name, which is what gives extraction its deterministic order.
func (c *apiClient) ListChildren(ctx context.Context, folderID string) ([]File, error) {
	query := fmt.Sprintf("'%s' in parents and trashed = false", folderID)

	var files []File
	call := c.svc.Files.List().
		Q(query).
		OrderBy("name").
		Fields("nextPageToken, files(id, name, mimeType)").
		Context(ctx)

	err := call.Pages(ctx, func(page *gdrive.FileList) error {
		for _, f := range page.Files {
			files = append(files, File{ID: f.Id, Name: f.Name, MimeType: f.MimeType})
		}
		return nil
	})
	if err != nil {
		return nil, &apperr.UpstreamError{Op: "list folder " + folderID, Err: err}
	}

	return files, nil
}

// GetFile fetches one file's metadata
func (c *apiClient) GetFile(ctx context.Context, fileID string) (File, error) {
	f, err := c.svc.Files.Get(fileID).Fields("id, name, mimeType").Context(ctx).Do()
	if err != nil {
		return File{}, &apperr.UpstreamError{Op: "get file " + fileID, Err: err}
	}
	return File{ID: f.Id, Name: f.Name, MimeType: f.MimeType}, nil
}

// DownloadText pulls the raw content of a small text file, e.g. a module's
// metadata.md. Callers treat failures as "no content", not as fatal.
func (c *apiClient) DownloadText(ctx context.Context, fileID string) (string, error) {
	resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return "", &apperr.UpstreamError{Op: "download file " + fileID, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &apperr.UpstreamError{Op: "read file " + fileID, Err: err}
	}
	return string(data), nil
}

// AccessToken returns a fresh bearer token. Image lessons are served as
// direct media URLs which need the token embedded.
func (c *apiClient) AccessToken(ctx context.Context) (string, error) {
	tok, err := c.tokens.Token()
	if err != nil {
		return "", &apperr.UpstreamError{Op: "mint access token", Err: err}
	}
	return tok.AccessToken, nil
}
