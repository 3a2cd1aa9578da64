package config

import (
	"os"
	"time"
)

// Config collects everything the server reads from the environment
type Config struct {
	Addr          string // listen address, e.g. ":8080"
	RootFolderID  string // Drive folder holding all courses - required for extraction
	DataDir       string // where courses.json and users.json live
	SessionSecret string // HMAC key for the session cookie

	// service-account credentials, either inline JSON or a file path
	CredentialsJSON string
	CredentialsFile string

	RefreshInterval time.Duration // 0 disables the periodic background rebuild
	Debug           bool
}

// Load reads configuration from the environment. Nothing is validated here -
// the extractor complains about a missing root folder id when it actually
// needs one, so a read-only deployment can start without Drive access.
func Load() Config {
	cfg := Config{
		Addr:            getEnv("ADDR", ":8080"),
		RootFolderID:    os.Getenv("GOOGLE_FOLDER_ID"),
		DataDir:         getEnv("DATA_DIR", "data"),
		SessionSecret:   getEnv("SESSION_SECRET", "dev-only-secret"),
		CredentialsJSON: os.Getenv("GOOGLE_CREDENTIALS_JSON"),
		CredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		Debug:           os.Getenv("DEBUG") == "true",
	}

	if raw := os.Getenv("REFRESH_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.RefreshInterval = d
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
