package util

import "os"

// EnsureDirectoryExists creates the directory if it doesn't exist
func EnsureDirectoryExists(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// try to create it
		err = os.MkdirAll(path, 0o755)
		if err != nil {
			return false
		}
	}
	return true
}
