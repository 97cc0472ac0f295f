package plate

import (
	"os"
	"path/filepath"
	"strings"
)

const tempPrefix = "detected_plates_"

// WriteTemp stores an annotated frame in the OS temp directory and returns
// its path. The file is the caller's to remove after serving it.
func WriteTemp(data []byte) (string, error) {
	f, err := os.CreateTemp("", tempPrefix+"*.jpg")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// CleanupTemp removes annotated frames left over from previous runs. Called
// once at startup.
func CleanupTemp() {
	entries, err := os.ReadDir(os.TempDir())
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, tempPrefix) && strings.HasSuffix(name, ".jpg") {
			os.Remove(filepath.Join(os.TempDir(), name))
		}
	}
}
