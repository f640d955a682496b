package documents

import (
	"os"
	"path/filepath"
)

// Store is the blob side of the storage gateway: one artifact file per
// Document row, under a deployment-configured directory. The catalog row's
// storage_path is the sole pointer readers rely on.
type Store struct {
	Dir string
}

// Write persists artifact bytes under the documents directory (created if
// absent) and returns the absolute path.
func (s *Store) Write(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Exists reports whether the artifact at path is still present.
func (s *Store) Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
