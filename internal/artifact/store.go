// Package artifact saves generated images to a local directory.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"photosnap/internal/api"
)

const (
	// ImagesDirEnv is the env var override for the save directory (for testing).
	ImagesDirEnv = "PHOTOSNAP_IMAGES_DIR"
	// DefaultImagesBase is the default save directory under the user's home.
	DefaultImagesBase = ".photosnap/images"
)

// Store writes artifacts to the save directory.
type Store struct {
	baseDir string
}

// NewStore creates a store rooted at the user's home + DefaultImagesBase,
// or at the path in PHOTOSNAP_IMAGES_DIR if set.
func NewStore() (*Store, error) {
	base := os.Getenv(ImagesDirEnv)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, DefaultImagesBase)
	}
	return &Store{baseDir: base}, nil
}

// Dir returns the save directory.
func (s *Store) Dir() string {
	return s.baseDir
}

// Save writes the artifact under its timestamp-derived filename and
// returns the full path.
func (s *Store) Save(a *api.Artifact) (string, error) {
	if a == nil || len(a.Data) == 0 {
		return "", fmt.Errorf("no artifact to save")
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create images dir: %w", err)
	}
	path := filepath.Join(s.baseDir, a.Filename())
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}
