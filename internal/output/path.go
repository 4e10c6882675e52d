package output

import (
	"os"
	"path/filepath"
)

// Resolver turns a caller supplied output path into the path that is written.
type Resolver struct {
	defaultDir string
	home       string
}

// NewResolver builds a resolver for the configured default directory. The
// home directory falls back to HOME/USERPROFILE and finally ".".
func NewResolver(defaultDir string) *Resolver {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return &Resolver{defaultDir: defaultDir, home: home}
}

// Resolve keeps absolute paths as-is. Relative paths are joined against the
// default directory when it is absolute and exists, then ~/Desktop when it
// exists, then the home directory.
func (r *Resolver) Resolve(outputPath string) string {
	if filepath.IsAbs(outputPath) {
		return filepath.Clean(outputPath)
	}

	if r.defaultDir != "" && filepath.IsAbs(r.defaultDir) && dirExists(r.defaultDir) {
		return filepath.Join(r.defaultDir, outputPath)
	}

	desktop := filepath.Join(r.home, "Desktop")
	if dirExists(desktop) {
		return filepath.Join(desktop, outputPath)
	}

	return filepath.Join(r.home, outputPath)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
