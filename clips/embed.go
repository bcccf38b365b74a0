package clips

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed clips.yaml
var clipsFS embed.FS

// DefaultFile is the clip table shipped with the binary.
const DefaultFile = "clips.yaml"

// Load returns the named clips yaml, preferring a copy on disk so edits take
// effect without rebuilding, then falling back to the embedded file.
func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return clipsFS.ReadFile(clean)
}

func cleanPath(path string) string {
	if path == "" {
		return DefaultFile
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "clips/"); ok {
		return after
	}
	return s
}

func diskPath(clean string) string {
	return filepath.Join("clips", filepath.FromSlash(clean))
}
