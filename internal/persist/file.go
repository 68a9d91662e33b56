package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/forgecut/forgecut/internal/timeline"
)

// EnsureExtension appends the project file suffix when absent.
func EnsureExtension(path string) string {
	if strings.HasSuffix(path, Extension) {
		return path
	}
	return path + Extension
}

// SaveFile encodes the project and writes it atomically (temp file plus
// rename) so a crash mid-write never leaves a truncated project on disk.
func SaveFile(p *timeline.Project, path string) error {
	path = EnsureExtension(path)
	data, err := Encode(p)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".forgecut-*")
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save project: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save project: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// LoadFile reads and decodes a project file.
func LoadFile(path string) (*timeline.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	return Decode(data)
}
