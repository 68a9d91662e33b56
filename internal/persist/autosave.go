package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/forgecut/forgecut/internal/timeline"
)

// autosavePrefix names autosave files; the numeric suffix is the editor
// revision at save time, so lexical order is creation order.
const autosavePrefix = "autosave-"

// DefaultAutosaveKeep is how many autosaves survive pruning.
const DefaultAutosaveKeep = 5

// WriteAutosave saves a snapshot under dir, named by revision, and prunes
// older autosaves beyond keep. Returns the written path.
func WriteAutosave(p *timeline.Project, dir string, revision int64, keep int) (string, error) {
	if keep <= 0 {
		keep = DefaultAutosaveKeep
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("autosave: %w", err)
	}

	name := fmt.Sprintf("%s%020d%s", autosavePrefix, revision, Extension)
	path := filepath.Join(dir, name)
	if err := SaveFile(p, path); err != nil {
		return "", err
	}

	if err := pruneAutosaves(dir, keep); err != nil {
		return "", err
	}
	return path, nil
}

// LatestAutosave returns the newest autosave path in dir, or "" when none
// exists.
func LatestAutosave(dir string) (string, error) {
	names, err := autosaveNames(dir)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", nil
	}
	return filepath.Join(dir, names[len(names)-1]), nil
}

func pruneAutosaves(dir string, keep int) error {
	names, err := autosaveNames(dir)
	if err != nil {
		return err
	}
	for len(names) > keep {
		if err := os.Remove(filepath.Join(dir, names[0])); err != nil {
			return fmt.Errorf("prune autosave: %w", err)
		}
		names = names[1:]
	}
	return nil
}

// autosaveNames lists autosave files in dir, oldest first.
func autosaveNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list autosaves: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), autosavePrefix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
