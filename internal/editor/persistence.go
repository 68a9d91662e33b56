package editor

import (
	"log/slog"

	"github.com/forgecut/forgecut/internal/persist"
	"github.com/forgecut/forgecut/internal/timeline"
)

// Save encodes the current document. It never mutates in-memory state.
func (e *Editor) Save() ([]byte, error) {
	snapshot := e.Snapshot()
	return persist.Encode(snapshot)
}

// SaveFile writes the current document to a project file.
func (e *Editor) SaveFile(path string) error {
	snapshot := e.Snapshot()
	if err := persist.SaveFile(snapshot, path); err != nil {
		return err
	}
	slog.Info("project saved", "path", persist.EnsureExtension(path), "revision", e.Revision())
	return nil
}

// Load replaces the document with the decoded byte stream and resets
// history. A decode failure leaves the prior document and history
// untouched; there is never a partial swap.
func (e *Editor) Load(data []byte) error {
	p, err := persist.Decode(data)
	if err != nil {
		return err
	}
	e.replace(p)
	return nil
}

// LoadFile replaces the document with the contents of a project file.
func (e *Editor) LoadFile(path string) error {
	p, err := persist.LoadFile(path)
	if err != nil {
		return err
	}
	e.replace(p)
	slog.Info("project loaded", "path", path, "name", p.Name)
	return nil
}

func (e *Editor) replace(p *timeline.Project) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.project = p
	e.history.Clear()
	e.clock.Next()
}

// Autosave writes a revision-named snapshot to the autosave directory,
// pruning old ones. Unchanged documents (by fingerprint) are skipped.
// Returns the written path, or "" when skipped.
func (e *Editor) Autosave() (string, error) {
	if e.autosaveDir == "" {
		return "", nil
	}

	snapshot := e.Snapshot()
	fp, err := persist.Fingerprint(snapshot)
	if err != nil {
		return "", err
	}

	e.mu.Lock()
	unchanged := fp == e.lastAutosaved
	e.mu.Unlock()
	if unchanged {
		return "", nil
	}

	path, err := persist.WriteAutosave(snapshot, e.autosaveDir, e.Revision(), e.autosaveKeep)
	if err != nil {
		return "", err
	}

	// Mark the document autosaved only once the file is on disk, so a
	// failed write is retried on the next call.
	e.mu.Lock()
	e.lastAutosaved = fp
	e.mu.Unlock()

	slog.Info("autosaved", "path", path, "revision", e.Revision())
	return path, nil
}
