package persist

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/forgecut/forgecut/internal/timeline"
)

// Fingerprint returns a stable hex digest of the project's persisted
// form. User-entered strings are NFC normalized first, so two documents
// that differ only in Unicode composition hash the same. Autosave uses
// the fingerprint to skip writes for unchanged documents.
func Fingerprint(p *timeline.Project) (string, error) {
	normalized := p.Clone()
	normalizeStrings(normalized)

	data, err := Encode(normalized)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func normalizeStrings(p *timeline.Project) {
	p.Name = norm.NFC.String(p.Name)
	for i := range p.Assets {
		p.Assets[i].Name = norm.NFC.String(p.Assets[i].Name)
	}
	for i := range p.Timeline.Markers {
		p.Timeline.Markers[i].Label = norm.NFC.String(p.Timeline.Markers[i].Label)
	}
	for _, tr := range p.Timeline.Tracks {
		for _, it := range tr.Items {
			if t, ok := it.(*timeline.TextOverlay); ok {
				t.Text = norm.NFC.String(t.Text)
			}
		}
	}
}
