package timeline

import (
	"fmt"

	"github.com/google/uuid"
)

// Validate checks every structural invariant of the document:
//
//   - all ids (assets, tracks, items, markers) are unique
//   - item start >= 0 and effective duration > 0
//   - source_in < source_out, and source_out within the probed asset
//     duration when a probe is known
//   - asset and track references resolve
//   - item variants match their track kind
//   - per track, items are start-sorted and pairwise disjoint
//   - bounded fields are in range (volume, opacity, overlay geometry)
//
// A nil return means the project is structurally valid. Edit operations
// preserve validity by construction; Validate is the independent check
// used by tests, load, and the validate CLI command.
func Validate(p *Project) error {
	seen := make(map[uuid.UUID]string)
	claim := func(id uuid.UUID, kind string) error {
		if prev, dup := seen[id]; dup {
			return &ValidationError{Reason: fmt.Sprintf("duplicate id %s (%s and %s)", id, prev, kind)}
		}
		seen[id] = kind
		return nil
	}

	if err := claim(p.ID, "project"); err != nil {
		return err
	}
	for i := range p.Assets {
		a := &p.Assets[i]
		if err := claim(a.ID, "asset"); err != nil {
			return err
		}
		if !ValidAssetKinds[a.Kind] {
			return &ValidationError{Reason: fmt.Sprintf("asset %s has unknown kind %q", a.ID, a.Kind)}
		}
	}
	for _, m := range p.Timeline.Markers {
		if err := claim(m.ID, "marker"); err != nil {
			return err
		}
		if m.Time < 0 {
			return &InvalidRangeError{Field: "marker.time", Value: m.Time}
		}
	}

	for ti := range p.Timeline.Tracks {
		track := &p.Timeline.Tracks[ti]
		if err := claim(track.ID, "track"); err != nil {
			return err
		}
		if !ValidTrackKinds[track.Kind] {
			return &ValidationError{Reason: fmt.Sprintf("track %s has unknown kind %q", track.ID, track.Kind)}
		}

		var prev Item
		for _, item := range track.Items {
			if err := claim(item.ItemID(), "item"); err != nil {
				return err
			}
			if err := validateItem(p, track, item); err != nil {
				return err
			}
			if prev != nil {
				if item.Start() < prev.Start() {
					return &ValidationError{Reason: fmt.Sprintf("track %s items not start-sorted", track.ID)}
				}
				if overlaps(prev, item) {
					return &OverlapError{Track: track.ID, Start: item.Start(), End: item.End()}
				}
			}
			prev = item
		}
	}
	return nil
}

func validateItem(p *Project, track *Track, item Item) error {
	if kind := itemKind(item); kind != track.Kind {
		return &KindMismatchError{Expected: track.Kind, Actual: kind}
	}
	if item.TrackID() != track.ID {
		return &ValidationError{Reason: fmt.Sprintf("item %s track_id does not match owning track", item.ItemID())}
	}
	if item.Start() < 0 {
		return &InvalidRangeError{Field: "start", Value: item.Start()}
	}
	if item.Duration() <= 0 {
		return &InvalidRangeError{Field: "duration", Value: item.Duration()}
	}

	if assetID, ok := item.AssetID(); ok {
		if p.AssetByID(assetID) == nil {
			return &NotFoundError{Kind: "asset", ID: assetID}
		}
	}

	switch it := item.(type) {
	case *VideoClip:
		return validateSourceRange(p, it.Asset, it.SourceIn, it.SourceOut)
	case *AudioClip:
		if err := validateSourceRange(p, it.Asset, it.SourceIn, it.SourceOut); err != nil {
			return err
		}
		if it.Volume < 0 || it.Volume > 2 {
			return &InvalidRangeError{Field: "volume", Value: it.Volume}
		}
	case *ImageOverlay:
		if it.Opacity < 0 || it.Opacity > 1 {
			return &InvalidRangeError{Field: "opacity", Value: it.Opacity}
		}
		if it.Width <= 0 || it.Height <= 0 {
			return &InvalidRangeError{Field: "width/height", Value: fmt.Sprintf("%dx%d", it.Width, it.Height)}
		}
	case *TextOverlay:
		if it.FontSize <= 0 {
			return &InvalidRangeError{Field: "font_size", Value: it.FontSize}
		}
	}
	return nil
}

func validateSourceRange(p *Project, assetID uuid.UUID, in, out TimeUs) error {
	if in < 0 {
		return &InvalidRangeError{Field: "source_in", Value: in}
	}
	if in >= out {
		return &InvalidRangeError{Field: "source_out", Value: out}
	}
	if asset := p.AssetByID(assetID); asset != nil && asset.Probe != nil && out > asset.Probe.Duration {
		return &InvalidRangeError{Field: "source_out", Value: out}
	}
	return nil
}
