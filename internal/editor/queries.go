package editor

import (
	"github.com/google/uuid"

	"github.com/forgecut/forgecut/internal/timeline"
)

// Snapshot returns an immutable deep copy of the current document. This
// is the editor's sole obligation towards the renderer: a consistent,
// serializable project that no later edit can alias.
func (e *Editor) Snapshot() *timeline.Project {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.project.Clone()
}

// Assets lists the asset bin.
func (e *Editor) Assets() []timeline.Asset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]timeline.Asset, len(e.project.Assets))
	for i, a := range e.project.Assets {
		out[i] = a
		if a.Probe != nil {
			probe := *a.Probe
			out[i].Probe = &probe
		}
	}
	return out
}

// Settings returns the project settings.
func (e *Editor) Settings() timeline.ProjectSettings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.project.Settings
}

// ItemDetails returns a copy of the item with the given id.
func (e *Editor) ItemDetails(itemID uuid.UUID) (timeline.Item, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	item, _, _, ok := e.project.FindItem(itemID)
	if !ok {
		return nil, &timeline.NotFoundError{Kind: "item", ID: itemID}
	}
	return timeline.CloneItem(item), nil
}

// SnapPoints returns the alignment candidates for a drag, excluding the
// dragged item's own edges. Pass uuid.Nil to exclude nothing.
func (e *Editor) SnapPoints(excludeItemID uuid.UUID, playhead timeline.TimeUs) []timeline.TimeUs {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return timeline.SnapPoints(e.project, excludeItemID, playhead)
}

// Snap resolves a proposed time against the current snap candidates using
// the configured threshold.
func (e *Editor) Snap(pos timeline.TimeUs, excludeItemID uuid.UUID, playhead timeline.TimeUs) timeline.TimeUs {
	e.mu.RLock()
	defer e.mu.RUnlock()
	points := timeline.SnapPoints(e.project, excludeItemID, playhead)
	return timeline.FindSnapPoint(pos, points, e.snapThreshold)
}

// PlayheadClip is what the player needs to present the frame at a given
// instant: the media file, where to seek inside it, and the clip's
// timeline interval.
type PlayheadClip struct {
	FilePath    string          `json:"file_path"`
	SeekSeconds float64         `json:"seek_seconds"`
	ClipStart   timeline.TimeUs `json:"clip_start_us"`
	ClipEnd     timeline.TimeUs `json:"clip_end_us"`
	SourceIn    timeline.TimeUs `json:"source_in_us"`
}

// ClipAtPlayhead resolves the single topmost clip covering the instant.
// Video outranks audio; among Video tracks the higher track index wins,
// which is what makes picture-in-picture layers take precedence. Returns
// ok=false when no clip covers the instant.
func (e *Editor) ClipAtPlayhead(playhead timeline.TimeUs) (PlayheadClip, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, kind := range []timeline.TrackKind{timeline.TrackVideo, timeline.TrackAudio} {
		tracks := e.project.Timeline.Tracks
		for ti := len(tracks) - 1; ti >= 0; ti-- {
			if tracks[ti].Kind != kind {
				continue
			}
			for _, item := range tracks[ti].Items {
				if playhead < item.Start() || playhead >= item.End() {
					continue
				}
				clip, ok := resolvePlayheadClip(e.project, item, playhead)
				if !ok {
					continue
				}
				return clip, true
			}
		}
	}
	return PlayheadClip{}, false
}

func resolvePlayheadClip(p *timeline.Project, item timeline.Item, playhead timeline.TimeUs) (PlayheadClip, bool) {
	assetID, ok := item.AssetID()
	if !ok {
		return PlayheadClip{}, false
	}
	asset := p.AssetByID(assetID)
	if asset == nil {
		return PlayheadClip{}, false
	}

	var sourceIn timeline.TimeUs
	switch it := item.(type) {
	case *timeline.VideoClip:
		sourceIn = it.SourceIn
	case *timeline.AudioClip:
		sourceIn = it.SourceIn
	}
	seek := sourceIn + (playhead - item.Start())
	return PlayheadClip{
		FilePath:    asset.Path,
		SeekSeconds: seek.Seconds(),
		ClipStart:   item.Start(),
		ClipEnd:     item.End(),
		SourceIn:    sourceIn,
	}, true
}

// OverlaysAt lists every overlay item covering the instant, in track
// order (later tracks composite on top).
func (e *Editor) OverlaysAt(playhead timeline.TimeUs) []timeline.Item {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []timeline.Item
	for _, track := range e.project.Timeline.Tracks {
		if track.Kind != timeline.TrackOverlayImage && track.Kind != timeline.TrackOverlayText {
			continue
		}
		for _, item := range track.Items {
			if playhead >= item.Start() && playhead < item.End() {
				out = append(out, timeline.CloneItem(item))
			}
		}
	}
	return out
}
