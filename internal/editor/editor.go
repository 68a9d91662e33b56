// Package editor owns the live project document. It is the single
// mutation point demanded by the concurrency model: edit operations are
// mutually exclusive behind one lock, queries run concurrently against
// consistent state, and no lock is ever held across a collaborator call
// (prober, renderer, player).
//
// Every edit follows mutate-copy-then-commit: the operation runs on a
// deep clone of the document, a failure discards the clone leaving the
// live state byte-for-byte unchanged, and a success pushes the pre-edit
// snapshot to history and swaps the clone in.
package editor

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/forgecut/forgecut/internal/history"
	"github.com/forgecut/forgecut/internal/timeline"
)

// Prober resolves a media path to its probed metadata. Implemented by
// probe.FFProbe in production and probe.Static in tests.
type Prober interface {
	Probe(path string) (timeline.ProbeResult, error)
}

// DefaultSnapThreshold is the time-domain snap distance used when the
// config does not override it.
const DefaultSnapThreshold = 250 * timeline.Millisecond

// Editor is the single-writer owner of a project and its history. Its
// lifecycle is bound to project-open/project-close: Load replaces the
// document wholesale and resets history.
type Editor struct {
	mu sync.RWMutex

	project *timeline.Project
	history *history.History
	clock   *Clock

	prober        Prober
	snapThreshold timeline.TimeUs
	autosaveDir   string
	autosaveKeep  int
	lastAutosaved string // fingerprint of the last autosaved document
}

// Option configures an Editor.
type Option func(*Editor)

// WithUndoDepth bounds the undo stack.
func WithUndoDepth(n int) Option {
	return func(e *Editor) { e.history = history.New(n) }
}

// WithProber installs the media prober collaborator.
func WithProber(p Prober) Option {
	return func(e *Editor) { e.prober = p }
}

// WithSnapThreshold overrides the snap distance.
func WithSnapThreshold(t timeline.TimeUs) Option {
	return func(e *Editor) { e.snapThreshold = t }
}

// WithAutosave configures the autosave directory and retention count.
func WithAutosave(dir string, keep int) Option {
	return func(e *Editor) {
		e.autosaveDir = dir
		e.autosaveKeep = keep
	}
}

// New creates an editor owning the given project.
func New(p *timeline.Project, opts ...Option) *Editor {
	e := &Editor{
		project:       p,
		history:       history.New(history.DefaultMaxEntries),
		clock:         NewClock(),
		snapThreshold: DefaultSnapThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// apply runs an edit against a clone of the live document. On success the
// pre-edit snapshot goes to the undo stack and the clone becomes live; on
// failure the clone is discarded and both state and history are
// untouched.
func (e *Editor) apply(op string, fn func(p *timeline.Project) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.project.Clone()
	if err := fn(next); err != nil {
		slog.Debug("edit rejected", "op", op, "error", err)
		return err
	}

	e.history.Push(e.project)
	e.project = next
	rev := e.clock.Next()
	slog.Debug("edit committed", "op", op, "revision", rev)
	return nil
}

// AddClipToTimeline inserts a clip spanning the full asset range at
// start. Colliding placements fail with an overlap error; nothing is
// auto-shifted.
func (e *Editor) AddClipToTimeline(assetID, trackID uuid.UUID, start timeline.TimeUs) (itemID uuid.UUID, err error) {
	err = e.apply("add_clip", func(p *timeline.Project) error {
		item, err := p.AddClip(assetID, trackID, start)
		if err != nil {
			return err
		}
		itemID = item.ItemID()
		return nil
	})
	return itemID, err
}

// MoveClip relocates an item within its track.
func (e *Editor) MoveClip(itemID uuid.UUID, newStart timeline.TimeUs) error {
	return e.apply("move_clip", func(p *timeline.Project) error {
		return p.MoveItem(itemID, newStart)
	})
}

// MoveClipToTrack relocates an item to another same-kind track. The move
// is atomic: it either fully happens or the document is unchanged.
func (e *Editor) MoveClipToTrack(itemID, newTrackID uuid.UUID, newStart timeline.TimeUs) error {
	return e.apply("move_clip_to_track", func(p *timeline.Project) error {
		return p.MoveItemToTrack(itemID, newTrackID, newStart)
	})
}

// TrimClip adjusts one edge of an item while holding the opposite edge's
// timeline position fixed.
func (e *Editor) TrimClip(itemID uuid.UUID, edge timeline.Edge, newTime timeline.TimeUs) error {
	return e.apply("trim_clip", func(p *timeline.Project) error {
		return p.Trim(itemID, edge, newTime)
	})
}

// SplitClip cuts an item at a position strictly inside it. The left half
// keeps the original id, the right half gets a fresh one.
func (e *Editor) SplitClip(itemID uuid.UUID, splitTime timeline.TimeUs) (leftID, rightID uuid.UUID, err error) {
	err = e.apply("split_clip", func(p *timeline.Project) error {
		var opErr error
		leftID, rightID, opErr = p.SplitAt(itemID, splitTime)
		return opErr
	})
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return leftID, rightID, nil
}

// DeleteClip removes an item from its track. Nothing else cascades.
func (e *Editor) DeleteClip(itemID uuid.UUID) error {
	return e.apply("delete_clip", func(p *timeline.Project) error {
		_, err := p.RemoveItem(itemID)
		return err
	})
}

// AddTrack appends an empty track of the given kind.
func (e *Editor) AddTrack(kind timeline.TrackKind) (trackID uuid.UUID, err error) {
	err = e.apply("add_track", func(p *timeline.Project) error {
		track, err := p.AddTrack(kind)
		if err != nil {
			return err
		}
		trackID = track.ID
		return nil
	})
	return trackID, err
}

// InitDefaultTracks creates the initial Video and Audio tracks for an
// empty timeline. A timeline that already has tracks is left alone and
// no history entry is recorded.
func (e *Editor) InitDefaultTracks() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.project.Timeline.Tracks) > 0 {
		return
	}
	e.project.InitDefaultTracks()
}

// AddTextOverlay places a text overlay on a matching-kind track under the
// usual collision rule.
func (e *Editor) AddTextOverlay(trackID uuid.UUID, start, duration timeline.TimeUs, text string, fontSize int, color string, x, y int) (itemID uuid.UUID, err error) {
	err = e.apply("add_text_overlay", func(p *timeline.Project) error {
		item := &timeline.TextOverlay{
			ID:         uuid.New(),
			Track:      trackID,
			StartUs:    start,
			DurationUs: duration,
			Text:       text,
			FontSize:   fontSize,
			Color:      color,
			X:          x,
			Y:          y,
		}
		if err := p.AddItem(trackID, item); err != nil {
			return err
		}
		itemID = item.ID
		return nil
	})
	return itemID, err
}

// AddImageOverlay places an image overlay on a matching-kind track.
func (e *Editor) AddImageOverlay(trackID, assetID uuid.UUID, start, duration timeline.TimeUs, x, y, width, height int, opacity float64) (itemID uuid.UUID, err error) {
	err = e.apply("add_image_overlay", func(p *timeline.Project) error {
		item := &timeline.ImageOverlay{
			ID:         uuid.New(),
			Asset:      assetID,
			Track:      trackID,
			StartUs:    start,
			DurationUs: duration,
			X:          x,
			Y:          y,
			Width:      width,
			Height:     height,
			Opacity:    opacity,
		}
		if err := p.AddItem(trackID, item); err != nil {
			return err
		}
		itemID = item.ID
		return nil
	})
	return itemID, err
}

// UpdateItemProperty sets one mutable field on an item, subject to the
// closed per-variant property set and hard range validation.
func (e *Editor) UpdateItemProperty(itemID uuid.UUID, name string, value any) error {
	return e.apply("update_item_property", func(p *timeline.Project) error {
		return p.UpdateItemProperty(itemID, name, value)
	})
}

// AddMarker places a labelled marker.
func (e *Editor) AddMarker(t timeline.TimeUs, label string) (markerID uuid.UUID, err error) {
	err = e.apply("add_marker", func(p *timeline.Project) error {
		m, err := p.AddMarker(t, label)
		if err != nil {
			return err
		}
		markerID = m.ID
		return nil
	})
	return markerID, err
}

// RemoveMarker deletes a marker.
func (e *Editor) RemoveMarker(id uuid.UUID) error {
	return e.apply("remove_marker", func(p *timeline.Project) error {
		return p.RemoveMarker(id)
	})
}

// RemoveAsset deletes an asset from the bin. Assets still referenced by
// clips are refused rather than cascading.
func (e *Editor) RemoveAsset(id uuid.UUID) error {
	return e.apply("remove_asset", func(p *timeline.Project) error {
		return p.RemoveAsset(id)
	})
}

// ImportAsset probes a media file and appends it to the asset bin. The
// prober runs outside the lock; only the resulting append is a critical
// section.
func (e *Editor) ImportAsset(path string) (assetID uuid.UUID, err error) {
	if e.prober == nil {
		return uuid.Nil, fmt.Errorf("import asset: no prober configured")
	}

	// Blocking collaborator call, deliberately outside the lock.
	result, probeErr := e.prober.Probe(path)

	asset := timeline.Asset{
		ID:   uuid.New(),
		Name: baseName(path),
		Path: path,
		Kind: probeKind(path, result),
	}
	if probeErr != nil {
		slog.Warn("probe failed, importing without metadata", "path", path, "error", probeErr)
	} else {
		r := result
		asset.Probe = &r
	}

	err = e.apply("import_asset", func(p *timeline.Project) error {
		p.Assets = append(p.Assets, asset)
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return asset.ID, nil
}

// SetAssetProbe records an asynchronously delivered probe result. The
// probe is stored verbatim, never re-derived.
func (e *Editor) SetAssetProbe(assetID uuid.UUID, result timeline.ProbeResult) error {
	return e.apply("set_asset_probe", func(p *timeline.Project) error {
		asset := p.AssetByID(assetID)
		if asset == nil {
			return &timeline.NotFoundError{Kind: "asset", ID: assetID}
		}
		r := result
		asset.Probe = &r
		return nil
	})
}

// Undo restores the previous snapshot. Failed edits never create undo
// entries, so undo always steps over successful edits only.
func (e *Editor) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	restored, err := e.history.Undo(e.project)
	if err != nil {
		return err
	}
	e.project = restored
	e.clock.Next()
	slog.Debug("undo", "revision", e.clock.Current())
	return nil
}

// Redo restores the most recently undone snapshot.
func (e *Editor) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	restored, err := e.history.Redo(e.project)
	if err != nil {
		return err
	}
	e.project = restored
	e.clock.Next()
	slog.Debug("redo", "revision", e.clock.Current())
	return nil
}

// CanUndo reports whether an undo step is available.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether a redo step is available.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// Revision returns the current edit revision.
func (e *Editor) Revision() int64 { return e.clock.Current() }
