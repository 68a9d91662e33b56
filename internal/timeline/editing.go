package timeline

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Edge selects which end of a clip a trim adjusts.
type Edge string

const (
	EdgeIn  Edge = "in"
	EdgeOut Edge = "out"
)

// ParseEdge converts a wire string to an Edge.
func ParseEdge(s string) (Edge, error) {
	switch Edge(s) {
	case EdgeIn, EdgeOut:
		return Edge(s), nil
	default:
		return "", &ValidationError{Reason: "unknown trim edge: " + s}
	}
}

// The operations below mutate the receiving project in place. Callers that
// need failure atomicity (internal/editor) apply them to a Clone and
// discard the clone on error; a returned error can leave the receiver
// partially modified.

// AddItem places an item on the given track. The item passes the full
// per-variant field validation plus the collision check, so a successful
// add can never produce a document Validate rejects.
func (p *Project) AddItem(trackID uuid.UUID, item Item) error {
	track := p.TrackByID(trackID)
	if track == nil {
		return &NotFoundError{Kind: "track", ID: trackID}
	}
	item.setTrack(trackID)
	if err := validateItem(p, track, item); err != nil {
		return err
	}
	for _, existing := range track.Items {
		if overlaps(existing, item) {
			return &OverlapError{Track: trackID, Start: item.Start(), End: item.End()}
		}
	}
	track.Items = append(track.Items, item)
	sortItems(track)
	return nil
}

// AddClip inserts a clip spanning the full asset range at start. The item
// variant follows the asset kind; image assets become overlays with a
// default five second duration and full frame placement.
func (p *Project) AddClip(assetID, trackID uuid.UUID, start TimeUs) (Item, error) {
	asset := p.AssetByID(assetID)
	if asset == nil {
		return nil, &NotFoundError{Kind: "asset", ID: assetID}
	}

	duration := 5 * Second
	if asset.Probe != nil && asset.Probe.Duration > 0 {
		duration = asset.Probe.Duration
	}

	var item Item
	switch asset.Kind {
	case AssetVideo:
		item = &VideoClip{
			ID:        uuid.New(),
			Asset:     assetID,
			Track:     trackID,
			StartUs:   start,
			SourceIn:  0,
			SourceOut: duration,
		}
	case AssetAudio:
		item = &AudioClip{
			ID:        uuid.New(),
			Asset:     assetID,
			Track:     trackID,
			StartUs:   start,
			SourceIn:  0,
			SourceOut: duration,
			Volume:    1.0,
		}
	case AssetImage:
		item = &ImageOverlay{
			ID:         uuid.New(),
			Asset:      assetID,
			Track:      trackID,
			StartUs:    start,
			DurationUs: 5 * Second,
			Width:      320,
			Height:     240,
			Opacity:    1.0,
		}
	default:
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown asset kind %q", asset.Kind)}
	}

	if err := p.AddItem(trackID, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes the item from its track and returns it. No other
// entity is touched.
func (p *Project) RemoveItem(itemID uuid.UUID) (Item, error) {
	item, ti, ii, ok := p.FindItem(itemID)
	if !ok {
		return nil, &NotFoundError{Kind: "item", ID: itemID}
	}
	track := &p.Timeline.Tracks[ti]
	track.Items = append(track.Items[:ii], track.Items[ii+1:]...)
	return item, nil
}

// MoveItem relocates an item within its track. Fails with OverlapError if
// the proposed interval collides with any sibling (self excluded).
func (p *Project) MoveItem(itemID uuid.UUID, newStart TimeUs) error {
	item, ti, _, ok := p.FindItem(itemID)
	if !ok {
		return &NotFoundError{Kind: "item", ID: itemID}
	}
	if newStart < 0 {
		return &InvalidRangeError{Field: "start", Value: newStart}
	}

	moved := item.clone()
	moved.setStart(newStart)
	track := &p.Timeline.Tracks[ti]
	for _, existing := range track.Items {
		if existing.ItemID() == itemID {
			continue
		}
		if overlaps(existing, moved) {
			return &OverlapError{Track: track.ID, Start: moved.Start(), End: moved.End()}
		}
	}

	item.setStart(newStart)
	sortItems(track)
	return nil
}

// MoveItemToTrack relocates an item to a same-kind track at newStart.
// Validation happens before any mutation, so a failed move leaves both
// tracks untouched.
func (p *Project) MoveItemToTrack(itemID, newTrackID uuid.UUID, newStart TimeUs) error {
	item, sourceTI, sourceII, ok := p.FindItem(itemID)
	if !ok {
		return &NotFoundError{Kind: "item", ID: itemID}
	}
	target := p.TrackByID(newTrackID)
	if target == nil {
		return &NotFoundError{Kind: "track", ID: newTrackID}
	}
	source := &p.Timeline.Tracks[sourceTI]
	if target.Kind != source.Kind {
		return &KindMismatchError{Expected: source.Kind, Actual: target.Kind}
	}
	if newStart < 0 {
		return &InvalidRangeError{Field: "start", Value: newStart}
	}

	moved := item.clone()
	moved.setStart(newStart)
	for _, existing := range target.Items {
		if existing.ItemID() == itemID {
			continue
		}
		if overlaps(existing, moved) {
			return &OverlapError{Track: target.ID, Start: moved.Start(), End: moved.End()}
		}
	}

	source.Items = append(source.Items[:sourceII], source.Items[sourceII+1:]...)
	item.setStart(newStart)
	item.setTrack(newTrackID)
	target.Items = append(target.Items, item)
	sortItems(target)
	return nil
}

// Trim adjusts one edge of an item. For source-backed clips the in edge
// moves SourceIn while holding the timeline end fixed, and the out edge
// moves SourceOut while holding the timeline start fixed. For overlays
// newTime is the new timeline position of the trimmed edge. The trimmed
// interval must keep a positive duration, stay within the probed asset
// duration when known, and must not collide with siblings.
func (p *Project) Trim(itemID uuid.UUID, edge Edge, newTime TimeUs) error {
	item, ti, ii, ok := p.FindItem(itemID)
	if !ok {
		return &NotFoundError{Kind: "item", ID: itemID}
	}

	switch it := item.(type) {
	case *VideoClip:
		if err := p.trimSourceClip(edge, newTime, it.Asset, &it.SourceIn, &it.SourceOut, &it.StartUs); err != nil {
			return err
		}
	case *AudioClip:
		if err := p.trimSourceClip(edge, newTime, it.Asset, &it.SourceIn, &it.SourceOut, &it.StartUs); err != nil {
			return err
		}
	case *ImageOverlay:
		if err := trimOverlay(edge, newTime, &it.StartUs, &it.DurationUs); err != nil {
			return err
		}
	case *TextOverlay:
		if err := trimOverlay(edge, newTime, &it.StartUs, &it.DurationUs); err != nil {
			return err
		}
	}

	track := &p.Timeline.Tracks[ti]
	for i, existing := range track.Items {
		if i == ii {
			continue
		}
		if overlaps(existing, item) {
			return &OverlapError{Track: track.ID, Start: item.Start(), End: item.End()}
		}
	}
	sortItems(track)
	return nil
}

// trimSourceClip applies a trim to a clip with a source range. The edge
// not being trimmed keeps its timeline position.
func (p *Project) trimSourceClip(edge Edge, newTime TimeUs, assetID uuid.UUID, in, out, start *TimeUs) error {
	switch edge {
	case EdgeIn:
		if newTime < 0 {
			return &InvalidRangeError{Field: "source_in", Value: newTime}
		}
		if newTime >= *out {
			return &InvalidRangeError{Field: "source_in", Value: newTime}
		}
		end := *start + (*out - *in)
		*in = newTime
		*start = end - (*out - *in)
		if *start < 0 {
			return &InvalidRangeError{Field: "start", Value: *start}
		}
	case EdgeOut:
		if newTime <= *in {
			return &InvalidRangeError{Field: "source_out", Value: newTime}
		}
		if asset := p.AssetByID(assetID); asset != nil && asset.Probe != nil && newTime > asset.Probe.Duration {
			return &InvalidRangeError{Field: "source_out", Value: newTime}
		}
		*out = newTime
	default:
		return &ValidationError{Reason: "unknown trim edge"}
	}
	return nil
}

// trimOverlay applies a trim where newTime is a timeline position.
func trimOverlay(edge Edge, newTime TimeUs, start, duration *TimeUs) error {
	end := *start + *duration
	switch edge {
	case EdgeIn:
		if newTime < 0 || newTime >= end {
			return &InvalidRangeError{Field: "start", Value: newTime}
		}
		*duration = end - newTime
		*start = newTime
	case EdgeOut:
		if newTime <= *start {
			return &InvalidRangeError{Field: "duration", Value: newTime - *start}
		}
		*duration = newTime - *start
	default:
		return &ValidationError{Reason: "unknown trim edge"}
	}
	return nil
}

// SplitAt cuts an item in two at a position strictly inside its interval.
// The left half keeps the original id; the right half gets a fresh one.
// Source ranges partition at the elapsed timeline offset, so rejoining
// the halves reconstructs the original exactly.
func (p *Project) SplitAt(itemID uuid.UUID, splitTime TimeUs) (leftID, rightID uuid.UUID, err error) {
	item, ti, ii, ok := p.FindItem(itemID)
	if !ok {
		return uuid.Nil, uuid.Nil, &NotFoundError{Kind: "item", ID: itemID}
	}
	start, end := item.Start(), item.End()
	if splitTime <= start || splitTime >= end {
		return uuid.Nil, uuid.Nil, &InvalidRangeError{Field: "split_time", Value: splitTime}
	}

	rightID = uuid.New()
	leftID = item.ItemID()
	var left, right Item

	switch it := item.(type) {
	case *VideoClip:
		splitSource := it.SourceIn + (splitTime - it.StartUs)
		l, r := *it, *it
		l.SourceOut = splitSource
		r.ID = rightID
		r.StartUs = splitTime
		r.SourceIn = splitSource
		left, right = &l, &r
	case *AudioClip:
		splitSource := it.SourceIn + (splitTime - it.StartUs)
		l, r := *it, *it
		l.SourceOut = splitSource
		r.ID = rightID
		r.StartUs = splitTime
		r.SourceIn = splitSource
		left, right = &l, &r
	case *ImageOverlay:
		l, r := *it, *it
		l.DurationUs = splitTime - it.StartUs
		r.ID = rightID
		r.StartUs = splitTime
		r.DurationUs = end - splitTime
		left, right = &l, &r
	case *TextOverlay:
		l, r := *it, *it
		l.DurationUs = splitTime - it.StartUs
		r.ID = rightID
		r.StartUs = splitTime
		r.DurationUs = end - splitTime
		left, right = &l, &r
	}

	track := &p.Timeline.Tracks[ti]
	track.Items[ii] = left
	track.Items = append(track.Items, nil)
	copy(track.Items[ii+2:], track.Items[ii+1:])
	track.Items[ii+1] = right
	return leftID, rightID, nil
}

// AddTrack appends an empty track of the given kind and returns it.
func (p *Project) AddTrack(kind TrackKind) (*Track, error) {
	if !ValidTrackKinds[kind] {
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown track kind %q", kind)}
	}
	p.Timeline.Tracks = append(p.Timeline.Tracks, Track{ID: uuid.New(), Kind: kind})
	return &p.Timeline.Tracks[len(p.Timeline.Tracks)-1], nil
}

// InitDefaultTracks creates one Video and one Audio track when the
// timeline has none.
func (p *Project) InitDefaultTracks() {
	if len(p.Timeline.Tracks) > 0 {
		return
	}
	p.Timeline.Tracks = append(p.Timeline.Tracks,
		Track{ID: uuid.New(), Kind: TrackVideo},
		Track{ID: uuid.New(), Kind: TrackAudio},
	)
}

// AddMarker places a labelled marker and returns it.
func (p *Project) AddMarker(t TimeUs, label string) (Marker, error) {
	if t < 0 {
		return Marker{}, &InvalidRangeError{Field: "time", Value: t}
	}
	m := Marker{ID: uuid.New(), Time: t, Label: label}
	p.Timeline.Markers = append(p.Timeline.Markers, m)
	sort.SliceStable(p.Timeline.Markers, func(i, j int) bool {
		return p.Timeline.Markers[i].Time < p.Timeline.Markers[j].Time
	})
	return m, nil
}

// RemoveMarker deletes a marker by id.
func (p *Project) RemoveMarker(id uuid.UUID) error {
	for i, m := range p.Timeline.Markers {
		if m.ID == id {
			p.Timeline.Markers = append(p.Timeline.Markers[:i], p.Timeline.Markers[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Kind: "marker", ID: id}
}

// RemoveAsset deletes an asset from the bin. An asset still referenced by
// a clip is refused; the caller deletes the clips first.
func (p *Project) RemoveAsset(id uuid.UUID) error {
	asset := p.AssetByID(id)
	if asset == nil {
		return &NotFoundError{Kind: "asset", ID: id}
	}
	for _, tr := range p.Timeline.Tracks {
		for _, it := range tr.Items {
			if ref, ok := it.AssetID(); ok && ref == id {
				return &ValidationError{Reason: fmt.Sprintf("asset %s is in use by item %s", id, it.ItemID())}
			}
		}
	}
	for i := range p.Assets {
		if p.Assets[i].ID == id {
			p.Assets = append(p.Assets[:i], p.Assets[i+1:]...)
			break
		}
	}
	return nil
}

// sortItems restores the per-track start ordering invariant.
func sortItems(t *Track) {
	sort.SliceStable(t.Items, func(i, j int) bool {
		return t.Items[i].Start() < t.Items[j].Start()
	})
}
