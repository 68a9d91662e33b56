package timeline

import (
	"github.com/google/uuid"
)

// AssetKind classifies imported media.
type AssetKind string

const (
	AssetVideo AssetKind = "Video"
	AssetAudio AssetKind = "Audio"
	AssetImage AssetKind = "Image"
)

// ValidAssetKinds defines the allowed asset kinds.
var ValidAssetKinds = map[AssetKind]bool{
	AssetVideo: true,
	AssetAudio: true,
	AssetImage: true,
}

// ProbeResult holds media metadata reported by the prober. The document
// stores it verbatim and never re-derives any field.
type ProbeResult struct {
	Duration        TimeUs  `json:"duration_us"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	FPS             float64 `json:"fps"`
	Codec           string  `json:"codec"`
	AudioChannels   int     `json:"audio_channels"`
	AudioSampleRate int     `json:"audio_sample_rate"`
}

// Asset is an imported media file referenced by clips. Probe is nil until
// the prober has reported; a nil probe never blocks structural edits.
type Asset struct {
	ID    uuid.UUID    `json:"id"`
	Name  string       `json:"name"`
	Path  string       `json:"path"`
	Kind  AssetKind    `json:"kind"`
	Probe *ProbeResult `json:"probe,omitempty"`
}

// TrackKind classifies a track and constrains which item variant it holds.
type TrackKind string

const (
	TrackVideo        TrackKind = "Video"
	TrackAudio        TrackKind = "Audio"
	TrackOverlayImage TrackKind = "OverlayImage"
	TrackOverlayText  TrackKind = "OverlayText"
)

// ValidTrackKinds defines the allowed track kinds.
var ValidTrackKinds = map[TrackKind]bool{
	TrackVideo:        true,
	TrackAudio:        true,
	TrackOverlayImage: true,
	TrackOverlayText:  true,
}

// ParseTrackKind converts a wire string to a TrackKind.
func ParseTrackKind(s string) (TrackKind, error) {
	k := TrackKind(s)
	if !ValidTrackKinds[k] {
		return "", &ValidationError{Reason: "unknown track kind: " + s}
	}
	return k, nil
}

// Track is an ordered lane of same-kind items. Items are kept sorted by
// Start; intervals are pairwise disjoint. Additional Video tracks beyond
// the first are picture-in-picture layers, later index on top.
type Track struct {
	ID    uuid.UUID `json:"id"`
	Kind  TrackKind `json:"kind"`
	Items []Item    `json:"items"`
}

// ItemByID returns the item with the given id, or nil.
func (t *Track) ItemByID(id uuid.UUID) Item {
	for _, it := range t.Items {
		if it.ItemID() == id {
			return it
		}
	}
	return nil
}

// Marker is a labelled point of interest on the timeline.
type Marker struct {
	ID    uuid.UUID `json:"id"`
	Time  TimeUs    `json:"time_us"`
	Label string    `json:"label"`
}

// Timeline is the track/marker portion of a project.
type Timeline struct {
	Tracks  []Track  `json:"tracks"`
	Markers []Marker `json:"markers"`
}

// ProjectSettings holds the output frame geometry and rates.
type ProjectSettings struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FPS        float64 `json:"fps"`
	SampleRate int     `json:"sample_rate"`
}

// Project is the whole editable document. It is a plain value tree;
// ownership and mutual exclusion live in internal/editor.
type Project struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Settings ProjectSettings `json:"settings"`
	Assets   []Asset         `json:"assets"`
	Timeline Timeline        `json:"timeline"`
}

// NewProject creates an empty project with the given name and settings.
func NewProject(name string, settings ProjectSettings) *Project {
	return &Project{
		ID:       uuid.New(),
		Name:     name,
		Settings: settings,
	}
}

// AssetByID returns the asset with the given id, or nil.
func (p *Project) AssetByID(id uuid.UUID) *Asset {
	for i := range p.Assets {
		if p.Assets[i].ID == id {
			return &p.Assets[i]
		}
	}
	return nil
}

// TrackByID returns the track with the given id, or nil.
func (p *Project) TrackByID(id uuid.UUID) *Track {
	for i := range p.Timeline.Tracks {
		if p.Timeline.Tracks[i].ID == id {
			return &p.Timeline.Tracks[i]
		}
	}
	return nil
}

// FindItem returns the item with the given id along with its track and
// positional indices, or ok=false.
func (p *Project) FindItem(id uuid.UUID) (item Item, trackIdx, itemIdx int, ok bool) {
	for ti := range p.Timeline.Tracks {
		for ii, it := range p.Timeline.Tracks[ti].Items {
			if it.ItemID() == id {
				return it, ti, ii, true
			}
		}
	}
	return nil, 0, 0, false
}

// End returns the end of the last item across all tracks, or zero for an
// empty timeline.
func (p *Project) End() TimeUs {
	var end TimeUs
	for _, tr := range p.Timeline.Tracks {
		for _, it := range tr.Items {
			if e := it.End(); e > end {
				end = e
			}
		}
	}
	return end
}

// Clone returns a deep copy of the project. Snapshots handed to history
// and to external collaborators must not alias the live document.
func (p *Project) Clone() *Project {
	cp := *p
	cp.Assets = make([]Asset, len(p.Assets))
	for i, a := range p.Assets {
		cp.Assets[i] = a
		if a.Probe != nil {
			probe := *a.Probe
			cp.Assets[i].Probe = &probe
		}
	}
	cp.Timeline.Tracks = make([]Track, len(p.Timeline.Tracks))
	for i, tr := range p.Timeline.Tracks {
		cp.Timeline.Tracks[i] = tr
		cp.Timeline.Tracks[i].Items = make([]Item, len(tr.Items))
		for j, it := range tr.Items {
			cp.Timeline.Tracks[i].Items[j] = it.clone()
		}
	}
	cp.Timeline.Markers = make([]Marker, len(p.Timeline.Markers))
	copy(cp.Timeline.Markers, p.Timeline.Markers)
	return &cp
}

// Preset1080p is 1920x1080 at 30 fps.
func Preset1080p() ProjectSettings {
	return ProjectSettings{Width: 1920, Height: 1080, FPS: 30, SampleRate: 48000}
}

// Preset1080p60 is 1920x1080 at 60 fps.
func Preset1080p60() ProjectSettings {
	return ProjectSettings{Width: 1920, Height: 1080, FPS: 60, SampleRate: 48000}
}

// Preset720p is 1280x720 at 30 fps.
func Preset720p() ProjectSettings {
	return ProjectSettings{Width: 1280, Height: 720, FPS: 30, SampleRate: 48000}
}

// Preset4K is 3840x2160 at 30 fps.
func Preset4K() ProjectSettings {
	return ProjectSettings{Width: 3840, Height: 2160, FPS: 30, SampleRate: 48000}
}

// PresetShorts is vertical 1080x1920 at 30 fps.
func PresetShorts() ProjectSettings {
	return ProjectSettings{Width: 1080, Height: 1920, FPS: 30, SampleRate: 48000}
}
