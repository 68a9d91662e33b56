package timeline

import "github.com/google/uuid"

// Item is the tagged union of everything placeable on a track. It is a
// sealed interface: exactly VideoClip, AudioClip, ImageOverlay and
// TextOverlay implement it. Dispatch is by type switch, never by a shared
// mutable base.
type Item interface {
	// ItemID returns the item's unique id.
	ItemID() uuid.UUID
	// TrackID returns the id of the owning track.
	TrackID() uuid.UUID
	// AssetID returns the referenced asset, if the variant has one.
	AssetID() (uuid.UUID, bool)
	// Start returns the timeline position of the item's left edge.
	Start() TimeUs
	// Duration returns the effective timeline duration (> 0 when valid).
	Duration() TimeUs
	// End returns Start()+Duration(); intervals are half-open [Start, End).
	End() TimeUs

	clone() Item
	setStart(TimeUs)
	setTrack(uuid.UUID)
}

// VideoClip plays a slice [SourceIn, SourceOut) of a video asset. Its
// timeline duration is derived from the source range.
type VideoClip struct {
	ID        uuid.UUID `json:"id"`
	Asset     uuid.UUID `json:"asset_id"`
	Track     uuid.UUID `json:"track_id"`
	StartUs   TimeUs    `json:"start_us"`
	SourceIn  TimeUs    `json:"source_in_us"`
	SourceOut TimeUs    `json:"source_out_us"`
}

func (c *VideoClip) ItemID() uuid.UUID          { return c.ID }
func (c *VideoClip) TrackID() uuid.UUID         { return c.Track }
func (c *VideoClip) AssetID() (uuid.UUID, bool) { return c.Asset, true }
func (c *VideoClip) Start() TimeUs              { return c.StartUs }
func (c *VideoClip) Duration() TimeUs           { return c.SourceOut - c.SourceIn }
func (c *VideoClip) End() TimeUs                { return c.StartUs + c.Duration() }

func (c *VideoClip) clone() Item           { cp := *c; return &cp }
func (c *VideoClip) setStart(t TimeUs)     { c.StartUs = t }
func (c *VideoClip) setTrack(id uuid.UUID) { c.Track = id }

// AudioClip plays a slice of an audio asset at a volume in [0, 2].
type AudioClip struct {
	ID        uuid.UUID `json:"id"`
	Asset     uuid.UUID `json:"asset_id"`
	Track     uuid.UUID `json:"track_id"`
	StartUs   TimeUs    `json:"start_us"`
	SourceIn  TimeUs    `json:"source_in_us"`
	SourceOut TimeUs    `json:"source_out_us"`
	Volume    float64   `json:"volume"`
}

func (c *AudioClip) ItemID() uuid.UUID          { return c.ID }
func (c *AudioClip) TrackID() uuid.UUID         { return c.Track }
func (c *AudioClip) AssetID() (uuid.UUID, bool) { return c.Asset, true }
func (c *AudioClip) Start() TimeUs              { return c.StartUs }
func (c *AudioClip) Duration() TimeUs           { return c.SourceOut - c.SourceIn }
func (c *AudioClip) End() TimeUs                { return c.StartUs + c.Duration() }

func (c *AudioClip) clone() Item           { cp := *c; return &cp }
func (c *AudioClip) setStart(t TimeUs)     { c.StartUs = t }
func (c *AudioClip) setTrack(id uuid.UUID) { c.Track = id }

// ImageOverlay composites a still image over the program for DurationUs,
// at an opacity in [0, 1].
type ImageOverlay struct {
	ID         uuid.UUID `json:"id"`
	Asset      uuid.UUID `json:"asset_id"`
	Track      uuid.UUID `json:"track_id"`
	StartUs    TimeUs    `json:"start_us"`
	DurationUs TimeUs    `json:"duration_us"`
	X          int       `json:"x"`
	Y          int       `json:"y"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Opacity    float64   `json:"opacity"`
}

func (o *ImageOverlay) ItemID() uuid.UUID          { return o.ID }
func (o *ImageOverlay) TrackID() uuid.UUID         { return o.Track }
func (o *ImageOverlay) AssetID() (uuid.UUID, bool) { return o.Asset, true }
func (o *ImageOverlay) Start() TimeUs              { return o.StartUs }
func (o *ImageOverlay) Duration() TimeUs           { return o.DurationUs }
func (o *ImageOverlay) End() TimeUs                { return o.StartUs + o.DurationUs }

func (o *ImageOverlay) clone() Item           { cp := *o; return &cp }
func (o *ImageOverlay) setStart(t TimeUs)     { o.StartUs = t }
func (o *ImageOverlay) setTrack(id uuid.UUID) { o.Track = id }

// TextOverlay renders styled text over the program for DurationUs.
// It references no asset.
type TextOverlay struct {
	ID         uuid.UUID `json:"id"`
	Track      uuid.UUID `json:"track_id"`
	StartUs    TimeUs    `json:"start_us"`
	DurationUs TimeUs    `json:"duration_us"`
	Text       string    `json:"text"`
	FontSize   int       `json:"font_size"`
	Color      string    `json:"color"`
	X          int       `json:"x"`
	Y          int       `json:"y"`
}

func (o *TextOverlay) ItemID() uuid.UUID          { return o.ID }
func (o *TextOverlay) TrackID() uuid.UUID         { return o.Track }
func (o *TextOverlay) AssetID() (uuid.UUID, bool) { return uuid.UUID{}, false }
func (o *TextOverlay) Start() TimeUs              { return o.StartUs }
func (o *TextOverlay) Duration() TimeUs           { return o.DurationUs }
func (o *TextOverlay) End() TimeUs                { return o.StartUs + o.DurationUs }

func (o *TextOverlay) clone() Item           { cp := *o; return &cp }
func (o *TextOverlay) setStart(t TimeUs)     { o.StartUs = t }
func (o *TextOverlay) setTrack(id uuid.UUID) { o.Track = id }

// CloneItem returns a deep copy of an item.
func CloneItem(it Item) Item {
	return it.clone()
}

// itemKind maps an item variant to the track kind that may hold it.
func itemKind(it Item) TrackKind {
	switch it.(type) {
	case *VideoClip:
		return TrackVideo
	case *AudioClip:
		return TrackAudio
	case *ImageOverlay:
		return TrackOverlayImage
	case *TextOverlay:
		return TrackOverlayText
	default:
		// Sealed union; unreachable for structurally valid documents.
		return ""
	}
}

// overlaps reports whether two items' half-open timeline intervals
// intersect.
func overlaps(a, b Item) bool {
	return a.Start() < b.End() && b.Start() < a.End()
}
