package timeline

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestProject builds a 1080p project with one Video and one Audio
// track and a probed 10s video asset.
func newTestProject(t *testing.T) (*Project, *Track, *Asset) {
	t.Helper()
	p := NewProject("test", Preset1080p())
	p.InitDefaultTracks()
	p.Assets = append(p.Assets, Asset{
		ID:   uuid.New(),
		Name: "clip.mp4",
		Path: "/media/clip.mp4",
		Kind: AssetVideo,
		Probe: &ProbeResult{
			Duration: 10 * Second,
			Width:    1920,
			Height:   1080,
			FPS:      30,
			Codec:    "h264",
		},
	})
	return p, &p.Timeline.Tracks[0], &p.Assets[0]
}

func placeClip(t *testing.T, p *Project, track *Track, asset *Asset, start, duration TimeUs) *VideoClip {
	t.Helper()
	clip := &VideoClip{
		ID:        uuid.New(),
		Asset:     asset.ID,
		Track:     track.ID,
		StartUs:   start,
		SourceIn:  0,
		SourceOut: duration,
	}
	require.NoError(t, p.AddItem(track.ID, clip))
	return clip
}

func TestAddItemRejectsOverlap(t *testing.T) {
	p, track, asset := newTestProject(t)
	placeClip(t, p, track, asset, 0, 3*Second)

	second := &VideoClip{
		ID:        uuid.New(),
		Asset:     asset.ID,
		Track:     track.ID,
		StartUs:   2 * Second,
		SourceOut: 3 * Second,
	}
	err := p.AddItem(track.ID, second)
	require.Error(t, err)
	assert.True(t, IsOverlap(err))
	assert.Len(t, track.Items, 1)
}

func TestAddItemAdjacentIntervalsAllowed(t *testing.T) {
	p, track, asset := newTestProject(t)
	placeClip(t, p, track, asset, 0, 3*Second)

	// [0,3s) and [3s,6s) touch but do not overlap.
	placeClip(t, p, track, asset, 3*Second, 3*Second)
	assert.Len(t, track.Items, 2)
}

func TestAddItemKindMismatch(t *testing.T) {
	p, _, asset := newTestProject(t)
	audioTrack := &p.Timeline.Tracks[1]

	clip := &VideoClip{ID: uuid.New(), Asset: asset.ID, SourceOut: Second}
	err := p.AddItem(audioTrack.ID, clip)
	require.Error(t, err)
	assert.True(t, IsKindMismatch(err))
}

func TestAddItemInvalidRanges(t *testing.T) {
	p, track, asset := newTestProject(t)

	negStart := &VideoClip{ID: uuid.New(), Asset: asset.ID, StartUs: -1, SourceOut: Second}
	assert.True(t, IsInvalidRange(p.AddItem(track.ID, negStart)))

	zeroDur := &VideoClip{ID: uuid.New(), Asset: asset.ID, SourceIn: Second, SourceOut: Second}
	assert.True(t, IsInvalidRange(p.AddItem(track.ID, zeroDur)))
}

func TestAddItemValidatesVariantFields(t *testing.T) {
	p, _, _ := newTestProject(t)
	it, err := p.AddTrack(TrackOverlayImage)
	require.NoError(t, err)
	imgTrack := it.ID
	tt, err := p.AddTrack(TrackOverlayText)
	require.NoError(t, err)
	textTrack := tt.ID

	imgAsset := uuid.New()
	p.Assets = append(p.Assets, Asset{ID: imgAsset, Name: "logo.png", Kind: AssetImage})

	zeroWidth := &ImageOverlay{ID: uuid.New(), Asset: imgAsset, DurationUs: Second, Height: 240, Opacity: 1}
	assert.True(t, IsInvalidRange(p.AddItem(imgTrack, zeroWidth)))

	badOpacity := &ImageOverlay{ID: uuid.New(), Asset: imgAsset, DurationUs: Second, Width: 320, Height: 240, Opacity: 2}
	assert.True(t, IsInvalidRange(p.AddItem(imgTrack, badOpacity)))

	zeroFont := &TextOverlay{ID: uuid.New(), DurationUs: Second, Text: "title"}
	assert.True(t, IsInvalidRange(p.AddItem(textTrack, zeroFont)))

	require.NoError(t, Validate(p), "rejected adds must leave the document valid")
}

func TestAddClipUsesProbeDuration(t *testing.T) {
	p, track, asset := newTestProject(t)

	item, err := p.AddClip(asset.ID, track.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 10*Second, item.Duration())
}

func TestAddClipWithoutProbeDefaultsToFiveSeconds(t *testing.T) {
	p, track, _ := newTestProject(t)
	p.Assets = append(p.Assets, Asset{
		ID:   uuid.New(),
		Name: "raw.mp4",
		Path: "/media/raw.mp4",
		Kind: AssetVideo,
	})

	item, err := p.AddClip(p.Assets[1].ID, track.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 5*Second, item.Duration())
}

func TestAddClipUnknownAsset(t *testing.T) {
	p, track, _ := newTestProject(t)
	_, err := p.AddClip(uuid.New(), track.ID, 0)
	assert.True(t, IsNotFound(err))
}

func TestMoveItemRejectsCollision(t *testing.T) {
	p, track, asset := newTestProject(t)
	placeClip(t, p, track, asset, 3*Second, 3*Second)
	mover := placeClip(t, p, track, asset, 8*Second, 3*Second)

	// Proposed [2s,5s) overlaps the sibling at [3s,6s).
	err := p.MoveItem(mover.ID, 2*Second)
	require.Error(t, err)
	assert.True(t, IsOverlap(err))
	assert.Equal(t, 8*Second, mover.StartUs, "failed move must not change the item")
}

func TestMoveItemKeepsTrackSorted(t *testing.T) {
	p, track, asset := newTestProject(t)
	a := placeClip(t, p, track, asset, 0, 2*Second)
	b := placeClip(t, p, track, asset, 5*Second, 2*Second)

	require.NoError(t, p.MoveItem(a.ID, 8*Second))
	assert.Equal(t, b.ID, track.Items[0].ItemID())
	assert.Equal(t, a.ID, track.Items[1].ItemID())
}

func TestMoveItemIgnoresOwnInterval(t *testing.T) {
	p, track, asset := newTestProject(t)
	clip := placeClip(t, p, track, asset, 0, 3*Second)

	// Moving one microsecond right overlaps the old position of the
	// item itself, which must not count as a collision.
	require.NoError(t, p.MoveItem(clip.ID, 1))
	assert.Equal(t, TimeUs(1), clip.StartUs)
}

func TestMoveItemToTrack(t *testing.T) {
	p, track, asset := newTestProject(t)
	other, err := p.AddTrack(TrackVideo)
	require.NoError(t, err)
	clip := placeClip(t, p, track, asset, 0, 3*Second)

	require.NoError(t, p.MoveItemToTrack(clip.ID, other.ID, 2*Second))
	assert.Empty(t, p.Timeline.Tracks[0].Items)
	require.Len(t, p.TrackByID(other.ID).Items, 1)
	assert.Equal(t, 2*Second, clip.StartUs)
	assert.Equal(t, other.ID, clip.Track)
}

func TestMoveItemToTrackKindMismatch(t *testing.T) {
	p, track, asset := newTestProject(t)
	clip := placeClip(t, p, track, asset, 0, 3*Second)
	audioTrack := p.Timeline.Tracks[1]

	err := p.MoveItemToTrack(clip.ID, audioTrack.ID, 0)
	require.Error(t, err)
	assert.True(t, IsKindMismatch(err))
	assert.Len(t, p.Timeline.Tracks[0].Items, 1, "failed move must leave the source track intact")
}

func TestMoveItemToTrackCollisionLeavesBothTracksUntouched(t *testing.T) {
	p, track, asset := newTestProject(t)
	other, err := p.AddTrack(TrackVideo)
	require.NoError(t, err)
	otherID := other.ID
	clip := placeClip(t, p, track, asset, 0, 3*Second)

	blocker := &VideoClip{ID: uuid.New(), Asset: asset.ID, StartUs: Second, SourceOut: 3 * Second}
	require.NoError(t, p.AddItem(otherID, blocker))

	err = p.MoveItemToTrack(clip.ID, otherID, 2*Second)
	require.Error(t, err)
	assert.True(t, IsOverlap(err))
	assert.Len(t, p.Timeline.Tracks[0].Items, 1)
	assert.Len(t, p.TrackByID(otherID).Items, 1)
	assert.Equal(t, ZeroTime, clip.StartUs)
}

func TestTrimInHoldsTimelineEndFixed(t *testing.T) {
	p, track, asset := newTestProject(t)
	clip := placeClip(t, p, track, asset, 2*Second, 6*Second) // covers [2s,8s)

	require.NoError(t, p.Trim(clip.ID, EdgeIn, Second))
	assert.Equal(t, Second, clip.SourceIn)
	assert.Equal(t, 3*Second, clip.StartUs)
	assert.Equal(t, 8*Second, clip.End(), "timeline end must not move on an in trim")
}

func TestTrimOutHoldsTimelineStartFixed(t *testing.T) {
	p, track, asset := newTestProject(t)
	clip := placeClip(t, p, track, asset, 2*Second, 6*Second)

	require.NoError(t, p.Trim(clip.ID, EdgeOut, 4*Second))
	assert.Equal(t, 2*Second, clip.StartUs)
	assert.Equal(t, 4*Second, clip.SourceOut)
	assert.Equal(t, 6*Second, clip.End())
}

func TestTrimRejectsEmptyInterval(t *testing.T) {
	p, track, asset := newTestProject(t)
	clip := placeClip(t, p, track, asset, 0, 3*Second)

	err := p.Trim(clip.ID, EdgeIn, 3*Second)
	require.Error(t, err)
	assert.True(t, IsInvalidRange(err))
	assert.Equal(t, ZeroTime, clip.SourceIn, "failed trim must not change the item")

	err = p.Trim(clip.ID, EdgeOut, 0)
	require.Error(t, err)
	assert.True(t, IsInvalidRange(err))
	assert.Equal(t, 3*Second, clip.SourceOut)
}

func TestTrimOutBeyondProbedDuration(t *testing.T) {
	p, track, asset := newTestProject(t)
	clip := placeClip(t, p, track, asset, 0, 3*Second)

	err := p.Trim(clip.ID, EdgeOut, 11*Second) // asset is 10s
	require.Error(t, err)
	assert.True(t, IsInvalidRange(err))
}

func TestTrimOverlayUsesTimelinePositions(t *testing.T) {
	p := NewProject("test", Preset1080p())
	overlayTrack, err := p.AddTrack(TrackOverlayText)
	require.NoError(t, err)

	overlay := &TextOverlay{
		ID:         uuid.New(),
		StartUs:    2 * Second,
		DurationUs: 4 * Second, // covers [2s,6s)
		Text:       "title",
		FontSize:   32,
		Color:      "#ffffff",
	}
	require.NoError(t, p.AddItem(overlayTrack.ID, overlay))

	require.NoError(t, p.Trim(overlay.ID, EdgeIn, 3*Second))
	assert.Equal(t, 3*Second, overlay.StartUs)
	assert.Equal(t, 6*Second, overlay.End())

	require.NoError(t, p.Trim(overlay.ID, EdgeOut, 5*Second))
	assert.Equal(t, 3*Second, overlay.StartUs)
	assert.Equal(t, 5*Second, overlay.End())
}

func TestSplitPartitionsSourceRange(t *testing.T) {
	p, track, asset := newTestProject(t)
	clip := placeClip(t, p, track, asset, 0, 3*Second)

	leftID, rightID, err := p.SplitAt(clip.ID, Second)
	require.NoError(t, err)
	assert.Equal(t, clip.ID, leftID, "left half keeps the original id")
	assert.NotEqual(t, leftID, rightID)

	require.Len(t, track.Items, 2)
	left := track.Items[0].(*VideoClip)
	right := track.Items[1].(*VideoClip)

	assert.Equal(t, ZeroTime, left.StartUs)
	assert.Equal(t, ZeroTime, left.SourceIn)
	assert.Equal(t, Second, left.SourceOut)

	assert.Equal(t, Second, right.StartUs)
	assert.Equal(t, Second, right.SourceIn)
	assert.Equal(t, 3*Second, right.SourceOut)

	// Rejoining the halves reconstructs the original exactly.
	assert.Equal(t, left.End(), right.StartUs)
	assert.Equal(t, left.SourceOut, right.SourceIn)
}

func TestSplitRespectsNonZeroSourceIn(t *testing.T) {
	p, track, asset := newTestProject(t)
	clip := &VideoClip{
		ID:        uuid.New(),
		Asset:     asset.ID,
		Track:     track.ID,
		StartUs:   4 * Second,
		SourceIn:  2 * Second,
		SourceOut: 8 * Second, // covers [4s,10s)
	}
	require.NoError(t, p.AddItem(track.ID, clip))

	_, rightID, err := p.SplitAt(clip.ID, 6*Second)
	require.NoError(t, err)

	right := track.ItemByID(rightID).(*VideoClip)
	// Elapsed timeline offset is 2s, so the cut lands at source 4s.
	assert.Equal(t, 4*Second, right.SourceIn)
	assert.Equal(t, 8*Second, right.SourceOut)
	assert.Equal(t, 6*Second, right.StartUs)
}

func TestSplitRejectsBoundaries(t *testing.T) {
	p, track, asset := newTestProject(t)
	clip := placeClip(t, p, track, asset, 0, 3*Second)

	for _, at := range []TimeUs{0, 3 * Second, -Second, 4 * Second} {
		_, _, err := p.SplitAt(clip.ID, at)
		require.Error(t, err, "split at %v must fail", at)
		assert.True(t, IsInvalidRange(err))
	}
	assert.Len(t, track.Items, 1)
}

func TestSplitTextOverlayDuplicatesContent(t *testing.T) {
	p := NewProject("test", Preset1080p())
	overlayTrack, err := p.AddTrack(TrackOverlayText)
	require.NoError(t, err)

	overlay := &TextOverlay{
		ID:         uuid.New(),
		StartUs:    0,
		DurationUs: 4 * Second,
		Text:       "lower third",
		FontSize:   24,
		Color:      "#ffcc00",
	}
	require.NoError(t, p.AddItem(overlayTrack.ID, overlay))

	_, rightID, err := p.SplitAt(overlay.ID, Second)
	require.NoError(t, err)

	right := p.TrackByID(overlayTrack.ID).ItemByID(rightID).(*TextOverlay)
	assert.Equal(t, "lower third", right.Text)
	assert.Equal(t, Second, right.StartUs)
	assert.Equal(t, 3*Second, right.DurationUs)
}

func TestRemoveItem(t *testing.T) {
	p, track, asset := newTestProject(t)
	clip := placeClip(t, p, track, asset, 0, 3*Second)

	removed, err := p.RemoveItem(clip.ID)
	require.NoError(t, err)
	assert.Equal(t, clip.ID, removed.ItemID())
	assert.Empty(t, track.Items)

	_, err = p.RemoveItem(clip.ID)
	assert.True(t, IsNotFound(err))
}

func TestMarkersStaySorted(t *testing.T) {
	p, _, _ := newTestProject(t)

	_, err := p.AddMarker(5*Second, "outro")
	require.NoError(t, err)
	m, err := p.AddMarker(Second, "intro")
	require.NoError(t, err)

	require.Len(t, p.Timeline.Markers, 2)
	assert.Equal(t, "intro", p.Timeline.Markers[0].Label)

	require.NoError(t, p.RemoveMarker(m.ID))
	assert.Len(t, p.Timeline.Markers, 1)
	assert.True(t, IsNotFound(p.RemoveMarker(m.ID)))
}

func TestAddMarkerNegativeTime(t *testing.T) {
	p, _, _ := newTestProject(t)
	_, err := p.AddMarker(-1, "bad")
	assert.True(t, IsInvalidRange(err))
}

func TestRemoveAssetRefusedWhileReferenced(t *testing.T) {
	p, track, asset := newTestProject(t)
	clip := placeClip(t, p, track, asset, 0, 3*Second)

	err := p.RemoveAsset(asset.ID)
	require.Error(t, err)
	assert.Len(t, p.Assets, 1)

	_, err = p.RemoveItem(clip.ID)
	require.NoError(t, err)
	require.NoError(t, p.RemoveAsset(asset.ID))
	assert.Empty(t, p.Assets)
}

func TestProjectEnd(t *testing.T) {
	p, track, asset := newTestProject(t)
	assert.Equal(t, ZeroTime, p.End())

	placeClip(t, p, track, asset, 2*Second, 3*Second)
	assert.Equal(t, 5*Second, p.End())

	placeClip(t, p, track, asset, 6*Second, Second)
	assert.Equal(t, 7*Second, p.End())
}

func TestInitDefaultTracksIdempotent(t *testing.T) {
	p := NewProject("test", Preset1080p())
	p.InitDefaultTracks()
	require.Len(t, p.Timeline.Tracks, 2)
	assert.Equal(t, TrackVideo, p.Timeline.Tracks[0].Kind)
	assert.Equal(t, TrackAudio, p.Timeline.Tracks[1].Kind)

	p.InitDefaultTracks()
	assert.Len(t, p.Timeline.Tracks, 2)
}

func TestCloneIsDeep(t *testing.T) {
	p, track, asset := newTestProject(t)
	clip := placeClip(t, p, track, asset, 0, 3*Second)
	_, err := p.AddMarker(Second, "m")
	require.NoError(t, err)

	cp := p.Clone()
	require.NoError(t, cp.MoveItem(clip.ID, 5*Second))
	cp.Assets[0].Name = "renamed"
	cp.Timeline.Markers[0].Label = "changed"

	assert.Equal(t, ZeroTime, clip.StartUs)
	assert.Equal(t, "clip.mp4", p.Assets[0].Name)
	assert.Equal(t, "m", p.Timeline.Markers[0].Label)
}

// TestRandomizedOpsKeepInvariants drives a random add/move/trim/split/
// delete sequence through the same clone-then-commit discipline the
// editor uses and checks full document validity after every accepted
// operation.
func TestRandomizedOpsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p, _, asset := newTestProject(t)
	trackID := p.Timeline.Tracks[0].ID

	pick := func(doc *Project) (uuid.UUID, bool) {
		items := doc.TrackByID(trackID).Items
		if len(items) == 0 {
			return uuid.Nil, false
		}
		return items[rng.Intn(len(items))].ItemID(), true
	}

	accepted := 0
	for i := 0; i < 500; i++ {
		next := p.Clone()
		var err error

		switch rng.Intn(5) {
		case 0:
			clip := &VideoClip{
				ID:        uuid.New(),
				Asset:     asset.ID,
				StartUs:   TimeUs(rng.Intn(60)) * Second,
				SourceOut: TimeUs(1+rng.Intn(9)) * Second,
			}
			err = next.AddItem(trackID, clip)
		case 1:
			id, ok := pick(next)
			if !ok {
				continue
			}
			err = next.MoveItem(id, TimeUs(rng.Intn(60))*Second)
		case 2:
			id, ok := pick(next)
			if !ok {
				continue
			}
			edge := EdgeIn
			if rng.Intn(2) == 0 {
				edge = EdgeOut
			}
			err = next.Trim(id, edge, TimeUs(rng.Intn(10))*Second)
		case 3:
			id, ok := pick(next)
			if !ok {
				continue
			}
			item := next.TrackByID(trackID).ItemByID(id)
			if item.Duration() <= 1 {
				continue
			}
			_, _, err = next.SplitAt(id, item.Start()+TimeUs(1+rng.Int63n(int64(item.Duration()-1))))
		case 4:
			id, ok := pick(next)
			if !ok || rng.Intn(4) != 0 {
				continue
			}
			_, err = next.RemoveItem(id)
		}

		if err != nil {
			continue
		}
		p = next
		accepted++
		require.NoError(t, Validate(p), "invariants broken after %d accepted operations", accepted)
	}
	assert.Greater(t, accepted, 50, "sequence should accept a healthy share of operations")
}
