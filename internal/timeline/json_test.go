package timeline

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemJSONDiscriminators(t *testing.T) {
	tests := []struct {
		name string
		item Item
		tag  string
	}{
		{"video", &VideoClip{ID: uuid.New(), SourceOut: Second}, "video_clip"},
		{"audio", &AudioClip{ID: uuid.New(), SourceOut: Second, Volume: 1}, "audio_clip"},
		{"image", &ImageOverlay{ID: uuid.New(), DurationUs: Second, Width: 1, Height: 1}, "image_overlay"},
		{"text", &TextOverlay{ID: uuid.New(), DurationUs: Second, FontSize: 12}, "text_overlay"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalItem(tt.item)
			require.NoError(t, err)
			assert.Contains(t, string(data), `"type":"`+tt.tag+`"`)

			back, err := UnmarshalItem(data)
			require.NoError(t, err)
			assert.IsType(t, tt.item, back)
			assert.Equal(t, tt.item, back)
		})
	}
}

func TestUnmarshalItemUnknownType(t *testing.T) {
	_, err := UnmarshalItem([]byte(`{"type":"transition","id":"x"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")
}

func TestTrackRoundTripPreservesItemOrder(t *testing.T) {
	trackID := uuid.New()
	assetID := uuid.New()
	track := Track{
		ID:   trackID,
		Kind: TrackVideo,
		Items: []Item{
			&VideoClip{ID: uuid.New(), Asset: assetID, Track: trackID, StartUs: 0, SourceOut: Second},
			&VideoClip{ID: uuid.New(), Asset: assetID, Track: trackID, StartUs: 2 * Second, SourceIn: Second, SourceOut: 3 * Second},
		},
	}

	data, err := json.Marshal(track)
	require.NoError(t, err)

	var back Track
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, track, back)
}

func TestProjectRoundTripLossless(t *testing.T) {
	p, track, asset := newTestProject(t)
	placeClip(t, p, track, asset, 0, 3*Second)
	audio := &AudioClip{
		ID: uuid.New(), Asset: asset.ID,
		SourceOut: 2 * Second, Volume: 0.7071067811865476,
	}
	require.NoError(t, p.AddItem(p.Timeline.Tracks[1].ID, audio))
	_, err := p.AddMarker(1_234_567, "précis ✓")
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var back Project
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, *p, back, "every field must survive the round trip exactly")
}
