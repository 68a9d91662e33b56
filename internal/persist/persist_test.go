package persist

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgecut/forgecut/internal/timeline"
)

// goldenProject builds a fully deterministic project so the encoded
// bytes are stable across runs.
func goldenProject() *timeline.Project {
	assetID := uuid.MustParse("00000000-0000-4f0c-8000-000000000002")
	trackID := uuid.MustParse("00000000-0000-4f0c-8000-000000000003")

	p := timeline.NewProject("golden", timeline.Preset1080p())
	p.ID = uuid.MustParse("00000000-0000-4f0c-8000-000000000001")
	p.Assets = []timeline.Asset{{
		ID:   assetID,
		Name: "clip.mp4",
		Path: "/media/clip.mp4",
		Kind: timeline.AssetVideo,
		Probe: &timeline.ProbeResult{
			Duration:        3 * timeline.Second,
			Width:           1920,
			Height:          1080,
			FPS:             30,
			Codec:           "h264",
			AudioChannels:   2,
			AudioSampleRate: 48000,
		},
	}}
	p.Timeline.Tracks = []timeline.Track{{
		ID:   trackID,
		Kind: timeline.TrackVideo,
		Items: []timeline.Item{&timeline.VideoClip{
			ID:        uuid.MustParse("00000000-0000-4f0c-8000-000000000004"),
			Asset:     assetID,
			Track:     trackID,
			StartUs:   0,
			SourceIn:  0,
			SourceOut: 3 * timeline.Second,
		}},
	}}
	p.Timeline.Markers = []timeline.Marker{{
		ID:    uuid.MustParse("00000000-0000-4f0c-8000-000000000005"),
		Time:  1_500_000,
		Label: "intro",
	}}
	return p
}

func TestEncodeGolden(t *testing.T) {
	data, err := Encode(goldenProject())
	require.NoError(t, err)

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, "project", data)
}

func TestRoundTripExactness(t *testing.T) {
	p := goldenProject()
	data, err := Encode(p)
	require.NoError(t, err)

	back, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, p, back)

	// A second encode of the decoded project is byte-identical.
	again, err := Encode(back)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	_, err := Decode([]byte(`{"version": 2, "project": {}}`))
	require.Error(t, err)
	var dErr *DecodeError
	require.ErrorAs(t, err, &dErr)
	assert.Contains(t, dErr.Reason, "unsupported format version 2")
}

func TestDecodeRejectsMalformedEnvelope(t *testing.T) {
	for name, data := range map[string]string{
		"not_json":        "not json at all",
		"missing_project": `{"version": 1}`,
		"bad_project":     `{"version": 1, "project": {"id": 42}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(data))
			var dErr *DecodeError
			require.ErrorAs(t, err, &dErr)
		})
	}
}

func TestDecodeRejectsSemanticallyInvalidProject(t *testing.T) {
	p := goldenProject()
	// Corrupt: duplicate the clip id on a second non-overlapping item.
	track := &p.Timeline.Tracks[0]
	dup := *(track.Items[0].(*timeline.VideoClip))
	dup.StartUs = 10 * timeline.Second
	track.Items = append(track.Items, &dup)

	data, err := Encode(p)
	require.NoError(t, err)

	_, err = Decode(data)
	var dErr *DecodeError
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, "structurally invalid project", dErr.Reason)
}

func TestEnsureExtension(t *testing.T) {
	assert.Equal(t, "a.forgecut", EnsureExtension("a"))
	assert.Equal(t, "a.forgecut", EnsureExtension("a.forgecut"))
	assert.Equal(t, "dir/b.forgecut", EnsureExtension("dir/b"))
}

func TestSaveLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := goldenProject()

	path := dir + "/demo"
	require.NoError(t, SaveFile(p, path))

	back, err := LoadFile(dir + "/demo.forgecut")
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(t.TempDir() + "/absent.forgecut")
	require.Error(t, err)
}

func TestFingerprintStableAcrossUnicodeComposition(t *testing.T) {
	composed := goldenProject()
	composed.Name = "café" // é as one rune

	decomposed := goldenProject()
	decomposed.Name = "café" // e plus combining acute

	a, err := Fingerprint(composed)
	require.NoError(t, err)
	b, err := Fingerprint(decomposed)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	changed := goldenProject()
	changed.Name = "other"
	c, err := Fingerprint(changed)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestFingerprintDoesNotMutate(t *testing.T) {
	p := goldenProject()
	p.Name = "café"

	_, err := Fingerprint(p)
	require.NoError(t, err)
	assert.Equal(t, "café", p.Name)
}
