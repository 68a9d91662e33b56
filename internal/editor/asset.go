package editor

import (
	"path/filepath"
	"strings"

	"github.com/forgecut/forgecut/internal/timeline"
)

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".webp": true,
}

var audioExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".flac": true, ".aac": true,
	".m4a": true, ".ogg": true, ".opus": true,
}

func baseName(path string) string {
	if name := filepath.Base(path); name != "." && name != string(filepath.Separator) {
		return name
	}
	return "unknown"
}

// probeKind classifies an asset from its extension first, falling back to
// the probed streams: a file with video geometry is Video, otherwise
// Audio.
func probeKind(path string, result timeline.ProbeResult) timeline.AssetKind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageExtensions[ext]:
		return timeline.AssetImage
	case audioExtensions[ext]:
		return timeline.AssetAudio
	case result.Width > 0 && result.Height > 0:
		return timeline.AssetVideo
	case result.AudioChannels > 0:
		return timeline.AssetAudio
	default:
		return timeline.AssetVideo
	}
}
