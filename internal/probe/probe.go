// Package probe resolves media files to their technical metadata by
// shelling out to ffprobe. The editor stores probe results verbatim and
// never re-derives them, so this package is the only place ffprobe
// output is interpreted.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/forgecut/forgecut/internal/timeline"
)

// ExecError reports an ffprobe invocation that could not run or exited
// nonzero.
type ExecError struct {
	Path   string
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("ffprobe %s: %s", e.Path, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("ffprobe %s: %v", e.Path, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// ffprobe JSON output shapes. Numeric fields arrive as strings in the
// format section, matching ffprobe's own serialization.
type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

type ffprobeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	Channels   int    `json:"channels"`
	SampleRate string `json:"sample_rate"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

// FFProbe probes media via the ffprobe binary.
type FFProbe struct {
	// Binary overrides the ffprobe executable name. Empty means
	// "ffprobe" resolved from PATH.
	Binary string
}

// Probe runs ffprobe against path and parses the result.
func (f *FFProbe) Probe(path string) (timeline.ProbeResult, error) {
	return f.ProbeContext(context.Background(), path)
}

// ProbeContext is Probe with cancellation.
func (f *FFProbe) ProbeContext(ctx context.Context, path string) (timeline.ProbeResult, error) {
	if _, err := os.Stat(path); err != nil {
		return timeline.ProbeResult{}, &ExecError{Path: path, Err: err}
	}

	bin := f.Binary
	if bin == "" {
		bin = "ffprobe"
	}
	cmd := exec.CommandContext(ctx, bin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return timeline.ProbeResult{}, &ExecError{Path: path, Stderr: stderr.String(), Err: err}
	}

	var parsed ffprobeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return timeline.ProbeResult{}, fmt.Errorf("parse ffprobe output for %s: %w", path, err)
	}
	return parseOutput(parsed), nil
}

func parseOutput(out ffprobeOutput) timeline.ProbeResult {
	var video, audio *ffprobeStream
	for i := range out.Streams {
		s := &out.Streams[i]
		switch s.CodecType {
		case "video":
			if video == nil {
				video = s
			}
		case "audio":
			if audio == nil {
				audio = s
			}
		}
	}

	var result timeline.ProbeResult
	if secs, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
		result.Duration = timeline.FromSeconds(secs)
	}
	if video != nil {
		result.Width = video.Width
		result.Height = video.Height
		result.FPS = parseFrameRate(video.RFrameRate)
		result.Codec = video.CodecName
	}
	if audio != nil {
		result.AudioChannels = audio.Channels
		result.AudioSampleRate, _ = strconv.Atoi(audio.SampleRate)
		if result.Codec == "" {
			result.Codec = audio.CodecName
		}
	}
	return result
}

// parseFrameRate handles ffprobe rates like "30000/1001" or "29.97".
func parseFrameRate(rate string) float64 {
	if num, den, ok := strings.Cut(rate, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0
		}
		return n / d
	}
	f, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return 0
	}
	return f
}
