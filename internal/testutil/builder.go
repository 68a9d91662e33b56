// Package testutil provides deterministic project builders for tests.
//
// Builders use a seeded ID sequence so the same construction order
// yields the same UUIDs, which keeps golden files and failure output
// stable across runs.
package testutil

import (
	"encoding/binary"
	"sync"

	"github.com/google/uuid"

	"github.com/forgecut/forgecut/internal/timeline"
)

// IDSequence produces deterministic UUIDs from a counter.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type IDSequence struct {
	mu   sync.Mutex
	seed uint64
	n    uint64
}

// NewIDSequence creates a sequence. Different seeds yield disjoint IDs.
func NewIDSequence(seed uint64) *IDSequence {
	return &IDSequence{seed: seed}
}

// Next returns the next deterministic UUID in the sequence.
func (s *IDSequence) Next() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++

	var id uuid.UUID
	binary.BigEndian.PutUint64(id[:8], s.seed)
	binary.BigEndian.PutUint64(id[8:], s.n)
	// Stamp version 4 / variant bits so the IDs parse as valid UUIDs.
	id[6] = (id[6] & 0x0f) | 0x40
	id[8] = (id[8] & 0x3f) | 0x80
	return id
}

// Reset restarts the sequence. After Reset the next ID equals the first
// ID ever produced.
func (s *IDSequence) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n = 0
}

// ProjectBuilder assembles projects with deterministic IDs.
type ProjectBuilder struct {
	ids     *IDSequence
	project *timeline.Project
}

// NewProjectBuilder starts a 1080p project named "test" with one Video
// and one Audio track.
func NewProjectBuilder() *ProjectBuilder {
	ids := NewIDSequence(0xf0c)
	p := timeline.NewProject("test", timeline.Preset1080p())
	p.ID = ids.Next()
	b := &ProjectBuilder{ids: ids, project: p}
	b.AddTrack(timeline.TrackVideo)
	b.AddTrack(timeline.TrackAudio)
	return b
}

// Project returns the assembled project.
func (b *ProjectBuilder) Project() *timeline.Project { return b.project }

// IDs exposes the builder's ID sequence for constructing expectations.
func (b *ProjectBuilder) IDs() *IDSequence { return b.ids }

// AddTrack appends a track and returns its ID.
func (b *ProjectBuilder) AddTrack(kind timeline.TrackKind) uuid.UUID {
	id := b.ids.Next()
	b.project.Timeline.Tracks = append(b.project.Timeline.Tracks, timeline.Track{
		ID:   id,
		Kind: kind,
	})
	return id
}

// Track returns the ID of the nth track.
func (b *ProjectBuilder) Track(n int) uuid.UUID {
	return b.project.Timeline.Tracks[n].ID
}

// AddVideoAsset registers a probed video asset and returns its ID.
func (b *ProjectBuilder) AddVideoAsset(name string, duration timeline.TimeUs) uuid.UUID {
	id := b.ids.Next()
	b.project.Assets = append(b.project.Assets, timeline.Asset{
		ID:   id,
		Name: name,
		Path: "/media/" + name,
		Kind: timeline.AssetVideo,
		Probe: &timeline.ProbeResult{
			Duration:        duration,
			Width:           1920,
			Height:          1080,
			FPS:             30,
			Codec:           "h264",
			AudioChannels:   2,
			AudioSampleRate: 48000,
		},
	})
	return id
}

// AddAudioAsset registers a probed audio asset and returns its ID.
func (b *ProjectBuilder) AddAudioAsset(name string, duration timeline.TimeUs) uuid.UUID {
	id := b.ids.Next()
	b.project.Assets = append(b.project.Assets, timeline.Asset{
		ID:   id,
		Name: name,
		Path: "/media/" + name,
		Kind: timeline.AssetAudio,
		Probe: &timeline.ProbeResult{
			Duration:        duration,
			Codec:           "aac",
			AudioChannels:   2,
			AudioSampleRate: 48000,
		},
	})
	return id
}

// AddImageAsset registers an unprobed image asset and returns its ID.
func (b *ProjectBuilder) AddImageAsset(name string) uuid.UUID {
	id := b.ids.Next()
	b.project.Assets = append(b.project.Assets, timeline.Asset{
		ID:   id,
		Name: name,
		Path: "/media/" + name,
		Kind: timeline.AssetImage,
	})
	return id
}

// PlaceVideoClip adds a video clip covering [start, start+duration) on
// the given track, sourced from the asset at source offset zero.
func (b *ProjectBuilder) PlaceVideoClip(trackID, assetID uuid.UUID, start, duration timeline.TimeUs) uuid.UUID {
	id := b.ids.Next()
	item := &timeline.VideoClip{
		ID:        id,
		Asset:     assetID,
		Track:     trackID,
		StartUs:   start,
		SourceIn:  0,
		SourceOut: duration,
	}
	if err := b.project.AddItem(trackID, item); err != nil {
		panic(err)
	}
	return id
}

// PlaceAudioClip adds an audio clip at unit volume.
func (b *ProjectBuilder) PlaceAudioClip(trackID, assetID uuid.UUID, start, duration timeline.TimeUs) uuid.UUID {
	id := b.ids.Next()
	item := &timeline.AudioClip{
		ID:        id,
		Asset:     assetID,
		Track:     trackID,
		StartUs:   start,
		SourceIn:  0,
		SourceOut: duration,
		Volume:    1.0,
	}
	if err := b.project.AddItem(trackID, item); err != nil {
		panic(err)
	}
	return id
}
