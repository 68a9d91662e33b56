// Package persist converts projects to and from their on-disk byte form.
//
// The format is a versioned JSON envelope around the document tree. Every
// field round-trips exactly: TimeUs values stay integral and fractional
// fields (volume, opacity, fps) keep full float64 precision. Asset paths
// are carried as opaque strings; a path that no longer resolves on disk
// never fails a load.
package persist

import (
	"encoding/json"
	"fmt"

	"github.com/forgecut/forgecut/internal/timeline"
)

// FormatVersion tags the envelope. Decoding any other version fails
// cleanly with a DecodeError instead of loading partially.
const FormatVersion = 1

// Extension is the conventional project file suffix.
const Extension = ".forgecut"

// DecodeError reports a byte stream that could not be turned into a
// project. The previously loaded project stays in place when it occurs.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode project: %s: %v", e.Reason, e.Err)
	}
	return "decode project: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

type envelope struct {
	Version int             `json:"version"`
	Project json.RawMessage `json:"project"`
}

// Encode serializes a project into its versioned byte form. It never
// mutates the project.
func Encode(p *timeline.Project) ([]byte, error) {
	doc, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode project: %w", err)
	}
	out, err := json.MarshalIndent(envelope{Version: FormatVersion, Project: doc}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return out, nil
}

// Decode parses a versioned byte stream back into a project. Decoding is
// all-or-nothing: any failure returns a DecodeError and no project.
func Decode(data []byte) (*timeline.Project, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &DecodeError{Reason: "malformed envelope", Err: err}
	}
	if env.Version != FormatVersion {
		return nil, &DecodeError{Reason: fmt.Sprintf("unsupported format version %d", env.Version)}
	}
	if len(env.Project) == 0 {
		return nil, &DecodeError{Reason: "missing project payload"}
	}

	var p timeline.Project
	if err := json.Unmarshal(env.Project, &p); err != nil {
		return nil, &DecodeError{Reason: "malformed project", Err: err}
	}
	if err := timeline.Validate(&p); err != nil {
		return nil, &DecodeError{Reason: "structurally invalid project", Err: err}
	}
	return &p, nil
}
