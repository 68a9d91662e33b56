// Package timeline holds the authoritative editing document model: assets,
// tracks, timeline items, markers, and the structural operations that
// transform them.
//
// All time values are TimeUs (signed 64-bit microseconds). Items on a track
// occupy half-open intervals [Start, End) that must stay pairwise disjoint;
// tracks keep their items sorted by start. Every structural mutation either
// succeeds leaving those invariants intact or returns a typed error from
// errors.go with the document unchanged.
//
// The package is purely in-memory and does no I/O. Persistence lives in
// internal/persist, stateful ownership and undo in internal/editor and
// internal/history.
package timeline
