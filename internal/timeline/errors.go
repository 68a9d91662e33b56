package timeline

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError reports a dangling id reference. Kind names the entity
// class ("item", "track", "asset", "marker").
type NotFoundError struct {
	Kind string
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// OverlapError reports a placement that would intersect an existing item
// on the same track.
type OverlapError struct {
	Track uuid.UUID
	Start TimeUs
	End   TimeUs
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlap on track %s: [%s, %s)", e.Track, e.Start, e.End)
}

// InvalidRangeError reports a field value outside its hard-validated
// range. Values are rejected, never clamped.
type InvalidRangeError struct {
	Field string
	Value any
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range for %s: %v", e.Field, e.Value)
}

// KindMismatchError reports an item variant placed on a track of the
// wrong kind.
type KindMismatchError struct {
	Expected TrackKind
	Actual   TrackKind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("kind mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// ValidationError reports any other structural rule violation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// IsNotFound reports whether err is a NotFoundError.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsOverlap reports whether err is an OverlapError.
func IsOverlap(err error) bool {
	var e *OverlapError
	return errors.As(err, &e)
}

// IsInvalidRange reports whether err is an InvalidRangeError.
func IsInvalidRange(err error) bool {
	var e *InvalidRangeError
	return errors.As(err, &e)
}

// IsKindMismatch reports whether err is a KindMismatchError.
func IsKindMismatch(err error) bool {
	var e *KindMismatchError
	return errors.As(err, &e)
}
