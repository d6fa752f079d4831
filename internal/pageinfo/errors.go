package pageinfo

import (
	"errors"
	"fmt"
)

var (
	// ErrGeometryMismatch means the thumb and track boxes disagree on an axis
	// that should align, so they are unlikely to be the same scrollbar.
	ErrGeometryMismatch = errors.New("scrollbar geometry mismatch")
	// ErrAmbiguousDetection means a filter kept more than one candidate.
	ErrAmbiguousDetection = errors.New("ambiguous scrollbar detection")
)

// GeometryMismatchError carries the offending measurements.
type GeometryMismatchError struct {
	Axis      string // "width" or "x"
	Thumb     int
	Track     int
	Tolerance int
}

func (e *GeometryMismatchError) Error() string {
	return fmt.Sprintf("%s: %s differs by more than %d px (thumb=%d, track=%d)",
		ErrGeometryMismatch, e.Axis, e.Tolerance, e.Thumb, e.Track)
}

func (e *GeometryMismatchError) Is(target error) bool {
	return target == ErrGeometryMismatch
}

// AmbiguousDetectionError reports how many candidates survived a filter.
type AmbiguousDetectionError struct {
	Target string // "thumb" or "track"
	Count  int
}

func (e *AmbiguousDetectionError) Error() string {
	return fmt.Sprintf("%s: %d %s areas detected", ErrAmbiguousDetection, e.Count, e.Target)
}

func (e *AmbiguousDetectionError) Is(target error) bool {
	return target == ErrAmbiguousDetection
}
