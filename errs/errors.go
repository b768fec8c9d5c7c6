// Package errs defines the sentinel errors shared by the AnimX and AnimJ codecs
// and the clip bundle container.
//
// Call sites wrap these with additional context using fmt.Errorf and %w, so
// callers should test for them with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

// AnimX stream errors.
var (
	ErrIncorrectHeader            = errors.New("incorrect AnimX header")
	ErrUnsupportedVersion         = errors.New("unsupported AnimX version")
	ErrUnsupportedEncoding        = errors.New("unsupported AnimX encoding")
	ErrIncorrectTrackType         = errors.New("incorrect track type")
	ErrIncorrectValueType         = errors.New("incorrect value type")
	ErrIncorrectInterpolationType = errors.New("incorrect interpolation type")
	ErrTruncatedInput             = errors.New("truncated input")
	ErrInvalidText                = errors.New("invalid UTF-8 text")
	ErrVarintOverflow             = errors.New("varint overflows 64 bits")
	ErrTooManyTracks              = errors.New("track count exceeds limit")
	ErrTooManyFrames              = errors.New("frame count exceeds limit")
)

// Track model errors.
var (
	ErrUnimplemented        = errors.New("unimplemented")
	ErrInconsistentTangents = errors.New("curve keyframes must all carry tangents or none")
	ErrMissingTangents      = errors.New("interpolation requires tangents")
	ErrNilTrack             = errors.New("nil track")
	ErrNilAnimation         = errors.New("nil animation")
)

// AnimJ document errors.
var (
	ErrStructural = errors.New("structural error")
)

// Bundle errors.
var (
	ErrInvalidHeaderSize     = errors.New("invalid bundle header size")
	ErrInvalidMagicNumber    = errors.New("invalid bundle magic number")
	ErrInvalidBundleVersion  = errors.New("unsupported bundle version")
	ErrInvalidIndexEntrySize = errors.New("invalid bundle index entry size")
	ErrInvalidIndexOffsets   = errors.New("invalid bundle section offsets")
	ErrOffsetOutOfRange      = errors.New("clip offset out of range")
	ErrInvalidClipName       = errors.New("invalid clip name")
	ErrClipAlreadyAdded      = errors.New("clip already added")
	ErrClipNotFound          = errors.New("clip not found")
	ErrNoClipsAdded          = errors.New("no clips added")
	ErrHashMismatch          = errors.New("clip name hash mismatch")
	ErrBundleFinished        = errors.New("bundle already finished")
	ErrChecksumMismatch      = errors.New("bundle payload checksum mismatch")
	ErrHashCollision         = errors.New("clip ID matches more than one clip")
	ErrBundleTooLarge        = errors.New("bundle section exceeds 4 GiB")
	ErrInvalidCompression    = errors.New("invalid bundle compression")
)

// StructuralError reports a document field that is missing or has the wrong shape.
type StructuralError struct {
	// Field is the dotted path of the offending field, e.g. "tracks[2].keyframes[0].time".
	Field string
	// Err describes what was wrong with the field.
	Err error
}

// NewStructuralError creates a StructuralError for field.
func NewStructuralError(field string, format string, args ...any) *StructuralError {
	return &StructuralError{Field: field, Err: fmt.Errorf(format, args...)}
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: field %q: %v", ErrStructural, e.Field, e.Err)
}

// Unwrap lets errors.Is match both ErrStructural and the wrapped cause.
func (e *StructuralError) Unwrap() []error {
	return []error{ErrStructural, e.Err}
}
