// Package track implements the three AnimX keyframe set shapes.
//
// A track is one animated property's timeline. Its shape is one of:
//
//   - Raw: evenly sampled values with no per-frame time; frame i is at i*Interval
//   - Discrete: sparse (time, value) pairs
//   - Curve: (time, value, interpolation) keyframes with optional tangents
//
// Each shape is generic over the Go type of its values and is built from a
// value.Codec of that type, so the value kind tag a track reports always
// matches the values it holds. Outside this package tracks are handled only
// through the Track interface.
//
// Keyframe times are not required to be sorted; ordering is the caller's concern.
package track

import (
	"fmt"

	"github.com/arloliu/animx/encoding"
	"github.com/arloliu/animx/errs"
	"github.com/arloliu/animx/format"
	"github.com/arloliu/animx/value"
)

// Curve info byte flags.
const (
	curvePerKeyframeInterpolation uint8 = 0x01
	curveTangents                 uint8 = 0x02
)

// Track is a keyframe set of any shape and value kind.
type Track interface {
	// Tag returns the track kind and value kind written ahead of the body.
	Tag() (format.TrackKind, format.ValueKind)
	// EncodeBody appends the track body (everything after the two tag bytes) to w.
	EncodeBody(w *encoding.Writer, cfg EncodeConfig) error
}

// EncodeConfig carries encoder settings that affect track bodies.
type EncodeConfig struct {
	// CompactInterpolation writes a single shared interpolation byte for curves whose
	// keyframes all use the same interpolation. When false, every curve carries one
	// interpolation byte per keyframe, which is what the host platform's own encoder emits.
	CompactInterpolation bool
}

// Raw is an evenly sampled keyframe set.
type Raw[T any] struct {
	codec    value.Codec[T]
	Node     string
	Property string
	// Interval is the time between consecutive frames in seconds.
	Interval float32
	Frames   []T
}

// NewRaw creates a Raw track holding frames of the codec's value kind.
func NewRaw[T any](codec value.Codec[T], node, property string, interval float32, frames []T) *Raw[T] {
	return &Raw[T]{codec: codec, Node: node, Property: property, Interval: interval, Frames: frames}
}

func (t *Raw[T]) Tag() (format.TrackKind, format.ValueKind) {
	return format.TrackRaw, t.codec.Kind()
}

func (t *Raw[T]) EncodeBody(w *encoding.Writer, _ EncodeConfig) error {
	if err := checkCodec(t.codec); err != nil {
		return err
	}

	w.WriteString(t.Node)
	w.WriteString(t.Property)
	w.WriteVarint(uint64(len(t.Frames)))
	w.WriteFloat32(t.Interval)
	for _, v := range t.Frames {
		t.codec.Encode(w, v)
	}

	return nil
}

// DiscreteKeyframe is a value that holds from Time until the next keyframe.
type DiscreteKeyframe[T any] struct {
	Time  float32
	Value T
}

// Discrete is a sparse keyframe set.
type Discrete[T any] struct {
	codec     value.Codec[T]
	Node      string
	Property  string
	Keyframes []DiscreteKeyframe[T]
}

// NewDiscrete creates a Discrete track holding keyframes of the codec's value kind.
func NewDiscrete[T any](codec value.Codec[T], node, property string, keyframes []DiscreteKeyframe[T]) *Discrete[T] {
	return &Discrete[T]{codec: codec, Node: node, Property: property, Keyframes: keyframes}
}

func (t *Discrete[T]) Tag() (format.TrackKind, format.ValueKind) {
	return format.TrackDiscrete, t.codec.Kind()
}

func (t *Discrete[T]) EncodeBody(w *encoding.Writer, _ EncodeConfig) error {
	if err := checkCodec(t.codec); err != nil {
		return err
	}

	w.WriteString(t.Node)
	w.WriteString(t.Property)
	w.WriteVarint(uint64(len(t.Keyframes)))
	for _, kf := range t.Keyframes {
		w.WriteFloat32(kf.Time)
		t.codec.Encode(w, kf.Value)
	}

	return nil
}

// CurveKeyframe is an interpolated keyframe.
//
// Tangents are values of the track's own kind. Within one Curve either every
// keyframe has both tangents or no keyframe has any.
type CurveKeyframe[T any] struct {
	Time          float32
	Value         T
	Interpolation format.Interpolation
	LeftTangent   *T
	RightTangent  *T
}

// HasTangents reports whether the keyframe carries a tangent pair.
func (kf CurveKeyframe[T]) HasTangents() bool {
	return kf.LeftTangent != nil && kf.RightTangent != nil
}

// Curve is an interpolated keyframe set.
type Curve[T any] struct {
	codec     value.Codec[T]
	Node      string
	Property  string
	Keyframes []CurveKeyframe[T]
}

// NewCurve creates a Curve track after validating its keyframes.
//
// Returns:
//   - error: ErrInconsistentTangents if some but not all keyframes carry tangents,
//     ErrIncorrectInterpolationType for an unknown interpolation, or ErrMissingTangents
//     if a Tangent/CubicBezier keyframe has no tangents
func NewCurve[T any](codec value.Codec[T], node, property string, keyframes []CurveKeyframe[T]) (*Curve[T], error) {
	t := &Curve[T]{codec: codec, Node: node, Property: property, Keyframes: keyframes}
	if _, err := t.validate(); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Curve[T]) Tag() (format.TrackKind, format.ValueKind) {
	return format.TrackCurve, t.codec.Kind()
}

// validate checks the keyframes and reports whether the set carries tangents.
func (t *Curve[T]) validate() (bool, error) {
	if len(t.Keyframes) == 0 {
		return false, nil
	}

	first := t.Keyframes[0]
	hasTangents := first.HasTangents()
	for i, kf := range t.Keyframes {
		if (kf.LeftTangent != nil) != hasTangents || (kf.RightTangent != nil) != hasTangents {
			return false, fmt.Errorf("%w: keyframe %d of %d", errs.ErrInconsistentTangents, i, len(t.Keyframes))
		}

		if !kf.Interpolation.Valid() {
			return false, fmt.Errorf("%w: %d at keyframe %d", errs.ErrIncorrectInterpolationType, kf.Interpolation, i)
		}

		if kf.Interpolation.NeedsTangents() && !hasTangents {
			return false, fmt.Errorf("%w: %s at keyframe %d", errs.ErrMissingTangents, kf.Interpolation, i)
		}
	}

	return hasTangents, nil
}

// sharedInterpolation returns the interpolation used by every keyframe, if there is one.
func (t *Curve[T]) sharedInterpolation() (format.Interpolation, bool) {
	if len(t.Keyframes) == 0 {
		return format.InterpolationHold, true
	}

	shared := t.Keyframes[0].Interpolation
	for _, kf := range t.Keyframes[1:] {
		if kf.Interpolation != shared {
			return 0, false
		}
	}

	return shared, true
}

func (t *Curve[T]) EncodeBody(w *encoding.Writer, cfg EncodeConfig) error {
	if err := checkCodec(t.codec); err != nil {
		return err
	}

	hasTangents, err := t.validate()
	if err != nil {
		return err
	}

	// Per-keyframe interpolation is the default even when every keyframe agrees;
	// the shared form is only written when explicitly requested.
	info := curvePerKeyframeInterpolation
	shared, uniform := t.sharedInterpolation()
	if cfg.CompactInterpolation && uniform {
		info = 0
	}
	if hasTangents {
		info |= curveTangents
	}

	w.WriteString(t.Node)
	w.WriteString(t.Property)
	w.WriteVarint(uint64(len(t.Keyframes)))
	w.WriteUint8(info)

	if info&curvePerKeyframeInterpolation != 0 {
		for _, kf := range t.Keyframes {
			w.WriteUint8(uint8(kf.Interpolation))
		}
	} else {
		w.WriteUint8(uint8(shared))
	}

	for _, kf := range t.Keyframes {
		w.WriteFloat32(kf.Time)
		t.codec.Encode(w, kf.Value)
	}

	if hasTangents {
		for _, kf := range t.Keyframes {
			t.codec.Encode(w, *kf.LeftTangent)
			t.codec.Encode(w, *kf.RightTangent)
		}
	}

	return nil
}

func checkCodec[T any](c value.Codec[T]) error {
	if !c.Valid() {
		return fmt.Errorf("%w: track has no value codec, build it with a constructor", errs.ErrIncorrectValueType)
	}

	return nil
}
