package track

import (
	"fmt"

	"github.com/arloliu/animx/encoding"
	"github.com/arloliu/animx/errs"
	"github.com/arloliu/animx/format"
	"github.com/arloliu/animx/value"
)

// preallocLimit caps slice preallocation from an untrusted frame count.
const preallocLimit = 4096

// DecodeConfig bounds what Decode will accept.
type DecodeConfig struct {
	// MaxFrames is the largest frame count accepted for one track. Zero means no limit.
	MaxFrames uint64
}

// header holds the body fields shared by every track kind.
type header struct {
	node     string
	property string
	frames   uint64
}

// curveHeader adds the curve info byte and interpolation tags.
type curveHeader struct {
	header
	interpolations []format.Interpolation
	tangents       bool
}

// interpolation returns the interpolation of keyframe i, honoring the shared form.
func (h curveHeader) interpolation(i uint64) format.Interpolation {
	if uint64(len(h.interpolations)) == h.frames {
		return h.interpolations[i]
	}

	return h.interpolations[0]
}

type binaryDecoder struct {
	raw      func(*encoding.Reader, header) (Track, error)
	discrete func(*encoding.Reader, header) (Track, error)
	curve    func(*encoding.Reader, curveHeader) (Track, error)
}

func bind[T any](c value.Codec[T]) binaryDecoder {
	return binaryDecoder{
		raw: func(r *encoding.Reader, h header) (Track, error) {
			return decodeRaw(r, h, c)
		},
		discrete: func(r *encoding.Reader, h header) (Track, error) {
			return decodeDiscrete(r, h, c)
		},
		curve: func(r *encoding.Reader, h curveHeader) (Track, error) {
			return decodeCurve(r, h, c)
		},
	}
}

// binaryDecoders is the single (value kind -> typed decoder) table for the binary path.
var binaryDecoders = [format.ValueKindCount]binaryDecoder{
	format.Byte:      bind(value.ByteCodec),
	format.Ushort:    bind(value.UshortCodec),
	format.Ulong:     bind(value.UlongCodec),
	format.Sbyte:     bind(value.SbyteCodec),
	format.Short:     bind(value.ShortCodec),
	format.Bool:      bind(value.BoolCodec),
	format.Bool2:     bind(value.Bool2Codec),
	format.Bool3:     bind(value.Bool3Codec),
	format.Bool4:     bind(value.Bool4Codec),
	format.Int:       bind(value.IntCodec),
	format.Int2:      bind(value.Int2Codec),
	format.Int3:      bind(value.Int3Codec),
	format.Int4:      bind(value.Int4Codec),
	format.Uint:      bind(value.UintCodec),
	format.Uint2:     bind(value.Uint2Codec),
	format.Uint3:     bind(value.Uint3Codec),
	format.Uint4:     bind(value.Uint4Codec),
	format.Long:      bind(value.LongCodec),
	format.Long2:     bind(value.Long2Codec),
	format.Long3:     bind(value.Long3Codec),
	format.Long4:     bind(value.Long4Codec),
	format.Float:     bind(value.FloatCodec),
	format.Float2:    bind(value.Float2Codec),
	format.Float3:    bind(value.Float3Codec),
	format.Float4:    bind(value.Float4Codec),
	format.FloatQ:    bind(value.FloatQCodec),
	format.Float2x2:  bind(value.Float2x2Codec),
	format.Float3x3:  bind(value.Float3x3Codec),
	format.Float4x4:  bind(value.Float4x4Codec),
	format.Double:    bind(value.DoubleCodec),
	format.Double2:   bind(value.Double2Codec),
	format.Double3:   bind(value.Double3Codec),
	format.Double4:   bind(value.Double4Codec),
	format.DoubleQ:   bind(value.DoubleQCodec),
	format.Double2x2: bind(value.Double2x2Codec),
	format.Double3x3: bind(value.Double3x3Codec),
	format.Double4x4: bind(value.Double4x4Codec),
	format.Color:     bind(value.ColorCodec),
	format.Color32:   bind(value.Color32Codec),
	format.OptString: bind(value.OptStringCodec),
}

// Decode reads one complete track record (tag bytes and body) from r.
//
// The track kind byte is validated before anything else is read, so an
// unknown kind consumes exactly one byte.
//
// Curves are not validated the way NewCurve validates them: a Tangent or
// CubicBezier keyframe without tangent data decodes, but encoding that curve
// again fails with ErrMissingTangents.
//
// Returns:
//   - Track: the decoded track; its concrete type is *Raw[T], *Discrete[T] or *Curve[T]
//   - error: ErrIncorrectTrackType, ErrUnimplemented (Bezier), ErrIncorrectValueType,
//     ErrIncorrectInterpolationType, ErrTooManyFrames, or any Reader error
func Decode(r *encoding.Reader, cfg DecodeConfig) (Track, error) {
	tb, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}

	trackKind := format.TrackKind(tb)
	if !trackKind.Valid() {
		return nil, fmt.Errorf("%w: 0x%02x at offset %d", errs.ErrIncorrectTrackType, tb, r.Offset()-1)
	}
	if trackKind == format.TrackBezier {
		return nil, fmt.Errorf("%w: %s track at offset %d", errs.ErrUnimplemented, trackKind, r.Offset()-1)
	}

	vb, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}

	valueKind := format.ValueKind(vb)
	if !valueKind.Valid() {
		return nil, fmt.Errorf("%w: 0x%02x at offset %d", errs.ErrIncorrectValueType, vb, r.Offset()-1)
	}

	h, err := readHeader(r, cfg)
	if err != nil {
		return nil, err
	}

	dec := binaryDecoders[valueKind]
	switch trackKind {
	case format.TrackRaw:
		return dec.raw(r, h)
	case format.TrackDiscrete:
		return dec.discrete(r, h)
	default:
		ch, err := readCurveHeader(r, h)
		if err != nil {
			return nil, err
		}

		return dec.curve(r, ch)
	}
}

func readHeader(r *encoding.Reader, cfg DecodeConfig) (header, error) {
	var h header
	var err error

	if h.node, err = r.ReadString(); err != nil {
		return h, err
	}
	if h.property, err = r.ReadString(); err != nil {
		return h, err
	}
	if h.frames, err = r.ReadVarint(); err != nil {
		return h, err
	}

	if cfg.MaxFrames > 0 && h.frames > cfg.MaxFrames {
		return h, fmt.Errorf("%w: %d > %d", errs.ErrTooManyFrames, h.frames, cfg.MaxFrames)
	}

	return h, nil
}

func readCurveHeader(r *encoding.Reader, h header) (curveHeader, error) {
	ch := curveHeader{header: h}

	info, err := r.ReadUint8()
	if err != nil {
		return ch, err
	}
	ch.tangents = info&curveTangents != 0

	count := uint64(1)
	if info&curvePerKeyframeInterpolation != 0 {
		count = h.frames
	}

	ch.interpolations = make([]format.Interpolation, 0, min(count, preallocLimit))
	for range count {
		b, err := r.ReadUint8()
		if err != nil {
			return ch, err
		}

		interp := format.Interpolation(b)
		if !interp.Valid() {
			return ch, fmt.Errorf("%w: 0x%02x at offset %d", errs.ErrIncorrectInterpolationType, b, r.Offset()-1)
		}
		ch.interpolations = append(ch.interpolations, interp)
	}

	return ch, nil
}

func decodeRaw[T any](r *encoding.Reader, h header, c value.Codec[T]) (Track, error) {
	interval, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}

	frames := make([]T, 0, min(h.frames, preallocLimit))
	for range h.frames {
		v, err := c.Decode(r)
		if err != nil {
			return nil, err
		}
		frames = append(frames, v)
	}

	return NewRaw(c, h.node, h.property, interval, frames), nil
}

func decodeDiscrete[T any](r *encoding.Reader, h header, c value.Codec[T]) (Track, error) {
	keyframes := make([]DiscreteKeyframe[T], 0, min(h.frames, preallocLimit))
	for range h.frames {
		time, err := r.ReadFloat32()
		if err != nil {
			return nil, err
		}

		v, err := c.Decode(r)
		if err != nil {
			return nil, err
		}
		keyframes = append(keyframes, DiscreteKeyframe[T]{Time: time, Value: v})
	}

	return NewDiscrete(c, h.node, h.property, keyframes), nil
}

func decodeCurve[T any](r *encoding.Reader, h curveHeader, c value.Codec[T]) (Track, error) {
	keyframes := make([]CurveKeyframe[T], 0, min(h.frames, preallocLimit))
	for i := range h.frames {
		time, err := r.ReadFloat32()
		if err != nil {
			return nil, err
		}

		v, err := c.Decode(r)
		if err != nil {
			return nil, err
		}
		keyframes = append(keyframes, CurveKeyframe[T]{Time: time, Value: v, Interpolation: h.interpolation(i)})
	}

	if h.tangents {
		for i := range keyframes {
			left, err := c.Decode(r)
			if err != nil {
				return nil, fmt.Errorf("left tangent of keyframe %d: %w", i, err)
			}

			right, err := c.Decode(r)
			if err != nil {
				return nil, fmt.Errorf("right tangent of keyframe %d: %w", i, err)
			}
			keyframes[i].LeftTangent = &left
			keyframes[i].RightTangent = &right
		}
	}

	// Streams from other encoders may use Tangent interpolation without tangent
	// data, so the decoded set is not passed through NewCurve's validation.
	return &Curve[T]{codec: c, Node: h.node, Property: h.property, Keyframes: keyframes}, nil
}
