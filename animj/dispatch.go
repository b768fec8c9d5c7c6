package animj

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/arloliu/animx/errs"
	"github.com/arloliu/animx/format"
	"github.com/arloliu/animx/track"
	"github.com/arloliu/animx/value"
)

// trackTags is the first pass over a track object: just enough to pick a decoder.
type trackTags struct {
	TrackType string         `mapstructure:"trackType"`
	ValueType string         `mapstructure:"valueType"`
	Data      map[string]any `mapstructure:"data"`
}

// trackBody holds the fields shared by every track shape.
type trackBody struct {
	Node      *string `mapstructure:"node"`
	Property  *string `mapstructure:"property"`
	Interval  any     `mapstructure:"interval"`
	Keyframes []any   `mapstructure:"keyframes"`
}

func (b trackBody) node() string {
	if b.Node == nil {
		return ""
	}

	return *b.Node
}

func (b trackBody) property() string {
	if b.Property == nil {
		return ""
	}

	return *b.Property
}

var numberType = reflect.TypeFor[json.Number]()

// rejectNumberAsString stops json.Number, whose kind is string, from being
// accepted where the document requires a string.
func rejectNumberAsString(from, to reflect.Type, data any) (any, error) {
	if from == numberType && to.Kind() == reflect.String {
		return nil, fmt.Errorf("expected a string, got number %v", data)
	}

	return data, nil
}

// bindFields decodes obj into out, ignoring keys out does not declare.
// Keys match their tags exactly; "Node" is an unknown key, not "node".
func bindFields(obj map[string]any, out any, field string) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "mapstructure",
		Result:     out,
		DecodeHook: mapstructure.DecodeHookFuncType(rejectNumberAsString),
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
	})
	if err != nil {
		return err
	}

	if err := dec.Decode(obj); err != nil {
		return &errs.StructuralError{Field: field, Err: err}
	}

	return nil
}

type documentDecoder struct {
	raw      func(body trackBody, field string) (track.Track, error)
	discrete func(body trackBody, field string) (track.Track, error)
	curve    func(body trackBody, field string) (track.Track, error)
}

func bind[T any](c value.Codec[T], p parser[T]) documentDecoder {
	return documentDecoder{
		raw: func(body trackBody, field string) (track.Track, error) {
			return decodeRaw(body, field, c, p)
		},
		discrete: func(body trackBody, field string) (track.Track, error) {
			return decodeDiscrete(body, field, c, p)
		},
		curve: func(body trackBody, field string) (track.Track, error) {
			return decodeCurve(body, field, c, p)
		},
	}
}

// documentDecoders is the single (value kind -> typed decoder) table for the document path.
var documentDecoders = [format.ValueKindCount]documentDecoder{
	format.Byte:   bind(value.ByteCodec, parseByte),
	format.Ushort: bind(value.UshortCodec, parseUshort),
	format.Ulong:  bind(value.UlongCodec, parseUlong),
	format.Sbyte:  bind(value.SbyteCodec, parseSbyte),
	format.Short:  bind(value.ShortCodec, parseShort),
	format.Bool:   bind(value.BoolCodec, parseBool),
	format.Bool2: bind(value.Bool2Codec, vector(2, parseBool, func(c [4]bool) value.Bool2 {
		return value.Bool2{X: c[0], Y: c[1]}
	})),
	format.Bool3: bind(value.Bool3Codec, vector(3, parseBool, func(c [4]bool) value.Bool3 {
		return value.Bool3{X: c[0], Y: c[1], Z: c[2]}
	})),
	format.Bool4: bind(value.Bool4Codec, vector(4, parseBool, func(c [4]bool) value.Bool4 {
		return value.Bool4{X: c[0], Y: c[1], Z: c[2], W: c[3]}
	})),
	format.Int: bind(value.IntCodec, parseInt),
	format.Int2: bind(value.Int2Codec, vector(2, parseInt, func(c [4]int32) value.Int2 {
		return value.Int2{X: c[0], Y: c[1]}
	})),
	format.Int3: bind(value.Int3Codec, vector(3, parseInt, func(c [4]int32) value.Int3 {
		return value.Int3{X: c[0], Y: c[1], Z: c[2]}
	})),
	format.Int4: bind(value.Int4Codec, vector(4, parseInt, func(c [4]int32) value.Int4 {
		return value.Int4{X: c[0], Y: c[1], Z: c[2], W: c[3]}
	})),
	format.Uint: bind(value.UintCodec, parseUint),
	format.Uint2: bind(value.Uint2Codec, vector(2, parseUint, func(c [4]uint32) value.Uint2 {
		return value.Uint2{X: c[0], Y: c[1]}
	})),
	format.Uint3: bind(value.Uint3Codec, vector(3, parseUint, func(c [4]uint32) value.Uint3 {
		return value.Uint3{X: c[0], Y: c[1], Z: c[2]}
	})),
	format.Uint4: bind(value.Uint4Codec, vector(4, parseUint, func(c [4]uint32) value.Uint4 {
		return value.Uint4{X: c[0], Y: c[1], Z: c[2], W: c[3]}
	})),
	format.Long: bind(value.LongCodec, parseLong),
	format.Long2: bind(value.Long2Codec, vector(2, parseLong, func(c [4]int64) value.Long2 {
		return value.Long2{X: c[0], Y: c[1]}
	})),
	format.Long3: bind(value.Long3Codec, vector(3, parseLong, func(c [4]int64) value.Long3 {
		return value.Long3{X: c[0], Y: c[1], Z: c[2]}
	})),
	format.Long4: bind(value.Long4Codec, vector(4, parseLong, func(c [4]int64) value.Long4 {
		return value.Long4{X: c[0], Y: c[1], Z: c[2], W: c[3]}
	})),
	format.Float: bind(value.FloatCodec, parseFloat32),
	format.Float2: bind(value.Float2Codec, vector(2, parseFloat32, func(c [4]float32) value.Float2 {
		return value.Float2{X: c[0], Y: c[1]}
	})),
	format.Float3: bind(value.Float3Codec, vector(3, parseFloat32, func(c [4]float32) value.Float3 {
		return value.Float3{X: c[0], Y: c[1], Z: c[2]}
	})),
	format.Float4: bind(value.Float4Codec, vector(4, parseFloat32, func(c [4]float32) value.Float4 {
		return value.Float4{X: c[0], Y: c[1], Z: c[2], W: c[3]}
	})),
	format.FloatQ: bind(value.FloatQCodec, vector(4, parseFloat32, func(c [4]float32) value.FloatQ {
		return value.FloatQ{X: c[0], Y: c[1], Z: c[2], W: c[3]}
	})),
	format.Float2x2: bind(value.Float2x2Codec, matrix(2, parseFloat32, func(m [4][4]float32) value.Float2x2 {
		return value.Float2x2{{m[0][0], m[0][1]}, {m[1][0], m[1][1]}}
	})),
	format.Float3x3: bind(value.Float3x3Codec, matrix(3, parseFloat32, func(m [4][4]float32) value.Float3x3 {
		return value.Float3x3{
			{m[0][0], m[0][1], m[0][2]},
			{m[1][0], m[1][1], m[1][2]},
			{m[2][0], m[2][1], m[2][2]},
		}
	})),
	format.Float4x4: bind(value.Float4x4Codec, matrix(4, parseFloat32, func(m [4][4]float32) value.Float4x4 {
		return value.Float4x4(m)
	})),
	format.Double: bind(value.DoubleCodec, parseFloat64),
	format.Double2: bind(value.Double2Codec, vector(2, parseFloat64, func(c [4]float64) value.Double2 {
		return value.Double2{X: c[0], Y: c[1]}
	})),
	format.Double3: bind(value.Double3Codec, vector(3, parseFloat64, func(c [4]float64) value.Double3 {
		return value.Double3{X: c[0], Y: c[1], Z: c[2]}
	})),
	format.Double4: bind(value.Double4Codec, vector(4, parseFloat64, func(c [4]float64) value.Double4 {
		return value.Double4{X: c[0], Y: c[1], Z: c[2], W: c[3]}
	})),
	format.DoubleQ: bind(value.DoubleQCodec, vector(4, parseFloat64, func(c [4]float64) value.DoubleQ {
		return value.DoubleQ{X: c[0], Y: c[1], Z: c[2], W: c[3]}
	})),
	format.Double2x2: bind(value.Double2x2Codec, matrix(2, parseFloat64, func(m [4][4]float64) value.Double2x2 {
		return value.Double2x2{{m[0][0], m[0][1]}, {m[1][0], m[1][1]}}
	})),
	format.Double3x3: bind(value.Double3x3Codec, matrix(3, parseFloat64, func(m [4][4]float64) value.Double3x3 {
		return value.Double3x3{
			{m[0][0], m[0][1], m[0][2]},
			{m[1][0], m[1][1], m[1][2]},
			{m[2][0], m[2][1], m[2][2]},
		}
	})),
	format.Double4x4: bind(value.Double4x4Codec, matrix(4, parseFloat64, func(m [4][4]float64) value.Double4x4 {
		return value.Double4x4(m)
	})),
	format.Color:     bind(value.ColorCodec, parseColor),
	format.Color32:   bind(value.Color32Codec, parseColor32),
	format.OptString: bind(value.OptStringCodec, parseOptString),
}

// decodeTrack runs the two-pass read of one track object: tags first, then
// the body as the concrete (track kind, value kind) pair they name.
func decodeTrack(node any, field string) (track.Track, error) {
	obj, ok := node.(map[string]any)
	if !ok {
		return nil, errs.NewStructuralError(field, "expected an object, got %T", node)
	}

	var tags trackTags
	if err := bindFields(obj, &tags, field); err != nil {
		return nil, err
	}

	if tags.TrackType == "" {
		return nil, errs.NewStructuralError(field+".trackType", "missing")
	}
	trackKind, ok := format.ParseTrackKind(tags.TrackType)
	if !ok {
		return nil, &errs.StructuralError{
			Field: field + ".trackType",
			Err:   fmt.Errorf("%w: %q", errs.ErrIncorrectTrackType, tags.TrackType),
		}
	}

	if tags.ValueType == "" {
		return nil, errs.NewStructuralError(field+".valueType", "missing")
	}
	valueKind, ok := format.ParseValueKind(tags.ValueType)
	if !ok {
		return nil, &errs.StructuralError{
			Field: field + ".valueType",
			Err:   fmt.Errorf("%w: %q", errs.ErrIncorrectValueType, tags.ValueType),
		}
	}

	if trackKind == format.TrackBezier {
		return nil, fmt.Errorf("%w: %s is a %s/%s track", errs.ErrUnimplemented, field, trackKind, valueKind)
	}

	bodyObj, bodyField := obj, field
	if tags.Data != nil {
		bodyObj, bodyField = tags.Data, field+".data"
	}

	body, err := readBody(bodyObj, bodyField)
	if err != nil {
		return nil, err
	}

	dec := documentDecoders[valueKind]
	switch trackKind {
	case format.TrackRaw:
		return dec.raw(body, bodyField)
	case format.TrackDiscrete:
		return dec.discrete(body, bodyField)
	default:
		return dec.curve(body, bodyField)
	}
}

func readBody(obj map[string]any, field string) (trackBody, error) {
	var body trackBody

	frames, ok := obj["keyframes"]
	if !ok {
		return body, errs.NewStructuralError(field+".keyframes", "missing")
	}
	if _, ok := frames.([]any); !ok {
		return body, errs.NewStructuralError(field+".keyframes", "expected an array, got %T", frames)
	}

	if err := bindFields(obj, &body, field); err != nil {
		return body, err
	}

	return body, nil
}

func decodeRaw[T any](body trackBody, field string, c value.Codec[T], p parser[T]) (track.Track, error) {
	var interval float32
	if body.Interval != nil {
		var err error
		if interval, err = parseFloat32(body.Interval, field+".interval"); err != nil {
			return nil, err
		}
	}

	frames := make([]T, 0, len(body.Keyframes))
	for j, node := range body.Keyframes {
		v, err := p(node, fmt.Sprintf("%s.keyframes[%d]", field, j))
		if err != nil {
			return nil, err
		}
		frames = append(frames, v)
	}

	return track.NewRaw(c, body.node(), body.property(), interval, frames), nil
}

// keyframeObject checks that node is a keyframe object and reads its time.
func keyframeObject(node any, field string) (map[string]any, float32, error) {
	obj, ok := node.(map[string]any)
	if !ok {
		return nil, 0, errs.NewStructuralError(field, "expected an object, got %T", node)
	}

	t, ok := obj["time"]
	if !ok {
		return nil, 0, errs.NewStructuralError(field+".time", "missing")
	}

	time, err := parseFloat32(t, field+".time")
	if err != nil {
		return nil, 0, err
	}

	return obj, time, nil
}

func member[T any](obj map[string]any, key, field string, p parser[T]) (T, error) {
	node, ok := obj[key]
	if !ok {
		var zero T
		return zero, errs.NewStructuralError(field+"."+key, "missing")
	}

	return p(node, field+"."+key)
}

func decodeDiscrete[T any](body trackBody, field string, c value.Codec[T], p parser[T]) (track.Track, error) {
	keyframes := make([]track.DiscreteKeyframe[T], 0, len(body.Keyframes))
	for j, node := range body.Keyframes {
		kfField := fmt.Sprintf("%s.keyframes[%d]", field, j)

		obj, time, err := keyframeObject(node, kfField)
		if err != nil {
			return nil, err
		}

		v, err := member(obj, "value", kfField, p)
		if err != nil {
			return nil, err
		}

		keyframes = append(keyframes, track.DiscreteKeyframe[T]{Time: time, Value: v})
	}

	return track.NewDiscrete(c, body.node(), body.property(), keyframes), nil
}

func parseInterpolation(node any, field string) (format.Interpolation, error) {
	name, ok := node.(string)
	if !ok {
		return 0, errs.NewStructuralError(field, "expected an interpolation name, got %T", node)
	}

	interp, ok := format.ParseInterpolation(name)
	if !ok {
		return 0, &errs.StructuralError{
			Field: field,
			Err:   fmt.Errorf("%w: %q", errs.ErrIncorrectInterpolationType, name),
		}
	}

	return interp, nil
}

// optionalMember parses obj[key] when present and not null.
func optionalMember[T any](obj map[string]any, key, field string, p parser[T]) (*T, error) {
	node, ok := obj[key]
	if !ok || node == nil {
		return nil, nil
	}

	v, err := p(node, field+"."+key)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

func decodeCurve[T any](body trackBody, field string, c value.Codec[T], p parser[T]) (track.Track, error) {
	keyframes := make([]track.CurveKeyframe[T], 0, len(body.Keyframes))
	for j, node := range body.Keyframes {
		kfField := fmt.Sprintf("%s.keyframes[%d]", field, j)

		obj, time, err := keyframeObject(node, kfField)
		if err != nil {
			return nil, err
		}

		v, err := member(obj, "value", kfField, p)
		if err != nil {
			return nil, err
		}

		interp, err := member(obj, "interpolation", kfField, parseInterpolation)
		if err != nil {
			return nil, err
		}

		kf := track.CurveKeyframe[T]{Time: time, Value: v, Interpolation: interp}
		if kf.LeftTangent, err = optionalMember(obj, "leftTangent", kfField, p); err != nil {
			return nil, err
		}
		if kf.RightTangent, err = optionalMember(obj, "rightTangent", kfField, p); err != nil {
			return nil, err
		}

		keyframes = append(keyframes, kf)
	}

	t, err := track.NewCurve(c, body.node(), body.property(), keyframes)
	if err != nil {
		return nil, &errs.StructuralError{Field: field + ".keyframes", Err: err}
	}

	return t, nil
}
