package anim

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/animx/errs"
	"github.com/arloliu/animx/format"
	"github.com/arloliu/animx/track"
	"github.com/arloliu/animx/value"
)

// walkHeader is the stream for an Animation named "walk" lasting 1.5 seconds with no tracks.
var walkHeader = []byte{
	0x05, 'A', 'n', 'i', 'm', 'X', // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x00,                   // track count
	0x00, 0x00, 0xC0, 0x3F, // 1.5
	0x04, 'w', 'a', 'l', 'k', // name
	0x00, // encoding
}

func newCodec(t *testing.T) (*Encoder, *Decoder) {
	t.Helper()

	enc, err := NewEncoder()
	require.NoError(t, err)
	dec, err := NewDecoder()
	require.NoError(t, err)

	return enc, dec
}

func mustCurve[T any](t *testing.T, c value.Codec[T], node, property string, kfs []track.CurveKeyframe[T]) *track.Curve[T] {
	t.Helper()

	tr, err := track.NewCurve(c, node, property, kfs)
	require.NoError(t, err)

	return tr
}

func TestEncode_Header(t *testing.T) {
	enc, dec := newCodec(t)

	data, err := enc.Encode(New("walk", 1.5))
	require.NoError(t, err)
	require.Equal(t, walkHeader, data)

	a, err := dec.DecodeBytes(data)
	require.NoError(t, err)
	require.Equal(t, "walk", a.Name)
	require.Equal(t, float32(1.5), a.GlobalDuration)
	require.Empty(t, a.Tracks)
	require.Equal(t, 0, a.TrackCount())
}

func TestEncode_AbsentHeaderFields(t *testing.T) {
	enc, dec := newCodec(t)

	data, err := enc.Encode(&Animation{})
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x05, 'A', 'n', 'i', 'm', 'X',
		0x01, 0x00, 0x00, 0x00,
		0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00,
		0x00,
	}, data)

	a, err := dec.DecodeBytes(data)
	require.NoError(t, err)
	require.Empty(t, a.Name)
	require.Zero(t, a.GlobalDuration)
}

func TestRoundTrip_MixedTracks(t *testing.T) {
	enc, dec := newCodec(t)

	a := New("jump", 2)
	a.AddTrack(track.NewRaw(value.FloatCodec, "Hips", "Height", 0.1, []float32{0, 1, 2}))
	a.AddTrack(track.NewDiscrete(value.BoolCodec, "Light", "Enabled", []track.DiscreteKeyframe[bool]{
		{Time: 0, Value: true},
		{Time: 1, Value: false},
	}))
	a.AddTrack(mustCurve(t, value.FloatQCodec, "Head", "Rotation", []track.CurveKeyframe[value.FloatQ]{
		{Time: 0, Value: value.FloatQ{W: 1}, Interpolation: format.InterpolationLinear},
		{Time: 2, Value: value.FloatQ{Y: 1}, Interpolation: format.InterpolationHold},
	}))
	a.AddTrack(track.NewDiscrete(value.OptStringCodec, "", "Label", []track.DiscreteKeyframe[value.OptString]{
		{Time: 0, Value: value.OptString{}},
		{Time: 0.5, Value: value.String("go")},
	}))

	data, err := enc.Encode(a)
	require.NoError(t, err)

	got, err := dec.DecodeBytes(data)
	require.NoError(t, err)
	require.Equal(t, a.Name, got.Name)
	require.Equal(t, a.GlobalDuration, got.GlobalDuration)
	require.Len(t, got.Tracks, 4)

	// track order and tags are preserved
	for i := range a.Tracks {
		wantTrack, wantValue := a.Tracks[i].Tag()
		gotTrack, gotValue := got.Tracks[i].Tag()
		require.Equal(t, wantTrack, gotTrack)
		require.Equal(t, wantValue, gotValue)
	}

	raw := got.Tracks[0].(*track.Raw[float32])
	require.Equal(t, []float32{0, 1, 2}, raw.Frames)
	require.Equal(t, float32(0.1), raw.Interval)

	curve := got.Tracks[2].(*track.Curve[value.FloatQ])
	require.Equal(t, a.Tracks[2].(*track.Curve[value.FloatQ]).Keyframes, curve.Keyframes)

	label := got.Tracks[3].(*track.Discrete[value.OptString])
	require.False(t, label.Keyframes[0].Value.Valid)
	require.Equal(t, value.String("go"), label.Keyframes[1].Value)

	// re-encoding the decoded animation reproduces the stream
	again, err := enc.Encode(got)
	require.NoError(t, err)
	require.Equal(t, data, again)
}

func TestEncode_CompactInterpolation(t *testing.T) {
	curve := mustCurve(t, value.ByteCodec, "", "", []track.CurveKeyframe[uint8]{
		{Time: 0, Value: 1, Interpolation: format.InterpolationLinear},
		{Time: 1, Value: 2, Interpolation: format.InterpolationLinear},
		{Time: 2, Value: 3, Interpolation: format.InterpolationLinear},
	})
	a := New("", 0, curve)

	defaultEnc, dec := newCodec(t)
	compactEnc, err := NewEncoder(WithCompactInterpolation(true))
	require.NoError(t, err)

	full, err := defaultEnc.Encode(a)
	require.NoError(t, err)
	compact, err := compactEnc.Encode(a)
	require.NoError(t, err)
	require.Len(t, compact, len(full)-2)

	for _, data := range [][]byte{full, compact} {
		got, err := dec.DecodeBytes(data)
		require.NoError(t, err)
		require.Equal(t, curve.Keyframes, got.Tracks[0].(*track.Curve[uint8]).Keyframes)
	}
}

func TestEncodeTo(t *testing.T) {
	enc, _ := newCodec(t)

	var buf bytes.Buffer
	n, err := enc.EncodeTo(&buf, New("walk", 1.5))
	require.NoError(t, err)
	require.Equal(t, int64(len(walkHeader)), n)
	require.Equal(t, walkHeader, buf.Bytes())

	// nothing reaches the sink on failure
	buf.Reset()
	bad := New("bad", 0, &track.Curve[float32]{})
	_, err = enc.EncodeTo(&buf, bad)
	require.ErrorIs(t, err, errs.ErrIncorrectValueType)
	require.Zero(t, buf.Len())
}

func TestEncode_Errors(t *testing.T) {
	enc, _ := newCodec(t)

	_, err := enc.Encode(nil)
	require.ErrorIs(t, err, errs.ErrNilAnimation)

	_, err = enc.Encode(New("x", 0, nil))
	require.ErrorIs(t, err, errs.ErrNilTrack)

	one := float32(1)
	curve := mustCurve(t, value.FloatCodec, "", "", []track.CurveKeyframe[float32]{{Time: 0}})
	curve.Keyframes = append(curve.Keyframes, track.CurveKeyframe[float32]{Time: 1, LeftTangent: &one, RightTangent: &one})
	_, err = enc.Encode(New("x", 0, curve))
	require.ErrorIs(t, err, errs.ErrInconsistentTangents)
	require.Contains(t, err.Error(), "track 0")
}

func TestDecode_HeaderErrors(t *testing.T) {
	_, dec := newCodec(t)

	mutate := func(fn func([]byte)) []byte {
		data := bytes.Clone(walkHeader)
		fn(data)

		return data
	}

	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{"wrong magic", mutate(func(b []byte) { b[1] = 'a' }), errs.ErrIncorrectHeader},
		{"wrong magic length", mutate(func(b []byte) { b[0] = 0x04 }), errs.ErrIncorrectHeader},
		{"version 2", mutate(func(b []byte) { b[6] = 0x02 }), errs.ErrUnsupportedVersion},
		{"compressed", mutate(func(b []byte) { b[len(b)-1] = 0x01 }), errs.ErrUnsupportedEncoding},
		{"empty", nil, errs.ErrTruncatedInput},
		{"truncated name", walkHeader[:17], errs.ErrTruncatedInput},
		{"missing encoding", walkHeader[:len(walkHeader)-1], errs.ErrTruncatedInput},
		{"missing track", mutate(func(b []byte) { b[10] = 0x01 }), errs.ErrTruncatedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := dec.DecodeBytes(tt.data)
			require.ErrorIs(t, err, tt.err)
			require.Nil(t, a)
		})
	}
}

func TestDecode_TrackErrors(t *testing.T) {
	_, dec := newCodec(t)

	withTrack := func(record ...byte) []byte {
		data := bytes.Clone(walkHeader)
		data[10] = 0x01

		return append(data, record...)
	}

	_, err := dec.DecodeBytes(withTrack(0x04, 0x15))
	require.ErrorIs(t, err, errs.ErrIncorrectTrackType)
	require.Contains(t, err.Error(), "track 0 at offset 21")

	_, err = dec.DecodeBytes(withTrack(0x03, 0x15))
	require.ErrorIs(t, err, errs.ErrUnimplemented)

	_, err = dec.DecodeBytes(withTrack(0x00, 0xFF))
	require.ErrorIs(t, err, errs.ErrIncorrectValueType)

	// invalid UTF-8 in a node name
	_, err = dec.DecodeBytes(withTrack(0x00, 0x00, 0x01, 0xFF))
	require.ErrorIs(t, err, errs.ErrInvalidText)
}

func TestDecode_Limits(t *testing.T) {
	dec, err := NewDecoder(WithMaxTracks(1), WithMaxFrames(2))
	require.NoError(t, err)

	twoTracks := bytes.Clone(walkHeader)
	twoTracks[10] = 0x02
	_, err = dec.DecodeBytes(twoTracks)
	require.ErrorIs(t, err, errs.ErrTooManyTracks)

	threeFrames := bytes.Clone(walkHeader)
	threeFrames[10] = 0x01
	threeFrames = append(threeFrames, 0x00, 0x00, 0x00, 0x00, 0x03)
	_, err = dec.DecodeBytes(threeFrames)
	require.ErrorIs(t, err, errs.ErrTooManyFrames)
}

func TestDecode_LeavesTrailingBytes(t *testing.T) {
	_, dec := newCodec(t)

	src := bytes.NewReader(append(bytes.Clone(walkHeader), 0xEE))
	a, err := dec.Decode(src)
	require.NoError(t, err)
	require.Equal(t, "walk", a.Name)
	require.Equal(t, 1, src.Len())
}

func TestOptions(t *testing.T) {
	_, err := NewEncoder(WithLogger(nil))
	require.Error(t, err)

	_, err = NewDecoder(WithDecoderLogger(nil))
	require.Error(t, err)

	_, err = NewDecoder(WithMaxTracks(0))
	require.Error(t, err)

	_, err = NewDecoder(WithMaxFrames(0))
	require.Error(t, err)

	_, err = NewEncoder(nil)
	require.NoError(t, err, "nil options are skipped")
}

func TestLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	enc, err := NewEncoder(WithLogger(logger))
	require.NoError(t, err)
	dec, err := NewDecoder(WithDecoderLogger(logger))
	require.NoError(t, err)

	a := New("walk", 1.5, track.NewRaw(value.IntCodec, "", "", 0, []int32{1}))
	data, err := enc.Encode(a)
	require.NoError(t, err)
	_, err = dec.DecodeBytes(data)
	require.NoError(t, err)

	out := logs.String()
	require.Contains(t, out, "encoded animation")
	require.Contains(t, out, "decoded header")
	require.Contains(t, out, "decoded track")
	require.Contains(t, out, "value=int")
}

func TestDecode_ErrorsAreTerminal(t *testing.T) {
	_, dec := newCodec(t)

	data := bytes.Clone(walkHeader)
	data[10] = 0x02
	data = append(data, 0x00, byte(format.Byte), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x09)

	a, err := dec.DecodeBytes(data)
	require.Error(t, err)
	require.Nil(t, a, "no partial animation on failure")
	require.ErrorIs(t, err, errs.ErrIncorrectTrackType)
	require.Contains(t, err.Error(), "track 1")
}
