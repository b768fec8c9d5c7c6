package animx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/animx/anim"
	"github.com/arloliu/animx/bundle"
	"github.com/arloliu/animx/errs"
	"github.com/arloliu/animx/format"
	"github.com/arloliu/animx/track"
	"github.com/arloliu/animx/value"
)

const waveDoc = `{
  "name": "wave",
  "globalDuration": 2,
  "tracks": [
    {"trackType": "Raw", "valueType": "float", "node": "Arm", "property": "Angle", "interval": 0.5, "keyframes": [0, 45, 90]},
    {
      "trackType": "Curve",
      "valueType": "color",
      "data": {
        "node": "Hand",
        "property": "Tint",
        "keyframes": [
          {"time": 0, "value": {"r": 1, "g": 0, "b": 0, "a": 1}, "interpolation": "Linear"},
          {"time": 2, "value": {"r": 0, "g": 0, "b": 1, "a": 1}, "interpolation": "Linear"}
        ]
      }
    }
  ]
}`

const waveYAML = `
name: wave
globalDuration: 2
tracks:
  - trackType: Raw
    valueType: float
    node: Arm
    property: Angle
    interval: 0.5
    keyframes: [0, 45, 90]
  - trackType: Curve
    valueType: color
    data:
      node: Hand
      property: Tint
      keyframes:
        - {time: 0, value: {r: 1, g: 0, b: 0, a: 1}, interpolation: Linear}
        - {time: 2, value: {r: 0, g: 0, b: 1, a: 1}, interpolation: Linear}
`

func TestConvert(t *testing.T) {
	stream, err := Convert([]byte(waveDoc))
	require.NoError(t, err)

	a, err := Decode(stream)
	require.NoError(t, err)
	require.Equal(t, "wave", a.Name)
	require.Equal(t, float32(2), a.GlobalDuration)
	require.Len(t, a.Tracks, 2)

	trackKind, valueKind := a.Tracks[1].Tag()
	require.Equal(t, format.TrackCurve, trackKind)
	require.Equal(t, format.Color, valueKind)

	raw, ok := a.Tracks[0].(*track.Raw[float32])
	require.True(t, ok)
	require.Equal(t, []float32{0, 45, 90}, raw.Frames)

	// decoding and re-encoding is stable
	again, err := Encode(a)
	require.NoError(t, err)
	require.Equal(t, stream, again)
}

func TestConvertYAML(t *testing.T) {
	fromJSON, err := Convert([]byte(waveDoc))
	require.NoError(t, err)

	fromYAML, err := ConvertYAML([]byte(waveYAML))
	require.NoError(t, err)
	require.Equal(t, fromJSON, fromYAML)
}

func TestConvert_Options(t *testing.T) {
	plain, err := Convert([]byte(waveDoc))
	require.NoError(t, err)

	compact, err := Convert([]byte(waveDoc), anim.WithCompactInterpolation(true))
	require.NoError(t, err)
	require.Len(t, compact, len(plain)-1)

	_, err = Convert([]byte(waveDoc), anim.WithLogger(nil))
	require.Error(t, err)
}

func TestConvert_Errors(t *testing.T) {
	_, err := Convert([]byte(`{"tracks": [{"trackType": "Raw", "valueType": "float4x5", "keyframes": []}]}`))
	require.ErrorIs(t, err, errs.ErrIncorrectValueType)

	_, err = Convert([]byte(`{"tracks": {}}`))
	require.ErrorIs(t, err, errs.ErrStructural)

	_, err = Convert([]byte(`{"tracks": [`))
	require.Error(t, err)

	_, err = ConvertYAML([]byte("tracks: 3"))
	require.ErrorIs(t, err, errs.ErrStructural)
}

func TestDecode_Options(t *testing.T) {
	stream, err := Convert([]byte(waveDoc))
	require.NoError(t, err)

	_, err = Decode(stream, anim.WithMaxTracks(1))
	require.ErrorIs(t, err, errs.ErrTooManyTracks)

	_, err = Decode(stream[:len(stream)-1])
	require.ErrorIs(t, err, errs.ErrTruncatedInput)
}

func TestEncode_Code(t *testing.T) {
	clip := anim.New("flags", 0,
		track.NewDiscrete(value.BoolCodec, "Door", "Open", []track.DiscreteKeyframe[bool]{
			{Time: 0, Value: false},
			{Time: 1, Value: true},
		}),
	)

	stream, err := Encode(clip)
	require.NoError(t, err)

	a, err := Decode(stream)
	require.NoError(t, err)
	discrete, ok := a.Tracks[0].(*track.Discrete[bool])
	require.True(t, ok)
	require.Equal(t, clip.Tracks[0].(*track.Discrete[bool]).Keyframes, discrete.Keyframes)

	_, err = Encode(nil)
	require.ErrorIs(t, err, errs.ErrNilAnimation)
}

func TestBundle(t *testing.T) {
	wave, err := FromAnimJ([]byte(waveDoc))
	require.NoError(t, err)
	fromYAML, err := FromAnimJYAML([]byte(waveYAML))
	require.NoError(t, err)

	w, err := NewBundleWriter(bundle.WithCompression(format.CompressionLZ4))
	require.NoError(t, err)
	require.NoError(t, w.Add("wave", wave))
	require.NoError(t, w.Add("wave/yaml", fromYAML))

	data, err := w.Finish()
	require.NoError(t, err)

	r, err := OpenBundle(data)
	require.NoError(t, err)
	require.Equal(t, []string{"wave", "wave/yaml"}, r.Names())

	a, err := r.GetByID(ClipID("wave/yaml"))
	require.NoError(t, err)
	require.Equal(t, "wave", a.Name)

	first, err := r.Raw("wave")
	require.NoError(t, err)
	second, err := r.Raw("wave/yaml")
	require.NoError(t, err)
	require.Equal(t, first, second)
}
