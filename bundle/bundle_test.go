package bundle

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/animx/anim"
	"github.com/arloliu/animx/compress"
	"github.com/arloliu/animx/errs"
	"github.com/arloliu/animx/format"
	"github.com/arloliu/animx/internal/hash"
	"github.com/arloliu/animx/section"
	"github.com/arloliu/animx/track"
	"github.com/arloliu/animx/value"
)

func walkClip() *anim.Animation {
	return anim.New("walk", 1.5,
		track.NewRaw(value.Float3Codec, "Hips", "Position", 1.0/30, []value.Float3{{X: 0}, {X: 0.1}, {X: 0.2}}),
		track.NewDiscrete(value.OptStringCodec, "Face", "Expression", []track.DiscreteKeyframe[value.OptString]{
			{Time: 0, Value: value.String("neutral")},
		}),
	)
}

func runClip() *anim.Animation {
	return anim.New("run", 0.8,
		track.NewRaw(value.Float3Codec, "Hips", "Position", 1.0/30, []value.Float3{{Z: 0}, {Z: 0.5}}),
	)
}

func encodeClip(t *testing.T, a *anim.Animation) []byte {
	t.Helper()

	enc, err := anim.NewEncoder()
	require.NoError(t, err)
	data, err := enc.Encode(a)
	require.NoError(t, err)

	return data
}

func buildBundle(t *testing.T, opts ...WriterOption) []byte {
	t.Helper()

	w, err := NewWriter(opts...)
	require.NoError(t, err)
	require.NoError(t, w.Add("walk", walkClip()))
	require.NoError(t, w.Add("run", runClip()))
	require.Equal(t, 2, w.Len())

	data, err := w.Finish()
	require.NoError(t, err)

	return data
}

func TestBundle_RoundTrip(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			data := buildBundle(t, WithCompression(ct))

			r, err := Open(data)
			require.NoError(t, err)
			require.Equal(t, 2, r.Len())
			require.Equal(t, ct, r.Compression())
			require.Equal(t, []string{"walk", "run"}, r.Names())
			require.True(t, r.Has("run"))
			require.False(t, r.Has("jump"))

			stream, err := r.Raw("walk")
			require.NoError(t, err)
			require.Equal(t, encodeClip(t, walkClip()), stream)

			run, err := r.Get("run")
			require.NoError(t, err)
			require.Equal(t, "run", run.Name)
			require.Equal(t, float32(0.8), run.GlobalDuration)
			require.Len(t, run.Tracks, 1)
			require.Equal(t, encodeClip(t, runClip()), encodeClip(t, run))

			walk, err := r.GetByID(hash.ClipID("walk"))
			require.NoError(t, err)
			require.Equal(t, "walk", walk.Name)
			require.Len(t, walk.Tracks, 2)
		})
	}
}

func TestBundle_Layout(t *testing.T) {
	data := buildBundle(t, WithCompression(format.CompressionNone))

	header, err := section.ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, uint32(2), header.ClipCount)
	require.Equal(t, uint32(section.HeaderSize+2*section.IndexEntrySize), header.NamesOffset)
	require.Equal(t, header.NamesOffset+2+4+2+3, header.PayloadOffset)
	require.Equal(t, header.RawLength, header.PayloadLength)
	require.Len(t, data, int(header.PayloadOffset+header.PayloadLength))

	walk := encodeClip(t, walkClip())
	run := encodeClip(t, runClip())
	require.Equal(t, append(bytes.Clone(walk), run...), data[header.PayloadOffset:])

	second, err := section.ParseIndexEntry(data[section.IndexOffset+section.IndexEntrySize:])
	require.NoError(t, err)
	require.Equal(t, hash.ClipID("run"), second.ClipID)
	require.Equal(t, uint32(len(walk)), second.Offset)
	require.Equal(t, uint32(len(run)), second.Length)
}

func TestBundle_All(t *testing.T) {
	r, err := Open(buildBundle(t))
	require.NoError(t, err)

	var names []string
	for name, stream := range r.All() {
		names = append(names, name)
		require.True(t, bytes.HasPrefix(stream, []byte("\x05AnimX")))
	}
	require.Equal(t, []string{"walk", "run"}, names)

	// early break stops the iteration
	count := 0
	for range r.All() {
		count++
		break
	}
	require.Equal(t, 1, count)
}

func TestBundle_Lookups(t *testing.T) {
	r, err := Open(buildBundle(t))
	require.NoError(t, err)

	_, err = r.Get("jump")
	require.ErrorIs(t, err, errs.ErrClipNotFound)

	_, err = r.Raw("jump")
	require.ErrorIs(t, err, errs.ErrClipNotFound)

	_, err = r.GetByID(hash.ClipID("jump"))
	require.ErrorIs(t, err, errs.ErrClipNotFound)

	// an ID shared by several clips cannot be resolved
	ambiguous := &Reader{byID: map[uint64]int{7: -1}}
	_, err = ambiguous.GetByID(7)
	require.ErrorIs(t, err, errs.ErrHashCollision)
}

func TestWriter_Errors(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)

	require.ErrorIs(t, w.Add("", walkClip()), errs.ErrInvalidClipName)
	require.ErrorIs(t, w.AddEncoded("bad\xff", nil), errs.ErrInvalidClipName)
	require.ErrorIs(t, w.Add("nil", nil), errs.ErrNilAnimation)

	require.NoError(t, w.Add("walk", walkClip()))
	require.ErrorIs(t, w.Add("walk", runClip()), errs.ErrClipAlreadyAdded)
	require.Equal(t, 1, w.Len())

	_, err = w.Finish()
	require.NoError(t, err)

	_, err = w.Finish()
	require.ErrorIs(t, err, errs.ErrBundleFinished)
	require.ErrorIs(t, w.Add("run", runClip()), errs.ErrBundleFinished)
	require.ErrorIs(t, w.AddEncoded("run", nil), errs.ErrBundleFinished)

	empty, err := NewWriter()
	require.NoError(t, err)
	_, err = empty.Finish()
	require.ErrorIs(t, err, errs.ErrNoClipsAdded)
	_, err = empty.Finish()
	require.ErrorIs(t, err, errs.ErrBundleFinished)
}

func TestWriter_Options(t *testing.T) {
	_, err := NewWriter(WithCompression(format.CompressionType(0)))
	require.Error(t, err)

	_, err = NewWriter(WithLogger(nil))
	require.Error(t, err)

	_, err = NewWriter(WithEncoderOptions(anim.WithLogger(nil)))
	require.Error(t, err)

	_, err = Open(buildBundle(t), WithDecoderOptions(anim.WithMaxTracks(0)))
	require.Error(t, err)

	// a decoder limit applies to every clip
	r, err := Open(buildBundle(t), WithDecoderOptions(anim.WithMaxTracks(1)))
	require.NoError(t, err)
	_, err = r.Get("walk")
	require.ErrorIs(t, err, errs.ErrTooManyTracks)
	_, err = r.Get("run")
	require.NoError(t, err)
}

func TestWriter_CompactClips(t *testing.T) {
	curve, err := track.NewCurve(value.FloatCodec, "Arm", "Weight", []track.CurveKeyframe[float32]{
		{Time: 0, Value: 0, Interpolation: format.InterpolationLinear},
		{Time: 1, Value: 1, Interpolation: format.InterpolationLinear},
	})
	require.NoError(t, err)
	clip := anim.New("", 0, curve)

	plain, err := NewWriter(WithCompression(format.CompressionNone))
	require.NoError(t, err)
	require.NoError(t, plain.Add("c", clip))

	compact, err := NewWriter(
		WithCompression(format.CompressionNone),
		WithEncoderOptions(anim.WithCompactInterpolation(true)),
	)
	require.NoError(t, err)
	require.NoError(t, compact.Add("c", clip))

	a, err := plain.Finish()
	require.NoError(t, err)
	b, err := compact.Finish()
	require.NoError(t, err)
	require.Len(t, b, len(a)-1)
}

func TestWriter_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	buildBundle(t, WithLogger(logger), WithCompression(format.CompressionS2))
	require.Contains(t, buf.String(), "finished bundle")
	require.Contains(t, buf.String(), "clips=2")
	require.Contains(t, buf.String(), "compression=S2")
}

func TestOpen_MaxRawSize(t *testing.T) {
	data := buildBundle(t, WithCompression(format.CompressionLZ4))
	header, err := section.ParseHeader(data)
	require.NoError(t, err)

	_, err = Open(data, WithMaxRawSize(0))
	require.Error(t, err)

	_, err = Open(data, WithMaxRawSize(uint64(header.RawLength)-1))
	require.ErrorIs(t, err, errs.ErrBundleTooLarge)

	r, err := Open(data, WithMaxRawSize(uint64(header.RawLength)))
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())

	// a raw length under the limit but beyond what the block can expand to
	// is rejected before the output buffer is allocated
	tampered := bytes.Clone(data)
	copy(tampered[20:24], []byte{0x00, 0x00, 0x00, 0x08}) // 128 MiB
	_, err = Open(tampered)
	require.ErrorIs(t, err, compress.ErrSizeMismatch)
}

func TestOpen_Corrupt(t *testing.T) {
	valid := buildBundle(t, WithCompression(format.CompressionNone))
	header, err := section.ParseHeader(valid)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func([]byte) []byte
		err    error
	}{
		{"short header", func(b []byte) []byte { return b[:section.HeaderSize-1] }, errs.ErrInvalidHeaderSize},
		{"magic", func(b []byte) []byte { b[0] ^= 0xFF; return b }, errs.ErrInvalidMagicNumber},
		{"version", func(b []byte) []byte { b[2] = 2; return b }, errs.ErrInvalidBundleVersion},
		{"compression", func(b []byte) []byte { b[3] = 9; return b }, errs.ErrInvalidCompression},
		{"clip count", func(b []byte) []byte { b[4] = 3; return b }, errs.ErrInvalidIndexOffsets},
		{"truncated payload", func(b []byte) []byte { return b[:len(b)-1] }, errs.ErrOffsetOutOfRange},
		{
			"clip beyond payload",
			func(b []byte) []byte {
				b[section.IndexOffset+12] = 0xFF
				b[section.IndexOffset+13] = 0xFF
				return b
			},
			errs.ErrOffsetOutOfRange,
		},
		{"renamed clip", func(b []byte) []byte { b[header.NamesOffset+2] = 'W'; return b }, errs.ErrHashMismatch},
		{"empty name", func(b []byte) []byte { b[header.NamesOffset] = 0; return b }, errs.ErrInvalidClipName},
		{"payload byte", func(b []byte) []byte { b[header.PayloadOffset] ^= 0xFF; return b }, errs.ErrChecksumMismatch},
		{"raw length", func(b []byte) []byte { b[20]++; return b }, compress.ErrSizeMismatch},
		{
			"huge raw length",
			func(b []byte) []byte {
				copy(b[20:24], []byte{0x00, 0x00, 0x00, 0x40}) // 1 GiB
				return b
			},
			errs.ErrBundleTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.mutate(bytes.Clone(valid)))
			require.ErrorIs(t, err, tt.err)
		})
	}
}
