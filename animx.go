// Package animx converts AnimJ animation documents into AnimX binary streams
// and reads those streams back.
//
// AnimX is a compact little-endian binary format for keyframe animation
// clips. A clip is a header (magic, version, track count, optional global
// duration and name, encoding byte) followed by tracks. Each track animates
// one property of one node as a Raw, Discrete or Curve keyframe set of one of
// forty value kinds, from bytes and booleans up to 4x4 double matrices,
// colors and optional strings.
//
// AnimJ is the equivalent JSON (or YAML) document shape produced by authoring
// tools.
//
// # Basic Usage
//
// Converting a document:
//
//	import "github.com/arloliu/animx"
//
//	stream, err := animx.Convert(jsonDoc)
//
// Decoding a stream:
//
//	clip, err := animx.Decode(stream)
//	for _, t := range clip.Tracks {
//	    trackKind, valueKind := t.Tag()
//	    fmt.Println(trackKind, valueKind)
//	}
//
// Building a clip in code:
//
//	clip := anim.New("wave", 2,
//	    track.NewRaw(value.FloatCodec, "Arm", "Angle", 1.0/30, angles),
//	)
//	stream, err := animx.Encode(clip)
//
// # Package Structure
//
// This package provides convenient top-level wrappers. For fine-grained
// control use the packages directly:
//   - anim: the Animation type and the AnimX Encoder and Decoder
//   - animj: the AnimJ document decoder
//   - track, value: keyframe sets and the value kinds they hold
//   - bundle: many named clips in one compressed container
package animx

import (
	"github.com/arloliu/animx/anim"
	"github.com/arloliu/animx/animj"
	"github.com/arloliu/animx/bundle"
	"github.com/arloliu/animx/internal/hash"
)

// FromAnimJ decodes an AnimJ JSON document into an Animation.
//
// Returns:
//   - *anim.Animation: the decoded animation
//   - error: a parse error, an errs.StructuralError for a malformed document,
//     or a tag error such as errs.ErrIncorrectValueType
func FromAnimJ(data []byte) (*anim.Animation, error) {
	d, err := animj.NewDecoder()
	if err != nil {
		return nil, err
	}

	return d.DecodeJSON(data)
}

// FromAnimJYAML decodes an AnimJ document written as YAML into an Animation.
func FromAnimJYAML(data []byte) (*anim.Animation, error) {
	d, err := animj.NewDecoder()
	if err != nil {
		return nil, err
	}

	return d.DecodeYAML(data)
}

// Encode writes a as an AnimX stream.
//
// Parameters:
//   - a: the animation to encode
//   - opts: optional encoder configuration (anim.WithCompactInterpolation, anim.WithLogger)
func Encode(a *anim.Animation, opts ...anim.EncoderOption) ([]byte, error) {
	e, err := anim.NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return e.Encode(a)
}

// Decode reads one AnimX stream.
//
// Parameters:
//   - data: the stream; bytes after its end are ignored
//   - opts: optional decoder configuration (anim.WithMaxTracks, anim.WithMaxFrames, anim.WithDecoderLogger)
func Decode(data []byte, opts ...anim.DecoderOption) (*anim.Animation, error) {
	d, err := anim.NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return d.DecodeBytes(data)
}

// Convert turns an AnimJ JSON document into an AnimX stream.
func Convert(data []byte, opts ...anim.EncoderOption) ([]byte, error) {
	a, err := FromAnimJ(data)
	if err != nil {
		return nil, err
	}

	return Encode(a, opts...)
}

// ConvertYAML turns an AnimJ YAML document into an AnimX stream.
func ConvertYAML(data []byte, opts ...anim.EncoderOption) ([]byte, error) {
	a, err := FromAnimJYAML(data)
	if err != nil {
		return nil, err
	}

	return Encode(a, opts...)
}

// ClipID returns the identifier a bundle stores for the clip called name.
//
// Example:
//
//	clip, err := reader.GetByID(animx.ClipID("walk"))
func ClipID(name string) uint64 {
	return hash.ClipID(name)
}

// NewBundleWriter creates a bundle.Writer. Zstd compression is used unless
// bundle.WithCompression says otherwise.
func NewBundleWriter(opts ...bundle.WriterOption) (*bundle.Writer, error) {
	return bundle.NewWriter(opts...)
}

// OpenBundle parses and verifies a bundle produced by a bundle.Writer.
func OpenBundle(data []byte, opts ...bundle.ReaderOption) (*bundle.Reader, error) {
	return bundle.Open(data, opts...)
}
