package anim

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/arloliu/animx/encoding"
	"github.com/arloliu/animx/errs"
	"github.com/arloliu/animx/internal/options"
)

// Encoder writes Animations as AnimX v1 streams.
type Encoder struct {
	cfg *encoderConfig
}

// NewEncoder creates an Encoder.
//
// Parameters:
//   - opts: optional configuration (WithLogger, WithCompactInterpolation)
//
// Returns:
//   - *Encoder: the configured encoder
//   - error: the first option that failed to apply
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg := newEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Encoder{cfg: cfg}, nil
}

// Encode returns the AnimX encoding of a.
//
// The whole stream is built in memory before anything is returned, so a failed
// encode never yields a partial stream.
func (e *Encoder) Encode(a *Animation) ([]byte, error) {
	w := encoding.NewWriter()
	defer w.Release()

	if err := e.encode(w, a); err != nil {
		return nil, err
	}

	return bytes.Clone(w.Bytes()), nil
}

// EncodeTo writes the AnimX encoding of a to dst and returns the number of bytes written.
//
// Nothing is written to dst when encoding fails. Flushing and closing dst stay
// with the caller.
func (e *Encoder) EncodeTo(dst io.Writer, a *Animation) (int64, error) {
	w := encoding.NewWriter()
	defer w.Release()

	if err := e.encode(w, a); err != nil {
		return 0, err
	}

	return w.WriteTo(dst)
}

func (e *Encoder) encode(w *encoding.Writer, a *Animation) error {
	if a == nil {
		return errs.ErrNilAnimation
	}

	w.WriteString(Magic)
	w.WriteInt32(Version)
	w.WriteVarint(uint64(len(a.Tracks)))
	w.WriteFloat32(a.GlobalDuration)
	w.WriteString(a.Name)
	w.WriteUint8(EncodingNone)

	for i, t := range a.Tracks {
		if t == nil {
			return fmt.Errorf("%w: track %d", errs.ErrNilTrack, i)
		}

		trackKind, valueKind := t.Tag()
		w.WriteUint8(uint8(trackKind))
		w.WriteUint8(uint8(valueKind))

		if err := t.EncodeBody(w, e.cfg.track); err != nil {
			return fmt.Errorf("track %d (%s/%s): %w", i, trackKind, valueKind, err)
		}
	}

	e.cfg.logger.Debug("encoded animation",
		slog.String("name", a.Name),
		slog.Int("tracks", len(a.Tracks)),
		slog.Int("bytes", w.Len()),
	)

	return nil
}
