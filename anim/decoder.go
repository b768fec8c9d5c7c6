package anim

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/arloliu/animx/encoding"
	"github.com/arloliu/animx/errs"
	"github.com/arloliu/animx/internal/options"
	"github.com/arloliu/animx/track"
)

// Decoder reads AnimX v1 streams into Animations.
type Decoder struct {
	cfg *decoderConfig
}

// NewDecoder creates a Decoder.
//
// Parameters:
//   - opts: optional configuration (WithDecoderLogger, WithMaxTracks, WithMaxFrames)
//
// Returns:
//   - *Decoder: the configured decoder
//   - error: the first option that failed to apply
func NewDecoder(opts ...DecoderOption) (*Decoder, error) {
	cfg := newDecoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Decoder{cfg: cfg}, nil
}

// DecodeBytes decodes one AnimX stream held in data.
func (d *Decoder) DecodeBytes(data []byte) (*Animation, error) {
	return d.Decode(bytes.NewReader(data))
}

// Decode reads one AnimX stream from src.
//
// src is read exactly as far as the stream extends; trailing bytes are left
// unread. On error no Animation is returned.
//
// Returns:
//   - *Animation: the decoded animation
//   - error: ErrIncorrectHeader, ErrUnsupportedVersion, ErrUnsupportedEncoding,
//     ErrTooManyTracks, a track decode error, or a read error such as ErrTruncatedInput
func (d *Decoder) Decode(src io.Reader) (*Animation, error) {
	r := encoding.NewReader(src)

	count, a, err := d.readHeader(r)
	if err != nil {
		return nil, err
	}

	a.Tracks = make([]track.Track, 0, min(count, 1024))
	for i := range count {
		start := r.Offset()

		t, err := track.Decode(r, d.cfg.track)
		if err != nil {
			return nil, fmt.Errorf("track %d at offset %d: %w", i, start, err)
		}

		if d.cfg.logger.Enabled(context.Background(), slog.LevelDebug) {
			trackKind, valueKind := t.Tag()
			d.cfg.logger.Debug("decoded track",
				slog.Uint64("index", i),
				slog.String("track", trackKind.String()),
				slog.String("value", valueKind.String()),
				slog.Int64("bytes", r.Offset()-start),
			)
		}

		a.Tracks = append(a.Tracks, t)
	}

	return a, nil
}

func (d *Decoder) readHeader(r *encoding.Reader) (uint64, *Animation, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return 0, nil, err
	}
	if n != uint64(len(Magic)) {
		return 0, nil, fmt.Errorf("%w: magic length %d", errs.ErrIncorrectHeader, n)
	}

	magic, err := r.ReadBytes(n)
	if err != nil {
		return 0, nil, err
	}
	if string(magic) != Magic {
		return 0, nil, fmt.Errorf("%w: magic %q", errs.ErrIncorrectHeader, magic)
	}

	version, err := r.ReadInt32()
	if err != nil {
		return 0, nil, err
	}
	if version != Version {
		return 0, nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, version)
	}

	count, err := r.ReadVarint()
	if err != nil {
		return 0, nil, err
	}
	if count > d.cfg.maxTracks {
		return 0, nil, fmt.Errorf("%w: %d > %d", errs.ErrTooManyTracks, count, d.cfg.maxTracks)
	}

	a := &Animation{}
	if a.GlobalDuration, err = r.ReadFloat32(); err != nil {
		return 0, nil, err
	}
	if a.Name, err = r.ReadString(); err != nil {
		return 0, nil, err
	}

	enc, err := r.ReadUint8()
	if err != nil {
		return 0, nil, err
	}
	if enc != EncodingNone {
		return 0, nil, fmt.Errorf("%w: encoding flag %d", errs.ErrUnsupportedEncoding, enc)
	}

	d.cfg.logger.Debug("decoded header",
		slog.String("name", a.Name),
		slog.Float64("duration", float64(a.GlobalDuration)),
		slog.Uint64("tracks", count),
	)

	return count, a, nil
}
