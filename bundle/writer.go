package bundle

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/animx/anim"
	"github.com/arloliu/animx/compress"
	"github.com/arloliu/animx/errs"
	"github.com/arloliu/animx/internal/collision"
	"github.com/arloliu/animx/internal/hash"
	"github.com/arloliu/animx/internal/options"
	"github.com/arloliu/animx/internal/pool"
	"github.com/arloliu/animx/section"
)

// Writer accumulates clips and produces a bundle.
//
// A Writer is single-use: after Finish it rejects every call. It is not safe
// for concurrent use.
type Writer struct {
	cfg      *writerConfig
	encoder  *anim.Encoder
	tracker  *collision.Tracker
	payload  *pool.ByteBuffer
	entries  []section.IndexEntry
	finished bool
}

// NewWriter creates a Writer.
//
// Parameters:
//   - opts: optional configuration (WithCompression, WithEncoderOptions, WithLogger)
//
// Returns:
//   - *Writer: the writer
//   - error: the first option that failed to apply, or an encoder option error
func NewWriter(opts ...WriterOption) (*Writer, error) {
	cfg := newWriterConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	encoder, err := anim.NewEncoder(cfg.encoderOpts...)
	if err != nil {
		return nil, fmt.Errorf("clip encoder: %w", err)
	}

	return &Writer{
		cfg:     cfg,
		encoder: encoder,
		tracker: collision.NewTracker(),
		payload: pool.GetBundleBuffer(),
		entries: make([]section.IndexEntry, 0, 8),
	}, nil
}

// Add encodes a and stores it under name.
//
// Returns:
//   - error: ErrBundleFinished, an anim encode error, or any error of AddEncoded
func (w *Writer) Add(name string, a *anim.Animation) error {
	if w.finished {
		return errs.ErrBundleFinished
	}

	stream, err := w.encoder.Encode(a)
	if err != nil {
		return fmt.Errorf("clip %q: %w", name, err)
	}

	return w.AddEncoded(name, stream)
}

// AddEncoded stores an already encoded AnimX stream under name.
//
// The stream is copied into the bundle as is; it is not decoded or validated.
//
// Returns:
//   - error: ErrBundleFinished, ErrInvalidClipName for an empty, non-UTF-8 or
//     over-long name, ErrClipAlreadyAdded, or ErrBundleTooLarge
func (w *Writer) AddEncoded(name string, stream []byte) error {
	if w.finished {
		return errs.ErrBundleFinished
	}

	offset := uint64(w.payload.Len())
	if offset+uint64(len(stream)) > section.MaxSectionSize {
		return fmt.Errorf("%w: payload would reach %d bytes", errs.ErrBundleTooLarge, offset+uint64(len(stream)))
	}

	id := hash.ClipID(name)
	if err := w.tracker.Track(name, id); err != nil {
		return err
	}

	w.payload.Grow(len(stream))
	w.payload.MustWrite(stream)
	w.entries = append(w.entries, section.IndexEntry{
		ClipID: id,
		Offset: uint32(offset),      //nolint:gosec
		Length: uint32(len(stream)), //nolint:gosec
	})

	return nil
}

// Len returns the number of clips added so far.
func (w *Writer) Len() int {
	return len(w.entries)
}

// Finish compresses the payload and returns the complete bundle.
//
// The Writer is finished afterwards whether or not Finish succeeds.
//
// Returns:
//   - []byte: the bundle, owned by the caller
//   - error: ErrBundleFinished, ErrNoClipsAdded, ErrBundleTooLarge, or a compression error
func (w *Writer) Finish() ([]byte, error) {
	if w.finished {
		return nil, errs.ErrBundleFinished
	}
	w.finished = true

	defer func() {
		pool.PutBundleBuffer(w.payload)
		w.payload = nil
	}()

	if len(w.entries) == 0 {
		return nil, errs.ErrNoClipsAdded
	}

	raw := w.payload.Bytes()
	compressed, stats, err := compress.Compress(w.cfg.compression, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to compress bundle payload: %w", err)
	}

	names := w.tracker.Names()
	indexSize := section.IndexEntrySize * len(w.entries)
	namesSize := section.NamesSize(names)
	total := uint64(section.HeaderSize) + uint64(indexSize) + uint64(namesSize) + uint64(len(compressed))
	if total > section.MaxSectionSize {
		return nil, fmt.Errorf("%w: bundle would be %d bytes", errs.ErrBundleTooLarge, total)
	}

	header := section.NewHeader(w.cfg.compression)
	header.ClipCount = uint32(len(w.entries))                     //nolint:gosec
	header.NamesOffset = uint32(section.IndexOffset + indexSize)  //nolint:gosec
	header.PayloadOffset = header.NamesOffset + uint32(namesSize) //nolint:gosec
	header.PayloadLength = uint32(len(compressed))                //nolint:gosec
	header.RawLength = uint32(len(raw))                           //nolint:gosec
	header.Checksum = hash.Checksum(raw)

	data := make([]byte, section.HeaderSize+indexSize, total)
	copy(data, header.Bytes())

	offset := section.IndexOffset
	for _, entry := range w.entries {
		offset = entry.WriteToSlice(data, offset)
	}

	data, err = section.AppendNames(data, names)
	if err != nil {
		return nil, err
	}
	data = append(data, compressed...)

	if w.tracker.HasCollision() {
		w.cfg.logger.Warn("clip ID collision in bundle, lookups by ID are ambiguous for some clips",
			slog.Int("clips", len(w.entries)))
	}

	w.cfg.logger.Debug("finished bundle",
		slog.Int("clips", len(w.entries)),
		slog.String("compression", stats.Algorithm.String()),
		slog.Int("raw_bytes", stats.OriginalSize),
		slog.Int("compressed_bytes", stats.CompressedSize),
		slog.Float64("ratio", stats.Ratio()),
	)

	return data, nil
}
