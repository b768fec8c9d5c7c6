package bundle

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/animx/anim"
	"github.com/arloliu/animx/compress"
	"github.com/arloliu/animx/errs"
	"github.com/arloliu/animx/format"
	"github.com/arloliu/animx/internal/hash"
	"github.com/arloliu/animx/internal/options"
	"github.com/arloliu/animx/section"
)

// Reader gives access to the clips of a bundle.
//
// Open verifies the whole container up front; clips are decoded lazily by Get.
// A Reader is safe for concurrent use. With CompressionNone its payload
// aliases the bytes passed to Open, which must then stay unmodified.
type Reader struct {
	header  section.Header
	decoder *anim.Decoder
	payload []byte
	names   []string
	entries []section.IndexEntry
	byName  map[string]int
	byID    map[uint64]int // ID → entry index, -1 when shared by several clips
}

// Open parses and verifies a bundle.
//
// Returns:
//   - *Reader: the reader
//   - error: a header error (ErrInvalidHeaderSize, ErrInvalidMagicNumber,
//     ErrInvalidBundleVersion, ErrInvalidCompression, ErrInvalidIndexOffsets),
//     ErrBundleTooLarge when the payload exceeds the raw size limit,
//     ErrOffsetOutOfRange, ErrInvalidClipName, ErrHashMismatch,
//     ErrChecksumMismatch, or a decompression error
func Open(data []byte, opts ...ReaderOption) (*Reader, error) {
	cfg := newReaderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	decoder, err := anim.NewDecoder(cfg.decoderOpts...)
	if err != nil {
		return nil, fmt.Errorf("clip decoder: %w", err)
	}

	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	if uint64(header.RawLength) > cfg.maxRawSize {
		return nil, fmt.Errorf("%w: payload decompresses to %d bytes, limit is %d",
			errs.ErrBundleTooLarge, header.RawLength, cfg.maxRawSize)
	}

	payloadEnd := uint64(header.PayloadOffset) + uint64(header.PayloadLength)
	if payloadEnd > uint64(len(data)) {
		return nil, fmt.Errorf("%w: payload ends at %d, bundle has %d bytes",
			errs.ErrOffsetOutOfRange, payloadEnd, len(data))
	}

	r := &Reader{
		header:  header,
		decoder: decoder,
	}

	if err := r.parseIndex(data); err != nil {
		return nil, err
	}

	if err := r.parseNames(data); err != nil {
		return nil, err
	}

	if err := r.decompress(data[header.PayloadOffset:payloadEnd]); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Reader) parseIndex(data []byte) error {
	count := int(r.header.ClipCount)
	r.entries = make([]section.IndexEntry, 0, count)

	for i := range count {
		start := section.IndexOffset + i*section.IndexEntrySize
		entry, err := section.ParseIndexEntry(data[start:r.header.NamesOffset])
		if err != nil {
			return fmt.Errorf("index entry %d: %w", i, err)
		}

		if entry.End() > uint64(r.header.RawLength) {
			return fmt.Errorf("%w: clip %d spans %d..%d of a %d byte payload",
				errs.ErrOffsetOutOfRange, i, entry.Offset, entry.End(), r.header.RawLength)
		}
		r.entries = append(r.entries, entry)
	}

	return nil
}

func (r *Reader) parseNames(data []byte) error {
	namesData := data[r.header.NamesOffset:r.header.PayloadOffset]

	names, n, err := section.ParseNames(namesData, len(r.entries))
	if err != nil {
		return err
	}
	if n != len(namesData) {
		return fmt.Errorf("%w: names section has %d trailing bytes", errs.ErrInvalidIndexOffsets, len(namesData)-n)
	}

	r.names = names
	r.byName = make(map[string]int, len(names))
	r.byID = make(map[uint64]int, len(names))

	for i, name := range names {
		id := r.entries[i].ClipID
		if hash.ClipID(name) != id {
			return fmt.Errorf("%w: clip %q stored with ID 0x%016x", errs.ErrHashMismatch, name, id)
		}

		if _, exists := r.byName[name]; exists {
			return fmt.Errorf("%w: %q appears twice", errs.ErrInvalidClipName, name)
		}
		r.byName[name] = i

		if _, exists := r.byID[id]; exists {
			r.byID[id] = -1
		} else {
			r.byID[id] = i
		}
	}

	return nil
}

func (r *Reader) decompress(compressed []byte) error {
	codec, err := compress.GetCodec(r.header.Compression)
	if err != nil {
		return err
	}

	payload, err := codec.Decompress(compressed, int(r.header.RawLength))
	if err != nil {
		return fmt.Errorf("failed to decompress bundle payload: %w", err)
	}

	if sum := hash.Checksum(payload); sum != r.header.Checksum {
		return fmt.Errorf("%w: got 0x%016x, header has 0x%016x", errs.ErrChecksumMismatch, sum, r.header.Checksum)
	}
	r.payload = payload

	return nil
}

// Len returns the number of clips.
func (r *Reader) Len() int {
	return len(r.entries)
}

// Names returns the clip names in index order.
func (r *Reader) Names() []string {
	return slices.Clone(r.names)
}

// Compression returns the payload codec recorded in the header.
func (r *Reader) Compression() format.CompressionType {
	return r.header.Compression
}

// Has reports whether the bundle holds a clip called name.
func (r *Reader) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Raw returns the AnimX stream of the clip called name.
// The returned slice shares memory with the reader and must not be modified.
func (r *Reader) Raw(name string) ([]byte, error) {
	i, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrClipNotFound, name)
	}

	return r.stream(i), nil
}

// Get decodes the clip called name.
func (r *Reader) Get(name string) (*anim.Animation, error) {
	i, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrClipNotFound, name)
	}

	return r.decode(i)
}

// GetByID decodes the clip whose ID is id.
//
// Returns:
//   - error: ErrClipNotFound, ErrHashCollision if several clips share id,
//     or an anim decode error
func (r *Reader) GetByID(id uint64) (*anim.Animation, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: ID 0x%016x", errs.ErrClipNotFound, id)
	}
	if i < 0 {
		return nil, fmt.Errorf("%w: 0x%016x", errs.ErrHashCollision, id)
	}

	return r.decode(i)
}

// All iterates over (name, AnimX stream) pairs in index order.
func (r *Reader) All() iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		for i, name := range r.names {
			if !yield(name, r.stream(i)) {
				return
			}
		}
	}
}

func (r *Reader) stream(i int) []byte {
	entry := r.entries[i]
	return r.payload[entry.Offset:entry.End():entry.End()]
}

func (r *Reader) decode(i int) (*anim.Animation, error) {
	a, err := r.decoder.DecodeBytes(r.stream(i))
	if err != nil {
		return nil, fmt.Errorf("clip %q: %w", r.names[i], err)
	}

	return a, nil
}
