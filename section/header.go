package section

import (
	"fmt"

	"github.com/arloliu/animx/endian"
	"github.com/arloliu/animx/errs"
	"github.com/arloliu/animx/format"
)

// Header is the fixed-size header at the start of a bundle.
type Header struct {
	// Magic must be MagicBundleV1.
	Magic uint16 // byte offset 0-1
	// Version must be VersionV1.
	Version uint8 // byte offset 2
	// Compression is the codec applied to the payload section.
	Compression format.CompressionType // byte offset 3
	// ClipCount is the number of clips, and of index entries and names.
	ClipCount uint32 // byte offset 4-7
	// NamesOffset is the byte offset of the names section. The index section
	// always starts at IndexOffset and ends here.
	NamesOffset uint32 // byte offset 8-11
	// PayloadOffset is the byte offset of the compressed payload.
	PayloadOffset uint32 // byte offset 12-15
	// PayloadLength is the compressed payload size in bytes.
	PayloadLength uint32 // byte offset 16-19
	// RawLength is the payload size after decompression.
	RawLength uint32 // byte offset 20-23
	// Checksum is the xxHash64 of the decompressed payload.
	Checksum uint64 // byte offset 24-31
}

// NewHeader creates a header for a bundle compressed with compression.
// Counts, offsets and the checksum are filled in when the bundle is finished.
func NewHeader(compression format.CompressionType) *Header {
	return &Header{
		Magic:       MagicBundleV1,
		Version:     VersionV1,
		Compression: compression,
		NamesOffset: IndexOffset,
	}
}

// Bytes serializes the header into a new 32-byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := endian.GetLittleEndianEngine()

	engine.PutUint16(b[0:2], h.Magic)
	b[2] = h.Version
	b[3] = uint8(h.Compression)
	engine.PutUint32(b[4:8], h.ClipCount)
	engine.PutUint32(b[8:12], h.NamesOffset)
	engine.PutUint32(b[12:16], h.PayloadOffset)
	engine.PutUint32(b[16:20], h.PayloadLength)
	engine.PutUint32(b[20:24], h.RawLength)
	engine.PutUint64(b[24:32], h.Checksum)

	return b
}

// Parse fills h from exactly HeaderSize bytes and validates it.
//
// Returns:
//   - error: ErrInvalidHeaderSize, ErrInvalidMagicNumber, ErrInvalidBundleVersion,
//     ErrInvalidCompression or ErrInvalidIndexOffsets
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()

	h.Magic = engine.Uint16(data[0:2])
	h.Version = data[2]
	h.Compression = format.CompressionType(data[3])
	h.ClipCount = engine.Uint32(data[4:8])
	h.NamesOffset = engine.Uint32(data[8:12])
	h.PayloadOffset = engine.Uint32(data[12:16])
	h.PayloadLength = engine.Uint32(data[16:20])
	h.RawLength = engine.Uint32(data[20:24])
	h.Checksum = engine.Uint64(data[24:32])

	return h.Validate()
}

// Validate checks the header's fixed fields and the ordering of its sections.
func (h *Header) Validate() error {
	if h.Magic != MagicBundleV1 {
		return fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagicNumber, h.Magic)
	}

	if h.Version != VersionV1 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidBundleVersion, h.Version)
	}

	switch h.Compression {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, h.Compression)
	}

	indexEnd := uint64(IndexOffset) + uint64(h.ClipCount)*IndexEntrySize
	if uint64(h.NamesOffset) != indexEnd || h.PayloadOffset < h.NamesOffset {
		return fmt.Errorf("%w: names at %d, payload at %d for %d clips",
			errs.ErrInvalidIndexOffsets, h.NamesOffset, h.PayloadOffset, h.ClipCount)
	}

	return nil
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
