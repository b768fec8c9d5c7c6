package section

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/animx/errs"
	"github.com/arloliu/animx/format"
)

func TestNewHeader(t *testing.T) {
	h := NewHeader(format.CompressionZstd)

	require.Equal(t, MagicBundleV1, h.Magic)
	require.Equal(t, VersionV1, h.Version)
	require.Equal(t, format.CompressionZstd, h.Compression)
	require.Equal(t, uint32(IndexOffset), h.NamesOffset)
	require.Zero(t, h.ClipCount)
}

func TestHeader_RoundTrip(t *testing.T) {
	h := NewHeader(format.CompressionS2)
	h.ClipCount = 2
	h.NamesOffset = IndexOffset + 2*IndexEntrySize
	h.PayloadOffset = h.NamesOffset + 10
	h.PayloadLength = 100
	h.RawLength = 250
	h.Checksum = 0x0102030405060708

	data := h.Bytes()
	require.Len(t, data, HeaderSize)
	require.Equal(t, []byte{0xB1, 0xA7, 0x01, 0x03}, data[:4])
	require.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, data[24:32])

	parsed, err := ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, *h, parsed)
}

func TestHeader_Parse_Errors(t *testing.T) {
	valid := func() *Header {
		h := NewHeader(format.CompressionNone)
		h.ClipCount = 1
		h.NamesOffset = IndexOffset + IndexEntrySize
		h.PayloadOffset = h.NamesOffset + 4

		return h
	}

	t.Run("invalid size", func(t *testing.T) {
		_, err := ParseHeader([]byte{1, 2, 3})
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

		err = (&Header{}).Parse(make([]byte, HeaderSize+1))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("invalid magic", func(t *testing.T) {
		h := valid()
		h.Magic = 0xEA10
		_, err := ParseHeader(h.Bytes())
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("invalid version", func(t *testing.T) {
		h := valid()
		h.Version = 2
		_, err := ParseHeader(h.Bytes())
		require.ErrorIs(t, err, errs.ErrInvalidBundleVersion)
	})

	t.Run("invalid compression", func(t *testing.T) {
		h := valid()
		h.Compression = 0
		_, err := ParseHeader(h.Bytes())
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})

	t.Run("names offset does not follow index", func(t *testing.T) {
		h := valid()
		h.NamesOffset = IndexOffset
		_, err := ParseHeader(h.Bytes())
		require.ErrorIs(t, err, errs.ErrInvalidIndexOffsets)
	})

	t.Run("payload before names", func(t *testing.T) {
		h := valid()
		h.PayloadOffset = h.NamesOffset - 1
		_, err := ParseHeader(h.Bytes())
		require.ErrorIs(t, err, errs.ErrInvalidIndexOffsets)
	})
}

func TestIndexEntry(t *testing.T) {
	entries := []IndexEntry{
		{ClipID: 0xef46db3751d8e999, Offset: 0, Length: 21},
		{ClipID: 0x4fdcca5ddb678139, Offset: 21, Length: 1 << 20},
	}

	data := make([]byte, len(entries)*IndexEntrySize)
	pos := 0
	for _, e := range entries {
		pos = e.WriteToSlice(data, pos)
	}
	require.Equal(t, len(data), pos)
	require.Equal(t, []byte{0x15, 0x00, 0x00, 0x00}, data[12:16])

	for i, want := range entries {
		got, err := ParseIndexEntry(data[i*IndexEntrySize:])
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	require.Equal(t, uint64(21+1<<20), entries[1].End())

	_, err := ParseIndexEntry(data[:IndexEntrySize-1])
	require.ErrorIs(t, err, errs.ErrInvalidIndexEntrySize)
}

func TestNames(t *testing.T) {
	names := []string{"walk", "run", "idle_äö"}

	data, err := AppendNames(nil, names)
	require.NoError(t, err)
	require.Len(t, data, NamesSize(names))
	require.Equal(t, []byte{0x04, 0x00, 'w', 'a', 'l', 'k'}, data[:6])

	parsed, n, err := ParseNames(append(data, 0xFF), len(names))
	require.NoError(t, err)
	require.Equal(t, names, parsed)
	require.Equal(t, len(data), n)
}

func TestNames_Errors(t *testing.T) {
	_, err := AppendNames(nil, []string{strings.Repeat("a", MaxNameLength+1)})
	require.ErrorIs(t, err, errs.ErrInvalidClipName)

	_, _, err = ParseNames([]byte{0x04, 0x00, 'w'}, 1)
	require.ErrorIs(t, err, errs.ErrOffsetOutOfRange)

	_, _, err = ParseNames([]byte{0x01}, 1)
	require.ErrorIs(t, err, errs.ErrOffsetOutOfRange)

	_, _, err = ParseNames([]byte{0x00, 0x00}, 1)
	require.ErrorIs(t, err, errs.ErrInvalidClipName)

	_, _, err = ParseNames([]byte{0x01, 0x00, 0xFF}, 1)
	require.ErrorIs(t, err, errs.ErrInvalidClipName)
}
