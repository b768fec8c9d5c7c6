package encoding

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/arloliu/animx/endian"
	"github.com/arloliu/animx/errs"
)

// directReadLimit is the largest string read into a single up-front allocation.
// Longer strings grow with the data actually available, so a corrupt length
// prefix cannot force a huge allocation.
const directReadLimit = 64 * 1024

// maxVarintLen is the maximum encoded length of a 64-bit varint.
const maxVarintLen = 10

// Reader reads AnimX primitives from an io.Reader, consuming exactly the bytes
// each primitive occupies.
//
// Note: Reader is NOT thread-safe.
type Reader struct {
	src     io.Reader
	engine  endian.EndianEngine
	scratch [8]byte
	offset  int64
}

// NewReader creates a Reader over src. Callers that pass an unbuffered source
// should wrap it in a bufio.Reader first; Reader issues many small reads.
func NewReader(src io.Reader) *Reader {
	return &Reader{
		src:    src,
		engine: endian.GetLittleEndianEngine(),
	}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

func (r *Reader) fill(n int) ([]byte, error) {
	buf := r.scratch[:n]
	if err := r.readFull(buf); err != nil {
		return nil, err
	}

	return buf, nil
}

func (r *Reader) readFull(buf []byte) error {
	read, err := io.ReadFull(r.src, buf)
	r.offset += int64(read)
	if err != nil {
		return r.truncated(err, len(buf), read)
	}

	return nil
}

func (r *Reader) truncated(err error, need, got int) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: need %d bytes at offset %d, got %d", errs.ErrTruncatedInput, need, r.offset-int64(got), got)
	}

	return err
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.fill(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err //nolint:gosec
}

// ReadBool reads one byte; any nonzero value is true.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadUint8()
	return v != 0, err
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.fill(2)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint16(b), nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err //nolint:gosec
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.fill(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err //nolint:gosec
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.fill(8)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint64(b), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err //nolint:gosec
}

func (r *Reader) ReadFloat32() (float32, error) {
	b, err := r.fill(4)
	if err != nil {
		return 0, err
	}

	return endian.Float32(r.engine, b), nil
}

func (r *Reader) ReadFloat64() (float64, error) {
	b, err := r.fill(8)
	if err != nil {
		return 0, err
	}

	return endian.Float64(r.engine, b), nil
}

// ReadVarint reads an unsigned LEB128 varint, accumulating 7-bit groups at
// increasing shifts until a byte with the continuation bit clear is read.
func (r *Reader) ReadVarint() (uint64, error) {
	var value uint64
	var shift uint

	for i := range maxVarintLen {
		b, err := r.ReadUint8()
		if err != nil {
			return 0, err
		}

		if i == maxVarintLen-1 && b > 1 {
			return 0, fmt.Errorf("%w at offset %d", errs.ErrVarintOverflow, r.offset-1)
		}

		if b < 0x80 {
			return value | uint64(b)<<shift, nil
		}

		value |= uint64(b&0x7f) << shift
		shift += 7
	}

	return 0, fmt.Errorf("%w at offset %d", errs.ErrVarintOverflow, r.offset-1)
}

// ReadBytes reads exactly n bytes into a newly allocated slice.
func (r *Reader) ReadBytes(n uint64) ([]byte, error) {
	if n <= directReadLimit {
		buf := make([]byte, n)
		if err := r.readFull(buf); err != nil {
			return nil, err
		}

		return buf, nil
	}

	if n > uint64(1<<62) {
		return nil, fmt.Errorf("%w: length %d at offset %d", errs.ErrTruncatedInput, n, r.offset)
	}

	var buf bytes.Buffer
	copied, err := io.CopyN(&buf, r.src, int64(n)) //nolint:gosec
	r.offset += copied
	if err != nil {
		return nil, r.truncated(err, int(n), int(copied)) //nolint:gosec
	}

	return buf.Bytes(), nil
}

// ReadString reads a varint length followed by that many UTF-8 bytes.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return "", err
	}

	start := r.offset
	b, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %d bytes at offset %d", errs.ErrInvalidText, n, start)
	}

	return string(b), nil
}

// ReadNullableString reads a presence byte and, when it is nonzero, a length-prefixed string.
// A zero presence byte yields ("", false).
func (r *Reader) ReadNullableString() (string, bool, error) {
	present, err := r.ReadBool()
	if err != nil || !present {
		return "", false, err
	}

	s, err := r.ReadString()
	if err != nil {
		return "", false, err
	}

	return s, true, nil
}
