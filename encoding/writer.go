package encoding

import (
	"io"

	"github.com/arloliu/animx/endian"
	"github.com/arloliu/animx/internal/pool"
)

// Writer appends AnimX primitives to a pooled buffer.
//
// Note: Writer is NOT thread-safe. Call Release when done to return the buffer to the pool;
// slices returned by Bytes must not be used after Release.
type Writer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
}

// NewWriter creates a Writer backed by a pooled stream buffer.
func NewWriter() *Writer {
	return &Writer{
		buf:    pool.GetStreamBuffer(),
		engine: endian.GetLittleEndianEngine(),
	}
}

// WriteUint8 appends a single byte.
func (w *Writer) WriteUint8(v uint8) {
	w.buf.B = append(w.buf.B, v)
}

// WriteInt8 appends a single two's complement byte.
func (w *Writer) WriteInt8(v int8) {
	w.buf.B = append(w.buf.B, uint8(v)) //nolint:gosec
}

// WriteBool appends 1 for true and 0 for false.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.B = append(w.buf.B, 1)
	} else {
		w.buf.B = append(w.buf.B, 0)
	}
}

func (w *Writer) WriteUint16(v uint16) {
	w.buf.B = w.engine.AppendUint16(w.buf.B, v)
}

func (w *Writer) WriteInt16(v int16) {
	w.buf.B = w.engine.AppendUint16(w.buf.B, uint16(v)) //nolint:gosec
}

func (w *Writer) WriteUint32(v uint32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, v)
}

func (w *Writer) WriteInt32(v int32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, uint32(v)) //nolint:gosec
}

func (w *Writer) WriteUint64(v uint64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, v)
}

func (w *Writer) WriteInt64(v int64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, uint64(v)) //nolint:gosec
}

// WriteFloat32 appends v. For optional header floats an absent value is written as 0.
func (w *Writer) WriteFloat32(v float32) {
	w.buf.B = endian.AppendFloat32(w.engine, w.buf.B, v)
}

func (w *Writer) WriteFloat64(v float64) {
	w.buf.B = endian.AppendFloat64(w.engine, w.buf.B, v)
}

// WriteVarint appends v as an unsigned LEB128 varint.
//
// The low 7 bits are emitted first with the continuation bit set while more
// than 7 bits remain; the final byte has the continuation bit clear.
func (w *Writer) WriteVarint(v uint64) {
	for v >= 0x80 {
		w.buf.B = append(w.buf.B, byte(v)|0x80)
		v >>= 7
	}
	w.buf.B = append(w.buf.B, byte(v))
}

// WriteString appends s as a varint length followed by its bytes.
//
// This is the present-or-default form: an absent header string is passed as ""
// and no presence marker is written.
func (w *Writer) WriteString(s string) {
	w.WriteVarint(uint64(len(s)))
	w.buf.B = append(w.buf.B, s...)
}

// WriteNullableString appends a presence byte and, when valid, a length-prefixed string.
func (w *Writer) WriteNullableString(s string, valid bool) {
	if !valid {
		w.buf.B = append(w.buf.B, 0)
		return
	}

	w.buf.B = append(w.buf.B, 1)
	w.WriteString(s)
}

// Bytes returns the encoded data. The slice shares the Writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// WriteTo flushes the encoded bytes to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	return w.buf.WriteTo(dst)
}

// Release returns the underlying buffer to the pool. The Writer must not be used afterwards.
func (w *Writer) Release() {
	if w.buf != nil {
		pool.PutStreamBuffer(w.buf)
		w.buf = nil
	}
}
