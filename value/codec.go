package value

import (
	"github.com/arloliu/animx/encoding"
	"github.com/arloliu/animx/format"
)

// Codec binds a value kind tag to the Go type T and its wire layout.
//
// Codecs are immutable and safe for concurrent use. The only Codec values
// that exist are the package-level ones below.
type Codec[T any] struct {
	kind   format.ValueKind
	encode func(*encoding.Writer, T)
	decode func(*encoding.Reader) (T, error)
}

// Kind returns the value kind tag written before a track body.
func (c Codec[T]) Kind() format.ValueKind {
	return c.kind
}

// Encode appends the wire form of v to w.
func (c Codec[T]) Encode(w *encoding.Writer, v T) {
	c.encode(w, v)
}

// Decode reads exactly one value from r.
func (c Codec[T]) Decode(r *encoding.Reader) (T, error) {
	return c.decode(r)
}

func newCodec[T any](kind format.ValueKind, enc func(*encoding.Writer, T), dec func(*encoding.Reader) (T, error)) Codec[T] {
	return Codec[T]{kind: kind, encode: enc, decode: dec}
}

var (
	ByteCodec   = newCodec(format.Byte, (*encoding.Writer).WriteUint8, (*encoding.Reader).ReadUint8)
	UshortCodec = newCodec(format.Ushort, (*encoding.Writer).WriteUint16, (*encoding.Reader).ReadUint16)
	UlongCodec  = newCodec(format.Ulong, (*encoding.Writer).WriteUint64, (*encoding.Reader).ReadUint64)
	SbyteCodec  = newCodec(format.Sbyte, (*encoding.Writer).WriteInt8, (*encoding.Reader).ReadInt8)
	ShortCodec  = newCodec(format.Short, (*encoding.Writer).WriteInt16, (*encoding.Reader).ReadInt16)

	BoolCodec  = newCodec(format.Bool, (*encoding.Writer).WriteBool, (*encoding.Reader).ReadBool)
	Bool2Codec = newCodec(format.Bool2, encodeBool2, decodeBool2)
	Bool3Codec = newCodec(format.Bool3, encodeBool3, decodeBool3)
	Bool4Codec = newCodec(format.Bool4, encodeBool4, decodeBool4)

	IntCodec  = newCodec(format.Int, (*encoding.Writer).WriteInt32, (*encoding.Reader).ReadInt32)
	Int2Codec = newCodec(format.Int2,
		func(w *encoding.Writer, v Int2) { writeAll(w.WriteInt32, v.X, v.Y) },
		func(r *encoding.Reader) (Int2, error) {
			c, err := readN(2, r.ReadInt32)
			return Int2{c[0], c[1]}, err
		})
	Int3Codec = newCodec(format.Int3,
		func(w *encoding.Writer, v Int3) { writeAll(w.WriteInt32, v.X, v.Y, v.Z) },
		func(r *encoding.Reader) (Int3, error) {
			c, err := readN(3, r.ReadInt32)
			return Int3{c[0], c[1], c[2]}, err
		})
	Int4Codec = newCodec(format.Int4,
		func(w *encoding.Writer, v Int4) { writeAll(w.WriteInt32, v.X, v.Y, v.Z, v.W) },
		func(r *encoding.Reader) (Int4, error) {
			c, err := readN(4, r.ReadInt32)
			return Int4{c[0], c[1], c[2], c[3]}, err
		})

	UintCodec  = newCodec(format.Uint, (*encoding.Writer).WriteUint32, (*encoding.Reader).ReadUint32)
	Uint2Codec = newCodec(format.Uint2,
		func(w *encoding.Writer, v Uint2) { writeAll(w.WriteUint32, v.X, v.Y) },
		func(r *encoding.Reader) (Uint2, error) {
			c, err := readN(2, r.ReadUint32)
			return Uint2{c[0], c[1]}, err
		})
	Uint3Codec = newCodec(format.Uint3,
		func(w *encoding.Writer, v Uint3) { writeAll(w.WriteUint32, v.X, v.Y, v.Z) },
		func(r *encoding.Reader) (Uint3, error) {
			c, err := readN(3, r.ReadUint32)
			return Uint3{c[0], c[1], c[2]}, err
		})
	Uint4Codec = newCodec(format.Uint4,
		func(w *encoding.Writer, v Uint4) { writeAll(w.WriteUint32, v.X, v.Y, v.Z, v.W) },
		func(r *encoding.Reader) (Uint4, error) {
			c, err := readN(4, r.ReadUint32)
			return Uint4{c[0], c[1], c[2], c[3]}, err
		})

	LongCodec  = newCodec(format.Long, (*encoding.Writer).WriteInt64, (*encoding.Reader).ReadInt64)
	Long2Codec = newCodec(format.Long2,
		func(w *encoding.Writer, v Long2) { writeAll(w.WriteInt64, v.X, v.Y) },
		func(r *encoding.Reader) (Long2, error) {
			c, err := readN(2, r.ReadInt64)
			return Long2{c[0], c[1]}, err
		})
	Long3Codec = newCodec(format.Long3,
		func(w *encoding.Writer, v Long3) { writeAll(w.WriteInt64, v.X, v.Y, v.Z) },
		func(r *encoding.Reader) (Long3, error) {
			c, err := readN(3, r.ReadInt64)
			return Long3{c[0], c[1], c[2]}, err
		})
	Long4Codec = newCodec(format.Long4,
		func(w *encoding.Writer, v Long4) { writeAll(w.WriteInt64, v.X, v.Y, v.Z, v.W) },
		func(r *encoding.Reader) (Long4, error) {
			c, err := readN(4, r.ReadInt64)
			return Long4{c[0], c[1], c[2], c[3]}, err
		})

	FloatCodec  = newCodec(format.Float, (*encoding.Writer).WriteFloat32, (*encoding.Reader).ReadFloat32)
	Float2Codec = newCodec(format.Float2,
		func(w *encoding.Writer, v Float2) { writeAll(w.WriteFloat32, v.X, v.Y) },
		func(r *encoding.Reader) (Float2, error) {
			c, err := readN(2, r.ReadFloat32)
			return Float2{c[0], c[1]}, err
		})
	Float3Codec = newCodec(format.Float3,
		func(w *encoding.Writer, v Float3) { writeAll(w.WriteFloat32, v.X, v.Y, v.Z) },
		func(r *encoding.Reader) (Float3, error) {
			c, err := readN(3, r.ReadFloat32)
			return Float3{c[0], c[1], c[2]}, err
		})
	Float4Codec = newCodec(format.Float4,
		func(w *encoding.Writer, v Float4) { writeAll(w.WriteFloat32, v.X, v.Y, v.Z, v.W) },
		func(r *encoding.Reader) (Float4, error) {
			c, err := readN(4, r.ReadFloat32)
			return Float4{c[0], c[1], c[2], c[3]}, err
		})
	FloatQCodec = newCodec(format.FloatQ,
		func(w *encoding.Writer, v FloatQ) { writeAll(w.WriteFloat32, v.X, v.Y, v.Z, v.W) },
		func(r *encoding.Reader) (FloatQ, error) {
			c, err := readN(4, r.ReadFloat32)
			return FloatQ{c[0], c[1], c[2], c[3]}, err
		})
	Float2x2Codec = newCodec(format.Float2x2,
		func(w *encoding.Writer, m Float2x2) { writeRows(w.WriteFloat32, m[0][:], m[1][:]) },
		func(r *encoding.Reader) (m Float2x2, err error) {
			err = readRows(r.ReadFloat32, m[0][:], m[1][:])
			return m, err
		})
	Float3x3Codec = newCodec(format.Float3x3,
		func(w *encoding.Writer, m Float3x3) { writeRows(w.WriteFloat32, m[0][:], m[1][:], m[2][:]) },
		func(r *encoding.Reader) (m Float3x3, err error) {
			err = readRows(r.ReadFloat32, m[0][:], m[1][:], m[2][:])
			return m, err
		})
	Float4x4Codec = newCodec(format.Float4x4,
		func(w *encoding.Writer, m Float4x4) { writeRows(w.WriteFloat32, m[0][:], m[1][:], m[2][:], m[3][:]) },
		func(r *encoding.Reader) (m Float4x4, err error) {
			err = readRows(r.ReadFloat32, m[0][:], m[1][:], m[2][:], m[3][:])
			return m, err
		})

	DoubleCodec  = newCodec(format.Double, (*encoding.Writer).WriteFloat64, (*encoding.Reader).ReadFloat64)
	Double2Codec = newCodec(format.Double2,
		func(w *encoding.Writer, v Double2) { writeAll(w.WriteFloat64, v.X, v.Y) },
		func(r *encoding.Reader) (Double2, error) {
			c, err := readN(2, r.ReadFloat64)
			return Double2{c[0], c[1]}, err
		})
	Double3Codec = newCodec(format.Double3,
		func(w *encoding.Writer, v Double3) { writeAll(w.WriteFloat64, v.X, v.Y, v.Z) },
		func(r *encoding.Reader) (Double3, error) {
			c, err := readN(3, r.ReadFloat64)
			return Double3{c[0], c[1], c[2]}, err
		})
	Double4Codec = newCodec(format.Double4,
		func(w *encoding.Writer, v Double4) { writeAll(w.WriteFloat64, v.X, v.Y, v.Z, v.W) },
		func(r *encoding.Reader) (Double4, error) {
			c, err := readN(4, r.ReadFloat64)
			return Double4{c[0], c[1], c[2], c[3]}, err
		})
	DoubleQCodec = newCodec(format.DoubleQ,
		func(w *encoding.Writer, v DoubleQ) { writeAll(w.WriteFloat64, v.X, v.Y, v.Z, v.W) },
		func(r *encoding.Reader) (DoubleQ, error) {
			c, err := readN(4, r.ReadFloat64)
			return DoubleQ{c[0], c[1], c[2], c[3]}, err
		})
	Double2x2Codec = newCodec(format.Double2x2,
		func(w *encoding.Writer, m Double2x2) { writeRows(w.WriteFloat64, m[0][:], m[1][:]) },
		func(r *encoding.Reader) (m Double2x2, err error) {
			err = readRows(r.ReadFloat64, m[0][:], m[1][:])
			return m, err
		})
	Double3x3Codec = newCodec(format.Double3x3,
		func(w *encoding.Writer, m Double3x3) { writeRows(w.WriteFloat64, m[0][:], m[1][:], m[2][:]) },
		func(r *encoding.Reader) (m Double3x3, err error) {
			err = readRows(r.ReadFloat64, m[0][:], m[1][:], m[2][:])
			return m, err
		})
	Double4x4Codec = newCodec(format.Double4x4,
		func(w *encoding.Writer, m Double4x4) { writeRows(w.WriteFloat64, m[0][:], m[1][:], m[2][:], m[3][:]) },
		func(r *encoding.Reader) (m Double4x4, err error) {
			err = readRows(r.ReadFloat64, m[0][:], m[1][:], m[2][:], m[3][:])
			return m, err
		})

	ColorCodec = newCodec(format.Color,
		func(w *encoding.Writer, v Color) { writeAll(w.WriteFloat32, v.R, v.G, v.B, v.A) },
		func(r *encoding.Reader) (Color, error) {
			c, err := readN(4, r.ReadFloat32)
			return Color{c[0], c[1], c[2], c[3]}, err
		})
	Color32Codec = newCodec(format.Color32,
		func(w *encoding.Writer, v Color32) { writeAll(w.WriteUint8, v.R, v.G, v.B, v.A) },
		func(r *encoding.Reader) (Color32, error) {
			c, err := readN(4, r.ReadUint8)
			return Color32{c[0], c[1], c[2], c[3]}, err
		})

	OptStringCodec = newCodec(format.OptString,
		func(w *encoding.Writer, v OptString) { w.WriteNullableString(v.Value, v.Valid) },
		func(r *encoding.Reader) (OptString, error) {
			s, ok, err := r.ReadNullableString()
			return OptString{Value: s, Valid: ok}, err
		})
)

func writeAll[T any](write func(T), components ...T) {
	for _, c := range components {
		write(c)
	}
}

// readN reads n (at most 4) components in order.
func readN[T any](n int, read func() (T, error)) ([4]T, error) {
	var out [4]T
	for i := range n {
		v, err := read()
		if err != nil {
			return out, err
		}
		out[i] = v
	}

	return out, nil
}

func writeRows[T any](write func(T), rows ...[]T) {
	for _, row := range rows {
		writeAll(write, row...)
	}
}

// readRows fills each row slice in place.
func readRows[T any](read func() (T, error), rows ...[]T) error {
	for _, row := range rows {
		for i := range row {
			v, err := read()
			if err != nil {
				return err
			}
			row[i] = v
		}
	}

	return nil
}

func packBits(bits ...bool) uint8 {
	var b uint8
	for i, set := range bits {
		if set {
			b |= 1 << i
		}
	}

	return b
}

func bit(b uint8, i int) bool {
	return b&(1<<i) != 0
}

func encodeBool2(w *encoding.Writer, v Bool2) { w.WriteUint8(packBits(v.X, v.Y)) }

func encodeBool3(w *encoding.Writer, v Bool3) { w.WriteUint8(packBits(v.X, v.Y, v.Z)) }

func encodeBool4(w *encoding.Writer, v Bool4) { w.WriteUint8(packBits(v.X, v.Y, v.Z, v.W)) }

func decodeBool2(r *encoding.Reader) (Bool2, error) {
	b, err := r.ReadUint8()
	return Bool2{bit(b, 0), bit(b, 1)}, err
}

func decodeBool3(r *encoding.Reader) (Bool3, error) {
	b, err := r.ReadUint8()
	return Bool3{bit(b, 0), bit(b, 1), bit(b, 2)}, err
}

func decodeBool4(r *encoding.Reader) (Bool4, error) {
	b, err := r.ReadUint8()
	return Bool4{bit(b, 0), bit(b, 1), bit(b, 2), bit(b, 3)}, err
}

// Valid reports whether c is one of the registered codecs rather than a zero Codec.
func (c Codec[T]) Valid() bool {
	return c.encode != nil && c.decode != nil
}
