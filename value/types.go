package value

// Scalar kinds map directly onto Go types:
//
//	byte   uint8     sbyte  int8      short  int16    ushort uint16
//	int    int32     uint   uint32    long   int64    ulong  uint64
//	float  float32   double float64   bool   bool

// Bool2 is packed into one byte on the wire, X in bit 0 and Y in bit 1.
type Bool2 struct{ X, Y bool }

// Bool3 is packed into one byte on the wire, X in bit 0 through Z in bit 2.
type Bool3 struct{ X, Y, Z bool }

// Bool4 is packed into one byte on the wire, X in bit 0 through W in bit 3.
type Bool4 struct{ X, Y, Z, W bool }

type Int2 struct{ X, Y int32 }

type Int3 struct{ X, Y, Z int32 }

type Int4 struct{ X, Y, Z, W int32 }

type Uint2 struct{ X, Y uint32 }

type Uint3 struct{ X, Y, Z uint32 }

type Uint4 struct{ X, Y, Z, W uint32 }

type Long2 struct{ X, Y int64 }

type Long3 struct{ X, Y, Z int64 }

type Long4 struct{ X, Y, Z, W int64 }

type Float2 struct{ X, Y float32 }

type Float3 struct{ X, Y, Z float32 }

type Float4 struct{ X, Y, Z, W float32 }

// FloatQ is a rotation quaternion. It has the same layout as Float4.
type FloatQ struct{ X, Y, Z, W float32 }

type Double2 struct{ X, Y float64 }

type Double3 struct{ X, Y, Z float64 }

type Double4 struct{ X, Y, Z, W float64 }

// DoubleQ is a rotation quaternion. It has the same layout as Double4.
type DoubleQ struct{ X, Y, Z, W float64 }

// Matrices are row-major: m[row][column].
type (
	Float2x2  [2][2]float32
	Float3x3  [3][3]float32
	Float4x4  [4][4]float32
	Double2x2 [2][2]float64
	Double3x3 [3][3]float64
	Double4x4 [4][4]float64
)

// Color is a linear RGBA color with float components.
type Color struct{ R, G, B, A float32 }

// Color32 is an 8-bit per channel RGBA color.
type Color32 struct{ R, G, B, A uint8 }

// OptString is a nullable string. The zero value is null.
//
// Null and String("") are different values and encode differently: null is
// the single byte 0x00, String("") is 0x01 followed by an empty string.
type OptString struct {
	Value string
	Valid bool
}

// String returns an OptString holding s.
func String(s string) OptString {
	return OptString{Value: s, Valid: true}
}
