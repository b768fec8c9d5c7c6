package format

import "strings"

type (
	TrackKind       uint8
	ValueKind       uint8
	Interpolation   uint8
	CompressionType uint8
)

const (
	TrackRaw      TrackKind = 0 // TrackRaw is an evenly sampled track with no per-frame time.
	TrackDiscrete TrackKind = 1 // TrackDiscrete is a sparse (time, value) track.
	TrackCurve    TrackKind = 2 // TrackCurve is an interpolated track with optional tangents.
	TrackBezier   TrackKind = 3 // TrackBezier is reserved; no body layout exists for it.

	TrackKindCount = 4
)

const (
	InterpolationHold        Interpolation = 0
	InterpolationLinear      Interpolation = 1
	InterpolationTangent     Interpolation = 2
	InterpolationCubicBezier Interpolation = 3

	InterpolationCount = 4
)

// The numeric value of every ValueKind is its tag byte on the wire.
// Never reorder or insert into this list.
const (
	Byte ValueKind = iota
	Ushort
	Ulong
	Sbyte
	Short
	Bool
	Bool2
	Bool3
	Bool4
	Int
	Int2
	Int3
	Int4
	Uint
	Uint2
	Uint3
	Uint4
	Long
	Long2
	Long3
	Long4
	Float
	Float2
	Float3
	Float4
	FloatQ
	Float2x2
	Float3x3
	Float4x4
	Double
	Double2
	Double3
	Double4
	DoubleQ
	Double2x2
	Double3x3
	Double4x4
	Color
	Color32
	OptString

	ValueKindCount = int(OptString) + 1
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

var trackKindNames = [TrackKindCount]string{"Raw", "Discrete", "Curve", "Bezier"}

var interpolationNames = [InterpolationCount]string{"Hold", "Linear", "Tangent", "CubicBezier"}

// valueKindNames holds the document spelling of each value kind.
var valueKindNames = [ValueKindCount]string{
	"byte", "ushort", "ulong", "sbyte", "short",
	"bool", "bool2", "bool3", "bool4",
	"int", "int2", "int3", "int4",
	"uint", "uint2", "uint3", "uint4",
	"long", "long2", "long3", "long4",
	"float", "float2", "float3", "float4",
	"floatq", "float2x2", "float3x3", "float4x4",
	"double", "double2", "double3", "double4",
	"doubleq", "double2x2", "double3x3", "double4x4",
	"color", "color32", "string",
}

// Valid reports whether t is a known track kind, including the reserved Bezier kind.
func (t TrackKind) Valid() bool {
	return int(t) < TrackKindCount
}

func (t TrackKind) String() string {
	if !t.Valid() {
		return "Unknown"
	}

	return trackKindNames[t]
}

// Valid reports whether v has a position in the canonical value kind order.
func (v ValueKind) Valid() bool {
	return int(v) < ValueKindCount
}

func (v ValueKind) String() string {
	if !v.Valid() {
		return "unknown"
	}

	return valueKindNames[v]
}

// Valid reports whether i is a known interpolation kind.
func (i Interpolation) Valid() bool {
	return int(i) < InterpolationCount
}

// NeedsTangents reports whether keyframes using i are expected to carry tangents.
func (i Interpolation) NeedsTangents() bool {
	return i == InterpolationTangent || i == InterpolationCubicBezier
}

func (i Interpolation) String() string {
	if !i.Valid() {
		return "Unknown"
	}

	return interpolationNames[i]
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseTrackKind resolves a document track kind name, ignoring case.
func ParseTrackKind(name string) (TrackKind, bool) {
	for i, n := range trackKindNames {
		if strings.EqualFold(n, name) {
			return TrackKind(i), true //nolint:gosec
		}
	}

	return 0, false
}

// ParseValueKind resolves a document value kind name, ignoring case.
// The nullable string kind is spelled "string".
func ParseValueKind(name string) (ValueKind, bool) {
	lower := strings.ToLower(name)
	for i, n := range valueKindNames {
		if n == lower {
			return ValueKind(i), true //nolint:gosec
		}
	}

	return 0, false
}

// ParseInterpolation resolves a document interpolation name, ignoring case.
func ParseInterpolation(name string) (Interpolation, bool) {
	for i, n := range interpolationNames {
		if strings.EqualFold(n, name) {
			return Interpolation(i), true //nolint:gosec
		}
	}

	return 0, false
}
