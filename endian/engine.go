// Package endian provides the byte order engine used by the AnimX codec.
//
// AnimX is little-endian throughout. The engine combines the standard library's
// ByteOrder and AppendByteOrder interfaces and adds IEEE-754 float helpers so
// that value codecs can append floats without going through math at every
// call site.
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, 1)
//	buf = endian.AppendFloat32(engine, buf, 1.5)
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used by AnimX.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// AppendFloat32 appends the IEEE-754 bits of v.
func AppendFloat32(engine EndianEngine, buf []byte, v float32) []byte {
	return engine.AppendUint32(buf, math.Float32bits(v))
}

// AppendFloat64 appends the IEEE-754 bits of v.
func AppendFloat64(engine EndianEngine, buf []byte, v float64) []byte {
	return engine.AppendUint64(buf, math.Float64bits(v))
}

// Float32 reads an IEEE-754 float32 from the first 4 bytes of b.
func Float32(engine EndianEngine, b []byte) float32 {
	return math.Float32frombits(engine.Uint32(b))
}

// Float64 reads an IEEE-754 float64 from the first 8 bytes of b.
func Float64(engine EndianEngine, b []byte) float64 {
	return math.Float64frombits(engine.Uint64(b))
}
