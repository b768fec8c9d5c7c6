package endian

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := engine.AppendUint32(nil, 1)
	require.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, buf)
}

func TestFloatHelpers(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := AppendFloat32(engine, nil, 1.5)
	require.Equal(t, []byte{0x00, 0x00, 0xC0, 0x3F}, buf)
	require.InDelta(t, float32(1.5), Float32(engine, buf), 0)

	buf = AppendFloat64(engine, nil, -2.25)
	require.Len(t, buf, 8)
	require.Equal(t, -2.25, Float64(engine, buf))

	buf = AppendFloat32(engine, nil, float32(math.Inf(1)))
	require.True(t, math.IsInf(float64(Float32(engine, buf)), 1))
}
