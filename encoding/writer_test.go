package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter_Varint(t *testing.T) {
	tests := []struct {
		value    uint64
		expected []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xAC, 0x02}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{^uint64(0), []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}},
	}

	for _, tt := range tests {
		w := NewWriter()
		w.WriteVarint(tt.value)
		require.Equal(t, tt.expected, w.Bytes(), "value %d", tt.value)
		w.Release()
	}
}

func TestWriter_FixedWidth(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	w.WriteUint8(0xAB)
	w.WriteInt8(-1)
	w.WriteUint16(0x0102)
	w.WriteInt16(-2)
	w.WriteInt32(1)
	w.WriteUint64(0x0807060504030201)
	w.WriteFloat32(1.5)
	w.WriteBool(true)
	w.WriteBool(false)

	expected := []byte{
		0xAB,
		0xFF,
		0x02, 0x01,
		0xFE, 0xFF,
		0x01, 0x00, 0x00, 0x00,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x00, 0x00, 0xC0, 0x3F,
		0x01,
		0x00,
	}
	require.Equal(t, expected, w.Bytes())
	require.Equal(t, len(expected), w.Len())
}

func TestWriter_Strings(t *testing.T) {
	t.Run("present-or-default string", func(t *testing.T) {
		w := NewWriter()
		defer w.Release()

		w.WriteString("AnimX")
		w.WriteString("")
		require.Equal(t, []byte{0x05, 'A', 'n', 'i', 'm', 'X', 0x00}, w.Bytes())
	})

	t.Run("nullable string", func(t *testing.T) {
		w := NewWriter()
		defer w.Release()

		w.WriteNullableString("ignored", false)
		w.WriteNullableString("", true)
		w.WriteNullableString("hi", true)
		require.Equal(t, []byte{0x00, 0x01, 0x00, 0x01, 0x02, 'h', 'i'}, w.Bytes())
	})
}

func TestWriter_WriteTo(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	w.WriteString("walk")

	var out bytes.Buffer
	n, err := w.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(5), n)
	require.Equal(t, []byte{0x04, 'w', 'a', 'l', 'k'}, out.Bytes())
}
