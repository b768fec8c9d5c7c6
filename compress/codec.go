package compress

import (
	"errors"
	"fmt"

	"github.com/arloliu/animx/format"
)

// ErrSizeMismatch is returned when decompressed data does not have the expected size.
var ErrSizeMismatch = errors.New("decompressed size mismatch")

// Codec compresses and decompresses whole payloads.
type Codec interface {
	// Compress returns the compressed form of data. The returned slice is owned
	// by the caller; it may alias data for the no-op codec.
	Compress(data []byte) ([]byte, error)

	// Decompress reverses Compress. rawSize is the exact size of the original
	// data; any other result size is reported as ErrSizeMismatch.
	Decompress(data []byte, rawSize int) ([]byte, error)
}

// Stats describes one compression operation.
type Stats struct {
	Algorithm      format.CompressionType
	OriginalSize   int
	CompressedSize int
}

// Ratio returns compressed size over original size, or 0 for empty input.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the percentage of the original size saved by compression.
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return (1 - s.Ratio()) * 100
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// Compress compresses data with the codec for compressionType and reports its stats.
func Compress(compressionType format.CompressionType, data []byte) ([]byte, Stats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, Stats{}, err
	}

	out, err := codec.Compress(data)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s compression failed: %w", compressionType, err)
	}

	return out, Stats{Algorithm: compressionType, OriginalSize: len(data), CompressedSize: len(out)}, nil
}

func checkSize(algorithm string, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %s produced %d bytes, expected %d", ErrSizeMismatch, algorithm, got, want)
	}

	return nil
}
