package bundle

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/arloliu/animx/anim"
	"github.com/arloliu/animx/format"
	"github.com/arloliu/animx/internal/options"
)

type writerConfig struct {
	logger      *slog.Logger
	compression format.CompressionType
	encoderOpts []anim.EncoderOption
}

func newWriterConfig() *writerConfig {
	return &writerConfig{
		logger:      slog.New(slog.DiscardHandler),
		compression: format.CompressionZstd,
	}
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*writerConfig]

// WithCompression selects the payload codec. The default is Zstd.
func WithCompression(compression format.CompressionType) WriterOption {
	return options.New(func(c *writerConfig) error {
		switch compression {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			c.compression = compression
			return nil
		default:
			return fmt.Errorf("invalid compression type: %d", compression)
		}
	})
}

// WithEncoderOptions passes options to the anim.Encoder used by Add.
func WithEncoderOptions(opts ...anim.EncoderOption) WriterOption {
	return options.NoError(func(c *writerConfig) {
		c.encoderOpts = append(c.encoderOpts, opts...)
	})
}

// WithLogger sets the logger used for debug records. A nil logger is rejected.
func WithLogger(logger *slog.Logger) WriterOption {
	return options.New(func(c *writerConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		c.logger = logger

		return nil
	})
}

// DefaultMaxRawSize is the default upper bound on a bundle's decompressed payload.
const DefaultMaxRawSize = 256 << 20

type readerConfig struct {
	decoderOpts []anim.DecoderOption
	maxRawSize  uint64
}

func newReaderConfig() *readerConfig {
	return &readerConfig{maxRawSize: DefaultMaxRawSize}
}

// ReaderOption configures a Reader.
type ReaderOption = options.Option[*readerConfig]

// WithMaxRawSize bounds the decompressed payload size Open accepts from a
// header, and therefore the memory Open allocates. Zero is rejected.
func WithMaxRawSize(n uint64) ReaderOption {
	return options.New(func(c *readerConfig) error {
		if n == 0 {
			return errors.New("max raw size must be positive")
		}
		c.maxRawSize = n

		return nil
	})
}

// WithDecoderOptions passes options to the anim.Decoder used by Get and GetByID.
func WithDecoderOptions(opts ...anim.DecoderOption) ReaderOption {
	return options.NoError(func(c *readerConfig) {
		c.decoderOpts = append(c.decoderOpts, opts...)
	})
}
