package anim

import (
	"errors"
	"log/slog"

	"github.com/arloliu/animx/internal/options"
	"github.com/arloliu/animx/track"
)

const (
	// DefaultMaxTracks is the default upper bound on the track count of a decoded stream.
	DefaultMaxTracks = 1 << 20
	// DefaultMaxFrames is the default upper bound on the frame count of a decoded track.
	DefaultMaxFrames = 1 << 24
)

type encoderConfig struct {
	logger *slog.Logger
	track  track.EncodeConfig
}

func newEncoderConfig() *encoderConfig {
	return &encoderConfig{logger: slog.New(slog.DiscardHandler)}
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*encoderConfig]

// WithLogger sets the logger used for debug records. A nil logger is rejected.
func WithLogger(logger *slog.Logger) EncoderOption {
	return options.New(func(c *encoderConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		c.logger = logger

		return nil
	})
}

// WithCompactInterpolation makes the encoder write a single shared interpolation
// byte for curve tracks whose keyframes all use the same interpolation.
//
// The default writes one interpolation byte per keyframe, matching the host
// platform's own encoder byte for byte.
func WithCompactInterpolation(enabled bool) EncoderOption {
	return options.NoError(func(c *encoderConfig) {
		c.track.CompactInterpolation = enabled
	})
}

type decoderConfig struct {
	logger    *slog.Logger
	maxTracks uint64
	track     track.DecodeConfig
}

func newDecoderConfig() *decoderConfig {
	return &decoderConfig{
		logger:    slog.New(slog.DiscardHandler),
		maxTracks: DefaultMaxTracks,
		track:     track.DecodeConfig{MaxFrames: DefaultMaxFrames},
	}
}

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*decoderConfig]

// WithDecoderLogger sets the logger used for debug records. A nil logger is rejected.
func WithDecoderLogger(logger *slog.Logger) DecoderOption {
	return options.New(func(c *decoderConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		c.logger = logger

		return nil
	})
}

// WithMaxTracks bounds the track count a stream may declare. n must be positive.
func WithMaxTracks(n uint64) DecoderOption {
	return options.New(func(c *decoderConfig) error {
		if n == 0 {
			return errors.New("max tracks must be positive")
		}
		c.maxTracks = n

		return nil
	})
}

// WithMaxFrames bounds the frame count any one track may declare. n must be positive.
func WithMaxFrames(n uint64) DecoderOption {
	return options.New(func(c *decoderConfig) error {
		if n == 0 {
			return errors.New("max frames must be positive")
		}
		c.track.MaxFrames = n

		return nil
	})
}
