package animj

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arloliu/animx/anim"
	"github.com/arloliu/animx/errs"
	"github.com/arloliu/animx/internal/options"
	"github.com/arloliu/animx/track"
)

type decoderConfig struct {
	logger *slog.Logger
}

// Option configures a Decoder.
type Option = options.Option[*decoderConfig]

// WithLogger sets the logger used for debug records. A nil logger is rejected.
func WithLogger(logger *slog.Logger) Option {
	return options.New(func(c *decoderConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		c.logger = logger

		return nil
	})
}

// Decoder turns AnimJ document trees into Animations. It is safe for concurrent use.
type Decoder struct {
	cfg *decoderConfig
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...Option) (*Decoder, error) {
	cfg := &decoderConfig{logger: slog.New(slog.DiscardHandler)}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Decoder{cfg: cfg}, nil
}

// DecodeJSON parses and decodes an AnimJ JSON document.
func (d *Decoder) DecodeJSON(data []byte) (*anim.Animation, error) {
	doc, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}

	return d.Decode(doc)
}

// DecodeYAML parses and decodes an AnimJ document written as YAML.
func (d *Decoder) DecodeYAML(data []byte) (*anim.Animation, error) {
	doc, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}

	return d.Decode(doc)
}

// Decode builds an Animation from a parsed document tree.
//
// Recognized top-level keys are name, globalDuration and tracks; others are
// ignored. A null or missing name or globalDuration is treated as absent.
//
// Returns:
//   - *anim.Animation: the decoded animation
//   - error: a *errs.StructuralError naming the offending field, or ErrUnimplemented
//     for a Bezier track
func (d *Decoder) Decode(doc any) (*anim.Animation, error) {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, errs.NewStructuralError("$", "expected an object, got %T", doc)
	}

	a := &anim.Animation{}

	if node := root["name"]; node != nil {
		name, ok := node.(string)
		if !ok {
			return nil, errs.NewStructuralError("name", "expected a string, got %T", node)
		}
		a.Name = name
	}

	if node := root["globalDuration"]; node != nil {
		duration, err := parseFloat32(node, "globalDuration")
		if err != nil {
			return nil, err
		}
		a.GlobalDuration = duration
	}

	if node := root["tracks"]; node != nil {
		tracks, ok := node.([]any)
		if !ok {
			return nil, errs.NewStructuralError("tracks", "expected an array, got %T", node)
		}

		a.Tracks = make([]track.Track, 0, len(tracks))
		for i, elem := range tracks {
			t, err := decodeTrack(elem, fmt.Sprintf("tracks[%d]", i))
			if err != nil {
				return nil, err
			}

			if d.cfg.logger.Enabled(context.Background(), slog.LevelDebug) {
				trackKind, valueKind := t.Tag()
				d.cfg.logger.Debug("decoded track",
					slog.Int("index", i),
					slog.String("track", trackKind.String()),
					slog.String("value", valueKind.String()),
				)
			}

			a.Tracks = append(a.Tracks, t)
		}
	}

	d.cfg.logger.Debug("decoded document",
		slog.String("name", a.Name),
		slog.Int("tracks", len(a.Tracks)),
	)

	return a, nil
}
