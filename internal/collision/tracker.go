// Package collision tracks clip names added to a bundle and detects clip ID collisions.
package collision

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/arloliu/animx/errs"
)

// Tracker records clip names in insertion order together with their IDs.
//
// Two different names hashing to the same ID is not an error: the bundle
// stores every name, so such clips stay reachable by name. The collision flag
// tells the writer to log it, and lookups by ID for that value become ambiguous.
type Tracker struct {
	names        map[string]struct{}
	ids          map[uint64]int // ID → number of clips carrying it
	ordered      []string
	hasCollision bool
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:   make(map[string]struct{}),
		ids:     make(map[uint64]int),
		ordered: make([]string, 0),
	}
}

// Track records name with its id.
//
// Returns:
//   - error: ErrInvalidClipName if name is empty, not UTF-8, or longer than a
//     bundle can store; ErrClipAlreadyAdded if name was tracked before
func (t *Tracker) Track(name string, id uint64) error {
	if name == "" || len(name) > math.MaxUint16 || !utf8.ValidString(name) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidClipName, truncate(name))
	}

	if _, exists := t.names[name]; exists {
		return fmt.Errorf("%w: %q", errs.ErrClipAlreadyAdded, name)
	}

	if t.ids[id] > 0 {
		t.hasCollision = true
	}

	t.names[name] = struct{}{}
	t.ids[id]++
	t.ordered = append(t.ordered, name)

	return nil
}

// HasCollision returns true if two tracked names share an ID.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in the order Track was called.
func (t *Tracker) Names() []string {
	return t.ordered
}

// Count returns the number of tracked clips.
func (t *Tracker) Count() int {
	return len(t.ordered)
}

// Reset clears all tracked names and collision state.
func (t *Tracker) Reset() {
	clear(t.names)
	clear(t.ids)
	t.ordered = t.ordered[:0]
	t.hasCollision = false
}

func truncate(name string) string {
	const limit = 32
	if len(name) <= limit {
		return name
	}

	return name[:limit] + "..."
}
