package anim

import "github.com/arloliu/animx/track"

const (
	// Magic is the string every AnimX stream starts with.
	Magic = "AnimX"
	// Version is the only stream version this package reads and writes.
	Version int32 = 1
	// EncodingNone is the only supported value of the header encoding byte.
	EncodingNone uint8 = 0
)

// Animation is one animation clip: an optional name, an optional global
// duration in seconds and an ordered list of tracks.
//
// A zero Name or GlobalDuration is written as absent; the two cannot be told
// apart once encoded.
type Animation struct {
	Name           string
	GlobalDuration float32
	Tracks         []track.Track
}

// New creates an Animation with the given tracks.
func New(name string, duration float32, tracks ...track.Track) *Animation {
	return &Animation{Name: name, GlobalDuration: duration, Tracks: tracks}
}

// AddTrack appends t to the animation's track list.
func (a *Animation) AddTrack(t track.Track) {
	a.Tracks = append(a.Tracks, t)
}

// TrackCount returns the number of tracks.
func (a *Animation) TrackCount() int {
	return len(a.Tracks)
}
