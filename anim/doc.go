// Package anim holds the Animation aggregate and the AnimX binary codec.
//
// An AnimX stream is a header followed by one record per track:
//
//	"AnimX"           varint length + UTF-8 bytes
//	version           int32, always 1
//	track count       varint
//	global duration   float32, 0 when absent
//	name              varint length + UTF-8 bytes, empty when absent
//	encoding          uint8, always 0 (uncompressed)
//	tracks...         track kind byte, value kind byte, body
//
// All multi-byte fields are little-endian. Track bodies are produced and
// consumed by the track package.
//
// Encoder and Decoder hold only immutable configuration and are safe for
// concurrent use; each call owns its own sink or source.
package anim
