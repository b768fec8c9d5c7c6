// Package encoding provides the low-level AnimX wire primitives.
//
// Writer is an append-only sink over a pooled byte buffer and Reader is a
// read-exactly source over any io.Reader. Both speak the same small set of
// primitives:
//
//   - Fixed-width little-endian integers and IEEE-754 floats
//   - Unsigned LEB128 varints (7 data bits per byte, 0x80 continuation bit)
//   - Length-prefixed UTF-8 strings (varint length + bytes)
//   - Nullable strings (presence byte, then a length-prefixed string when present)
//
// # Two kinds of optional
//
// AnimX has two unrelated notions of an optional field and they must not be
// mixed up, because they produce different bytes:
//
// Header fields (animation name, node, property, interval, duration) use the
// present-or-default rule. An absent field is written as the zero value of
// its type with no marker, so absent and zero are indistinguishable after a
// round trip. WriteString and WriteFloat32 implement this rule.
//
// Keyframe values of the nullable string kind use an explicit presence byte.
// WriteNullableString and ReadNullableString implement this rule.
//
// # Errors
//
// Reader methods fail with errs.ErrTruncatedInput when the source ends before
// the format says it should, errs.ErrInvalidText when string bytes are not
// valid UTF-8 and errs.ErrVarintOverflow when a varint does not fit in 64 bits.
// A Reader never re-reads consumed bytes.
package encoding
