// Package section defines the fixed binary structures of a clip bundle.
//
// A bundle is laid out as:
//
//	header     32 bytes, see Header
//	index      ClipCount x 16-byte IndexEntry, starting at IndexOffset
//	names      ClipCount x (uint16 length + UTF-8 name), in index order
//	payload    concatenated AnimX streams, compressed as a whole
//
// Every multi-byte field is little-endian. Index entry offsets point into the
// decompressed payload.
package section
