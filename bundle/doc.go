// Package bundle packs many named AnimX clips into one compressed blob.
//
// A bundle is a container around AnimX, not part of the AnimX format: every
// clip stays a complete AnimX v1 stream, and the bundle compresses their
// concatenation as one payload so repeated node and property names across
// clips compress well.
//
// Layout (little-endian):
//
//	+--------------------+  offset 0
//	| header (32 bytes)  |  magic, version, compression, counts, offsets, checksum
//	+--------------------+  offset 32
//	| index              |  clip count × {clip ID uint64, offset uint32, length uint32}
//	+--------------------+  names offset
//	| names              |  clip count × {length uint16, UTF-8 bytes}
//	+--------------------+  payload offset
//	| payload            |  compressed concatenation of AnimX streams
//	+--------------------+
//
// Clip IDs are the xxHash64 of clip names. Names are always stored, so two
// names sharing an ID stay reachable through Get; only GetByID is ambiguous
// for them.
//
// Example:
//
//	w, _ := bundle.NewWriter(bundle.WithCompression(format.CompressionZstd))
//	_ = w.Add("walk", walk)
//	_ = w.Add("run", run)
//	data, err := w.Finish()
//
//	r, err := bundle.Open(data)
//	clip, err := r.Get("run")
package bundle
