// Package value is the registry of AnimX value kinds.
//
// Every kind in format.ValueKind has a Go type in this package (or a builtin
// scalar) and exactly one Codec describing its byte layout. A Codec[T] ties the
// kind tag to the Go type at compile time, so a track built from a Codec can
// never report a tag that disagrees with the values it holds.
//
// Layouts:
//   - Scalars: fixed-width little-endian
//   - Bool: one byte, 0 or 1 (any nonzero byte decodes as true)
//   - Bool2/3/4: one byte, component i in bit i
//   - Vectors and quaternions: components in x, y, z, w order
//   - Matrices: rows in order, each row's components in order
//   - Color: four float32 (r, g, b, a); Color32: four bytes (r, g, b, a)
//   - OptString: presence byte, then a length-prefixed string if present
//
// Decode consumes exactly the bytes of one value, with no lookahead.
package value
