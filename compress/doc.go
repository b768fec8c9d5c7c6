// Package compress provides the codecs a clip bundle can apply to its payload.
//
// The AnimX stream format itself is never compressed; a bundle compresses the
// concatenation of its clips' streams as one block, which lets the codec find
// redundancy across clips (shared node and property names in particular).
//
// Supported algorithms:
//   - None (format.CompressionNone): payload stored as is
//   - Zstd (format.CompressionZstd): best ratio, the default for bundles
//   - S2 (format.CompressionS2): fast with a good ratio
//   - LZ4 (format.CompressionLZ4): fastest decompression
//
// Every codec decompresses into a buffer of the exact size recorded by the
// caller, so corrupted or mismatched input is detected without guessing at
// output sizes.
//
// Zstd is provided by github.com/klauspost/compress/zstd. Building with both
// cgo and the gozstd build tag switches it to github.com/valyala/gozstd:
//
//	go build -tags gozstd ./...
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use. Zstd and LZ4
// keep pooled encoder state internally.
package compress
