package compress

// zstdPreallocRatio caps the output buffer preallocated from a caller's size;
// larger outputs grow while decoding.
const zstdPreallocRatio = 64

// ZstdCompressor provides Zstandard compression, the default for bundles.
//
// The implementation is selected at build time: klauspost/compress/zstd by
// default, valyala/gozstd when built with cgo and the gozstd tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
