package section

import "math"

const (
	// MagicBundleV1 identifies a clip bundle.
	MagicBundleV1 uint16 = 0xA7B1
	// VersionV1 is the only bundle version.
	VersionV1 uint8 = 1
)

// offset and section sizes in the bundle
const (
	HeaderSize     = 32             // fixed header size in bytes
	IndexEntrySize = 16             // fixed index entry size in bytes
	IndexOffset    = HeaderSize     // byte offset where the index section starts
	MaxNameLength  = math.MaxUint16 // longest clip name in bytes
	MaxSectionSize = math.MaxUint32 // largest offset or length a header field can hold
)
