// Package hash provides the xxHash64 functions used by clip bundles.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// ClipID returns the identifier a bundle stores for the clip called name.
func ClipID(name string) uint64 {
	return ID(name)
}

// Checksum computes the xxHash64 of a bundle payload.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
