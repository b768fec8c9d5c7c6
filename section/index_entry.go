package section

import (
	"github.com/arloliu/animx/endian"
	"github.com/arloliu/animx/errs"
)

// IndexEntry locates one clip's AnimX stream inside the decompressed payload.
type IndexEntry struct {
	// ClipID is the xxHash64 of the clip name.
	//
	// Offset: 0, Size: 8 bytes
	ClipID uint64
	// Offset is the byte offset of the clip's stream in the decompressed payload.
	//
	// Offset: 8, Size: 4 bytes
	Offset uint32
	// Length is the byte length of the clip's stream.
	//
	// Offset: 12, Size: 4 bytes
	Length uint32
}

// End returns the payload offset just past the clip's stream.
func (e IndexEntry) End() uint64 {
	return uint64(e.Offset) + uint64(e.Length)
}

// WriteToSlice writes the entry at offset in data and returns the next write position.
func (e IndexEntry) WriteToSlice(data []byte, offset int) int {
	engine := endian.GetLittleEndianEngine()

	engine.PutUint64(data[offset:offset+8], e.ClipID)
	engine.PutUint32(data[offset+8:offset+12], e.Offset)
	engine.PutUint32(data[offset+12:offset+16], e.Length)

	return offset + IndexEntrySize
}

// ParseIndexEntry parses an IndexEntry from the start of data.
//
// Returns:
//   - error: ErrInvalidIndexEntrySize if data is shorter than IndexEntrySize
func ParseIndexEntry(data []byte) (IndexEntry, error) {
	if len(data) < IndexEntrySize {
		return IndexEntry{}, errs.ErrInvalidIndexEntrySize
	}

	engine := endian.GetLittleEndianEngine()

	return IndexEntry{
		ClipID: engine.Uint64(data[0:8]),
		Offset: engine.Uint32(data[8:12]),
		Length: engine.Uint32(data[12:16]),
	}, nil
}
