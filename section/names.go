package section

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/animx/endian"
	"github.com/arloliu/animx/errs"
)

// NamesSize returns the encoded size of the names section for names.
func NamesSize(names []string) int {
	size := 0
	for _, name := range names {
		size += 2 + len(name)
	}

	return size
}

// AppendNames appends each name as a uint16 length followed by its bytes.
// Names longer than MaxNameLength are rejected.
func AppendNames(buf []byte, names []string) ([]byte, error) {
	engine := endian.GetLittleEndianEngine()

	for _, name := range names {
		if len(name) > MaxNameLength {
			return nil, fmt.Errorf("%w: %d bytes", errs.ErrInvalidClipName, len(name))
		}
		buf = engine.AppendUint16(buf, uint16(len(name))) //nolint:gosec
		buf = append(buf, name...)
	}

	return buf, nil
}

// ParseNames reads count names from data.
//
// Returns:
//   - []string: the names in section order
//   - int: the number of bytes consumed
//   - error: ErrOffsetOutOfRange if data ends early, ErrInvalidClipName for
//     an empty or non-UTF-8 name
func ParseNames(data []byte, count int) ([]string, int, error) {
	engine := endian.GetLittleEndianEngine()
	names := make([]string, 0, min(count, len(data)/2))

	pos := 0
	for i := range count {
		if pos+2 > len(data) {
			return nil, 0, fmt.Errorf("%w: name %d length at %d", errs.ErrOffsetOutOfRange, i, pos)
		}

		n := int(engine.Uint16(data[pos : pos+2]))
		pos += 2
		if pos+n > len(data) {
			return nil, 0, fmt.Errorf("%w: name %d needs %d bytes at %d", errs.ErrOffsetOutOfRange, i, n, pos)
		}

		name := data[pos : pos+n]
		if n == 0 || !utf8.Valid(name) {
			return nil, 0, fmt.Errorf("%w: name %d", errs.ErrInvalidClipName, i)
		}
		names = append(names, string(name))
		pos += n
	}

	return names, pos, nil
}
