package quarantine

import "encoding/binary"

const (
	entryPrefix = "quarec:"
	entryIDSeq  = "quarecseq"
)

// makeEntryKey generates the key for an entry.
// Format: prefix + big-endian ID, so lexicographic order is insertion order.
func makeEntryKey(id uint64) []byte {
	buf := make([]byte, len(entryPrefix)+8)
	offset := copy(buf, entryPrefix)
	binary.BigEndian.PutUint64(buf[offset:], id)

	return buf
}

// parseEntryKey extracts the ID from an entry key.
func parseEntryKey(key []byte) (uint64, bool) {
	if len(key) != len(entryPrefix)+8 || string(key[:len(entryPrefix)]) != entryPrefix {
		return 0, false
	}

	return binary.BigEndian.Uint64(key[len(entryPrefix):]), true
}
