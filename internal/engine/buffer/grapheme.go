package buffer

import (
	"sort"

	"github.com/rivo/uniseg"
)

// Grapheme-cluster stepping for cursor movement. Offsets always land on
// cluster boundaries so combining sequences and emoji move as single units.

// NextGrapheme returns the offset just past the grapheme cluster at offset.
// Returns Len() if offset is at or beyond the end of the buffer.
func (b *Buffer) NextGrapheme(offset ByteOffset) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 {
		return 0
	}
	if offset >= len(b.text) {
		return len(b.text)
	}

	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(b.text[offset:], -1)
	return offset + len(cluster)
}

// PrevGrapheme returns the offset of the start of the grapheme cluster
// before offset. Returns 0 if offset is at or before the buffer start.
func (b *Buffer) PrevGrapheme(offset ByteOffset) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset <= 0 {
		return 0
	}
	if offset > len(b.text) {
		offset = len(b.text)
	}

	// Walk clusters from the containing line start; lines are short enough
	// that a forward scan beats maintaining a reverse index.
	line := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset-1
	}) - 1
	start := b.lineStarts[line]

	prev := start
	state := -1
	for pos := start; pos < offset; {
		cluster, _, _, newState := uniseg.FirstGraphemeClusterInString(b.text[pos:], state)
		if len(cluster) == 0 {
			break
		}
		prev = pos
		pos += len(cluster)
		state = newState
	}
	return prev
}
