package region

import (
	"strings"
	"sync"
	"unicode"

	"outpad/internal/engine/buffer"
	"outpad/internal/engine/cursor"
)

// Tracker maintains the active region: the sub-range of the document that
// find/replace and highlight painting are confined to.
//
// The region is captured from the live selection on focus and
// selection-change notifications. A selection whose text contains no
// whitespace is a single word and is not treated as a region. When nothing
// qualifies, the region defaults to the entire document.
type Tracker struct {
	mu       sync.Mutex
	region   cursor.Selection
	entire   bool
	onChange []func()
}

// NewTracker creates a tracker whose region covers the whole buffer.
func NewTracker(buf *buffer.Buffer) *Tracker {
	t := &Tracker{}
	t.region = cursor.NewSelection(0, buf.Len())
	t.entire = true
	return t
}

// OnChange registers a callback fired whenever the visible region changes.
// Callbacks run synchronously on the calling goroutine.
func (t *Tracker) OnChange(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = append(t.onChange, fn)
}

// Update captures the current selection as the candidate region.
//
// Only a focused view captures: an unfocused view keeps its region so that
// find/replace driven from elsewhere still operates on it. Single-word
// selections are discarded. Returns true when the previously visible region
// was replaced by different bounds, which callers use to trigger a repaint.
func (t *Tracker) Update(buf *buffer.Buffer, sel cursor.Selection, focused bool) bool {
	t.mu.Lock()

	changed := false
	if focused {
		changed = !t.region.IsEmpty() && !t.region.SameBounds(sel)
		t.region = sel

		// If only one word is selected, don't treat it as a region.
		if !containsWhitespace(buf.TextRange(t.region.Start(), t.region.End())) {
			t.region = t.region.Collapse()
		}
	}

	whole := cursor.NewSelection(0, buf.Len())
	if t.region.IsEmpty() {
		t.region = whole
	}
	t.region = t.region.Clamp(buf.Len())
	t.entire = t.region.SameBounds(whole)

	callbacks := t.onChange
	t.mu.Unlock()

	if changed {
		for _, fn := range callbacks {
			fn()
		}
	}
	return changed
}

// DocumentChanged re-clamps the region after a buffer mutation so the
// bounds stay valid offsets, and recomputes the entire-document flag.
func (t *Tracker) DocumentChanged(buf *buffer.Buffer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.region = t.region.Clamp(buf.Len())
	if t.region.IsEmpty() {
		t.region = cursor.NewSelection(0, buf.Len())
	}
	t.entire = t.region.SameBounds(cursor.NewSelection(0, buf.Len()))
}

// Bounds returns the region as a normalized range clamped to the buffer.
func (t *Tracker) Bounds(buf *buffer.Buffer) buffer.Range {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.region.Range().Clamp(buf.Len())
}

// EntireDocument returns true if the region spans the whole document.
// The painter skips the region highlight in that case.
func (t *Tracker) EntireDocument() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.entire
}

// Set forces the region to the given selection, bypassing the single-word
// filter. Used by scripted region control.
func (t *Tracker) Set(buf *buffer.Buffer, sel cursor.Selection) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if sel.IsEmpty() {
		sel = cursor.NewSelection(0, buf.Len())
	}
	t.region = sel.Clamp(buf.Len())
	t.entire = t.region.SameBounds(cursor.NewSelection(0, buf.Len()))
}

func containsWhitespace(s string) bool {
	return strings.ContainsFunc(s, unicode.IsSpace)
}
