// Package edit implements an offset-addressed edit buffer over source bytes.
//
// Edits are collected first and applied all at once, so token positions
// taken from the parsed AST stay valid while the replacement text is being
// decided. Overlapping edits are a programming error and are reported when
// the buffer is materialized.
package edit

import (
	"fmt"
	"sort"
)

type span struct {
	start int
	end   int
	text  string
}

// Buffer collects byte-offset edits over an immutable original.
type Buffer struct {
	src   []byte
	edits []span
}

func NewBuffer(src []byte) *Buffer {
	return &Buffer{src: src}
}

// Insert schedules content to be inserted at the given offset.
func (b *Buffer) Insert(offset int, content string) {
	b.edits = append(b.edits, span{start: offset, end: offset, text: content})
}

// Delete schedules removal of src[start:end].
func (b *Buffer) Delete(start, end int) {
	b.edits = append(b.edits, span{start: start, end: end})
}

// Replace schedules src[start:end] to be replaced with content.
func (b *Buffer) Replace(start, end int, content string) {
	b.edits = append(b.edits, span{start: start, end: end, text: content})
}

// HasEdits reports whether any edit was scheduled.
func (b *Buffer) HasEdits() bool {
	return len(b.edits) > 0
}

// Bytes applies the scheduled edits and returns the resulting content.
func (b *Buffer) Bytes() ([]byte, error) {
	edits := make([]span, len(b.edits))
	copy(edits, b.edits)
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].start != edits[j].start {
			return edits[i].start < edits[j].start
		}
		return edits[i].end < edits[j].end
	})

	var out []byte
	prev := 0
	for _, e := range edits {
		if e.start < prev {
			return nil, fmt.Errorf("overlapping edits at offset %d", e.start)
		}
		if e.start < 0 || e.end > len(b.src) || e.end < e.start {
			return nil, fmt.Errorf("edit [%d,%d) out of range, source is %d bytes", e.start, e.end, len(b.src))
		}
		out = append(out, b.src[prev:e.start]...)
		out = append(out, e.text...)
		prev = e.end
	}
	out = append(out, b.src[prev:]...)

	return out, nil
}
