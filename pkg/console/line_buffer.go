package console

// LineBuffer is the in-progress input line and its insertion index.
// The index always satisfies 0 <= idx <= len(text).
type LineBuffer struct {
	text []rune
	idx  int
}

// NewLineBuffer creates an empty buffer.
func NewLineBuffer() *LineBuffer {
	return &LineBuffer{}
}

// Insert puts r at the insertion index and moves the index past it.
func (b *LineBuffer) Insert(r rune) {
	b.text = append(b.text, 0)
	copy(b.text[b.idx+1:], b.text[b.idx:])
	b.text[b.idx] = r
	b.idx++
}

// DeleteBack removes the rune before the index. It reports false and
// leaves the buffer untouched when the index is already at the start.
func (b *LineBuffer) DeleteBack() bool {
	if b.idx == 0 {
		return false
	}
	b.text = append(b.text[:b.idx-1], b.text[b.idx:]...)
	b.idx--
	return true
}

// MoveLeft moves the index one rune left, reporting whether it moved.
func (b *LineBuffer) MoveLeft() bool {
	if b.idx == 0 {
		return false
	}
	b.idx--
	return true
}

// MoveRight moves the index one rune right, reporting whether it moved.
func (b *LineBuffer) MoveRight() bool {
	if b.idx >= len(b.text) {
		return false
	}
	b.idx++
	return true
}

// Flush returns the buffered line and resets the buffer.
func (b *LineBuffer) Flush() string {
	line := string(b.text)
	b.text = nil
	b.idx = 0
	return line
}

// Text returns the current contents.
func (b *LineBuffer) Text() string { return string(b.text) }

// Tail returns the contents from the rune just before the index onward,
// i.e. the part of the line that has to be re-echoed after an insert.
func (b *LineBuffer) Tail() string {
	if b.idx == 0 {
		return string(b.text)
	}
	return string(b.text[b.idx-1:])
}

// Index returns the insertion index.
func (b *LineBuffer) Index() int { return b.idx }

// Len returns the number of runes in the buffer.
func (b *LineBuffer) Len() int { return len(b.text) }
