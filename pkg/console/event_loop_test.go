package console

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoop(events ...InputEvent) (*EventLoop, *Renderer, *bytes.Buffer) {
	var out bytes.Buffer
	r := NewRenderer(&out, 80, 24)
	return NewEventLoop(NewEventQueue(events...), r), r, &out
}

func TestEventLoopReadsLine(t *testing.T) {
	loop, r, out := newTestLoop(Line("hello")...)

	line, err := loop.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "hello", line)
	assert.Equal(t, 0, loop.Buffer().Len())
	assert.Contains(t, out.String(), "h")

	col, row := r.Geometry().Cursor()
	assert.Equal(t, 0, col)
	assert.Equal(t, 1, row, "enter moves to the next row")

	_, err = loop.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestEventLoopSubmitsEmptyLine(t *testing.T) {
	loop, _, _ := newTestLoop(Key(EventEnter))

	line, err := loop.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "", line)
}

func TestEventLoopInsertInMiddle(t *testing.T) {
	events := Typed("helo")
	events = append(events, Key(EventLeft), Char('l'), Key(EventEnter))
	loop, _, out := newTestLoop(events...)

	line, err := loop.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "hello", line)
	assert.Contains(t, out.String(), "lo", "the tail after the cursor is re-echoed")
}

func TestEventLoopBackspace(t *testing.T) {
	events := Typed("abc")
	events = append(events, Key(EventBackspace), Key(EventEnter))
	loop, _, out := newTestLoop(events...)

	line, err := loop.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "ab", line)
	assert.Contains(t, out.String(), MoveCursorSeq(0, 0)+ClearBelowSeq()+"> ab", "row is redrawn with the prompt")
}

func TestEventLoopBackspaceRedrawsWrappedInput(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, 10, 24)
	events := append(Typed(strings.Repeat("y", 12)), Key(EventBackspace), Key(EventEnter))
	loop := NewEventLoop(NewEventQueue(events...), r)
	require.NoError(t, r.PrintAt("out"))
	require.NoError(t, r.Prompt("$ "))

	line, err := loop.ReadLine("$ ")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("y", 11), line)

	assert.Contains(t, out.String(), MoveCursorSeq(0, 1)+ClearBelowSeq()+"$ "+strings.Repeat("y", 11),
		"redraw starts on the prompt row")
	assert.NotContains(t, out.String(), MoveCursorSeq(0, 2)+ClearBelowSeq(),
		"the prompt is not reprinted on the continuation row")
}

func TestEventLoopBackspaceOnEmptyLineIsIgnored(t *testing.T) {
	loop, _, out := newTestLoop(Key(EventBackspace), Key(EventEnter))

	line, err := loop.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "", line)
	assert.NotContains(t, out.String(), ClearBelowSeq())
}

func TestEventLoopCursorStopsAtBufferEdges(t *testing.T) {
	events := []InputEvent{Key(EventLeft)}
	events = append(events, Typed("ab")...)
	events = append(events, Key(EventRight), Key(EventLeft), Key(EventLeft), Key(EventLeft))
	loop, r, _ := newTestLoop(events...)
	require.NoError(t, r.Prompt("> "))

	_, err := loop.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "ab", loop.Buffer().Text())
	assert.Equal(t, 0, loop.Buffer().Index())
	col, row := r.Geometry().Cursor()
	assert.Equal(t, 2, col, "cursor never moves into the prompt")
	assert.Equal(t, 0, row)
}

func TestEventLoopKittyKeyPressMovesOnce(t *testing.T) {
	// One Left keystroke with event types enabled: press, then release
	events := NewEscapeParser().Feed([]byte("abc\x1b[D\x1b[1;1:3DX\r"))
	loop, _, _ := newTestLoop(events...)

	line, err := loop.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "abXc", line)
}

func TestEventLoopExitKeys(t *testing.T) {
	tests := []struct {
		name     string
		key      InputEventType
		expected error
	}{
		{"escape", EventEscape, ErrEscape},
		{"ctrl-c", EventInterrupt, ErrInterrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := append(Typed("ab"), Key(tt.key))
			loop, _, _ := newTestLoop(events...)

			_, err := loop.ReadLine("> ")
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestEventLoopIgnoresOtherEvents(t *testing.T) {
	loop, _, _ := newTestLoop(
		Char('a'),
		Key(EventTab),
		Key(EventUp),
		Key(EventMouse),
		Key(EventFocus),
		Key(EventUnknown),
		Char('b'),
		Key(EventEnter),
	)

	line, err := loop.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "ab", line)
}

func TestEventLoopCoalescesResizeBurst(t *testing.T) {
	events := []InputEvent{Resize(100, 30), Resize(120, 40), Resize(90, 20)}
	events = append(events, Line("ok")...)
	loop, r, _ := newTestLoop(events...)

	line, err := loop.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "ok", line, "the event that ended the burst is not lost")

	cols, rows := r.Geometry().Size()
	assert.Equal(t, 90, cols)
	assert.Equal(t, 20, rows)
}

func TestEventLoopResizeBeforeEOF(t *testing.T) {
	loop, r, _ := newTestLoop(Resize(50, 10))

	_, err := loop.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)

	cols, rows := r.Geometry().Size()
	assert.Equal(t, 50, cols)
	assert.Equal(t, 10, rows)
}

func TestEventLoopSeparateResizes(t *testing.T) {
	events := []InputEvent{Resize(100, 30), Char('x'), Resize(60, 15), Key(EventEnter)}
	loop, r, _ := newTestLoop(events...)

	line, err := loop.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "x", line)

	cols, rows := r.Geometry().Size()
	assert.Equal(t, 60, cols)
	assert.Equal(t, 15, rows)
}

func TestEventLoopWrapsLongInput(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, 10, 24)
	loop := NewEventLoop(NewEventQueue(Typed(strings.Repeat("y", 12))...), r)
	require.NoError(t, r.Prompt("$ "))

	_, err := loop.ReadLine("$ ")
	assert.ErrorIs(t, err, io.EOF)

	col, row := r.Geometry().Cursor()
	assert.Equal(t, 3, col)
	assert.Equal(t, 1, row)
}
