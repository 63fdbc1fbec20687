package console

import (
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSize(cols, rows int) func() (int, int, error) {
	return func() (int, int, error) { return cols, rows, nil }
}

func TestEventQueue(t *testing.T) {
	q := NewEventQueue(Char('a'))
	q.Push(Key(EventEnter))
	assert.Equal(t, 2, q.Len())

	ev, err := q.Next()
	require.NoError(t, err)
	assert.Equal(t, Char('a'), ev)

	ev, ok, err := q.Poll(time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Key(EventEnter), ev)

	_, ok, err = q.Poll(time.Millisecond)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = q.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineHelper(t *testing.T) {
	events := Line("hé")
	require.Len(t, events, 3)
	assert.Equal(t, Char('h'), events[0])
	assert.Equal(t, Char('é'), events[1])
	assert.Equal(t, Key(EventEnter), events[2])
}

func TestTerminalSourceDecodesInput(t *testing.T) {
	pr, pw := io.Pipe()
	src := NewTerminalSource(pr, fixedSize(80, 24))
	defer src.Stop()

	go func() {
		pw.Write([]byte("a\x1b[A\r"))
		pw.Close()
	}()

	var got []InputEvent
	for {
		ev, err := src.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, ev)
	}

	assert.Equal(t, []InputEvent{Char('a'), Key(EventUp), Key(EventEnter)}, got)
}

func TestTerminalSourceLoneEscapeTimesOut(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	src := NewTerminalSource(pr, fixedSize(80, 24))
	src.SetEscapeTimeout(5 * time.Millisecond)
	defer src.Stop()

	go pw.Write([]byte{0x1b})

	ev, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, Key(EventEscape), ev)
}

func TestTerminalSourceEscapeAtEndOfInput(t *testing.T) {
	pr, pw := io.Pipe()
	src := NewTerminalSource(pr, fixedSize(80, 24))
	src.SetEscapeTimeout(time.Hour)
	defer src.Stop()

	go func() {
		pw.Write([]byte{0x1b})
		pw.Close()
	}()

	ev, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, Key(EventEscape), ev)

	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestTerminalSourcePollTimesOut(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	src := NewTerminalSource(pr, fixedSize(80, 24))
	defer src.Stop()

	_, ok, err := src.Poll(10 * time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTerminalSourceStopEndsReader(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	src := NewTerminalSource(pr, fixedSize(80, 24))
	src.Start()
	src.Stop()
	src.Stop()

	// The read already in flight takes one chunk
	_, err := pw.Write([]byte("a"))
	require.NoError(t, err)

	var written atomic.Bool
	go func() {
		if _, err := pw.Write([]byte("b")); err == nil {
			written.Store(true)
		}
	}()
	assert.Never(t, written.Load, 100*time.Millisecond, 10*time.Millisecond, "later input is left for the next reader")

	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestTerminalSourceFeedsEventLoop(t *testing.T) {
	pr, pw := io.Pipe()
	src := NewTerminalSource(pr, fixedSize(80, 24))
	defer src.Stop()

	go func() {
		pw.Write([]byte("helo\x1b[Dl\r"))
		pw.Close()
	}()

	loop, _, _ := newTestLoop()
	loop.source = src

	line, err := loop.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "hello", line)
}
