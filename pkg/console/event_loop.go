package console

import (
	"errors"
	"time"
)

// DefaultResizeWindow is the quiet period that ends a burst of resize
// events.
const DefaultResizeWindow = 50 * time.Millisecond

var (
	// ErrEscape is returned by ReadLine when the Escape key is pressed.
	ErrEscape = errors.New("escape pressed")

	// ErrInterrupt is returned by ReadLine on Ctrl+C.
	ErrInterrupt = errors.New("interrupted")
)

// EventLoop reads input events and edits a line until Enter is pressed.
// It is the only component that mutates the LineBuffer, and it renders
// every edit through the Renderer.
type EventLoop struct {
	source   EventSource
	renderer *Renderer
	buffer   *LineBuffer
	window   time.Duration

	// Events that arrived while a resize burst was being drained
	deferred []InputEvent
}

// NewEventLoop creates an event loop.
func NewEventLoop(source EventSource, renderer *Renderer) *EventLoop {
	return &EventLoop{
		source:   source,
		renderer: renderer,
		buffer:   NewLineBuffer(),
		window:   DefaultResizeWindow,
	}
}

// SetResizeWindow overrides DefaultResizeWindow.
func (l *EventLoop) SetResizeWindow(d time.Duration) {
	l.window = d
}

// Buffer returns the edit buffer.
func (l *EventLoop) Buffer() *LineBuffer {
	return l.buffer
}

// ReadLine blocks until a line is submitted with Enter and returns it.
// prompt must be the text already shown on the input row; it is reprinted
// when the row is redrawn. Escape and Ctrl+C end the read with ErrEscape
// and ErrInterrupt.
func (l *EventLoop) ReadLine(prompt string) (string, error) {
	for {
		ev, err := l.next()
		if err != nil {
			return "", err
		}
		line, done, err := l.handle(prompt, ev)
		if err != nil {
			return "", err
		}
		if done {
			return line, nil
		}
	}
}

func (l *EventLoop) next() (InputEvent, error) {
	if len(l.deferred) > 0 {
		ev := l.deferred[0]
		l.deferred = l.deferred[1:]
		return ev, nil
	}
	return l.source.Next()
}

// handle applies one event. done is true once a line was submitted.
func (l *EventLoop) handle(prompt string, ev InputEvent) (line string, done bool, err error) {
	switch ev.Type {
	case EventEnter:
		line = l.buffer.Flush()
		return line, true, l.renderer.NewLine()

	case EventBackspace:
		if !l.buffer.DeleteBack() {
			return "", false, nil
		}
		if err := l.renderer.RedrawLine(prompt + l.buffer.Text()); err != nil {
			return "", false, err
		}
		return "", false, l.renderer.CursorLeft()

	case EventLeft:
		if l.buffer.MoveLeft() {
			return "", false, l.renderer.CursorLeft()
		}

	case EventRight:
		if l.buffer.MoveRight() {
			return "", false, l.renderer.CursorRight()
		}

	case EventTab:
		// Reserved for completion

	case EventEscape:
		return "", false, ErrEscape

	case EventInterrupt:
		return "", false, ErrInterrupt

	case EventChar:
		l.buffer.Insert(ev.Rune)
		return "", false, l.renderer.Echo(l.buffer.Tail())

	case EventResize:
		cols, rows := l.drainResize(ev)
		l.renderer.Resize(cols, rows)
	}
	return "", false, nil
}

// drainResize collapses a burst of resize events into the last one. The
// burst ends when no event arrives within the window or when a non-resize
// event arrives; such an event is kept for the next read.
func (l *EventLoop) drainResize(first InputEvent) (cols, rows int) {
	last := first
	for {
		ev, ok, err := l.source.Poll(l.window)
		if err != nil || !ok {
			break
		}
		if ev.Type != EventResize {
			l.deferred = append(l.deferred, ev)
			break
		}
		last = ev
	}
	return last.Cols, last.Rows
}
