package console

import (
	"io"
	"os"
	"os/signal"
	"sync"
	"time"
)

// DefaultEscapeTimeout is how long a lone ESC waits for the rest of a
// sequence before it is reported as the Escape key.
const DefaultEscapeTimeout = 25 * time.Millisecond

// EventSource delivers terminal input events to the event loop.
type EventSource interface {
	// Next blocks until an event is available.
	Next() (InputEvent, error)

	// Poll waits at most timeout for an event. ok is false when the
	// timeout expired first.
	Poll(timeout time.Duration) (ev InputEvent, ok bool, err error)
}

// EventQueue is an EventSource backed by a fixed list of events. Next
// returns io.EOF once the queue is drained.
type EventQueue struct {
	mu     sync.Mutex
	events []InputEvent
}

// NewEventQueue creates a queue holding events.
func NewEventQueue(events ...InputEvent) *EventQueue {
	return &EventQueue{events: events}
}

// Push appends events to the queue.
func (q *EventQueue) Push(events ...InputEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, events...)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

func (q *EventQueue) Next() (InputEvent, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return InputEvent{}, io.EOF
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, nil
}

func (q *EventQueue) Poll(time.Duration) (InputEvent, bool, error) {
	ev, err := q.Next()
	if err != nil {
		return InputEvent{}, false, nil
	}
	return ev, true, nil
}

// Typed returns one character event per rune of s.
func Typed(s string) []InputEvent {
	events := make([]InputEvent, 0, len(s))
	for _, r := range s {
		events = append(events, Char(r))
	}
	return events
}

// Line returns the events for typing s and pressing Enter.
func Line(s string) []InputEvent {
	return append(Typed(s), Key(EventEnter))
}

// TerminalSource reads raw bytes from a terminal, decodes them with an
// EscapeParser and merges in resize notifications.
type TerminalSource struct {
	in         io.Reader
	size       func() (cols, rows int, err error)
	parser     *EscapeParser
	escTimeout time.Duration

	chunks  chan []byte
	readErr error
	winch   chan os.Signal
	pending []InputEvent
	done    chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewTerminalSource creates a source reading from in. size is queried on
// every resize signal.
func NewTerminalSource(in io.Reader, size func() (cols, rows int, err error)) *TerminalSource {
	return &TerminalSource{
		in:         in,
		size:       size,
		parser:     NewEscapeParser(),
		escTimeout: DefaultEscapeTimeout,
		chunks:     make(chan []byte, 16),
		winch:      make(chan os.Signal, 1),
		done:       make(chan struct{}),
	}
}

// SetEscapeTimeout overrides DefaultEscapeTimeout.
func (s *TerminalSource) SetEscapeTimeout(d time.Duration) {
	s.escTimeout = d
}

// Start launches the reader goroutine and subscribes to resize signals.
// Calling it more than once has no effect.
func (s *TerminalSource) Start() {
	s.startOnce.Do(func() {
		if sig := resizeSignal(); sig != nil {
			signal.Notify(s.winch, sig)
		}
		go s.readLoop()
	})
}

// Stop unsubscribes from resize signals and ends the reader goroutine.
// A read already blocked on the terminal cannot be interrupted: it
// consumes at most one more chunk of input, which is discarded, and
// everything after that is left on the terminal for the next reader.
func (s *TerminalSource) Stop() {
	s.stopOnce.Do(func() {
		signal.Stop(s.winch)
		close(s.done)
	})
}

func (s *TerminalSource) readLoop() {
	buf := make([]byte, 256)
	for {
		n, err := s.in.Read(buf)
		if n > 0 {
			if s.stopped() {
				s.finish(io.EOF)
				return
			}
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case s.chunks <- chunk:
			case <-s.done:
				s.finish(io.EOF)
				return
			}
		}
		if err != nil {
			s.finish(err)
			return
		}
	}
}

func (s *TerminalSource) stopped() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// finish records why reading ended and wakes up the consumer.
func (s *TerminalSource) finish(err error) {
	s.readErr = err
	close(s.chunks)
}

func (s *TerminalSource) Next() (InputEvent, error) {
	s.Start()
	for len(s.pending) == 0 {
		if err := s.fill(-1); err != nil {
			return InputEvent{}, err
		}
	}
	return s.pop(), nil
}

func (s *TerminalSource) Poll(timeout time.Duration) (InputEvent, bool, error) {
	s.Start()
	if len(s.pending) == 0 {
		if err := s.fill(timeout); err != nil {
			return InputEvent{}, false, err
		}
	}
	if len(s.pending) == 0 {
		return InputEvent{}, false, nil
	}
	return s.pop(), true, nil
}

func (s *TerminalSource) pop() InputEvent {
	ev := s.pending[0]
	s.pending = s.pending[1:]
	return ev
}

// fill waits for one chunk of input, a resize signal or the timeout. A
// negative timeout waits indefinitely.
func (s *TerminalSource) fill(timeout time.Duration) error {
	var timeoutC <-chan time.Time
	if timeout >= 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timeoutC = timer.C
	}

	var escC <-chan time.Time
	if s.parser.PendingEscape() {
		timer := time.NewTimer(s.escTimeout)
		defer timer.Stop()
		escC = timer.C
	}

	select {
	case chunk, ok := <-s.chunks:
		if !ok {
			// Input ended; a dangling ESC is still a key press
			s.pending = append(s.pending, s.parser.Flush()...)
			if len(s.pending) > 0 {
				return nil
			}
			return s.readErr
		}
		s.pending = append(s.pending, s.parser.Feed(chunk)...)

	case <-s.winch:
		cols, rows, err := s.size()
		if err == nil {
			cols, rows = usableSize(cols, rows)
			s.pending = append(s.pending, Resize(cols, rows))
		}

	case <-escC:
		s.pending = append(s.pending, s.parser.Flush()...)

	case <-timeoutC:
	}
	return nil
}
