package console

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// InputEvent represents a key press, resize or other terminal input event
type InputEvent struct {
	Type InputEventType
	Rune rune // EventChar
	Cols int  // EventResize
	Rows int  // EventResize
}

type InputEventType int

const (
	EventChar InputEventType = iota
	EventUp
	EventDown
	EventLeft
	EventRight
	EventHome
	EventEnd
	EventBackspace
	EventDelete
	EventEnter
	EventTab
	EventInterrupt
	EventEscape
	EventResize
	EventMouse
	EventFocus
	EventUnknown
)

var eventNames = map[InputEventType]string{
	EventChar:      "char",
	EventUp:        "up",
	EventDown:      "down",
	EventLeft:      "left",
	EventRight:     "right",
	EventHome:      "home",
	EventEnd:       "end",
	EventBackspace: "backspace",
	EventDelete:    "delete",
	EventEnter:     "enter",
	EventTab:       "tab",
	EventInterrupt: "interrupt",
	EventEscape:    "escape",
	EventResize:    "resize",
	EventMouse:     "mouse",
	EventFocus:     "focus",
	EventUnknown:   "unknown",
}

func (t InputEventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "InputEventType(" + strconv.Itoa(int(t)) + ")"
}

// Key returns a key event of the given type.
func Key(t InputEventType) InputEvent { return InputEvent{Type: t} }

// Char returns a printable character event.
func Char(r rune) InputEvent { return InputEvent{Type: EventChar, Rune: r} }

// Resize returns a terminal resize event.
func Resize(cols, rows int) InputEvent {
	return InputEvent{Type: EventResize, Cols: cols, Rows: rows}
}

// Parser states
const (
	stateGround = iota
	stateEsc
	stateCSI
	stateSS3
	stateUTF8
)

// Kitty keyboard protocol values used when decoding CSI u sequences.
const (
	kittyModShift    = 1
	kittyModCtrl     = 4
	kittyPress       = 1
	kittyRelease     = 3
	kittyPrivateLow  = 57344
	kittyPrivateHigh = 63743
)

// EscapeParser turns raw terminal bytes into input events using a small
// state machine. It understands legacy control bytes, CSI and SS3 cursor
// keys, kitty keyboard protocol (CSI u) reports, SGR mouse and focus
// reports, and UTF-8 encoded characters.
type EscapeParser struct {
	state  int
	buffer []byte
}

// NewEscapeParser creates a new escape sequence parser
func NewEscapeParser() *EscapeParser {
	return &EscapeParser{
		state:  stateGround,
		buffer: make([]byte, 0, 16),
	}
}

// Feed processes a chunk of input and returns the completed events.
func (ep *EscapeParser) Feed(p []byte) []InputEvent {
	var events []InputEvent
	for _, b := range p {
		events = ep.parse(b, events)
	}
	return events
}

// PendingEscape reports whether the parser holds a lone ESC that could
// still become the start of a sequence.
func (ep *EscapeParser) PendingEscape() bool {
	return ep.state == stateEsc
}

// Flush resolves a lone pending ESC into an Escape event. Partial
// sequences other than a bare ESC are kept.
func (ep *EscapeParser) Flush() []InputEvent {
	if ep.state != stateEsc {
		return nil
	}
	ep.Reset()
	return []InputEvent{Key(EventEscape)}
}

// Reset the parser state
func (ep *EscapeParser) Reset() {
	ep.state = stateGround
	ep.buffer = ep.buffer[:0]
}

func (ep *EscapeParser) parse(b byte, out []InputEvent) []InputEvent {
	switch ep.state {
	case stateGround:
		return ep.ground(b, out)

	case stateEsc: // Got ESC, expecting '[', 'O' or an Alt-modified key
		switch {
		case b == '[':
			ep.state = stateCSI
			return out
		case b == 'O':
			ep.state = stateSS3
			return out
		case b == 27:
			// ESC ESC: the first one stands alone
			return append(out, Key(EventEscape))
		case b >= 32 && b < 127:
			// Alt+key, the modifier is dropped
			ep.Reset()
			return append(out, Char(rune(b)))
		default:
			ep.Reset()
			out = append(out, Key(EventEscape))
			return ep.ground(b, out)
		}

	case stateCSI:
		if b >= 0x40 && b <= 0x7e {
			ev, ok := decodeCSI(string(ep.buffer), b)
			ep.Reset()
			if ok {
				out = append(out, ev)
			}
			return out
		}
		if b < 0x20 {
			// Malformed sequence, drop it and reprocess the byte
			ep.Reset()
			return ep.ground(b, out)
		}
		ep.buffer = append(ep.buffer, b)
		return out

	case stateSS3:
		ep.Reset()
		switch b {
		case 'A':
			return append(out, Key(EventUp))
		case 'B':
			return append(out, Key(EventDown))
		case 'C':
			return append(out, Key(EventRight))
		case 'D':
			return append(out, Key(EventLeft))
		case 'H':
			return append(out, Key(EventHome))
		case 'F':
			return append(out, Key(EventEnd))
		}
		return append(out, Key(EventUnknown))

	case stateUTF8:
		if b&0xc0 != 0x80 {
			// Truncated sequence
			ep.Reset()
			out = append(out, Char(utf8.RuneError))
			return ep.ground(b, out)
		}
		ep.buffer = append(ep.buffer, b)
		if utf8.FullRune(ep.buffer) {
			r, _ := utf8.DecodeRune(ep.buffer)
			ep.Reset()
			out = append(out, Char(r))
		}
		return out
	}
	return out
}

func (ep *EscapeParser) ground(b byte, out []InputEvent) []InputEvent {
	switch {
	case b == 27:
		ep.state = stateEsc
		return out
	case b == 8 || b == 127:
		return append(out, Key(EventBackspace))
	case b == 13 || b == 10:
		return append(out, Key(EventEnter))
	case b == 9:
		return append(out, Key(EventTab))
	case b == 3: // Ctrl+C
		return append(out, Key(EventInterrupt))
	case b < 32:
		// Other control characters are not bound
		return out
	case b < 127:
		return append(out, Char(rune(b)))
	case b >= 0xc0:
		ep.state = stateUTF8
		ep.buffer = append(ep.buffer[:0], b)
		return out
	default:
		return append(out, Char(utf8.RuneError))
	}
}

// decodeCSI maps a complete CSI sequence (parameter bytes and final byte)
// to an event. ok is false for sequences that produce no event, such as key
// release reports.
func decodeCSI(params string, final byte) (InputEvent, bool) {
	if strings.HasPrefix(params, "<") && (final == 'M' || final == 'm') {
		return Key(EventMouse), true
	}
	if strings.HasPrefix(params, "?") {
		// Replies to capability queries
		return Key(EventUnknown), true
	}

	switch final {
	case 'A', 'B', 'C', 'D', 'H', 'F', '~':
		// Legacy keys report releases as "1;mods:3" under the kitty protocol
		if keyEventType(params) == kittyRelease {
			return InputEvent{}, false
		}
	}

	switch final {
	case 'A':
		return Key(EventUp), true
	case 'B':
		return Key(EventDown), true
	case 'C':
		return Key(EventRight), true
	case 'D':
		return Key(EventLeft), true
	case 'H':
		return Key(EventHome), true
	case 'F':
		return Key(EventEnd), true
	case 'I', 'O':
		if params == "" {
			return Key(EventFocus), true
		}
	case 'M':
		return Key(EventMouse), true
	case '~':
		switch firstParam(params) {
		case 1, 7:
			return Key(EventHome), true
		case 3:
			return Key(EventDelete), true
		case 4, 8:
			return Key(EventEnd), true
		}
	case 'u':
		return decodeKitty(params)
	}
	return Key(EventUnknown), true
}

// decodeKitty decodes "code[:alternates];mods[:event];text" key reports.
func decodeKitty(params string) (InputEvent, bool) {
	fields := strings.Split(params, ";")

	codes := strings.Split(fields[0], ":")
	code, err := strconv.Atoi(codes[0])
	if err != nil {
		return Key(EventUnknown), true
	}

	mods := 0
	if len(fields) > 1 && fields[1] != "" {
		parts := strings.Split(fields[1], ":")
		if m, err := strconv.Atoi(parts[0]); err == nil && m > 0 {
			mods = m - 1
		}
	}
	if keyEventType(params) == kittyRelease {
		return InputEvent{}, false
	}

	switch code {
	case 13:
		return Key(EventEnter), true
	case 9:
		return Key(EventTab), true
	case 127, 8:
		return Key(EventBackspace), true
	case 27:
		return Key(EventEscape), true
	}

	if mods&kittyModCtrl != 0 {
		if code == 'c' {
			return Key(EventInterrupt), true
		}
		return Key(EventUnknown), true
	}

	// Prefer the associated text, then the shifted alternate
	if len(fields) > 2 && fields[2] != "" {
		if cp, err := strconv.Atoi(strings.Split(fields[2], ":")[0]); err == nil {
			code = cp
		}
	} else if len(codes) > 1 && codes[1] != "" {
		if shifted, err := strconv.Atoi(codes[1]); err == nil {
			code = shifted
		}
	} else if mods&kittyModShift != 0 && code >= 'a' && code <= 'z' {
		code -= 'a' - 'A'
	}

	if code < 32 || (code >= kittyPrivateLow && code <= kittyPrivateHigh) || !utf8.ValidRune(rune(code)) {
		return Key(EventUnknown), true
	}
	return Char(rune(code)), true
}

// keyEventType returns the event sub-parameter of the modifier field
// ("mods:event"), or kittyPress when there is none.
func keyEventType(params string) int {
	fields := strings.SplitN(params, ";", 3)
	if len(fields) < 2 {
		return kittyPress
	}
	parts := strings.Split(fields[1], ":")
	if len(parts) < 2 {
		return kittyPress
	}
	e, err := strconv.Atoi(parts[1])
	if err != nil {
		return kittyPress
	}
	return e
}

func firstParam(params string) int {
	if i := strings.IndexByte(params, ';'); i >= 0 {
		params = params[:i]
	}
	n, err := strconv.Atoi(params)
	if err != nil {
		return -1
	}
	return n
}
