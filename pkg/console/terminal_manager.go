package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// TerminalManager owns the terminal device for the lifetime of a session:
// the output stream, raw mode and the optional reporting modes.
type TerminalManager interface {
	io.Writer

	// Input returns the stream keystrokes are read from.
	Input() io.Reader

	// GetSize returns the terminal dimensions
	GetSize() (width, height int, err error)

	// Acquire enters raw mode and enables the configured reporting modes.
	Acquire() error

	// Release undoes everything Acquire did. Calling it again is a no-op.
	Release() error

	// IsRawMode returns true if terminal is in raw mode
	IsRawMode() bool
}

// Features selects the reporting modes enabled on Acquire.
type Features struct {
	// KeyboardEnhancement pushes kitty keyboard protocol flags when the
	// terminal answers the capability query.
	KeyboardEnhancement bool
	KeyboardFlags       int
	ProbeTimeout        time.Duration

	MouseCapture   bool
	FocusReporting bool
}

// DefaultFeatures enables everything, matching a full-featured terminal.
func DefaultFeatures() Features {
	return Features{
		KeyboardEnhancement: true,
		KeyboardFlags: KeyboardDisambiguate | KeyboardReportEventTypes |
			KeyboardReportAlternates | KeyboardReportAllKeys,
		ProbeTimeout:   100 * time.Millisecond,
		MouseCapture:   true,
		FocusReporting: true,
	}
}

// terminalManager implements TerminalManager on top of a pair of files
type terminalManager struct {
	mu       sync.Mutex
	in       *os.File
	out      *os.File
	features Features
	oldState *term.State
	rawMode  bool

	keyboardPushed bool
	mouseEnabled   bool
	focusEnabled   bool

	logf func(format string, args ...interface{})
}

// NewTerminalManager creates a terminal manager for the process's stdin
// and stdout.
func NewTerminalManager(features Features) TerminalManager {
	return NewTerminalManagerFor(os.Stdin, os.Stdout, features)
}

// NewTerminalManagerFor creates a terminal manager for an arbitrary
// terminal, such as the slave side of a pseudo-terminal.
func NewTerminalManagerFor(in, out *os.File, features Features) TerminalManager {
	return &terminalManager{
		in:       in,
		out:      out,
		features: features,
		logf:     func(string, ...interface{}) {},
	}
}

// SetLogger routes capability-probe diagnostics to logf.
func SetLogger(tm TerminalManager, logf func(format string, args ...interface{})) {
	if m, ok := tm.(*terminalManager); ok && logf != nil {
		m.logf = logf
	}
}

func (tm *terminalManager) Input() io.Reader { return tm.in }

func (tm *terminalManager) Write(p []byte) (int, error) {
	return tm.out.Write(p)
}

// GetSize returns the current terminal size. When the output is not a
// terminal, or reports a zero size, the size comes from COLUMNS and LINES
// or defaults to 80x24.
func (tm *terminalManager) GetSize() (width, height int, err error) {
	width, height, err = term.GetSize(int(tm.out.Fd()))
	if err != nil {
		if !term.IsTerminal(int(tm.out.Fd())) {
			width, height = sizeFromEnv()
			return width, height, nil
		}
		return 0, 0, fmt.Errorf("failed to get terminal size: %w", err)
	}
	width, height = usableSize(width, height)
	return width, height, nil
}

func (tm *terminalManager) IsRawMode() bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.rawMode
}

// Acquire enters raw mode and turns on the configured reporting modes.
// Input that is not a terminal (a pipe or a file) is left untouched.
func (tm *terminalManager) Acquire() error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.rawMode {
		return nil // Already acquired
	}

	fd := int(tm.in.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	tm.oldState = oldState
	tm.rawMode = true

	var seq strings.Builder
	if tm.features.KeyboardEnhancement {
		if probeKeyboardEnhancement(tm.in, tm.out, tm.features.ProbeTimeout) {
			seq.WriteString(PushKeyboardFlagsSeq(tm.features.KeyboardFlags))
			tm.keyboardPushed = true
		} else {
			tm.logf("keyboard enhancement not supported, using legacy key encoding")
		}
	}
	if tm.features.FocusReporting {
		seq.WriteString(enableFocusSeq)
		tm.focusEnabled = true
	}
	if tm.features.MouseCapture {
		seq.WriteString(enableMouseSeq)
		tm.mouseEnabled = true
	}
	if seq.Len() > 0 {
		if _, err := io.WriteString(tm.out, seq.String()); err != nil {
			return fmt.Errorf("failed to enable reporting modes: %w", err)
		}
	}
	return nil
}

// Release restores terminal to original state
func (tm *terminalManager) Release() error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if !tm.rawMode {
		return nil
	}

	var seq strings.Builder
	seq.WriteString(disablePasteSeq)
	if tm.keyboardPushed {
		seq.WriteString(popKeyboardFlagsSeq)
		tm.keyboardPushed = false
	}
	if tm.focusEnabled {
		seq.WriteString(disableFocusSeq)
		tm.focusEnabled = false
	}
	if tm.mouseEnabled {
		seq.WriteString(disableMouseSeq)
		tm.mouseEnabled = false
	}
	seq.WriteString(ShowCursorSeq())
	_, writeErr := io.WriteString(tm.out, seq.String())

	// Restore terminal mode even if the reset sequences could not be written
	if err := term.Restore(int(tm.in.Fd()), tm.oldState); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	tm.rawMode = false
	tm.oldState = nil

	if writeErr != nil {
		return fmt.Errorf("failed to reset reporting modes: %w", writeErr)
	}
	return nil
}
