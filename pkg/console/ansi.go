package console

import "fmt"

// ANSI escape sequence helpers for consistent terminal control.

// MoveCursorSeq returns the escape sequence to move the cursor to the
// 0-indexed cell (col,row).
// Note: ANSI uses row first, then column, both 1-based.
func MoveCursorSeq(col, row int) string {
	return fmt.Sprintf("\033[%d;%dH", row+1, col+1)
}

// ClearBelowSeq clears from the cursor to the end of the screen.
func ClearBelowSeq() string { return "\033[J" }

// ClearScreenSeq clears the screen and homes the cursor.
func ClearScreenSeq() string { return "\033[2J\033[H" }

// ScrollUpSeq scrolls the whole screen up by n rows.
func ScrollUpSeq(n int) string {
	return fmt.Sprintf("\033[%dS", n)
}

// ShowCursorSeq makes the cursor visible.
func ShowCursorSeq() string { return "\033[?25h" }

// Reporting modes toggled while the session owns the terminal.
const (
	enableFocusSeq  = "\033[?1004h"
	disableFocusSeq = "\033[?1004l"
	// Normal tracking plus SGR extended coordinates.
	enableMouseSeq      = "\033[?1000h\033[?1006h"
	disableMouseSeq     = "\033[?1006l\033[?1000l"
	disablePasteSeq     = "\033[?2004l"
	queryKeyboardSeq    = "\033[?u"
	popKeyboardFlagsSeq = "\033[<u"
)

// Kitty keyboard protocol progressive enhancement flags.
const (
	KeyboardDisambiguate     = 1
	KeyboardReportEventTypes = 2
	KeyboardReportAlternates = 4
	KeyboardReportAllKeys    = 8
)

// PushKeyboardFlagsSeq pushes a set of keyboard enhancement flags.
func PushKeyboardFlagsSeq(flags int) string {
	return fmt.Sprintf("\033[>%du", flags)
}
