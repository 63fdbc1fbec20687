package console

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/muesli/termenv"
)

// Renderer is the single writer to the terminal. Every write goes through
// it so that the tracked Geometry always matches what is on screen.
type Renderer struct {
	out     io.Writer
	geom    *Geometry
	profile termenv.Profile
	input   termenv.Style

	// Row the current prompt starts on
	anchor int
}

// NewRenderer creates a renderer for a cols x rows terminal. Output is
// unstyled until SetProfile selects a color profile. A zero size falls back
// to COLUMNS and LINES, then 80x24.
func NewRenderer(out io.Writer, cols, rows int) *Renderer {
	cols, rows = usableSize(cols, rows)
	r := &Renderer{
		out:  out,
		geom: NewGeometry(cols, rows),
	}
	r.SetProfile(termenv.Ascii)
	return r
}

// SetProfile selects the color profile used by the styled print variants
// and for echoing typed input in bold.
func (r *Renderer) SetProfile(p termenv.Profile) {
	r.profile = p
	r.input = p.String().Bold()
}

// Profile returns the active color profile, for building styles to pass
// to PrintStyled.
func (r *Renderer) Profile() termenv.Profile {
	return r.profile
}

// Geometry exposes the tracked layout state.
func (r *Renderer) Geometry() *Geometry {
	return r.geom
}

// PrintAt writes text at the tracked cursor and moves the cursor to the
// start of the row following the text.
func (r *Renderer) PrintAt(text string) error {
	return r.printRaw(text, utf8.RuneCountInString(text))
}

// Printf formats according to a format specifier and prints the result
// with PrintAt.
func (r *Renderer) Printf(format string, args ...interface{}) error {
	return r.PrintAt(fmt.Sprintf(format, args...))
}

// ColorPrint prints text in the given foreground color. color is anything
// termenv understands: an ANSI index such as "1" or a hex value such as
// "#ff8800".
func (r *Renderer) ColorPrint(text, color string) error {
	styled := r.profile.String(text).Foreground(r.profile.Color(color)).String()
	return r.printRaw(styled, utf8.RuneCountInString(text))
}

// PrintStyled prints text rendered with style. Geometry is advanced by
// the length of the unstyled text.
func (r *Renderer) PrintStyled(text string, style termenv.Style) error {
	return r.printRaw(style.Styled(text), utf8.RuneCountInString(text))
}

func (r *Renderer) printRaw(rendered string, length int) error {
	col, row := r.geom.Visible()
	if err := r.write(MoveCursorSeq(col, row), rendered); err != nil {
		return err
	}
	r.settle(length)
	scrolls := r.geom.Advance(r.geom.RowsFor(length))
	return r.scrollAndSync(scrolls)
}

// Prompt writes a prompt at the cursor and leaves the cursor right after
// it, on the same row, ready for input.
func (r *Renderer) Prompt(text string) error {
	col, row := r.geom.Visible()
	if err := r.write(MoveCursorSeq(col, row), text); err != nil {
		return err
	}
	r.anchor = row
	r.settle(utf8.RuneCountInString(text))
	scrolls := 0
	for range text {
		scrolls += r.geom.MoveRight()
	}
	return r.scrollAndSync(scrolls)
}

// Echo writes the tail of the edit buffer starting at the cursor, then
// steps the cursor one cell right past the inserted character.
func (r *Renderer) Echo(tail string) error {
	col, row := r.geom.Visible()
	if err := r.write(MoveCursorSeq(col, row), r.input.Styled(tail)); err != nil {
		return err
	}
	r.settle(utf8.RuneCountInString(tail))
	return r.scrollAndSync(r.geom.MoveRight())
}

// RedrawLine clears everything from the row the prompt starts on down and
// reprints text there, so input that wrapped is redrawn as a whole. The
// tracked cursor is not changed.
func (r *Renderer) RedrawLine(text string) error {
	return r.write(MoveCursorSeq(0, r.anchor), ClearBelowSeq(), r.input.Styled(text))
}

// CursorLeft moves the tracked and the physical cursor one cell left.
func (r *Renderer) CursorLeft() error {
	r.geom.MoveLeft()
	return r.SyncCursor()
}

// CursorRight moves the tracked and the physical cursor one cell right.
func (r *Renderer) CursorRight() error {
	return r.scrollAndSync(r.geom.MoveRight())
}

// NewLine moves the cursor to the start of the next row.
func (r *Renderer) NewLine() error {
	return r.scrollAndSync(r.geom.Advance(0))
}

// Resize records a new terminal size. A zero dimension falls back like
// NewRenderer.
func (r *Renderer) Resize(cols, rows int) {
	r.geom.Resize(usableSize(cols, rows))
}

// Clear clears the screen and homes the cursor.
func (r *Renderer) Clear() error {
	r.geom.SetCursor(0, 0)
	r.anchor = 0
	return r.write(ClearScreenSeq())
}

// SyncCursor moves the physical cursor to the tracked position.
func (r *Renderer) SyncCursor() error {
	col, row := r.geom.Visible()
	return r.write(MoveCursorSeq(col, row))
}

func (r *Renderer) scrollAndSync(scrolls int) error {
	if scrolls > 0 {
		r.anchor = max(r.anchor-scrolls, 0)
		if err := r.write(ScrollUpSeq(scrolls)); err != nil {
			return err
		}
	}
	return r.SyncCursor()
}

// settle accounts for the scrolling the terminal does by itself when a
// write of length cells from the cursor wraps past the bottom row. The
// tracked cursor moves up with the text so that Advance and MoveRight only
// report the rows still missing.
func (r *Renderer) settle(length int) {
	cols, rows := r.geom.Size()
	if cols <= 0 || rows <= 0 || length <= 0 {
		return
	}
	col, row := r.geom.Visible()
	wraps := (col + length - 1) / cols
	over := row + wraps - (rows - 1)
	if over <= 0 {
		return
	}
	tracked, _ := r.geom.Cursor()
	r.geom.SetCursor(tracked, max(row-over, 0))
	r.anchor = max(r.anchor-over, 0)
}

func (r *Renderer) write(parts ...string) error {
	if _, err := io.WriteString(r.out, strings.Join(parts, "")); err != nil {
		return fmt.Errorf("terminal write failed: %w", err)
	}
	return nil
}
