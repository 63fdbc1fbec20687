package cmdline

import "github.com/alantheprice/cmdline/pkg/console"

// DefaultHelp is shown for handlers that do not implement HelpProvider.
const DefaultHelp = "No help here..."

// Handler runs a command. line holds the arguments after the command
// name joined by single spaces; hasLine is false when there were none.
// All output goes through out so the tracked cursor stays correct.
//
// Returning ErrQuit ends the session. Any other error is shown to the
// user and the session continues.
type Handler interface {
	Execute(line string, hasLine bool, out *console.Renderer) error
}

// HelpProvider is implemented by handlers that describe themselves in the
// help listing. The text may span several lines.
type HelpProvider interface {
	HelpString() string
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(line string, hasLine bool, out *console.Renderer) error

func (f HandlerFunc) Execute(line string, hasLine bool, out *console.Renderer) error {
	return f(line, hasLine, out)
}

// WithHelp attaches help text to a handler.
func WithHelp(h Handler, help string) Handler {
	return &helpHandler{Handler: h, help: help}
}

type helpHandler struct {
	Handler
	help string
}

func (h *helpHandler) HelpString() string { return h.help }

// HelpString returns the help text of h, or DefaultHelp.
func HelpString(h Handler) string {
	if p, ok := h.(HelpProvider); ok {
		return p.HelpString()
	}
	return DefaultHelp
}
