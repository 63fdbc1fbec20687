package cmdline

import (
	"errors"

	"github.com/alantheprice/cmdline/pkg/console"
)

// ErrQuit is returned by a handler to end the session. Run releases the
// terminal and returns nil.
var ErrQuit = errors.New("quit requested")

// QuitCommand is registered as "quit" in every new session.
type QuitCommand struct{}

func (QuitCommand) Execute(_ string, _ bool, out *console.Renderer) error {
	if err := out.PrintAt("Quitting..."); err != nil {
		return err
	}
	return ErrQuit
}

func (QuitCommand) HelpString() string {
	return "Quit the program"
}
