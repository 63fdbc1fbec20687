package cmd

import (
	"fmt"
	"strings"

	"github.com/alantheprice/cmdline/pkg/cmdline"
	"github.com/alantheprice/cmdline/pkg/console"
)

func registerDemoCommands(session *cmdline.Cmdline) {
	session.AddCommand("simple", simpleCommand{})
	session.AddCommand("echo", echoCommand{})
	session.AddCommand("color", colorCommand{})
	session.AddCommand("size", sizeCommand{})
	session.AddCommand("clear", cmdline.WithHelp(
		cmdline.HandlerFunc(func(_ string, _ bool, out *console.Renderer) error {
			return out.Clear()
		}),
		"Clear the screen",
	))
}

// simpleCommand prints a fixed greeting
type simpleCommand struct{}

func (simpleCommand) Execute(_ string, _ bool, out *console.Renderer) error {
	return out.PrintAt("Hello, this is Simple!")
}

func (simpleCommand) HelpString() string {
	return "Greeting from Simple"
}

type echoCommand struct{}

func (echoCommand) Execute(line string, _ bool, out *console.Renderer) error {
	return out.PrintAt(line)
}

func (echoCommand) HelpString() string {
	return "Print the arguments back"
}

// colorCommand prints text in a color given as an ANSI index or a hex
// value, e.g. "color 2 ok" or "color #ff8800 warning".
type colorCommand struct{}

func (colorCommand) Execute(line string, hasLine bool, out *console.Renderer) error {
	color, text, _ := strings.Cut(line, " ")
	if !hasLine || text == "" {
		return fmt.Errorf("usage: color <color> <text>")
	}
	return out.ColorPrint(text, color)
}

func (colorCommand) HelpString() string {
	return "Print text in a color\nusage: color <ansi index or #rrggbb> <text>"
}

type sizeCommand struct{}

func (sizeCommand) Execute(_ string, _ bool, out *console.Renderer) error {
	cols, rows := out.Geometry().Size()
	col, row := out.Geometry().Cursor()
	return out.Printf("%dx%d terminal, cursor at column %d, row %d", cols, rows, col, row)
}

func (sizeCommand) HelpString() string {
	return "Show the terminal size and cursor position"
}
