package cmdline

import (
	"sort"
	"strings"

	"github.com/alantheprice/cmdline/pkg/console"
)

const (
	helpIndent      = "    "
	helpDescription = "List the available commands and their help text"
)

// PrintHelp writes every registered command name followed by its help
// text, one indented line per line of help. When no "help" command is
// registered, a description of the built-in listing comes first.
func (c *Cmdline) PrintHelp(out *console.Renderer) error {
	c.mu.RLock()
	names := make([]string, 0, len(c.commands))
	handlers := make(map[string]Handler, len(c.commands))
	for name, h := range c.commands {
		names = append(names, name)
		handlers[name] = h
	}
	c.mu.RUnlock()
	_, hasHelp := handlers["help"]

	sort.Strings(names)

	if !hasHelp {
		if err := printEntry(out, "help", helpDescription); err != nil {
			return err
		}
	}
	for _, name := range names {
		if err := printEntry(out, name, HelpString(handlers[name])); err != nil {
			return err
		}
	}
	return nil
}

func printEntry(out *console.Renderer, name, help string) error {
	if err := out.PrintAt(name); err != nil {
		return err
	}
	for _, line := range strings.Split(strings.ReplaceAll(help, "\r\n", "\n"), "\n") {
		if err := out.PrintAt(helpIndent + line); err != nil {
			return err
		}
	}
	return nil
}
