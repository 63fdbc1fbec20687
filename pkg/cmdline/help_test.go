package cmdline

import (
	"strings"
	"testing"

	"github.com/alantheprice/cmdline/pkg/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(string, bool, *console.Renderer) error { return nil }

func TestHelpListing(t *testing.T) {
	c := New(&mockDevice{})
	c.AddCommand("simple", WithHelp(HandlerFunc(noop), "Greeting from Simple"))
	c.AddCommand("echo", HandlerFunc(noop))
	out, buf := newRenderer()

	require.NoError(t, c.Dispatch("help", out))
	output := buf.String()

	assert.Contains(t, output, "    "+helpDescription)
	assert.Contains(t, output, "    Greeting from Simple")
	assert.Contains(t, output, "    Quit the program")
	assert.Contains(t, output, "    "+DefaultHelp, "handlers without help get the default text")

	// The self-description comes first, then commands in name order
	positions := []int{
		strings.Index(output, helpDescription),
		strings.Index(output, "echo"),
		strings.Index(output, "quit"),
		strings.Index(output, "simple"),
	}
	for i := 1; i < len(positions); i++ {
		assert.Greater(t, positions[i], positions[i-1])
	}
}

func TestHelpSplitsMultiLineText(t *testing.T) {
	c := New(&mockDevice{})
	c.AddCommand("multi", WithHelp(HandlerFunc(noop), "line one\nline two"))
	out, buf := newRenderer()

	require.NoError(t, c.PrintHelp(out))
	assert.Contains(t, buf.String(), "    line one")
	assert.Contains(t, buf.String(), "    line two")
	assert.NotContains(t, buf.String(), "line one\nline two")
}

func TestRegisteredHelpReplacesListing(t *testing.T) {
	c := New(&mockDevice{})
	rec := &recorder{}
	c.AddCommand("help", rec)
	out, buf := newRenderer()

	require.NoError(t, c.Dispatch("help me", out))
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, "me", rec.line)
	assert.NotContains(t, buf.String(), helpDescription)
}

func TestListingWithRegisteredHelpSkipsSelfDescription(t *testing.T) {
	c := New(&mockDevice{})
	c.AddCommand("help", WithHelp(HandlerFunc(noop), "Custom help"))
	out, buf := newRenderer()

	require.NoError(t, c.PrintHelp(out))
	assert.NotContains(t, buf.String(), helpDescription)
	assert.Contains(t, buf.String(), "    Custom help")
}

func TestHelpString(t *testing.T) {
	assert.Equal(t, DefaultHelp, HelpString(HandlerFunc(noop)))
	assert.Equal(t, "Quit the program", HelpString(QuitCommand{}))
	assert.Equal(t, "custom", HelpString(WithHelp(HandlerFunc(noop), "custom")))
}
