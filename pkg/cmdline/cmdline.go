// Package cmdline runs an interactive command loop on a raw-mode terminal:
// it reads a line with the console line editor, looks up the first word in
// a registry of handlers and runs the match.
package cmdline

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/alantheprice/cmdline/pkg/console"
	"github.com/alantheprice/cmdline/pkg/logging"
	"github.com/muesli/termenv"
)

// DefaultPrompt is the prompt of a new session.
const DefaultPrompt = "rusty_cmd $ "

// Cmdline is an interactive command session.
type Cmdline struct {
	mu       sync.RWMutex
	prompt   string
	commands map[string]Handler

	device       console.TerminalManager
	source       console.EventSource
	logger       *logging.Logger
	profile      termenv.Profile
	resizeWindow time.Duration
	clearScreen  bool
}

// Option configures a Cmdline.
type Option func(*Cmdline)

// WithPrompt sets the initial prompt.
func WithPrompt(prompt string) Option {
	return func(c *Cmdline) { c.prompt = prompt }
}

// WithLogger routes session diagnostics to logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Cmdline) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEventSource reads input events from src instead of decoding the
// device's input stream.
func WithEventSource(src console.EventSource) Option {
	return func(c *Cmdline) { c.source = src }
}

// WithProfile selects the color profile of the renderer.
func WithProfile(p termenv.Profile) Option {
	return func(c *Cmdline) { c.profile = p }
}

// WithResizeWindow overrides console.DefaultResizeWindow.
func WithResizeWindow(d time.Duration) Option {
	return func(c *Cmdline) { c.resizeWindow = d }
}

// WithClearScreen controls whether the screen is cleared when the session
// starts. It is on by default.
func WithClearScreen(enabled bool) Option {
	return func(c *Cmdline) { c.clearScreen = enabled }
}

// New creates a session on device with the built-in quit command
// registered.
func New(device console.TerminalManager, opts ...Option) *Cmdline {
	c := &Cmdline{
		prompt:       DefaultPrompt,
		commands:     make(map[string]Handler),
		device:       device,
		logger:       logging.Discard(),
		profile:      termenv.Ascii,
		resizeWindow: console.DefaultResizeWindow,
		clearScreen:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.AddCommand("quit", QuitCommand{})
	return c
}

// ChangePrompt replaces the prompt. The new prompt is shown the next time
// the session prompts for input.
func (c *Cmdline) ChangePrompt(prompt string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompt = prompt
}

// Prompt returns the current prompt.
func (c *Cmdline) Prompt() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.prompt
}

// AddCommand registers h under name, replacing any earlier registration.
func (c *Cmdline) AddCommand(name string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands[name] = h
}

func (c *Cmdline) lookup(name string) (Handler, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.commands[name]
	return h, ok
}

// Run takes over the terminal and processes commands until quit, Escape,
// Ctrl+C or end of input. The terminal is restored exactly once on every
// way out, including panics and termination signals.
//
// Unless WithEventSource was given, Run reads the device input on a
// goroutine that is stopped on return. A read blocked at that point still
// swallows the next chunk typed, so callers that read stdin after Run see
// input from the one after that.
func (c *Cmdline) Run() (err error) {
	guard := console.NewTerminalCleanupHandler()
	guard.OnError = c.logger.LogError
	defer guard.EnsureCleanup()

	// Registered first so that a partial acquisition is undone too
	guard.Register(c.device.Release)
	if err := c.device.Acquire(); err != nil {
		return fmt.Errorf("failed to acquire terminal: %w", err)
	}
	guard.HandleSignals()

	err = c.loop()
	if cerr := guard.Cleanup(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("failed to release terminal: %w", cerr))
	}
	return err
}

func (c *Cmdline) loop() error {
	cols, rows, err := c.device.GetSize()
	if err != nil {
		return err
	}
	out := console.NewRenderer(c.device, cols, rows)
	out.SetProfile(c.profile)

	source := c.source
	if source == nil {
		ts := console.NewTerminalSource(c.device.Input(), c.device.GetSize)
		ts.Start()
		defer ts.Stop()
		source = ts
	}
	editor := console.NewEventLoop(source, out)
	editor.SetResizeWindow(c.resizeWindow)

	if c.clearScreen {
		if err := out.Clear(); err != nil {
			return err
		}
	}
	c.logger.Info("session started on a %dx%d terminal", cols, rows)

	for {
		prompt := c.Prompt()
		if err := out.Prompt(prompt); err != nil {
			return err
		}

		line, err := editor.ReadLine(prompt)
		switch {
		case errors.Is(err, console.ErrEscape), errors.Is(err, console.ErrInterrupt):
			c.logger.Info("session ended: %v", err)
			return nil
		case errors.Is(err, io.EOF):
			c.logger.Info("session ended: end of input")
			return nil
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		}

		if err := c.Dispatch(line, out); err != nil {
			if errors.Is(err, ErrQuit) {
				c.logger.Info("session ended: quit")
				return nil
			}
			return err
		}
	}
}

// Dispatch runs one input line. Handler errors are printed and swallowed;
// only ErrQuit and terminal write failures are returned.
func (c *Cmdline) Dispatch(line string, out *console.Renderer) error {
	if strings.TrimSpace(line) == "" {
		return out.PrintAt("")
	}

	name, rest, hasRest := Tokenize(line)
	if h, ok := c.lookup(name); ok {
		c.logger.Debug("dispatching %q", name)
		err := h.Execute(rest, hasRest, out)
		if err == nil || errors.Is(err, ErrQuit) {
			return err
		}
		c.logger.Error("command %q failed: %v", name, err)
		return out.Printf("Error: %v", err)
	}

	if name == "help" {
		return c.PrintHelp(out)
	}
	return out.Printf("Unknown command: %s", name)
}
