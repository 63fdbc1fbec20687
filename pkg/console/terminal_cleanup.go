package console

import (
	"errors"
	"os"
	"os/signal"
	"sync"
)

// TerminalCleanupHandler ensures terminal is properly restored on exit.
// Registered functions run once, in reverse order, on whichever exit path
// is taken first: an explicit Cleanup, a panic caught by EnsureCleanup, or
// a termination signal.
type TerminalCleanupHandler struct {
	cleanupFuncs []func() error
	mu           sync.Mutex
	sigChan      chan os.Signal
	stopOnce     sync.Once
	done         chan struct{}

	// OnError receives failures from cleanup functions
	OnError func(err error)
}

// NewTerminalCleanupHandler creates a new cleanup handler
func NewTerminalCleanupHandler() *TerminalCleanupHandler {
	return &TerminalCleanupHandler{
		cleanupFuncs: make([]func() error, 0),
		done:         make(chan struct{}),
	}
}

// Register adds a cleanup function to be called on exit
func (h *TerminalCleanupHandler) Register(fn func() error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cleanupFuncs = append(h.cleanupFuncs, fn)
}

// Cleanup runs all registered cleanup functions and returns their joined
// errors. Functions that already ran are not run again.
func (h *TerminalCleanupHandler) Cleanup() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var errs []error
	// Run cleanup functions in reverse order (LIFO)
	for i := len(h.cleanupFuncs) - 1; i >= 0; i-- {
		if err := h.cleanupFuncs[i](); err != nil {
			errs = append(errs, err)
			if h.OnError != nil {
				h.OnError(err)
			}
		}
	}

	// Clear the list
	h.cleanupFuncs = h.cleanupFuncs[:0]

	h.stopSignals()
	return errors.Join(errs...)
}

// HandleSignals runs Cleanup when the process receives a termination
// signal, then re-raises the signal.
func (h *TerminalCleanupHandler) HandleSignals() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sigChan != nil {
		return
	}

	sigs := signalsToCapture()
	if len(sigs) == 0 {
		return
	}
	h.sigChan = make(chan os.Signal, 1)
	signal.Notify(h.sigChan, sigs...)

	go func(sigChan chan os.Signal) {
		select {
		case sig := <-sigChan:
			h.Cleanup()
			reRaiseSignal(sig)
		case <-h.done:
		}
	}(h.sigChan)
}

// stopSignals must be called with h.mu held.
func (h *TerminalCleanupHandler) stopSignals() {
	h.stopOnce.Do(func() {
		if h.sigChan != nil {
			signal.Stop(h.sigChan)
		}
		close(h.done)
	})
}

// EnsureCleanup should be deferred to ensure cleanup on panic
func (h *TerminalCleanupHandler) EnsureCleanup() {
	if r := recover(); r != nil {
		// Cleanup on panic
		h.Cleanup()
		panic(r) // Re-panic after cleanup
	}
	h.Cleanup()
}
