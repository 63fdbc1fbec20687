//go:build !windows
// +build !windows

package console

import (
	"os"
	"os/signal"
	"syscall"
)

// signalsToCapture returns the signals that end the session on Unix-like
// systems. SIGINT is listed for the non-raw fallback; in raw mode Ctrl+C
// arrives as an input byte instead.
func signalsToCapture() []os.Signal {
	return []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		syscall.SIGHUP,
	}
}

// resizeSignal returns the terminal resize signal (SIGWINCH) on Unix.
func resizeSignal() os.Signal {
	return syscall.SIGWINCH
}

// reRaiseSignal re-raises a signal so the default handler can run (Unix).
func reRaiseSignal(sig os.Signal) {
	signal.Reset(sig)
	syscall.Kill(syscall.Getpid(), sig.(syscall.Signal))
}
