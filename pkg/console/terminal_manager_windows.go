//go:build windows
// +build windows

package console

import (
	"os"
	"time"
)

// probeKeyboardEnhancement always reports false on Windows: the console
// input API delivers key records, not kitty protocol replies.
func probeKeyboardEnhancement(in, out *os.File, timeout time.Duration) bool {
	return false
}

