//go:build !windows
// +build !windows

package console

import (
	"bytes"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// Primary device attributes; every terminal answers it, so its reply marks
// the end of the capability probe.
const primaryDeviceAttrsSeq = "\033[c"

// probeKeyboardEnhancement asks the terminal for its kitty keyboard flags.
// A terminal without the protocol only answers the device attributes
// query. The terminal must already be in raw mode.
func probeKeyboardEnhancement(in, out *os.File, timeout time.Duration) bool {
	if _, err := out.WriteString(queryKeyboardSeq + primaryDeviceAttrsSeq); err != nil {
		return false
	}

	fd := int(in.Fd())
	deadline := time.Now().Add(timeout)
	buf := make([]byte, 64)
	var reply []byte

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, int(remaining/time.Millisecond)+1)
		if err == unix.EINTR {
			continue
		}
		if err != nil || n == 0 {
			return false
		}
		m, err := unix.Read(fd, buf)
		if err != nil || m <= 0 {
			return false
		}
		reply = append(reply, buf[:m]...)

		supported, done := scanProbeReply(reply)
		if done {
			return supported
		}
	}
}

// scanProbeReply looks for "CSI ? flags u" and "CSI ? ... c" replies.
// done is true once the device attributes reply has been seen.
func scanProbeReply(reply []byte) (supported, done bool) {
	for {
		i := bytes.Index(reply, []byte("\033[?"))
		if i < 0 {
			return supported, false
		}
		reply = reply[i+3:]
		j := 0
		for j < len(reply) && (reply[j] >= '0' && reply[j] <= '9' || reply[j] == ';') {
			j++
		}
		if j == len(reply) {
			return supported, false
		}
		switch reply[j] {
		case 'u':
			supported = true
		case 'c':
			return supported, true
		}
		reply = reply[j:]
	}
}
