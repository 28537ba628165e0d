//go:build unix

package runner

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// captureLimit bounds how much printed output one invocation can report.
// Runaway tests can print without limit; everything past the cap is
// dropped rather than buffered.
const captureLimit = 16 * 1024

// capture redirects the process standard-output descriptor into a pipe.
// The engine's print path writes to fd 1 directly, so interception has
// to happen at the descriptor level; there is no in-process hook.
type capture struct {
	saved  int // duplicate of the original stdout descriptor
	readFD int // read end of the pipe
	active bool
}

func newCapture() (*capture, error) {
	stdoutFD := int(os.Stdout.Fd())

	saved, err := unix.Dup(stdoutFD)
	if err != nil {
		return nil, fmt.Errorf("dup stdout: %w", err)
	}

	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		unix.Close(saved)
		return nil, fmt.Errorf("pipe: %w", err)
	}
	if err := unix.SetNonblock(p[0], true); err != nil {
		closeAll(saved, p[0], p[1])
		return nil, fmt.Errorf("set pipe non-blocking: %w", err)
	}
	if err := dupTo(p[1], stdoutFD); err != nil {
		closeAll(saved, p[0], p[1])
		return nil, fmt.Errorf("redirect stdout: %w", err)
	}
	unix.Close(p[1])

	return &capture{saved: saved, readFD: p[0], active: true}, nil
}

// restore drains whatever is available on the pipe (up to captureLimit),
// puts the original descriptor back and closes everything. It must run
// on every exit path; idempotent so a deferred call is always safe.
func (c *capture) restore() string {
	if !c.active {
		return ""
	}
	c.active = false

	os.Stdout.Sync()

	buf := make([]byte, captureLimit)
	total := 0
	for total < len(buf) {
		n, err := unix.Read(c.readFD, buf[total:])
		if n <= 0 || err != nil {
			break
		}
		total += n
	}

	// Restoration failures are not recoverable in any useful way; the
	// process is about to exit and fd 1 is all we have.
	_ = dupTo(c.saved, int(os.Stdout.Fd()))
	unix.Close(c.saved)
	unix.Close(c.readFD)

	return string(buf[:total])
}

func closeAll(fds ...int) {
	for _, fd := range fds {
		unix.Close(fd)
	}
}
