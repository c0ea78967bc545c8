//go:build linux || darwin

package serialport

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// sysPort is a termios-backed serial port file descriptor.
//
// The descriptor is kept in non-blocking mode; all read and write deadlines
// are implemented with poll(2) so that timeouts have millisecond resolution
// (the VTIME mechanism only resolves tenths of a second, too coarse for the
// 10ms purge loop).
type sysPort struct {
	f  *os.File
	fd int
}

var _ devicePort = (*sysPort)(nil)

// wait polls the descriptor for the given events until the timeout expires.
// It returns whether the descriptor became ready.
func (p *sysPort) wait(events int16, timeout time.Duration) (bool, error) {
	deadline := time.Now().Add(timeout)

	for {
		remaining := time.Until(deadline)
		if remaining < 0 {
			remaining = 0
		}

		pfds := []unix.PollFd{{Fd: int32(p.fd), Events: events}}

		n, err := unix.Poll(pfds, int(remaining.Milliseconds()))
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return false, err
		}

		return n > 0, nil
	}
}

func (p *sysPort) read(buf []byte, timeout time.Duration) (int, error) {
	ready, err := p.wait(unix.POLLIN, timeout)
	if err != nil {
		return 0, err
	}
	if !ready {
		return 0, nil
	}

	n, err := unix.Read(p.fd, buf)
	if errors.Is(err, unix.EAGAIN) {
		// Poll raced with a flush; treat as a timed-out read.
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return n, nil
}

func (p *sysPort) write(buf []byte, timeout time.Duration) (int, error) {
	deadline := time.Now().Add(timeout)
	written := 0

	for written < len(buf) {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return written, errDeadline
		}

		ready, err := p.wait(unix.POLLOUT, remaining)
		if err != nil {
			return written, err
		}
		if !ready {
			return written, errDeadline
		}

		n, err := unix.Write(p.fd, buf[written:])
		if n > 0 {
			written += n
		}
		if err != nil && !errors.Is(err, unix.EAGAIN) {
			return written, err
		}
	}

	return written, nil
}

func (p *sysPort) close() error {
	if p.f == nil {
		return nil
	}

	err := p.f.Close()
	p.f = nil
	p.fd = -1

	return err
}
