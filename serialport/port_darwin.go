//go:build darwin

package serialport

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// toUnixBaudrate maps a baud rate to the corresponding constant in the unix package.
var toUnixBaudrate = map[int]uint64{
	1200:   unix.B1200,
	2400:   unix.B2400,
	4800:   unix.B4800,
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
	230400: unix.B230400,
}

func openSysPort(path string, cfg *Config) (*sysPort, error) {
	speed, ok := toUnixBaudrate[cfg.baudRate]
	if !ok {
		return nil, fmt.Errorf("unsupported baud rate %d", cfg.baudRate)
	}

	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0o666)
	if err != nil {
		return nil, err
	}

	p := &sysPort{f: os.NewFile(uintptr(fd), path), fd: fd}

	t, err := unix.IoctlGetTermios(fd, unix.TIOCGETA)
	if err != nil {
		_ = p.close()
		return nil, err
	}

	// Raw mode: no line discipline processing in either direction.
	t.Cflag |= unix.CLOCAL | unix.CREAD
	t.Lflag &^= unix.ICANON | unix.ECHO | unix.ECHOE | unix.ECHOK | unix.ECHONL | unix.ISIG | unix.IEXTEN
	t.Oflag &^= unix.OPOST | unix.ONLCR | unix.OCRNL
	t.Iflag &^= unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IGNBRK

	t.Ispeed = speed
	t.Ospeed = speed

	t.Cflag &^= unix.CSIZE
	switch cfg.dataBits {
	case 5:
		t.Cflag |= unix.CS5
	case 6:
		t.Cflag |= unix.CS6
	case 7:
		t.Cflag |= unix.CS7
	case 8:
		t.Cflag |= unix.CS8
	}

	// 8N1: no parity, one stop bit.
	t.Iflag &^= unix.INPCK | unix.ISTRIP
	t.Cflag &^= unix.PARENB | unix.PARODD
	t.Cflag &^= unix.CSTOPB

	// Software flow control; hardware handshake lines are never used.
	t.Cflag &^= unix.CRTSCTS
	if cfg.flowControl == FlowControlXONXOFF {
		t.Iflag |= unix.IXON | unix.IXOFF
	} else {
		t.Iflag &^= unix.IXON | unix.IXOFF
	}
	t.Iflag &^= unix.IXANY

	// Timeouts are done with poll(2), not VMIN/VTIME.
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TIOCSETA, t); err != nil {
		_ = p.close()
		return nil, err
	}

	return p, nil
}

// flushIO discards both kernel queues (TIOCFLUSH with FREAD|FWRITE).
func (p *sysPort) flushIO() error {
	const flushRW = 0x3 // FREAD|FWRITE
	return unix.IoctlSetPointerInt(p.fd, unix.TIOCFLUSH, flushRW)
}
