//go:build !linux && !darwin

package serialport

import "time"

// sysPort is a stub for platforms without termios support.
type sysPort struct{}

var _ devicePort = (*sysPort)(nil)

func openSysPort(path string, cfg *Config) (*sysPort, error) {
	return nil, ErrUnsupportedPlatform
}

func (p *sysPort) read(buf []byte, timeout time.Duration) (int, error) {
	return 0, ErrUnsupportedPlatform
}

func (p *sysPort) write(buf []byte, timeout time.Duration) (int, error) {
	return 0, ErrUnsupportedPlatform
}

func (p *sysPort) flushIO() error { return ErrUnsupportedPlatform }

func (p *sysPort) close() error { return nil }
