package serialport

import (
	"errors"
	"fmt"
	"time"

	"github.com/prnlink/go-prnlink/logger"
)

// devicePort is the OS-level serial port. The production implementation is
// sysPort (termios on Linux/macOS); tests substitute an in-memory fake.
type devicePort interface {
	// read blocks up to timeout and reads at most len(p) bytes.
	// A timeout with no data returns (0, nil).
	read(p []byte, timeout time.Duration) (int, error)

	// write writes as much of p as the deadline allows and returns
	// errDeadline if the whole buffer did not go out in time.
	write(p []byte, timeout time.Duration) (int, error)

	// flushIO discards both the kernel input and output queues.
	flushIO() error

	close() error
}

// Transport is the raw byte-level serial transport for one printer.
//
// It is exclusively owned by a single Session for its entire lifetime and is
// not safe for concurrent use; the protocol above it is strictly synchronous.
type Transport struct {
	cfg    *Config
	port   devicePort
	path   string
	logger logger.Logger
	closed bool
}

// Open opens the serial device at path, applies the line settings, flushes
// both kernel queues and purges any residual bytes left from a prior run.
func Open(path string, opts ...Option) (*Transport, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	port, err := openSysPort(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", path, err)
	}

	t := newTransport(port, cfg, path)

	if err := t.FlushBothDirections(); err != nil {
		_ = t.Close()
		return nil, err
	}
	t.purge()

	t.logger.Info("serial port opened",
		"path", path,
		"baudRate", cfg.baudRate,
		"flowControl", cfg.flowControl == FlowControlXONXOFF,
	)

	return t, nil
}

func newTransport(port devicePort, cfg *Config, path string) *Transport {
	return &Transport{
		cfg:    cfg,
		port:   port,
		path:   path,
		logger: cfg.logger,
	}
}

// purge reads and discards residual bytes with a short timeout until the
// line is silent. Stale bytes from an interrupted previous run would
// otherwise desynchronize the first handshake match.
func (t *Transport) purge() {
	discarded := 0

	for {
		_, ok, err := t.readByte(purgeReadTimeout)
		if err != nil || !ok {
			break
		}
		discarded++
	}

	if discarded > 0 {
		t.logger.Debug("purged stale bytes", "path", t.path, "count", discarded)
	}
}

// ReadByte reads zero or one byte with the given timeout.
// ok is false when the timeout expired with no data.
func (t *Transport) ReadByte(timeout time.Duration) (b byte, ok bool, err error) {
	if t.closed {
		return 0, false, ErrPortClosed
	}

	b, ok, err = t.readByte(timeout)
	if err != nil {
		return 0, false, err
	}

	if ok && t.logger.Level() <= logger.DebugLevel {
		t.logger.Debug("serial rx", "byte", fmt.Sprintf("%02x", b))
	}

	return b, ok, nil
}

func (t *Transport) readByte(timeout time.Duration) (byte, bool, error) {
	var buf [1]byte

	n, err := t.port.read(buf[:], timeout)
	if err != nil {
		return 0, false, fmt.Errorf("serialport: read %s: %w", t.path, err)
	}
	if n == 0 {
		return 0, false, nil
	}

	return buf[0], true, nil
}

// ReadTimeout returns the transport's default per-read timeout.
func (t *Transport) ReadTimeout() time.Duration { return t.cfg.readTimeout }

// Write writes the whole buffer, bounded by the configured write timeout.
// An expired deadline fails with ErrWriteTimeout; per the protocol's error
// policy this is fatal and must never be retried.
func (t *Transport) Write(p []byte) error {
	if t.closed {
		return ErrPortClosed
	}

	if t.logger.Level() <= logger.DebugLevel {
		t.logger.Debug("serial tx", "len", len(p), "data", fmt.Sprintf("% x", p))
	}

	n, err := t.port.write(p, t.cfg.writeTimeout)
	if errors.Is(err, errDeadline) {
		return fmt.Errorf("%w (wrote %d of %d bytes)", ErrWriteTimeout, n, len(p))
	}
	if err != nil {
		return fmt.Errorf("serialport: write %s: %w", t.path, err)
	}

	return nil
}

// FlushBothDirections discards any bytes buffered in the kernel input and
// output queues.
func (t *Transport) FlushBothDirections() error {
	if t.closed {
		return ErrPortClosed
	}

	if err := t.port.flushIO(); err != nil {
		return fmt.Errorf("serialport: flush %s: %w", t.path, err)
	}

	return nil
}

// Close releases the serial device. The transport is unusable afterwards.
func (t *Transport) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	t.logger.Info("serial port closed", "path", t.path)

	return t.port.close()
}
