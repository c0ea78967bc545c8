package printer

import (
	"io"
	"time"

	"github.com/prnlink/go-prnlink/lineproto"
	"github.com/prnlink/go-prnlink/logger"
)

// Port is the serial transport a Session drives. It is satisfied by
// *serialport.Transport.
type Port interface {
	lineproto.Device
	io.Closer
}

// Option configures a Session before the handshake runs.
type Option func(*Session)

// WithLogger overrides the session logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithReadTimeout overrides the per-byte response timeout used for every
// exchange on this session.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.readTimeout = d
		}
	}
}

// Session is an established conversation with the printer. It owns the port
// exclusively from the successful handshake until Close and is not safe for
// concurrent use.
type Session struct {
	port        Port
	client      *lineproto.Client
	logger      logger.Logger
	readTimeout time.Duration

	firmwareVersion string
	serialNumber    string
}

// NewSession performs the machine-info handshake over port and returns the
// established session. On any handshake failure it returns a
// *HandshakeError and no session; the port remains open and owned by the
// caller.
func NewSession(port Port, opts ...Option) (*Session, error) {
	s := &Session{
		port:        port,
		logger:      logger.GetLogger(),
		readTimeout: time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.client = lineproto.NewClient(port,
		lineproto.WithReadTimeout(s.readTimeout),
		lineproto.WithLogger(s.logger),
	)

	if err := s.handshake(); err != nil {
		return nil, &HandshakeError{Err: err}
	}

	s.logger.Info("session established",
		"firmware", s.firmwareVersion,
		"serial", s.serialNumber,
	)

	return s, nil
}

// handshake sends the machine-info command and consumes the fixed banner
// sequence: start, an opaque token, firmware version, serial number, and
// the protocol version marker.
func (s *Session) handshake() error {
	if err := s.client.Send(command(selMachineInfo)); err != nil {
		return err
	}

	if _, err := s.client.Match(grStart); err != nil {
		return err
	}

	// Second banner line is an opaque alphanumeric token. Its meaning is
	// unknown; the value is ignored.
	if _, err := s.client.Match(grToken); err != nil {
		return err
	}

	caps, err := s.client.Match(grVersion)
	if err != nil {
		return err
	}
	s.firmwareVersion = caps.Text(0)

	caps, err = s.client.Match(grSerialNumber)
	if err != nil {
		return err
	}
	s.serialNumber = caps.Text(0)

	if _, err := s.client.Match(grProtocolVer); err != nil {
		return err
	}

	return nil
}

// FirmwareVersion returns the firmware version reported in the handshake.
func (s *Session) FirmwareVersion() string { return s.firmwareVersion }

// SerialNumber returns the device serial number reported in the handshake.
func (s *Session) SerialNumber() string { return s.serialNumber }

// Close releases the underlying port. The session is unusable afterwards.
func (s *Session) Close() error {
	return s.port.Close()
}
