package serialport

import "errors"

var (
	// ErrPortClosed indicates an operation on a transport that has been closed.
	ErrPortClosed = errors.New("serialport: port closed")

	// ErrWriteTimeout indicates that a write did not complete within the
	// configured write timeout. The printer has stopped draining its receive
	// buffer; this state is not recoverable over the wire and the device
	// needs a power cycle.
	ErrWriteTimeout = errors.New("serialport: write timed out; the printer has stopped responding and likely needs a power cycle")

	// ErrUnsupportedPlatform indicates that serial ports are not supported on
	// the current platform.
	ErrUnsupportedPlatform = errors.New("serialport: serial ports are not supported on this platform")
)

// errDeadline is the internal marker for an expired poll deadline. It is
// translated to ErrWriteTimeout (or a timed-out read) by the Transport.
var errDeadline = errors.New("serialport: i/o deadline exceeded")
