package transfer

import (
	"errors"
	"fmt"
)

// ErrNotReady indicates the printer did not acknowledge the transfer
// handshake. In the field this almost always means the confirmation prompt
// on the device display was not answered, so the message says exactly that.
var ErrNotReady = errors.New(
	"transfer: printer is not ready to receive; check the printer display and press the confirm button")

// ConsistencyError indicates the streamed byte count diverged from the
// planned length. This is a defect in the normalization logic, not a device
// condition; it is never recoverable.
type ConsistencyError struct {
	Sent    int64
	Planned int64
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("transfer: internal consistency fault: sent %d bytes of a planned %d", e.Sent, e.Planned)
}
