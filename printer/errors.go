package printer

import (
	"errors"
	"fmt"
)

// ErrUnknownLanguage indicates the device reported a language code outside
// the documented set. There is no fallback; the value cannot be trusted.
var ErrUnknownLanguage = errors.New("printer: unknown language code")

// HandshakeError indicates session establishment failed. No Session exists
// after this error; the transport is left open for the caller to close.
type HandshakeError struct {
	Err error
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("printer: handshake failed: %v", e.Err)
}

func (e *HandshakeError) Unwrap() error { return e.Err }
