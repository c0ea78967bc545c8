package lineproto

import (
	"errors"
	"fmt"
)

// ErrNoResponse indicates the printer produced no terminated line where one
// was required. Partial bytes without a terminator count as no response.
var ErrNoResponse = errors.New("lineproto: no response from printer")

// MismatchError indicates the printer produced a well-terminated line that
// matches neither the expected grammar nor the out-of-band status marker.
// It carries the literal line so the operator can see exactly what the
// device said.
type MismatchError struct {
	Expected Grammar
	Line     []byte
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("lineproto: unexpected response %q, expected %s", e.Line, e.Expected)
}
