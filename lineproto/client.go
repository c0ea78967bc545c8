package lineproto

import (
	"fmt"
	"time"

	"github.com/prnlink/go-prnlink/logger"
)

// maxLineLength caps line accumulation. The longest legitimate response is a
// version string well under 100 bytes; hitting the cap means the device is
// streaming garbage without terminators.
const maxLineLength = 1000

const lineTerminator = '\n'

// Device is the byte-level transport the Client drives. It is satisfied by
// *serialport.Transport.
type Device interface {
	// ReadByte returns the next byte, or ok=false when no byte arrived
	// within the timeout.
	ReadByte(timeout time.Duration) (byte, bool, error)
	// Write sends the whole buffer or fails.
	Write(p []byte) error
}

// Option configures a Client.
type Option func(*Client)

// WithReadTimeout overrides the per-byte timeout used while accumulating a
// response line.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.readTimeout = d
		}
	}
}

// WithLogger overrides the logger used for line traces.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Client matches printer response lines against expected grammars. At most
// one line is buffered; a line is consumed by the match that accepts it or
// by the out-of-band skip, never left half-read.
//
// Client is not safe for concurrent use. The protocol itself is strictly
// half-duplex, so a single goroutine owns the whole conversation.
type Client struct {
	dev         Device
	readTimeout time.Duration
	logger      logger.Logger

	pending    []byte
	hasPending bool
}

// NewClient creates a Client over dev with a 1 second per-byte read timeout
// unless overridden.
func NewClient(dev Device, opts ...Option) *Client {
	c := &Client{
		dev:         dev,
		readTimeout: time.Second,
		logger:      logger.GetLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Send writes raw bytes to the device. Commands and payload frames go
// through here so line traces and response matching share one code path.
func (c *Client) Send(p []byte) error {
	if c.logger.Level() <= logger.DebugLevel {
		c.logger.Debug("send", "bytes", fmt.Sprintf("% X", p))
	}

	return c.dev.Write(p)
}

// SendLine writes a text line with a CRLF terminator appended.
func (c *Client) SendLine(text string) error {
	return c.Send(append([]byte(text), '\r', '\n'))
}

// Match reads the next response line and matches it against g, returning
// the capture groups. Interleaved out-of-band status lines are consumed and
// skipped. A missing or unterminated line fails with ErrNoResponse; a
// terminated line that fits neither g nor the status marker fails with
// *MismatchError.
func (c *Client) Match(g Grammar) (Captures, error) {
	caps, ok, err := c.match(g, false)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Unreachable: required matches either succeed or error.
		return nil, &MismatchError{Expected: g}
	}

	return caps, nil
}

// MatchOptional is Match for a field the device may omit. When the next
// line does not match g it is left buffered for the following Match call,
// and when no line arrives at all the condition is reported as absence
// rather than an error.
func (c *Client) MatchOptional(g Grammar) (Captures, bool, error) {
	return c.match(g, true)
}

func (c *Client) match(g Grammar, optional bool) (Captures, bool, error) {
	for {
		if !c.hasPending {
			if err := c.readLine(); err != nil {
				return nil, false, err
			}
		}

		line := c.pending
		terminated := len(line) > 0 && line[len(line)-1] == lineTerminator
		if !terminated {
			// Timeout with no line, or a fragment the device never
			// finished. Either way the conversation is over; drop the
			// fragment so it cannot poison a later match.
			c.clearPending()
			if optional {
				return nil, false, nil
			}
			return nil, false, fmt.Errorf("%w: expected %s, received %d unterminated bytes", ErrNoResponse, g.Name(), len(line))
		}

		body := trimLine(line)
		if caps, ok := g.match(body); ok {
			if c.logger.Level() <= logger.DebugLevel {
				c.logger.Debug("recv", "grammar", g.Name(), "line", string(body))
			}
			c.clearPending()

			return caps, true, nil
		}

		// Asynchronous status lines may arrive between any two expected
		// responses; absorb them unless the caller asked for one.
		if g.Name() != OutOfBandStatus.Name() {
			if _, ok := OutOfBandStatus.match(body); ok {
				c.logger.Debug("skipping interleaved status line", "line", string(body))
				c.clearPending()

				continue
			}
		}

		if optional {
			// The line belongs to the next expected field; keep it
			// buffered for the following match.
			return nil, false, nil
		}

		return nil, false, &MismatchError{Expected: g, Line: append([]byte(nil), body...)}
	}
}

// readLine accumulates bytes until a terminator, the length cap, or a
// per-byte timeout. Whatever was accumulated becomes the pending line;
// match decides whether an unterminated result is fatal.
func (c *Client) readLine() error {
	buf := make([]byte, 0, 64)
	for len(buf) < maxLineLength {
		b, ok, err := c.dev.ReadByte(c.readTimeout)
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		buf = append(buf, b)
		if b == lineTerminator {
			break
		}
	}

	c.pending = buf
	c.hasPending = true

	return nil
}

func (c *Client) clearPending() {
	c.pending = nil
	c.hasPending = false
}

// trimLine strips the trailing terminator and an optional carriage return
// before it.
func trimLine(line []byte) []byte {
	line = line[:len(line)-1]
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}

	return line
}
