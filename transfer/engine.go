package transfer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/prnlink/go-prnlink/lineproto"
	"github.com/prnlink/go-prnlink/logger"
	"github.com/prnlink/go-prnlink/progress"
)

// Manifest constants. The printer does not interpret the job name; the
// version token and capability flags must match what the firmware expects
// or the second OFFLINE_OK never arrives.
const (
	jobName         = "MyTest"
	versionToken    = "1.3.52"
	capabilityFlags = "EE1_OK,EE2_OK"
)

var grOfflineOK = lineproto.MustGrammar("OFFLINE_OK", `^OFFLINE_OK$`)

// Conn is the line-protocol surface the engine drives. It is satisfied by
// *lineproto.Client.
type Conn interface {
	Send(p []byte) error
	SendLine(text string) error
	Match(g lineproto.Grammar) (lineproto.Captures, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithProgress sets the progress sink. A nil sink disables reporting.
func WithProgress(sink progress.Sink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithLogger overrides the engine logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine performs one chunked, checksummed upload per Send call.
type Engine struct {
	conn   Conn
	sink   progress.Sink
	logger logger.Logger
}

// NewEngine creates an Engine over an established line-protocol connection.
func NewEngine(conn Conn, opts ...Option) *Engine {
	e := &Engine{
		conn:   conn,
		logger: logger.GetLogger(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Send streams src to the printer: plan, handshake, then the normalized
// chunked payload. initiate is the command that opens the transfer on the
// device. src is read twice and must seek back to the start between the
// passes.
//
// Errors are never retried. A failed handshake reports ErrNotReady; a
// byte-count divergence at the end reports *ConsistencyError.
func (e *Engine) Send(initiate []byte, src io.ReadSeeker) error {
	plan, err := NewPlan(src)
	if err != nil {
		return fmt.Errorf("transfer: planning failed: %w", err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("transfer: rewind failed: %w", err)
	}

	e.logger.Info("starting transfer", "planned_bytes", plan.Length)

	if err := e.handshake(initiate, plan); err != nil {
		return err
	}

	if err := e.stream(src, plan); err != nil {
		return err
	}

	e.logger.Info("transfer complete", "bytes", plan.Length)

	return nil
}

// handshake opens the transfer and announces the manifest. Both steps need
// an OFFLINE_OK; the first one only arrives after the operator confirms on
// the device display.
func (e *Engine) handshake(initiate []byte, plan *Plan) error {
	if err := e.conn.Send(initiate); err != nil {
		return err
	}
	if _, err := e.conn.Match(grOfflineOK); err != nil {
		return fmt.Errorf("%w (%v)", ErrNotReady, err)
	}

	manifest := fmt.Sprintf("%s,%d,%s,%s", jobName, plan.Length, versionToken, capabilityFlags)
	if err := e.conn.SendLine(manifest); err != nil {
		return err
	}
	if _, err := e.conn.Match(grOfflineOK); err != nil {
		return fmt.Errorf("%w (%v)", ErrNotReady, err)
	}

	return nil
}

// stream is the second pass over src: normalize each line, skip blanks,
// append the final empty terminator line, and verify the plan held.
func (e *Engine) stream(src io.Reader, plan *Plan) error {
	w := newChunkWriter(e.conn, plan.Length, e.sink)

	r := bufio.NewReader(src)
	for {
		line, err := r.ReadString('\n')
		if stripped := strings.TrimRight(line, "\r\n"); stripped != "" {
			if werr := w.writeLine(append([]byte(stripped), '\r', '\n')); werr != nil {
				return werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("transfer: reading source: %w", err)
		}
	}

	// End-of-file marker: one empty CRLF-only line.
	if err := w.writeLine([]byte{'\r', '\n'}); err != nil {
		return err
	}
	if err := w.finish(); err != nil {
		return err
	}

	if w.totalSent != plan.Length {
		return &ConsistencyError{Sent: w.totalSent, Planned: plan.Length}
	}

	return nil
}
