// Package lineproto implements the line-oriented response protocol spoken by
// PRN-family 3D printers.
//
// The printer answers commands with newline-terminated ASCII lines. The
// Client buffers at most one pending line at a time and matches it against
// typed response grammars. The device may interleave asynchronous status
// lines (PRN_STATE:<n>) between any two expected responses; the Client
// absorbs those transparently so callers only ever see the responses they
// asked for.
//
// Matching is strict: a terminated line that matches neither the requested
// grammar nor the out-of-band status marker is a fatal protocol mismatch
// carrying both the expected pattern and the literal received line. A read
// that produces no terminated line at all is a fatal no-response condition.
// Neither is retried anywhere in the driver.
package lineproto
