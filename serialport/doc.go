// Package serialport provides the raw byte-level serial transport used by the
// PRN printer protocol driver.
//
// The transport opens a serial device in raw mode (default 115200 baud, 8 data
// bits, no parity, one stop bit, XON/XOFF software flow control) and exposes
// the small I/O surface the protocol needs:
//
//   - ReadByte with a per-call timeout, returning zero or one byte
//   - Write of a whole buffer, bounded by the configured write timeout
//   - FlushBothDirections to discard stale kernel buffers
//
// A write that does not complete within the write timeout fails with
// [ErrWriteTimeout]. This is unrecoverable in practice: the printer firmware
// has stopped draining its receive buffer and requires a power cycle, so the
// error is never retried at any layer.
//
// On Open the transport runs a purge loop, reading with a short 10ms timeout
// and discarding any residual bytes left over from a previous run, before
// regular operation at the normal read timeout begins.
//
// The package is not a general-purpose serial library; it implements exactly
// the semantics the PRN protocol requires on Linux and macOS.
package serialport
