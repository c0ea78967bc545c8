// Package transfer implements the chunked, checksummed file streaming
// protocol used for G-code and firmware uploads.
//
// A transfer has three phases. The planning pass reads the source once and
// computes the exact normalized byte length that will go on the wire. The
// handshake sends the initiating command and a manifest line, each of which
// the printer must acknowledge with OFFLINE_OK; the first acknowledgement
// requires the operator to confirm on the device display. The streaming
// pass then re-reads the source, normalizes each line to a single CRLF
// terminator with blank lines removed, and sends it in 10236-byte chunks,
// each chunk sealed by a 4-byte big-endian checksum frame that the printer
// acknowledges before the next chunk begins.
//
// The planned length is never revised; if the streamed byte count diverges
// from it, the transfer fails with a ConsistencyError, which signals a
// defect in this driver rather than a device condition.
package transfer
