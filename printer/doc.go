// Package printer implements the command catalog and session layer for
// PRN-family 3D printers.
//
// A Session is created by performing the machine-info handshake over an open
// serial transport; it then owns the port exclusively until Close. The
// Session exposes the device queries (lifetime, filament cartridge, job
// status) and initiates file and firmware uploads through the transfer
// engine.
//
// Every command on the wire is the same 8-byte wake-up preamble followed by
// a one-byte selector. Responses are newline-terminated text lines matched
// by the lineproto package.
package printer
