package transfer

import (
	"encoding/binary"

	"github.com/prnlink/go-prnlink/lineproto"
	"github.com/prnlink/go-prnlink/progress"
)

// ChunkSize is the fixed payload size between checksum frames.
const ChunkSize = 10236

var grChecksumOK = lineproto.MustGrammar("CheckSumOK", `^CheckSumOK:PN:0$`)

// chunkWriter streams normalized lines through the connection, splitting
// them across chunk boundaries and sealing every full chunk (and the final
// partial one) with an acknowledged checksum frame.
type chunkWriter struct {
	conn  Conn
	total int64 // planned wire length, for progress reporting
	sink  progress.Sink

	bytesInChunk int
	checksum     uint32
	totalSent    int64
}

func newChunkWriter(conn Conn, planned int64, sink progress.Sink) *chunkWriter {
	if sink == nil {
		sink = func(int64, int64) {}
	}

	return &chunkWriter{conn: conn, total: planned, sink: sink}
}

// writeLine sends one normalized line (CRLF already appended). A line that
// would overflow the current chunk is split: the prefix fills the chunk
// exactly, the checksum frame is exchanged, and the remainder opens the
// next chunk.
func (w *chunkWriter) writeLine(line []byte) error {
	for len(line) > 0 {
		n := ChunkSize - w.bytesInChunk
		if n > len(line) {
			n = len(line)
		}

		part := line[:n]
		if err := w.conn.Send(part); err != nil {
			return err
		}

		for _, b := range part {
			w.checksum += uint32(b)
		}
		w.bytesInChunk += n
		w.totalSent += int64(n)
		w.sink(w.totalSent, w.total)

		if w.bytesInChunk == ChunkSize {
			if err := w.sealChunk(); err != nil {
				return err
			}
		}

		line = line[n:]
	}

	return nil
}

// finish seals a trailing partial chunk, if any.
func (w *chunkWriter) finish() error {
	if w.bytesInChunk == 0 {
		return nil
	}

	return w.sealChunk()
}

// sealChunk sends the 4-byte big-endian checksum frame, waits for the
// acknowledgement, and resets the chunk tally. The accumulated sum wraps
// at 32 bits by construction.
func (w *chunkWriter) sealChunk() error {
	var frame [4]byte
	binary.BigEndian.PutUint32(frame[:], w.checksum)

	if err := w.conn.Send(frame[:]); err != nil {
		return err
	}
	if _, err := w.conn.Match(grChecksumOK); err != nil {
		return err
	}

	w.bytesInChunk = 0
	w.checksum = 0

	return nil
}
