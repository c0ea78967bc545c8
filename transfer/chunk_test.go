package transfer

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkWriter_BoundarySplit(t *testing.T) {
	// Fill the chunk to three bytes short, then write a 10-byte line. The
	// first three bytes must complete the chunk exactly; the remaining
	// seven open the next one.
	conn := &fakeConn{acks: []string{"CheckSumOK:PN:0"}}
	w := newChunkWriter(conn, 0, nil)

	filler := bytes.Repeat([]byte{'x'}, ChunkSize-3)
	require.NoError(t, w.writeLine(filler))
	require.NoError(t, w.writeLine([]byte("G1 X999\r\n")))

	// filler, 3-byte prefix, checksum frame, 6-byte remainder.
	require.Len(t, conn.writes, 4)
	assert.Len(t, conn.writes[0], ChunkSize-3)
	assert.Equal(t, []byte("G1 "), conn.writes[1])
	assert.Len(t, conn.writes[2], 4)
	assert.Equal(t, []byte("X999\r\n"), conn.writes[3])

	assert.Equal(t, int64(ChunkSize+6), w.totalSent)
	assert.Equal(t, 6, w.bytesInChunk)
}

func TestChunkWriter_ChecksumResetsPerChunk(t *testing.T) {
	conn := &fakeConn{acks: []string{"CheckSumOK:PN:0", "CheckSumOK:PN:0"}}
	w := newChunkWriter(conn, 0, nil)

	chunk := bytes.Repeat([]byte{0x01}, ChunkSize)
	require.NoError(t, w.writeLine(chunk))
	require.NoError(t, w.writeLine(chunk))

	var want [4]byte
	binary.BigEndian.PutUint32(want[:], uint32(ChunkSize))

	// Both frames carry the same sum: the accumulator was reset between
	// chunks.
	assert.Equal(t, want[:], conn.writes[1])
	assert.Equal(t, want[:], conn.writes[3])
	assert.Equal(t, uint32(0), w.checksum)
}

func TestChunkWriter_ChecksumWrapsAt32Bits(t *testing.T) {
	conn := &fakeConn{acks: []string{"CheckSumOK:PN:0"}}
	w := newChunkWriter(conn, 0, nil)

	w.checksum = 0xFFFFFFFE
	require.NoError(t, w.writeLine([]byte{0x05}))
	require.NoError(t, w.finish())

	last := conn.writes[len(conn.writes)-1]
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x03}, last)
}

func TestChunkWriter_FinishWithoutData(t *testing.T) {
	conn := &fakeConn{}
	w := newChunkWriter(conn, 0, nil)

	// Nothing buffered: no checksum frame goes out.
	require.NoError(t, w.finish())
	assert.Empty(t, conn.writes)
}
