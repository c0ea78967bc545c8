package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prnlink/go-prnlink/transfer"
)

func TestSession_SendFile(t *testing.T) {
	s, port := newTestSession(t, "OFFLINE_OK\nOFFLINE_OK\nCheckSumOK:PN:0\n")

	var lastSent, lastTotal int64
	err := s.SendFile(strings.NewReader("G1 X1\n\nG1 X2\n"), func(sent, total int64) {
		lastSent, lastTotal = sent, total
	})
	require.NoError(t, err)

	assert.Equal(t, int64(16), lastSent)
	assert.Equal(t, int64(16), lastTotal)

	// Writes after the handshake: send-file command, manifest, payload
	// lines, checksum frame.
	writes := port.writes[1:]
	require.GreaterOrEqual(t, len(writes), 4)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x03}, writes[0])
	assert.Equal(t, []byte("MyTest,16,1.3.52,EE1_OK,EE2_OK\r\n"), writes[1])
}

func TestSession_SendFile_NotReady(t *testing.T) {
	s, _ := newTestSession(t, "E4\n")

	err := s.SendFile(strings.NewReader("G1 X1\n"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, transfer.ErrNotReady)
}

func TestSession_SendFirmware(t *testing.T) {
	s, port := newTestSession(t, "OFFLINE_OK\nOFFLINE_OK\nCheckSumOK:PN:0\n")

	require.NoError(t, s.SendFirmware(strings.NewReader("DATA\n"), nil))

	writes := port.writes[1:]
	require.NotEmpty(t, writes)
	assert.Equal(t, byte(0x02), writes[0][len(writes[0])-1])
}
