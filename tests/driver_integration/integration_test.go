package driverintegration

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prnlink/go-prnlink/printer"
	"github.com/prnlink/go-prnlink/transfer"
)

// scriptedPort plays back a full device conversation through the public
// printer API: every response the firmware would emit is preloaded in
// order, and reads drain it one byte at a time like a real UART.
type scriptedPort struct {
	rx     []byte
	writes [][]byte
	closed bool
}

func (p *scriptedPort) ReadByte(timeout time.Duration) (byte, bool, error) {
	if len(p.rx) == 0 {
		return 0, false, nil
	}
	b := p.rx[0]
	p.rx = p.rx[1:]

	return b, true, nil
}

func (p *scriptedPort) Write(buf []byte) error {
	p.writes = append(p.writes, append([]byte(nil), buf...))
	return nil
}

func (p *scriptedPort) Close() error {
	p.closed = true
	return nil
}

const banner = "start\nA1B2C3\nVERSION:V1.5.2\nSN:PRN-000123\n2\n"

func TestFullSession(t *testing.T) {
	var script strings.Builder
	script.WriteString(banner)
	// Lifetime query.
	script.WriteString("WORK_COUNT:42\nLIFETIME:98765\n")
	// Status query, with a stray state line injected mid-response.
	script.WriteString("WORK_PARSENT:42\nPRN_STATE:2\nWORK_TIME:10\nEST_TIME:20\nET0:200\nBT:60\nMCH_STATE:27\nPRN_STATE:2\nLANG:0\n")

	port := &scriptedPort{rx: []byte(script.String())}

	sess, err := printer.NewSession(port, printer.WithReadTimeout(10*time.Millisecond))
	require.NoError(t, err)
	defer sess.Close()

	assert.Equal(t, "V1.5.2", sess.FirmwareVersion())
	assert.Equal(t, "PRN-000123", sess.SerialNumber())

	mins, err := sess.Lifetime()
	require.NoError(t, err)
	assert.Equal(t, int64(98765), mins)

	st, err := sess.Status()
	require.NoError(t, err)
	assert.Equal(t, printer.StateBuilding, st.PrintState)
	assert.Equal(t, int64(42), st.PercentComplete)

	require.NoError(t, sess.Close())
	assert.True(t, port.closed)
}

func TestFullSession_MultiChunkTransfer(t *testing.T) {
	// Build a file that normalizes to several chunks.
	var src bytes.Buffer
	for i := 0; src.Len() < 3*10236; i++ {
		fmt.Fprintf(&src, "G1 X%d Y%d F1500\n", i%220, (i*7)%220)
	}

	plan, err := transfer.NewPlan(bytes.NewReader(src.Bytes()))
	require.NoError(t, err)
	require.Greater(t, plan.Length, int64(3*10236))

	frames := int(plan.Length / 10236)
	if plan.Length%10236 != 0 {
		frames++
	}

	var script strings.Builder
	script.WriteString(banner)
	script.WriteString("OFFLINE_OK\nOFFLINE_OK\n")
	for i := 0; i < frames; i++ {
		script.WriteString("CheckSumOK:PN:0\n")
	}

	port := &scriptedPort{rx: []byte(script.String())}

	sess, err := printer.NewSession(port, printer.WithReadTimeout(10*time.Millisecond))
	require.NoError(t, err)
	defer sess.Close()

	var lastSent int64
	err = sess.SendFile(bytes.NewReader(src.Bytes()), func(sent, total int64) {
		assert.Equal(t, plan.Length, total)
		lastSent = sent
	})
	require.NoError(t, err)
	assert.Equal(t, plan.Length, lastSent)

	// Wire traffic: machine-info command, send-file command, manifest,
	// then payload parts plus one 4-byte checksum frame per chunk. Sum
	// the payload and verify it matches the plan byte for byte.
	var sent int64
	for _, w := range port.writes[3:] {
		sent += int64(len(w))
	}
	sent -= int64(4 * frames)
	assert.Equal(t, plan.Length, sent)
}

func TestFullSession_TransferDeclined(t *testing.T) {
	port := &scriptedPort{rx: []byte(banner + "E4\n")}

	sess, err := printer.NewSession(port, printer.WithReadTimeout(10*time.Millisecond))
	require.NoError(t, err)
	defer sess.Close()

	err = sess.SendFile(strings.NewReader("G1 X1\n"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, transfer.ErrNotReady)
}
