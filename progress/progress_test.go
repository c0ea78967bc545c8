package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBar_Render(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar(&buf)

	sink := b.Sink()
	sink(0, 16)
	sink(8, 16)
	sink(16, 16)
	b.Finish()

	out := buf.String()
	assert.Contains(t, out, "  0% 0/16")
	assert.Contains(t, out, " 50% 8/16")
	assert.Contains(t, out, "100% 16/16")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestBar_SkipsUnchangedFrames(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar(&buf)

	sink := b.Sink()
	sink(1, 1000)
	n := buf.Len()
	sink(1, 1000)
	assert.Equal(t, n, buf.Len())
}

func TestBar_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar(&buf)

	require.NotPanics(t, func() {
		b.Sink()(0, 0)
	})
	assert.Contains(t, buf.String(), "100%")
}
