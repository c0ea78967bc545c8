package lineproto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammar_Match(t *testing.T) {
	g := MustGrammar("SN", `^SN:(.+)$`)

	caps, ok := g.match([]byte("SN:PRN-000123"))
	require.True(t, ok)
	assert.Equal(t, "PRN-000123", caps.Text(0))

	_, ok = g.match([]byte("VERSION:V1.0"))
	assert.False(t, ok)
}

func TestGrammar_String(t *testing.T) {
	g := MustGrammar("LANG", `^LANG:(\d+)$`)
	assert.Equal(t, "LANG", g.Name())
	assert.Equal(t, `^LANG:(\d+)$`, g.Pattern())
	assert.Equal(t, `LANG (^LANG:(\d+)$)`, g.String())
}

func TestMustGrammar_PanicsOnBadPattern(t *testing.T) {
	assert.Panics(t, func() {
		MustGrammar("bad", `^(unclosed$`)
	})
}

func TestOutOfBandStatus(t *testing.T) {
	caps, ok := OutOfBandStatus.match([]byte("PRN_STATE:571449"))
	require.True(t, ok)

	v, err := caps.Int(0)
	require.NoError(t, err)
	assert.Equal(t, int64(571449), v)

	_, ok = OutOfBandStatus.match([]byte("PRN_STATE:"))
	assert.False(t, ok)
}

func TestCaptures_IntError(t *testing.T) {
	g := MustGrammar("ANY", `^(.+)$`)

	caps, ok := g.match([]byte("not-a-number"))
	require.True(t, ok)

	_, err := caps.Int(0)
	assert.Error(t, err)
}
