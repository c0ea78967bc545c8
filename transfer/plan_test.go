package transfer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlan(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		length int64
	}{
		{"empty file", "", 2},
		{"single line", "G1 X1\n", 7 + 2},
		{"no trailing newline", "G1 X1", 7 + 2},
		{"blank lines skipped", "G1 X1\n\nG1 X2\n", 16},
		{"crlf input", "G1 X1\r\nG1 X2\r\n", 16},
		{"blank-only file", "\n\r\n\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPlan(strings.NewReader(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.length, p.Length)
		})
	}
}
