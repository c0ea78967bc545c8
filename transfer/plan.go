package transfer

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Plan is the precomputed wire length of a normalized source file. It is
// calculated once before transmission and never revised; the streamed byte
// count must equal Length exactly.
type Plan struct {
	Length int64
}

// NewPlan computes the transfer plan by streaming src once. Each line is
// counted with terminators stripped and a two-byte CRLF re-added; lines
// that are empty after stripping are not counted. The final empty
// terminator line that ends every transfer adds two more bytes.
func NewPlan(src io.Reader) (*Plan, error) {
	p := &Plan{Length: 2}

	r := bufio.NewReader(src)
	for {
		line, err := r.ReadString('\n')
		if stripped := strings.TrimRight(line, "\r\n"); stripped != "" {
			p.Length += int64(len(stripped)) + 2
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return p, nil
			}
			return nil, err
		}
	}
}
