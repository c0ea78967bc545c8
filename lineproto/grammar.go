package lineproto

import (
	"fmt"
	"regexp"
	"strconv"
)

// Grammar is a typed descriptor for one expected response line: a name for
// diagnostics plus an anchored pattern whose capture groups are extracted in
// positional order.
type Grammar struct {
	name string
	re   *regexp.Regexp
}

// MustGrammar compiles a response grammar, panicking on an invalid pattern.
// The command catalog is fixed at build time, so a bad pattern is a
// programming error.
func MustGrammar(name, pattern string) Grammar {
	return Grammar{
		name: name,
		re:   regexp.MustCompile(pattern),
	}
}

// Name returns the grammar's diagnostic name.
func (g Grammar) Name() string { return g.name }

// Pattern returns the grammar's pattern text.
func (g Grammar) Pattern() string { return g.re.String() }

func (g Grammar) String() string {
	return fmt.Sprintf("%s (%s)", g.name, g.re.String())
}

// match attempts the grammar against a terminator-stripped line.
func (g Grammar) match(line []byte) (Captures, bool) {
	m := g.re.FindSubmatch(line)
	if m == nil {
		return nil, false
	}

	caps := make(Captures, len(m)-1)
	for i, sub := range m[1:] {
		caps[i] = string(sub)
	}

	return caps, true
}

// OutOfBandStatus matches the asynchronous status lines the printer may
// insert between any two expected responses. The Client silently absorbs
// these during matching; they are also requested explicitly (as an optional
// field) by the status query.
var OutOfBandStatus = MustGrammar("PRN_STATE", `^PRN_STATE:(\d+)$`)

// Captures holds the positional capture groups of a successful match.
// Captures are consumed immediately into typed fields and never retained.
type Captures []string

// Len returns the number of capture groups.
func (c Captures) Len() int { return len(c) }

// Text returns capture i as text.
func (c Captures) Text(i int) string { return c[i] }

// Int decodes capture i as a decimal integer.
func (c Captures) Int(i int) (int64, error) {
	v, err := strconv.ParseInt(c[i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("lineproto: capture %d %q is not an integer: %w", i, c[i], err)
	}

	return v, nil
}
