// Package pattern compiles the full-match predicate candidate identifier
// chains are tested against.
package pattern

import (
	"fmt"
	"regexp"
)

// Pattern is a compiled full-match predicate: the whole candidate string must
// match the expression, not a substring of it. `tmp` therefore never matches
// `tmpname`, while `tmp.*` does.
type Pattern struct {
	re  *regexp.Regexp
	src string
}

// Compile anchors expr inside ^( )$ and compiles it once for the run.
// The returned Pattern is immutable and safe for concurrent use.
func Compile(expr string) (*Pattern, error) {
	re, err := regexp.Compile("^(" + expr + ")$")
	if err != nil {
		return nil, fmt.Errorf("illegal pattern %q: %w", expr, err)
	}
	return &Pattern{re: re, src: expr}, nil
}

// Match reports whether s matches the pattern in its entirety.
func (p *Pattern) Match(s string) bool {
	return p.re.MatchString(s)
}

// String returns the original, unanchored expression.
func (p *Pattern) String() string {
	return p.src
}
