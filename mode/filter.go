package mode

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// Filter is a custom predicate over the entire text that would result from an
// edit. It is combined with the mode grammar; both must accept.
type Filter interface {
	Accept(candidate string) bool
}

// FilterFunc adapts a plain function to Filter.
type FilterFunc func(candidate string) bool

func (f FilterFunc) Accept(candidate string) bool { return f(candidate) }

// PatternFilter accepts candidates matched by a regular expression.
type PatternFilter struct {
	expr string
	re   *regexp2.Regexp
}

// patternTimeout bounds a single match so a pathological pattern cannot stall
// a frame.
const patternTimeout = 50 * time.Millisecond

// Pattern compiles expr (.NET/Perl syntax, as accepted by regexp2) into a
// Filter. Anchor the expression when the whole text must match.
func Pattern(expr string) (*PatternFilter, error) {
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compile filter pattern %q: %w", expr, err)
	}
	re.MatchTimeout = patternTimeout
	return &PatternFilter{expr: expr, re: re}, nil
}

// MustPattern is like Pattern but panics on an invalid expression.
func MustPattern(expr string) *PatternFilter {
	f, err := Pattern(expr)
	if err != nil {
		panic(err)
	}
	return f
}

// Accept reports whether the pattern matches. Match errors (timeouts) reject.
func (p *PatternFilter) Accept(candidate string) bool {
	ok, err := p.re.MatchString(candidate)
	return err == nil && ok
}

func (p *PatternFilter) String() string { return p.expr }

// All accepts a candidate only when every non-nil filter does.
func All(filters ...Filter) Filter {
	return FilterFunc(func(candidate string) bool {
		for _, f := range filters {
			if f != nil && !f.Accept(candidate) {
				return false
			}
		}
		return true
	})
}
