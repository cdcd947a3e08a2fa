package rules

import (
	"regexp"
	"strings"

	"github.com/queryguard/queryguard/pkg/types"
)

var (
	whitespaceRunRe = regexp.MustCompile(`\s+`)
	// Multi-character operators must come first so that e.g. "<=" is not
	// split into "< =".
	operatorRe = regexp.MustCompile(`\s*(<=|>=|!=|<>|=|<|>)\s*`)
)

func init() {
	Register(Rule{
		Kind:  KindNormalizeWhitespace,
		Name:  "Normalize Whitespace",
		Apply: normalizeWhitespace,
	})
}

// normalizeWhitespace collapses whitespace runs to single spaces, trims the
// statement, and puts exactly one space on each side of every comparison
// operator.
func normalizeWhitespace(sql string, _ *types.QueryContext) (string, error) {
	out := whitespaceRunRe.ReplaceAllString(sql, " ")
	out = strings.TrimSpace(out)
	out = operatorRe.ReplaceAllString(out, " $1 ")
	out = whitespaceRunRe.ReplaceAllString(out, " ")
	return strings.TrimSpace(out), nil
}
