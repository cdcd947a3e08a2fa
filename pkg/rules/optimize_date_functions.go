package rules

import (
	"regexp"

	"github.com/queryguard/queryguard/pkg/types"
)

var (
	dateEqualityRe  = regexp.MustCompile(`(?i)DATE\((\w+)\)\s*=\s*'([^']+)'`)
	relativeDaysRe  = regexp.MustCompile(`(?i)DATE\('now',\s*'-(\d+) days?'\)`)
	localDatetimeRe = regexp.MustCompile(`(?i)DATETIME\('now',\s*'localtime'\)`)
)

func init() {
	Register(Rule{
		Kind:  KindOptimizeDateFunctions,
		Name:  "Optimize Date Functions",
		Apply: optimizeDateFunctions,
	})
}

// optimizeDateFunctions rewrites DATE(col) = 'YYYY-MM-DD' equality into a
// BETWEEN range over the whole day, which leaves the column bare and keeps
// an index on it usable. Relative-date call forms are canonicalized.
func optimizeDateFunctions(sql string, _ *types.QueryContext) (string, error) {
	out := dateEqualityRe.ReplaceAllString(sql, "$1 BETWEEN '$2 00:00:00' AND '$2 23:59:59'")
	out = relativeDaysRe.ReplaceAllString(out, "DATE('now', '-$1 days')")
	out = localDatetimeRe.ReplaceAllString(out, "DATETIME('now')")
	return out, nil
}
