package rules

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/queryguard/queryguard/pkg/types"
)

var countStarRe = regexp.MustCompile(`(?i)COUNT\(\s*\*\s*\)`)

func init() {
	Register(Rule{
		Kind:  KindOptimizeAggregations,
		Name:  "Optimize Aggregations",
		Apply: optimizeAggregations,
	})
}

// optimizeAggregations rewrites COUNT(*) to COUNT(1) regardless of case and
// inner whitespace. Reconciling GROUP BY columns with the SELECT list needs
// structural parsing and is left as a logged no-op.
func optimizeAggregations(sql string, _ *types.QueryContext) (string, error) {
	if strings.Contains(strings.ToUpper(sql), "GROUP BY") {
		slog.Debug("GROUP BY column reconciliation is not performed on plain text")
	}
	return countStarRe.ReplaceAllString(sql, "COUNT(1)"), nil
}
