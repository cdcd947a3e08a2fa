package rules

import (
	"log/slog"
	"regexp"

	"github.com/queryguard/queryguard/pkg/types"
)

var inSubqueryRe = regexp.MustCompile(`(?i)WHERE\s+(\w+)\s+IN\s*\(\s*SELECT\s+(\w+)\s+FROM\s+(\w+)`)

func init() {
	Register(Rule{
		Kind:  KindOptimizeSubqueries,
		Name:  "Optimize Subqueries",
		Apply: optimizeSubqueries,
	})
}

// optimizeSubqueries detects WHERE col IN (SELECT ...) shapes that would
// benefit from an EXISTS form. The conversion itself is not performed:
// rewriting the subquery safely needs structural knowledge the textual
// pipeline does not have, so the rule only logs the candidates. Because the
// text never changes, this rule can never appear in optimizations_applied.
func optimizeSubqueries(sql string, _ *types.QueryContext) (string, error) {
	for _, m := range inSubqueryRe.FindAllStringSubmatch(sql, -1) {
		slog.Debug("IN subquery is a candidate for EXISTS conversion",
			"column", m[1], "subquery_column", m[2], "subquery_table", m[3])
	}
	return sql, nil
}
