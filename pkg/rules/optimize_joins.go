package rules

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/queryguard/queryguard/pkg/types"
)

var (
	rightJoinRe = regexp.MustCompile(`(?i)(\w+)\s+RIGHT\s+JOIN\s+(\w+)`)
	joinCondRe  = regexp.MustCompile(`(?i)ON\s+(\w+)\.(\w+)\s*=\s*(\w+)\.(\w+)`)
)

func init() {
	Register(Rule{
		Kind:  KindOptimizeJoins,
		Name:  "Optimize Joins",
		Apply: optimizeJoins,
	})
}

// optimizeJoins rewrites A RIGHT JOIN B into B LEFT JOIN A and, when index
// metadata is available, prepends a comment naming unindexed join columns.
//
// The table swap reorders the table names only; the ON condition is left
// untouched, which is a known correctness risk of the textual approach.
// Table-size based join reordering is declared but performs no textual
// change in this version.
func optimizeJoins(sql string, qctx *types.QueryContext) (string, error) {
	out := sql
	if strings.Contains(strings.ToUpper(out), "RIGHT JOIN") {
		out = rightJoinRe.ReplaceAllString(out, "$2 LEFT JOIN $1")
	}

	if qctx != nil && len(qctx.Indexes) > 0 {
		out = suggestJoinIndexes(out, qctx.Indexes)
	}

	if qctx != nil && len(qctx.TableSizes) > 0 {
		// Size-based reordering needs structural knowledge of the join tree
		// that plain text does not give us. Logged so callers can see the
		// capability was consulted.
		slog.Debug("join reordering by table size is available with context")
	}

	return out, nil
}

func suggestJoinIndexes(sql string, indexes map[string][]string) string {
	var suggestions []string
	for _, m := range joinCondRe.FindAllStringSubmatch(sql, -1) {
		left, right := m[2], m[4]
		indexed := false
		for _, cols := range indexes {
			if containsFold(cols, left) || containsFold(cols, right) {
				indexed = true
				break
			}
		}
		if !indexed {
			suggestions = append(suggestions, "Consider indexing "+left+" and "+right)
		}
	}
	if len(suggestions) == 0 {
		return sql
	}
	return "-- Optimization suggestions: " + strings.Join(suggestions, "; ") + "\n" + sql
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
