package rules

import (
	"regexp"

	"github.com/queryguard/queryguard/pkg/types"
)

var (
	minMaxCallRe     = regexp.MustCompile(`(?i)\b(MIN|MAX)\s*\(`)
	limitOneRe       = regexp.MustCompile(`(?i)\bLIMIT\s+1\s*;?\s*$`)
	orderBeforeLimit = regexp.MustCompile(`(?i)ORDER\s+BY\s+[^)]+?\s+(LIMIT\b)`)
)

func init() {
	Register(Rule{
		Kind:  KindOptimizeOrderBy,
		Name:  "Optimize Order By",
		Apply: optimizeOrderBy,
	})
}

// optimizeOrderBy strips an ORDER BY clause immediately preceding LIMIT 1
// when the query contains a MIN or MAX aggregate: the aggregate already
// determines the single extremal row, so the sort is redundant work.
func optimizeOrderBy(sql string, _ *types.QueryContext) (string, error) {
	if !limitOneRe.MatchString(sql) {
		return sql, nil
	}
	if !minMaxCallRe.MatchString(sql) {
		return sql, nil
	}
	return orderBeforeLimit.ReplaceAllString(sql, "$1"), nil
}
