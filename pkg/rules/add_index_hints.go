package rules

import (
	"regexp"
	"sort"
	"strings"

	"github.com/queryguard/queryguard/pkg/types"
)

var whereColumnRe = regexp.MustCompile(`(?i)WHERE\s+(\w+)\.?(\w+)?\s*[=<>]`)

func init() {
	Register(Rule{
		Kind:  KindAddIndexHints,
		Name:  "Add Index Hints",
		Apply: addIndexHints,
	})
}

// addIndexHints prepends a comment naming the known indexes that cover
// columns used in WHERE comparisons. SQLite has no native hint syntax, so a
// comment is the whole hint.
func addIndexHints(sql string, qctx *types.QueryContext) (string, error) {
	if qctx == nil || len(qctx.Indexes) == 0 {
		return sql, nil
	}

	used := make(map[string]struct{})
	for _, m := range whereColumnRe.FindAllStringSubmatch(sql, -1) {
		column := m[1]
		if m[2] != "" {
			column = m[2]
		}
		for name, cols := range qctx.Indexes {
			if containsFold(cols, column) {
				used[name] = struct{}{}
			}
		}
	}
	if len(used) == 0 {
		return sql, nil
	}

	names := make([]string, 0, len(used))
	for name := range used {
		names = append(names, name)
	}
	sort.Strings(names)
	return "-- Suggested indexes: " + strings.Join(names, ", ") + "\n" + sql, nil
}
