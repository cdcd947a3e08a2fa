package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/queryguard/queryguard/pkg/types"
)

// maxExpandedColumns bounds wildcard expansion: replacing * with a very wide
// column list hurts readability more than it helps the planner.
const maxExpandedColumns = 20

var selectStarRe = regexp.MustCompile(`(?i)SELECT\s+\*\s+FROM\s+(\w+)`)

func init() {
	Register(Rule{
		Kind:  KindOptimizeWildcards,
		Name:  "Optimize Wildcards",
		Apply: optimizeWildcards,
	})
}

// optimizeWildcards replaces SELECT * with the explicit column list for every
// table whose schema is known from the context and has fewer than
// maxExpandedColumns columns.
func optimizeWildcards(sql string, qctx *types.QueryContext) (string, error) {
	if qctx == nil || len(qctx.Schema) == 0 {
		return sql, nil
	}
	out := sql
	for _, m := range selectStarRe.FindAllStringSubmatch(sql, -1) {
		table := m[1]
		schema, ok := qctx.Schema[table]
		if !ok {
			continue
		}
		cols := schema.Columns
		if len(cols) == 0 || len(cols) >= maxExpandedColumns {
			continue
		}
		replacement := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), table)
		out = strings.Replace(out, m[0], replacement, 1)
	}
	return out, nil
}
