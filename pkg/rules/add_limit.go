package rules

import (
	"fmt"
	"strings"

	"github.com/queryguard/queryguard/pkg/sqltext"
	"github.com/queryguard/queryguard/pkg/types"
)

func init() {
	Register(Rule{
		Kind:  KindAddLimit,
		Name:  "Add Limit If Missing",
		Apply: addLimitIfMissing,
	})
}

// addLimitIfMissing appends a LIMIT clause to unbounded SELECT statements to
// guard against oversized result sets. COUNT queries return a single row and
// write statements take no LIMIT, so both are left alone. Idempotent: once a
// LIMIT is present the rule never fires again.
func addLimitIfMissing(sql string, qctx *types.QueryContext) (string, error) {
	upper := strings.ToUpper(sql)
	if strings.Contains(upper, "LIMIT") || strings.Contains(upper, "COUNT(") {
		return sql, nil
	}
	if sqltext.HasPrefixFold(sql, "INSERT", "UPDATE", "DELETE") {
		return sql, nil
	}
	if !sqltext.HasPrefixFold(sql, "SELECT") {
		return sql, nil
	}
	return fmt.Sprintf("%s LIMIT %d", strings.TrimRight(sql, ";"), qctx.EffectiveLimit()), nil
}
