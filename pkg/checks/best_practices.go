package checks

import (
	"context"
	"regexp"
	"strings"
)

var (
	shortAliasRe   = regexp.MustCompile(`(?i)FROM\s+\w+\s+(?:AS\s+)?\w{1,3}\s`)
	computedExprRe = regexp.MustCompile(`(?i)SELECT.*\(.*\).*FROM`)
	columnAliasRe  = regexp.MustCompile(`(?i)\bAS\s+\w+`)
	positionalRe   = regexp.MustCompile(`(?i)ORDER\s+BY\s+\d+`)
)

func init() {
	Register(Check{
		Kind: KindBestPractices,
		Name: "Best Practices",
		Run:  checkBestPractices,
	})
}

// checkBestPractices never fails validation; it only produces suggestions
// and style warnings.
func checkBestPractices(_ context.Context, in Input) (Result, error) {
	res := pass()
	upper := strings.ToUpper(in.SQL)

	if strings.Contains(upper, "JOIN") && !shortAliasRe.MatchString(in.SQL) {
		res.Suggestions = append(res.Suggestions, "Consider using table aliases for better readability")
	}

	if computedExprRe.MatchString(in.SQL) && !columnAliasRe.MatchString(in.SQL) {
		res.Suggestions = append(res.Suggestions, "Consider using column aliases for complex expressions")
	}

	if strings.Contains(upper, "DISTINCT") {
		res.Suggestions = append(res.Suggestions, "Verify if DISTINCT is necessary (it can impact performance)")
	}

	if strings.Contains(upper, "UNION") && !strings.Contains(upper, "UNION ALL") {
		res.Suggestions = append(res.Suggestions, "Consider UNION ALL instead of UNION if duplicates are acceptable")
	}

	if positionalRe.MatchString(in.SQL) {
		res.Warnings = append(res.Warnings, "Ordering by column position is fragile")
		res.Suggestions = append(res.Suggestions, "Use column names instead of positions in ORDER BY")
	}

	return res, nil
}
