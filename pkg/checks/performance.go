package checks

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/queryguard/queryguard/pkg/sqltext"
	"github.com/queryguard/queryguard/pkg/types"
)

// Performance warning thresholds.
const (
	maxWildcards     = 2
	maxJoins         = 5
	maxOrConditions  = 5
	recommendedLimit = 1000
)

var (
	whereFunctionRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)WHERE.*\b(DATE|YEAR|MONTH|DAY|UPPER|LOWER|TRIM|LENGTH)\s*\(`),
		regexp.MustCompile(`(?i)WHERE.*\b\w+\s*\([^)]*\w+\.[^)]*\)`),
	}
	leadingWildcardLikeRe = regexp.MustCompile(`(?i)LIKE\s+['"]%`)
)

func init() {
	Register(Check{
		Kind: KindPerformance,
		Name: "Performance",
		Run:  checkPerformance,
	})
}

func checkPerformance(_ context.Context, in Input) (Result, error) {
	res := pass()
	upper := strings.ToUpper(in.SQL)

	if n := strings.Count(in.SQL, "*"); n > maxWildcards {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Too many wildcards (%d)", n))
		res.Issues = append(res.Issues, types.Issue{
			Type:     "excessive_wildcards",
			Severity: types.SeverityMedium,
			Count:    n,
		})
		res.Suggestions = append(res.Suggestions, "Specify exact columns instead of using SELECT *")
	}

	if !strings.Contains(upper, "LIMIT") && !strings.Contains(upper, "COUNT(") {
		res.Warnings = append(res.Warnings, "No LIMIT clause found")
		res.Suggestions = append(res.Suggestions, fmt.Sprintf("Consider adding LIMIT %d", recommendedLimit))
	}

	if n := strings.Count(upper, "JOIN"); n > maxJoins {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Too many JOINs (%d)", n))
		res.Issues = append(res.Issues, types.Issue{
			Type:     "excessive_joins",
			Severity: types.SeverityMedium,
			Count:    n,
		})
		res.Suggestions = append(res.Suggestions, "Consider breaking the query into smaller parts")
	}

	if sqltext.HasCartesianRisk(in.SQL) {
		res.Warnings = append(res.Warnings, "Potential cartesian product detected")
		res.Issues = append(res.Issues, types.Issue{
			Type:     "cartesian_product",
			Severity: types.SeverityHigh,
		})
		res.Suggestions = append(res.Suggestions, "Ensure proper JOIN conditions are specified")
	}

	if hasFunctionsInWhere(in.SQL) {
		res.Warnings = append(res.Warnings, "Functions in WHERE clause may prevent index usage")
		res.Suggestions = append(res.Suggestions, "Consider restructuring to allow index usage")
	}

	if n := strings.Count(upper, " OR "); n > maxOrConditions {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Many OR conditions (%d) may impact performance", n))
		res.Suggestions = append(res.Suggestions, "Consider using IN clause or UNION instead")
	}

	if leadingWildcardLikeRe.MatchString(in.SQL) {
		res.Warnings = append(res.Warnings, "LIKE with leading wildcard prevents index usage")
		res.Suggestions = append(res.Suggestions, "Consider full-text search or restructuring the query")
	}

	return res, nil
}

func hasFunctionsInWhere(sql string) bool {
	for _, re := range whereFunctionRes {
		if re.MatchString(sql) {
			return true
		}
	}
	return false
}
