package checks

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/queryguard/queryguard/pkg/sqltext"
	"github.com/queryguard/queryguard/pkg/types"
)

var (
	missingCommaRe  = regexp.MustCompile(`(?i)SELECT\s+\w+\s+\w+\s+FROM`)
	joinWithoutOnRe = regexp.MustCompile(`(?i)JOIN\s+\w+\s+WHERE`)
)

func init() {
	Register(Check{
		Kind: KindSyntax,
		Name: "Syntax",
		Run:  checkSyntax,
	})
}

// checkSyntax validates token balance with simple counters and, when a live
// database handle is supplied, asks it for an EXPLAIN QUERY PLAN. The
// database error, including a busy-timeout, is surfaced verbatim as a syntax
// failure.
func checkSyntax(ctx context.Context, in Input) (Result, error) {
	res := pass()

	if !sqltext.BalancedParens(in.SQL) {
		res.Passed = false
		res.Errors = append(res.Errors, "Unbalanced parentheses")
		res.Issues = append(res.Issues, types.Issue{
			Type:     "unbalanced_parentheses",
			Severity: types.SeverityHigh,
		})
	}

	if !sqltext.BalancedQuotes(in.SQL) {
		res.Passed = false
		res.Errors = append(res.Errors, "Unbalanced quotes")
		res.Issues = append(res.Issues, types.Issue{
			Type:     "unbalanced_quotes",
			Severity: types.SeverityHigh,
		})
	}

	if sqltext.IsReadOnly(in.SQL) && !hasSelectAndFrom(in.SQL) {
		res.Warnings = append(res.Warnings, "Unusual SELECT statement structure")
	}

	if in.Driver != nil {
		if err := explainWithDatabase(ctx, in); err != nil {
			res.Passed = false
			res.Errors = append(res.Errors, fmt.Sprintf("SQL syntax error: %v", err))
			res.Issues = append(res.Issues, types.Issue{
				Type:     "syntax_error",
				Severity: types.SeverityCritical,
				Detail:   err.Error(),
			})
		}
	}

	mistakes := commonSyntaxMistakes(in.SQL)
	if len(mistakes) > 0 {
		res.Warnings = append(res.Warnings, mistakes...)
		res.Suggestions = append(res.Suggestions, "Review common SQL syntax patterns")
	}

	return res, nil
}

func hasSelectAndFrom(sql string) bool {
	upper := strings.ToUpper(sql)
	return strings.Contains(upper, "SELECT") && strings.Contains(upper, "FROM")
}

// explainWithDatabase runs the non-mutating EXPLAIN oracle. The rows are
// discarded; only the driver's verdict matters.
func explainWithDatabase(ctx context.Context, in Input) error {
	rows, err := in.Driver.QueryContext(ctx, "EXPLAIN QUERY PLAN "+in.SQL)
	if err != nil {
		return err
	}
	defer rows.Close()
	return rows.Err()
}

func commonSyntaxMistakes(sql string) []string {
	var mistakes []string
	if missingCommaRe.MatchString(sql) {
		mistakes = append(mistakes, "Possible missing comma between SELECT columns")
	}
	if joinWithoutOnRe.MatchString(sql) {
		mistakes = append(mistakes, "JOIN without ON clause")
	}
	return mistakes
}
