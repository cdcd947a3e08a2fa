package checks

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/queryguard/queryguard/pkg/sqltext"
)

// maxSubqueries is the nesting budget before the structure check complains.
const maxSubqueries = 3

// clausePatterns locate each major clause; canonicalOrder is the relative
// order they must appear in.
var (
	canonicalOrder = []string{"WITH", "SELECT", "FROM", "JOIN", "WHERE", "GROUP BY", "HAVING", "ORDER BY", "LIMIT"}
	clausePatterns = map[string]*regexp.Regexp{
		"WITH":     regexp.MustCompile(`(?i)\bWITH\b`),
		"SELECT":   regexp.MustCompile(`(?i)\bSELECT\b`),
		"FROM":     regexp.MustCompile(`(?i)\bFROM\b`),
		"JOIN":     regexp.MustCompile(`(?i)\bJOIN\b`),
		"WHERE":    regexp.MustCompile(`(?i)\bWHERE\b`),
		"GROUP BY": regexp.MustCompile(`(?i)\bGROUP\s+BY\b`),
		"HAVING":   regexp.MustCompile(`(?i)\bHAVING\b`),
		"ORDER BY": regexp.MustCompile(`(?i)\bORDER\s+BY\b`),
		"LIMIT":    regexp.MustCompile(`(?i)\bLIMIT\b`),
	}

	joinNoOnRe   = regexp.MustCompile(`(?i)JOIN\s+\w+\s*(JOIN\b|WHERE\b|GROUP\b|ORDER\b|$)`)
	onClauseRe   = regexp.MustCompile(`(?i)\bON\s+(.+?)(\bWHERE\b|\bGROUP\b|\bORDER\b|\bJOIN\b|$)`)
	logicalOpsRe = regexp.MustCompile(`(?i)\b(AND|OR)\b`)
)

func init() {
	Register(Check{
		Kind: KindStructure,
		Name: "Structure",
		Run:  checkStructure,
	})
}

func checkStructure(_ context.Context, in Input) (Result, error) {
	res := pass()

	if clause, ok := outOfOrderClause(in.SQL); !ok {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Incorrect clause order: %s appears in wrong position", clause))
	}

	if strings.Contains(strings.ToUpper(in.SQL), "JOIN") {
		res.Warnings = append(res.Warnings, joinConditionIssues(in.SQL)...)
	}

	if n := sqltext.SubqueryCount(in.SQL); n > maxSubqueries {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Too many subqueries (%d)", n))
		res.Suggestions = append(res.Suggestions, "Consider using JOINs or CTEs instead of nested subqueries")
	}

	return res, nil
}

// outOfOrderClause returns the first clause that appears earlier in the text
// than a clause that should precede it.
func outOfOrderClause(sql string) (string, bool) {
	lastPos := -1
	for _, clause := range canonicalOrder {
		loc := clausePatterns[clause].FindStringIndex(sql)
		if loc == nil {
			continue
		}
		if loc[0] < lastPos {
			return clause, false
		}
		lastPos = loc[0]
	}
	return "", true
}

func joinConditionIssues(sql string) []string {
	var issues []string

	if joinNoOnRe.MatchString(sql) {
		issues = append(issues, "JOIN may be missing ON clause")
	}

	if m := onClauseRe.FindStringSubmatch(sql); m != nil {
		conditions := m[1]
		if !logicalOpsRe.MatchString(conditions) && strings.Count(conditions, "=") > 1 {
			issues = append(issues, "Multiple JOIN conditions may need AND/OR operators")
		}
	}

	return issues
}
