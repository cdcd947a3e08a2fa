package checks

import (
	"context"
	"regexp"
	"strings"

	"github.com/queryguard/queryguard/pkg/sqltext"
)

var (
	alwaysTrueRe  = regexp.MustCompile(`(?i)WHERE\s+1\s*=\s*1`)
	alwaysFalseRe = regexp.MustCompile(`(?i)WHERE\s+1\s*=\s*0`)
	equalNullRe   = regexp.MustCompile(`(?i)=\s*NULL`)
	dateCompareRe = regexp.MustCompile(`(?i)WHERE\s+\w+\s*[<>=]+\s*'\d{4}-\d{2}-\d{2}'`)

	orSplitRe  = regexp.MustCompile(`(?i)\s+OR\s+`)
	andSplitRe = regexp.MustCompile(`(?i)\s+AND\s+`)
	eqCondRe   = regexp.MustCompile(`^([\w.]+)\s*=\s*(.+)$`)
	literalRe  = regexp.MustCompile(`^('[^']*'|\d+(?:\.\d+)?)$`)
)

func init() {
	Register(Check{
		Kind: KindLogic,
		Name: "Logic",
		Run:  checkLogic,
	})
}

func checkLogic(_ context.Context, in Input) (Result, error) {
	res := pass()

	if alwaysTrueRe.MatchString(in.SQL) {
		res.Warnings = append(res.Warnings, "Always-true condition detected")
	}
	if alwaysFalseRe.MatchString(in.SQL) {
		res.Warnings = append(res.Warnings, "Always-false condition detected")
	}

	if equalNullRe.MatchString(in.SQL) {
		res.Warnings = append(res.Warnings, "Use IS NULL instead of = NULL")
		res.Suggestions = append(res.Suggestions, "NULL comparisons should use IS NULL or IS NOT NULL")
	}

	if dateCompareRe.MatchString(in.SQL) {
		res.Suggestions = append(res.Suggestions, "Consider using DATE() function for date comparisons")
	}

	body := sqltext.WhereBody(in.SQL)

	if hasDuplicateConditions(body) {
		res.Warnings = append(res.Warnings, "Duplicate conditions found")
		res.Suggestions = append(res.Suggestions, "Remove redundant conditions")
	}

	if hasContradictoryConditions(body) {
		res.Passed = false
		res.Errors = append(res.Errors, "Contradictory conditions detected")
	}

	return res, nil
}

func hasDuplicateConditions(body string) bool {
	conditions := sqltext.SplitConditions(body)
	seen := make(map[string]struct{}, len(conditions))
	for _, c := range conditions {
		if _, dup := seen[c]; dup {
			return true
		}
		seen[c] = struct{}{}
	}
	return false
}

// hasContradictoryConditions reports a column compared for equality to two
// distinct literal values inside the same AND-joined branch. OR branches are
// examined independently: x = 1 OR x = 2 is fine, x = 1 AND x = 2 is not.
func hasContradictoryConditions(body string) bool {
	if body == "" {
		return false
	}
	for _, branch := range orSplitRe.Split(body, -1) {
		values := make(map[string]string)
		for _, fragment := range andSplitRe.Split(branch, -1) {
			m := eqCondRe.FindStringSubmatch(strings.TrimSpace(fragment))
			if m == nil {
				continue
			}
			column := strings.ToLower(m[1])
			value := strings.TrimSpace(m[2])
			if !literalRe.MatchString(value) {
				continue
			}
			if prev, ok := values[column]; ok && prev != value {
				return true
			}
			values[column] = value
		}
	}
	return false
}
