package checks

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/queryguard/queryguard/pkg/sqltext"
	"github.com/queryguard/queryguard/pkg/types"
)

// dangerousKeywords always fail validation. The match is a case-insensitive
// substring, so partial tokens count; false positives are preferred over a
// missed destructive statement.
var dangerousKeywords = []string{
	"DROP", "DELETE", "TRUNCATE", "ALTER",
	"CREATE", "REPLACE", "INSERT", "UPDATE",
	"GRANT", "REVOKE", "EXEC", "EXECUTE",
	"SHUTDOWN", "RENAME", "ATTACH", "DETACH",
}

// suspiciousPatterns are injection fingerprints: stacked queries, comment
// smuggling, vendor procedure prefixes, encoded payloads, file access.
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i);\s*DROP`),
	regexp.MustCompile(`(?i)--\s*$`),
	regexp.MustCompile(`(?is)/\*.*\*/`),
	regexp.MustCompile(`(?i)xp_\w+`),
	regexp.MustCompile(`(?i)sp_\w+`),
	regexp.MustCompile(`0x[0-9a-fA-F]+`),
	regexp.MustCompile(`(?i)CHAR\s*\(`),
	regexp.MustCompile(`(?i)INTO\s+OUTFILE`),
	regexp.MustCompile(`(?i)LOAD_FILE`),
}

// concatPatterns hint at dynamically assembled SQL. Warning only.
var concatPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+\s*@`),
	regexp.MustCompile(`\|\|`),
	regexp.MustCompile(`(?i)CONCAT\s*\(`),
}

func init() {
	Register(Check{
		Kind: KindSecurity,
		Name: "Security",
		Run:  checkSecurity,
	})
}

func checkSecurity(_ context.Context, in Input) (Result, error) {
	res := pass()
	upper := strings.ToUpper(in.SQL)

	for _, keyword := range dangerousKeywords {
		if strings.Contains(upper, keyword) {
			res.Passed = false
			res.Errors = append(res.Errors, fmt.Sprintf("Dangerous operation detected: %s", keyword))
			res.Issues = append(res.Issues, types.Issue{
				Type:     "dangerous_keyword",
				Severity: types.SeverityCritical,
				Keyword:  keyword,
			})
		}
	}

	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(in.SQL) {
			res.Passed = false
			res.Errors = append(res.Errors, fmt.Sprintf("Suspicious pattern detected: %s", pattern.String()))
			res.Issues = append(res.Issues, types.Issue{
				Type:     "suspicious_pattern",
				Severity: types.SeverityHigh,
				Pattern:  pattern.String(),
			})
		}
	}

	if sqltext.HasMultipleStatements(in.SQL) {
		res.Passed = false
		res.Errors = append(res.Errors, "Multiple SQL statements detected")
		res.Issues = append(res.Issues, types.Issue{
			Type:     "multiple_statements",
			Severity: types.SeverityHigh,
		})
	}

	for _, pattern := range concatPatterns {
		if pattern.MatchString(in.SQL) {
			res.Warnings = append(res.Warnings, "Potential unescaped user input detected")
			res.Suggestions = append(res.Suggestions, "Ensure all user inputs are properly parameterized")
			break
		}
	}

	if !sqltext.IsReadOnly(in.SQL) {
		res.Warnings = append(res.Warnings, "Query performs write operations")
	}

	return res, nil
}
