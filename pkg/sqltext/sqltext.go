// Package sqltext provides the regex and string inspection primitives shared
// by the rewrite rules and validation checks.
//
// Nothing in this package builds an AST. Every helper treats the statement as
// opaque text and answers questions about keyword shapes, which keeps the
// whole pipeline deterministic but also means the helpers can be fooled by
// sufficiently unusual SQL. Callers must treat the answers as heuristics.
package sqltext

import (
	"regexp"
	"strings"
)

var (
	singleQuoted = regexp.MustCompile(`'[^']*'`)
	doubleQuoted = regexp.MustCompile(`"[^"]*"`)

	fromTableRe = regexp.MustCompile(`(?i)FROM\s+(\w+)`)
	joinTableRe = regexp.MustCompile(`(?i)JOIN\s+(\w+)`)
	columnRefRe = regexp.MustCompile(`(\w+)\.(\w+)`)
	fromListRe  = regexp.MustCompile(`(?i)FROM\s+([\w\s,]+?)(?:WHERE|GROUP|ORDER|LIMIT|$)`)
	whereBodyRe = regexp.MustCompile(`(?i)WHERE\s+(.*?)(?:GROUP|ORDER|LIMIT|$)`)
	condSplitRe = regexp.MustCompile(`(?i)\s+AND\s+|\s+OR\s+`)
)

// StripLiterals removes single- and double-quoted string literals so that
// punctuation inside them does not confuse structural checks.
func StripLiterals(sql string) string {
	out := singleQuoted.ReplaceAllString(sql, "")
	return doubleQuoted.ReplaceAllString(out, "")
}

// ContainsKeyword reports whether the upper-cased statement contains the
// upper-cased keyword as a substring. Deliberately a substring match: partial
// tokens count, which errs on the side of flagging.
func ContainsKeyword(sql, keyword string) bool {
	return strings.Contains(strings.ToUpper(sql), strings.ToUpper(keyword))
}

// HasPrefixFold reports whether the trimmed statement starts with any of the
// given keywords, case-insensitively.
func HasPrefixFold(sql string, keywords ...string) bool {
	head := strings.ToUpper(strings.TrimSpace(sql))
	for _, kw := range keywords {
		if strings.HasPrefix(head, strings.ToUpper(kw)) {
			return true
		}
	}
	return false
}

// IsReadOnly reports whether the statement starts with a read-only verb.
func IsReadOnly(sql string) bool {
	return HasPrefixFold(sql, "SELECT", "WITH", "EXPLAIN")
}

// BalancedParens reports whether parentheses are balanced and never close
// before opening.
func BalancedParens(sql string) bool {
	depth := 0
	for _, ch := range sql {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// BalancedQuotes reports whether single and double quotes each appear an even
// number of times. Escaped quotes beyond literal stripping are not modeled.
func BalancedQuotes(sql string) bool {
	return strings.Count(sql, "'")%2 == 0 && strings.Count(sql, `"`)%2 == 0
}

// HasMultipleStatements reports whether the statement, after stripping quoted
// literals, contains a semicolon before its final character.
func HasMultipleStatements(sql string) bool {
	cleaned := StripLiterals(sql)
	cleaned = strings.TrimRight(strings.TrimSpace(cleaned), ";")
	return strings.Contains(cleaned, ";")
}

// TableNames returns the distinct table names referenced by FROM and JOIN
// clauses, in first-seen order.
func TableNames(sql string) []string {
	var tables []string
	seen := make(map[string]struct{})
	add := func(matches [][]string) {
		for _, m := range matches {
			name := m[1]
			key := strings.ToLower(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			tables = append(tables, name)
		}
	}
	add(fromTableRe.FindAllStringSubmatch(sql, -1))
	add(joinTableRe.FindAllStringSubmatch(sql, -1))
	return tables
}

// ColumnRef is a qualified table.column reference found in the text.
type ColumnRef struct {
	Table  string
	Column string
}

// ColumnRefs returns every table.column shaped reference in the statement.
func ColumnRefs(sql string) []ColumnRef {
	var refs []ColumnRef
	for _, m := range columnRefRe.FindAllStringSubmatch(sql, -1) {
		refs = append(refs, ColumnRef{Table: m[1], Column: m[2]})
	}
	return refs
}

// FromListTables returns the comma-separated table expressions of the first
// FROM clause. Returns nil when no FROM clause is found.
func FromListTables(sql string) []string {
	m := fromListRe.FindStringSubmatch(sql)
	if m == nil {
		return nil
	}
	parts := strings.Split(m[1], ",")
	tables := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tables = append(tables, t)
		}
	}
	return tables
}

// HasCartesianRisk reports the cartesian-product shape: two or more
// comma-joined tables, no JOIN keyword, and no WHERE clause.
func HasCartesianRisk(sql string) bool {
	tables := FromListTables(sql)
	if len(tables) < 2 {
		return false
	}
	upper := strings.ToUpper(sql)
	return !strings.Contains(upper, "JOIN") && !strings.Contains(upper, "WHERE")
}

// WhereBody returns the text of the WHERE clause up to the next major
// clause, or "" when the statement has no WHERE clause.
func WhereBody(sql string) string {
	m := whereBodyRe.FindStringSubmatch(sql)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// SplitConditions splits a WHERE clause body on AND/OR connectors and
// returns the trimmed fragments.
func SplitConditions(body string) []string {
	parts := condSplitRe.Split(body, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SubqueryCount counts SELECT occurrences beyond the first one.
func SubqueryCount(sql string) int {
	n := strings.Count(strings.ToUpper(sql), "SELECT") - 1
	if n < 0 {
		return 0
	}
	return n
}
