// Package types defines the contract surface shared by the validator,
// optimizer, pipeline, and any CLI or export layer built on top of them.
//
// The JSON field names on ValidationResult and OptimizationResult are part
// of that contract and must stay stable.
package types

// Severity classifies how serious a single validation issue is.
type Severity string

const (
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// RiskLevel is the overall risk tier derived from a validation run.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// TableSchema describes the columns of one table, as supplied by the caller.
type TableSchema struct {
	Columns []string `json:"columns" yaml:"columns"`
}

// QueryContext is read-only metadata supplied by the caller to inform rules
// and checks without querying the database directly.
//
// Every field is optional. A nil QueryContext, or a QueryContext with zero
// fields, degrades the dependent rules and checks to skips rather than
// failures.
type QueryContext struct {
	// DefaultLimit is the row limit injected into unbounded SELECT
	// statements. Values <= 0 fall back to 100.
	DefaultLimit int `json:"default_limit" yaml:"default_limit"`

	// Indexes maps index name to the ordered list of indexed columns.
	Indexes map[string][]string `json:"indexes" yaml:"indexes"`

	// TableSizes maps table name to its approximate row count.
	TableSizes map[string]int `json:"table_sizes" yaml:"table_sizes"`

	// Schema maps table name to its column metadata.
	Schema map[string]TableSchema `json:"schema" yaml:"schema"`
}

// DefaultRowLimit is the limit used when the context supplies none.
const DefaultRowLimit = 100

// EffectiveLimit returns the row limit to inject, applying the default when
// the context is nil or carries no positive limit.
func (c *QueryContext) EffectiveLimit() int {
	if c == nil || c.DefaultLimit <= 0 {
		return DefaultRowLimit
	}
	return c.DefaultLimit
}

// Issue is a single structured finding produced by a validation check.
type Issue struct {
	Type     string   `json:"type" yaml:"type"`
	Severity Severity `json:"severity" yaml:"severity"`

	// Optional detail fields, populated depending on Type.
	Keyword string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Table   string `json:"table,omitempty" yaml:"table,omitempty"`
	Count   int    `json:"count,omitempty" yaml:"count,omitempty"`
	Detail  string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// ValidationResult is the aggregate outcome of running all checks against
// one SQL statement.
type ValidationResult struct {
	IsValid           bool      `json:"is_valid" yaml:"is_valid"`
	Query             string    `json:"query" yaml:"query"`
	Errors            []string  `json:"errors" yaml:"errors"`
	Warnings          []string  `json:"warnings" yaml:"warnings"`
	SecurityIssues    []Issue   `json:"security_issues" yaml:"security_issues"`
	SyntaxIssues      []Issue   `json:"syntax_issues" yaml:"syntax_issues"`
	PerformanceIssues []Issue   `json:"performance_issues" yaml:"performance_issues"`
	Suggestions       []string  `json:"suggestions" yaml:"suggestions"`
	RiskLevel         RiskLevel `json:"risk_level" yaml:"risk_level"`
	Summary           string    `json:"summary" yaml:"summary"`
}

// HasSecurityIssues reports whether any security check produced an issue.
func (r *ValidationResult) HasSecurityIssues() bool {
	return len(r.SecurityIssues) > 0
}

// OptimizationResult is the outcome of one optimizer pass.
type OptimizationResult struct {
	OriginalQuery        string   `json:"original_query" yaml:"original_query"`
	OptimizedQuery       string   `json:"optimized_query" yaml:"optimized_query"`
	OptimizationsApplied []string `json:"optimizations_applied" yaml:"optimizations_applied"`
	OptimizationCount    int      `json:"optimization_count" yaml:"optimization_count"`
	ImprovementScore     float64  `json:"improvement_score" yaml:"improvement_score"`
	IsOptimized          bool     `json:"is_optimized" yaml:"is_optimized"`
}
