// Package validator provides the check engine that screens SQL statements
// for safety, correctness, and performance risk before execution.
//
// The engine runs the registered checks in their fixed order and merges
// their findings into a single types.ValidationResult. A check that cannot
// run is downgraded to a warning naming the check; Validate itself never
// returns an error. Availability is prioritized over completeness.
//
// # Quick Start
//
//	eng := validator.New()
//	result := eng.Validate(context.Background(), "DROP TABLE customers", nil)
//	fmt.Println(result.IsValid)   // false
//	fmt.Println(result.RiskLevel) // high
//
// # With a live database oracle
//
//	db, _ := sql.Open("sqlite", "data/app.db")
//	eng := validator.New(validator.WithDriver(db))
//
// Engines are safe for concurrent use: checks are stateless and the
// statistics counters are guarded by a mutex.
package validator

import (
	"context"
	"fmt"
	"sync"

	"github.com/queryguard/queryguard/pkg/checks"
	"github.com/queryguard/queryguard/pkg/logger"
	"github.com/queryguard/queryguard/pkg/types"
)

// Engine runs the ordered validation checks and tracks statistics.
type Engine struct {
	log      logger.Interface
	driver   driverHandle
	disabled map[checks.Kind]struct{}

	mu    sync.Mutex
	stats counters
}

type counters struct {
	queriesValidated    int
	queriesPassed       int
	queriesFailed       int
	securityViolations  int
	syntaxErrors        int
	performanceWarnings int
	checksFailed        map[string]int
}

// New creates a validator engine with fresh statistics.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:      logger.New(),
		disabled: make(map[checks.Kind]struct{}),
		stats:    counters{checksFailed: make(map[string]int)},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate runs every enabled check against the statement and merges the
// findings. Warnings never flip validity; security, syntax, schema, and
// logic errors do. The context bounds the optional database oracle call;
// its timeout or busy error surfaces as a syntax-check failure, not as a
// Validate error.
func (e *Engine) Validate(ctx context.Context, sql string, qctx *types.QueryContext) *types.ValidationResult {
	result := &types.ValidationResult{
		IsValid:           true,
		Query:             sql,
		Errors:            []string{},
		Warnings:          []string{},
		SecurityIssues:    []types.Issue{},
		SyntaxIssues:      []types.Issue{},
		PerformanceIssues: []types.Issue{},
		Suggestions:       []string{},
		RiskLevel:         types.RiskLow,
	}

	input := checks.Input{SQL: sql, Context: qctx, Driver: e.driver.db}

	var failedChecks []string
	for _, check := range checks.Ordered() {
		if _, off := e.disabled[check.Kind]; off {
			continue
		}
		res, err := checks.Run(ctx, check, input)
		if err != nil {
			e.log.Error("validation check failed", "check", check.Kind, "error", err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("Could not complete %s check", check.Kind))
			continue
		}
		if !res.Passed {
			failedChecks = append(failedChecks, string(check.Kind))
		}
		e.merge(result, check.Kind, res)
	}

	result.RiskLevel = ClassifyRisk(result)
	result.Summary = summarize(result)

	e.recordRun(result, failedChecks)
	return result
}

// merge folds one check's findings into the aggregate result.
func (e *Engine) merge(result *types.ValidationResult, kind checks.Kind, res checks.Result) {
	if !res.Passed {
		result.IsValid = false
	}
	result.Errors = append(result.Errors, res.Errors...)
	result.Warnings = append(result.Warnings, res.Warnings...)
	result.Suggestions = append(result.Suggestions, res.Suggestions...)

	switch kind {
	case checks.KindSecurity:
		result.SecurityIssues = append(result.SecurityIssues, res.Issues...)
	case checks.KindSyntax:
		result.SyntaxIssues = append(result.SyntaxIssues, res.Issues...)
	case checks.KindPerformance:
		result.PerformanceIssues = append(result.PerformanceIssues, res.Issues...)
	}
}

func (e *Engine) recordRun(result *types.ValidationResult, failedChecks []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.queriesValidated++
	if result.IsValid {
		e.stats.queriesPassed++
	} else {
		e.stats.queriesFailed++
	}
	if len(result.SecurityIssues) > 0 {
		e.stats.securityViolations++
	}
	if len(result.SyntaxIssues) > 0 {
		e.stats.syntaxErrors++
	}
	if len(result.PerformanceIssues) > 0 {
		e.stats.performanceWarnings++
	}
	for _, name := range failedChecks {
		e.stats.checksFailed[name]++
	}
}

// summarize derives the one-line human summary from counts alone.
func summarize(result *types.ValidationResult) string {
	if result.IsValid {
		if len(result.Warnings) == 0 {
			return "Query validated successfully with no issues"
		}
		return fmt.Sprintf("Query validated with %d warnings", len(result.Warnings))
	}
	return fmt.Sprintf("Query validation failed: %d errors, %d warnings",
		len(result.Errors), len(result.Warnings))
}
