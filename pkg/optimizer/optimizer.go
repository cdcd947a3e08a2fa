// Package optimizer provides the rule engine that rewrites SQL statements
// for better performance.
//
// The engine applies the registered rewrite rules in their fixed order, each
// rule observing the output of the previous one. A failing rule is logged
// and skipped; Optimize itself never returns an error.
//
// # Quick Start
//
//	eng := optimizer.New()
//	result := eng.Optimize("SELECT * FROM products", &types.QueryContext{DefaultLimit: 50})
//	fmt.Println(result.OptimizedQuery) // SELECT * FROM products LIMIT 50
//
// Engines are safe for concurrent use: rules are stateless and the
// statistics counters are guarded by a mutex.
package optimizer

import (
	"sync"

	"github.com/queryguard/queryguard/pkg/logger"
	"github.com/queryguard/queryguard/pkg/rules"
	"github.com/queryguard/queryguard/pkg/types"
)

// Engine applies the ordered rewrite rules and tracks statistics.
type Engine struct {
	log      logger.Interface
	disabled map[rules.Kind]struct{}

	mu    sync.Mutex
	stats counters
}

type counters struct {
	queriesOptimized   int
	totalOptimizations int
	rulesApplied       map[string]int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for rule failures and debug output.
func WithLogger(l logger.Interface) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithDisabledRules removes rules from the engine's run set.
// The application order of the remaining rules is unchanged.
func WithDisabledRules(kinds ...rules.Kind) Option {
	return func(e *Engine) {
		for _, k := range kinds {
			e.disabled[k] = struct{}{}
		}
	}
}

// New creates an optimizer engine with fresh statistics.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:      logger.New(),
		disabled: make(map[rules.Kind]struct{}),
		stats:    counters{rulesApplied: make(map[string]int)},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Optimize applies every enabled rule to the statement in order and reports
// what changed. The result's OptimizationsApplied lists the names of the
// rules whose output differed from their input.
func (e *Engine) Optimize(sql string, qctx *types.QueryContext) *types.OptimizationResult {
	original := sql
	applied := []string{}

	for _, rule := range rules.Ordered() {
		if _, off := e.disabled[rule.Kind]; off {
			continue
		}
		before := sql
		after, err := rules.Apply(rule, sql, qctx)
		if err != nil {
			e.log.Warn("optimization rule failed", "rule", rule.Kind, "error", err)
			continue
		}
		sql = after
		if before != sql {
			applied = append(applied, rule.Name)
		}
	}

	e.recordRun(applied)

	result := &types.OptimizationResult{
		OriginalQuery:        original,
		OptimizedQuery:       sql,
		OptimizationsApplied: applied,
		OptimizationCount:    len(applied),
		ImprovementScore:     improvementScore(original, sql),
		IsOptimized:          original != sql,
	}
	if len(applied) > 0 {
		e.log.Info("applied optimizations", "count", len(applied))
	}
	return result
}

func (e *Engine) recordRun(applied []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.queriesOptimized++
	e.stats.totalOptimizations += len(applied)
	for _, name := range applied {
		e.stats.rulesApplied[name]++
	}
}
