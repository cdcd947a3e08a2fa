// Package rules implements the ordered textual rewrite rules applied by the
// optimizer engine.
//
// Each rule is a pure (sql, context) -> sql transform registered under a
// stable Kind. Rules never see each other directly: the engine feeds the
// output of one rule into the next, in the fixed order returned by Ordered.
// New rules are added by registering a tagged transform, not by subclassing.
package rules

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/queryguard/queryguard/pkg/types"
)

// Kind identifies a rewrite rule.
type Kind string

const (
	KindNormalizeWhitespace     Kind = "rewrite.normalize-whitespace"
	KindAddLimit                Kind = "rewrite.add-limit"
	KindOptimizeWildcards       Kind = "rewrite.optimize-wildcards"
	KindOptimizeJoins           Kind = "rewrite.optimize-joins"
	KindOptimizeSubqueries      Kind = "rewrite.optimize-subqueries"
	KindAddIndexHints           Kind = "rewrite.add-index-hints"
	KindOptimizeDateFunctions   Kind = "rewrite.optimize-date-functions"
	KindPreventCartesianProduct Kind = "rewrite.prevent-cartesian-product"
	KindOptimizeAggregations    Kind = "rewrite.optimize-aggregations"
	KindOptimizeOrderBy         Kind = "rewrite.optimize-order-by"
)

// applyOrder is the total application order. Each rule observes the output
// of the previous rule; the sequence never changes between calls.
var applyOrder = []Kind{
	KindNormalizeWhitespace,
	KindAddLimit,
	KindOptimizeWildcards,
	KindOptimizeJoins,
	KindOptimizeSubqueries,
	KindAddIndexHints,
	KindOptimizeDateFunctions,
	KindPreventCartesianProduct,
	KindOptimizeAggregations,
	KindOptimizeOrderBy,
}

// ApplyFunc is a pure text transform. It must not mutate the context.
type ApplyFunc func(sql string, qctx *types.QueryContext) (string, error)

// Rule is a registered rewrite rule.
type Rule struct {
	// Kind is the registry key.
	Kind Kind
	// Name is the human-readable name recorded in optimizations_applied.
	Name string
	// Apply performs the rewrite.
	Apply ApplyFunc
}

var (
	ruleMu   sync.RWMutex
	registry = make(map[Kind]Rule)
)

// Register makes a rule available under its kind.
// It panics if the apply func is nil or the kind is already taken.
func Register(r Rule) {
	ruleMu.Lock()
	defer ruleMu.Unlock()
	if r.Apply == nil {
		panic("rules: Register apply func is nil")
	}
	if _, dup := registry[r.Kind]; dup {
		panic(fmt.Sprintf("rules: Register called twice for rule %v", r.Kind))
	}
	registry[r.Kind] = r
}

// Ordered returns the registered rules in their fixed application order.
// Unregistered kinds are skipped.
func Ordered() []Rule {
	ruleMu.RLock()
	defer ruleMu.RUnlock()
	out := make([]Rule, 0, len(applyOrder))
	for _, kind := range applyOrder {
		if r, ok := registry[kind]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Apply runs a single rule, converting a panic inside the transform into an
// error so one malformed rule/input combination cannot abort the pipeline.
func Apply(r Rule, sql string, qctx *types.QueryContext) (out string, err error) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			out = sql
			err = errors.Errorf("rule %s panicked: %v", r.Kind, panicErr)
		}
	}()
	return r.Apply(sql, qctx)
}
