// Package checks implements the independent validation checks run by the
// validator engine.
//
// Each check is a pure function over the statement text plus optional
// caller-supplied context and database handle. Checks are registered under a
// stable Kind and executed in the fixed order returned by Ordered; they never
// see each other's output. A failing check contributes errors and issues; a
// check that cannot run contributes a warning, never an error.
package checks

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/queryguard/queryguard/pkg/types"
)

// Kind identifies a validation check.
type Kind string

const (
	KindSecurity      Kind = "security"
	KindSyntax        Kind = "syntax"
	KindStructure     Kind = "structure"
	KindPerformance   Kind = "performance"
	KindSchema        Kind = "schema"
	KindLogic         Kind = "logic"
	KindBestPractices Kind = "best_practices"
)

// runOrder is the total, fixed check execution order.
var runOrder = []Kind{
	KindSecurity,
	KindSyntax,
	KindStructure,
	KindPerformance,
	KindSchema,
	KindLogic,
	KindBestPractices,
}

// Input carries everything a check may consult.
type Input struct {
	// SQL is the statement under validation.
	SQL string
	// Context is the optional caller-supplied metadata. May be nil.
	Context *types.QueryContext
	// Driver is the optional read-only database handle used as an oracle
	// for EXPLAIN-style syntax checking and live table listing. May be nil.
	Driver *sql.DB
}

// Result is the outcome of a single check.
type Result struct {
	Passed      bool
	Errors      []string
	Warnings    []string
	Suggestions []string
	Issues      []types.Issue
}

// pass returns an empty passing result to build on.
func pass() Result {
	return Result{Passed: true}
}

// RunFunc executes one check. The context covers the optional blocking
// database oracle call; pure checks ignore it.
type RunFunc func(ctx context.Context, in Input) (Result, error)

// Check is a registered validation check.
type Check struct {
	Kind Kind
	Name string
	Run  RunFunc
}

var (
	checkMu  sync.RWMutex
	registry = make(map[Kind]Check)
)

// Register makes a check available under its kind.
// It panics if the run func is nil or the kind is already taken.
func Register(c Check) {
	checkMu.Lock()
	defer checkMu.Unlock()
	if c.Run == nil {
		panic("checks: Register run func is nil")
	}
	if _, dup := registry[c.Kind]; dup {
		panic(fmt.Sprintf("checks: Register called twice for check %v", c.Kind))
	}
	registry[c.Kind] = c
}

// Ordered returns the registered checks in their fixed execution order.
// Unregistered kinds are skipped.
func Ordered() []Check {
	checkMu.RLock()
	defer checkMu.RUnlock()
	out := make([]Check, 0, len(runOrder))
	for _, kind := range runOrder {
		if c, ok := registry[kind]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Run executes a single check, converting a panic inside it into an error so
// one misbehaving check cannot abort its siblings.
func Run(ctx context.Context, c Check, in Input) (res Result, err error) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			res = pass()
			err = errors.Errorf("check %s panicked: %v", c.Kind, panicErr)
		}
	}()
	return c.Run(ctx, in)
}
