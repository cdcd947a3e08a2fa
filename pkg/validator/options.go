package validator

import (
	"database/sql"

	"github.com/queryguard/queryguard/pkg/checks"
	"github.com/queryguard/queryguard/pkg/logger"
)

// driverHandle wraps the optional oracle connection so a zero Engine value
// means "no database".
type driverHandle struct {
	db *sql.DB
}

// Option customizes an Engine.
type Option func(*Engine)

// WithDriver provides a read-only database handle used as an oracle for
// EXPLAIN-style syntax checking and for listing live tables in the schema
// check.
//
// The handle is only ever used for non-mutating statements. Busy-timeout
// behavior is configured by the caller on the connection itself; its errors
// surface as syntax-check failures.
//
// Example:
//
//	db, _ := sql.Open("sqlite", "data/app.db")
//	eng := validator.New(validator.WithDriver(db))
func WithDriver(db *sql.DB) Option {
	return func(e *Engine) {
		e.driver = driverHandle{db: db}
	}
}

// WithLogger sets the logger used for check failures.
func WithLogger(l logger.Interface) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithDisabledChecks removes checks from the engine's run set.
// The execution order of the remaining checks is unchanged.
func WithDisabledChecks(kinds ...checks.Kind) Option {
	return func(e *Engine) {
		for _, k := range kinds {
			e.disabled[k] = struct{}{}
		}
	}
}
