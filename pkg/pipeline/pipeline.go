// Package pipeline wires the validator and optimizer into the full
// validate-then-optimize flow, fronted by a normalized-key result cache.
//
// The pipeline persists nothing itself: the cache is in-memory, and the
// engines own only their statistics counters.
//
//	p := pipeline.New()
//	res, err := p.Process(ctx, "SELECT * FROM products", nil)
//	if res.Validation.IsValid {
//	    fmt.Println(res.Optimization.OptimizedQuery)
//	}
package pipeline

import (
	"context"
	"time"

	"github.com/queryguard/queryguard/pkg/cache"
	"github.com/queryguard/queryguard/pkg/logger"
	"github.com/queryguard/queryguard/pkg/optimizer"
	"github.com/queryguard/queryguard/pkg/types"
	"github.com/queryguard/queryguard/pkg/validator"
)

// Result is the combined outcome of one pipeline run. Optimization is nil
// when validation rejected the statement.
type Result struct {
	Validation   *types.ValidationResult   `json:"validation" yaml:"validation"`
	Optimization *types.OptimizationResult `json:"optimization,omitempty" yaml:"optimization,omitempty"`
	FromCache    bool                      `json:"from_cache" yaml:"from_cache"`
}

// Pipeline runs validation first and optimization only on valid statements.
type Pipeline struct {
	validator *validator.Engine
	optimizer *optimizer.Engine
	results   *cache.Cache[Result]
	log       logger.Interface
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithValidator replaces the default validator engine.
func WithValidator(v *validator.Engine) Option {
	return func(p *Pipeline) {
		p.validator = v
	}
}

// WithOptimizer replaces the default optimizer engine.
func WithOptimizer(o *optimizer.Engine) Option {
	return func(p *Pipeline) {
		p.optimizer = o
	}
}

// WithCacheSize sizes the result cache. Non-positive values keep the
// package defaults.
func WithCacheSize(maxEntries int, ttl time.Duration) Option {
	return func(p *Pipeline) {
		p.results = cache.New[Result](maxEntries, ttl)
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(l logger.Interface) Option {
	return func(p *Pipeline) {
		p.log = l
	}
}

// New creates a pipeline with default engines and cache.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		validator: validator.New(),
		optimizer: optimizer.New(),
		results:   cache.New[Result](cache.DefaultMaxEntries, cache.DefaultTTL),
		log:       logger.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Validator returns the pipeline's validator engine.
func (p *Pipeline) Validator() *validator.Engine {
	return p.validator
}

// Optimizer returns the pipeline's optimizer engine.
func (p *Pipeline) Optimizer() *optimizer.Engine {
	return p.optimizer
}

// CacheStatistics returns the result cache counters.
func (p *Pipeline) CacheStatistics() cache.Statistics {
	return p.results.Statistics()
}

// Process validates the statement and, when it is valid, optimizes it.
// Results are cached under the normalized query key; a later call with the
// same normalized text returns the stored result with FromCache set.
func (p *Pipeline) Process(ctx context.Context, sql string, qctx *types.QueryContext) (*Result, error) {
	key := cache.Key(sql)
	if hit, ok := p.results.Get(key); ok {
		p.log.Debug("pipeline cache hit", "key", key)
		hit.FromCache = true
		return &hit, nil
	}

	validation := p.validator.Validate(ctx, sql, qctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := Result{Validation: validation}
	if validation.IsValid {
		result.Optimization = p.optimizer.Optimize(sql, qctx)
	} else {
		p.log.Warn("query rejected by validation",
			"risk_level", validation.RiskLevel, "errors", len(validation.Errors))
	}

	p.results.Set(key, result)
	return &result, nil
}
