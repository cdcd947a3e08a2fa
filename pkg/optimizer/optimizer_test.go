package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queryguard/queryguard/pkg/rules"
	"github.com/queryguard/queryguard/pkg/types"
)

func TestOptimize_AddsLimit(t *testing.T) {
	eng := New()
	result := eng.Optimize("SELECT * FROM products", &types.QueryContext{DefaultLimit: 50})

	assert.Equal(t, "SELECT * FROM products", result.OriginalQuery)
	assert.Equal(t, "SELECT * FROM products LIMIT 50", result.OptimizedQuery)
	assert.Equal(t, []string{"Add Limit If Missing"}, result.OptimizationsApplied)
	assert.Equal(t, 1, result.OptimizationCount)
	assert.Equal(t, 20.0, result.ImprovementScore)
	assert.True(t, result.IsOptimized)
}

func TestOptimize_UnchangedQuery(t *testing.T) {
	eng := New()
	sql := "SELECT id FROM users LIMIT 10"
	result := eng.Optimize(sql, nil)

	assert.Equal(t, sql, result.OptimizedQuery)
	assert.Empty(t, result.OptimizationsApplied)
	assert.Equal(t, 0, result.OptimizationCount)
	assert.Equal(t, 0.0, result.ImprovementScore)
	assert.False(t, result.IsOptimized)
}

func TestOptimize_CountRewrite(t *testing.T) {
	eng := New()
	result := eng.Optimize("SELECT COUNT(*) FROM users", nil)

	assert.Equal(t, "SELECT COUNT(1) FROM users", result.OptimizedQuery)
	assert.Contains(t, result.OptimizationsApplied, "Optimize Aggregations")
}

func TestOptimize_RulesChain(t *testing.T) {
	qctx := &types.QueryContext{
		DefaultLimit: 25,
		Schema: map[string]types.TableSchema{
			"users": {Columns: []string{"id", "name"}},
		},
	}
	result := engineOptimize(t, "SELECT   *  FROM users", qctx)

	// Whitespace normalizes first, the limit lands second, then the
	// wildcard expands against the known schema.
	assert.Equal(t, "SELECT id, name FROM users LIMIT 25", result.OptimizedQuery)
	assert.Equal(t, []string{
		"Normalize Whitespace",
		"Add Limit If Missing",
		"Optimize Wildcards",
	}, result.OptimizationsApplied)
}

func engineOptimize(t *testing.T, sql string, qctx *types.QueryContext) *types.OptimizationResult {
	t.Helper()
	return New().Optimize(sql, qctx)
}

func TestOptimize_DisabledRules(t *testing.T) {
	eng := New(WithDisabledRules(rules.KindAddLimit))
	result := eng.Optimize("SELECT id FROM users", nil)

	assert.False(t, result.IsOptimized)
	assert.NotContains(t, result.OptimizedQuery, "LIMIT")
}

func TestStatistics(t *testing.T) {
	eng := New()
	eng.Optimize("SELECT * FROM products", nil)
	eng.Optimize("SELECT * FROM orders", nil)
	eng.Optimize("SELECT id FROM users LIMIT 5", nil)

	stats := eng.Statistics()
	assert.Equal(t, 3, stats.QueriesOptimized)
	assert.Equal(t, 2, stats.TotalOptimizations)
	assert.InDelta(t, 2.0/3.0, stats.AverageOptimizations, 1e-9)
	assert.Equal(t, "Add Limit If Missing", stats.MostUsedRule)
	assert.Equal(t, 2, stats.RulesApplied["Add Limit If Missing"])
}

func TestStatistics_SnapshotIsCopy(t *testing.T) {
	eng := New()
	eng.Optimize("SELECT * FROM products", nil)

	stats := eng.Statistics()
	stats.RulesApplied["Add Limit If Missing"] = 99

	assert.Equal(t, 1, eng.Statistics().RulesApplied["Add Limit If Missing"])
}

func TestResetStatistics(t *testing.T) {
	eng := New()
	eng.Optimize("SELECT * FROM products", nil)
	eng.ResetStatistics()

	stats := eng.Statistics()
	assert.Equal(t, 0, stats.QueriesOptimized)
	assert.Equal(t, 0, stats.TotalOptimizations)
	assert.Empty(t, stats.RulesApplied)
	assert.Empty(t, stats.MostUsedRule)
}

func TestImprovementScore(t *testing.T) {
	tests := []struct {
		name      string
		original  string
		optimized string
		want      float64
	}{
		{
			name:      "unchanged is exactly zero",
			original:  "SELECT id FROM t LIMIT 5",
			optimized: "SELECT id FROM t LIMIT 5",
			want:      0.0,
		},
		{
			name:      "limit added",
			original:  "SELECT * FROM products",
			optimized: "SELECT * FROM products LIMIT 50",
			want:      20.0,
		},
		{
			name:      "fewer wildcards and shorter",
			original:  "SELECT *, name FROM users LIMIT 5",
			optimized: "SELECT name FROM users LIMIT 5",
			want:      20.0,
		},
		{
			name:      "count rewrite also drops a star",
			original:  "SELECT COUNT(*) FROM t",
			optimized: "SELECT COUNT(1) FROM t",
			want:      20.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, improvementScore(tt.original, tt.optimized))
		})
	}
}
