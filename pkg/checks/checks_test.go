package checks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdered(t *testing.T) {
	ordered := Ordered()
	require.Len(t, ordered, len(runOrder))

	kinds := make([]Kind, 0, len(ordered))
	for _, c := range ordered {
		kinds = append(kinds, c.Kind)
		assert.NotEmpty(t, c.Name)
		assert.NotNil(t, c.Run)
	}
	assert.Equal(t, runOrder, kinds)
}

func TestRun_RecoverPanic(t *testing.T) {
	c := Check{
		Kind: Kind("test-panic"),
		Name: "Panics",
		Run: func(context.Context, Input) (Result, error) {
			panic("boom")
		},
	}

	res, err := Run(context.Background(), c, Input{SQL: "SELECT 1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
	assert.True(t, res.Passed)
}

func TestCheckStructure_ClauseOrder(t *testing.T) {
	res, err := checkStructure(context.Background(), Input{SQL: "SELECT * FROM users WHERE id = 1 ORDER BY name"})
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	res, err = checkStructure(context.Background(), Input{SQL: "SELECT * FROM users ORDER BY name WHERE id = 1"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "Incorrect clause order")
}

func TestCheckStructure_SubqueryDepth(t *testing.T) {
	sql := "SELECT * FROM a WHERE x IN (SELECT x FROM b WHERE y IN (SELECT y FROM c WHERE z IN (SELECT z FROM d WHERE w IN (SELECT w FROM e))))"
	res, err := checkStructure(context.Background(), Input{SQL: sql})
	require.NoError(t, err)

	assert.Contains(t, res.Warnings, "Too many subqueries (4)")
	assert.Contains(t, res.Suggestions, "Consider using JOINs or CTEs instead of nested subqueries")
}

func TestCheckPerformance(t *testing.T) {
	t.Run("excessive wildcards", func(t *testing.T) {
		res, err := checkPerformance(context.Background(), Input{SQL: "SELECT a.*, b.*, c.* FROM a, b, c WHERE a.id = b.id LIMIT 5"})
		require.NoError(t, err)
		assert.Contains(t, res.Warnings, "Too many wildcards (3)")

		found := false
		for _, issue := range res.Issues {
			if issue.Type == "excessive_wildcards" {
				found = true
				assert.Equal(t, 3, issue.Count)
			}
		}
		assert.True(t, found)
	})

	t.Run("missing limit", func(t *testing.T) {
		res, err := checkPerformance(context.Background(), Input{SQL: "SELECT id FROM users"})
		require.NoError(t, err)
		assert.Contains(t, res.Warnings, "No LIMIT clause found")
	})

	t.Run("count query needs no limit", func(t *testing.T) {
		res, err := checkPerformance(context.Background(), Input{SQL: "SELECT COUNT(id) FROM users"})
		require.NoError(t, err)
		assert.NotContains(t, res.Warnings, "No LIMIT clause found")
	})

	t.Run("cartesian product", func(t *testing.T) {
		res, err := checkPerformance(context.Background(), Input{SQL: "SELECT id FROM a, b"})
		require.NoError(t, err)
		assert.Contains(t, res.Warnings, "Potential cartesian product detected")

		found := false
		for _, issue := range res.Issues {
			if issue.Type == "cartesian_product" {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("function on filtered column", func(t *testing.T) {
		res, err := checkPerformance(context.Background(), Input{SQL: "SELECT id FROM t WHERE UPPER(name) = 'X' LIMIT 5"})
		require.NoError(t, err)
		assert.Contains(t, res.Warnings, "Functions in WHERE clause may prevent index usage")
	})

	t.Run("leading wildcard like", func(t *testing.T) {
		res, err := checkPerformance(context.Background(), Input{SQL: "SELECT id FROM t WHERE name LIKE '%smith' LIMIT 5"})
		require.NoError(t, err)
		assert.Contains(t, res.Warnings, "LIKE with leading wildcard prevents index usage")
	})

	t.Run("warnings never fail the check", func(t *testing.T) {
		res, err := checkPerformance(context.Background(), Input{SQL: "SELECT id FROM a, b"})
		require.NoError(t, err)
		assert.True(t, res.Passed)
	})
}

func TestCheckLogic(t *testing.T) {
	t.Run("always true", func(t *testing.T) {
		res, err := checkLogic(context.Background(), Input{SQL: "SELECT * FROM t WHERE 1=1"})
		require.NoError(t, err)
		assert.True(t, res.Passed)
		assert.Contains(t, res.Warnings, "Always-true condition detected")
	})

	t.Run("null equality", func(t *testing.T) {
		res, err := checkLogic(context.Background(), Input{SQL: "SELECT * FROM t WHERE a = NULL"})
		require.NoError(t, err)
		assert.Contains(t, res.Warnings, "Use IS NULL instead of = NULL")
	})

	t.Run("duplicate conditions", func(t *testing.T) {
		res, err := checkLogic(context.Background(), Input{SQL: "SELECT * FROM t WHERE a = 1 AND a = 1"})
		require.NoError(t, err)
		assert.True(t, res.Passed)
		assert.Contains(t, res.Warnings, "Duplicate conditions found")
	})

	t.Run("contradictory conditions fail", func(t *testing.T) {
		res, err := checkLogic(context.Background(), Input{SQL: "SELECT * FROM t WHERE a = 1 AND a = 2"})
		require.NoError(t, err)
		assert.False(t, res.Passed)
		assert.Contains(t, res.Errors, "Contradictory conditions detected")
	})

	t.Run("or branches are independent", func(t *testing.T) {
		res, err := checkLogic(context.Background(), Input{SQL: "SELECT * FROM t WHERE a = 1 OR a = 2"})
		require.NoError(t, err)
		assert.True(t, res.Passed)
		assert.Empty(t, res.Errors)
	})

	t.Run("column to column comparison is fine", func(t *testing.T) {
		res, err := checkLogic(context.Background(), Input{SQL: "SELECT * FROM t WHERE a = b AND a = c"})
		require.NoError(t, err)
		assert.True(t, res.Passed)
	})
}

func TestCheckBestPractices(t *testing.T) {
	t.Run("join without aliases", func(t *testing.T) {
		res, err := checkBestPractices(context.Background(), Input{SQL: "SELECT id FROM users JOIN orders ON users.id = orders.user_id"})
		require.NoError(t, err)
		assert.Contains(t, res.Suggestions, "Consider using table aliases for better readability")
	})

	t.Run("join with aliases", func(t *testing.T) {
		res, err := checkBestPractices(context.Background(), Input{SQL: "SELECT id FROM users u JOIN orders o ON u.id = o.user_id"})
		require.NoError(t, err)
		assert.NotContains(t, res.Suggestions, "Consider using table aliases for better readability")
	})

	t.Run("distinct", func(t *testing.T) {
		res, err := checkBestPractices(context.Background(), Input{SQL: "SELECT DISTINCT name FROM users"})
		require.NoError(t, err)
		assert.Contains(t, res.Suggestions, "Verify if DISTINCT is necessary (it can impact performance)")
	})

	t.Run("union without all", func(t *testing.T) {
		res, err := checkBestPractices(context.Background(), Input{SQL: "SELECT id FROM a UNION SELECT id FROM b"})
		require.NoError(t, err)
		assert.Contains(t, res.Suggestions, "Consider UNION ALL instead of UNION if duplicates are acceptable")
	})

	t.Run("positional order by", func(t *testing.T) {
		res, err := checkBestPractices(context.Background(), Input{SQL: "SELECT id, name FROM users ORDER BY 2"})
		require.NoError(t, err)
		assert.True(t, res.Passed)
		assert.Contains(t, res.Warnings, "Ordering by column position is fragile")
	})
}
