package validator

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queryguard/queryguard/pkg/checks"
	"github.com/queryguard/queryguard/pkg/types"
)

func TestValidate_DangerousStatement(t *testing.T) {
	eng := New()
	result := eng.Validate(context.Background(), "DROP TABLE customers", nil)

	assert.False(t, result.IsValid)
	assert.Equal(t, types.RiskHigh, result.RiskLevel)
	assert.Contains(t, result.Errors, "Dangerous operation detected: DROP")
	assert.True(t, result.HasSecurityIssues())
	assert.Contains(t, result.Summary, "Query validation failed")
}

func TestValidate_CleanSelect(t *testing.T) {
	eng := New()
	result := eng.Validate(context.Background(), "SELECT id, name FROM users WHERE id = 1 LIMIT 10", nil)

	assert.True(t, result.IsValid)
	assert.Equal(t, types.RiskLow, result.RiskLevel)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.SecurityIssues)
}

func TestValidate_CartesianIsWarningOnly(t *testing.T) {
	eng := New()
	result := eng.Validate(context.Background(), "SELECT a.x FROM a, b", nil)

	// A cartesian shape degrades performance but does not invalidate.
	assert.True(t, result.IsValid)

	found := false
	for _, issue := range result.PerformanceIssues {
		if issue.Type == "cartesian_product" {
			found = true
			assert.Equal(t, types.SeverityHigh, issue.Severity)
		}
	}
	assert.True(t, found, "expected a cartesian_product performance issue")
}

func TestValidate_EmptySlicesNotNil(t *testing.T) {
	eng := New()
	result := eng.Validate(context.Background(), "SELECT id FROM users LIMIT 1", nil)

	// JSON consumers rely on [] rather than null.
	assert.NotNil(t, result.Errors)
	assert.NotNil(t, result.SecurityIssues)
	assert.NotNil(t, result.SyntaxIssues)
	assert.NotNil(t, result.PerformanceIssues)
	assert.NotNil(t, result.Suggestions)
}

func TestValidate_DatabaseOracleError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("EXPLAIN QUERY PLAN").
		WillReturnError(errors.New(`near "FORM": syntax error`))
	mock.ExpectQuery("SELECT name FROM sqlite_master").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	eng := New(WithDriver(db))
	result := eng.Validate(context.Background(), "SELECT id FORM users", nil)

	assert.False(t, result.IsValid)
	require.NotEmpty(t, result.SyntaxIssues)
	assert.Equal(t, "syntax_error", result.SyntaxIssues[0].Type)
	assert.Equal(t, types.SeverityCritical, result.SyntaxIssues[0].Severity)
	require.NoError(t, mock.ExpectationsWereMet())

	stats := eng.Statistics()
	assert.Equal(t, 1, stats.SyntaxErrors)
	assert.Equal(t, 1, stats.ChecksFailed["syntax"])
}

func TestValidate_DisabledChecks(t *testing.T) {
	eng := New(WithDisabledChecks(checks.KindSecurity))
	result := eng.Validate(context.Background(), "DROP TABLE customers", nil)

	assert.Empty(t, result.SecurityIssues)
	for _, msg := range result.Errors {
		assert.NotContains(t, msg, "Dangerous operation")
	}
}

func TestStatistics(t *testing.T) {
	eng := New()
	eng.Validate(context.Background(), "SELECT id FROM users LIMIT 1", nil)
	eng.Validate(context.Background(), "DROP TABLE users", nil)

	stats := eng.Statistics()
	assert.Equal(t, 2, stats.QueriesValidated)
	assert.Equal(t, 1, stats.QueriesPassed)
	assert.Equal(t, 1, stats.QueriesFailed)
	assert.Equal(t, 50.0, stats.PassRate)
	assert.Equal(t, 1, stats.SecurityViolations)
	assert.Equal(t, 1, stats.ChecksFailed["security"])
}

func TestResetStatistics(t *testing.T) {
	eng := New()
	eng.Validate(context.Background(), "DROP TABLE users", nil)
	eng.ResetStatistics()

	stats := eng.Statistics()
	assert.Equal(t, 0, stats.QueriesValidated)
	assert.Equal(t, 0.0, stats.PassRate)
	assert.Empty(t, stats.ChecksFailed)
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name   string
		result *types.ValidationResult
		want   types.RiskLevel
	}{
		{
			name:   "clean",
			result: &types.ValidationResult{},
			want:   types.RiskLow,
		},
		{
			name:   "few warnings stay low",
			result: &types.ValidationResult{Warnings: []string{"a", "b", "c"}},
			want:   types.RiskLow,
		},
		{
			name:   "many warnings are medium",
			result: &types.ValidationResult{Warnings: []string{"a", "b", "c", "d"}},
			want:   types.RiskMedium,
		},
		{
			name:   "any error is high",
			result: &types.ValidationResult{Errors: []string{"boom"}},
			want:   types.RiskHigh,
		},
		{
			name:   "any security issue is high",
			result: &types.ValidationResult{SecurityIssues: []types.Issue{{Type: "dangerous_keyword"}}},
			want:   types.RiskHigh,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRisk(tt.result))
		})
	}
}

func TestSummarize(t *testing.T) {
	eng := New()

	clean := eng.Validate(context.Background(), "SELECT id FROM users WHERE id = 1 LIMIT 1", nil)
	require.True(t, clean.IsValid)
	if len(clean.Warnings) == 0 {
		assert.Equal(t, "Query validated successfully with no issues", clean.Summary)
	} else {
		assert.Contains(t, clean.Summary, "Query validated with")
	}

	failed := eng.Validate(context.Background(), "DROP TABLE users", nil)
	assert.Contains(t, failed.Summary, "Query validation failed")
}
