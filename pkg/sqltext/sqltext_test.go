package sqltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripLiterals(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{`SELECT * FROM t WHERE name = 'O; DROP'`, `SELECT * FROM t WHERE name = `},
		{`SELECT * FROM t WHERE name = "x;y"`, `SELECT * FROM t WHERE name = `},
		{`SELECT * FROM t`, `SELECT * FROM t`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripLiterals(tt.sql), tt.sql)
	}
}

func TestHasPrefixFold(t *testing.T) {
	assert.True(t, HasPrefixFold("  select * from t", "SELECT"))
	assert.True(t, HasPrefixFold("UPDATE t SET a = 1", "INSERT", "UPDATE"))
	assert.False(t, HasPrefixFold("SELECT 1", "INSERT", "UPDATE", "DELETE"))
}

func TestIsReadOnly(t *testing.T) {
	assert.True(t, IsReadOnly("SELECT 1"))
	assert.True(t, IsReadOnly("WITH cte AS (SELECT 1) SELECT * FROM cte"))
	assert.True(t, IsReadOnly("EXPLAIN SELECT 1"))
	assert.False(t, IsReadOnly("DELETE FROM t"))
}

func TestBalancedParens(t *testing.T) {
	tests := []struct {
		sql  string
		want bool
	}{
		{"SELECT * FROM (SELECT 1)", true},
		{"SELECT * FROM t WHERE (a = 1", false},
		{"SELECT * FROM t WHERE a = 1)", false},
		{")(", false},
		{"", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BalancedParens(tt.sql), tt.sql)
	}
}

func TestBalancedQuotes(t *testing.T) {
	assert.True(t, BalancedQuotes(`SELECT 'a' FROM "t"`))
	assert.False(t, BalancedQuotes(`SELECT 'a FROM t`))
	assert.False(t, BalancedQuotes(`SELECT "a FROM t`))
}

func TestHasMultipleStatements(t *testing.T) {
	tests := []struct {
		sql  string
		want bool
	}{
		{"SELECT 1; DROP TABLE t", true},
		{"SELECT 1;", false},
		{"SELECT 1", false},
		// Semicolon inside a string literal does not count.
		{"SELECT * FROM t WHERE name = 'a;b'", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasMultipleStatements(tt.sql), tt.sql)
	}
}

func TestTableNames(t *testing.T) {
	tables := TableNames("SELECT * FROM users u JOIN orders o ON u.id = o.user_id")
	require.Equal(t, []string{"users", "orders"}, tables)

	// Duplicate references collapse to one entry.
	tables = TableNames("SELECT * FROM users WHERE id IN (SELECT user_id FROM users)")
	require.Equal(t, []string{"users"}, tables)
}

func TestColumnRefs(t *testing.T) {
	refs := ColumnRefs("SELECT u.name FROM users u WHERE u.age > 18")
	require.Len(t, refs, 2)
	assert.Equal(t, ColumnRef{Table: "u", Column: "name"}, refs[0])
	assert.Equal(t, ColumnRef{Table: "u", Column: "age"}, refs[1])
}

func TestFromListTables(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, FromListTables("SELECT * FROM a, b"))
	assert.Equal(t, []string{"users"}, FromListTables("SELECT * FROM users WHERE id = 1"))
	assert.Nil(t, FromListTables("SELECT 1"))
}

func TestHasCartesianRisk(t *testing.T) {
	tests := []struct {
		sql  string
		want bool
	}{
		{"SELECT * FROM a, b", true},
		{"SELECT * FROM a, b WHERE a.id = b.id", false},
		{"SELECT * FROM a JOIN b ON a.id = b.id", false},
		{"SELECT * FROM a", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasCartesianRisk(tt.sql), tt.sql)
	}
}

func TestWhereBody(t *testing.T) {
	assert.Equal(t, "a = 1 AND b = 2", WhereBody("SELECT * FROM t WHERE a = 1 AND b = 2 ORDER BY a"))
	assert.Equal(t, "", WhereBody("SELECT * FROM t"))
}

func TestSplitConditions(t *testing.T) {
	conds := SplitConditions("a = 1 AND b = 2 OR c = 3")
	require.Equal(t, []string{"a = 1", "b = 2", "c = 3"}, conds)
	assert.Empty(t, SplitConditions(""))
}

func TestSubqueryCount(t *testing.T) {
	assert.Equal(t, 0, SubqueryCount("SELECT 1"))
	assert.Equal(t, 1, SubqueryCount("SELECT * FROM t WHERE id IN (SELECT id FROM u)"))
	assert.Equal(t, 0, SubqueryCount("UPDATE t SET a = 1"))
}
