package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/queryguard/queryguard/pkg/sqltext"
	"github.com/queryguard/queryguard/pkg/types"
)

func init() {
	Register(Check{
		Kind: KindSchema,
		Name: "Schema",
		Run:  checkSchema,
	})
}

// checkSchema validates table and column references. Table existence is an
// error only when a live connection can list the real tables; column
// references are checked against caller-supplied schema metadata and are
// warnings only. With neither source available the check is skipped.
func checkSchema(ctx context.Context, in Input) (Result, error) {
	res := pass()

	hasSchemaContext := in.Context != nil && len(in.Context.Schema) > 0
	if in.Driver == nil && !hasSchemaContext {
		res.Warnings = append(res.Warnings, "Schema validation skipped (no connection or context)")
		return res, nil
	}

	if in.Driver != nil {
		existing, err := listTables(ctx, in)
		if err != nil {
			return res, err
		}
		for _, table := range sqltext.TableNames(in.SQL) {
			if _, ok := existing[strings.ToLower(table)]; !ok {
				res.Passed = false
				res.Errors = append(res.Errors, fmt.Sprintf("Table '%s' does not exist", table))
				res.Issues = append(res.Issues, types.Issue{
					Type:     "missing_table",
					Severity: types.SeverityCritical,
					Table:    table,
				})
			}
		}
	}

	if hasSchemaContext {
		for _, ref := range sqltext.ColumnRefs(in.SQL) {
			schema, ok := in.Context.Schema[ref.Table]
			if !ok {
				continue
			}
			if !containsColumn(schema.Columns, ref.Column) {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("Column '%s' may not exist in table '%s'", ref.Column, ref.Table))
				res.Suggestions = append(res.Suggestions,
					fmt.Sprintf("Verify column '%s' exists in '%s'", ref.Column, ref.Table))
			}
		}
	}

	return res, nil
}

func listTables(ctx context.Context, in Input) (map[string]struct{}, error) {
	rows, err := in.Driver.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables[strings.ToLower(name)] = struct{}{}
	}
	return tables, rows.Err()
}

func containsColumn(columns []string, column string) bool {
	for _, c := range columns {
		if strings.EqualFold(c, column) {
			return true
		}
	}
	return false
}
