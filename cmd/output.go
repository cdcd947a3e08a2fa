package cmd

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/queryguard/queryguard/pkg/types"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	warnLabel    = color.New(color.FgYellow, color.Bold).SprintFunc()
	okLabel      = color.New(color.FgGreen, color.Bold).SprintFunc()
	suggestLabel = color.New(color.FgCyan).SprintFunc()
)

// readStatement resolves the positional argument: "-" reads stdin, otherwise
// the contents of the file it names, or the argument itself when no such
// file exists.
func readStatement(arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(err, "failed to read SQL from stdin")
		}
		return strings.TrimSpace(string(data)), nil
	}
	data, err := os.ReadFile(arg)
	if err == nil {
		return strings.TrimSpace(string(data)), nil
	}
	if os.IsNotExist(err) && strings.ContainsAny(arg, " \t\n") {
		return strings.TrimSpace(arg), nil
	}
	return "", errors.Wrapf(err, "failed to read SQL file: %s", arg)
}

// loadQueryContext parses an optional QueryContext JSON file. An empty path
// yields nil. A positive defaultLimit overrides the file's value.
func loadQueryContext(path string, defaultLimit int) (*types.QueryContext, error) {
	var qctx *types.QueryContext
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read context file: %s", path)
		}
		qctx = &types.QueryContext{}
		if err := json.Unmarshal(data, qctx); err != nil {
			return nil, errors.Wrapf(err, "failed to parse context file: %s", path)
		}
	}
	if defaultLimit > 0 {
		if qctx == nil {
			qctx = &types.QueryContext{}
		}
		qctx.DefaultLimit = defaultLimit
	}
	return qctx, nil
}

// openDatabase opens the SQLite file used as the validation oracle.
func openDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", path)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "failed to connect to database: %s", path)
	}
	return db, nil
}

// outputStructured writes v to stdout as indented JSON or YAML.
func outputStructured(v any, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(os.Stdout)
		defer encoder.Close()
		return encoder.Encode(v)
	default:
		return errors.Errorf("unsupported output format: %s", format)
	}
}

func printValidationText(result *types.ValidationResult) {
	if result.IsValid {
		fmt.Printf("%s %s\n", okLabel("VALID"), result.Summary)
	} else {
		fmt.Printf("%s %s\n", errorLabel("INVALID"), result.Summary)
	}
	fmt.Printf("Risk level: %s\n", riskColor(result.RiskLevel))

	for _, msg := range result.Errors {
		fmt.Printf("  %s %s\n", errorLabel("ERROR"), msg)
	}
	for _, msg := range result.Warnings {
		fmt.Printf("  %s %s\n", warnLabel("WARNING"), msg)
	}
	for _, msg := range result.Suggestions {
		fmt.Printf("  %s %s\n", suggestLabel("SUGGESTION"), msg)
	}

	printIssues("Security issues", result.SecurityIssues)
	printIssues("Syntax issues", result.SyntaxIssues)
	printIssues("Performance issues", result.PerformanceIssues)
}

func printIssues(header string, issues []types.Issue) {
	if len(issues) == 0 {
		return
	}
	fmt.Printf("%s:\n", header)
	for _, issue := range issues {
		detail := issue.Keyword
		if detail == "" {
			detail = issue.Pattern
		}
		if detail == "" {
			detail = issue.Detail
		}
		fmt.Printf("  [%s] %s: %s\n", strings.ToUpper(string(issue.Severity)), issue.Type, detail)
	}
}

func printOptimizationText(result *types.OptimizationResult) {
	if !result.IsOptimized {
		fmt.Println("No optimizations applied.")
		fmt.Println(result.OptimizedQuery)
		return
	}
	fmt.Printf("%s %d optimization(s), improvement score %.1f\n",
		okLabel("OPTIMIZED"), result.OptimizationCount, result.ImprovementScore)
	for _, name := range result.OptimizationsApplied {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Println()
	fmt.Println(result.OptimizedQuery)
}

func riskColor(level types.RiskLevel) string {
	switch level {
	case types.RiskHigh:
		return errorLabel(string(level))
	case types.RiskMedium:
		return warnLabel(string(level))
	default:
		return okLabel(string(level))
	}
}
