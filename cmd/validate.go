package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/queryguard/queryguard/pkg/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] <sql-file|sql>",
	Short: "Validate a SQL statement without executing it",
	Long: `Validate runs the security, syntax, structure, performance, schema,
logic, and best-practice checks against a statement and reports every
finding with a risk classification.

The argument is a path to a SQL file, or the statement itself.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("output", "o", "text", "output format (text, json, yaml)")
	validateCmd.Flags().String("context", "", "path to a query context file (JSON)")
	validateCmd.Flags().String("db", "", "path to a SQLite database used as a validation oracle")
	validateCmd.Flags().Bool("fail-on-error", false, "exit with non-zero code if errors are found")
	validateCmd.Flags().Bool("fail-on-warning", false, "exit with non-zero code if warnings are found")
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := commandLogger()

	statement, err := readStatement(args[0])
	if err != nil {
		return err
	}

	contextPath, _ := cmd.Flags().GetString("context")
	qctx, err := loadQueryContext(contextPath, 0)
	if err != nil {
		return err
	}

	opts := []validator.Option{validator.WithLogger(log)}
	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		db, err := openDatabase(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		opts = append(opts, validator.WithDriver(db))
	}

	result := validator.New(opts...).Validate(context.Background(), statement, qctx)

	format, _ := cmd.Flags().GetString("output")
	if format == "text" {
		printValidationText(result)
	} else if err := outputStructured(result, format); err != nil {
		return err
	}

	if failOnError, _ := cmd.Flags().GetBool("fail-on-error"); failOnError && len(result.Errors) > 0 {
		os.Exit(1)
	}
	if failOnWarning, _ := cmd.Flags().GetBool("fail-on-warning"); failOnWarning && len(result.Warnings) > 0 {
		os.Exit(1)
	}
	return nil
}
