package cmd

import (
	"github.com/spf13/cobra"

	"github.com/queryguard/queryguard/pkg/optimizer"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [flags] <sql-file|sql>",
	Short: "Rewrite a SQL statement with conservative optimizations",
	Long: `Optimize applies the text-level rewrite rules to a statement and
prints the optimized form together with the list of rules that fired.

The argument is a path to a SQL file, or the statement itself.`,
	Args: cobra.ExactArgs(1),
	RunE: runOptimize,
}

func init() {
	rootCmd.AddCommand(optimizeCmd)

	optimizeCmd.Flags().StringP("output", "o", "text", "output format (text, json, yaml)")
	optimizeCmd.Flags().String("context", "", "path to a query context file (JSON)")
	optimizeCmd.Flags().Int("default-limit", 0, "row limit injected into unbounded SELECTs (default 100)")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	log := commandLogger()

	statement, err := readStatement(args[0])
	if err != nil {
		return err
	}

	contextPath, _ := cmd.Flags().GetString("context")
	defaultLimit, _ := cmd.Flags().GetInt("default-limit")
	qctx, err := loadQueryContext(contextPath, defaultLimit)
	if err != nil {
		return err
	}

	result := optimizer.New(optimizer.WithLogger(log)).Optimize(statement, qctx)

	format, _ := cmd.Flags().GetString("output")
	if format == "text" {
		printOptimizationText(result)
		return nil
	}
	return outputStructured(result, format)
}
