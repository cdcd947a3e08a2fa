package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/queryguard/queryguard/pkg/config"
	"github.com/queryguard/queryguard/pkg/optimizer"
	"github.com/queryguard/queryguard/pkg/pipeline"
	"github.com/queryguard/queryguard/pkg/validator"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <sql-file|sql>",
	Short: "Validate a SQL statement and optimize it when valid",
	Long: `Run executes the full pipeline: the statement is validated first, and
only a statement that passes validation is optimized. Invalid statements
report their findings and skip optimization entirely.

The argument is a path to a SQL file, or the statement itself.`,
	Args: cobra.ExactArgs(1),
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("output", "o", "text", "output format (text, json, yaml)")
	runCmd.Flags().String("context", "", "path to a query context file (JSON)")
	runCmd.Flags().String("db", "", "path to a SQLite database used as a validation oracle")
	runCmd.Flags().String("settings", "", "path to a pipeline settings file (YAML or JSON)")
	runCmd.Flags().Int("default-limit", 0, "row limit injected into unbounded SELECTs (default 100)")
	runCmd.Flags().Bool("fail-on-error", false, "exit with non-zero code if errors are found")
	runCmd.Flags().Bool("fail-on-warning", false, "exit with non-zero code if warnings are found")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	log := commandLogger()

	statement, err := readStatement(args[0])
	if err != nil {
		return err
	}

	cfg := config.Default()
	if settingsPath, _ := cmd.Flags().GetString("settings"); settingsPath != "" {
		cfg, err = config.LoadFromFile(settingsPath)
		if err != nil {
			return err
		}
	}

	contextPath, _ := cmd.Flags().GetString("context")
	defaultLimit, _ := cmd.Flags().GetInt("default-limit")
	if defaultLimit == 0 {
		defaultLimit = cfg.DefaultLimit
	}
	qctx, err := loadQueryContext(contextPath, defaultLimit)
	if err != nil {
		return err
	}

	validatorOpts := []validator.Option{
		validator.WithLogger(log),
		validator.WithDisabledChecks(cfg.CheckKinds()...),
	}
	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		db, err := openDatabase(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		validatorOpts = append(validatorOpts, validator.WithDriver(db))
	}

	p := pipeline.New(
		pipeline.WithLogger(log),
		pipeline.WithValidator(validator.New(validatorOpts...)),
		pipeline.WithOptimizer(optimizer.New(
			optimizer.WithLogger(log),
			optimizer.WithDisabledRules(cfg.RuleKinds()...),
		)),
		pipeline.WithCacheSize(cfg.Cache.MaxEntries, cfg.Cache.TTL()),
	)

	result, err := p.Process(context.Background(), statement, qctx)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("output")
	if format == "text" {
		printValidationText(result.Validation)
		if result.Optimization != nil {
			fmt.Println()
			printOptimizationText(result.Optimization)
		}
	} else if err := outputStructured(result, format); err != nil {
		return err
	}

	if failOnError, _ := cmd.Flags().GetBool("fail-on-error"); failOnError && len(result.Validation.Errors) > 0 {
		os.Exit(1)
	}
	if failOnWarning, _ := cmd.Flags().GetBool("fail-on-warning"); failOnWarning && len(result.Validation.Warnings) > 0 {
		os.Exit(1)
	}
	return nil
}
