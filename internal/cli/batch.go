package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cedartree/cedar/internal/configloader"
	"github.com/cedartree/cedar/internal/logging"
	"github.com/cedartree/cedar/pkg/config"
	"github.com/cedartree/cedar/pkg/reporter"
	"github.com/cedartree/cedar/pkg/runner"
)

// ErrSyntaxErrorsFound is returned when parsed files contain syntax errors.
var ErrSyntaxErrorsFound = errors.New("syntax errors found")

type batchFlags struct {
	format    string
	language  string
	ignore    []string
	trees     bool
	noContext bool
	compact   bool
}

func newBatchCommand() *cobra.Command {
	var cfg config.Config
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch [paths...]",
		Short: "Parse many files concurrently and report syntax errors",
		Long:  batchLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, &cfg, flags)
		},
	}

	addBatchFlags(cmd, &cfg, flags)

	return cmd
}

const batchLongDescription = `Parse source files concurrently, one document per file, and report every
syntax error found.

By default, parses all files with known extensions in the current
directory and subdirectories. Specify paths to parse specific files or
directories.

Examples:
  cedar batch                      # Parse current directory
  cedar batch src/                 # Parse a directory
  cedar batch data.json            # Parse a single file
  cedar batch --format json        # Output as JSON for CI
  cedar batch --language json x.txt  # Force a language`

func runBatch(cmd *cobra.Command, args []string, cfg *config.Config, flags *batchFlags) error {
	logger := logging.Default()

	// Map string flags to typed config values.
	cfg.Format = config.OutputFormat(flags.format)
	cfg.Ignore = flags.ignore

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadOpts := configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	}

	loadResult, err := configloader.Load(ctx, loadOpts)
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	if debug, _ := cmd.Flags().GetBool("debug"); !debug && finalCfg.Logging.Level != "" {
		logging.SetLevel(finalCfg.Logging.Level)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	ctx = logging.WithLogger(ctx, logger)
	parseRunner := runner.New(nil)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: finalCfg.Ignore,
		Jobs:         finalCfg.Jobs,
		Language:     flags.language,
		IncludeTrees: flags.trees,
		Config:       finalCfg,
	}

	logger.Debug("starting batch parse",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := parseRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("batch parse failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto" // Default to auto if flag retrieval fails
	}

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrSyntaxErrorsFound
	}

	return nil
}

func addBatchFlags(cmd *cobra.Command, cfg *config.Config, flags *batchFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, sarif, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringVar(&flags.language, "language", "", "force a language table for every file")
	cmd.Flags().BoolVar(&flags.trees, "trees", false, "render each file's syntax tree into the outcome")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
}
