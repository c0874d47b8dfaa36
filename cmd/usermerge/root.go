package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/usermerge/internal/config"
	"github.com/jonathan/usermerge/internal/extract"
	"github.com/jonathan/usermerge/internal/logging"
	"github.com/jonathan/usermerge/internal/observability"
	"github.com/jonathan/usermerge/internal/pipeline"
)

// app carries state resolved once per invocation and shared by every command.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

// mergeFlags holds the raw flag values of the root command.
type mergeFlags struct {
	configPath  string
	inputs      []string
	output      string
	nameColumn  string
	emailColumn string
	logLevel    string
	logFormat   string
	pretty      bool
	verbose     bool
}

func newRootCmd(a *app) *cobra.Command {
	flags := &mergeFlags{}

	cmd := &cobra.Command{
		Use:   "usermerge",
		Short: "Merge and deduplicate user CSV files into a JSON user list",
		Long: `Reads one or more CSV files with full_name and email columns, removes duplicate
(first_name, last_name, email) records across all of them, and writes a single JSON
document with user_list_size and user_list.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
		Example:       `  usermerge -i users1.csv -i users2.csv -o results.json`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.Setup(cmd.OutOrStdout(), cfg.LogLevel, cfg.LogFormat)
			if flags.configPath != "" {
				a.logger.Debug("Loaded config", "path", flags.configPath)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMerge(cmd, a)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default debug, or USERMERGE_LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: text or json (default text, or USERMERGE_LOG_FORMAT)")

	cmd.Flags().StringArrayVarP(&flags.inputs, "input_file_path", "i", nil, "Specify an input file path (csv). May be repeated to merge multiple files")
	cmd.Flags().StringVarP(&flags.output, "output_file_path", "o", "", "Specify output file path - Ex. 'results.json'")
	cmd.Flags().StringVar(&flags.nameColumn, "name-column", "", "CSV column holding the full name (default full_name)")
	cmd.Flags().StringVar(&flags.emailColumn, "email-column", "", "CSV column holding the email (default email)")
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "Indent the output JSON document")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Print a summary of the merge")

	cmd.AddCommand(newValidateCmd(a))

	return cmd
}

// resolveConfig merges, in priority order, explicit flags, the config file,
// USERMERGE_* environment variables and built-in defaults.
func resolveConfig(cmd *cobra.Command, flags *mergeFlags) (config.Config, error) {
	var cfg config.Config
	if flags.configPath != "" {
		loaded, err := config.LoadConfig(flags.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Only override if the flag was explicitly set. Subcommands do not
	// carry the merge flags, so Changed reports false for them.
	if cmd.Flags().Changed("input_file_path") {
		cfg.InputPaths = flags.inputs
	}
	if cmd.Flags().Changed("output_file_path") {
		cfg.OutputPath = flags.output
	}
	if cmd.Flags().Changed("name-column") {
		cfg.NameColumn = flags.nameColumn
	}
	if cmd.Flags().Changed("email-column") {
		cfg.EmailColumn = flags.emailColumn
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = flags.logFormat
	}
	if cmd.Flags().Changed("pretty") {
		cfg.Pretty = flags.pretty
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = flags.verbose
	}

	env := config.FromEnv(os.Getenv)
	env = env.MergeWithDefaults(config.Defaults())
	cfg = cfg.MergeWithDefaults(env)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func runMerge(cmd *cobra.Command, a *app) error {
	cfg := a.cfg
	if len(cfg.InputPaths) == 0 {
		return fmt.Errorf(`required flag(s) "input_file_path" not set`)
	}
	if cfg.OutputPath == "" {
		return fmt.Errorf(`required flag(s) "output_file_path" not set`)
	}
	cmd.SilenceUsage = true

	result, err := pipeline.Run(context.Background(), pipeline.Options{
		InputPaths: cfg.InputPaths,
		OutputPath: cfg.OutputPath,
		Pretty:     cfg.Pretty,
		Logger:     a.logger,
		Extractor: &extract.Extractor{
			NameColumn:  cfg.NameColumn,
			EmailColumn: cfg.EmailColumn,
		},
	})
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintMergeSummary(result)
	}

	return nil
}
