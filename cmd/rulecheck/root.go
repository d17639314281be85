package main

import (
	"github.com/aescanero/dago-node-rules/internal/logging"
	"github.com/aescanero/dago-node-rules/internal/rules"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version information (set at build time).
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// globalOptions holds the persistent flags shared by all subcommands.
type globalOptions struct {
	logLevel string
	maxDepth int
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "rulecheck",
		Short: "Compile rule files and check datasets against them",
		Long: `Rulecheck compiles rule expressions such as "{0} + {1} > 100 && !{2}"
and evaluates them against data rows.

A rule file lists the data keys and the rules that reference them by position:

  data_keys: [k1, k2, k3]
  rules:
    - "{0} + {1} > 100"
    - "{2} == 0 || {0} > {1}"

Rule files ending in .yaml or .yml are read as YAML, anything else as JSON.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().IntVar(&opts.maxDepth, "max-depth", 256, "maximum nesting of unary operators and parentheses")

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newValidateCmd(opts))

	return rootCmd
}

// loadEngine builds the logger and compiles the rule file.
func loadEngine(opts *globalOptions, rulesFile string) (*rules.Engine, *zap.Logger, error) {
	logger, err := logging.NewConsole(opts.logLevel)
	if err != nil {
		return nil, nil, err
	}

	rs, err := rules.LoadRuleSet(rulesFile)
	if err != nil {
		return nil, nil, err
	}

	engine, err := rules.NewFromRuleSet(rs,
		rules.WithLogger(logger),
		rules.WithMaxDepth(opts.maxDepth),
	)
	if err != nil {
		return nil, nil, err
	}

	return engine, logger, nil
}
