package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aescanero/dago-node-rules/internal/batch"
	"github.com/aescanero/dago-node-rules/internal/eval/cel"
	"github.com/spf13/cobra"
)

// runOptions holds options for the run command.
type runOptions struct {
	template string
	filter   string
	quiet    bool
}

func newRunCmd(global *globalOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run <rules-file> <dataset-file>",
		Short: "Check every row of a dataset against a rule file",
		Long: `Check every row of a dataset against a rule file.

The dataset holds one JSON object per line mapping data keys to numbers;
fields that are not data keys are ignored.
Use "-" to read it from stdin. One result line is printed per checked row;
rows that cannot be decoded or checked are logged and skipped.`,
		Example: `  # Check a dataset
  rulecheck run rules.yaml rows.jsonl

  # Custom result line
  rulecheck run rules.yaml rows.jsonl --template '{{line}}: {{matched}}/{{total}}'

  # Only check rows matching a CEL filter
  rulecheck run rules.yaml rows.jsonl --filter 'row.k3 > 0.0'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, global, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&opts.template, "template", "", "Handlebars template for result lines")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "CEL expression over row; rows it rejects are skipped")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the summary")

	return cmd
}

func runRun(cmd *cobra.Command, global *globalOptions, opts *runOptions, rulesFile, datasetFile string) error {
	engine, logger, err := loadEngine(global, rulesFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	filter, err := cel.NewFilter(opts.filter)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	runnerOpts := []batch.Option{batch.WithLogger(logger), batch.WithFilter(filter)}
	if opts.template != "" {
		runnerOpts = append(runnerOpts, batch.WithTemplate(opts.template))
	}
	runner, err := batch.NewRunner(engine, runnerOpts...)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if datasetFile != "-" {
		f, err := os.Open(datasetFile)
		if err != nil {
			return fmt.Errorf("failed to open dataset: %w", err)
		}
		defer f.Close()
		in = f
	}

	summary, err := runner.Run(cmd.Context(), in, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if !opts.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d rows: %d checked, %d filtered, %d failed\n",
			summary.Rows, summary.Evaluated, summary.Filtered, summary.Failed)
	}
	return nil
}
