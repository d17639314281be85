package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <rules-file>",
		Short: "Compile a rule file and print the parsed rules",
		Long: `Compile every rule of a rule file without evaluating anything.

Each rule is printed with its fully parenthesized parsed form, which shows
how precedence and associativity were applied. The first rule that does not
compile is reported with its index and offset.`,
		Example: `  rulecheck validate rules.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, logger, err := loadEngine(global, args[0])
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "data keys: %v\n", engine.DataKeys())
			for i, rule := range engine.Rules() {
				fmt.Fprintf(out, "rule %d: %s\n  parsed: %s\n", i, rule.Source, rule.Root)
			}
			fmt.Fprintf(out, "%d rules OK\n", engine.Len())
			return nil
		},
	}
}
