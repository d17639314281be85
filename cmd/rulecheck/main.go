// Rulecheck compiles rule files and checks datasets against them.
//
// Usage:
//
//	# Check every row of a dataset
//	rulecheck run rules.yaml rows.jsonl
//
//	# Read rows from stdin and only check some of them
//	cat rows.jsonl | rulecheck run rules.yaml - --filter 'row.k1 > 0.0'
//
//	# Compile a rule file and print the parsed rules
//	rulecheck validate rules.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
