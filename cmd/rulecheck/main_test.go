package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRules = `data_keys: [k1, k2, k3]
rules:
  - "{0} + {1} > 100"
  - "{2} == 0 || {0} > {1}"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunCommand(t *testing.T) {
	rulesFile := writeFile(t, "rules.yaml", testRules)
	dataset := writeFile(t, "rows.jsonl", `{"k1": 60, "k2": 50, "k3": 1}
{"k1": 1, "k2": 2, "k3": 0}
`)

	stdout, stderr, err := execute(t, "", "run", rulesFile, dataset, "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "rule engine result: [true, true]\nrule engine result: [false, true]\n", stdout)
	assert.Contains(t, stderr, "2 rows: 2 checked, 0 filtered, 0 failed")
}

func TestRunCommandStdinAndFilter(t *testing.T) {
	rulesFile := writeFile(t, "rules.yaml", testRules)

	stdout, _, err := execute(t, `{"k1": 60, "k2": 50, "k3": 1}
{"k1": 1, "k2": 2, "k3": 0}
`, "run", rulesFile, "-", "--filter", "row.k3 == 0.0", "--template", "{{line}}: {{matched}}/{{total}}", "-q")
	require.NoError(t, err)
	assert.Equal(t, "2: 1/2\n", stdout)
}

func TestRunCommandErrors(t *testing.T) {
	rulesFile := writeFile(t, "rules.yaml", testRules)
	badRules := writeFile(t, "bad.json", `{"data_keys": ["a"], "rules": ["{0} >"]}`)

	_, _, err := execute(t, "", "run", rulesFile)
	assert.Error(t, err)

	_, _, err = execute(t, "", "run", badRules, "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule 0")

	_, _, err = execute(t, "", "run", rulesFile, "-", "--filter", "row.k1 >")
	assert.Error(t, err)

	_, _, err = execute(t, "", "run", rulesFile, filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)

	_, _, err = execute(t, "", "run", rulesFile, "-", "--log-level", "loud")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	rulesFile := writeFile(t, "rules.yaml", testRules)

	stdout, _, err := execute(t, "", "validate", rulesFile)
	require.NoError(t, err)
	assert.Contains(t, stdout, "data keys: [k1 k2 k3]")
	assert.Contains(t, stdout, "rule 0: {0} + {1} > 100\n  parsed: (({0} + {1}) > 100)")
	assert.Contains(t, stdout, "rule 1: {2} == 0 || {0} > {1}\n  parsed: (({2} == 0) || ({0} > {1}))")
	assert.Contains(t, stdout, "2 rules OK")
}

func TestValidateCommandMaxDepth(t *testing.T) {
	rulesFile := writeFile(t, "rules.json", `{"data_keys": ["a"], "rules": ["!!!{0}"]}`)

	_, _, err := execute(t, "", "validate", rulesFile, "--max-depth", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested too deeply")

	_, _, err = execute(t, "", "validate", rulesFile, "--max-depth", "3")
	assert.NoError(t, err)
}

func TestHelpListsCommands(t *testing.T) {
	stdout, _, err := execute(t, "", "--help")
	require.NoError(t, err)
	for _, name := range []string{"run", "validate"} {
		assert.Contains(t, stdout, name)
	}
}
