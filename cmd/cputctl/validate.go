package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/joshuapare/cpukit/template"
)

// validationResult is the --json output for the validate command.
type validationResult struct {
	File  string `json:"file"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func init() {
	rootCmd.AddCommand(newValidateCmd())
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <template-file>",
		Short: "Validate a CPU template file against the strict schema",
		Long: `The validate command decodes a template file and reports whether it
conforms to the schema. Validation is strict: unknown fields at any
nesting level, malformed numbers, bad register names, and invalid
bitmaps are all rejected with the offending text.

JSON, JSONC (comments and trailing commas), and YAML files are accepted.

Example:
  cputctl validate t2-custom.json
  cputctl validate --json workload.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func runValidate(path string) error {
	t, err := template.LoadFile(path)

	if jsonOut {
		result := validationResult{File: path, Valid: err == nil}
		if err != nil {
			result.Error = err.Error()
		}
		if printErr := printJSON(result); printErr != nil {
			return printErr
		}
		if err != nil {
			return fmt.Errorf("%s is not a valid CPU template", path)
		}
		return nil
	}

	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("template decoded",
		"file", path,
		"cpuid_modifiers", len(t.CpuidModifiers),
		"msr_modifiers", len(t.MsrModifiers))
	printInfo("%s is a valid CPU template (%d CPUID modifiers, %d MSR modifiers)\n",
		path, len(t.CpuidModifiers), len(t.MsrModifiers))
	return nil
}
