package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/cpukit/template"
)

var fmtWrite bool

func init() {
	cmd := newFmtCmd()
	cmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Rewrite the file in place instead of printing")
	rootCmd.AddCommand(cmd)
}

func newFmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <template-file>",
		Short: "Canonicalize a CPU template file",
		Long: `The fmt command rewrites a template into canonical form: numbers as
0x-prefixed lowercase hex, bitmaps at their fixed context width (32
characters for CPUID registers, 64 for MSRs), stable field order.

The input may be JSON, JSONC, or YAML; the output is always JSON, so fmt
also converts between formats.

Example:
  cputctl fmt sloppy.yaml > canonical.json
  cputctl fmt -w template.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(args[0])
		},
	}
}

func runFmt(path string) error {
	t, err := template.LoadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if fmtWrite {
		return template.SaveFile(path, t)
	}

	data, err := template.Marshal(t)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(os.Stdout, "%s\n", data)
	return err
}
