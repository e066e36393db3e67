package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/cpukit/internal/numtext"
	"github.com/joshuapare/cpukit/template"
)

func init() {
	rootCmd.AddCommand(newMsrsCmd())
}

func newMsrsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "msrs <template-file>",
		Short: "List the MSR addresses a template modifies",
		Long: `The msrs command prints the address of every MSR modifier in the
template, one per line, in document order. Consumers use this list to
know which MSRs must be saved and restored around the template.

Example:
  cputctl msrs t2s.json
  cputctl msrs --json t2s.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMsrs(args[0])
		},
	}
}

func runMsrs(path string) error {
	t, err := template.LoadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	addresses := template.MSRIndexList(t)

	if jsonOut {
		formatted := make([]string, 0, len(addresses))
		for _, addr := range addresses {
			formatted = append(formatted, numtext.FormatU32(addr))
		}
		return printJSON(formatted)
	}

	for _, addr := range addresses {
		printInfo("%s\n", numtext.FormatU32(addr))
	}
	return nil
}
