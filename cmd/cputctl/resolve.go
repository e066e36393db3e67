package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/cpukit/hostcpu"
	"github.com/joshuapare/cpukit/pkg/types"
	"github.com/joshuapare/cpukit/template"
)

var (
	resolveStaticName string
	resolveFile       string
)

func init() {
	cmd := newResolveCmd()
	cmd.Flags().StringVarP(&resolveStaticName, "template", "t", "", "Built-in template name (C3, T2, T2S, T2CL, T2A)")
	cmd.Flags().StringVarP(&resolveFile, "file", "f", "", "Custom template file")
	cmd.MarkFlagsMutuallyExclusive("template", "file")
	rootCmd.AddCommand(cmd)
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [--template NAME | --file FILE]",
		Short: "Resolve a template selection against this host's CPU",
		Long: `The resolve command runs the same resolution a hypervisor performs at
machine construction: it turns a template selection into a concrete
template, gating built-in templates on the host CPU vendor (and, for
T2CL, on the host being Cascade Lake or newer).

With no flags it resolves "no selection" and prints an empty template.
The command fails on a gated host exactly as machine construction would.

Example:
  cputctl resolve --template T2CL
  cputctl resolve --file custom.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve()
		},
	}
}

func runResolve() error {
	selector, err := buildSelector()
	if err != nil {
		return err
	}

	host := hostcpu.NewHost()
	resolved, err := template.Resolve(selector, host, host)
	if err != nil {
		return err
	}
	slog.Debug("template resolved", "owned", resolved.Owned)

	data, err := template.Marshal(resolved.Template)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(os.Stdout, "%s\n", data)
	return err
}

func buildSelector() (template.Selector, error) {
	switch {
	case resolveStaticName != "":
		id, err := types.ParseStaticTemplate(resolveStaticName)
		if err != nil {
			return template.Selector{}, err
		}
		return template.StaticSelector(id), nil
	case resolveFile != "":
		custom, err := template.LoadFile(resolveFile)
		if err != nil {
			return template.Selector{}, fmt.Errorf("%s: %w", resolveFile, err)
		}
		return template.CustomSelector(custom), nil
	default:
		return template.NoSelector(), nil
	}
}
