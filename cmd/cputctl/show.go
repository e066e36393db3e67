package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/cpukit/pkg/types"
	"github.com/joshuapare/cpukit/template"
	"github.com/joshuapare/cpukit/template/static"
)

func init() {
	rootCmd.AddCommand(newShowCmd())
}

// staticTemplateInfo is the --json element for show.
type staticTemplateInfo struct {
	Name           string `json:"name"`
	RequiredVendor string `json:"required_vendor,omitempty"`
	Resolvable     bool   `json:"resolvable"`
	Note           string `json:"note,omitempty"`
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [template-name]",
		Short: "List built-in templates or print one",
		Long: `Without arguments, show lists every built-in template name with the
host requirement it is gated on. With a name, it prints that template's
document without any host gating, for inspection on any machine.

Example:
  cputctl show
  cputctl show T2CL`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runShowList()
			}
			return runShowTemplate(args[0])
		},
	}
}

func runShowList() error {
	infos := make([]staticTemplateInfo, 0, len(types.StaticTemplates()))
	for _, id := range types.StaticTemplates() {
		info := staticTemplateInfo{
			Name:           id.String(),
			RequiredVendor: template.RequiredVendor(id),
			Resolvable:     id != types.StaticNone,
		}
		switch id {
		case types.StaticT2CL:
			info.Note = "requires Cascade Lake or newer"
		case types.StaticNone:
			info.Note = "legacy sentinel, never resolves"
		}
		infos = append(infos, info)
	}

	if jsonOut {
		return printJSON(infos)
	}
	for _, info := range infos {
		line := info.Name
		if info.RequiredVendor != "" {
			line += "\t" + info.RequiredVendor
		}
		if info.Note != "" {
			line += "\t(" + info.Note + ")"
		}
		printInfo("%s\n", line)
	}
	return nil
}

func runShowTemplate(name string) error {
	id, err := types.ParseStaticTemplate(name)
	if err != nil {
		return err
	}

	var t *types.CustomTemplate
	switch id {
	case types.StaticC3:
		t = static.C3()
	case types.StaticT2:
		t = static.T2()
	case types.StaticT2S:
		t = static.T2S()
	case types.StaticT2CL:
		t = static.T2CL()
	case types.StaticT2A:
		t = static.T2A()
	case types.StaticNone:
		return types.NewInvalidStaticTemplateError(id)
	}

	data, err := template.Marshal(t)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(os.Stdout, "%s\n", data)
	return err
}
