package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the cputctl version",
		Run: func(cmd *cobra.Command, args []string) {
			printInfo("cputctl %s\n", rootCmd.Version)
		},
	})
}
