package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ternarybob/banner"

	"github.com/ternarybob/gplaces/internal/common"
)

func newVersionCmd() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if full {
				banner.PrintSimple("gplaces", common.GetVersion())
				fmt.Fprintf(cmd.OutOrStdout(), "gplaces version %s\n", common.GetFullVersion())
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "gplaces version %s\n", common.GetVersion())
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "Print the banner and build details")

	return cmd
}
