package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/bpmnpath"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bpmnpath",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bpmnpath version %s\n", strings.TrimSpace(bpmnpath.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
