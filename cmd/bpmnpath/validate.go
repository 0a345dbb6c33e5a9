package main

import (
	"fmt"
	"os"

	"github.com/aretw0/bpmnpath/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the process graph for consistency",
	Long:  `Crawls the process from its start events and reports dangling flows or unreachable nodes.`,
	Run: func(cmd *cobra.Command, args []string) {
		watch, _ := cmd.Flags().GetBool("watch")

		rt, err := newRuntime(cmd)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error initializing bpmnpath: %v\n", err)
			os.Exit(1)
		}
		defer rt.Close()

		if watch {
			if err := cli.RunWatch(cmd.Context(), rt, cmd.OutOrStdout()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Watch failed: %v\n", err)
				rt.Close()
				os.Exit(1)
			}
			return
		}

		if err := cli.RunValidate(cmd.Context(), rt, ""); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Validation failed: %v\n", err)
			rt.Close()
			os.Exit(1)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Process is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolP("watch", "w", false, "Re-validate whenever a definition file changes (requires --dir)")
}
