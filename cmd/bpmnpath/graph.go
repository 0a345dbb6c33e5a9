package main

import (
	"fmt"
	"os"

	"github.com/aretw0/bpmnpath/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the process graph visualization",
	Long:  `Loads the process definition and outputs a Mermaid diagram (graph LR), optionally highlighting the path between --from and --to.`,
	Run: func(cmd *cobra.Command, args []string) {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		format, _ := cmd.Flags().GetString("format")

		rt, err := newRuntime(cmd)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error initializing bpmnpath: %v\n", err)
			os.Exit(1)
		}
		defer rt.Close()

		if err := cli.RunGraph(cmd.Context(), rt, "", from, to, format, cmd.OutOrStdout()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error inspecting graph: %v\n", err)
			rt.Close()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("from", "", "Highlight the path starting at this node")
	graphCmd.Flags().String("to", "", "Highlight the path ending at this node")
	graphCmd.Flags().String("format", "mermaid", "Output format: mermaid or json")
}
