package main

import (
	"fmt"
	"os"

	"github.com/aretw0/bpmnpath/internal/cli"
	"github.com/aretw0/bpmnpath/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <start> <end>",
	Short: "Print the shortest path between two flow nodes",
	Long: `Fetches the process definition and prints the node ids on the shortest
sequence-flow path from <start> to <end>. Exits 1 when no path exists.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(2)(cmd, args); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), tui.MsgError)
			return err
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		report, _ := cmd.Flags().GetBool("report")

		rt, err := newRuntime(cmd)
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), tui.MsgError)
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			os.Exit(1)
		}
		defer rt.Close()

		opts := cli.FindOptions{
			Start:  args[0],
			End:    args[1],
			Report: report,
		}
		if report && tui.IsTerminal(os.Stdout) {
			opts.Render = tui.NewRenderer()
		}

		found, err := cli.RunFind(cmd.Context(), rt, opts, cmd.OutOrStdout())
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), tui.MsgError)
			rt.Logger.Error("path search failed", "err", err)
			rt.Close()
			os.Exit(1)
		}
		if !found {
			rt.Close()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().BoolP("report", "r", false, "Print a markdown report with node names and types")
}
