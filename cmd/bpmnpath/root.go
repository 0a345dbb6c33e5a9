package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/bpmnpath/internal/cli"
	"github.com/spf13/cobra"
)

var flags cli.Flags

var rootCmd = &cobra.Command{
	Use:   "bpmnpath",
	Short: "bpmnpath finds paths between the nodes of a BPMN process",
	Long: `bpmnpath loads a BPMN 2.0 process definition from a Camunda engine or a
local directory and answers which sequence of flow nodes leads from one node to another.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// The context is cancelled on SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.ConfigPath, "config", "c", "", "Config file (default ./bpmnpath.yaml when present)")
	pf.StringVar(&flags.URL, "url", "", "Camunda engine-rest base URL")
	pf.StringVar(&flags.Dir, "dir", "", "Directory of BPMN files (overrides --url)")
	pf.StringVarP(&flags.Key, "key", "k", "", "Process definition key")
	pf.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.Redis, "redis", "", "Redis address used to cache definitions")
}

// newRuntime loads config and builds an engine for a command.
func newRuntime(cmd *cobra.Command) (*cli.Runtime, error) {
	cfg, err := cli.LoadConfig(flags)
	if err != nil {
		return nil, err
	}
	return cli.NewRuntime(cmd.Context(), cfg, cmd.ErrOrStderr())
}
