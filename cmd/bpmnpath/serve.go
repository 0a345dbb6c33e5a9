package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aretw0/bpmnpath/internal/presentation/tui"
	httpAdapter "github.com/aretw0/bpmnpath/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the path engine in server mode, exposing a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := newRuntime(cmd)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error initializing bpmnpath: %v\n", err)
			os.Exit(1)
		}
		defer rt.Close()

		port := rt.Config.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		opts := []httpAdapter.Option{httpAdapter.WithLogger(rt.Logger)}
		if rt.Config.Server.Metrics {
			opts = append(opts, httpAdapter.WithMetrics(rt.Registry))
		}

		srv := &http.Server{
			Addr:              ":" + strconv.Itoa(port),
			Handler:           httpAdapter.NewHandler(rt.Engine, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(cmd.OutOrStdout())
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			rt.Logger.Info("Starting bpmnpath server", "addr", srv.Addr, "process_key", rt.Config.ProcessKey)
			serverErrors <- srv.ListenAndServe()
		}()

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			rt.Logger.Error("Server error", "err", err)
			rt.Close()
			os.Exit(1)

		case <-cmd.Context().Done():
			rt.Logger.Info("Start shutdown")

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				rt.Logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					rt.Logger.Error("Error killing server", "err", err)
				}
			}
			rt.Logger.Info("bpmnpath server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides server.port)")
}
