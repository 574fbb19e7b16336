package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/minimaxviz/pkg/runner"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves traversal sessions over a JSON API, with step diffs streamed as
server-sent events and Prometheus metrics at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		signals := runner.NewSignalManager(cmd.Context())
		defer signals.Stop()
		return app.Serve(signals.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default from config, :8080)")
}
