package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/minimaxviz/internal/cli"
	"github.com/aretw0/minimaxviz/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "minimaxviz",
	Short: "Step through minimax on game graphs",
	Long: `minimaxviz runs minimax over a directed graph of game states one micro-step
at a time, so every queued, expanded and scored node can be followed.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "YAML settings file")
	flags.StringP("algorithm", "a", "", "Traversal algorithm: regular or cycleDetection")
	flags.StringP("graph", "g", "", "Graph to open")
	flags.String("graphs-dir", "", "Directory of YAML/JSON graphs (default: embedded samples)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-format", "", "Log format: text or json")
}

// loadApp resolves settings (defaults, file, environment, then flags) and
// builds the application.
func loadApp(cmd *cobra.Command) (*cli.App, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	overrides := map[string]*string{
		"algorithm":    &cfg.Algorithm,
		"graph":        &cfg.Graph,
		"graphs-dir":   &cfg.GraphsDir,
		"log-level":    &cfg.LogLevel,
		"log-format":   &cfg.LogFormat,
	}
	for name, dst := range overrides {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	if cmd.Flags().Lookup("addr") != nil && cmd.Flags().Changed("addr") {
		cfg.Addr, _ = cmd.Flags().GetString("addr")
	}
	if cmd.Flags().Lookup("interval") != nil && cmd.Flags().Changed("interval") {
		cfg.AutoplayInterval, _ = cmd.Flags().GetDuration("interval")
	}

	return cli.NewApp(cfg, cmd.InOrStdin(), cmd.OutOrStdout())
}
