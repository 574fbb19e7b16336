package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/minimaxviz/internal/cli"
	"github.com/aretw0/minimaxviz/pkg/runner"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Step through a traversal",
	Long: `Starts a traversal of the configured graph. On a terminal this opens the
full-screen stepper; otherwise commands (step, continue, restart, quit) are
read line by line from stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		headless, _ := cmd.Flags().GetBool("headless")
		jsonMode, _ := cmd.Flags().GetBool("json")
		snapshots, _ := cmd.Flags().GetBool("snapshots")
		autoplay, _ := cmd.Flags().GetBool("autoplay")

		signals := runner.NewSignalManager(cmd.Context())
		defer signals.Stop()

		return app.Run(signals.Context(), cli.RunOptions{
			Interactive: term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())),
			Headless:    headless,
			JSON:        jsonMode,
			Snapshots:   snapshots,
			Autoplay:    autoplay,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run to the end without prompts")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().Bool("snapshots", false, "With --json, include the full state in every frame")
	runCmd.Flags().Bool("autoplay", false, "Step automatically at the autoplay interval")
	runCmd.Flags().Duration("interval", 0, "Autoplay interval (default from config)")

	// Make 'run' the default if no command is provided.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
