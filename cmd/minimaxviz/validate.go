package main

import (
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [graph...]",
	Short: "Check graphs for consistency",
	Long:  `Loads each named graph (all known graphs by default) and reports terminal nodes without a score and other malformed input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		return app.Validate(cmd.Context(), args)
	},
}

var graphsCmd = &cobra.Command{
	Use:   "graphs",
	Short: "List the known graphs",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		return app.Graphs(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(graphsCmd)
}
