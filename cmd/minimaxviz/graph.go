package main

import (
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the graph visualization",
	Long: `Outputs the configured graph as a Mermaid diagram (graph TD), a Graphviz
digraph or JSON. With --solved the drawing is coloured by the final verdicts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		solved, _ := cmd.Flags().GetBool("solved")
		return app.Export(cmd.Context(), format, solved)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("format", "f", "mermaid", "Output format: mermaid, dot or json")
	graphCmd.Flags().Bool("solved", false, "Colour nodes by the finished traversal")
}
