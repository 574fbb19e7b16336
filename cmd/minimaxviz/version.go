package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/minimaxviz"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of minimaxviz",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "minimaxviz version %s\n", strings.TrimSpace(minimaxviz.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
