package main

import (
	"fmt"

	"github.com/aretw0/dropzone"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dropzone",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dropzone version %s\n", dropzone.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
