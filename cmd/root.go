package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "club-service",
	Short: "Sports club membership service",
	Long:  "Member portal, staff tooling and batch jobs for the sports club.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
