package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:              "modboard",
	Short:            "modboard is the admin dashboard for the Discord moderation bot.",
	SilenceErrors:    true,
	SilenceUsage:     true,
	PersistentPreRun: recordCommandExecutionContext,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd, refreshCmd, sendMessageCmd, hashPasswordCmd, versionCmd)
}
