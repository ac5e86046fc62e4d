// Command escrowd runs the timed escrow application as an ABCI server.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/timedescrow"
	"github.com/spf13/cobra"
)

const flagHome = "home"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "escrowd",
		Short:         "Timed escrow ABCI application",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".escrowd")
	root.PersistentFlags().String(flagHome, defaultHome, "directory to store files under")

	root.AddCommand(
		initCmd(),
		startCmd(),
		keysCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the app version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), timedescrow.Version)
			},
		},
	)
	return root
}

func homeDir(cmd *cobra.Command) string {
	home, err := cmd.Flags().GetString(flagHome)
	if err != nil || home == "" {
		return filepath.Join(os.ExpandEnv("$HOME"), ".escrowd")
	}
	return home
}
