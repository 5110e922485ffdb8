// Dvrip-cli is a command-line client for DVRIP/Sofia DVR and NVR
// surveillance recorders.
//
// It provides device discovery, login, channel and system information
// queries, still-picture capture, and live alarm monitoring. This tool
// communicates with devices over the raw DVRIP TCP protocol, not HTTP.
//
// Usage:
//
//	dvrip-cli [command] [flags]
//
// See 'dvrip-cli --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dvrip-go/dvrip/internal/logging"
	"github.com/dvrip-go/dvrip/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dvrip-cli",
	Short: "DVRIP/Sofia DVR and NVR command-line client",
	Long: `A command-line client for DVRIP/Sofia DVR and NVR surveillance recorders.

Provides device discovery, login, channel and system information queries,
still-picture capture, and live alarm monitoring over the raw DVRIP TCP
protocol.`,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.InitializeFromEnv()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dvrip-cli %s\n", version.Full())
	},
}
