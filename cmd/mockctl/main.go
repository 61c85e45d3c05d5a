package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mockctl",
	Short: "Drive a running translation API mock server",
	Long: `mockctl talks to a running mock server over HTTP.

Examples:
  # Check the server answers authenticated requests
  mockctl smoke --url http://localhost:3000

  # Translate a document inside a session that fails once
  mockctl document report.txt --target-lang DE --session s1 --doc-failure 1`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(smokeCmd)
	rootCmd.AddCommand(documentCmd)

	rootCmd.PersistentFlags().String("url", "http://localhost:3000", "Mock server base URL")
	rootCmd.PersistentFlags().String("auth-key", "mockctl", "Authentication key sent with every request")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP client timeout (0 disables)")
}
