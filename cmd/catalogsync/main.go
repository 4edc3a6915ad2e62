// Package main is the entry point for the catalogsync CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogsync",
		Short: "Catalog reconciliation worker",
		Long:  `Catalogsync keeps a human-edited record store, a relational product catalog, and a vector similarity index in agreement.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(syncCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}
