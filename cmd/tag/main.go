// Package main provides the entry point for the tag CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version     = "0.1.0-dev"
	globalPack  string
	globalDebug bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tag",
		Short:         "A tag registry for items, fluids, blocks and block states",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&globalPack, "pack", "p", "", "Pack to operate on (required for data commands)")
	rootCmd.PersistentFlags().BoolVar(&globalDebug, "debug", false, "Enable debug log output")

	rootCmd.AddCommand(
		newInitCmd(),
		newPacksCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newQueryCmd(),
		newListCmd(),
		newInfoCmd(),
		newInspectCmd(),
		newImportCmd(),
		newExportCmd(),
	)

	return rootCmd
}
