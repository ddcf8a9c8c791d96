package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/tag-core/internal/application/handlers"
)

type importFlags struct {
	format            string
	dryRun            bool
	replace           bool
	closeRegistration bool
}

func newImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import an ore dictionary",
		Long: `Imports an ore dictionary from JSON, CSV, YAML or TOML and tags every entry
with its ore name. Wildcard entries are expanded to the sub-types declared in the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "File format (json, csv, yaml, toml, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")
	cmd.Flags().BoolVar(&flags.replace, "replace", false, "Clear the pack before importing")
	cmd.Flags().BoolVar(&flags.closeRegistration, "close-registration", true, "Close tag registration after the import")

	return cmd
}

func runImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		opts := handlers.ImportOptions{
			Format:            flags.format,
			DryRun:            flags.dryRun,
			Replace:           flags.replace,
			CloseRegistration: d.Config.Sync.CloseRegistration,
		}
		if opts.Format == "" {
			opts.Format = d.Config.Sync.Format
		}
		if cmd.Flags().Changed("close-registration") {
			opts.CloseRegistration = flags.closeRegistration
		}

		fmt.Printf("Importing %s...\n", filePath)

		result, err := d.ImportHandler.Handle(ctx, filePath, opts)
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		if len(result.Errors) > 0 {
			fmt.Printf("\nValidation errors (%d):\n", len(result.Errors))
			for _, e := range result.Errors {
				fmt.Printf("  %s\n", e.Error())
			}
		}

		fmt.Println()
		if flags.dryRun {
			fmt.Printf("Dry run: %d keys in %d ore names would be tagged", result.Synced, result.Categories)
		} else {
			fmt.Printf("Imported: %d keys in %d ore names, %d associations saved", result.Synced, result.Categories, result.Persisted)
		}

		if result.Failed > 0 {
			fmt.Printf(", %d failed", result.Failed)
		}

		fmt.Println()

		return nil
	})
}
