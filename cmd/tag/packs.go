package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/tag-core/internal/infrastructure/config"
)

func newPacksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packs",
		Short: "Manage packs",
		Long:  "A pack is an independent tag registry stored in its own database.",
		RunE:  runPacksList,
	}

	cmd.AddCommand(
		newPacksListCmd(),
		newPacksCreateCmd(),
		newPacksDeleteCmd(),
	)

	return cmd
}

func newPacksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all packs",
		RunE:  runPacksList,
	}
}

func runPacksList(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	packs, err := config.LoadPacks(cwd)
	if err != nil {
		return fmt.Errorf("loading packs: %w", err)
	}

	names := packs.Names()
	if len(names) == 0 {
		fmt.Println("No packs configured.")
		fmt.Println("Use 'tag packs create NAME' to create a pack.")
		return nil
	}

	fmt.Printf("%-20s %s\n", "NAME", "DESCRIPTION")
	fmt.Printf("%-20s %s\n", "----", "-----------")

	for _, name := range names {
		fmt.Printf("%-20s %s\n", name, packs.Packs[name].Description)
	}

	return nil
}

func newPacksCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPacksCreate(cmd, args[0], description)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Pack description")

	return cmd
}

func runPacksCreate(cmd *cobra.Command, name string, description string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if !config.Exists(cwd) {
		if err := config.WriteDefault(cwd); err != nil {
			return fmt.Errorf("initializing config: %w", err)
		}
		fmt.Printf("Initialized tag in %s\n", config.ConfigDir(cwd))
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	packs, err := config.LoadPacks(cwd)
	if err != nil {
		return fmt.Errorf("loading packs: %w", err)
	}

	if packs.Exists(name) {
		return fmt.Errorf("pack %q already exists", name)
	}

	store, err := openStore(cmd.Context(), cfg, cwd, name)
	if err != nil {
		return err
	}
	if err := store.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}

	packs.Add(name, config.PackEntry{Description: description})
	if err := packs.Save(cwd); err != nil {
		return fmt.Errorf("saving packs: %w", err)
	}

	fmt.Printf("Created pack %q at %s\n", name, cfg.DatabasePath(cwd, name))

	return nil
}

func newPacksDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPacksDelete(cmd, args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete even if pack contains tags")

	return cmd
}

func runPacksDelete(cmd *cobra.Command, name string, force bool) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	packs, err := config.LoadPacks(cwd)
	if err != nil {
		return fmt.Errorf("loading packs: %w", err)
	}

	if _, err := packs.Get(name); err != nil {
		return err
	}

	if !force {
		store, err := openStore(ctx, cfg, cwd, name)
		if err != nil {
			return err
		}
		counts, err := store.CountAssociations(ctx)
		store.Close()
		if err != nil {
			return fmt.Errorf("counting associations: %w", err)
		}

		total := 0
		for _, n := range counts {
			total += n
		}
		if total > 0 {
			return fmt.Errorf("pack %q contains %d associations, use --force to delete", name, total)
		}
	}

	if err := os.RemoveAll(cfg.PackDir(cwd, name)); err != nil {
		fmt.Printf("Warning: could not delete pack directory: %v\n", err)
	}

	packs.Remove(name)
	if err := packs.Save(cwd); err != nil {
		return fmt.Errorf("saving packs: %w", err)
	}

	fmt.Printf("Deleted pack %q\n", name)

	return nil
}
