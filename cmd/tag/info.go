package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show pack statistics",
		Long:  "Shows per-kind tag statistics, stored association counts and recent writes.",
		RunE:  runInfo,
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	return withInternalDeps(cmd.Context(), func(d *internalDeps) error {
		info, err := d.QueryHandler.HandleInfo(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Pack:     %s\n", globalPack)
		fmt.Printf("Database: %s\n\n", d.store.Path())

		fmt.Printf("%-12s %8s %8s %14s %8s\n", "KIND", "TAGS", "KEYS", "ASSOCIATIONS", "STORED")
		for _, ks := range info.Report.Kinds {
			fmt.Printf("%-12s %8d %8d %14d %8d\n",
				ks.Kind, ks.Stats.Tags, ks.Stats.Keys, ks.Stats.Associations, info.Stored[ks.Kind])
		}
		fmt.Printf("%-12s %8d %8d %14d\n",
			"total", info.Report.Total.Tags, info.Report.Total.Keys, info.Report.Total.Associations)

		if len(info.Recent) == 0 {
			return nil
		}

		fmt.Println("\nRecent writes:")
		for _, e := range info.Recent {
			fmt.Printf("  %s  %-9s %v\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Action, e.Details)
		}
		return nil
	})
}
