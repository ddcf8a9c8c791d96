package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/tag-core/internal/domain/entities"
)

func newListCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tag names",
		Long:  "Lists every tag name in the pack, grouped by kind.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				byKind, err := d.QueryHandler.HandleList(kind)
				if err != nil {
					return err
				}

				if len(byKind) == 0 {
					fmt.Println("No tags found.")
					return nil
				}

				displayTags(byKind)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Only list tags of this kind")

	return cmd
}

func displayTags(byKind map[entities.Kind][]string) {
	for _, kind := range entities.AllKinds {
		tags, ok := byKind[kind]
		if !ok {
			continue
		}

		fmt.Printf("%s (%d):\n", kind, len(tags))
		for _, tag := range tags {
			fmt.Printf("  %s\n", tag)
		}
	}
}
