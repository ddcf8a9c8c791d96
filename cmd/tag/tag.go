package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/tag-core/internal/application/handlers"
)

func addKindFlag(cmd *cobra.Command, kind *string) {
	cmd.Flags().StringVarP(kind, "kind", "k", DefaultKind, "Entity kind (item, fluid, block, block_state)")
}

func newAddCmd() *cobra.Command {
	var (
		kind string
		keys []string
	)

	cmd := &cobra.Command{
		Use:   "add TAG [TAG...] --key KEY [--key KEY...]",
		Short: "Tag keys",
		Long: `Adds every key to every tag. Keys are written as "id", "id@meta" or
"id@*" for every sub-type. Tag names may contain letters, digits, ':', '_' and '/'.`,
		Example: "  tag add -p vanilla forge:ores --key minecraft:iron_ore --key minecraft:gold_ore",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(keys) == 0 {
				return errors.New("at least one --key is required")
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.TagHandler.HandleAdd(cmd.Context(), kind, args, keys)
				if err != nil {
					return err
				}
				fmt.Printf("Added %d keys to %s %s (%d changes)\n",
					len(result.Keys), result.Kind, strings.Join(result.Tags, ", "), result.Changes)
				return nil
			})
		},
	}

	addKindFlag(cmd, &kind)
	cmd.Flags().StringArrayVarP(&keys, "key", "K", nil, "Key to tag (repeatable)")

	return cmd
}

func newRemoveCmd() *cobra.Command {
	var (
		kind string
		keys []string
	)

	cmd := &cobra.Command{
		Use:   "remove TAG [TAG...] [--key KEY...]",
		Short: "Remove keys from tags, or whole tags",
		Long:  "With --key, removes the keys from every tag. Without, deletes the tags entirely.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				var (
					result *handlers.MutationResult
					err    error
				)
				if len(keys) > 0 {
					result, err = d.TagHandler.HandleRemoveKeys(cmd.Context(), kind, args, keys)
				} else {
					result, err = d.TagHandler.HandleRemoveTags(cmd.Context(), kind, args)
				}
				if err != nil {
					return err
				}

				if len(keys) > 0 {
					fmt.Printf("Removed %d keys from %s %s\n", len(result.Keys), result.Kind, strings.Join(result.Tags, ", "))
				} else {
					fmt.Printf("Removed %s %s (%d changes)\n", result.Kind, strings.Join(result.Tags, ", "), result.Changes)
				}
				return nil
			})
		},
	}

	addKindFlag(cmd, &kind)
	cmd.Flags().StringArrayVarP(&keys, "key", "K", nil, "Key to remove (repeatable)")

	return cmd
}
