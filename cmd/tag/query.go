package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query tags and keys",
	}

	cmd.AddCommand(
		newQueryTagsCmd(),
		newQueryKeysCmd(),
	)

	return cmd
}

func newQueryTagsCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:     "tags KEY",
		Short:   "Show the tags of a key",
		Example: "  tag query tags -p vanilla minecraft:wool@14",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.QueryHandler.HandleTags(kind, args[0])
				if err != nil {
					return err
				}

				if len(result.Tags) == 0 {
					fmt.Printf("%s %s has no tags.\n", result.Kind, result.Key)
					return nil
				}

				fmt.Printf("%s %s (%d tags):\n", result.Kind, result.Key, len(result.Tags))
				for _, tag := range result.Tags {
					fmt.Printf("  %s\n", tag)
				}
				return nil
			})
		},
	}

	addKindFlag(cmd, &kind)

	return cmd
}

func newQueryKeysCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "keys TAG",
		Short: "Show the keys of a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.QueryHandler.HandleKeys(kind, args[0])
				if err != nil {
					return err
				}

				if len(result.Keys) == 0 {
					fmt.Printf("%s tag %s is empty.\n", result.Kind, result.Tag)
					return nil
				}

				fmt.Printf("%s tag %s (%d keys):\n", result.Kind, result.Tag, len(result.Keys))
				for _, key := range result.Keys {
					fmt.Printf("  %s\n", key)
				}
				return nil
			})
		},
	}

	addKindFlag(cmd, &kind)

	return cmd
}

func newInspectCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "inspect KEY [KEY...]",
		Short: "Show the tags of several keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				results, err := d.QueryHandler.HandleInspect(kind, args)
				if err != nil {
					return err
				}

				for _, r := range results {
					if len(r.Tags) == 0 {
						fmt.Printf("%-40s -\n", r.Key)
						continue
					}
					fmt.Printf("%-40s %s\n", r.Key, strings.Join(r.Tags, ", "))
				}
				return nil
			})
		},
	}

	addKindFlag(cmd, &kind)

	return cmd
}
