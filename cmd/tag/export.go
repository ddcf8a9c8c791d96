package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/tag-core/internal/domain/entities"
)

type exportFlags struct {
	format string
	output string
	kind   string
}

type exporter struct {
	format string
	output string
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tags to file",
		Long:  "Exports every (kind, tag, key) association to JSON, CSV, or markdown format.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, csv, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&flags.kind, "kind", "k", "", "Only export this kind")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !slices.Contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	return withDeps(cmd.Context(), func(d *Deps) error {
		assocs, err := d.QueryHandler.HandleExport(flags.kind)
		if err != nil {
			return err
		}
		if len(assocs) == 0 {
			return errors.New("no tags found to export")
		}

		e := &exporter{format: flags.format, output: flags.output}
		return e.export(assocs)
	})
}

func (e *exporter) export(assocs []entities.Association) (err error) {
	var w io.Writer
	var f *os.File

	if e.output != "" {
		f, err = os.OpenFile(e.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	} else {
		w = os.Stdout
	}

	if err := e.formatAssociations(w, assocs); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if e.output != "" {
		fmt.Printf("Exported %d associations to %s\n", len(assocs), e.output)
	}

	return nil
}

func (e *exporter) formatAssociations(w io.Writer, assocs []entities.Association) error {
	switch e.format {
	case "json":
		return formatJSON(w, assocs)
	case "csv":
		return formatCSV(w, assocs)
	case "markdown":
		return formatMarkdown(w, assocs)
	default:
		return fmt.Errorf("unknown format: %s", e.format)
	}
}

// formatJSON writes kind -> tag -> keys, the layout tag data packs use.
func formatJSON(w io.Writer, assocs []entities.Association) error {
	out := make(map[entities.Kind]map[string][]string)
	for _, a := range assocs {
		tags, ok := out[a.Kind]
		if !ok {
			tags = make(map[string][]string)
			out[a.Kind] = tags
		}
		tags[a.Tag] = append(tags[a.Tag], a.Key.String())
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func formatCSV(w io.Writer, assocs []entities.Association) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"kind", "tag", "key"}); err != nil {
		return err
	}

	for _, a := range assocs {
		if err := writer.Write([]string{string(a.Kind), a.Tag, a.Key.String()}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMarkdown(w io.Writer, assocs []entities.Association) error {
	if _, err := fmt.Fprintf(w, "# Exported Tags\n\nTotal: %d associations\n\n", len(assocs)); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "| Kind | Tag | Key |\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "|------|-----|-----|\n"); err != nil {
		return err
	}

	for _, a := range assocs {
		if _, err := fmt.Fprintf(w, "| %s | %s | %s |\n",
			a.Kind,
			escapeMarkdown(a.Tag),
			escapeMarkdown(a.Key.String()),
		); err != nil {
			return err
		}
	}

	return nil
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
