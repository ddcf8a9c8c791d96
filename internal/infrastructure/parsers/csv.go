package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVParser parses ore dictionaries from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns the parsed ore file.
// Expected columns: name, entry, and optionally subtypes holding the
// entry item's sub-types separated by semicolons.
// Rows sharing a name are grouped in first-seen order.
func (p *CSVParser) Parse(r io.Reader) (*OreFile, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"name", "entry"} {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

// readRecords reads all data rows and groups them by ore name.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) (*OreFile, error) {
	f := &OreFile{}
	byName := make(map[string]int)
	subtypes := make(map[string]int)
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		name := getColumn(record, colIndex, "name")
		entry := getColumn(record, colIndex, "entry")

		idx, ok := byName[name]
		if !ok {
			idx = len(f.Ores)
			byName[name] = idx
			f.Ores = append(f.Ores, RawOre{Name: name, LineNum: lineNum})
		}
		f.Ores[idx].Entries = append(f.Ores[idx].Entries, entry)

		metas, err := parseMetas(getColumn(record, colIndex, "subtypes"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if len(metas) > 0 {
			id, _, _ := strings.Cut(entry, "@")
			if i, seen := subtypes[id]; seen {
				f.Subtypes[i].Metas = append(f.Subtypes[i].Metas, metas...)
			} else {
				subtypes[id] = len(f.Subtypes)
				f.Subtypes = append(f.Subtypes, RawSubtype{ID: id, Metas: metas})
			}
		}
	}

	return f, nil
}

// parseMetas parses a semicolon separated list of sub-types.
func parseMetas(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	metas := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		meta, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid subtype value %q: %w", part, err)
		}
		metas = append(metas, meta)
	}
	return metas, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}
