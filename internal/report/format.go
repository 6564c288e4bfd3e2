// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fetch-papers/pkg/types"
)

// CheckFormat returns an error if format is not one Write understands.
// The empty format means JSON.
func CheckFormat(format types.OutputFormat) error {
	switch format {
	case types.OutputJSON, types.OutputYAML, types.OutputTable, "":
		return nil
	}
	return fmt.Errorf("unknown output format %q (want json, yaml, or table)", format)
}

// Write renders records to w in the given format.
func Write(records []types.PaperRecord, format types.OutputFormat, w io.Writer) error {
	switch format {
	case types.OutputJSON, "":
		return FormatJSON(records, w)
	case types.OutputYAML:
		return FormatYAML(records, w)
	case types.OutputTable:
		FormatTable(records, w)
		return nil
	}
	return CheckFormat(format)
}

// FormatJSON writes records as indented JSON to w.
func FormatJSON(records []types.PaperRecord, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(nonNil(records))
}

// FormatYAML writes records as a YAML sequence to w.
func FormatYAML(records []types.PaperRecord, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(nonNil(records)); err != nil {
		return err
	}
	return enc.Close()
}

// FormatTable writes records as a fixed-width table to w.
func FormatTable(records []types.PaperRecord, w io.Writer) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-10s  %-50s  %-12s  %-25s  %s\n",
		"PMID", "Title", "Date", "Authors", "Affiliations")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for _, r := range records {
		fmt.Fprintf(w, "%-10s  %-50s  %-12s  %-25s  %s\n",
			r.ID,
			truncate(r.Title, 50),
			truncate(strings.TrimSpace(r.Date), 12),
			truncate(strings.Join(r.AuthorNames(), listSep), 25),
			truncate(strings.Join(r.Affiliations(), "; "), 40))
	}

	fmt.Fprintf(w, "\n%d papers with non-academic authors\n", len(records))
}

func nonNil(records []types.PaperRecord) []types.PaperRecord {
	if records == nil {
		return []types.PaperRecord{}
	}
	return records
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
