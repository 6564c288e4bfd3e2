// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders pipeline results as CSV, JSON, YAML, or a
// human-readable table.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/fetch-papers/pkg/types"
)

// Header is the fixed CSV header row.
var Header = []string{"PubmedID", "Title", "Publication Date", "Non-academic Author(s)", "Company Affiliation(s)"}

// listSep joins author names and affiliations within one cell.
const listSep = ", "

// WriteCSV writes the header and one row per record to w. Rows end in
// CRLF, as RFC 4180 and spreadsheet tools expect.
func WriteCSV(records []types.PaperRecord, w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.ID,
			rec.Title,
			rec.Date,
			strings.Join(rec.AuthorNames(), listSep),
			strings.Join(rec.Affiliations(), listSep),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", rec.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes records to path, replacing any existing file. The file is
// written to a temporary sibling first and renamed on success.
func SaveCSV(path string, records []types.PaperRecord) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := WriteCSV(records, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return nil
}
