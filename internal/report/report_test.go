// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fetch-papers/pkg/types"
)

func acmeRecord() types.PaperRecord {
	jane := types.Author{Name: "Jane Doe", Affiliation: "Acme Pharma Inc"}
	return types.PaperRecord{
		ID:                 "111",
		Title:              "Kinase inhibitors, revisited",
		Date:               "2024 Mar",
		Authors:            []types.Author{jane, {Name: "Rick Roe", Affiliation: "State University"}},
		NonAcademicAuthors: []types.Author{jane},
	}
}

// --- CSV ---

func TestWriteCSVSingleRecord(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV([]types.PaperRecord{acmeRecord()}, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"PubmedID", "Title", "Publication Date", "Non-academic Author(s)", "Company Affiliation(s)"}, rows[0])
	assert.Equal(t, []string{"111", "Kinase inhibitors, revisited", "2024 Mar", "Jane Doe", "Acme Pharma Inc"}, rows[1])
}

func TestWriteCSVRowsEndInCRLF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV([]types.PaperRecord{acmeRecord()}, &buf))

	want := "PubmedID,Title,Publication Date,Non-academic Author(s),Company Affiliation(s)\r\n" +
		"111,\"Kinase inhibitors, revisited\",2024 Mar,Jane Doe,Acme Pharma Inc\r\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVJoinsMultipleAuthors(t *testing.T) {
	rec := types.PaperRecord{
		ID: "42",
		NonAcademicAuthors: []types.Author{
			{Name: "A One", Affiliation: "Globex Corp"},
			{Name: "B Two", Affiliation: "Initech Ltd"},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV([]types.PaperRecord{rec}, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"42", "", "", "A One, B Two", "Globex Corp, Initech Ltd"}, rows[1])
}

func TestWriteCSVHeaderOnlyWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(nil, &buf))
	assert.Equal(t, strings.Join(Header, ",")+"\r\n", buf.String())
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, SaveCSV(path, []types.PaperRecord{acmeRecord()}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme Pharma Inc", rows[1][4])

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveCSVBadDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	assert.Error(t, SaveCSV(path, []types.PaperRecord{acmeRecord()}))
}

// --- Formats ---

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write([]types.PaperRecord{acmeRecord()}, types.OutputJSON, &buf))

	var got []types.PaperRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []types.PaperRecord{acmeRecord()}, got)
	assert.Contains(t, buf.String(), `"non_academic_authors"`)
}

func TestFormatJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(nil, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestFormatYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write([]types.PaperRecord{acmeRecord()}, types.OutputYAML, &buf))

	var got []types.PaperRecord
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []types.PaperRecord{acmeRecord()}, got)
	assert.Contains(t, buf.String(), "non_academic_authors:")
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write([]types.PaperRecord{acmeRecord()}, types.OutputTable, &buf))

	out := buf.String()
	assert.Contains(t, out, "PMID")
	assert.Contains(t, out, "111")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "1 papers with non-academic authors")
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	assert.Equal(t, "No results found.\n", buf.String())
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(nil, "xml", &buf)
	assert.ErrorContains(t, err, "unknown output format")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééééééé...", truncate(strings.Repeat("é", 20), 10))
}
