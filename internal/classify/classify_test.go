// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/fetch-papers/pkg/types"
)

func TestIsNonAcademic(t *testing.T) {
	tests := []struct {
		affiliation string
		want        bool
	}{
		{"", false},
		{"Department of Biology, State University", false},
		{"Acme Pharma Inc", true},
		{"BioTech Solutions INC", true},
		{"Bell Laboratories", true},
		{"Initech Corp.", true},
		{"Widgets Ltd.", true},
		{"PHARMACOLOGY DEPT", true},
		{"Princeton University", true}, // substring "inc"
		{"Max Planck Institute", false},
	}
	for _, tt := range tests {
		t.Run(tt.affiliation, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNonAcademic(tt.affiliation))
		})
	}
}

func TestNonAcademicPreservesOrder(t *testing.T) {
	authors := []types.Author{
		{Name: "A", Affiliation: "Genentech Biotech"},
		{Name: "B", Affiliation: "MIT"},
		{Name: "C", Affiliation: ""},
		{Name: "D", Affiliation: "Acme Corp"},
		{Name: "E", Affiliation: "Harvard Medical School"},
	}

	got := NonAcademic(authors)
	want := []types.Author{
		{Name: "A", Affiliation: "Genentech Biotech"},
		{Name: "D", Affiliation: "Acme Corp"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NonAcademic() mismatch (-want +got):\n%s", diff)
	}
}

func TestNonAcademicIdempotent(t *testing.T) {
	authors := []types.Author{
		{Name: "A", Affiliation: "Acme Pharma Inc"},
		{Name: "B", Affiliation: "Globex Ltd"},
	}
	once := NonAcademic(authors)
	twice := NonAcademic(once)
	assert.Equal(t, authors, once)
	assert.Equal(t, once, twice)
}

func TestNonAcademicEmpty(t *testing.T) {
	assert.Equal(t, []types.Author{}, NonAcademic(nil))
	assert.Equal(t, []types.Author{}, NonAcademic([]types.Author{{Name: "X"}}))
}
