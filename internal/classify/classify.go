// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify separates industry-affiliated authors from academic ones
// with a fixed keyword heuristic. Matching is case-insensitive substring
// search, so "inc" also matches "Princeton"; false positives are accepted.
package classify

import (
	"strings"

	"github.com/pdiddy/fetch-papers/pkg/types"
)

// Keywords are the lower-case substrings that mark an affiliation as non-academic.
var Keywords = []string{"pharma", "biotech", "laboratories", "inc", "corp", "ltd"}

// IsNonAcademic reports whether affiliation contains any of Keywords.
func IsNonAcademic(affiliation string) bool {
	if affiliation == "" {
		return false
	}
	lower := strings.ToLower(affiliation)
	for _, kw := range Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// NonAcademic returns the authors whose affiliation IsNonAcademic, in their
// original order. The result is never nil.
func NonAcademic(authors []types.Author) []types.Author {
	out := []types.Author{}
	for _, a := range authors {
		if IsNonAcademic(a.Affiliation) {
			out = append(out, a)
		}
	}
	return out
}
