// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the fetch-papers pipeline:
// the author and paper records produced by parsing PubMed XML, and the
// configuration consumed by the client, pipeline, and CLI.
package types

// Unknown is the placeholder stored in PaperRecord.Title and PaperRecord.Date
// when the source document has no such node. Callers may compare against it.
const Unknown = "Unknown"

// Author is one entry of a paper's author list.
type Author struct {
	// Name is the given name and family name joined by a space. Either part
	// may be missing, leaving a partial or empty name.
	Name string `json:"name" yaml:"name"`

	// Affiliation is the first affiliation text listed under the author, or
	// empty when none is present.
	Affiliation string `json:"affiliation" yaml:"affiliation"`
}

// PaperRecord holds the fields extracted from a single PubMed record.
type PaperRecord struct {
	// ID is the PubMed identifier (PMID) the record was fetched by.
	ID string `json:"id" yaml:"id"`

	// Title is the article title, or Unknown.
	Title string `json:"title" yaml:"title"`

	// Date is the raw text of the publication date node, or Unknown.
	Date string `json:"date" yaml:"date"`

	// Authors lists every author in document order.
	Authors []Author `json:"authors" yaml:"authors"`

	// NonAcademicAuthors is the subset of Authors classified as industry
	// affiliated. Set only after classification.
	NonAcademicAuthors []Author `json:"non_academic_authors,omitempty" yaml:"non_academic_authors,omitempty"`
}

// AuthorNames returns the names of the non-academic authors.
func (p PaperRecord) AuthorNames() []string {
	names := make([]string, 0, len(p.NonAcademicAuthors))
	for _, a := range p.NonAcademicAuthors {
		names = append(names, a.Name)
	}
	return names
}

// Affiliations returns the affiliations of the non-academic authors.
func (p PaperRecord) Affiliations() []string {
	affs := make([]string, 0, len(p.NonAcademicAuthors))
	for _, a := range p.NonAcademicAuthors {
		affs = append(affs, a.Affiliation)
	}
	return affs
}
