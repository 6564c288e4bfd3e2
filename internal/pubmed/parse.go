// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"errors"
	"strings"

	"github.com/beevik/etree"

	"github.com/pdiddy/fetch-papers/pkg/types"
)

// PubMed element names read by the parser.
const (
	tagTitle       = "ArticleTitle"
	tagDate        = "PubDate"
	tagAuthor      = "Author"
	tagForeName    = "ForeName"
	tagLastName    = "LastName"
	tagAffiliation = "Affiliation"
)

var (
	errNoRoot        = errors.New("document has no root element")
	errMultipleRoots = errors.New("document has more than one root element")
	errTrailingText  = errors.New("text outside the root element")
)

// ParseRecord extracts the title, publication date, and authors from an
// efetch XML document. The returned record has no ID; FetchPaper sets it.
//
// Field defaults when the element is missing:
//
//	title        first ArticleTitle below the root       Unknown
//	date         first PubDate below the root            Unknown
//	authors      every Author below the root             none
//	given name   ForeName child of the Author            ""
//	family name  LastName child of the Author            ""
//	affiliation  first Affiliation below the Author      ""
//
// Values are the leading text of the element, untrimmed. PubDate normally
// nests Year/Month/Day, so its leading text is often blank; the date is
// not rebuilt from those parts.
func ParseRecord(markup string) (types.PaperRecord, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(markup); err != nil {
		return types.PaperRecord{}, &ParseError{Err: err}
	}
	if err := checkDocumentLevel(doc); err != nil {
		return types.PaperRecord{}, &ParseError{Err: err}
	}
	root := doc.Root()

	rec := types.PaperRecord{
		Title:   textOr(findDescendant(root, tagTitle), types.Unknown),
		Date:    textOr(findDescendant(root, tagDate), types.Unknown),
		Authors: []types.Author{},
	}
	for _, el := range findDescendants(root, tagAuthor) {
		rec.Authors = append(rec.Authors, parseAuthor(el))
	}
	return rec, nil
}

func parseAuthor(el *etree.Element) types.Author {
	given := textOr(el.SelectElement(tagForeName), "")
	family := textOr(el.SelectElement(tagLastName), "")
	return types.Author{
		Name:        strings.TrimSpace(given + " " + family),
		Affiliation: textOr(findDescendant(el, tagAffiliation), ""),
	}
}

// checkDocumentLevel rejects what etree tolerates but XML forbids at the top
// level: zero or several root elements, and non-blank text outside the root.
// The XML declaration, DOCTYPE, comments, and processing instructions are allowed.
func checkDocumentLevel(doc *etree.Document) error {
	roots := 0
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			roots++
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return errTrailingText
			}
		}
	}
	switch {
	case roots == 0:
		return errNoRoot
	case roots > 1:
		return errMultipleRoots
	}
	return nil
}

// textOr returns the leading text of el, or def when el is nil.
func textOr(el *etree.Element, def string) string {
	if el == nil {
		return def
	}
	return el.Text()
}

// findDescendant returns the first element named tag below el in document
// order, or nil. el itself is not considered.
func findDescendant(el *etree.Element, tag string) *etree.Element {
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
		if found := findDescendant(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findDescendants returns every element named tag below el in document order.
func findDescendants(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
		out = append(out, findDescendants(c, tag)...)
	}
	return out
}
