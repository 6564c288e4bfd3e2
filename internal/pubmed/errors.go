// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrTransport marks a failed HTTP exchange with E-utilities.
	ErrTransport = errors.New("pubmed transport error")

	// ErrParse marks a record body that is not well-formed XML.
	ErrParse = errors.New("pubmed parse error")
)

// TransportError reports a request that failed, returned a non-2xx status,
// or returned a body that could not be decoded.
type TransportError struct {
	// Op is the E-utilities operation ("esearch" or "efetch").
	Op string

	// URL is the request URL with any API key redacted.
	URL string

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: HTTP %d from %s", e.Op, e.StatusCode, e.URL)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

// Unwrap returns the cause and ErrTransport.
func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Err}
}

// ParseError reports record markup that could not be parsed.
type ParseError struct {
	// ID is the PMID whose record failed to parse, when known.
	ID string

	// Err is the underlying XML error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("parsing record %s: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("parsing record: %v", e.Err)
}

// Unwrap returns the cause and ErrParse.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}
