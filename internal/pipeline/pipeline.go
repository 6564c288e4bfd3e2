// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the search, fetch, and classify stages for one query
// and keeps the papers that have at least one non-academic author.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/fetch-papers/internal/classify"
	"github.com/pdiddy/fetch-papers/pkg/types"
)

// ErrEmptyQuery is returned by Run for a blank query.
var ErrEmptyQuery = errors.New("query is empty: provide a search term")

// Searcher returns the identifiers matching a query.
type Searcher interface {
	SearchIDs(ctx context.Context, query string) ([]string, error)
}

// Fetcher returns the parsed record for one identifier, with ID set.
type Fetcher interface {
	FetchPaper(ctx context.Context, id string) (types.PaperRecord, error)
}

// Output holds the qualifying papers and any identifiers that were skipped.
type Output struct {
	Query   string              `json:"query" yaml:"query"`
	Records []types.PaperRecord `json:"records" yaml:"records"`

	// Failures lists "<id>: <error>" for each record skipped because
	// SkipFailures was set. Empty otherwise.
	Failures []string `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Pipeline wires the stages together. Search and Fetch are usually the same
// *pubmed.Client.
type Pipeline struct {
	Search Searcher
	Fetch  Fetcher
	Config types.PipelineConfig
	Logger zerolog.Logger
}

// Run searches for query, fetches and classifies each identifier, and returns
// the papers with non-academic authors in identifier order.
//
// Unless Config.SkipFailures is set, the first fetch or parse failure stops
// the run and is returned with no partial results.
func (p *Pipeline) Run(ctx context.Context, query string) (Output, error) {
	if strings.TrimSpace(query) == "" {
		return Output{}, ErrEmptyQuery
	}

	ids, err := p.Search.SearchIDs(ctx, query)
	if err != nil {
		return Output{}, fmt.Errorf("searching %q: %w", query, err)
	}
	p.Logger.Info().Str("query", query).Int("ids", len(ids)).Msg("search complete")

	var results []result
	if p.Config.Concurrency > 1 {
		results, err = p.fetchConcurrent(ctx, ids)
	} else {
		results, err = p.fetchSequential(ctx, ids)
	}
	if err != nil {
		return Output{}, err
	}

	out := Output{Query: query, Records: []types.PaperRecord{}}
	for _, r := range results {
		switch {
		case r.err != nil:
			out.Failures = append(out.Failures, fmt.Sprintf("%s: %v", r.id, r.err))
		case r.qualifies:
			out.Records = append(out.Records, r.rec)
		}
	}

	p.Logger.Info().
		Int("ids", len(ids)).
		Int("qualifying", len(out.Records)).
		Int("skipped", len(out.Failures)).
		Msg("pipeline complete")
	return out, nil
}

// result is the outcome for one identifier, kept at its search position.
type result struct {
	id        string
	rec       types.PaperRecord
	qualifies bool
	err       error
}

func (p *Pipeline) fetchSequential(ctx context.Context, ids []string) ([]result, error) {
	results := make([]result, len(ids))
	for i, id := range ids {
		r, err := p.process(ctx, id)
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return results, nil
}

// fetchConcurrent processes up to Config.Concurrency identifiers at once.
// Each goroutine writes only its own slot, so output order is unaffected.
func (p *Pipeline) fetchConcurrent(ctx context.Context, ids []string) ([]result, error) {
	results := make([]result, len(ids))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.Config.Concurrency)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			r, err := p.process(gCtx, id)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// process fetches and classifies one identifier. A failure is returned as an
// error unless SkipFailures is set, in which case it is logged and carried in
// the result.
func (p *Pipeline) process(ctx context.Context, id string) (result, error) {
	log := p.Logger.With().Str("pmid", id).Logger()
	log.Debug().Msg("fetching record")

	rec, err := p.Fetch.FetchPaper(ctx, id)
	if err != nil {
		if !p.Config.SkipFailures {
			return result{}, fmt.Errorf("fetching record %s: %w", id, err)
		}
		log.Warn().Err(err).Msg("skipping record")
		return result{id: id, err: err}, nil
	}
	rec.ID = id

	nonAcademic := classify.NonAcademic(rec.Authors)
	if len(nonAcademic) == 0 {
		log.Debug().Int("authors", len(rec.Authors)).Msg("no non-academic authors")
		return result{id: id}, nil
	}
	rec.NonAcademicAuthors = nonAcademic
	log.Debug().Int("non_academic", len(nonAcademic)).Msg("record qualifies")
	return result{id: id, rec: rec, qualifies: true}, nil
}
