// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed talks to the NCBI E-utilities API: esearch for PubMed
// identifiers matching a query, efetch for the XML record of one
// identifier, and a parser that turns that XML into a types.PaperRecord.
package pubmed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/pdiddy/fetch-papers/internal/httputil"
	"github.com/pdiddy/fetch-papers/pkg/types"
)

const (
	// DefaultSearchURL is the esearch endpoint.
	DefaultSearchURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"

	// DefaultFetchURL is the efetch endpoint.
	DefaultFetchURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"

	// MaxIDs caps the number of identifiers a search returns.
	MaxIDs = 10

	database = "pubmed"

	// maxBodyBytes bounds how much of a response body is read.
	maxBodyBytes = 10 << 20
)

// Client queries E-utilities. A Client holds no per-run state and is safe
// for concurrent use.
type Client struct {
	HTTP   *http.Client
	Config types.PubMedConfig
	Logger zerolog.Logger
}

// New returns a Client for cfg, filling in default endpoints and building an
// http.Client with cfg.Timeout.
func New(cfg types.PubMedConfig, logger zerolog.Logger) *Client {
	if cfg.SearchURL == "" {
		cfg.SearchURL = DefaultSearchURL
	}
	if cfg.FetchURL == "" {
		cfg.FetchURL = DefaultFetchURL
	}
	return &Client{
		HTTP:   &http.Client{Timeout: cfg.Timeout},
		Config: cfg,
		Logger: logger,
	}
}

// esearchResponse mirrors the part of the esearch JSON body we read.
// Absent objects decode to nil and are treated as an empty id list.
type esearchResponse struct {
	Result *struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// SearchIDs returns up to MaxIDs PubMed identifiers matching query, in the
// order esearch lists them.
func (c *Client) SearchIDs(ctx context.Context, query string) ([]string, error) {
	params := url.Values{
		"db":      {database},
		"term":    {query},
		"retmode": {"json"},
		"retmax":  {strconv.Itoa(MaxIDs)},
	}

	body, err := c.get(ctx, "esearch", c.Config.SearchURL, params)
	if err != nil {
		return nil, err
	}

	var resp esearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &TransportError{Op: "esearch", URL: c.Config.SearchURL, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if resp.Result == nil {
		return []string{}, nil
	}

	ids := resp.Result.IDList
	if len(ids) > MaxIDs {
		ids = ids[:MaxIDs]
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// FetchRecord returns the raw efetch XML for one identifier.
func (c *Client) FetchRecord(ctx context.Context, id string) (string, error) {
	params := url.Values{
		"db":      {database},
		"id":      {id},
		"retmode": {"xml"},
	}

	body, err := c.get(ctx, "efetch", c.Config.FetchURL, params)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchPaper fetches and parses the record for id and stamps id on it.
func (c *Client) FetchPaper(ctx context.Context, id string) (types.PaperRecord, error) {
	markup, err := c.FetchRecord(ctx, id)
	if err != nil {
		return types.PaperRecord{}, err
	}
	rec, err := ParseRecord(markup)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.ID = id
		}
		return types.PaperRecord{}, err
	}
	rec.ID = id
	return rec, nil
}

// get issues a GET to endpoint with params plus the optional etiquette
// parameters, and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, op, endpoint string, params url.Values) ([]byte, error) {
	if c.Config.APIKey != "" {
		params.Set("api_key", c.Config.APIKey)
	}
	if c.Config.Email != "" {
		params.Set("email", c.Config.Email)
	}
	if c.Config.Tool != "" {
		params.Set("tool", c.Config.Tool)
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, &TransportError{Op: op, URL: endpoint, Err: fmt.Errorf("invalid endpoint: %w", err)}
	}
	u.RawQuery = params.Encode()
	display := redact(u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &TransportError{Op: op, URL: display, Err: fmt.Errorf("creating request: %w", err)}
	}
	if c.Config.UserAgent != "" {
		req.Header.Set("User-Agent", c.Config.UserAgent)
	}

	c.Logger.Debug().Str("op", op).Str("url", display).Msg("requesting")

	resp, err := httputil.DoWithRetry(ctx, c.httpClient(), req, c.Config.MaxRetries, c.Logger)
	if err != nil {
		return nil, &TransportError{Op: op, URL: display, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Op: op, URL: display, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Op: op, URL: display, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading body: %w", err)}
	}
	return body, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// redact returns u as a string with the api_key value masked.
func redact(u *url.URL) string {
	q := u.Query()
	if q.Get("api_key") == "" {
		return u.String()
	}
	q.Set("api_key", "xxxxx")
	c := *u
	c.RawQuery = q.Encode()
	return c.String()
}
