// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for requests to E-utilities.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "fetch-papers/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of times a request answered with HTTP 429 is
	// retried. Zero sends each request exactly once.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// PubMedConfig holds settings for the E-utilities client.
type PubMedConfig struct {
	HTTPConfig `yaml:",inline"`

	// SearchURL is the esearch endpoint.
	SearchURL string `json:"search_url" yaml:"search_url"`

	// FetchURL is the efetch endpoint.
	FetchURL string `json:"fetch_url" yaml:"fetch_url"`

	// APIKey is an optional NCBI API key, sent as api_key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email is an optional contact address, sent as email.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// Tool is an optional application name, sent as tool.
	Tool string `json:"tool,omitempty" yaml:"tool,omitempty"`
}

// PipelineConfig holds settings for the search-fetch-classify run.
type PipelineConfig struct {
	// Concurrency is the number of records fetched at once. Values below 2
	// process identifiers strictly one after another.
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// SkipFailures keeps the run going when a single record cannot be
	// fetched or parsed. When false the first failure aborts the run.
	SkipFailures bool `json:"skip_failures" yaml:"skip_failures"`
}

// OutputFormat selects how results are printed to stdout.
type OutputFormat string

const (
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
	OutputTable OutputFormat = "table"
)
