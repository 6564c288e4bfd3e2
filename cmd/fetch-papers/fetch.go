// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fetch-papers/internal/logging"
	"github.com/pdiddy/fetch-papers/internal/pipeline"
	"github.com/pdiddy/fetch-papers/internal/pubmed"
	"github.com/pdiddy/fetch-papers/internal/report"
	"github.com/pdiddy/fetch-papers/internal/secrets"
	"github.com/pdiddy/fetch-papers/pkg/types"
)

// settings is everything one run needs, resolved from flags, env, config
// file, and secrets.
type settings struct {
	PubMed   types.PubMedConfig
	Pipeline types.PipelineConfig
	Log      logging.Config
	File     string
	Format   types.OutputFormat
}

// setDefaults registers defaults for keys that have no flag.
func setDefaults(v *viper.Viper) {
	v.SetDefault("search_url", pubmed.DefaultSearchURL)
	v.SetDefault("fetch_url", pubmed.DefaultFetchURL)
	v.SetDefault("user_agent", "fetch-papers/"+version)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("concurrency", 1)
	v.SetDefault("format", string(types.OutputJSON))
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}

// loadSettings resolves settings from v, falling back to sec for credentials.
func loadSettings(v *viper.Viper, sec secrets.Secrets) settings {
	return settings{
		PubMed: types.PubMedConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:    v.GetDuration("timeout"),
				UserAgent:  v.GetString("user_agent"),
				MaxRetries: v.GetInt("max_retries"),
			},
			SearchURL: v.GetString("search_url"),
			FetchURL:  v.GetString("fetch_url"),
			APIKey:    sec.Get(secrets.NCBIAPIKey, v.GetString("api_key")),
			Email:     sec.Get(secrets.NCBIEmail, v.GetString("email")),
			Tool:      v.GetString("tool"),
		},
		Pipeline: types.PipelineConfig{
			Concurrency:  v.GetInt("concurrency"),
			SkipFailures: v.GetBool("skip_failures"),
		},
		Log: logging.Config{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Format: types.OutputFormat(v.GetString("format")),
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	s := loadSettings(viper.GetViper(), loadedSecrets)
	s.Log = logConfig(cmd)
	s.File, _ = cmd.Flags().GetString("file")
	return run(cmd.Context(), args[0], s, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// run executes the pipeline for query and writes the report. Status lines and
// results go to stdout, logs to stderr.
func run(ctx context.Context, query string, s settings, stdout, stderr io.Writer) error {
	if s.File == "" {
		if err := report.CheckFormat(s.Format); err != nil {
			return err
		}
	}

	logger := logging.New(s.Log, stderr)
	client := pubmed.New(s.PubMed, logger)
	p := &pipeline.Pipeline{
		Search: client,
		Fetch:  client,
		Config: s.Pipeline,
		Logger: logger,
	}

	fmt.Fprintf(stdout, "Fetching papers for query: %s...\n", query)
	out, err := p.Run(ctx, query)
	if err != nil {
		return err
	}

	if s.File != "" {
		if len(out.Records) == 0 {
			fmt.Fprintln(stdout, "No data to save.")
			return nil
		}
		if err := report.SaveCSV(s.File, out.Records); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Results saved to %s\n", s.File)
		return nil
	}

	fmt.Fprintln(stdout, "Results:")
	return report.Write(out.Records, s.Format, stdout)
}
