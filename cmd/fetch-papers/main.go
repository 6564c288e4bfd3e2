// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the fetch-papers CLI.
package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fetch-papers/internal/logging"
	"github.com/pdiddy/fetch-papers/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds NCBI credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd searches PubMed and reports papers with industry-affiliated authors.
var rootCmd = &cobra.Command{
	Use:   "fetch-papers <query>",
	Short: "Find PubMed papers with pharmaceutical or biotech authors",
	Long: `fetch-papers searches PubMed for a query, fetches up to 10 matching records,
and keeps the papers with at least one author whose affiliation looks like a
company (pharma, biotech, laboratories, inc, corp, ltd).

The query accepts full PubMed syntax, e.g. "cancer[Title] AND 2023[PDAT]".
Results go to stdout as JSON unless --file names a CSV to write.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New(logConfig(cmd), cmd.ErrOrStderr())
		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Info().Strs("keys", s.Keys()).Msg("loaded secrets")
		}
		return nil
	},
	RunE: runFetch,
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults(viper.GetViper())

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./fetch-papers.yaml or ~/.config/fetch-papers/fetch-papers.yaml)")
	pf.String("log-level", "warn", "log level: trace, debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")
	pf.BoolP("debug", "d", false, "shorthand for --log-level debug")

	f := rootCmd.Flags()
	f.StringP("file", "f", "", "write results to this CSV file instead of stdout")
	f.String("format", "json", "stdout format when --file is not given: json, yaml, or table")
	f.Duration("timeout", 30*time.Second, "HTTP request timeout")
	f.Int("max-retries", 0, "retries for requests answered with HTTP 429")
	f.Int("concurrency", 1, "records fetched at once (1 = sequential)")
	f.Bool("skip-failures", false, "skip records that fail to fetch or parse instead of aborting")
	f.String("api-key", "", "NCBI API key (default: .secrets/ncbi-api-key)")
	f.String("email", "", "contact email sent to NCBI (default: .secrets/ncbi-email)")

	for key, flag := range map[string]string{
		"log.level":     "log-level",
		"log.format":    "log-format",
		"timeout":       "timeout",
		"max_retries":   "max-retries",
		"concurrency":   "concurrency",
		"skip_failures": "skip-failures",
		"api_key":       "api-key",
		"email":         "email",
		"format":        "format",
	} {
		fs := f
		if f.Lookup(flag) == nil {
			fs = pf
		}
		if err := viper.BindPFlag(key, fs.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fetch-papers")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "fetch-papers"))
		}
	}

	configureEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		logger := logging.New(logging.Config{Level: viper.GetString("log.level"), Format: viper.GetString("log.format")}, os.Stderr)
		logger.Info().Str("file", viper.ConfigFileUsed()).Msg("using config file")
	}
}

// configureEnv maps FETCH_PAPERS_* variables onto config keys. Nested keys
// use underscores, so log.level reads FETCH_PAPERS_LOG_LEVEL.
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("FETCH_PAPERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// logConfig reads logger settings from viper, honouring --debug.
func logConfig(cmd *cobra.Command) logging.Config {
	cfg := logging.Config{
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Level = "debug"
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
