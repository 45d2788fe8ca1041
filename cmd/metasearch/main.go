// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the metasearch CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/metasearch/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from --verbose and --log-format before any command runs.
var logger = slog.New(slog.DiscardHandler)

// loadedSecrets holds credentials read from .secrets/ at startup.
var loadedSecrets map[string]string

var rootCmd = &cobra.Command{
	Use:   "metasearch",
	Short: "Federated search across scholarly and encyclopedic sources",
	Long: `metasearch sends one query to several sources at once (arXiv, Wikipedia,
Semantic Scholar, OpenAlex, PatentsView, a local library), merges records
that describe the same work, and ranks them against a preference profile.
Every score comes with the factors that produced it.

Run a search from the terminal with "search", or start the HTTP API with
"serve".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		format, _ := cmd.Flags().GetString("log-format")
		l, err := newLogger(os.Stderr, format, verbose)
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(l)

		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", "path", used)
		}

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug("loaded secrets", "count", len(s))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./metasearch.yaml or ~/.config/metasearch/metasearch.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	configureViper(viper.GetViper(), cfgFile)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

// configureViper sets search paths, environment binding, and defaults on v.
func configureViper(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("metasearch")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "metasearch"))
		}
	}

	v.SetEnvPrefix("METASEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names kept for existing deployments.
	v.BindEnv("server.port", "METASEARCH_SERVER_PORT", "PORT")
	v.BindEnv("providers.semantic_scholar_api_key", "METASEARCH_PROVIDERS_SEMANTIC_SCHOLAR_API_KEY", "SEMANTIC_SCHOLAR_API_KEY")
	v.BindEnv("http.user_agent", "METASEARCH_HTTP_USER_AGENT", "USER_AGENT")

	setDefaults(v)
}

func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
