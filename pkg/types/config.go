// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared settings for outbound provider requests.
type HTTPConfig struct {
	// Timeout bounds each provider call. The core pipeline enforces no
	// deadline of its own.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent to providers
	// (e.g. "metasearch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ServerConfig holds settings for the HTTP front door.
type ServerConfig struct {
	Port int `json:"port" yaml:"port" mapstructure:"port"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// ProvidersConfig holds credentials and endpoints for provider clients.
type ProvidersConfig struct {
	// SemanticScholarAPIKey is optional; anonymous access is rate limited.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty" mapstructure:"semantic_scholar_api_key"`

	// OpenAlexEmail is sent as mailto for polite pool access.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty" mapstructure:"openalex_email"`

	// PatentsViewAPIKey enables the patentsview source when set.
	PatentsViewAPIKey string `json:"patentsview_api_key,omitempty" yaml:"patentsview_api_key,omitempty" mapstructure:"patentsview_api_key"`

	// WikipediaLang selects the Wikipedia edition (default "en").
	WikipediaLang string `json:"wikipedia_lang,omitempty" yaml:"wikipedia_lang,omitempty" mapstructure:"wikipedia_lang"`

	// DisableOpenAlex drops the openalex source from the registry.
	DisableOpenAlex bool `json:"disable_openalex,omitempty" yaml:"disable_openalex,omitempty" mapstructure:"disable_openalex"`
}

// LibraryConfig holds settings for the local bibliography source.
type LibraryConfig struct {
	// Path is the SQLite database file. Empty disables the library source.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`
}

// Config groups all settings loaded by the CLI.
type Config struct {
	HTTP      HTTPConfig      `json:"http" yaml:"http" mapstructure:"http"`
	Server    ServerConfig    `json:"server" yaml:"server" mapstructure:"server"`
	Providers ProvidersConfig `json:"providers" yaml:"providers" mapstructure:"providers"`
	Library   LibraryConfig   `json:"library" yaml:"library" mapstructure:"library"`

	// ProfilesFile is an optional YAML file of additional profile presets.
	ProfilesFile string `json:"profiles_file,omitempty" yaml:"profiles_file,omitempty" mapstructure:"profiles_file"`

	// DefaultProfile names the preset used when a request carries no profile.
	DefaultProfile string `json:"default_profile,omitempty" yaml:"default_profile,omitempty" mapstructure:"default_profile"`
}
