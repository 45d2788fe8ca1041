// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/metasearch/internal/profile"
	"github.com/pdiddy/metasearch/internal/secrets"
	"github.com/pdiddy/metasearch/pkg/types"
)

const (
	defaultPort      = 8787
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "metasearch/0.1 (+https://github.com/pdiddy/metasearch)"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("http.timeout", defaultTimeout)
	v.SetDefault("http.user_agent", defaultUserAgent)
	v.SetDefault("providers.wikipedia_lang", "en")
	v.SetDefault("providers.disable_openalex", false)
	v.SetDefault("providers.openalex_email", "")
	v.SetDefault("providers.patentsview_api_key", "")
	v.SetDefault("library.path", "")
	v.SetDefault("profiles_file", "")
	v.SetDefault("default_profile", profile.DefaultPreset)
}

// loadConfig decodes v into a Config and fills credentials left empty from
// the secrets directory.
func loadConfig(v *viper.Viper, sec map[string]string) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	secrets.Apply(&cfg.Providers, sec)
	return cfg, nil
}

// currentConfig loads the process-wide configuration.
func currentConfig() (types.Config, error) {
	return loadConfig(viper.GetViper(), loadedSecrets)
}
