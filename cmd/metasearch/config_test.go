// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/metasearch/internal/secrets"
)

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	configureViper(v, filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := loadConfig(v, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, defaultTimeout, cfg.HTTP.Timeout)
	assert.Equal(t, defaultUserAgent, cfg.HTTP.UserAgent)
	assert.Equal(t, "en", cfg.Providers.WikipediaLang)
	assert.Equal(t, "default", cfg.DefaultProfile)
	assert.Empty(t, cfg.Library.Path)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SEMANTIC_SCHOLAR_API_KEY", "s2-key")
	t.Setenv("METASEARCH_HTTP_TIMEOUT", "3s")
	t.Setenv("METASEARCH_LIBRARY_PATH", "/tmp/lib.db")

	v := viper.New()
	configureViper(v, filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := loadConfig(v, nil)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "s2-key", cfg.Providers.SemanticScholarAPIKey)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "/tmp/lib.db", cfg.Library.Path)
}

func TestLoadConfigFileAndSecrets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metasearch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9100
providers:
  wikipedia_lang: nb
  semantic_scholar_api_key: from-file
default_profile: nordic
`), 0o644))

	v := viper.New()
	configureViper(v, path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v, map[string]string{
		secrets.SemanticScholarAPIKey: "from-secrets",
		secrets.PatentsViewAPIKey:     "pv-key",
	})
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "nb", cfg.Providers.WikipediaLang)
	assert.Equal(t, "nordic", cfg.DefaultProfile)
	assert.Equal(t, "from-file", cfg.Providers.SemanticScholarAPIKey, "config wins over secrets")
	assert.Equal(t, "pv-key", cfg.Providers.PatentsViewAPIKey)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(&buf, "json", true)
	require.NoError(t, err)
	l.Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	l, err = newLogger(&buf, "text", false)
	require.NoError(t, err)
	l.Debug("hidden")
	assert.Empty(t, buf.String())

	_, err = newLogger(&buf, "xml", false)
	assert.Error(t, err)
}
