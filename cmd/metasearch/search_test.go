// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/metasearch/internal/profile"
	"github.com/pdiddy/metasearch/pkg/types"
)

func parseSearchFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "search"}
	addSearchFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func testApp() *app {
	return &app{catalog: profile.NewCatalog()}
}

func TestRequestFromFlagsDefaultPreset(t *testing.T) {
	cmd := parseSearchFlags(t)
	req, err := requestFromFlags(cmd, []string{"deep", "fjords"}, testApp())
	require.NoError(t, err)

	assert.Equal(t, "deep fjords", req.Query)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 10, req.PageSize)
	assert.Empty(t, req.Sources)
	assert.Equal(t, []string{"en"}, req.Profile.PreferredLangs)
	assert.InDelta(t, 0.2, req.Profile.MainstreamPenalty, 1e-9)
	assert.Equal(t, []string{".edu", ".org"}, req.Profile.Domain.Boost)
}

func TestRequestFromFlagsOverridesPreset(t *testing.T) {
	cmd := parseSearchFlags(t,
		"--profile", "nordic",
		"--lang", "nb,nn",
		"--mainstream-penalty", "0",
		"--from", "2020-01-01",
		"--source", "arxiv", "--source", "wikipedia",
		"--page", "2",
	)
	req, err := requestFromFlags(cmd, []string{"q"}, testApp())
	require.NoError(t, err)

	assert.Equal(t, []string{"nb", "nn"}, req.Profile.PreferredLangs)
	assert.Equal(t, []string{"ru", "zh"}, req.Profile.ExcludeLangs, "unset flags keep the preset")
	assert.Zero(t, req.Profile.MainstreamPenalty)
	assert.Equal(t, []string{".com"}, req.Profile.Domain.Block)
	require.NotNil(t, req.Profile.TimeRange)
	assert.Equal(t, "2020-01-01", req.Profile.TimeRange.From)
	assert.Equal(t, []string{"arxiv", "wikipedia"}, req.Sources)
	assert.Equal(t, 2, req.Page)
}

func TestRequestFromFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown preset", []string{"--profile", "nope"}},
		{"penalty out of range", []string{"--mainstream-penalty", "1.5"}},
		{"bad date", []string{"--to", "last week"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := parseSearchFlags(t, tt.args...)
			_, err := requestFromFlags(cmd, []string{"q"}, testApp())
			assert.Error(t, err)
		})
	}
}

func TestWarnFailedSources(t *testing.T) {
	var buf bytes.Buffer
	warnFailedSources(&buf, types.Meta{PerSource: map[string]types.SourceMeta{
		"arxiv":     {Count: 3},
		"wikipedia": {Errors: []string{"Wikipedia responded with 503"}},
	}})
	assert.Equal(t, "warning: wikipedia failed: Wikipedia responded with 503\n", buf.String())
}

func TestNewAppDefaultPreset(t *testing.T) {
	a, err := newApp(types.Config{DefaultProfile: "scholarly"})
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, "scholarly", a.defaultPreset())

	_, err = newApp(types.Config{DefaultProfile: "nope"})
	assert.Error(t, err)
}
