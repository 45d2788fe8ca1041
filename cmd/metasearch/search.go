// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/metasearch/internal/profile"
	"github.com/pdiddy/metasearch/internal/search"
	"github.com/pdiddy/metasearch/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search all configured sources and print ranked results",
	Long: `Search sends the query to every selected source in parallel, merges
duplicate records, and ranks the result against a preference profile.

The profile starts from a preset (--profile, default "default") and any
of --lang, --exclude-lang, --boost, --block, --mainstream-penalty, --from,
and --to override the matching field. Sources that fail are reported as
warnings; the search still succeeds with whatever the others returned.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	addSearchFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

func addSearchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSlice("source", nil, "source to query (repeatable; default: all configured)")
	f.Int("page", 1, "result page requested from each source")
	f.Int("page-size", 10, "records requested from each source")
	f.String("profile", "", "preset to start from (see `metasearch profiles`)")
	f.StringSlice("lang", nil, "preferred language codes")
	f.StringSlice("exclude-lang", nil, "language codes to penalize")
	f.StringSlice("boost", nil, "domain suffixes to boost (e.g. .edu)")
	f.StringSlice("block", nil, "domain suffixes to penalize (e.g. .com)")
	f.Float64("mainstream-penalty", 0, "penalty coefficient for commercial hosts, 0 to 1")
	f.String("from", "", "publication date range start (YYYY-MM-DD)")
	f.String("to", "", "publication date range end (YYYY-MM-DD)")
	f.String("format", "table", "output format: table, json, or csl")
	f.Int("limit", 0, "print at most this many results (0 = all)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table", "json", "csl":
	default:
		return fmt.Errorf("unknown format %q (want table, json, or csl)", format)
	}

	cfg, err := currentConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	req, err := requestFromFlags(cmd, args, a)
	if err != nil {
		return err
	}

	resp, err := a.orch.Run(context.Background(), req)
	if err != nil {
		return err
	}

	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(resp.Results) > limit {
		resp.Results = resp.Results[:limit]
	}
	if format != "table" {
		warnFailedSources(os.Stderr, resp.Meta)
	}
	return writeResponse(os.Stdout, resp, format)
}

// requestFromFlags assembles the search request: positional args form the
// query, the preset supplies the base profile, and set flags patch it.
func requestFromFlags(cmd *cobra.Command, args []string, a *app) (types.Request, error) {
	f := cmd.Flags()

	presetName, _ := f.GetString("profile")
	if presetName == "" {
		presetName = a.defaultPreset()
	}
	preset, ok := a.catalog.Lookup(presetName)
	if !ok {
		return types.Request{}, fmt.Errorf("unknown profile %q", presetName)
	}

	var patch profile.Patch
	if f.Changed("lang") {
		patch.PreferredLangs, _ = f.GetStringSlice("lang")
	}
	if f.Changed("exclude-lang") {
		patch.ExcludeLangs, _ = f.GetStringSlice("exclude-lang")
	}
	if f.Changed("boost") {
		patch.Boost, _ = f.GetStringSlice("boost")
	}
	if f.Changed("block") {
		patch.Block, _ = f.GetStringSlice("block")
	}
	if f.Changed("mainstream-penalty") {
		p, _ := f.GetFloat64("mainstream-penalty")
		if p < 0 || p > 1 {
			return types.Request{}, fmt.Errorf("--mainstream-penalty must be between 0 and 1, got %v", p)
		}
		patch.MainstreamPenalty = &p
	}
	from, _ := f.GetString("from")
	to, _ := f.GetString("to")
	if from != "" || to != "" {
		for _, d := range []string{from, to} {
			if d == "" {
				continue
			}
			if _, ok := search.ParseDate(d); !ok {
				return types.Request{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", d)
			}
		}
		patch.TimeRange = &types.TimeRange{From: from, To: to}
	}

	page, _ := f.GetInt("page")
	pageSize, _ := f.GetInt("page-size")
	sources, _ := f.GetStringSlice("source")

	return types.Request{
		Query:    strings.Join(args, " "),
		Page:     page,
		PageSize: pageSize,
		Sources:  sources,
		Profile:  profile.Merge(preset.Profile, patch),
	}, nil
}

func writeResponse(w io.Writer, resp types.Response, format string) error {
	switch format {
	case "json":
		return search.FormatJSON(resp, w)
	case "csl":
		return search.FormatCSL(resp, w)
	default:
		search.FormatTable(resp, w)
		return nil
	}
}

func warnFailedSources(w io.Writer, meta types.Meta) {
	for name, sm := range meta.PerSource {
		if sm.Failed() {
			fmt.Fprintf(w, "warning: %s failed: %s\n", name, strings.Join(sm.Errors, "; "))
		}
	}
}
