// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List profile presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := currentConfig()
		if err != nil {
			return err
		}
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		presets := a.catalog.Presets()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(presets)
		}

		for _, p := range presets {
			marker := " "
			if p.ID == a.defaultPreset() {
				marker = "*"
			}
			fmt.Printf("%s %-10s %s\n", marker, p.ID, p.Name)
			if p.Description != "" {
				fmt.Printf("    %s\n", p.Description)
			}
			prof := p.Profile
			fmt.Printf("    langs=%s exclude=%s penalty=%.2f boost=%s block=%s\n",
				strings.Join(prof.PreferredLangs, ","),
				strings.Join(prof.ExcludeLangs, ","),
				prof.MainstreamPenalty,
				strings.Join(prof.Domain.Boost, ","),
				strings.Join(prof.Domain.Block, ","))
		}
		return nil
	},
}

func init() {
	profilesCmd.Flags().Bool("json", false, "print presets as JSON")
	rootCmd.AddCommand(profilesCmd)
}
