package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decocms/website/pkg/roadmap"
	"github.com/decocms/website/pkg/sitemap"
)

var checkSitemap bool

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Print the embedded sitemap.xml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		doc := sitemap.Document()
		if !checkSitemap {
			_, err := cmd.OutOrStdout().Write(doc)
			return err
		}

		set, err := sitemap.Parse(doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "sitemap ok: %d urls\n", len(set.URLs))
		return nil
	},
}

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Print the roadmap features as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		features, err := roadmap.NewStaticProvider().Features(cmd.Context())
		if err != nil {
			return fmt.Errorf("error loading roadmap: %w", err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(features)
	},
}

func init() {
	sitemapCmd.Flags().BoolVar(&checkSitemap, "check", false, "validate the sitemap instead of printing it")
}
