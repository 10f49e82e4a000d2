// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cvdata/internal/extract"
	"github.com/pdiddy/cvdata/internal/metrics"
	"github.com/pdiddy/cvdata/internal/render"
	"github.com/pdiddy/cvdata/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Extract the CV sources into cv_data.json",
	Long: `Build reads the LaTeX CV sources from the base directory, fills missing
journal metrics from the metrics workbook, and writes the CV document.

The main file, biography, employment, education, skills and projects sources
are required: if one is missing the build fails and nothing is written. The
bibliography, misc, references and metrics files are optional and only
produce a warning when missing.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "output path relative to the base directory (default web/data/cv_data.json)")
	buildCmd.Flags().String("format", "", "output format: json or yaml (default json)")
	buildCmd.Flags().String("metrics", "", "journal metrics workbook (default journal_pubs.xlsx)")
	_ = viper.BindPFlag("output", buildCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("format", buildCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("metrics.file", buildCmd.Flags().Lookup("metrics"))

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("reading build config: %w", err)
	}

	rec, out, err := build(cfg, logger)
	if err != nil {
		return err
	}
	printSummary(os.Stdout, rec, out)
	return nil
}

// build runs one extraction and writes the result. Nothing is written when a
// required source is missing.
func build(cfg types.BuildConfig, log zerolog.Logger) (*types.Record, string, error) {
	var lookup metrics.Lookup
	if cfg.Metrics.File != "" {
		lookup = metrics.Load(cfg.Path(cfg.Metrics.File), cfg.Metrics.Columns, log)
	}

	rec, err := extract.New(cfg.SourceConfig, lookup, log).Run()
	if err != nil {
		return nil, "", err
	}

	out := cfg.Path(cfg.Output)
	if err := render.WriteFile(out, rec, cfg.Format); err != nil {
		return nil, "", err
	}
	log.Info().Str("file", out).Msg("CV data written")
	return rec, out, nil
}

func printSummary(w io.Writer, rec *types.Record, out string) {
	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}
	fmt.Fprintf(w, "\n=== Summary (%s) ===\n", out)
	fmt.Fprintf(w, "Name:         %s\n", orNA(rec.Personal.Name))
	fmt.Fprintf(w, "Email:        %s\n", orNA(rec.Personal.Email))
	fmt.Fprintf(w, "Employment:   %d entries\n", len(rec.Employment))
	fmt.Fprintf(w, "Education:    %d entries\n", len(rec.Education))
	fmt.Fprintf(w, "Projects:     %d entries\n", len(rec.Projects))
	fmt.Fprintf(w, "Publications: %d journals, %d conferences, %d early access\n",
		len(rec.Publications.Journals), len(rec.Publications.Conferences), len(rec.Publications.EarlyAccess))
	fmt.Fprintf(w, "Misc:         %d awards, %d activities\n", len(rec.Misc.Awards), len(rec.Misc.Activities))
	fmt.Fprintf(w, "References:   %d\n", len(rec.References))
}
