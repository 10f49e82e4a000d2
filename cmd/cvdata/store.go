// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cvdata/internal/revision"
	"github.com/pdiddy/cvdata/internal/store"
	"github.com/pdiddy/cvdata/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Index the built publications in SQLite",
	Long: `Store reads the JSON document written by build and replaces the
publication index with its publications, tagged with the current revision
date. Use --list to print the indexed publications instead.`,
	RunE: runStore,
}

func init() {
	storeCmd.Flags().String("db", "", "SQLite database relative to the base directory (default web/data/cv.db)")
	storeCmd.Flags().String("revision", "", "revision label for this build (default: last commit date)")
	storeCmd.Flags().String("list", "", "print indexed publications of a category (all for every category)")
	_ = viper.BindPFlag("store.db", storeCmd.Flags().Lookup("db"))

	rootCmd.AddCommand(storeCmd)
}

func runStore(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("reading build config: %w", err)
	}

	storeCfg := types.StoreConfig{DB: viper.GetString("store.db")}

	s, err := store.Open(cfg.Path(storeCfg.DB))
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := context.Background()

	if list, _ := cmd.Flags().GetString("list"); list != "" {
		if list == "all" {
			list = ""
		}
		rows, err := s.Publications(ctx, list)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(rows)
	}

	if cfg.Format == types.OutputYAML {
		return fmt.Errorf("store reads the JSON document; rebuild with --format json")
	}
	rec, err := loadRecord(cfg.Path(cfg.Output))
	if err != nil {
		return err
	}

	rev, _ := cmd.Flags().GetString("revision")
	if rev == "" {
		if rev, err = revision.New().LastCommitDate(cfg.BaseDir); err != nil {
			logger.Warn().Err(err).Msg("no revision date, indexing without one")
		}
	}

	summary, err := s.Ingest(ctx, rec, rev)
	if err != nil {
		return err
	}

	parts := make([]string, 0, len(types.Categories()))
	for _, cat := range types.Categories() {
		parts = append(parts, fmt.Sprintf("%s: %d", cat, summary.Categories[cat]))
	}
	fmt.Printf("indexed %d publications (build %d, revision %q): %s\n",
		summary.Total(), summary.BuildID, rev, strings.Join(parts, ", "))
	return nil
}

// loadRecord reads a document written by build.
func loadRecord(path string) (*types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading CV data (run build first): %w", err)
	}
	rec := types.NewRecord()
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rec, nil
}
