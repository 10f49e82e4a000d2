// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cvdata/internal/revision"
	"github.com/pdiddy/cvdata/pkg/types"
)

var stampCmd = &cobra.Command{
	Use:   "stamp",
	Short: "Write the last commit date for the LaTeX build",
	Long: `Stamp writes the committer date of the last commit (YYYY-MM-DD) to
git_date.tex in the base directory. When git is unavailable or the directory
has no history, today's date is written instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := types.StampConfig{
			Dir:    viper.GetString("stamp.dir"),
			Output: viper.GetString("stamp.output"),
		}
		if cfg.Dir == "" {
			cfg.Dir = viper.GetString("base_dir")
		}
		_, err := revision.New().Stamp(cfg.Dir, cfg.Output, os.Stdout)
		return err
	},
}

func init() {
	stampCmd.Flags().String("output", "", "stamp file relative to the base directory (default git_date.tex)")
	_ = viper.BindPFlag("stamp.output", stampCmd.Flags().Lookup("output"))

	rootCmd.AddCommand(stampCmd)
}
