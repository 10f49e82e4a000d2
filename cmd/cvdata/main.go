// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cvdata CLI.
// It builds the website's cv_data.json from the LaTeX CV sources, stamps the
// LaTeX build with the last revision date, and indexes publications.
package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cvdata/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is the console logger configured by the root command.
var logger = zerolog.New(os.Stderr)

// rootCmd is the base command for the cvdata CLI.
var rootCmd = &cobra.Command{
	Use:   "cvdata",
	Short: "Turn LaTeX CV sources into structured website data",
	Long: `cvdata reads the LaTeX sources of a CV (personal details, biography,
employment, education, skills, projects, bibliography, activities and
referees), enriches journal publications with metrics from a spreadsheet, and
writes a single JSON document for the personal website.

The stamp subcommand writes the date of the last commit for the LaTeX build,
and store indexes the built publications in SQLite.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		setupLogging(verbose)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cvdata.yaml or ~/.config/cvdata/config.yaml)")
	rootCmd.PersistentFlags().String("base-dir", ".", "directory holding the CV sources")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	_ = viper.BindPFlag("base_dir", rootCmd.PersistentFlags().Lookup("base-dir"))
}

func setupLogging(verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func initConfig() {
	// Variables from .env are visible to viper's environment lookup.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Msg("could not read .env")
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cvdata")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cvdata"))
		}
	}

	viper.SetEnvPrefix("CVDATA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	registerDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		logger.Info().Str("file", viper.ConfigFileUsed()).Msg("using config file")
	}
}

// registerDefaults installs the default file layout so every key resolves
// even without a config file.
func registerDefaults(v *viper.Viper) {
	d := types.DefaultBuildConfig()
	v.SetDefault("base_dir", d.BaseDir)
	v.SetDefault("files.main", d.Files.Main)
	v.SetDefault("files.biography", d.Files.Biography)
	v.SetDefault("files.employment", d.Files.Employment)
	v.SetDefault("files.education", d.Files.Education)
	v.SetDefault("files.skills", d.Files.Skills)
	v.SetDefault("files.projects", d.Files.Projects)
	v.SetDefault("files.bibliography", d.Files.Bibliography)
	v.SetDefault("files.misc", d.Files.Misc)
	v.SetDefault("files.references", d.Files.References)
	v.SetDefault("metrics.file", d.Metrics.File)
	v.SetDefault("metrics.columns.title", d.Metrics.Columns.Title)
	v.SetDefault("metrics.columns.impact_factor", d.Metrics.Columns.ImpactFactor)
	v.SetDefault("metrics.columns.percentile", d.Metrics.Columns.Percentile)
	v.SetDefault("metrics.columns.field", d.Metrics.Columns.Field)
	v.SetDefault("metrics.columns.quantile", d.Metrics.Columns.Quantile)
	v.SetDefault("output", d.Output)
	v.SetDefault("format", string(d.Format))
	v.SetDefault("stamp.output", "git_date.tex")
	v.SetDefault("store.db", "web/data/cv.db")
}

// buildConfig decodes the build settings from v.
func buildConfig(v *viper.Viper) (types.BuildConfig, error) {
	var cfg types.BuildConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
