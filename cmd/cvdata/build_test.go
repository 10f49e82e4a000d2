package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cvdata/internal/extract"
	"github.com/pdiddy/cvdata/pkg/types"
)

const fixtureDir = "../../internal/extract/testdata/cv"

// copyFixtures copies the extractor fixtures into a temp dir, leaving out the
// named files.
func copyFixtures(t *testing.T, skip ...string) string {
	t.Helper()
	dir := t.TempDir()
	entries, err := os.ReadDir(fixtureDir)
	require.NoError(t, err)
	for _, e := range entries {
		skipped := false
		for _, s := range skip {
			skipped = skipped || s == e.Name()
		}
		if skipped {
			continue
		}
		data, err := os.ReadFile(filepath.Join(fixtureDir, e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, e.Name()), data, 0o644))
	}
	return dir
}

func configFor(dir string) types.BuildConfig {
	cfg := types.DefaultBuildConfig()
	cfg.BaseDir = dir
	return cfg
}

func TestBuildWritesDocument(t *testing.T) {
	dir := copyFixtures(t)

	rec, out, err := build(configFor(dir), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "web", "data", "cv_data.json"), out)
	assert.Equal(t, "Taewon Song", rec.Personal.Name)

	loaded, err := loadRecord(out)
	require.NoError(t, err)
	assert.Equal(t, rec, loaded)
}

func TestBuildIsDeterministic(t *testing.T) {
	dir := copyFixtures(t)
	cfg := configFor(dir)

	_, out, err := build(cfg, zerolog.Nop())
	require.NoError(t, err)
	first, err := os.ReadFile(out)
	require.NoError(t, err)

	_, _, err = build(cfg, zerolog.Nop())
	require.NoError(t, err)
	second, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildMissingRequiredWritesNothing(t *testing.T) {
	dir := copyFixtures(t, "employment.tex")

	_, _, err := build(configFor(dir), zerolog.Nop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, extract.ErrRequiredSource))

	_, statErr := os.Stat(filepath.Join(dir, "web", "data", "cv_data.json"))
	assert.True(t, os.IsNotExist(statErr), "no output may be produced")
}

func TestBuildMissingOptionalWarns(t *testing.T) {
	dir := copyFixtures(t, "referee-full.tex")
	var logBuf bytes.Buffer

	rec, out, err := build(configFor(dir), zerolog.New(&logBuf))
	require.NoError(t, err)
	assert.Empty(t, rec.References)
	assert.Contains(t, logBuf.String(), "referee-full.tex")
	// The metrics workbook is absent from the fixtures too.
	assert.Contains(t, logBuf.String(), "journal metrics will not be available")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"references": []`)
}

func TestBuildYAML(t *testing.T) {
	dir := copyFixtures(t)
	cfg := configFor(dir)
	cfg.Format = types.OutputYAML
	cfg.Output = "cv_data.yaml"

	_, out, err := build(cfg, zerolog.Nop())
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "personal:\n"))
}

func TestBuildConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cvdata.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`base_dir: /srv/cv
files:
  main: main.tex
metrics:
  columns:
    title: Title
format: yaml
`), 0o644))

	v := viper.New()
	registerDefaults(v)
	v.SetConfigFile(cfgPath)
	require.NoError(t, v.ReadInConfig())

	cfg, err := buildConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "/srv/cv", cfg.BaseDir)
	assert.Equal(t, "main.tex", cfg.Files.Main)
	assert.Equal(t, "bio.tex", cfg.Files.Biography, "unset keys keep their default")
	assert.Equal(t, "Title", cfg.Metrics.Columns.Title)
	assert.Equal(t, "Rating", cfg.Metrics.Columns.Quantile)
	assert.Equal(t, "journal_pubs.xlsx", cfg.Metrics.File)
	assert.Equal(t, types.OutputYAML, cfg.Format)
	assert.Equal(t, "web/data/cv_data.json", cfg.Output)
}

func TestPrintSummary(t *testing.T) {
	rec := types.NewRecord()
	rec.Personal.Name = "Taewon Song"
	var buf bytes.Buffer

	printSummary(&buf, rec, "cv_data.json")

	assert.Contains(t, buf.String(), "Name:         Taewon Song")
	assert.Contains(t, buf.String(), "Email:        N/A")
	assert.Contains(t, buf.String(), "0 journals, 0 conferences, 0 early access")
}
