package extract

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cvdata/internal/metrics"
	"github.com/pdiddy/cvdata/pkg/types"
)

const fixtureDir = "testdata/cv"

// readFixture returns the contents of a file under testdata/cv.
func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixtureDir, name))
	require.NoError(t, err)
	return string(data)
}

// copyFixtures copies testdata/cv into a temp dir, leaving out the named
// files, and returns the temp dir.
func copyFixtures(t *testing.T, skip ...string) string {
	t.Helper()
	dir := t.TempDir()
	entries, err := os.ReadDir(fixtureDir)
	require.NoError(t, err)
	skipped := make(map[string]bool)
	for _, s := range skip {
		skipped[s] = true
	}
	for _, e := range entries {
		if skipped[e.Name()] {
			continue
		}
		data, err := os.ReadFile(filepath.Join(fixtureDir, e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, e.Name()), data, 0o644))
	}
	return dir
}

func sourceConfig(dir string) types.SourceConfig {
	cfg := types.DefaultBuildConfig().SourceConfig
	cfg.BaseDir = dir
	return cfg
}

func TestRun(t *testing.T) {
	dir := copyFixtures(t)
	var logBuf bytes.Buffer
	lookup := metrics.Lookup{
		metrics.NormalizeTitle("Optical Switching for 6G Fronthaul"): {JCRQuantile: "Q1"},
	}

	rec, err := New(sourceConfig(dir), lookup, zerolog.New(&logBuf)).Run()
	require.NoError(t, err)

	assert.Equal(t, "Taewon Song", rec.Personal.Name)
	assert.Contains(t, rec.Biography, "optical networks & 6G")
	assert.Len(t, rec.Employment, 2)
	assert.Len(t, rec.Education, 2)
	assert.Len(t, rec.Skills, 2)
	assert.Len(t, rec.Projects, 2)
	assert.Len(t, rec.Publications.Journals, 1)
	assert.Len(t, rec.Publications.Conferences, 1)
	assert.Len(t, rec.Publications.EarlyAccess, 1)
	assert.Empty(t, rec.Publications.Books)
	assert.Equal(t, "Q1", rec.Publications.Journals[0].JCRQuantile)
	assert.Len(t, rec.Misc.Awards, 2)
	assert.Len(t, rec.Misc.Activities, 2)
	assert.Len(t, rec.References, 2)

	assert.Contains(t, logBuf.String(), `"section":"publications"`)
	assert.NotContains(t, logBuf.String(), `"level":"warn"`)
}

func TestRunMissingOptionalSources(t *testing.T) {
	tests := []struct {
		name  string
		skip  string
		check func(t *testing.T, rec *types.Record)
	}{
		{
			name: "no references",
			skip: "referee-full.tex",
			check: func(t *testing.T, rec *types.Record) {
				assert.NotNil(t, rec.References)
				assert.Empty(t, rec.References)
			},
		},
		{
			name: "no bibliography",
			skip: "own-bib.bib",
			check: func(t *testing.T, rec *types.Record) {
				for _, cat := range types.Categories() {
					assert.Empty(t, rec.Publications.Category(cat))
					assert.NotNil(t, rec.Publications.Category(cat))
				}
			},
		},
		{
			name: "no misc",
			skip: "misc.tex",
			check: func(t *testing.T, rec *types.Record) {
				assert.Empty(t, rec.Misc.Awards)
				assert.Empty(t, rec.Misc.Activities)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := copyFixtures(t, tt.skip)
			var logBuf bytes.Buffer

			rec, err := New(sourceConfig(dir), nil, zerolog.New(&logBuf)).Run()
			require.NoError(t, err)

			tt.check(t, rec)
			assert.Contains(t, logBuf.String(), `"level":"warn"`)
			assert.Contains(t, logBuf.String(), tt.skip)
			assert.Equal(t, "Taewon Song", rec.Personal.Name)
		})
	}
}

func TestRunMissingRequiredSource(t *testing.T) {
	for _, name := range []string{
		"cv-taewon.tex", "bio.tex", "employment.tex", "education.tex", "skills.tex", "projects.tex",
	} {
		t.Run(name, func(t *testing.T) {
			dir := copyFixtures(t, name)

			rec, err := New(sourceConfig(dir), nil, zerolog.Nop()).Run()

			require.Error(t, err)
			assert.Nil(t, rec)
			assert.True(t, errors.Is(err, ErrRequiredSource))
			assert.True(t, errors.Is(err, os.ErrNotExist))
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestRunOptionalSourceUnset(t *testing.T) {
	dir := copyFixtures(t)
	cfg := sourceConfig(dir)
	cfg.Files.References = ""
	var logBuf bytes.Buffer

	rec, err := New(cfg, nil, zerolog.New(&logBuf)).Run()
	require.NoError(t, err)

	assert.Empty(t, rec.References)
	assert.NotContains(t, logBuf.String(), `"level":"warn"`)
}
