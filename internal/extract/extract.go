// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns the LaTeX sources of a CV into a types.Record.
//
// Every section has its own stateless rule (Personal, Biography, Employment,
// Education, Skills, Projects, Publications, Misc, References) that takes the
// document text and returns the section. Extractor reads the source files,
// applies the rules in a fixed order and assembles the record.
package extract

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/pdiddy/cvdata/internal/metrics"
	"github.com/pdiddy/cvdata/pkg/types"
)

// ErrRequiredSource wraps the read failure of a source the record cannot be
// built without.
var ErrRequiredSource = errors.New("required source unavailable")

// Extractor reads the CV sources of one base directory.
type Extractor struct {
	cfg     types.SourceConfig
	metrics metrics.Lookup
	log     zerolog.Logger
}

// New creates an Extractor. lookup may be empty.
func New(cfg types.SourceConfig, lookup metrics.Lookup, log zerolog.Logger) *Extractor {
	return &Extractor{cfg: cfg, metrics: lookup, log: log}
}

// Run extracts every section. A missing required source (main, biography,
// employment, education, skills, projects) aborts the run with an error
// wrapping ErrRequiredSource. A missing optional source (bibliography, misc,
// references) is logged and its section stays empty.
func (x *Extractor) Run() (*types.Record, error) {
	rec := types.NewRecord()
	f := x.cfg.Files

	text, err := x.required("main", f.Main)
	if err != nil {
		return nil, err
	}
	rec.Personal = Personal(text)
	x.log.Info().Str("section", "personal").Str("name", rec.Personal.Name).Msg("parsed")

	if text, err = x.required("biography", f.Biography); err != nil {
		return nil, err
	}
	rec.Biography = Biography(text)
	x.log.Info().Str("section", "biography").Int("chars", len(rec.Biography)).Msg("parsed")

	if text, err = x.required("employment", f.Employment); err != nil {
		return nil, err
	}
	rec.Employment = Employment(text)
	x.log.Info().Str("section", "employment").Int("entries", len(rec.Employment)).Msg("parsed")

	if text, err = x.required("education", f.Education); err != nil {
		return nil, err
	}
	rec.Education = Education(text)
	x.log.Info().Str("section", "education").Int("entries", len(rec.Education)).Msg("parsed")

	if text, err = x.required("skills", f.Skills); err != nil {
		return nil, err
	}
	rec.Skills = Skills(text)
	x.log.Info().Str("section", "skills").Int("entries", len(rec.Skills)).Msg("parsed")

	if text, err = x.required("projects", f.Projects); err != nil {
		return nil, err
	}
	rec.Projects = Projects(text)
	x.log.Info().Str("section", "projects").Int("entries", len(rec.Projects)).Msg("parsed")

	if text, ok := x.optional("bibliography", f.Bibliography); ok {
		res := Publications(text, x.metrics)
		rec.Publications = res.Publications
		for _, key := range res.Dropped {
			x.log.Debug().Str("key", key).Msg("publication not listed")
		}
		x.log.Info().Str("section", "publications").
			Int("journals", len(rec.Publications.Journals)).
			Int("conferences", len(rec.Publications.Conferences)).
			Int("early_access", len(rec.Publications.EarlyAccess)).
			Int("enriched", res.Enriched).
			Int("dropped", len(res.Dropped)).
			Msg("parsed")
	}

	if text, ok := x.optional("misc", f.Misc); ok {
		rec.Misc = Misc(text)
		x.log.Info().Str("section", "misc").
			Int("awards", len(rec.Misc.Awards)).
			Int("activities", len(rec.Misc.Activities)).
			Msg("parsed")
	}

	if text, ok := x.optional("references", f.References); ok {
		rec.References = References(text)
		x.log.Info().Str("section", "references").Int("entries", len(rec.References)).Msg("parsed")
	}

	return rec, nil
}

func (x *Extractor) required(section, name string) (string, error) {
	path := x.cfg.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s source %s: %w", ErrRequiredSource, section, path, err)
	}
	return string(data), nil
}

func (x *Extractor) optional(section, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	path := x.cfg.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			x.log.Warn().Str("section", section).Str("file", path).Msg("source not found, skipping")
		} else {
			x.log.Warn().Err(err).Str("section", section).Str("file", path).Msg("source unreadable, skipping")
		}
		return "", false
	}
	return string(data), true
}
