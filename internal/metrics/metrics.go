// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics loads journal quality metrics from a spreadsheet and fills
// the metric fields of bibliography entries that do not declare them.
package metrics

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/cvdata/pkg/types"
)

// ErrNoSheet is returned when the workbook has no worksheet.
var ErrNoSheet = errors.New("workbook has no sheets")

// Metrics is the metric set of one journal publication. Empty fields were not
// present in the spreadsheet row.
type Metrics struct {
	ImpactFactor string `json:"impact_factor,omitempty" yaml:"impact_factor,omitempty"`
	JCRRanking   string `json:"jcr_ranking,omitempty" yaml:"jcr_ranking,omitempty"`
	JCRField     string `json:"jcr_field,omitempty" yaml:"jcr_field,omitempty"`
	JCRQuantile  string `json:"jcr_quantile,omitempty" yaml:"jcr_quantile,omitempty"`
}

func (m Metrics) empty() bool {
	return m == Metrics{}
}

// Lookup maps a normalized publication title to its metrics. It is built
// once and only read afterwards.
type Lookup map[string]Metrics

// NormalizeTitle lower-cases title and removes spaces. Distinct titles that
// differ only in spacing or case share a key.
func NormalizeTitle(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "")
}

// Get returns the metrics recorded for title.
func (l Lookup) Get(title string) (Metrics, bool) {
	m, ok := l[NormalizeTitle(title)]
	return m, ok
}

// Fill copies metrics for pub's title into the metric fields pub leaves
// empty. Values declared by the bibliography are never replaced. It reports
// whether a lookup row matched.
func (l Lookup) Fill(pub *types.Publication) bool {
	m, ok := l.Get(pub.Title)
	if !ok {
		return false
	}
	if pub.ImpactFactor == "" {
		pub.ImpactFactor = m.ImpactFactor
	}
	if pub.JCRQuantile == "" {
		pub.JCRQuantile = m.JCRQuantile
	}
	if pub.JCRRanking == "" {
		pub.JCRRanking = m.JCRRanking
	}
	if pub.JCRField == "" {
		pub.JCRField = m.JCRField
	}
	return true
}

// Load reads the first worksheet of the workbook at path. Metrics are
// optional enrichment: a missing or unreadable workbook is logged as a
// warning and yields an empty Lookup.
func Load(path string, cols types.MetricsColumns, log zerolog.Logger) Lookup {
	if path == "" {
		return Lookup{}
	}
	if _, err := os.Stat(path); err != nil {
		log.Warn().Str("file", path).Msg("metrics workbook not found, journal metrics will not be available")
		return Lookup{}
	}

	rows, err := readRows(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("could not load journal metrics")
		return Lookup{}
	}

	lookup := FromRows(rows, cols)
	log.Info().Int("publications", len(lookup)).Msg("loaded journal metrics")
	return lookup
}

func readRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// FromRows builds a Lookup from spreadsheet rows. The first row is the
// header; columns are located by the names in cols. Rows without a title or
// without any metric are not indexed.
func FromRows(rows [][]string, cols types.MetricsColumns) Lookup {
	lookup := Lookup{}
	if len(rows) == 0 {
		return lookup
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.TrimSpace(name)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	cell := func(row []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		v := strings.TrimSpace(row[i])
		if v == "nan" {
			return ""
		}
		return v
	}

	for _, row := range rows[1:] {
		title := cell(row, cols.Title)
		if title == "" {
			continue
		}

		var m Metrics
		m.ImpactFactor = cell(row, cols.ImpactFactor)
		if p := cell(row, cols.Percentile); p != "" {
			m.JCRRanking = "Top " + p + "%"
		}
		m.JCRField = cell(row, cols.Field)
		m.JCRQuantile = cell(row, cols.Quantile)

		if m.empty() {
			continue
		}
		lookup[NormalizeTitle(title)] = m
	}
	return lookup
}
