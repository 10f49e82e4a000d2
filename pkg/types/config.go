// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "path/filepath"

// OutputFormat selects the serialization format of the built record.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// SourceFiles names the LaTeX sources, relative to the base directory.
type SourceFiles struct {
	// Main is the top-level CV file carrying the personal details. Required.
	Main string `json:"main" yaml:"main" mapstructure:"main"`

	// Biography is required.
	Biography string `json:"biography" yaml:"biography" mapstructure:"biography"`

	// Employment, Education, Skills and Projects are required.
	Employment string `json:"employment" yaml:"employment" mapstructure:"employment"`
	Education  string `json:"education" yaml:"education" mapstructure:"education"`
	Skills     string `json:"skills" yaml:"skills" mapstructure:"skills"`
	Projects   string `json:"projects" yaml:"projects" mapstructure:"projects"`

	// Bibliography, Misc and References are optional; a missing file leaves
	// the section empty.
	Bibliography string `json:"bibliography" yaml:"bibliography" mapstructure:"bibliography"`
	Misc         string `json:"misc" yaml:"misc" mapstructure:"misc"`
	References   string `json:"references" yaml:"references" mapstructure:"references"`
}

// MetricsColumns names the spreadsheet header cells read by the metrics
// loader.
type MetricsColumns struct {
	Title        string `json:"title" yaml:"title" mapstructure:"title"`
	ImpactFactor string `json:"impact_factor" yaml:"impact_factor" mapstructure:"impact_factor"`
	Percentile   string `json:"percentile" yaml:"percentile" mapstructure:"percentile"`
	Field        string `json:"field" yaml:"field" mapstructure:"field"`
	Quantile     string `json:"quantile" yaml:"quantile" mapstructure:"quantile"`
}

// MetricsConfig locates the journal metrics workbook.
type MetricsConfig struct {
	// File is the .xlsx workbook, relative to the base directory. Optional.
	File    string         `json:"file" yaml:"file" mapstructure:"file"`
	Columns MetricsColumns `json:"columns" yaml:"columns" mapstructure:"columns"`
}

// SourceConfig is what the extractor needs to locate its inputs.
type SourceConfig struct {
	BaseDir string      `json:"base_dir" yaml:"base_dir" mapstructure:"base_dir"`
	Files   SourceFiles `json:"files" yaml:"files" mapstructure:"files"`
}

// Path resolves name against the base directory.
func (c SourceConfig) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.BaseDir, name)
}

// BuildConfig holds the settings of the build command.
type BuildConfig struct {
	SourceConfig `yaml:",inline" mapstructure:",squash"`

	Metrics MetricsConfig `json:"metrics" yaml:"metrics" mapstructure:"metrics"`

	// Output is the path of the generated document, relative to the base
	// directory (default web/data/cv_data.json).
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Format selects json or yaml output.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// StampConfig holds the settings of the stamp command.
type StampConfig struct {
	// Dir is the working tree whose last commit date is stamped.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Output is the file receiving the date (default git_date.tex).
	Output string `json:"output" yaml:"output" mapstructure:"output"`
}

// StoreConfig holds the settings of the publication index.
type StoreConfig struct {
	// DB is the SQLite database path (default web/data/cv.db).
	DB string `json:"db" yaml:"db" mapstructure:"db"`
}

// DefaultBuildConfig returns the file layout of the CV repository.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		SourceConfig: SourceConfig{
			BaseDir: ".",
			Files: SourceFiles{
				Main:         "cv-taewon.tex",
				Biography:    "bio.tex",
				Employment:   "employment.tex",
				Education:    "education.tex",
				Skills:       "skills.tex",
				Projects:     "projects.tex",
				Bibliography: "own-bib.bib",
				Misc:         "misc.tex",
				References:   "referee-full.tex",
			},
		},
		Metrics: MetricsConfig{
			File:    "journal_pubs.xlsx",
			Columns: DefaultMetricsColumns(),
		},
		Output: "web/data/cv_data.json",
		Format: OutputJSON,
	}
}

// DefaultMetricsColumns returns the header names of the journal_pubs.xlsx
// workbook.
func DefaultMetricsColumns() MetricsColumns {
	return MetricsColumns{
		Title:        "제목",
		ImpactFactor: "Impact Factor",
		Percentile:   "JCR",
		Field:        "분야",
		Quantile:     "Rating",
	}
}
