// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render serializes a types.Record. Output is deterministic: the
// same record always produces the same bytes.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cvdata/pkg/types"
)

// JSON writes rec as JSON indented by two spaces. Field order follows the
// record, non-ASCII text is written verbatim and HTML characters are not
// escaped.
func JSON(w io.Writer, rec *types.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// YAML writes rec as YAML with the same key order as JSON.
func YAML(w io.Writer, rec *types.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// Write serializes rec to w in the given format.
func Write(w io.Writer, rec *types.Record, format types.OutputFormat) error {
	switch format {
	case types.OutputJSON, "":
		return JSON(w, rec)
	case types.OutputYAML:
		return YAML(w, rec)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// WriteFile serializes rec to path, creating parent directories. The file is
// written to a temporary sibling first and renamed into place, so a failed
// run never leaves a partial document behind.
func WriteFile(path string, rec *types.Record, format types.OutputFormat) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temporary output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, rec, format); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temporary output: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting output permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
