// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package revision stamps a file with the date of the last commit of a
// working tree, falling back to today's date when git cannot answer.
package revision

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	binGit = "git"

	// DateLayout is the format written to the stamp file.
	DateLayout = "2006-01-02"

	// DefaultOutput is the stamp file read by the LaTeX build.
	DefaultOutput = "git_date.tex"
)

// ErrEmptyDate is returned when git succeeds but prints no date, as in a
// repository without commits.
var ErrEmptyDate = errors.New("git returned an empty date")

// executor abstracts command execution for testing.
type executor interface {
	Output(dir, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) Output(dir, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	return cmd.Output()
}

// Stamper writes the revision date of a working tree to a file.
type Stamper struct {
	exec executor
	now  func() time.Time
}

// New returns a Stamper that runs the git binary on PATH.
func New() *Stamper {
	return &Stamper{exec: &osExecutor{}, now: time.Now}
}

// LastCommitDate returns the committer date of HEAD in dir as YYYY-MM-DD.
func (s *Stamper) LastCommitDate(dir string) (string, error) {
	out, err := s.exec.Output(dir, binGit, "log", "-1", "--format=%cd", "--date=format:%Y-%m-%d")
	if err != nil {
		return "", fmt.Errorf("running git log in %s: %w", dir, err)
	}
	date := strings.TrimSpace(string(out))
	if date == "" {
		return "", ErrEmptyDate
	}
	return date, nil
}

// Stamp writes the last commit date of dir to outFile (relative paths are
// resolved against dir) and returns the date written. When the date cannot
// be read from git, the error is reported on w and today's date is written
// instead. Only a failure to write outFile is returned as an error.
func (s *Stamper) Stamp(dir, outFile string, w io.Writer) (string, error) {
	if outFile == "" {
		outFile = DefaultOutput
	}
	if !filepath.IsAbs(outFile) {
		outFile = filepath.Join(dir, outFile)
	}

	date, err := s.LastCommitDate(dir)
	if err == nil {
		if err = writeDate(outFile, date); err == nil {
			fmt.Fprintf(w, "Updated date: %s\n", date)
			return date, nil
		}
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	date = s.now().Format(DateLayout)
	if err := writeDate(outFile, date); err != nil {
		return "", err
	}
	fmt.Fprintf(w, "Using fallback date: %s\n", date)
	return date, nil
}

func writeDate(path, date string) error {
	if err := os.WriteFile(path, []byte(date), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
