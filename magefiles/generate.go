//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// cvDir returns the LaTeX source directory, taken from CVDATA_BASE_DIR when set.
func cvDir() string {
	if dir := os.Getenv("CVDATA_BASE_DIR"); dir != "" {
		return dir
	}
	return "."
}

// Generate extracts the CV sources into the JSON data document.
func Generate() error {
	ensureBuilt()
	return sh.RunV(binPath(), "build", "--base-dir", cvDir())
}

// Stamp writes the last commit date of the CV sources to git_date.tex.
func Stamp() error {
	ensureBuilt()
	return sh.RunV(binPath(), "stamp", "--base-dir", cvDir())
}

// Index loads the generated JSON document into the publication index.
func Index() error {
	mg.SerialDeps(Generate)
	return sh.RunV(binPath(), "store", "--base-dir", cvDir())
}

// All stamps the revision date, regenerates the data document and indexes it.
func All() {
	mg.SerialDeps(Stamp, Generate, Index)
}
