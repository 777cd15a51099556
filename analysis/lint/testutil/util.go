// Package testutil runs checks against the test packages in their testdata directories.
package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/signcheck/signcheck/analysis/lint"

	"golang.org/x/tools/go/analysis/analysistest"
)

// Run runs a on every package in testdata/src/example.com and compares the diagnostics with the packages' // want
// comments. Each package may contain a signcheck.conf to test non-default configurations.
func Run(t *testing.T, a *lint.Analyzer) {
	t.Helper()
	dirs, err := filepath.Glob("testdata/src/example.com/*")
	if err != nil {
		t.Fatalf("couldn't enumerate test data: %s", err)
	}

	if len(dirs) == 0 {
		t.Fatalf("found no tests")
	}

	pkgs := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		// Work around Windows paths
		dir = strings.ReplaceAll(dir, `\`, `/`)
		pkgs = append(pkgs, strings.TrimPrefix(dir, "testdata/src/"))
	}

	testdata, err := filepath.Abs("testdata")
	if err != nil {
		t.Fatal(err)
	}
	analysistest.Run(t, testdata, a.Analyzer, pkgs...)
}
