// Package generated defines an analyzer that determines which of a package's files were generated by tools.
package generated

import (
	"go/ast"
	"reflect"

	"golang.org/x/tools/go/analysis"
)

// Analyzer maps the name of every file of the package to whether it was generated. Generated files start with a
// comment of the form "// Code generated ... DO NOT EDIT.". File names are the unadjusted names as recorded in the
// file set, ignoring //line directives.
var Analyzer = &analysis.Analyzer{
	Name:             "isgenerated",
	Doc:              "annotate file names that have been code generated",
	Run:              run,
	RunDespiteErrors: true,
	ResultType:       reflect.TypeOf(map[string]bool{}),
}

func run(pass *analysis.Pass) (interface{}, error) {
	m := map[string]bool{}
	for _, f := range pass.Files {
		path := pass.Fset.PositionFor(f.Pos(), false).Filename
		m[path] = ast.IsGenerated(f)
	}
	return m, nil
}
