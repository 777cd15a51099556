// Package debug contains helpers for debugging and testing the sign analysis.
package debug

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"

	"github.com/signcheck/signcheck/go/ir"
	"github.com/signcheck/signcheck/go/ir/irbuild"

	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

func parse(src string) (*token.FileSet, *ast.File, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "foo.go", src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, nil, err
	}
	return fset, f, nil
}

// Build parses, type-checks and builds a single-file Go package from a string, in the form expected by package
// irbuild.
func Build(src string) (*ssa.Package, error) {
	fset, f, err := parse(src)
	if err != nil {
		return nil, err
	}
	pkg := types.NewPackage("foo", f.Name.Name)
	tcfg := &types.Config{Importer: importer.Default()}
	ssapkg, _, err := ssautil.BuildPackage(tcfg, fset, pkg, []*ast.File{f}, ssa.NaiveForm)
	if err != nil {
		return nil, err
	}
	return ssapkg, nil
}

// Functions builds src like [Build] and lowers all of its functions, including closures. The result is keyed by
// the functions' unqualified names, such as "f" and "f$1".
func Functions(src string) (map[string]*ir.Function, error) {
	ssapkg, err := Build(src)
	if err != nil {
		return nil, err
	}
	out := map[string]*ir.Function{}
	var add func(fn *ssa.Function)
	add = func(fn *ssa.Function) {
		out[fn.Name()] = irbuild.Function(fn)
		for _, anon := range fn.AnonFuncs {
			add(anon)
		}
	}
	for _, m := range ssapkg.Members {
		if fn, ok := m.(*ssa.Function); ok {
			add(fn)
		}
	}
	return out, nil
}
