// Package buildir defines an Analyzer that constructs the IR
// of an error-free package and returns the set of all
// functions within it. It does not report any diagnostics itself but
// may be used as an input to other analyzers.
package buildir

import (
	"context"
	"go/ast"
	"go/types"
	"reflect"
	"runtime/trace"

	"github.com/signcheck/signcheck/go/ir"
	"github.com/signcheck/signcheck/go/ir/irbuild"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ssa"
)

var Analyzer = &analysis.Analyzer{
	Name:       "buildir",
	Doc:        "build IR for later passes",
	Run:        run,
	ResultType: reflect.TypeOf(new(IR)),
}

// IR provides the lowered intermediate representation for all the
// non-blank source functions in the current package.
type IR struct {
	Pkg      *ssa.Package
	SrcFuncs []*ir.Function
}

func run(pass *analysis.Pass) (interface{}, error) {
	ctx, task := trace.NewTask(context.Background(), "buildir")
	defer task.End()

	// We must create a new Program for each Package because the
	// analysis API provides no place to hang a Program shared by
	// all Packages. This is unlikely to be a problem in practice
	// because the analysis is intraprocedural.
	//
	// Naive form keeps local variables in memory, which is what
	// gives the IR its variables that are assigned more than once.
	prog := ssa.NewProgram(pass.Fset, ssa.NaiveForm)

	// Create SSA packages for all imports.
	// Order is not significant.
	created := make(map[*types.Package]bool)
	var createAll func(pkgs []*types.Package)
	createAll = func(pkgs []*types.Package) {
		for _, p := range pkgs {
			if !created[p] {
				created[p] = true
				prog.CreatePackage(p, nil, nil, true)
				createAll(p.Imports())
			}
		}
	}
	createAll(pass.Pkg.Imports())

	// Create and build the primary package.
	ssapkg := prog.CreatePackage(pass.Pkg, pass.Files, pass.TypesInfo, false)
	ssapkg.Build()

	funcs := SourceFunctions(ssapkg, pass.Files, pass.TypesInfo)

	region := trace.StartRegion(ctx, "lower")
	out := make([]*ir.Function, 0, len(funcs))
	for _, f := range funcs {
		out = append(out, irbuild.Function(f))
	}
	region.End()

	return &IR{Pkg: ssapkg, SrcFuncs: out}, nil
}

// SourceFunctions returns the non-blank functions declared in files,
// followed by their function literals, in source order.
func SourceFunctions(pkg *ssa.Package, files []*ast.File, info *types.Info) []*ssa.Function {
	var funcs []*ssa.Function
	var addAnons func(f *ssa.Function)
	addAnons = func(f *ssa.Function) {
		funcs = append(funcs, f)
		for _, anon := range f.AnonFuncs {
			addAnons(anon)
		}
	}
	for _, f := range files {
		for _, decl := range f.Decls {
			fdecl, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			// Blank functions are not lowered.
			if fdecl.Name.Name == "_" {
				continue
			}
			obj, ok := info.Defs[fdecl.Name].(*types.Func)
			if !ok {
				continue
			}
			if fn := pkg.Prog.FuncValue(obj); fn != nil {
				addAnons(fn)
			}
		}
	}
	return funcs
}
