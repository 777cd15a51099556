// Package signs defines an analyzer that runs the sign analysis on every source function of a package. Its result
// is shared by all checks that consume signs.
package signs

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"runtime/trace"

	"github.com/signcheck/signcheck/analysis/sign"
	"github.com/signcheck/signcheck/config"
	"github.com/signcheck/signcheck/go/ir"
	"github.com/signcheck/signcheck/internal/passes/buildir"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/analysis"
)

// Result holds the fixpoints of all source functions of a package.
type Result struct {
	Domain sign.Domain
	// ReportPossible reports whether checks should report values that
	// may, but need not, be invalid.
	ReportPossible bool
	// Funcs holds one result per source function, in the order of
	// buildir's SrcFuncs.
	Funcs []*sign.Result

	byFunc map[*ir.Function]*sign.Result
}

// Func returns the result for fn, or nil if fn isn't a source function of the package.
func (r *Result) Func(fn *ir.Function) *sign.Result { return r.byFunc[fn] }

// New returns a new analyzer computing a [Result]. Options override signcheck.conf, and flags override options.
func New(opts ...Option) *analysis.Analyzer {
	o := &options{}
	Options(opts).apply(o)

	a := &analysis.Analyzer{
		Name:       "signs",
		Doc:        "computes the signs of signed integer variables",
		Run:        o.run,
		Requires:   []*analysis.Analyzer{buildir.Analyzer, config.Analyzer},
		ResultType: reflect.TypeOf(new(Result)),
	}

	registerFlags(o, &a.Flags)

	return a
}

var Analyzer = New()

// For returns the result of the signs analyzer that pass.Analyzer requires. It panics if pass.Analyzer doesn't
// require one.
func For(pass *analysis.Pass) *Result {
	for _, req := range pass.Analyzer.Requires {
		if res, ok := pass.ResultOf[req].(*Result); ok {
			return res
		}
	}
	panic(fmt.Sprintf("analyzer %s doesn't require a signs analyzer", pass.Analyzer.Name))
}

func (o *options) run(pass *analysis.Pass) (interface{}, error) {
	ctx, task := trace.NewTask(context.Background(), "signs")
	defer task.End()

	cfg := config.For(pass)
	dom, err := cfg.Sign.ParsedDomain()
	if err != nil {
		return nil, err
	}
	if o.domain != nil {
		dom = *o.domain
	}
	possible := cfg.Sign.ReportPossible
	if o.possible != nil {
		possible = *o.possible
	}

	fns := pass.ResultOf[buildir.Analyzer].(*buildir.IR).SrcFuncs
	res := &Result{
		Domain:         dom,
		ReportPossible: possible,
		Funcs:          make([]*sign.Result, len(fns)),
		byFunc:         make(map[*ir.Function]*sign.Result, len(fns)),
	}

	workers := o.workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	// Functions share no state, so each one gets its own worklist.
	var g errgroup.Group
	g.SetLimit(workers)
	for i, fn := range fns {
		g.Go(func() error {
			trace.WithRegion(ctx, "analyze", func() {
				res.Funcs[i] = sign.Analyze(fn, dom)
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, fn := range fns {
		res.byFunc[fn] = res.Funcs[i]
	}
	return res, nil
}
