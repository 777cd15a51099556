package sg1000

import (
	"go/types"

	"github.com/signcheck/signcheck/analysis/facts/signs"
	"github.com/signcheck/signcheck/analysis/lint"
	"github.com/signcheck/signcheck/analysis/report"
	"github.com/signcheck/signcheck/analysis/sign"
	"github.com/signcheck/signcheck/go/ir"
	"github.com/signcheck/signcheck/go/types/typeutil"

	"golang.org/x/tools/go/analysis"
)

var SCAnalyzer = lint.InitializeAnalyzer(&lint.Analyzer{
	Analyzer: &analysis.Analyzer{
		Name:     "SG1000",
		Run:      run,
		Requires: append([]*analysis.Analyzer{signs.Analyzer}, report.RequiredAnalyzers...),
	},
	Doc: &lint.RawDocumentation{
		Title: `Negative value converted to an unsigned integer type`,
		Text: `Converting a negative signed integer to an unsigned type doesn't
fail. Instead, the value wraps around and becomes a very large number,
such as \'uint(-1)\' becoming the maximum value of \'uint\'.

The check reports conversions of values that are known to be lower
than 0. Unless \'report_possible\' is disabled, it also reports
conversions of values that haven't been shown to be at least 0, for
example because no comparison guards them.`,
		Since:    "v0.1.0",
		Options:  []string{"report_possible"},
		Severity: lint.SeverityWarning,
	},
})

var Analyzer = SCAnalyzer.Analyzer

func run(pass *analysis.Pass) (interface{}, error) {
	res := signs.For(pass)
	for _, fres := range res.Funcs {
		fres.Replay(func(b *ir.BasicBlock, stmt *ir.Assign, before sign.State) {
			conv, ok := stmt.Value.(*ir.Convert)
			if !ok || !typeutil.IsUnsignedInteger(conv.Type) {
				return
			}
			v, ok := conv.X.(*ir.Variable)
			if !ok || !before.Tracked(v) {
				return
			}
			typ := types.TypeString(conv.Type, types.RelativeTo(pass.Pkg))
			switch val := before.Get(v); {
			case val == sign.Lower:
				report.Report(pass, stmt.Pos, "value lower than 0 is being converted to "+typ, report.FilterGenerated())
			case val.MayBeNegative() && res.ReportPossible:
				report.Report(pass, stmt.Pos, "value being converted to "+typ+" may be lower than 0", report.FilterGenerated())
			}
		})
	}
	return nil, nil
}
