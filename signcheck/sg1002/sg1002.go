package sg1002

import (
	"go/token"

	"github.com/signcheck/signcheck/analysis/facts/signs"
	"github.com/signcheck/signcheck/analysis/lint"
	"github.com/signcheck/signcheck/analysis/report"
	"github.com/signcheck/signcheck/analysis/sign"
	"github.com/signcheck/signcheck/go/ir"

	"golang.org/x/tools/go/analysis"
)

var SCAnalyzer = lint.InitializeAnalyzer(&lint.Analyzer{
	Analyzer: &analysis.Analyzer{
		Name:     "SG1002",
		Run:      run,
		Requires: append([]*analysis.Analyzer{signs.Analyzer}, report.RequiredAnalyzers...),
	},
	Doc: &lint.RawDocumentation{
		Title: `Integer division by zero`,
		Text: `Dividing an integer by zero, or computing the remainder of such a
division, panics at runtime. The check reports divisors that are known
to be 0, usually because a preceding comparison established it:

    if d == 0 {
        return n / d
    }

Unless \'report_possible\' is disabled, it also reports divisors that a
comparison has narrowed to a range including 0, such as \'d\' after
\'if d <= 0\'. Divisors nothing is known about aren't reported.`,
		Since:    "v0.1.0",
		Options:  []string{"report_possible"},
		Severity: lint.SeverityError,
	},
})

var Analyzer = SCAnalyzer.Analyzer

func run(pass *analysis.Pass) (interface{}, error) {
	res := signs.For(pass)
	for _, fres := range res.Funcs {
		fres.Replay(func(b *ir.BasicBlock, stmt *ir.Assign, before sign.State) {
			binop, ok := stmt.Value.(*ir.BinOp)
			if !ok || (binop.Op != token.QUO && binop.Op != token.REM) {
				return
			}
			v, ok := binop.Y.(*ir.Variable)
			if !ok || !before.Tracked(v) {
				return
			}
			what := "division"
			if binop.Op == token.REM {
				what = "remainder"
			}
			switch val := before.Get(v); {
			case val == sign.Zero:
				report.Report(pass, stmt.Pos, "integer "+what+" by zero", report.FilterGenerated())
			case val != sign.Top && val.MayBeZero() && res.ReportPossible:
				report.Report(pass, stmt.Pos, "divisor of integer "+what+" may be 0", report.FilterGenerated())
			}
		})
	}
	return nil, nil
}
