package sg1001

import (
	"github.com/signcheck/signcheck/analysis/facts/signs"
	"github.com/signcheck/signcheck/analysis/lint"
	"github.com/signcheck/signcheck/analysis/report"
	"github.com/signcheck/signcheck/analysis/sign"
	"github.com/signcheck/signcheck/go/ir"

	"golang.org/x/tools/go/analysis"
)

var SCAnalyzer = lint.InitializeAnalyzer(&lint.Analyzer{
	Analyzer: &analysis.Analyzer{
		Name:     "SG1001",
		Run:      run,
		Requires: append([]*analysis.Analyzer{signs.Analyzer}, report.RequiredAnalyzers...),
	},
	Doc: &lint.RawDocumentation{
		Title: `Negative index or slice bound`,
		Text: `Indexing or slicing with a negative value panics at runtime.

The check reports indices and slice bounds that are known to be lower
than 0. Unless \'report_possible\' is disabled, it also reports those
that haven't been shown to be at least 0.`,
		Since:    "v0.1.0",
		Options:  []string{"report_possible"},
		Severity: lint.SeverityWarning,
	},
})

var Analyzer = SCAnalyzer.Analyzer

func run(pass *analysis.Pass) (interface{}, error) {
	res := signs.For(pass)
	check := func(stmt *ir.Assign, before sign.State, op ir.Operand, what string) {
		v, ok := op.(*ir.Variable)
		if !ok || !before.Tracked(v) {
			return
		}
		switch val := before.Get(v); {
		case val == sign.Lower:
			report.Report(pass, stmt.Pos, what+" is lower than 0", report.FilterGenerated())
		case val.MayBeNegative() && res.ReportPossible:
			report.Report(pass, stmt.Pos, what+" may be lower than 0", report.FilterGenerated())
		}
	}

	for _, fres := range res.Funcs {
		fres.Replay(func(b *ir.BasicBlock, stmt *ir.Assign, before sign.State) {
			switch rv := stmt.Value.(type) {
			case *ir.Index:
				check(stmt, before, rv.Index, "index")
			case *ir.Slice:
				check(stmt, before, rv.Low, "low slice bound")
				check(stmt, before, rv.High, "high slice bound")
				check(stmt, before, rv.Max, "max slice bound")
			}
		})
	}
	return nil, nil
}
