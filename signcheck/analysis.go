// Package signcheck contains checks that use the sign analysis to find negative values and zeros where they cause
// wrong results or panics.
package signcheck

import (
	"github.com/signcheck/signcheck/analysis/facts/signs"
	"github.com/signcheck/signcheck/analysis/lint"
	"github.com/signcheck/signcheck/signcheck/sg1000"
	"github.com/signcheck/signcheck/signcheck/sg1001"
	"github.com/signcheck/signcheck/signcheck/sg1002"

	"golang.org/x/tools/go/analysis"
)

var Analyzers = []*lint.Analyzer{
	sg1000.SCAnalyzer,
	sg1001.SCAnalyzer,
	sg1002.SCAnalyzer,
}

// New returns copies of all checks that share a signs analyzer configured with opts, instead of [signs.Analyzer].
func New(opts ...signs.Option) []*analysis.Analyzer {
	sa := signs.New(opts...)
	out := make([]*analysis.Analyzer, 0, len(Analyzers))
	for _, a := range Analyzers {
		cp := &analysis.Analyzer{
			Name:             a.Analyzer.Name,
			Doc:              a.Analyzer.Doc,
			URL:              a.Analyzer.URL,
			Run:              a.Analyzer.Run,
			RunDespiteErrors: a.Analyzer.RunDespiteErrors,
			ResultType:       a.Analyzer.ResultType,
			FactTypes:        a.Analyzer.FactTypes,
		}
		for _, req := range a.Analyzer.Requires {
			if req == signs.Analyzer {
				req = sa
			}
			cp.Requires = append(cp.Requires, req)
		}
		out = append(out, cp)
	}
	return out
}
