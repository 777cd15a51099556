// Package report reports diagnostics of checks, honoring the checks enabled in signcheck.conf, generated files and
// ignore directives.
package report

import (
	"go/token"

	"github.com/signcheck/signcheck/analysis/facts/directives"
	"github.com/signcheck/signcheck/analysis/facts/generated"
	"github.com/signcheck/signcheck/analysis/lint"
	"github.com/signcheck/signcheck/config"

	"golang.org/x/tools/go/analysis"
)

// RequiredAnalyzers are the analyzers whose results Report consults. Checks should require them.
var RequiredAnalyzers = []*analysis.Analyzer{config.Analyzer, generated.Analyzer, directives.Analyzer}

type Options struct {
	FilterGenerated bool
}

type Option func(*Options)

// FilterGenerated drops the diagnostic if it is located in a generated file.
func FilterGenerated() Option {
	return func(opts *Options) {
		opts.FilterGenerated = true
	}
}

func enabled(pass *analysis.Pass) bool {
	cfg, ok := pass.ResultOf[config.Analyzer].(*config.Config)
	if !ok {
		return true
	}
	return lint.FilterChecks([]*analysis.Analyzer{pass.Analyzer}, cfg.Checks)[pass.Analyzer.Name]
}

func ignored(pass *analysis.Pass, pos token.Pos) bool {
	dirs, ok := pass.ResultOf[directives.Analyzer].([]directives.Directive)
	if !ok {
		return false
	}
	dpos := lint.DisplayPosition(pass.Fset, pos)
	for _, dir := range dirs {
		if dir.Matches(pass.Fset, pass.Analyzer.Name, dpos) {
			return true
		}
	}
	return false
}

// Report reports message at pos, unless the check is disabled for the package, pos is on a line covered by an
// ignore directive, or the options filter it. Diagnostics without a position, such as those for implicit
// conversions, are dropped.
func Report(pass *analysis.Pass, pos token.Pos, message string, opts ...Option) {
	if !pos.IsValid() {
		return
	}
	cfg := &Options{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.FilterGenerated {
		m, _ := pass.ResultOf[generated.Analyzer].(map[string]bool)
		if m[pass.Fset.PositionFor(pos, false).Filename] {
			return
		}
	}
	if !enabled(pass) || ignored(pass, pos) {
		return
	}

	pass.Report(analysis.Diagnostic{
		Pos:     pos,
		Message: message,
	})
}
