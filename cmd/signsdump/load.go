package main

import (
	"errors"
	"fmt"

	"github.com/signcheck/signcheck/go/ir"
	"github.com/signcheck/signcheck/go/ir/irbuild"
	"github.com/signcheck/signcheck/internal/passes/buildir"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedImports | packages.NeedDeps |
	packages.NeedTypes | packages.NeedTypesInfo | packages.NeedSyntax

// load lowers the source functions of the packages matching patterns.
func load(patterns []string, fl *flags) ([]*ir.Function, error) {
	re, err := fl.filter()
	if err != nil {
		return nil, err
	}

	cfg := &packages.Config{Mode: loadMode, Tests: fl.tests}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, errors.New("packages contain errors")
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages match %q", patterns)
	}

	_, ssapkgs := ssautil.Packages(pkgs, ssa.NaiveForm)
	var out []*ir.Function
	for i, ssapkg := range ssapkgs {
		if ssapkg == nil {
			continue
		}
		ssapkg.Build()
		for _, fn := range buildir.SourceFunctions(ssapkg, pkgs[i].Syntax, pkgs[i].TypesInfo) {
			if re != nil && !re.MatchString(fn.Name()) {
				continue
			}
			out = append(out, irbuild.Function(fn))
		}
	}
	return out, nil
}
