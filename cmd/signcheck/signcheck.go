// signcheck finds negative values and zeros that flow into unsigned
// conversions, indices and divisors.
package main

import (
	"os"

	"github.com/signcheck/signcheck/analysis/facts/signs"
	"github.com/signcheck/signcheck/signcheck"
	"github.com/signcheck/signcheck/version"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
)

func main() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "-version", "--version":
			version.Print(os.Stdout, "signcheck")
			return
		case "-debug.version":
			version.Verbose(os.Stdout, "signcheck")
			return
		}
	}

	var analyzers []*analysis.Analyzer
	for _, a := range signcheck.Analyzers {
		analyzers = append(analyzers, a.Analyzer)
	}
	// Listing the signs analyzer registers its flags as -signs.*.
	analyzers = append(analyzers, signs.Analyzer)
	multichecker.Main(analyzers...)
}
