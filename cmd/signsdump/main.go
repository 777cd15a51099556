// signsdump prints the intermediate representation and the sign
// states computed for the functions of Go packages, and draws the
// sign lattices.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"regexp"

	"github.com/signcheck/signcheck/analysis/dfa"
	"github.com/signcheck/signcheck/analysis/sign"
	"github.com/signcheck/signcheck/go/ir"
	"github.com/signcheck/signcheck/version"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	verbose bool
	tests   bool
	run     string
	domain  sign.Domain
	output  string
}

func (fl *flags) filter() (*regexp.Regexp, error) {
	if fl.run == "" {
		return nil, nil
	}
	re, err := regexp.Compile(fl.run)
	if err != nil {
		return nil, fmt.Errorf("invalid -run pattern: %w", err)
	}
	return re, nil
}

func newRootCmd(w io.Writer) *cobra.Command {
	fl := &flags{domain: sign.Precise}

	root := &cobra.Command{
		Use:          "signsdump",
		Short:        "Inspect the sign analysis of Go packages",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			dfa.Debug = fl.verbose
		},
	}
	root.SetOut(w)
	root.PersistentFlags().BoolVarP(&fl.verbose, "verbose", "v", false, "Log every step of the analysis")

	irCmd := &cobra.Command{
		Use:   "ir [packages]",
		Short: "Print the intermediate representation of functions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fns, err := load(args, fl)
			if err != nil {
				return err
			}
			for _, fn := range fns {
				ir.WriteFunction(cmd.OutOrStdout(), fn)
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	statesCmd := &cobra.Command{
		Use:   "states [packages]",
		Short: "Print the sign of every variable at the start of every block",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fns, err := load(args, fl)
			if err != nil {
				return err
			}
			return writeStates(cmd.OutOrStdout(), fns, fl.domain, fl.output)
		},
	}
	statesCmd.Flags().StringVarP(&fl.output, "output", "o", "text", "Output format (text, json or yaml)")

	latticeCmd := &cobra.Command{
		Use:   "lattice",
		Short: "Print the lattice of a domain in Graphviz format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), lattice(fl.domain))
			return nil
		},
	}

	for _, cmd := range []*cobra.Command{irCmd, statesCmd} {
		cmd.Flags().BoolVar(&fl.tests, "tests", false, "Include test packages")
		cmd.Flags().StringVar(&fl.run, "run", "", "Only dump functions whose names match the regular expression")
	}
	for _, cmd := range []*cobra.Command{statesCmd, latticeCmd} {
		cmd.Flags().Var(&fl.domain, "domain", "Sign domain (simple or precise)")
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if fl.verbose {
				version.Verbose(cmd.OutOrStdout(), "signsdump")
			} else {
				version.Print(cmd.OutOrStdout(), "signsdump")
			}
		},
	}

	root.AddCommand(irCmd, statesCmd, latticeCmd, versionCmd)
	return root
}
