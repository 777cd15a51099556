package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/signcheck/signcheck/analysis/dfa"
	"github.com/signcheck/signcheck/analysis/sign"
	"github.com/signcheck/signcheck/go/ir"
	"github.com/signcheck/signcheck/go/ir/irutil"

	"gopkg.in/yaml.v3"
)

type funcStates struct {
	Function string        `json:"function" yaml:"function"`
	Domain   string        `json:"domain" yaml:"domain"`
	Steps    int           `json:"steps" yaml:"steps"`
	Blocks   []blockStates `json:"blocks" yaml:"blocks"`
}

type blockStates struct {
	Block   string                `json:"block" yaml:"block"`
	Comment string                `json:"comment,omitempty" yaml:"comment,omitempty"`
	Reached bool                  `json:"reached" yaml:"reached"`
	Dead    bool                  `json:"dead,omitempty" yaml:"dead,omitempty"`
	Signs   map[string]sign.Value `json:"signs,omitempty" yaml:"signs,omitempty"`
}

func states(fn *ir.Function, dom sign.Domain) funcStates {
	res := sign.Analyze(fn, dom)
	out := funcStates{
		Function: fn.Name,
		Domain:   dom.String(),
		Steps:    res.Steps(),
	}
	labels := varLabels(fn)
	for _, b := range fn.Blocks {
		bs := blockStates{
			Block:   b.String(),
			Comment: b.Comment,
			Reached: res.Reached(b),
			Dead:    !irutil.Reachable(fn.Entry(), b),
		}
		if bs.Reached {
			st := res.In(b)
			bs.Signs = map[string]sign.Value{}
			for _, v := range st.Vars() {
				bs.Signs[labels[v]] = st.Get(v)
			}
		}
		out.Blocks = append(out.Blocks, bs)
	}
	return out
}

// varLabels names the variables of fn uniquely. Shadowed variables share a
// name and are told apart by their index.
func varLabels(fn *ir.Function) map[*ir.Variable]string {
	count := map[string]int{}
	for _, v := range fn.Vars {
		count[v.String()]++
	}
	out := make(map[*ir.Variable]string, len(fn.Vars))
	for _, v := range fn.Vars {
		if count[v.String()] > 1 {
			out[v] = fmt.Sprintf("%s#%d", v, v.Index)
		} else {
			out[v] = v.String()
		}
	}
	return out
}

func writeStates(w io.Writer, fns []*ir.Function, dom sign.Domain, format string) error {
	all := make([]funcStates, 0, len(fns))
	for _, fn := range fns {
		all = append(all, states(fn, dom))
	}

	switch format {
	case "text", "":
		for _, fs := range all {
			fmt.Fprintf(w, "%s (%s, %d steps)\n", fs.Function, fs.Domain, fs.Steps)
			for _, bs := range fs.Blocks {
				switch {
				case bs.Dead:
					fmt.Fprintf(w, "\t%s: dead\n", bs.Block)
					continue
				case !bs.Reached:
					fmt.Fprintf(w, "\t%s: unreachable\n", bs.Block)
					continue
				}
				fmt.Fprintf(w, "\t%s:", bs.Block)
				for _, name := range slices.Sorted(maps.Keys(bs.Signs)) {
					fmt.Fprintf(w, " %s=%s", name, bs.Signs[name])
				}
				fmt.Fprintln(w)
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(all); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func lattice(dom sign.Domain) string {
	return dfa.Dot(dfa.Join[sign.Value](dom.Join), dom.Values(), dom.Bottom(), dom.Top())
}
