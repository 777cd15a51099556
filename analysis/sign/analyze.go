package sign

import (
	"fmt"

	"github.com/signcheck/signcheck/analysis/dfa"
	"github.com/signcheck/signcheck/go/ir"
	"github.com/signcheck/signcheck/go/ir/irutil"
)

type options struct {
	maxSteps int
}

// An Option configures [Analyze].
type Option func(*options)

// WithMaxSteps makes Analyze panic after processing more than n blocks. Zero means no limit.
func WithMaxSteps(n int) Option {
	return func(o *options) { o.maxSteps = n }
}

// Result is the fixpoint of the analysis of one function.
type Result struct {
	Func   *ir.Function
	Domain Domain

	in      map[*ir.BasicBlock]State
	reached map[*ir.BasicBlock]bool
	order   map[*ir.BasicBlock]int
	equiv   *Equiv
	steps   int
}

// In returns the state at the start of b.
func (res *Result) In(b *ir.BasicBlock) State { return res.in[b] }

// Reached reports whether control can reach b according to the analysis.
func (res *Result) Reached(b *ir.BasicBlock) bool { return res.reached[b] }

// Steps returns the number of blocks processed before the worklist emptied.
func (res *Result) Steps() int { return res.steps }

// Equiv returns the copies recorded during the analysis.
func (res *Result) Equiv() *Equiv { return res.equiv }

// Analyze computes the sign of every tracked variable at the start of every block of fn.
//
// The entry block starts with all variables at ⊤ and every other block at ⊥. Blocks are processed in order of
// descending post-order number until no block is queued. A successor is queued when it is first reached and whenever
// a join changes its state.
func Analyze(fn *ir.Function, dom Domain, opts ...Option) *Result {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	res := &Result{
		Func:    fn,
		Domain:  dom,
		in:      make(map[*ir.BasicBlock]State, len(fn.Blocks)),
		reached: map[*ir.BasicBlock]bool{},
		order:   irutil.PostOrder(fn),
		equiv:   NewEquiv(),
	}
	entry := fn.Entry()
	if entry == nil {
		return res
	}

	bottom := BottomState(dom, fn)
	for _, b := range fn.Blocks {
		res.in[b] = bottom
	}
	res.in[entry] = TopState(dom, fn)
	res.reached[entry] = true

	dfa.Debugf("Analyzing %s with the %s domain", fn, dom)
	wl := dfa.NewWorklist(func(b *ir.BasicBlock) int { return res.order[b] })
	wl.Push(entry)
	for wl.Len() > 0 {
		b := wl.Pop()
		res.steps++
		if o.maxSteps > 0 && res.steps > o.maxSteps {
			panic(fmt.Sprintf("analysis of %s didn't converge after %d steps", fn, o.maxSteps))
		}

		outs := res.transferBlock(b)
		dfa.Debugf("transfer(%s, %s) = %v", b, res.in[b], outs)
		for i, succ := range b.Succs() {
			out := outs[0]
			if len(outs) > 1 {
				out = outs[i]
			}
			old := res.in[succ]
			joined := old.Join(out)
			res.in[succ] = joined
			first := !res.reached[succ]
			res.reached[succ] = true
			if !first && joined.Equal(old) {
				continue
			}
			wl.Push(succ)
		}
	}
	dfa.Debugf("%s converged after %d steps", fn, res.steps)
	return res
}

// branchDef returns the index of the assignment in b that defines the condition of b's terminator, or -1 if b
// doesn't end in a branch on a variable assigned in b.
func branchDef(b *ir.BasicBlock) int {
	br, ok := b.Term.(*ir.Branch)
	if !ok {
		return -1
	}
	cond, ok := br.Cond.(*ir.Variable)
	if !ok {
		return -1
	}
	for i := len(b.Stmts) - 1; i >= 0; i-- {
		if b.Stmts[i].Dest == cond {
			return i
		}
	}
	return -1
}

// transferBlock applies the effects of b to its stored state. It returns either a single state that flows to every
// successor, or one state per successor.
func (res *Result) transferBlock(b *ir.BasicBlock) []State {
	s := res.in[b]
	def := branchDef(b)

	var outs []State
	if def == -1 {
		for _, stmt := range b.Stmts {
			s = s.Assign(stmt, res.equiv)
		}
		outs = []State{s}
	} else {
		for _, stmt := range b.Stmts[:def] {
			s = s.Assign(stmt, res.equiv)
		}
		for _, stmt := range b.Stmts[def+1:] {
			if s.Tracked(stmt.Dest) {
				panic(fmt.Sprintf("%s: assignment %q follows the definition of the branch condition %q", b, stmt, b.Stmts[def]))
			}
		}
		f, t := s.Branch(b.Stmts[def], res.equiv)
		outs = []State{f, t}
	}

	if call, ok := b.Term.(*ir.Call); ok && call.Dest != nil {
		for i := range outs {
			outs[i] = outs[i].Call(call.Dest)
		}
	}
	return outs
}

// Replay calls visit for every assignment in every reached block, passing the state that holds immediately before
// the assignment. Blocks are visited in reverse post order.
func (res *Result) Replay(visit func(b *ir.BasicBlock, stmt *ir.Assign, before State)) {
	if res.Func.Entry() == nil {
		return
	}
	eq := NewEquiv()
	for _, b := range irutil.ReversePostOrder(res.Func) {
		if !res.reached[b] {
			continue
		}
		s := res.in[b]
		for _, stmt := range b.Stmts {
			visit(b, stmt, s)
			s = s.Assign(stmt, eq)
		}
	}
}

// Collect replays res and gathers the findings that fn returns for each assignment.
func Collect[F any](res *Result, fn func(b *ir.BasicBlock, stmt *ir.Assign, before State) []F) []F {
	var out []F
	res.Replay(func(b *ir.BasicBlock, stmt *ir.Assign, before State) {
		out = append(out, fn(b, stmt, before)...)
	})
	return out
}
