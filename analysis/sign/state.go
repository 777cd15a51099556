package sign

import (
	"fmt"
	"slices"
	"strings"

	"github.com/signcheck/signcheck/go/ir"
)

// A State maps every tracked variable of a function to an abstract value. All states of one function have the same
// set of keys.
//
// States are values: the transfer functions return new states and never modify their receiver.
type State struct {
	dom  Domain
	vals map[*ir.Variable]Value
}

func newState(dom Domain, fn *ir.Function, v Value) State {
	s := State{dom: dom, vals: map[*ir.Variable]Value{}}
	for _, decl := range fn.Vars {
		if dom.Applies(decl.Type) {
			s.vals[decl] = v
		}
	}
	return s
}

// BottomState returns a state that maps every variable of fn that is tracked by dom to ⊥.
func BottomState(dom Domain, fn *ir.Function) State { return newState(dom, fn, Bottom) }

// TopState returns a state that maps every variable of fn that is tracked by dom to ⊤.
func TopState(dom Domain, fn *ir.Function) State { return newState(dom, fn, Top) }

func (s State) Domain() Domain { return s.dom }

// Tracked reports whether v is a key of s.
func (s State) Tracked(v *ir.Variable) bool {
	_, ok := s.vals[v]
	return ok
}

// Get returns the value of v. Untracked variables are ⊤.
func (s State) Get(v *ir.Variable) Value {
	if val, ok := s.vals[v]; ok {
		return val
	}
	return Top
}

// Eval returns the abstract value of an operand.
func (s State) Eval(op ir.Operand) Value {
	switch op := op.(type) {
	case *ir.Variable:
		return s.Get(op)
	case *ir.Const:
		return s.dom.Constant(op.Value)
	default:
		return Top
	}
}

// Vars returns the tracked variables, in declaration order.
func (s State) Vars() []*ir.Variable {
	out := make([]*ir.Variable, 0, len(s.vals))
	for v := range s.vals {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b *ir.Variable) int { return a.Index - b.Index })
	return out
}

func (s State) clone() State {
	vals := make(map[*ir.Variable]Value, len(s.vals))
	for k, v := range s.vals {
		vals[k] = v
	}
	return State{dom: s.dom, vals: vals}
}

// Equal reports whether s and o map the same variables to the same values.
func (s State) Equal(o State) bool {
	if len(s.vals) != len(o.vals) {
		return false
	}
	for k, v := range s.vals {
		if ov, ok := o.vals[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Join returns the pointwise join of s and o. It panics if the states don't track the same variables.
func (s State) Join(o State) State {
	if len(s.vals) != len(o.vals) {
		panic(fmt.Sprintf("joining states with %d and %d variables", len(s.vals), len(o.vals)))
	}
	out := State{dom: s.dom, vals: make(map[*ir.Variable]Value, len(s.vals))}
	for k, v := range s.vals {
		ov, ok := o.vals[k]
		if !ok {
			panic(fmt.Sprintf("variable %s missing from joined state", k))
		}
		out.vals[k] = s.dom.Join(v, ov)
	}
	return out
}

// Assign returns the state after executing stmt. Copies between variables are recorded in eq.
func (s State) Assign(stmt *ir.Assign, eq *Equiv) State {
	if !s.Tracked(stmt.Dest) {
		return s
	}

	var v Value
	switch rv := stmt.Value.(type) {
	case *ir.Use:
		v = s.Eval(rv.X)
		if src, ok := rv.X.(*ir.Variable); ok {
			eq.Add(stmt.Dest, src)
		}
	case *ir.BinOp:
		v = s.dom.Binary(rv.Op, s.Eval(rv.X), s.Eval(rv.Y))
	case *ir.UnOp:
		v = s.dom.Unary(rv.Op, s.Eval(rv.X))
	default:
		v = Top
	}

	out := s.clone()
	out.vals[stmt.Dest] = v
	return out
}

// Branch returns the states on the false and true edges of a branch on the result of stmt.
//
// If stmt computes a comparison with at least one tracked operand, the operands, as well as every variable recorded
// as a copy of an operand, are refined according to the comparison's outcome. Otherwise both returned states equal s.
func (s State) Branch(stmt *ir.Assign, eq *Equiv) (State, State) {
	binop, ok := stmt.Value.(*ir.BinOp)
	if !ok || !ir.Comparison(binop.Op) {
		return s.clone(), s.clone()
	}
	x, _ := binop.X.(*ir.Variable)
	y, _ := binop.Y.(*ir.Variable)
	if !s.Tracked(x) && !s.Tracked(y) {
		return s.clone(), s.clone()
	}

	a, b := s.Eval(binop.X), s.Eval(binop.Y)
	fa, fb := s.dom.RefineFalse(binop.Op, a, b)
	ta, tb := s.dom.RefineTrue(binop.Op, a, b)

	apply := func(st State, a, b Value) State {
		st = st.clone()
		st.refine(x, a, eq)
		st.refine(y, b, eq)
		return st
	}
	return apply(s, fa, fb), apply(s, ta, tb)
}

// refine sets v and its recorded copies to val. It modifies s in place.
func (s State) refine(v *ir.Variable, val Value, eq *Equiv) {
	if !s.Tracked(v) {
		return
	}
	s.vals[v] = val
	for _, alias := range eq.Aliases(v) {
		if s.Tracked(alias) {
			s.vals[alias] = val
		}
	}
}

// Call returns the state after a call whose result is stored in dest. Calls aren't modelled; dest becomes ⊤.
func (s State) Call(dest *ir.Variable) State {
	if dest == nil || !s.Tracked(dest) {
		return s
	}
	out := s.clone()
	out.vals[dest] = Top
	return out
}

func (s State) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, v := range s.Vars() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", v, s.vals[v])
	}
	sb.WriteString("}")
	return sb.String()
}

// Equiv records which variables have been directly copied to or from each other. Entries are never removed, even
// when one side of a copy is later reassigned.
type Equiv struct {
	m map[*ir.Variable][]*ir.Variable
}

func NewEquiv() *Equiv {
	return &Equiv{m: map[*ir.Variable][]*ir.Variable{}}
}

// Add records that a and b hold the same value.
func (eq *Equiv) Add(a, b *ir.Variable) {
	if eq == nil || a == b {
		return
	}
	eq.add(a, b)
	eq.add(b, a)
}

func (eq *Equiv) add(from, to *ir.Variable) {
	if slices.Contains(eq.m[from], to) {
		return
	}
	eq.m[from] = append(eq.m[from], to)
}

// Aliases returns the variables that v was copied to or from, in the order the copies were first seen.
func (eq *Equiv) Aliases(v *ir.Variable) []*ir.Variable {
	if eq == nil {
		return nil
	}
	return eq.m[v]
}
