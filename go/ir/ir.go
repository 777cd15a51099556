// Package ir defines the control-flow graph representation consumed by the
// sign analysis.
//
// Unlike SSA, the representation keeps mutable variables: a variable may be
// assigned any number of times, and every assignment names its destination
// explicitly. A function is a list of basic blocks, each consisting of an
// ordered list of assignments followed by exactly one terminator. Blocks[0]
// is the entry block.
//
// Functions are built by package irbuild and are immutable afterwards.
package ir

import (
	"fmt"
	"go/constant"
	"go/token"
	"go/types"
)

// A Function is the unit of analysis.
type Function struct {
	Name   string
	Pos    token.Pos
	Blocks []*BasicBlock
	// Vars is the declared-variable table. Vars[i].Index == i.
	Vars []*Variable

	// Object is the function's declaration, if any. It is nil for
	// closures and synthetic functions.
	Object types.Object
}

// Entry returns the function's entry block, or nil if the function has
// no body.
func (fn *Function) Entry() *BasicBlock {
	if len(fn.Blocks) == 0 {
		return nil
	}
	return fn.Blocks[0]
}

func (fn *Function) String() string { return fn.Name }

// NewVar adds a variable to the function's declared-variable table.
func (fn *Function) NewVar(name string, typ types.Type, pos token.Pos) *Variable {
	v := &Variable{
		Index: len(fn.Vars),
		Name:  name,
		Type:  typ,
		Pos:   pos,
	}
	fn.Vars = append(fn.Vars, v)
	return v
}

// NewBlock appends an empty basic block to the function.
func (fn *Function) NewBlock(comment string) *BasicBlock {
	b := &BasicBlock{
		Index:   len(fn.Blocks),
		Comment: comment,
		Parent:  fn,
	}
	fn.Blocks = append(fn.Blocks, b)
	return b
}

// A Variable is an entry in a function's declared-variable table.
type Variable struct {
	Index int
	Name  string
	Type  types.Type
	Pos   token.Pos
}

func (v *Variable) String() string {
	if v.Name == "" {
		return fmt.Sprintf("_%d", v.Index)
	}
	return v.Name
}

// A BasicBlock is a straight-line sequence of assignments, ended by a
// terminator.
type BasicBlock struct {
	Index   int
	Comment string
	Parent  *Function
	Stmts   []*Assign
	Term    Terminator
}

// Succs returns the successors of b, in the order defined by its
// terminator.
func (b *BasicBlock) Succs() []*BasicBlock {
	if b.Term == nil {
		return nil
	}
	return b.Term.Successors()
}

func (b *BasicBlock) String() string { return fmt.Sprintf("b%d", b.Index) }

// An Assign stores the value of an rvalue in Dest.
type Assign struct {
	Dest  *Variable
	Value Rvalue
	Pos   token.Pos
}

func (a *Assign) String() string { return fmt.Sprintf("%s = %s", a.Dest, a.Value) }

// An Operand is the input of an rvalue: a variable, a constant, or a
// memory location that isn't modelled as a variable.
type Operand interface {
	fmt.Stringer
	operand()
}

// A Const is a literal value. Value is nil for the zero value of
// non-basic types.
type Const struct {
	Value constant.Value
	Type  types.Type
}

func (c *Const) String() string {
	if c.Value == nil {
		return "nil:" + types.TypeString(c.Type, nil)
	}
	return c.Value.ExactString() + ":" + types.TypeString(c.Type, nil)
}

// A Location is memory the graph doesn't model as a variable, such as
// globals, struct fields, pointees, and captured variables. Its value is
// never known.
type Location struct {
	Desc string
	Type types.Type
}

func (l *Location) String() string { return "&" + l.Desc }

func (*Variable) operand() {}
func (*Const) operand()    {}
func (*Location) operand() {}

// An Rvalue is the right-hand side of an assignment.
type Rvalue interface {
	fmt.Stringer
	rvalue()
}

// Use copies the value of X.
type Use struct{ X Operand }

// BinOp is a binary arithmetic, bitwise or comparison operation.
type BinOp struct {
	Op   token.Token
	X, Y Operand
}

// UnOp is a unary operation. Negation uses token.SUB.
type UnOp struct {
	Op token.Token
	X  Operand
}

// Convert converts X to Type.
type Convert struct {
	X    Operand
	Type types.Type
}

// Index reads element Index of X.
type Index struct {
	X, Index Operand
}

// Slice slices X. Absent bounds are nil.
type Slice struct {
	X, Low, High, Max Operand
}

// Opaque is any computation the graph doesn't describe further.
type Opaque struct{ Desc string }

func (*Use) rvalue()     {}
func (*BinOp) rvalue()   {}
func (*UnOp) rvalue()    {}
func (*Convert) rvalue() {}
func (*Index) rvalue()   {}
func (*Slice) rvalue()   {}
func (*Opaque) rvalue()  {}

func (r *Use) String() string   { return r.X.String() }
func (r *BinOp) String() string { return fmt.Sprintf("%s %s %s", r.X, r.Op, r.Y) }
func (r *UnOp) String() string  { return fmt.Sprintf("%s%s", r.Op, r.X) }
func (r *Convert) String() string {
	return fmt.Sprintf("%s(%s)", types.TypeString(r.Type, nil), r.X)
}
func (r *Index) String() string { return fmt.Sprintf("%s[%s]", r.X, r.Index) }
func (r *Slice) String() string {
	s := func(op Operand) string {
		if op == nil {
			return ""
		}
		return op.String()
	}
	if r.Max != nil {
		return fmt.Sprintf("%s[%s:%s:%s]", r.X, s(r.Low), s(r.High), s(r.Max))
	}
	return fmt.Sprintf("%s[%s:%s]", r.X, s(r.Low), s(r.High))
}
func (r *Opaque) String() string { return "opaque(" + r.Desc + ")" }

// Comparison reports whether op is one of the six comparison operators.
func Comparison(op token.Token) bool {
	switch op {
	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
		return true
	default:
		return false
	}
}

// A Terminator ends a basic block and transfers control.
type Terminator interface {
	fmt.Stringer
	Successors() []*BasicBlock
	terminator()
}

// Goto transfers control to Target.
type Goto struct {
	Target *BasicBlock
}

// Branch transfers control to Then if Cond is true and to Else
// otherwise. Its successors are always ordered [Else, Then].
type Branch struct {
	Cond       Operand
	Else, Then *BasicBlock
	Pos        token.Pos
}

// Call calls Callee and continues at Next. Dest is nil if the call's
// result isn't used or doesn't exist.
type Call struct {
	Callee string
	Args   []Operand
	Dest   *Variable
	Next   *BasicBlock
	Pos    token.Pos
}

// Return returns from the function.
type Return struct {
	Results []Operand
}

// Other is any terminator without successors that isn't a return, such as
// a panic.
type Other struct {
	Desc string
}

func (*Goto) terminator()   {}
func (*Branch) terminator() {}
func (*Call) terminator()   {}
func (*Return) terminator() {}
func (*Other) terminator()  {}

func (t *Goto) Successors() []*BasicBlock   { return []*BasicBlock{t.Target} }
func (t *Branch) Successors() []*BasicBlock { return []*BasicBlock{t.Else, t.Then} }
func (t *Call) Successors() []*BasicBlock {
	if t.Next == nil {
		return nil
	}
	return []*BasicBlock{t.Next}
}
func (*Return) Successors() []*BasicBlock { return nil }
func (*Other) Successors() []*BasicBlock  { return nil }

func (t *Goto) String() string { return "goto " + t.Target.String() }
func (t *Branch) String() string {
	return fmt.Sprintf("if %s goto %s else %s", t.Cond, t.Then, t.Else)
}
func (t *Call) String() string {
	s := t.Callee + "("
	for i, arg := range t.Args {
		if i > 0 {
			s += ", "
		}
		s += arg.String()
	}
	s += ")"
	if t.Dest != nil {
		s = t.Dest.String() + " = " + s
	}
	if t.Next != nil {
		s += " -> " + t.Next.String()
	}
	return s
}
func (t *Return) String() string {
	s := "return"
	for i, res := range t.Results {
		if i == 0 {
			s += " "
		} else {
			s += ", "
		}
		s += res.String()
	}
	return s
}
func (t *Other) String() string { return t.Desc }
