// Package irbuild lowers functions from golang.org/x/tools/go/ssa into the ir representation.
//
// The input must have been built with [ssa.NaiveForm], so that local variables are represented by Alloc
// instructions that are loaded from and stored to, instead of having been lifted into SSA registers. Every local
// variable whose address doesn't escape becomes an [ir.Variable] that is assigned by each store. Every SSA register
// becomes a variable that is assigned exactly once. Loading a local variable into a register is a copy, which is
// what the sign analysis uses to propagate refinements from registers back to the variables they were loaded from.
package irbuild

import (
	"fmt"
	"go/constant"
	"go/token"
	"go/types"
	"strings"

	"github.com/signcheck/signcheck/go/ir"
	"github.com/signcheck/signcheck/go/types/typeutil"

	"golang.org/x/tools/go/ssa"
)

type builder struct {
	ssafn *ssa.Function
	fn    *ir.Function

	vars   map[ssa.Value]*ir.Variable
	blocks map[*ssa.BasicBlock]*ir.BasicBlock
	cur    *ir.BasicBlock
	// sunk is the comparison that was moved to the end of the current
	// block, if any.
	sunk *ssa.BinOp
	// loads maps registers loaded in the current block to the local
	// they were loaded from, as long as the local hasn't been assigned
	// since. Operands use the local instead of the register, so that
	// refining an operand refines the local itself.
	loads  map[ssa.Value]*ir.Variable
	locals map[*ir.Variable]bool
}

// Function lowers ssafn. Functions without a body result in an ir.Function without blocks.
func Function(ssafn *ssa.Function) *ir.Function {
	b := &builder{
		ssafn: ssafn,
		fn: &ir.Function{
			Name:   ssafn.String(),
			Pos:    ssafn.Pos(),
			Object: ssafn.Object(),
		},
		vars:   map[ssa.Value]*ir.Variable{},
		blocks: map[*ssa.BasicBlock]*ir.BasicBlock{},
		loads:  map[ssa.Value]*ir.Variable{},
		locals: map[*ir.Variable]bool{},
	}
	if len(ssafn.Blocks) == 0 {
		return b.fn
	}

	for _, p := range ssafn.Params {
		b.vars[p] = b.fn.NewVar(p.Name()+"$in", p.Type(), p.Pos())
	}
	// Create the first segment of every block up front, so that
	// terminators can refer to blocks that haven't been lowered yet.
	for _, sb := range ssafn.Blocks {
		b.blocks[sb] = b.fn.NewBlock(sb.Comment)
	}
	for _, sb := range ssafn.Blocks {
		b.block(sb)
	}
	return b.fn
}

func (b *builder) block(sb *ssa.BasicBlock) {
	b.cur = b.blocks[sb]
	b.sunk = sinkable(sb)
	clear(b.loads)
	for _, instr := range sb.Instrs {
		if instr == b.sunk {
			continue
		}
		b.instr(instr)
	}
	if b.cur.Term == nil {
		b.cur.Term = &ir.Other{Desc: "unreachable"}
	}
}

// sinkable returns the comparison that computes the condition of sb's terminator, if it is only used by the
// terminator and no call separates the two.
func sinkable(sb *ssa.BasicBlock) *ssa.BinOp {
	if len(sb.Instrs) == 0 {
		return nil
	}
	iff, ok := sb.Instrs[len(sb.Instrs)-1].(*ssa.If)
	if !ok {
		return nil
	}
	binop, ok := iff.Cond.(*ssa.BinOp)
	if !ok || binop.Block() != sb {
		return nil
	}
	if refs := binop.Referrers(); refs == nil || len(*refs) != 1 {
		return nil
	}
	seen := false
	for _, instr := range sb.Instrs {
		if instr == binop {
			seen = true
			continue
		}
		if _, ok := instr.(*ssa.Call); ok && seen {
			return nil
		}
	}
	return binop
}

func (b *builder) emit(dest *ir.Variable, rv ir.Rvalue, pos token.Pos) {
	b.cur.Stmts = append(b.cur.Stmts, &ir.Assign{Dest: dest, Value: rv, Pos: pos})
	if b.locals[dest] {
		for reg, src := range b.loads {
			if src == dest {
				delete(b.loads, reg)
			}
		}
	}
}

// reg returns the variable holding the value of an SSA register.
func (b *builder) reg(v ssa.Value) *ir.Variable {
	if iv, ok := b.vars[v]; ok {
		return iv
	}
	iv := b.fn.NewVar(v.Name(), v.Type(), v.Pos())
	b.vars[v] = iv
	return iv
}

// local returns the variable that represents the memory allocated by a.
func (b *builder) local(a *ssa.Alloc) *ir.Variable {
	if iv, ok := b.vars[a]; ok {
		return iv
	}
	name := a.Comment
	if name == "" {
		name = a.Name()
	}
	iv := b.fn.NewVar(name, deref(a.Type()), a.Pos())
	b.vars[a] = iv
	b.locals[iv] = true
	return iv
}

func deref(t types.Type) types.Type {
	if p, ok := t.Underlying().(*types.Pointer); ok {
		return p.Elem()
	}
	return t
}

func isLocal(v ssa.Value) (*ssa.Alloc, bool) {
	a, ok := v.(*ssa.Alloc)
	if !ok || a.Heap {
		return nil, false
	}
	return a, true
}

func (b *builder) operand(v ssa.Value) ir.Operand {
	if v == nil {
		return nil
	}
	switch v := v.(type) {
	case *ssa.Const:
		return &ir.Const{Value: v.Value, Type: v.Type()}
	case *ssa.Alloc:
		name := v.Comment
		if name == "" {
			name = v.Name()
		}
		return &ir.Location{Desc: "&" + name, Type: v.Type()}
	case *ssa.Global, *ssa.FreeVar, *ssa.Function, *ssa.Builtin:
		return &ir.Location{Desc: v.Name(), Type: v.Type()}
	default:
		if src, ok := b.loads[v]; ok {
			return src
		}
		return b.reg(v)
	}
}

func opaque(instr ssa.Instruction) *ir.Opaque {
	return &ir.Opaque{Desc: strings.ToLower(strings.TrimPrefix(fmt.Sprintf("%T", instr), "*ssa."))}
}

func (b *builder) instr(ins ssa.Instruction) {
	switch instr := ins.(type) {
	case *ssa.Alloc:
		if instr.Heap {
			return
		}
		// Alloc zeroes the variable each time it executes.
		v := b.local(instr)
		if typeutil.IsInteger(v.Type) {
			b.emit(v, &ir.Use{X: &ir.Const{Value: constant.MakeInt64(0), Type: v.Type}}, instr.Pos())
		}

	case *ssa.Store:
		if a, ok := isLocal(instr.Addr); ok {
			b.emit(b.local(a), &ir.Use{X: b.operand(instr.Val)}, instr.Pos())
		}

	case *ssa.UnOp:
		switch instr.Op {
		case token.MUL:
			if a, ok := isLocal(instr.X); ok {
				src := b.local(a)
				b.emit(b.reg(instr), &ir.Use{X: src}, instr.Pos())
				b.loads[instr] = src
			} else {
				src := &ir.Location{Desc: "*" + instr.X.Name(), Type: instr.Type()}
				b.emit(b.reg(instr), &ir.Use{X: src}, instr.Pos())
			}
		case token.ARROW:
			b.emit(b.reg(instr), opaque(instr), instr.Pos())
		default:
			b.emit(b.reg(instr), &ir.UnOp{Op: instr.Op, X: b.operand(instr.X)}, instr.Pos())
		}

	case *ssa.BinOp:
		b.emit(b.reg(instr), &ir.BinOp{Op: instr.Op, X: b.operand(instr.X), Y: b.operand(instr.Y)}, instr.Pos())

	case *ssa.Convert:
		b.emit(b.reg(instr), &ir.Convert{X: b.operand(instr.X), Type: instr.Type()}, instr.Pos())
	case *ssa.ChangeType:
		b.emit(b.reg(instr), &ir.Convert{X: b.operand(instr.X), Type: instr.Type()}, instr.Pos())
	case *ssa.MultiConvert:
		// Conversions involving type parameters with several core types.
		b.emit(b.reg(instr), &ir.Convert{X: b.operand(instr.X), Type: instr.Type()}, instr.Pos())

	case *ssa.Index:
		b.emit(b.reg(instr), &ir.Index{X: b.operand(instr.X), Index: b.operand(instr.Index)}, instr.Pos())
	case *ssa.IndexAddr:
		b.emit(b.reg(instr), &ir.Index{X: b.operand(instr.X), Index: b.operand(instr.Index)}, instr.Pos())
	case *ssa.Lookup:
		if _, ok := instr.X.Type().Underlying().(*types.Basic); ok {
			b.emit(b.reg(instr), &ir.Index{X: b.operand(instr.X), Index: b.operand(instr.Index)}, instr.Pos())
		} else {
			b.emit(b.reg(instr), opaque(instr), instr.Pos())
		}

	case *ssa.Slice:
		b.emit(b.reg(instr), &ir.Slice{
			X:    b.operand(instr.X),
			Low:  b.operand(instr.Low),
			High: b.operand(instr.High),
			Max:  b.operand(instr.Max),
		}, instr.Pos())

	case *ssa.Call:
		if isDeferStack(instr) {
			// Naive form keeps the defer stack intrinsic that lifting
			// would have removed. It can't affect locals.
			b.emit(b.reg(instr), &ir.Opaque{Desc: "deferstack"}, instr.Pos())
			return
		}
		b.call(instr)

	case *ssa.If:
		b.branch(instr)
	case *ssa.Jump:
		b.cur.Term = &ir.Goto{Target: b.blocks[instr.Block().Succs[0]]}
	case *ssa.Return:
		ret := &ir.Return{}
		for _, res := range instr.Results {
			ret.Results = append(ret.Results, b.operand(res))
		}
		b.cur.Term = ret
	case *ssa.Panic:
		b.cur.Term = &ir.Other{Desc: "panic"}

	case ssa.Value:
		b.emit(b.reg(instr), opaque(ins), ins.Pos())

	default:
		// Instructions without a result that don't affect local
		// variables, such as map updates, channel sends, go and defer
		// statements.
	}
}

func isDeferStack(instr *ssa.Call) bool {
	fn, ok := instr.Call.Value.(*ssa.Builtin)
	return ok && fn.Name() == "ssa:deferstack"
}

func callee(call *ssa.CallCommon) string {
	if call.IsInvoke() {
		return "invoke " + call.Value.Name() + "." + call.Method.Name()
	}
	if fn := call.StaticCallee(); fn != nil {
		return fn.String()
	}
	return call.Value.Name()
}

// call ends the current block in a call terminator and continues lowering in a new block.
func (b *builder) call(instr *ssa.Call) {
	term := &ir.Call{
		Callee: callee(&instr.Call),
		Pos:    instr.Pos(),
	}
	for _, arg := range instr.Call.Args {
		term.Args = append(term.Args, b.operand(arg))
	}
	if tup, ok := instr.Type().(*types.Tuple); !ok || tup.Len() > 0 {
		term.Dest = b.reg(instr)
	}
	next := b.fn.NewBlock(b.cur.Comment)
	term.Next = next
	b.cur.Term = term
	b.cur = next
}

func (b *builder) branch(instr *ssa.If) {
	if b.sunk != nil {
		b.instr(b.sunk)
	}
	cond := b.operand(instr.Cond)
	// The condition's definition must be the last assignment to a
	// variable in the block. If it isn't, branch on a copy instead.
	if v, ok := cond.(*ir.Variable); ok {
		stmts := b.cur.Stmts
		for i, stmt := range stmts {
			if stmt.Dest == v && i != len(stmts)-1 {
				cp := b.fn.NewVar(v.Name+"$cond", v.Type, instr.Pos())
				b.emit(cp, &ir.Use{X: v}, instr.Pos())
				cond = cp
				break
			}
		}
	}
	succs := instr.Block().Succs
	b.cur.Term = &ir.Branch{
		Cond: cond,
		Then: b.blocks[succs[0]],
		Else: b.blocks[succs[1]],
		Pos:  instr.Pos(),
	}
}
