package sign

import (
	"go/constant"
	"go/token"
	"go/types"
	"testing"

	"github.com/signcheck/signcheck/go/ir"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intVar(fn *ir.Function, name string) *ir.Variable {
	return fn.NewVar(name, types.Typ[types.Int], token.NoPos)
}

func boolVar(fn *ir.Function, name string) *ir.Variable {
	return fn.NewVar(name, types.Typ[types.Bool], token.NoPos)
}

func lit(n int64) *ir.Const {
	return &ir.Const{Value: constant.MakeInt64(n), Type: types.Typ[types.Int]}
}

func assign(b *ir.BasicBlock, dest *ir.Variable, rv ir.Rvalue) *ir.Assign {
	stmt := &ir.Assign{Dest: dest, Value: rv}
	b.Stmts = append(b.Stmts, stmt)
	return stmt
}

// guarded builds
//
//	func(x int, arr []int) { if x < 0 { _ = arr[x] } }
func guarded() (*ir.Function, *ir.Variable, *ir.Assign) {
	fn := &ir.Function{Name: "guarded"}
	x := intVar(fn, "x")
	t0 := intVar(fn, "t0")
	t1 := intVar(fn, "t1")
	c := boolVar(fn, "c")
	elem := intVar(fn, "elem")
	arr := &ir.Location{Desc: "arr"}

	b0 := fn.NewBlock("entry")
	b1 := fn.NewBlock("if.done")
	b2 := fn.NewBlock("if.then")
	assign(b0, t0, &ir.Use{X: x})
	assign(b0, c, &ir.BinOp{Op: token.LSS, X: t0, Y: lit(0)})
	b0.Term = &ir.Branch{Cond: c, Else: b1, Then: b2}
	b1.Term = &ir.Return{}
	assign(b2, t1, &ir.Use{X: x})
	idx := assign(b2, elem, &ir.Index{X: arr, Index: t1})
	b2.Term = &ir.Goto{Target: b1}
	return fn, x, idx
}

type finding struct {
	stmt     *ir.Assign
	definite bool
}

// negativeIndex reports index expressions whose index may be negative.
func negativeIndex(_ *ir.BasicBlock, stmt *ir.Assign, before State) []finding {
	idx, ok := stmt.Value.(*ir.Index)
	if !ok {
		return nil
	}
	switch before.Eval(idx.Index) {
	case Lower:
		return []finding{{stmt, true}}
	case LowerEqual, Top:
		return []finding{{stmt, false}}
	default:
		return nil
	}
}

func TestUnguardedIndex(t *testing.T) {
	fn := &ir.Function{Name: "unguarded"}
	x := intVar(fn, "x")
	t0 := intVar(fn, "t0")
	elem := intVar(fn, "elem")
	b0 := fn.NewBlock("entry")
	assign(b0, t0, &ir.Use{X: x})
	idx := assign(b0, elem, &ir.Index{X: &ir.Location{Desc: "arr"}, Index: t0})
	b0.Term = &ir.Return{}

	for _, dom := range domains {
		res := Analyze(fn, dom)
		assert.Equal(t, Top, res.In(b0).Get(x))
		got := Collect(res, negativeIndex)
		require.Len(t, got, 1)
		assert.Same(t, idx, got[0].stmt)
		assert.False(t, got[0].definite)
	}
}

func TestGuardedIndex(t *testing.T) {
	fn, x, idx := guarded()
	then := fn.Blocks[2]
	done := fn.Blocks[1]
	for _, dom := range domains {
		res := Analyze(fn, dom)
		assert.Equal(t, Lower, res.In(then).Get(x))
		got := Collect(res, negativeIndex)
		require.Len(t, got, 1)
		assert.Same(t, idx, got[0].stmt)
		assert.True(t, got[0].definite)

		// The else edge carries x >= 0, the then edge x < 0.
		if dom == Precise {
			assert.Equal(t, Top, res.In(done).Get(x))
		}
	}
}

func TestNestedGuards(t *testing.T) {
	fn := &ir.Function{Name: "nested"}
	x := intVar(fn, "x")
	y := intVar(fn, "y")
	t0 := intVar(fn, "t0")
	t1 := intVar(fn, "t1")
	t2 := intVar(fn, "t2")
	t3 := intVar(fn, "t3")
	prod := intVar(fn, "idx")
	elem := intVar(fn, "elem")
	c0 := boolVar(fn, "c0")
	c1 := boolVar(fn, "c1")

	b0 := fn.NewBlock("entry")
	b1 := fn.NewBlock("if.then")
	b2 := fn.NewBlock("if.then")
	b3 := fn.NewBlock("if.done")
	assign(b0, t0, &ir.Use{X: x})
	assign(b0, c0, &ir.BinOp{Op: token.LEQ, X: t0, Y: lit(0)})
	b0.Term = &ir.Branch{Cond: c0, Else: b3, Then: b1}
	assign(b1, t1, &ir.Use{X: y})
	assign(b1, c1, &ir.BinOp{Op: token.LEQ, X: t1, Y: lit(0)})
	b1.Term = &ir.Branch{Cond: c1, Else: b3, Then: b2}
	assign(b2, t2, &ir.Use{X: x})
	assign(b2, t3, &ir.Use{X: y})
	assign(b2, prod, &ir.BinOp{Op: token.MUL, X: t2, Y: t3})
	assign(b2, elem, &ir.Index{X: &ir.Location{Desc: "arr"}, Index: prod})
	b2.Term = &ir.Goto{Target: b3}
	b3.Term = &ir.Return{}

	res := Analyze(fn, Precise)
	in := res.In(b2)
	assert.Equal(t, LowerEqual, in.Get(x))
	assert.Equal(t, LowerEqual, in.Get(y))
	assert.Empty(t, Collect(res, negativeIndex))

	var before State
	res.Replay(func(_ *ir.BasicBlock, stmt *ir.Assign, s State) {
		if stmt.Dest == elem {
			before = s
		}
	})
	assert.Equal(t, GreaterEqual, before.Get(prod))

	// The simple domain can't express x <= 0 and loses the product's sign.
	res = Analyze(fn, Simple)
	got := Collect(res, negativeIndex)
	require.Len(t, got, 1)
	assert.False(t, got[0].definite)
}

func TestAliasRefinement(t *testing.T) {
	fn := &ir.Function{Name: "alias"}
	x := intVar(fn, "x")
	y := intVar(fn, "y")
	c := boolVar(fn, "c")
	b0 := fn.NewBlock("entry")
	b1 := fn.NewBlock("if.else")
	b2 := fn.NewBlock("if.then")
	assign(b0, y, &ir.Use{X: x})
	assign(b0, c, &ir.BinOp{Op: token.LSS, X: y, Y: lit(0)})
	b0.Term = &ir.Branch{Cond: c, Else: b1, Then: b2}
	b1.Term = &ir.Return{}
	b2.Term = &ir.Return{}

	res := Analyze(fn, Precise)
	assert.Equal(t, Lower, res.In(b2).Get(y))
	assert.Equal(t, Lower, res.In(b2).Get(x))
	assert.Equal(t, GreaterEqual, res.In(b1).Get(y))
	assert.Equal(t, GreaterEqual, res.In(b1).Get(x))
	assert.Equal(t, []*ir.Variable{x}, res.Equiv().Aliases(y))
	assert.Equal(t, []*ir.Variable{y}, res.Equiv().Aliases(x))
}

// countUp builds
//
//	for x < 0 { x += 4 }
func countUp() *ir.Function {
	fn := &ir.Function{Name: "countUp"}
	x := intVar(fn, "x")
	t0 := intVar(fn, "t0")
	t1 := intVar(fn, "t1")
	t2 := intVar(fn, "t2")
	c := boolVar(fn, "c")
	b0 := fn.NewBlock("entry")
	b1 := fn.NewBlock("for.loop")
	b2 := fn.NewBlock("for.body")
	b3 := fn.NewBlock("for.done")
	b0.Term = &ir.Goto{Target: b1}
	assign(b1, t0, &ir.Use{X: x})
	assign(b1, c, &ir.BinOp{Op: token.LSS, X: t0, Y: lit(0)})
	b1.Term = &ir.Branch{Cond: c, Else: b3, Then: b2}
	assign(b2, t1, &ir.Use{X: x})
	assign(b2, t2, &ir.BinOp{Op: token.ADD, X: t1, Y: lit(4)})
	assign(b2, x, &ir.Use{X: t2})
	b2.Term = &ir.Goto{Target: b1}
	b3.Term = &ir.Return{}
	return fn
}

// countDown builds
//
//	z := 10
//	for z > 0 { y = z; z -= 1 }
func countDown() *ir.Function {
	fn := &ir.Function{Name: "countDown"}
	y := intVar(fn, "y")
	z := intVar(fn, "z")
	t0 := intVar(fn, "t0")
	t1 := intVar(fn, "t1")
	t2 := intVar(fn, "t2")
	c := boolVar(fn, "c")
	b0 := fn.NewBlock("entry")
	b1 := fn.NewBlock("for.loop")
	b2 := fn.NewBlock("for.body")
	b3 := fn.NewBlock("for.done")
	assign(b0, y, &ir.Use{X: lit(0)})
	assign(b0, z, &ir.Use{X: lit(10)})
	b0.Term = &ir.Goto{Target: b1}
	assign(b1, t0, &ir.Use{X: z})
	assign(b1, c, &ir.BinOp{Op: token.GTR, X: t0, Y: lit(0)})
	b1.Term = &ir.Branch{Cond: c, Else: b3, Then: b2}
	assign(b2, y, &ir.Use{X: z})
	assign(b2, t1, &ir.Use{X: z})
	assign(b2, t2, &ir.BinOp{Op: token.SUB, X: t1, Y: lit(1)})
	assign(b2, z, &ir.Use{X: t2})
	b2.Term = &ir.Goto{Target: b1}
	b3.Term = &ir.Return{}
	return fn
}

func TestLoops(t *testing.T) {
	t.Run("countUp", func(t *testing.T) {
		fn := countUp()
		x := fn.Vars[0]
		res := Analyze(fn, Precise, WithMaxSteps(100))
		assert.Equal(t, Top, res.In(fn.Blocks[1]).Get(x))
		assert.Equal(t, Lower, res.In(fn.Blocks[2]).Get(x))
		assert.Equal(t, GreaterEqual, res.In(fn.Blocks[3]).Get(x))
	})

	t.Run("countDown", func(t *testing.T) {
		fn := countDown()
		y, z := fn.Vars[0], fn.Vars[1]
		res := Analyze(fn, Precise, WithMaxSteps(100))
		assert.Equal(t, Top, res.In(fn.Blocks[1]).Get(z))
		assert.Equal(t, Greater, res.In(fn.Blocks[2]).Get(z))
		// The first iteration leaves the loop with z > 0, which is never
		// retracted.
		assert.Equal(t, Top, res.In(fn.Blocks[3]).Get(z))
		assert.Equal(t, GreaterEqual, res.In(fn.Blocks[3]).Get(y))
	})
}

func TestTermination(t *testing.T) {
	for _, mk := range []func() *ir.Function{countUp, countDown} {
		fn := mk()
		for _, dom := range domains {
			res := Analyze(fn, dom)
			tracked := len(TopState(dom, fn).Vars())
			height := 3
			if dom == Simple {
				height = 2
			}
			bound := len(fn.Blocks) * height * tracked
			assert.LessOrEqual(t, res.Steps(), bound+1, "%s: %s", fn, dom)
		}
	}
}

func TestCallResult(t *testing.T) {
	fn := &ir.Function{Name: "call"}
	n := intVar(fn, "n")
	b0 := fn.NewBlock("entry")
	b1 := fn.NewBlock("call.done")
	assign(b0, n, &ir.Use{X: lit(1)})
	b0.Term = &ir.Call{Callee: "f", Dest: n, Next: b1}
	b1.Term = &ir.Return{}

	res := Analyze(fn, Precise)
	assert.Equal(t, Top, res.In(b1).Get(n))
}

func TestUntrackedOperands(t *testing.T) {
	fn := &ir.Function{Name: "untracked"}
	n := intVar(fn, "n")
	u := fn.NewVar("u", types.Typ[types.Uint], token.NoPos)
	c := boolVar(fn, "c")
	b0 := fn.NewBlock("entry")
	b1 := fn.NewBlock("if.else")
	b2 := fn.NewBlock("if.then")
	assign(b0, n, &ir.Use{X: lit(5)})
	assign(b0, u, &ir.Use{X: n})
	assign(b0, n, &ir.Convert{X: u, Type: types.Typ[types.Int]})
	assign(b0, c, &ir.BinOp{Op: token.LSS, X: u, Y: &ir.Location{Desc: "global"}})
	b0.Term = &ir.Branch{Cond: c, Else: b1, Then: b2}
	b1.Term = &ir.Return{}
	b2.Term = &ir.Return{}

	res := Analyze(fn, Precise)
	assert.False(t, res.In(b0).Tracked(u))
	assert.Equal(t, Top, res.In(b1).Get(n))
	assert.Equal(t, Top, res.In(b2).Get(n))
	assert.True(t, res.Reached(b1))
	assert.True(t, res.Reached(b2))
}

func TestMalformed(t *testing.T) {
	t.Run("assignment after branch condition", func(t *testing.T) {
		fn, x, _ := guarded()
		b0 := fn.Blocks[0]
		assign(b0, x, &ir.Use{X: lit(1)})
		assert.Panics(t, func() { Analyze(fn, Precise) })
	})

	t.Run("mismatched states", func(t *testing.T) {
		fn1, _, _ := guarded()
		fn2 := countUp()
		assert.Panics(t, func() { TopState(Precise, fn1).Join(TopState(Precise, fn2)) })
	})

	t.Run("step limit", func(t *testing.T) {
		assert.Panics(t, func() { Analyze(countUp(), Precise, WithMaxSteps(2)) })
	})
}
