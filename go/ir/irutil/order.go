package irutil

import (
	"slices"

	"github.com/signcheck/signcheck/go/ir"
)

// PostOrder numbers the blocks reachable from fn's entry block in
// depth-first post order. A block is numbered after all of its successors
// that weren't already visited; successors are visited in the order
// returned by Succs. Unreachable blocks have no entry in the result.
//
// The traversal uses an explicit stack but assigns the same numbers as the
// recursive formulation.
func PostOrder(fn *ir.Function) map[*ir.BasicBlock]int {
	entry := fn.Entry()
	if entry == nil {
		return nil
	}

	type frame struct {
		b    *ir.BasicBlock
		next int
	}
	order := make(map[*ir.BasicBlock]int, len(fn.Blocks))
	visited := make(map[*ir.BasicBlock]bool, len(fn.Blocks))
	visited[entry] = true
	stack := []frame{{b: entry}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		succs := top.b.Succs()
		if top.next < len(succs) {
			succ := succs[top.next]
			top.next++
			if !visited[succ] {
				visited[succ] = true
				stack = append(stack, frame{b: succ})
			}
			continue
		}
		order[top.b] = len(order)
		stack = stack[:len(stack)-1]
	}
	return order
}

// ReversePostOrder returns the blocks reachable from fn's entry block,
// sorted by descending post-order number.
func ReversePostOrder(fn *ir.Function) []*ir.BasicBlock {
	order := PostOrder(fn)
	out := make([]*ir.BasicBlock, 0, len(order))
	for b := range order {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b *ir.BasicBlock) int {
		return order[b] - order[a]
	})
	return out
}
