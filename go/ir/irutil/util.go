// Package irutil contains utilities for working with the ir representation.
package irutil

import (
	"github.com/signcheck/signcheck/go/ir"
)

// Reachable reports whether to can be reached from from by following
// successor edges.
func Reachable(from, to *ir.BasicBlock) bool {
	if from == to {
		return true
	}

	found := false
	Walk(from, func(b *ir.BasicBlock) bool {
		if b == to {
			found = true
			return false
		}
		return true
	})
	return found
}

// Walk calls fn for every block reachable from b, including b itself. If
// fn returns false, the successors of that block aren't visited.
func Walk(b *ir.BasicBlock, fn func(*ir.BasicBlock) bool) {
	seen := map[*ir.BasicBlock]bool{}
	wl := []*ir.BasicBlock{b}
	for len(wl) > 0 {
		b := wl[len(wl)-1]
		wl = wl[:len(wl)-1]
		if seen[b] {
			continue
		}
		seen[b] = true
		if !fn(b) {
			continue
		}
		wl = append(wl, b.Succs()...)
	}
}
