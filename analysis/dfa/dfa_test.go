package dfa

import (
	"strings"
	"testing"
)

type three uint8

const (
	bot three = iota
	mid
	top
)

func TestWorklist(t *testing.T) {
	prio := map[string]int{"a": 1, "b": 5, "c": 3}
	wl := NewWorklist(func(s string) int { return prio[s] })
	wl.Push("a")
	wl.Push("b")
	wl.Push("c")
	wl.Push("b")
	if wl.Len() != 3 {
		t.Fatalf("got %d queued items, want 3", wl.Len())
	}
	var got []string
	for wl.Len() > 0 {
		got = append(got, wl.Pop())
	}
	if strings.Join(got, "") != "bca" {
		t.Errorf("got pop order %v, want [b c a]", got)
	}

	// Items may be queued again after being popped.
	wl.Push("a")
	if wl.Len() != 1 || wl.Pop() != "a" {
		t.Errorf("couldn't requeue popped item")
	}
}

func TestTables(t *testing.T) {
	sym := BinaryTable(top, map[[2]three]three{{bot, mid}: mid})
	if sym(mid, bot) != mid || sym(bot, mid) != mid {
		t.Errorf("BinaryTable isn't symmetric")
	}
	ord := OrderedTable(top, map[[2]three]three{{bot, mid}: mid})
	if ord(bot, mid) != mid || ord(mid, bot) != top {
		t.Errorf("OrderedTable shouldn't be symmetric")
	}
}

func TestJoinWith(t *testing.T) {
	fn := JoinTable[three](top, nil)
	tt := []struct {
		a, b, want three
	}{
		{bot, mid, mid},
		{mid, bot, mid},
		{mid, mid, mid},
		{mid, top, top},
		{bot, bot, bot},
	}
	for _, tc := range tt {
		if got := JoinWith(fn, tc.a, tc.b, bot, top); got != tc.want {
			t.Errorf("JoinWith(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
	if !Leq(fn, bot, mid, bot, top) || Leq(fn, top, mid, bot, top) {
		t.Errorf("Leq disagrees with JoinWith")
	}
}

func TestDot(t *testing.T) {
	fn := JoinTable[three](top, nil)
	got := Dot(fn, Elements(top), bot, top)
	for _, edge := range []string{"n0 -> n1", "n0 -> n2", "n1 -> n2"} {
		if !strings.Contains(got, edge) {
			t.Errorf("missing edge %q in\n%s", edge, got)
		}
	}
	if strings.Contains(got, "n2 -> n1") {
		t.Errorf("unexpected edge from ⊤ in\n%s", got)
	}
}
