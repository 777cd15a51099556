package sign

import (
	"go/token"

	"github.com/signcheck/signcheck/analysis/dfa"
)

const (
	bot = Bottom
	lt  = Lower
	zr  = Zero
	gt  = Greater
	lte = LowerEqual
	gte = GreaterEqual
	top = Top
)

// The tables below describe the precise domain. The simple domain uses the
// same tables minus every row that mentions LowerEqual or GreaterEqual.

var joinRows = map[[2]Value]Value{
	{gt, gte}: gte,
	{zr, gte}: gte,
	{zr, gt}:  gte,
	{lt, lte}: lte,
	{zr, lte}: lte,
	{zr, lt}:  lte,
}

// Addition and multiplication are commutative, their rows are looked up in
// both orders.
var addRows = map[[2]Value]Value{
	{gt, zr}:   gt,
	{gt, gt}:   gt,
	{gt, gte}:  gt,
	{lt, zr}:   lt,
	{lt, lt}:   lt,
	{lt, lte}:  lt,
	{gte, gte}: gte,
	{zr, gte}:  gte,
	{lte, lte}: lte,
	{zr, lte}:  lte,
	{zr, zr}:   zr,
}

var subRows = map[[2]Value]Value{
	{gt, zr}:  gt,
	{zr, lt}:  gt,
	{gt, lt}:  gt,
	{gte, lt}: gt,
	{gt, lte}: gt,

	{zr, gt}:  lt,
	{lt, gt}:  lt,
	{lt, zr}:  lt,
	{lte, gt}: lt,
	{lt, gte}: lt,

	{zr, gte}:  lte,
	{lte, gte}: lte,
	{lte, zr}:  lte,

	{zr, lte}:  gte,
	{gte, lte}: gte,
	{gte, zr}:  gte,

	{zr, zr}: zr,
}

// Multiplication by zero is handled before consulting the table.
var mulRows = map[[2]Value]Value{
	{lt, lt}:   gt,
	{gt, gt}:   gt,
	{gt, lt}:   lt,
	{gte, gte}: gte,
	{gte, gt}:  gte,
	{lte, lte}: gte,
	{lte, lt}:  gte,
}

var negRows = map[Value]Value{
	zr:  zr,
	gt:  lt,
	lt:  gt,
	gte: lte,
	lte: gte,
}

// refineRows maps a comparison operator and the values of its operands to
// the operands' values under the assumption that the comparison holds.
// Equality additionally narrows an unknown operand to the other one, see
// refineTrue.
var refineRows = map[token.Token]map[[2]Value][2]Value{
	token.EQL: {
		{gte, gt}: {gt, gt},
		{gt, gte}: {gt, gt},
		{lte, lt}: {lt, lt},
		{lt, lte}: {lt, lt},
		{gte, zr}: {zr, zr},
		{zr, gte}: {zr, zr},
		{lte, zr}: {zr, zr},
		{zr, lte}: {zr, zr},
	},
	token.LSS: {
		{top, zr}:  {lt, zr},
		{lte, zr}:  {lt, zr},
		{top, lt}:  {lt, lt},
		{lte, lt}:  {lt, lt},
		{zr, top}:  {zr, gt},
		{zr, gte}:  {zr, gt},
		{gt, top}:  {gt, gt},
		{gt, gte}:  {gt, gt},
		{top, lte}: {lte, lte},
	},
	token.LEQ: {
		{top, lt}:  {lt, lt},
		{lte, lt}:  {lt, lt},
		{top, lte}: {lte, lte},
		{gt, top}:  {gt, gt},
		{gt, gte}:  {gt, gt},
		{top, zr}:  {lte, zr},
		{zr, top}:  {zr, gte},
		{gte, top}: {gte, gte},
	},
	token.GEQ: {
		{top, gt}:  {gt, gt},
		{gte, gt}:  {gt, gt},
		{top, gte}: {gte, gte},
		{lt, top}:  {lt, lt},
		{lt, lte}:  {lt, lt},
		{top, zr}:  {gte, zr},
		{zr, top}:  {zr, lte},
		{lte, top}: {lte, lte},
	},
	token.GTR: {
		{top, zr}:  {gt, zr},
		{gte, zr}:  {gt, zr},
		{top, gt}:  {gt, gt},
		{gte, gt}:  {gt, gt},
		{zr, top}:  {zr, lt},
		{zr, lte}:  {zr, lt},
		{lt, top}:  {lt, lt},
		{lt, lte}:  {lt, lt},
		{top, gte}: {gte, gte},
	},
	token.NEQ: {},
}

// A table holds the transfer functions of one domain.
type table struct {
	name   string
	values []Value
	join   dfa.Join[Value]
	add    func(Value, Value) Value
	sub    func(Value, Value) Value
	mul    func(Value, Value) Value
	neg    map[Value]Value
	refine map[token.Token]map[[2]Value][2]Value
}

func nonStrict(v Value) bool { return v == LowerEqual || v == GreaterEqual }

func filterRows(m map[[2]Value]Value, keep func(Value) bool) map[[2]Value]Value {
	out := map[[2]Value]Value{}
	for k, v := range m {
		if keep(k[0]) && keep(k[1]) && keep(v) {
			out[k] = v
		}
	}
	return out
}

// newTable derives a domain from the rows of the precise domain, keeping the values for which keep returns true.
func newTable(name string, keep func(Value) bool) *table {
	var values []Value
	for _, v := range dfa.Elements(Top) {
		if keep(v) {
			values = append(values, v)
		}
	}
	neg := map[Value]Value{}
	for k, v := range negRows {
		if keep(k) && keep(v) {
			neg[k] = v
		}
	}
	refine := map[token.Token]map[[2]Value][2]Value{}
	for op, rows := range refineRows {
		out := map[[2]Value][2]Value{}
		for k, v := range rows {
			if keep(k[0]) && keep(k[1]) && keep(v[0]) && keep(v[1]) {
				out[k] = v
			}
		}
		refine[op] = out
	}
	return &table{
		name:   name,
		values: values,
		join:   dfa.JoinTable(Top, filterRows(joinRows, keep)),
		add:    dfa.BinaryTable(Top, filterRows(addRows, keep)),
		sub:    dfa.OrderedTable(Top, filterRows(subRows, keep)),
		mul:    dfa.BinaryTable(Top, filterRows(mulRows, keep)),
		neg:    neg,
		refine: refine,
	}
}

var tables = [...]*table{
	Simple:  newTable("simple", func(v Value) bool { return !nonStrict(v) }),
	Precise: newTable("precise", func(Value) bool { return true }),
}
