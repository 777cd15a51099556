// Package sign implements an intraprocedural sign analysis: for every point in a function, it computes an
// over-approximation of the sign of each signed integer variable.
//
// The analysis is parameterized by a [Domain], which is one of two finite lattices. [Simple] distinguishes negative,
// zero and positive values. [Precise] additionally distinguishes non-negative and non-positive values.
//
//	        ⊤
//	      /   \
//	   <=0     >=0
//	   /  \   /  \
//	 <0     0     >0
//	   \    |    /
//	        ⊥
//
// In the simple domain, the join of two distinct non-⊥ values is always ⊤.
package sign

import (
	"fmt"
	"go/constant"
	"go/token"
	"go/types"

	"github.com/signcheck/signcheck/analysis/dfa"
	"github.com/signcheck/signcheck/go/types/typeutil"
)

// A Domain selects one of the two sign lattices.
type Domain uint8

const (
	Simple Domain = iota
	Precise
)

// ParseDomain parses the name of a domain, as returned by [Domain.String].
func ParseDomain(s string) (Domain, error) {
	for d, tbl := range tables {
		if tbl.name == s {
			return Domain(d), nil
		}
	}
	return 0, fmt.Errorf("unknown sign domain %q", s)
}

func (d Domain) table() *table {
	if int(d) >= len(tables) {
		panic(fmt.Sprintf("invalid domain %d", d))
	}
	return tables[d]
}

func (d Domain) String() string { return d.table().name }

// Set implements flag.Value.
func (d *Domain) Set(s string) error {
	dd, err := ParseDomain(s)
	if err != nil {
		return err
	}
	*d = dd
	return nil
}

// Type returns the name of the flag type, for use with [github.com/spf13/pflag].
func (*Domain) Type() string { return "domain" }

func (d Domain) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Domain) UnmarshalText(b []byte) error { return d.Set(string(b)) }

// Values returns the elements of the domain's lattice, including ⊥ and ⊤.
func (d Domain) Values() []Value {
	return d.table().values
}

// Applies reports whether variables of type typ are tracked by the domain. Only signed integers are tracked.
func (d Domain) Applies(typ types.Type) bool {
	return typeutil.IsSignedInteger(typ)
}

func (Domain) Bottom() Value { return Bottom }
func (Domain) Top() Value    { return Top }

// Join returns the least upper bound of a and b.
func (d Domain) Join(a, b Value) Value {
	return dfa.JoinWith(d.table().join, a, b, Bottom, Top)
}

// Leq reports whether a ⊑ b.
func (d Domain) Leq(a, b Value) bool {
	return dfa.Leq(d.table().join, a, b, Bottom, Top)
}

// Constant returns the abstract value of a constant. Non-integer and unknown constants map to ⊤.
func (Domain) Constant(c constant.Value) Value {
	if c == nil || c.Kind() != constant.Int {
		return Top
	}
	switch constant.Sign(c) {
	case -1:
		return Lower
	case 0:
		return Zero
	default:
		return Greater
	}
}

// Binary returns the abstract value of a op b. Operators without a sign transfer function yield ⊤.
func (d Domain) Binary(op token.Token, a, b Value) Value {
	tbl := d.table()
	switch op {
	case token.ADD:
		return tbl.add(a, b)
	case token.SUB:
		return tbl.sub(a, b)
	case token.MUL:
		if a == Zero || b == Zero {
			return Zero
		}
		return tbl.mul(a, b)
	case token.QUO:
		if a == Zero {
			return Zero
		}
		return Top
	case token.REM:
		// Go's remainder has the sign of the dividend.
		return a
	default:
		return Top
	}
}

// Unary returns the abstract value of op a. Only negation (token.SUB) is modelled.
func (d Domain) Unary(op token.Token, a Value) Value {
	if op != token.SUB {
		return Top
	}
	if v, ok := d.table().neg[a]; ok {
		return v
	}
	return Top
}

// RefineTrue returns the values of the operands of a op b, assuming that the comparison evaluated to true. Operands
// that can't be refined are returned unchanged.
func (d Domain) RefineTrue(op token.Token, a, b Value) (Value, Value) {
	if op == token.EQL {
		switch {
		case a == Top:
			return b, b
		case b == Top:
			return a, a
		}
	}
	if r, ok := d.table().refine[op][[2]Value{a, b}]; ok {
		return r[0], r[1]
	}
	return a, b
}

// RefineFalse is like [Domain.RefineTrue], but assumes that the comparison evaluated to false.
func (d Domain) RefineFalse(op token.Token, a, b Value) (Value, Value) {
	return d.RefineTrue(negateToken(op), a, b)
}

// negateToken returns the operator whose result is the negation of op's.
func negateToken(op token.Token) token.Token {
	switch op {
	case token.LSS:
		return token.GEQ
	case token.GTR:
		return token.LEQ
	case token.EQL:
		return token.NEQ
	case token.NEQ:
		return token.EQL
	case token.GEQ:
		return token.LSS
	case token.LEQ:
		return token.GTR
	default:
		panic(fmt.Sprintf("unhandled token %v", op))
	}
}
