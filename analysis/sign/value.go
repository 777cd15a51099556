package sign

// A Value is an element of a sign lattice. Not every domain uses every
// value; see [Domain.Values].
type Value uint8

const (
	Bottom Value = iota
	Lower
	Zero
	Greater
	LowerEqual
	GreaterEqual
	Top
)

func (v Value) String() string {
	switch v {
	case Bottom:
		return "⊥"
	case Lower:
		return "<0"
	case Zero:
		return "0"
	case Greater:
		return ">0"
	case LowerEqual:
		return "<=0"
	case GreaterEqual:
		return ">=0"
	case Top:
		return "⊤"
	default:
		return "invalid"
	}
}

// Name returns a name for v that is safe to use in serialized output.
func (v Value) Name() string {
	switch v {
	case Bottom:
		return "bottom"
	case Lower:
		return "lower"
	case Zero:
		return "zero"
	case Greater:
		return "greater"
	case LowerEqual:
		return "lower_equal"
	case GreaterEqual:
		return "greater_equal"
	case Top:
		return "top"
	default:
		return "invalid"
	}
}

func (v Value) MarshalText() ([]byte, error) { return []byte(v.Name()), nil }

// MayBeNegative reports whether a variable with abstract value v may hold a
// negative number.
func (v Value) MayBeNegative() bool {
	switch v {
	case Lower, LowerEqual, Top:
		return true
	default:
		return false
	}
}

// MayBeZero reports whether a variable with abstract value v may hold zero.
func (v Value) MayBeZero() bool {
	switch v {
	case Zero, LowerEqual, GreaterEqual, Top:
		return true
	default:
		return false
	}
}
