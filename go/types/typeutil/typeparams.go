// Package typeutil contains helpers for classifying Go types, including type parameters.
package typeutil

import (
	"go/types"

	"golang.org/x/exp/typeparams"
)

// All reports whether fn returns true for every term. An empty term list
// stands for the set of all types and is passed to fn as a single nil term.
func All(terms []*typeparams.Term, fn func(*typeparams.Term) bool) bool {
	if len(terms) == 0 {
		return fn(nil)
	}
	for _, term := range terms {
		if !fn(term) {
			return false
		}
	}
	return true
}

// Any is like All but reports whether fn returns true for at least one term.
func Any(terms []*typeparams.Term, fn func(*typeparams.Term) bool) bool {
	if len(terms) == 0 {
		return fn(nil)
	}
	for _, term := range terms {
		if fn(term) {
			return true
		}
	}
	return false
}

// termsOf returns the normalized terms of a type parameter, or a single
// term for any other type.
func termsOf(t types.Type) ([]*typeparams.Term, bool) {
	if tp, ok := t.(*typeparams.TypeParam); ok {
		terms, err := typeparams.NormalTerms(tp)
		if err != nil {
			return nil, false
		}
		return terms, true
	}
	return []*typeparams.Term{typeparams.NewTerm(false, t)}, true
}

func basicInfo(term *typeparams.Term) types.BasicInfo {
	if term == nil {
		return 0
	}
	basic, ok := term.Type().Underlying().(*types.Basic)
	if !ok {
		return 0
	}
	return basic.Info()
}

// IsSignedInteger reports whether every type in t's type set is a signed
// integer. Untyped integer constants count as signed.
func IsSignedInteger(t types.Type) bool {
	terms, ok := termsOf(t)
	if !ok {
		return false
	}
	return All(terms, func(term *typeparams.Term) bool {
		info := basicInfo(term)
		return info&types.IsInteger != 0 && info&types.IsUnsigned == 0
	})
}

// IsUnsignedInteger reports whether every type in t's type set is an
// unsigned integer.
func IsUnsignedInteger(t types.Type) bool {
	terms, ok := termsOf(t)
	if !ok {
		return false
	}
	return All(terms, func(term *typeparams.Term) bool {
		info := basicInfo(term)
		return info&types.IsInteger != 0 && info&types.IsUnsigned != 0
	})
}

// IsInteger reports whether every type in t's type set is an integer.
func IsInteger(t types.Type) bool {
	terms, ok := termsOf(t)
	if !ok {
		return false
	}
	return All(terms, func(term *typeparams.Term) bool {
		return basicInfo(term)&types.IsInteger != 0
	})
}
