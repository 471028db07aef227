// Package church encodes natural-number arithmetic as lambda terms using
// Church numerals, and provides a prelude of standard combinators.
package church

import (
	"github.com/vic/tromp/pkg/debruijn"
	"github.com/vic/tromp/pkg/lambda"
)

// Numeral returns λf.λx.f (f (... x)) with n applications of f.
func Numeral(n int) lambda.Term {
	var body lambda.Term = lambda.Var{Name: "x"}
	for i := 0; i < n; i++ {
		body = lambda.App{Fun: lambda.Var{Name: "f"}, Arg: body}
	}
	return lambda.Abs{Arg: "f", Body: lambda.Abs{Arg: "x", Body: body}}
}

// Decode reads a Church numeral in normal form, whatever its binder names.
func Decode(term lambda.Term) (int, bool) {
	db, err := debruijn.FromNamed(term)
	if err != nil {
		return 0, false
	}
	outer, ok := db.(debruijn.Lam)
	if !ok {
		return 0, false
	}
	inner, ok := outer.Body.(debruijn.Lam)
	if !ok {
		return 0, false
	}

	n := 0
	body := inner.Body
	for {
		switch t := body.(type) {
		case debruijn.Var:
			return n, t.Index == 0
		case debruijn.App:
			f, ok := t.Fun.(debruijn.Var)
			if !ok || f.Index != 1 {
				return 0, false
			}
			n++
			body = t.Arg
		default:
			return 0, false
		}
	}
}
