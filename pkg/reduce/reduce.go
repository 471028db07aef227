// Package reduce implements single-step beta reduction under normal and
// applicative order, and drivers that iterate it to normal form.
package reduce

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/vic/tromp/pkg/lambda"
)

// DefaultMaxSteps bounds a reduction when the caller passes a non-positive
// step budget.
const DefaultMaxSteps = 1000

// Strategy selects which redex a step contracts.
type Strategy int

const (
	// Normal contracts the leftmost-outermost redex.
	Normal Strategy = iota
	// Applicative reduces the argument, then the function, and contracts a
	// redex only once both are irreducible.
	Applicative
)

func (s Strategy) String() string {
	switch s {
	case Normal:
		return "normal"
	case Applicative:
		return "applicative"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy accepts "normal" or "applicative" in any case style
// ("Applicative", "APPLICATIVE_ORDER").
func ParseStrategy(s string) (Strategy, error) {
	switch strcase.ToKebab(strings.TrimSpace(s)) {
	case "normal", "normal-order", "":
		return Normal, nil
	case "applicative", "applicative-order":
		return Applicative, nil
	default:
		return Normal, fmt.Errorf("unknown reduction strategy %q (want normal or applicative)", s)
	}
}

// BetaReduce performs one leftmost-outermost beta step. It reports false
// when term is in normal form, and a *lambda.MalformedTermError when term
// has a missing child.
func BetaReduce(term lambda.Term) (lambda.Term, bool, error) {
	return Step(term, Normal)
}

// BetaReduceApplicative performs one applicative-order beta step. It reports
// false when term has no redex.
func BetaReduceApplicative(term lambda.Term) (lambda.Term, bool, error) {
	return Step(term, Applicative)
}

// Step performs one beta step under strategy.
func Step(term lambda.Term, strategy Strategy) (lambda.Term, bool, error) {
	if err := lambda.Validate(term); err != nil {
		return nil, false, err
	}
	next, _, _, ok := step(term, strategy)
	return next, ok, nil
}

func step(term lambda.Term, strategy Strategy) (lambda.Term, string, lambda.Term, bool) {
	if strategy == Applicative {
		return applicativeStep(term)
	}
	return normalStep(term)
}

// Reducible reports whether term contains a redex.
func Reducible(term lambda.Term) bool {
	switch t := term.(type) {
	case lambda.App:
		if _, ok := t.Fun.(lambda.Abs); ok {
			return true
		}
		return Reducible(t.Fun) || Reducible(t.Arg)
	case lambda.Abs:
		return Reducible(t.Body)
	default:
		return false
	}
}

// contract fires the redex (λx.body) arg.
func contract(fun lambda.Abs, arg lambda.Term) lambda.Term {
	return lambda.Substitute(fun.Body, fun.Arg, arg)
}

// normalStep returns the reduct, the path to the contracted redex (L for
// function, R for argument, B for abstraction body) and the redex itself.
func normalStep(term lambda.Term) (lambda.Term, string, lambda.Term, bool) {
	switch t := term.(type) {
	case lambda.App:
		if fun, ok := t.Fun.(lambda.Abs); ok {
			return contract(fun, t.Arg), "", t, true
		}
		if fun, path, redex, ok := normalStep(t.Fun); ok {
			return lambda.App{Fun: fun, Arg: t.Arg}, "L" + path, redex, true
		}
		if arg, path, redex, ok := normalStep(t.Arg); ok {
			return lambda.App{Fun: t.Fun, Arg: arg}, "R" + path, redex, true
		}
		return term, "", nil, false

	case lambda.Abs:
		if body, path, redex, ok := normalStep(t.Body); ok {
			return lambda.Abs{Arg: t.Arg, Body: body}, "B" + path, redex, true
		}
		return term, "", nil, false

	default:
		return term, "", nil, false
	}
}

func applicativeStep(term lambda.Term) (lambda.Term, string, lambda.Term, bool) {
	switch t := term.(type) {
	case lambda.App:
		if arg, path, redex, ok := applicativeStep(t.Arg); ok {
			return lambda.App{Fun: t.Fun, Arg: arg}, "R" + path, redex, true
		}
		if fun, path, redex, ok := applicativeStep(t.Fun); ok {
			return lambda.App{Fun: fun, Arg: t.Arg}, "L" + path, redex, true
		}
		if fun, ok := t.Fun.(lambda.Abs); ok {
			return contract(fun, t.Arg), "", t, true
		}
		return term, "", nil, false

	case lambda.Abs:
		if body, path, redex, ok := applicativeStep(t.Body); ok {
			return lambda.Abs{Arg: t.Arg, Body: body}, "B" + path, redex, true
		}
		return term, "", nil, false

	default:
		return term, "", nil, false
	}
}

// ReduceToNormalForm applies normal-order steps until none applies or
// maxSteps steps have been taken, and returns the last term reached. Use
// Reducible on the result to tell the two apart.
func ReduceToNormalForm(term lambda.Term, maxSteps int) (lambda.Term, error) {
	if err := lambda.Validate(term); err != nil {
		return nil, err
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	for i := 0; i < maxSteps; i++ {
		next, _, _, ok := normalStep(term)
		if !ok {
			break
		}
		term = next
	}
	return term, nil
}

// ReduceMany returns the reduction trace [term, step1, step2, ...], ending
// at a normal form or after maxSteps steps.
func ReduceMany(term lambda.Term, strategy Strategy, maxSteps int) ([]lambda.Term, error) {
	if err := lambda.Validate(term); err != nil {
		return nil, err
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	trace := []lambda.Term{term}
	for i := 0; i < maxSteps; i++ {
		next, _, _, ok := step(term, strategy)
		if !ok {
			break
		}
		trace = append(trace, next)
		term = next
	}
	return trace, nil
}
