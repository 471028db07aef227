package church

import (
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/vic/tromp/pkg/lambda"
)

// preludeSource holds the standard combinators. Definitions may refer to
// each other; Expand resolves them.
var preludeSource = map[string]string{
	"I": `λa.a`,
	"K": `λa.λb.a`,
	"S": `λa.λb.λc.a c (b c)`,
	"B": `λf.λg.λa.f (g a)`,
	"C": `λf.λa.λb.f b a`,
	"Y": `λf.(λx.f (x x)) (λx.f (x x))`,

	"omega": `(λx.x x) (λx.x x)`,

	"true":  `λa.λb.a`,
	"false": `λa.λb.b`,
	"and":   `λp.λq.p q p`,
	"or":    `λp.λq.p p q`,
	"not":   `λp.λa.λb.p b a`,

	"pair": `λa.λb.λf.f a b`,
	"fst":  `λp.p (λa.λb.a)`,
	"snd":  `λp.p (λa.λb.b)`,

	"succ": `λn.λf.λx.f (n f x)`,
	"pred": `λn.λf.λx.n (λg.λh.h (g f)) (λu.x) (λu.u)`,
	"plus": `λm.λn.λf.λx.m f (n f x)`,
	"sub":  `λm.λn.n pred m`,
	"mult": `λm.λn.λf.m (n f)`,
	"pow":  `λb.λe.e b`,
	"is0":  `λn.n (λx.false) true`,
	"leq":  `λm.λn.is0 (sub m n)`,
}

var prelude = sync.OnceValue(func() map[string]lambda.Term {
	defs, err := ParseDefinitions(preludeSource)
	if err != nil {
		panic(fmt.Sprintf("church: bad prelude: %v", err))
	}
	return defs
})

// Prelude returns a fresh copy of the standard definitions.
func Prelude() map[string]lambda.Term {
	defs := make(map[string]lambda.Term, len(preludeSource))
	for name, term := range prelude() {
		defs[name] = term
	}
	return defs
}

// Names lists the prelude definitions in sorted order.
func Names() []string {
	names := lo.Keys(preludeSource)
	slices.Sort(names)
	return names
}

// ParseDefinitions parses name -> source pairs.
func ParseDefinitions(src map[string]string) (map[string]lambda.Term, error) {
	defs := make(map[string]lambda.Term, len(src))
	for _, name := range sortedKeys(src) {
		term, err := lambda.Parse(src[name])
		if err != nil {
			return nil, fmt.Errorf("definition %q: %w", name, err)
		}
		defs[name] = term
	}
	return defs, nil
}

// Expand replaces free occurrences of defined names in term with their
// definitions, repeating until no defined name is left free. Substitution is
// capture-avoiding. Definitions that keep reintroducing themselves are
// reported as recursive; use Y for recursion instead.
func Expand(term lambda.Term, defs map[string]lambda.Term) (lambda.Term, error) {
	names := sortedKeys(defs)
	for round := 0; round <= len(defs); round++ {
		free := lambda.FreeVars(term)
		pending := lo.Filter(names, func(name string, _ int) bool { return free[name] })
		if len(pending) == 0 {
			return term, nil
		}
		for _, name := range pending {
			term = lambda.Substitute(term, name, defs[name])
		}
	}
	free := lambda.FreeVars(term)
	cyclic := lo.Filter(names, func(name string, _ int) bool { return free[name] })
	return nil, fmt.Errorf("recursive definitions: %v", cyclic)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
