package lambda

import (
	"log/slog"
	"strconv"
	"strings"
)

// FreeVars returns the set of names occurring free in term.
func FreeVars(term Term) map[string]bool {
	free := make(map[string]bool)
	collectFree(term, make(map[string]int), free)
	return free
}

func collectFree(term Term, bound map[string]int, free map[string]bool) {
	switch t := term.(type) {
	case Var:
		if bound[t.Name] == 0 {
			free[t.Name] = true
		}
	case Abs:
		bound[t.Arg]++
		collectFree(t.Body, bound, free)
		bound[t.Arg]--
	case App:
		collectFree(t.Fun, bound, free)
		collectFree(t.Arg, bound, free)
	}
}

// OccursFree reports whether name occurs free in term.
func OccursFree(name string, term Term) bool {
	switch t := term.(type) {
	case Var:
		return t.Name == name
	case Abs:
		if t.Arg == name {
			return false
		}
		return OccursFree(name, t.Body)
	case App:
		return OccursFree(name, t.Fun) || OccursFree(name, t.Arg)
	default:
		return false
	}
}

// Substitute replaces the free occurrences of name in term with replacement.
//
// Binders that would capture a free variable of replacement are renamed
// first, so the result never binds a name that was free in replacement.
func Substitute(term Term, name string, replacement Term) Term {
	switch t := term.(type) {
	case Var:
		if t.Name == name {
			return replacement
		}
		return t

	case App:
		return App{
			Fun: Substitute(t.Fun, name, replacement),
			Arg: Substitute(t.Arg, name, replacement),
		}

	case Abs:
		if t.Arg == name {
			// Shadowed: name is not free below this binder.
			return t
		}
		if !OccursFree(name, t.Body) {
			return t
		}
		replFree := FreeVars(replacement)
		if !replFree[t.Arg] {
			return Abs{Arg: t.Arg, Body: Substitute(t.Body, name, replacement)}
		}

		avoid := FreeVars(t.Body)
		for v := range replFree {
			avoid[v] = true
		}
		fresh := FreshName(t.Arg, avoid)
		slog.Debug("alpha rename", "from", t.Arg, "to", fresh, "substituting", name)

		renamed := Substitute(t.Body, t.Arg, Var{Name: fresh})
		return Abs{Arg: fresh, Body: Substitute(renamed, name, replacement)}

	default:
		return term
	}
}

// FreshName derives a name from base that is not in avoid by appending an
// increasing numeric suffix. Trailing digits of base are dropped first so
// that renaming y1 yields y2 rather than y11.
func FreshName(base string, avoid map[string]bool) string {
	stem := strings.TrimRight(base, "0123456789")
	if stem == "" {
		stem = "v"
	}
	for i := 1; ; i++ {
		candidate := stem + strconv.Itoa(i)
		if !avoid[candidate] {
			return candidate
		}
	}
}
