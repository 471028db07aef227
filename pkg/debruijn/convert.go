package debruijn

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/vic/tromp/pkg/lambda"
)

// Policy decides what FromNamed does with a variable that has no binder.
type Policy int

const (
	// Permissive gives free variables the Free index and keeps their name,
	// so open terms arising mid-reduction can still be laid out.
	Permissive Policy = iota
	// Strict rejects free variables with a FreeVariableError.
	Strict
)

type options struct {
	policy      Policy
	preferHints bool
}

// Option configures a conversion.
type Option func(*options)

// WithPolicy selects the free-variable policy of FromNamed.
func WithPolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

// PreferHints makes ToNamed reuse a Lam's original parameter name when it
// does not clash with anything in scope.
func PreferHints() Option {
	return func(o *options) { o.preferHints = true }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// FromNamed converts a named term to de Bruijn form. It only resolves
// lexical scope; no renaming happens.
func FromNamed(term lambda.Term, opts ...Option) (Term, error) {
	if err := lambda.Validate(term); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return fromNamed(term, nil, o.policy)
}

// scope lists binder names with the innermost binder last.
func fromNamed(term lambda.Term, scope []string, policy Policy) (Term, error) {
	switch t := term.(type) {
	case lambda.Var:
		for i := len(scope) - 1; i >= 0; i-- {
			if scope[i] == t.Name {
				return Var{Index: len(scope) - 1 - i, Name: t.Name}, nil
			}
		}
		if policy == Strict {
			return nil, &FreeVariableError{Name: t.Name}
		}
		return Var{Index: Free, Name: t.Name}, nil

	case lambda.Abs:
		body, err := fromNamed(t.Body, append(scope, t.Arg), policy)
		if err != nil {
			return nil, err
		}
		return Lam{Body: body, Name: t.Arg}, nil

	case lambda.App:
		fun, err := fromNamed(t.Fun, scope, policy)
		if err != nil {
			return nil, err
		}
		arg, err := fromNamed(t.Arg, scope, policy)
		if err != nil {
			return nil, err
		}
		return App{Fun: fun, Arg: arg}, nil

	default:
		return nil, &lambda.MalformedTermError{Node: "Term", Field: "type"}
	}
}

// preferredNames are tried in order before falling back to x0, x1, ...
var preferredNames = []string{"x", "y", "z", "a", "b", "c", "m", "n"}

// ToNamed converts a de Bruijn term back to a named term.
//
// Binder names are chosen so that they are not already in scope and do not
// collide with any free variable name of term, so converting back never
// captures. Indices pointing past the outermost binder become free_<n>, and
// negative indices without a name become free.
func ToNamed(term Term, opts ...Option) (lambda.Term, error) {
	if err := Validate(term); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	n := &namer{free: freeNames(term), preferHints: o.preferHints}
	return n.toNamed(term, nil), nil
}

type namer struct {
	free        map[string]bool
	preferHints bool
}

func (n *namer) toNamed(term Term, scope []string) lambda.Term {
	switch t := term.(type) {
	case Var:
		if t.Index == Free && t.Name != "" {
			return lambda.Var{Name: t.Name}
		}
		if t.Index < 0 {
			return lambda.Var{Name: "free"}
		}
		if t.Index >= len(scope) {
			return lambda.Var{Name: fmt.Sprintf("free_%d", t.Index-len(scope))}
		}
		return lambda.Var{Name: scope[len(scope)-1-t.Index]}

	case Lam:
		name := n.fresh(t.Name, scope)
		return lambda.Abs{Arg: name, Body: n.toNamed(t.Body, append(scope, name))}

	case App:
		return lambda.App{Fun: n.toNamed(t.Fun, scope), Arg: n.toNamed(t.Arg, scope)}

	default:
		return nil
	}
}

func (n *namer) fresh(hint string, scope []string) string {
	usable := func(name string) bool {
		return !n.free[name] && !lo.Contains(scope, name)
	}
	if n.preferHints && hint != "" && usable(hint) {
		return hint
	}
	for _, name := range preferredNames {
		if usable(name) {
			return name
		}
	}
	for i := 0; ; i++ {
		if name := fmt.Sprintf("x%d", i); usable(name) {
			return name
		}
	}
}

// freeNames collects the names a binder must not take: hints of Free
// variables and the placeholders given to out-of-range indices.
func freeNames(term Term) map[string]bool {
	names := make(map[string]bool)
	var walk func(Term, int)
	walk = func(t Term, depth int) {
		switch t := t.(type) {
		case Var:
			switch {
			case t.Index == Free && t.Name != "":
				names[t.Name] = true
			case t.Index < 0:
				names["free"] = true
			case t.Index >= depth:
				names[fmt.Sprintf("free_%d", t.Index-depth)] = true
			}
		case Lam:
			walk(t.Body, depth+1)
		case App:
			walk(t.Fun, depth)
			walk(t.Arg, depth)
		}
	}
	walk(term, 0)
	return names
}
