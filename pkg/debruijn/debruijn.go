// Package debruijn holds the nameless form of lambda terms used by the
// diagram layout, and the conversions to and from lambda.Term.
package debruijn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vic/tromp/pkg/lambda"
)

// Free is the index given to a variable with no enclosing binder.
const Free = -1

// Term is a de Bruijn indexed term: Var, Lam or App.
type Term interface {
	String() string
	isTerm()
}

// Var refers to the binder Index abstractions up from it (0 is the nearest
// enclosing Lam), or is free when Index is Free. Name is a display hint
// carried over from the named term and does not take part in equality for
// bound variables.
type Var struct {
	Index int
	Name  string
}

// Lam is an abstraction. Name is the original parameter name, if known.
type Lam struct {
	Body Term
	Name string
}

// App is an application.
type App struct {
	Fun Term
	Arg Term
}

func (Var) isTerm() {}
func (Lam) isTerm() {}
func (App) isTerm() {}

// Bound reports whether v refers to an enclosing binder.
func (v Var) Bound() bool { return v.Index >= 0 }

func (v Var) String() string {
	if v.Index == Free {
		if v.Name != "" {
			return v.Name
		}
		return "?"
	}
	return strconv.Itoa(v.Index)
}

func (l Lam) String() string {
	var sb strings.Builder
	write(&sb, l)
	return sb.String()
}

func (a App) String() string {
	var sb strings.Builder
	write(&sb, a)
	return sb.String()
}

func write(sb *strings.Builder, term Term) {
	switch t := term.(type) {
	case Var:
		sb.WriteString(t.String())
	case Lam:
		sb.WriteString("λ ")
		write(sb, t.Body)
	case App:
		if _, ok := t.Fun.(Lam); ok {
			sb.WriteByte('(')
			write(sb, t.Fun)
			sb.WriteByte(')')
		} else {
			write(sb, t.Fun)
		}
		sb.WriteByte(' ')
		if _, ok := t.Arg.(Var); ok {
			write(sb, t.Arg)
		} else {
			sb.WriteByte('(')
			write(sb, t.Arg)
			sb.WriteByte(')')
		}
	case nil:
		sb.WriteString("<nil>")
	}
}

// Validate reports the first missing child found in term.
func Validate(term Term) error {
	switch t := term.(type) {
	case nil:
		return &lambda.MalformedTermError{Node: "Term", Field: "value"}
	case Var:
		return nil
	case Lam:
		if t.Body == nil {
			return &lambda.MalformedTermError{Node: "Lam", Field: "Body"}
		}
		return Validate(t.Body)
	case App:
		if t.Fun == nil {
			return &lambda.MalformedTermError{Node: "App", Field: "Fun"}
		}
		if t.Arg == nil {
			return &lambda.MalformedTermError{Node: "App", Field: "Arg"}
		}
		if err := Validate(t.Fun); err != nil {
			return err
		}
		return Validate(t.Arg)
	default:
		return &lambda.MalformedTermError{Node: "Term", Field: "type"}
	}
}

// Equal reports whether a and b denote the same term up to renaming of bound
// variables. Free variables are compared by name.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case Var:
		y, ok := b.(Var)
		if !ok || x.Index != y.Index {
			return false
		}
		return x.Bound() || x.Name == y.Name
	case Lam:
		y, ok := b.(Lam)
		return ok && Equal(x.Body, y.Body)
	case App:
		y, ok := b.(App)
		return ok && Equal(x.Fun, y.Fun) && Equal(x.Arg, y.Arg)
	default:
		return a == nil && b == nil
	}
}

// AlphaEqual reports whether two named terms are alpha-equivalent.
func AlphaEqual(a, b lambda.Term) bool {
	x, err := FromNamed(a)
	if err != nil {
		return false
	}
	y, err := FromNamed(b)
	if err != nil {
		return false
	}
	return Equal(x, y)
}

// Leaves counts the Var nodes of term.
func Leaves(term Term) int {
	switch t := term.(type) {
	case Var:
		return 1
	case Lam:
		return Leaves(t.Body)
	case App:
		return Leaves(t.Fun) + Leaves(t.Arg)
	default:
		return 0
	}
}

// FreeVariableError is returned by FromNamed under the Strict policy when a
// variable has no enclosing binder.
type FreeVariableError struct {
	Name string
}

func (e *FreeVariableError) Error() string {
	return fmt.Sprintf("free variable %q has no enclosing binder", e.Name)
}
