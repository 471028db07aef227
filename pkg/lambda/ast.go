package lambda

// Term represents a lambda calculus term.
//
// The set of terms is closed: Var, Abs and App are the only implementations,
// so a type switch over those three cases is exhaustive.
type Term interface {
	String() string
	isTerm()
}

// Var represents a variable usage.
type Var struct {
	Name string
}

// Abs represents an abstraction (lambda).
type Abs struct {
	Arg  string
	Body Term
}

// App represents an application.
type App struct {
	Fun Term
	Arg Term
}

func (Var) isTerm() {}
func (Abs) isTerm() {}
func (App) isTerm() {}

func (v Var) String() string { return Format(v, false) }
func (a Abs) String() string { return Format(a, false) }
func (a App) String() string { return Format(a, false) }

// Validate reports the first missing child found in term.
func Validate(term Term) error {
	switch t := term.(type) {
	case nil:
		return &MalformedTermError{Node: "Term", Field: "value"}
	case Var:
		return nil
	case Abs:
		if t.Body == nil {
			return &MalformedTermError{Node: "Abs", Field: "Body"}
		}
		return Validate(t.Body)
	case App:
		if t.Fun == nil {
			return &MalformedTermError{Node: "App", Field: "Fun"}
		}
		if t.Arg == nil {
			return &MalformedTermError{Node: "App", Field: "Arg"}
		}
		if err := Validate(t.Fun); err != nil {
			return err
		}
		return Validate(t.Arg)
	default:
		return &MalformedTermError{Node: "Term", Field: "type"}
	}
}

// Equal reports whether a and b have the same shape and the same names.
// Use debruijn.AlphaEqual to compare up to renaming of bound variables.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case Var:
		y, ok := b.(Var)
		return ok && x.Name == y.Name
	case Abs:
		y, ok := b.(Abs)
		return ok && x.Arg == y.Arg && Equal(x.Body, y.Body)
	case App:
		y, ok := b.(App)
		return ok && Equal(x.Fun, y.Fun) && Equal(x.Arg, y.Arg)
	default:
		return a == nil && b == nil
	}
}

// Size counts the nodes of term.
func Size(term Term) int {
	switch t := term.(type) {
	case Abs:
		return 1 + Size(t.Body)
	case App:
		return 1 + Size(t.Fun) + Size(t.Arg)
	case Var:
		return 1
	default:
		return 0
	}
}
