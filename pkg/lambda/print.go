package lambda

import "strings"

// Format renders term in canonical notation. Application is left
// associative and an abstraction body extends as far right as possible, so
// parentheses only appear around an abstraction in function position and
// around a non-variable argument. When ascii is set, `\` replaces `λ`.
func Format(term Term, ascii bool) string {
	var sb strings.Builder
	lam := "λ"
	if ascii {
		lam = `\`
	}
	writeTerm(&sb, term, lam)
	return sb.String()
}

func writeTerm(sb *strings.Builder, term Term, lam string) {
	switch t := term.(type) {
	case Var:
		sb.WriteString(t.Name)
	case Abs:
		sb.WriteString(lam)
		sb.WriteString(t.Arg)
		sb.WriteByte('.')
		writeTerm(sb, t.Body, lam)
	case App:
		if _, ok := t.Fun.(Abs); ok {
			writeParen(sb, t.Fun, lam)
		} else {
			writeTerm(sb, t.Fun, lam)
		}
		sb.WriteByte(' ')
		if _, ok := t.Arg.(Var); ok {
			writeTerm(sb, t.Arg, lam)
		} else {
			writeParen(sb, t.Arg, lam)
		}
	case nil:
		sb.WriteString("<nil>")
	}
}

func writeParen(sb *strings.Builder, term Term, lam string) {
	sb.WriteByte('(')
	writeTerm(sb, term, lam)
	sb.WriteByte(')')
}
