package lambda

import "fmt"

// ParseError is returned for malformed surface syntax. Pos is the byte
// offset of the offending token in the input.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Msg)
}

// MalformedTermError reports a term node with a missing child. It only
// arises from terms built by hand; the parser never produces one.
type MalformedTermError struct {
	Node  string
	Field string
}

func (e *MalformedTermError) Error() string {
	return fmt.Sprintf("malformed term: %s is missing %s", e.Node, e.Field)
}
