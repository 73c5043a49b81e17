// Package ast defines the PHP syntax tree consumed by the formatter.
//
// The node set is closed: every grammar category (expression, statement,
// class member, argument, array element) is an interface with an unexported
// marker method, and consumers dispatch with exhaustive type switches.
// Nodes never point back at their parents; code that needs ancestry keeps an
// explicit stack while walking.
package ast

// Span is a half-open byte range [Start, End) in the source file.
type Span struct {
	Start int
	End   int
}

// Join returns the smallest span covering both s and other.
func (s Span) Join(other Span) Span {
	return Span{Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

// IsZero reports whether the span carries no position, as is the case for
// synthesized nodes.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// --- Interfaces ---

// Node is the base interface for all AST nodes.
type Node interface {
	Span() Span
	astNode() // Dummy method restricting Node to this package's types
}

// Expression represents an expression node in the AST.
type Expression interface {
	Node
	expressionNode()
}

// Statement represents a statement node in the AST.
type Statement interface {
	Node
	statementNode()
}

// ClassMember represents a member of a class-like body.
type ClassMember interface {
	Node
	classMemberNode()
}

// Argument represents one entry of an argument list.
type Argument interface {
	Node
	argumentNode()
	ArgumentValue() Expression
}

// ArrayElement represents one entry of an array or list literal.
type ArrayElement interface {
	Node
	arrayElementNode()
}

// Base carries the source span shared by every node.
type Base struct {
	Pos Span
}

func (b *Base) Span() Span { return b.Pos }
func (b *Base) astNode()   {}

// At returns a Base covering [start, end). It keeps node literals short.
func At(start, end int) Base {
	return Base{Pos: Span{Start: start, End: end}}
}

// --- Program ---

// Program is the root node of the AST.
type Program struct {
	Base
	Statements []Statement
}

// Unparen strips any number of Parenthesized wrappers.
func Unparen(e Expression) Expression {
	for {
		p, ok := e.(*Parenthesized)
		if !ok {
			return e
		}
		e = p.Inner
	}
}
