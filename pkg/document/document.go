// Package document defines the intermediate representation that sits between
// the PHP syntax tree and the final text: a small closed set of renderable
// primitives that the printer lays out under a line-width budget.
//
// A Document is immutable once built. Groups are the only nodes with a layout
// decision of their own: the printer renders each one either fully flat or
// fully broken. Everything else either composes documents, changes the
// indentation of its children, or reacts to the decision of a group.
package document

// Document is a node of the document tree.
type Document interface {
	documentNode() // Dummy method restricting the set of document kinds
}

// GroupID identifies a group so that IndentIfBreak and IfBreak nodes can
// react to its break decision. The zero value means "no group".
type GroupID uint32

// IDGenerator mints group identifiers. One generator is owned by a single
// formatting run.
type IDGenerator struct {
	last GroupID
}

// Next returns a fresh, non-zero group identifier.
func (g *IDGenerator) Next() GroupID {
	g.last++
	return g.last
}

// LineKind selects how a Line is rendered.
type LineKind int

const (
	// LineDefault prints a space in flat mode and a newline in break mode.
	LineDefault LineKind = iota
	// LineSoft prints nothing in flat mode and a newline in break mode.
	LineSoft
	// LineHard always prints a newline and breaks every enclosing group.
	LineHard
	// LineLiteral always prints a newline without indentation, for verbatim
	// content such as multi-line string literals.
	LineLiteral
)

func (k LineKind) String() string {
	switch k {
	case LineDefault:
		return "line"
	case LineSoft:
		return "softline"
	case LineHard:
		return "hardline"
	case LineLiteral:
		return "literalline"
	default:
		return "line?"
	}
}

// Text is an atomic, unbreakable run of characters. It must not contain a
// newline; multi-line content is split into Text nodes joined by literal
// lines.
type Text string

// Concat composes documents in order without separators.
type Concat []Document

// Indent renders its children one indentation unit deeper.
type Indent []Document

// IndentIfBreak behaves like Indent when the referenced group is broken and
// like Concat otherwise. A zero GroupID refers to the innermost enclosing
// group.
type IndentIfBreak struct {
	Contents []Document
	GroupID  GroupID
}

// Group is rendered either entirely flat or entirely broken.
type Group struct {
	Contents    []Document
	ShouldBreak bool
	ID          GroupID
}

// Line is a potential line break.
type Line struct {
	Kind LineKind
}

// BreakParent forces every enclosing group to break. It has no output.
type BreakParent struct{}

// Fill holds alternating content and separator documents. Each
// content/separator/content triple is fit-tested on its own, so the
// sequence wraps only at the boundaries that overflow.
type Fill []Document

// IfBreak prints Break when the referenced group (or the enclosing group
// when GroupID is zero) is broken, and Flat otherwise.
type IfBreak struct {
	Break   Document
	Flat    Document
	GroupID GroupID
}

func (Text) documentNode()          {}
func (Concat) documentNode()        {}
func (Indent) documentNode()        {}
func (IndentIfBreak) documentNode() {}
func (*Group) documentNode()        {}
func (Line) documentNode()          {}
func (BreakParent) documentNode()   {}
func (Fill) documentNode()          {}
func (IfBreak) documentNode()       {}

// NewGroup creates a group that breaks only when its content does not fit.
func NewGroup(contents ...Document) *Group {
	return &Group{Contents: contents}
}

// WithBreak sets the forced-break flag. It is meant to be chained right
// after NewGroup, before the group is shared.
func (g *Group) WithBreak(shouldBreak bool) *Group {
	g.ShouldBreak = shouldBreak
	return g
}

// WithID attaches an identifier minted by an IDGenerator.
func (g *Group) WithID(id GroupID) *Group {
	g.ID = id
	return g
}

// NewIndentIfBreak indents contents when the group identified by id breaks.
func NewIndentIfBreak(id GroupID, contents ...Document) IndentIfBreak {
	return IndentIfBreak{Contents: contents, GroupID: id}
}

// Space returns a single space.
func Space() Document { return Text(" ") }

// Empty returns a document with no output.
func Empty() Document { return Text("") }

// HardLine returns a line that always breaks.
func HardLine() Document { return Line{Kind: LineHard} }

// SoftLine returns a line that disappears in flat mode.
func SoftLine() Document { return Line{Kind: LineSoft} }

// DefaultLine returns a line that is a space in flat mode.
func DefaultLine() Document { return Line{Kind: LineDefault} }

// LiteralLine returns a line that breaks without indentation.
func LiteralLine() Document { return Line{Kind: LineLiteral} }
