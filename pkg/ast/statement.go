package ast

// --- Statements ---

// OpeningTag is `<?php`.
type OpeningTag struct{ Base }

// ClosingTag is `?>`.
type ClosingTag struct{ Base }

// InlineHTML is text outside the PHP tags, kept verbatim.
type InlineHTML struct {
	Base
	Value string
}

// DeclareItem is one `name=value` directive.
type DeclareItem struct {
	Base
	Name  *Identifier
	Value Expression
}

// Declare is `declare(strict_types=1);`.
type Declare struct {
	Base
	Items []*DeclareItem
}

// Namespace is the statement form `namespace Foo\Bar;`.
type Namespace struct {
	Base
	Name *Identifier
}

// UseKind selects what a use statement imports.
type UseKind int

const (
	UseClass UseKind = iota
	UseFunction
	UseConst
)

// UseItem is one imported name with an optional alias.
type UseItem struct {
	Base
	Name  *Identifier
	Alias *Identifier
}

// Use is `use Foo\Bar as Baz;`.
type Use struct {
	Base
	Kind  UseKind
	Items []*UseItem
}

// ExpressionStatement is an expression terminated by `;`.
type ExpressionStatement struct {
	Base
	Expression Expression
}

// Echo is `echo a, b;`.
type Echo struct {
	Base
	Values []Expression
}

// Return is `return value;`; Value may be nil.
type Return struct {
	Base
	Value Expression
}

// Block is a braced statement list.
type Block struct {
	Base
	Statements []Statement
}

// Noop is an empty statement `;`.
type Noop struct{ Base }

// ColonBlock is the statement list of the alternative syntax, from the
// colon up to, not including, the closing keyword: `if ($a): ... endif;`.
// When the body of an If is a ColonBlock, its elseif and else bodies are
// too.
type ColonBlock struct {
	Base
	Statements []Statement
}

// ElseIf is one `elseif (condition) body` clause.
type ElseIf struct {
	Base
	Condition Expression
	Body      Statement
}

// Else is the trailing `else body` clause.
type Else struct {
	Base
	Body Statement
}

// If is `if (condition) body` with optional elseif and else clauses.
type If struct {
	Base
	Condition Expression
	Body      Statement
	ElseIfs   []*ElseIf
	Else      *Else
}

// While is `while (condition) body`.
type While struct {
	Base
	Condition Expression
	Body      Statement
}

// DoWhile is `do body while (condition);`.
type DoWhile struct {
	Base
	Body      Statement
	Condition Expression
}

// For is `for (init; cond; step) body`.
type For struct {
	Base
	Initializations []Expression
	Conditions      []Expression
	Increments      []Expression
	Body            Statement
}

// Foreach is `foreach (expression as key => value) body`; Key may be nil.
type Foreach struct {
	Base
	Expression Expression
	Key        Expression
	Value      Expression
	Body       Statement
}

// Break is `break;` or `break level;`.
type Break struct {
	Base
	Level Expression
}

// Continue is `continue;` or `continue level;`.
type Continue struct {
	Base
	Level Expression
}

// Catch is one `catch (A|B $e) { ... }` clause; Variable may be nil.
type Catch struct {
	Base
	Types    []*Identifier
	Variable *Variable
	Block    *Block
}

// Try is `try {} catch () {} finally {}`; Finally may be nil.
type Try struct {
	Base
	Block   *Block
	Catches []*Catch
	Finally *Block
}

// Function is a named function declaration.
type Function struct {
	Base
	Attributes []*AttributeList
	Name       *Identifier
	ByRef      bool
	Parameters *ParameterList
	ReturnType *TypeHint
	Body       *Block
}

// Class is a class declaration.
type Class struct {
	Base
	Attributes []*AttributeList
	Modifiers  []*Modifier
	Name       *Identifier
	Extends    *Identifier
	Implements []*Identifier
	Members    []ClassMember
}

func (*OpeningTag) statementNode()          {}
func (*ClosingTag) statementNode()          {}
func (*InlineHTML) statementNode()          {}
func (*Declare) statementNode()             {}
func (*Namespace) statementNode()           {}
func (*Use) statementNode()                 {}
func (*ExpressionStatement) statementNode() {}
func (*Echo) statementNode()                {}
func (*Return) statementNode()              {}
func (*Block) statementNode()               {}
func (*Noop) statementNode()                {}
func (*ColonBlock) statementNode()          {}
func (*If) statementNode()                  {}
func (*While) statementNode()               {}
func (*DoWhile) statementNode()             {}
func (*For) statementNode()                 {}
func (*Foreach) statementNode()             {}
func (*Break) statementNode()               {}
func (*Continue) statementNode()            {}
func (*Try) statementNode()                 {}
func (*Function) statementNode()            {}
func (*Class) statementNode()               {}

// IsStatement reports whether n sits at statement level: a statement, a
// statement clause, or the program itself. Such nodes never take
// parentheses.
func IsStatement(n Node) bool {
	switch n.(type) {
	case Statement, *Program, *ElseIf, *Else, *Catch, ClassMember:
		return true
	}
	return false
}
