package ast

// --- Literals and names ---

// LiteralKind distinguishes the scalar literal forms.
type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralTrue
	LiteralFalse
	LiteralNull
)

// Literal is a scalar literal. Raw holds the source text, quotes included
// for strings.
type Literal struct {
	Base
	Kind LiteralKind
	Raw  string
}

// IsNumeric reports integer and float literals.
func (l *Literal) IsNumeric() bool {
	return l.Kind == LiteralInteger || l.Kind == LiteralFloat
}

// Variable is a direct variable such as `$foo`; Name includes the `$`.
type Variable struct {
	Base
	Name string
}

// Identifier is a (possibly qualified) name: a class, function or member
// name.
type Identifier struct {
	Base
	Name string
}

// ConstantAccess reads a global constant such as `PHP_EOL`.
type ConstantAccess struct {
	Base
	Name string
}

// MagicConstant is one of `__LINE__`, `__CLASS__` and friends.
type MagicConstant struct {
	Base
	Name string
}

// Static is the `static` class reference.
type Static struct{ Base }

// Self is the `self` class reference.
type Self struct{ Base }

// Parent is the `parent` class reference.
type Parent struct{ Base }

// --- Arrays ---

// Array is an array literal: `[...]`, or `array(...)` when Legacy is set.
type Array struct {
	Base
	Legacy   bool
	Elements []ArrayElement
}

// List is a destructuring target: `[...]`, or `list(...)` when Legacy is set.
type List struct {
	Base
	Legacy   bool
	Elements []ArrayElement
}

// KeyValueArrayElement is `key => value`.
type KeyValueArrayElement struct {
	Base
	Key   Expression
	Value Expression
}

// ValueArrayElement is a bare value.
type ValueArrayElement struct {
	Base
	Value Expression
}

// VariadicArrayElement is a spread `...value`.
type VariadicArrayElement struct {
	Base
	Value Expression
}

// MissingArrayElement is a skipped slot in a list, as in `[, $b]`.
type MissingArrayElement struct{ Base }

// ArrayAccess is `array[index]`.
type ArrayAccess struct {
	Base
	Array Expression
	Index Expression
}

// ArrayAppend is the write target `array[]`.
type ArrayAppend struct {
	Base
	Array Expression
}

// --- Operations ---

// Binary is an infix operation.
type Binary struct {
	Base
	LHS      Expression
	Operator BinaryOperator
	RHS      Expression
}

// UnaryPrefix is a prefix operation or a cast.
type UnaryPrefix struct {
	Base
	Operator UnaryPrefixOperator
	Operand  Expression
}

// UnaryPostfix is `$i++` or `$i--`.
type UnaryPostfix struct {
	Base
	Operand  Expression
	Operator UnaryPostfixOperator
}

// Assignment is a plain or compound assignment.
type Assignment struct {
	Base
	LHS      Expression
	Operator AssignmentOperator
	RHS      Expression
}

// Conditional is the ternary `condition ? then : else`.
type Conditional struct {
	Base
	Condition Expression
	Then      Expression
	Else      Expression
}

// Pipe is `input |> callable`.
type Pipe struct {
	Base
	Input    Expression
	Callable Expression
}

// Parenthesized is an expression wrapped in parentheses in the source.
type Parenthesized struct {
	Base
	Inner Expression
}

// --- Calls and access ---

// ArgumentList is the parenthesized argument list of a call-like node.
type ArgumentList struct {
	Base
	Arguments []Argument
}

// PositionalArgument is `value` or `...value`.
type PositionalArgument struct {
	Base
	Ellipsis bool
	Value    Expression
}

// NamedArgument is `name: value`.
type NamedArgument struct {
	Base
	Name  *Identifier
	Value Expression
}

func (a *PositionalArgument) ArgumentValue() Expression { return a.Value }
func (a *NamedArgument) ArgumentValue() Expression      { return a.Value }

// FunctionCall is `function(arguments)`.
type FunctionCall struct {
	Base
	Function  Expression
	Arguments *ArgumentList
}

// MethodCall is `object->method(arguments)`, or `object?->method(...)` when
// NullSafe is set.
type MethodCall struct {
	Base
	Object    Expression
	NullSafe  bool
	Method    Expression
	Arguments *ArgumentList
}

// StaticMethodCall is `class::method(arguments)`.
type StaticMethodCall struct {
	Base
	Class     Expression
	Method    Expression
	Arguments *ArgumentList
}

// PropertyAccess is `object->property`, or `object?->property` when
// NullSafe is set.
type PropertyAccess struct {
	Base
	Object   Expression
	NullSafe bool
	Property Expression
}

// StaticPropertyAccess is `class::$property`.
type StaticPropertyAccess struct {
	Base
	Class    Expression
	Property Expression
}

// ClassConstantAccess is `class::CONSTANT`.
type ClassConstantAccess struct {
	Base
	Class    Expression
	Constant Expression
}

// Instantiation is `new class(arguments)`. Arguments is nil when the source
// omitted the parentheses.
type Instantiation struct {
	Base
	Class     Expression
	Arguments *ArgumentList
}

// --- Functions ---

// TypeHint is a type declaration kept as written, e.g. `?int` or `A|B`.
type TypeHint struct {
	Base
	Text string
}

// ParameterList is the parenthesized parameter list of a function-like node.
type ParameterList struct {
	Base
	Parameters []*Parameter
}

// Parameter is one function parameter. Modifiers are set for promoted
// constructor properties.
type Parameter struct {
	Base
	Attributes []*AttributeList
	Modifiers  []*Modifier
	Type       *TypeHint
	ByRef      bool
	Variadic   bool
	Variable   *Variable
	Default    Expression
}

// ClosureUse is one variable captured by `use (...)`.
type ClosureUse struct {
	Base
	ByRef    bool
	Variable *Variable
}

// Closure is an anonymous `function () use (...) {}`.
type Closure struct {
	Base
	Attributes []*AttributeList
	Static     bool
	ByRef      bool
	Parameters *ParameterList
	Uses       []*ClosureUse
	ReturnType *TypeHint
	Body       *Block
}

// ArrowFunction is `fn (...) => expression`.
type ArrowFunction struct {
	Base
	Attributes []*AttributeList
	Static     bool
	ByRef      bool
	Parameters *ParameterList
	ReturnType *TypeHint
	Body       Expression
}

// ClosureCreationKind selects the callee form of a first-class callable.
type ClosureCreationKind int

const (
	ClosureCreationFunction ClosureCreationKind = iota
	ClosureCreationMethod
	ClosureCreationStaticMethod
)

// ClosureCreation is a first-class callable: `strlen(...)`,
// `$obj->method(...)` or `Foo::method(...)`. Target is the function, object
// or class; Method is nil for the function form.
type ClosureCreation struct {
	Base
	Kind   ClosureCreationKind
	Target Expression
	Method Expression
}

// AnonymousClass is `new class(arguments) extends X implements Y {}`.
type AnonymousClass struct {
	Base
	Attributes []*AttributeList
	Modifiers  []*Modifier
	Arguments  *ArgumentList
	Extends    *Identifier
	Implements []*Identifier
	Members    []ClassMember
}

// --- Control expressions ---

// MatchArm is one arm of a match expression. Conditions is empty for the
// default arm.
type MatchArm struct {
	Base
	Conditions []Expression
	Body       Expression
}

// IsDefault reports whether the arm is the `default` arm.
func (a *MatchArm) IsDefault() bool { return len(a.Conditions) == 0 }

// Match is `match (subject) { arms }`.
type Match struct {
	Base
	Subject Expression
	Arms    []*MatchArm
}

// ConstructKind enumerates the language constructs that look like calls.
type ConstructKind int

const (
	ConstructIsset ConstructKind = iota
	ConstructEmpty
	ConstructEval
	ConstructInclude
	ConstructIncludeOnce
	ConstructRequire
	ConstructRequireOnce
	ConstructPrint
	ConstructExit
	ConstructDie
)

var constructKeywords = [...]string{
	ConstructIsset:       "isset",
	ConstructEmpty:       "empty",
	ConstructEval:        "eval",
	ConstructInclude:     "include",
	ConstructIncludeOnce: "include_once",
	ConstructRequire:     "require",
	ConstructRequireOnce: "require_once",
	ConstructPrint:       "print",
	ConstructExit:        "exit",
	ConstructDie:         "die",
}

func (k ConstructKind) String() string { return constructKeywords[k] }

// Construct is a language construct. Parenthesized records whether `exit`
// and `die` were written with an argument list.
type Construct struct {
	Base
	Kind          ConstructKind
	Values        []Expression
	Parenthesized bool
}

// HasBounds reports whether the construct is closed by its own parentheses,
// so that it can be called or accessed without extra parentheses.
func (c *Construct) HasBounds() bool {
	switch c.Kind {
	case ConstructIsset, ConstructEmpty, ConstructEval:
		return true
	case ConstructExit, ConstructDie:
		return c.Parenthesized
	default:
		return false
	}
}

// Clone is `clone object`.
type Clone struct {
	Base
	Object Expression
}

// Throw is the `throw exception` expression.
type Throw struct {
	Base
	Exception Expression
}

// --- Marker methods ---

func (*Literal) expressionNode()              {}
func (*Variable) expressionNode()             {}
func (*Identifier) expressionNode()           {}
func (*ConstantAccess) expressionNode()       {}
func (*MagicConstant) expressionNode()        {}
func (*Static) expressionNode()               {}
func (*Self) expressionNode()                 {}
func (*Parent) expressionNode()               {}
func (*Array) expressionNode()                {}
func (*List) expressionNode()                 {}
func (*ArrayAccess) expressionNode()          {}
func (*ArrayAppend) expressionNode()          {}
func (*Binary) expressionNode()               {}
func (*UnaryPrefix) expressionNode()          {}
func (*UnaryPostfix) expressionNode()         {}
func (*Assignment) expressionNode()           {}
func (*Conditional) expressionNode()          {}
func (*Pipe) expressionNode()                 {}
func (*Parenthesized) expressionNode()        {}
func (*FunctionCall) expressionNode()         {}
func (*MethodCall) expressionNode()           {}
func (*StaticMethodCall) expressionNode()     {}
func (*PropertyAccess) expressionNode()       {}
func (*StaticPropertyAccess) expressionNode() {}
func (*ClassConstantAccess) expressionNode()  {}
func (*Instantiation) expressionNode()        {}
func (*Closure) expressionNode()              {}
func (*ArrowFunction) expressionNode()        {}
func (*ClosureCreation) expressionNode()      {}
func (*AnonymousClass) expressionNode()       {}
func (*Match) expressionNode()                {}
func (*Construct) expressionNode()            {}
func (*Clone) expressionNode()                {}
func (*Throw) expressionNode()                {}

func (*KeyValueArrayElement) arrayElementNode() {}
func (*ValueArrayElement) arrayElementNode()    {}
func (*VariadicArrayElement) arrayElementNode() {}
func (*MissingArrayElement) arrayElementNode()  {}

func (*PositionalArgument) argumentNode() {}
func (*NamedArgument) argumentNode()      {}
