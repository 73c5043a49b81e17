// Package parens decides where the formatter must print parentheses around
// an expression so that the output parses back to the same tree.
//
// Source parentheses are not kept as such: the formatter lowers the inner
// expression of a Parenthesized node in its place, and NeedsParens decides
// from the ancestors alone whether parentheses come back. Positions inside
// a parent are established by child-slot identity (is this node the
// parent's left operand, its callee, its object), never by comparing source
// offsets, so synthesized trees without spans resolve the same way.
package parens

import (
	"phpfmt/pkg/ast"
	"phpfmt/pkg/settings"
	"phpfmt/pkg/version"
)

// Context is what the resolver knows about a node's surroundings.
type Context struct {
	// Ancestors of the node, root first, not including the node itself.
	// Parenthesized nodes never appear here.
	Ancestors []ast.Node
	Settings  settings.Settings
	Features  version.FeatureGate
}

// nth returns the nth ancestor, 1 being the parent, or nil.
func (c Context) nth(n int) ast.Node {
	i := len(c.Ancestors) - n
	if i < 0 || i >= len(c.Ancestors) {
		return nil
	}
	return c.Ancestors[i]
}

func (c Context) parent() ast.Node      { return c.nth(1) }
func (c Context) grandparent() ast.Node { return c.nth(2) }

func (c Context) supports(f version.Feature) bool {
	if c.Features == nil {
		return version.Latest.IsSupported(f)
	}
	return c.Features.IsSupported(f)
}

// is reports whether node occupies the given child slot of its parent.
func is(slot ast.Expression, node ast.Node) bool {
	if slot == nil {
		return false
	}
	return ast.Node(ast.Unparen(slot)) == node
}

// NeedsParens reports whether node must be wrapped in parentheses at its
// position under ctx.Ancestors.
func NeedsParens(ctx Context, node ast.Node) bool {
	if node == nil || ast.IsStatement(node) {
		return false
	}

	return calleeNeedsParens(ctx, node) ||
		binaryNeedsParens(ctx, node) ||
		unaryPrefixNeedsParens(ctx, node) ||
		conditionalOrAssignmentNeedsParens(ctx, node) ||
		literalNeedsParens(ctx, node) ||
		pipeNeedsParens(ctx, node) ||
		cloneOperandNeedsParens(ctx, node) ||
		unboundedNeedsParens(ctx, node)
}

// ShouldIndent reports whether synthesized parentheses around node get
// their own indented block when they break, rather than hugging it.
func ShouldIndent(node ast.Node) bool {
	if node == nil || ast.IsStatement(node) {
		return false
	}
	return isUnaryOrBinaryOrTernary(node)
}

func literalNeedsParens(ctx Context, node ast.Node) bool {
	lit, ok := node.(*ast.Literal)
	if !ok || !lit.IsNumeric() {
		return false
	}
	binary, ok := ctx.parent().(*ast.Binary)
	return ok && binary.Operator.IsConcatenation()
}

func conditionalOrAssignmentNeedsParens(ctx Context, node ast.Node) bool {
	switch node.(type) {
	case *ast.Assignment, *ast.Conditional:
	default:
		return false
	}

	parent := ctx.parent()
	if parent == nil {
		return false
	}
	if _, ok := parent.(*ast.ArrowFunction); ok {
		_, pipe := ctx.grandparent().(*ast.Pipe)
		return pipe
	}
	if _, ok := parent.(*ast.VariadicArrayElement); ok {
		return true
	}
	return isUnaryOrBinaryOrTernary(parent)
}

func pipeNeedsParens(ctx Context, node ast.Node) bool {
	if _, ok := node.(*ast.Pipe); !ok {
		return false
	}

	switch p := ctx.parent().(type) {
	case *ast.Binary:
		return p.Operator.Precedence() >= ast.PrecedencePipe
	case *ast.Pipe:
		return is(p.Callable, node)
	case *ast.Assignment:
		return false
	case *ast.UnaryPrefix, *ast.UnaryPostfix, *ast.VariadicArrayElement, *ast.ArrayAppend, *ast.Conditional:
		return true
	}
	return false
}

// unboundedNeedsParens wraps expressions that extend as far right as they
// can (`include`, `print`, `throw`, `fn() =>`) when an operator follows
// them: `(print $a) + 2` is not `print $a + 2`.
func unboundedNeedsParens(ctx Context, node ast.Node) bool {
	switch x := node.(type) {
	case *ast.Construct:
		if x.HasBounds() {
			return false
		}
	case *ast.Throw:
	case *ast.ArrowFunction:
		if pipe, ok := ctx.parent().(*ast.Pipe); ok && is(pipe.Callable, node) {
			return true
		}
	default:
		return false
	}
	return followedByOperator(ctx, node)
}

// followedByOperator reports whether printing node without parentheses
// would leave an operator of an ancestor directly to its right.
func followedByOperator(ctx Context, node ast.Node) bool {
	child := node
	for i := 1; ; i++ {
		switch p := ctx.nth(i).(type) {
		case *ast.Binary:
			if is(p.LHS, child) {
				return true
			}
		case *ast.Pipe:
			if is(p.Input, child) {
				return true
			}
		case *ast.Conditional:
			if is(p.Condition, child) {
				return true
			}
			if is(p.Then, child) {
				return false
			}
		case *ast.Assignment:
			if !is(p.RHS, child) {
				return false
			}
		case *ast.UnaryPrefix:
		default:
			return false
		}
		child = ctx.nth(i)
	}
}

func binaryNeedsParens(ctx Context, node ast.Node) bool {
	binary, ok := node.(*ast.Binary)
	if !ok {
		return false
	}
	op := binary.Operator

	var parentOp ast.BinaryOperator
	var parent *ast.Binary
	switch p := ctx.parent().(type) {
	case *ast.VariadicArrayElement:
		return true
	case *ast.Binary:
		if op.IsLowPrecedence() {
			return true
		}
		switch p.Operator {
		case ast.OpNullCoalesce:
			return op != ast.OpNullCoalesce
		case ast.OpInstanceof, ast.OpElvis:
			return true
		case ast.OpStringConcat:
			return op != ast.OpStringConcat
		}
		parentOp, parent = p.Operator, p
	case *ast.Pipe:
		return op.Precedence() <= ast.PrecedencePipe
	case *ast.ArrowFunction:
		_, pipe := ctx.grandparent().(*ast.Pipe)
		return pipe
	case *ast.UnaryPrefix, *ast.UnaryPostfix:
		return true
	case *ast.Conditional:
		return !((op.IsLogical() && !op.IsLowPrecedence()) || op.IsComparison())
	case *ast.ArrayAppend:
		return true
	case *ast.ArrayAccess:
		return is(p.Array, node)
	case *ast.Assignment:
		return op.IsLowPrecedence()
	default:
		return false
	}

	if op.IsBitShift() || op.IsLowPrecedence() {
		return true
	}
	if parentOp.IsComparison() {
		return true
	}
	if parentOp.IsBitwise() {
		return !op.IsSameAs(parentOp)
	}
	if op.IsComparison() {
		return !parentOp.IsLogical()
	}

	precedence, parentPrecedence := op.Precedence(), parentOp.Precedence()
	switch {
	case parentPrecedence > precedence:
		return true
	case parentPrecedence < precedence:
		return false
	}

	// Equal precedence: only the operand on the associative side may drop
	// its parentheses, and only within a flattenable operator family.
	switch parentOp.Associativity() {
	case ast.AssociativityLeft:
		if !is(parent.LHS, node) {
			return true
		}
	case ast.AssociativityRight:
		if !is(parent.RHS, node) {
			return true
		}
	default:
		return true
	}
	return !ShouldFlatten(parentOp, op)
}

// ShouldFlatten reports whether a child operation may join its parent's
// chain without parentheses: `a + b - c` flattens, `a * b / c` and
// `a == b == c` do not.
func ShouldFlatten(parentOp, op ast.BinaryOperator) bool {
	if op.Precedence() != parentOp.Precedence() {
		return false
	}
	if parentOp == ast.OpExponentiation {
		return false
	}
	if parentOp.IsEquality() && op.IsEquality() {
		return false
	}
	if (op == ast.OpModulo && parentOp.IsMultiplicative()) || (parentOp == ast.OpModulo && op.IsMultiplicative()) {
		return false
	}
	if op != parentOp && op.IsMultiplicative() && parentOp.IsMultiplicative() {
		return false
	}
	if parentOp.IsBitShift() && op.IsBitShift() {
		return false
	}
	return true
}

func unaryPrefixNeedsParens(ctx Context, node ast.Node) bool {
	unary, ok := node.(*ast.UnaryPrefix)
	if !ok {
		return false
	}
	op := unary.Operator
	parent := ctx.parent()

	if op.IsErrorControl() {
		binary, ok := parent.(*ast.Binary)
		return ok && is(binary.LHS, node)
	}
	if op.IsCast() {
		return parent != nil && isUnaryOrBinaryOrTernary(parent)
	}

	switch p := parent.(type) {
	case *ast.UnaryPrefix:
		// `-(-$a)` must not print as `--$a`.
		return op.IsSign() && p.Operator.IsSign()
	case *ast.Binary:
		// `(-$a) ** 2` and `(!$a) instanceof B` bind the other way without
		// parentheses.
		return is(p.LHS, node) && p.Operator.Precedence() > op.Precedence()
	}
	return false
}

func cloneOperandNeedsParens(ctx Context, node ast.Node) bool {
	clone, ok := ctx.parent().(*ast.Clone)
	if !ok || !is(clone.Object, node) {
		return false
	}
	expr, ok := node.(ast.Expression)
	return ok && calleeExpressionNeedsParens(expr, false)
}

// calleeNeedsParens handles the callee of a call, the object of an access
// and the class of an instantiation.
func calleeNeedsParens(ctx Context, node ast.Node) bool {
	expr, ok := node.(ast.Expression)
	if !ok {
		return false
	}

	switch p := ctx.parent().(type) {
	case *ast.ClosureCreation:
		if !is(p.Target, node) {
			return false
		}
		if p.Kind == ast.ClosureCreationFunction {
			return functionCalleeNeedsParens(expr)
		}
		return calleeExpressionNeedsParens(expr, false)
	case *ast.FunctionCall:
		return is(p.Function, node) && functionCalleeNeedsParens(expr)
	case *ast.MethodCall:
		if !is(p.Object, node) {
			return false
		}
		if inst, ok := expr.(*ast.Instantiation); ok {
			return InstantiationNeedsParens(ctx, inst)
		}
		return calleeExpressionNeedsParens(expr, false)
	case *ast.StaticMethodCall:
		if !is(p.Class, node) {
			return false
		}
		if inst, ok := expr.(*ast.Instantiation); ok {
			return InstantiationNeedsParens(ctx, inst)
		}
		return calleeExpressionNeedsParens(expr, false)
	case *ast.Instantiation:
		return is(p.Class, node) && calleeExpressionNeedsParens(expr, true)
	case *ast.ArrayAccess:
		return is(p.Array, node) && calleeExpressionNeedsParens(expr, false)
	case *ast.PropertyAccess:
		return is(p.Object, node) && calleeExpressionNeedsParens(expr, false)
	case *ast.StaticPropertyAccess:
		return is(p.Class, node) && calleeExpressionNeedsParens(expr, false)
	case *ast.ClassConstantAccess:
		return is(p.Class, node) && calleeExpressionNeedsParens(expr, false)
	}
	return false
}

// calleeExpressionNeedsParens is false for the expression kinds that
// delimit themselves. Under `new` a call is never self-delimiting:
// `new (foo())` differs from `new foo()`.
func calleeExpressionNeedsParens(expr ast.Expression, instantiation bool) bool {
	switch e := expr.(type) {
	case *ast.FunctionCall, *ast.MethodCall, *ast.StaticMethodCall:
		return instantiation
	case *ast.Construct:
		return !e.HasBounds()
	case *ast.Literal, *ast.Array, *ast.ArrayAccess, *ast.Variable, *ast.Identifier,
		*ast.ConstantAccess, *ast.PropertyAccess, *ast.StaticPropertyAccess,
		*ast.ClassConstantAccess, *ast.ClosureCreation, *ast.Static, *ast.Self, *ast.Parent:
		return false
	}
	return true
}

// functionCalleeNeedsParens is the whitelist for `callee(...)`. Accesses
// are missing on purpose: `($a->b)()` is not `$a->b()`.
func functionCalleeNeedsParens(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.Literal, *ast.Array, *ast.ArrayAccess, *ast.Variable, *ast.Identifier,
		*ast.Construct, *ast.FunctionCall, *ast.MethodCall, *ast.StaticMethodCall,
		*ast.ClosureCreation, *ast.Static, *ast.Self, *ast.Parent:
		return false
	}
	return true
}

// InstantiationNeedsParens decides `(new Foo())->bar()` against
// `new Foo()->bar()` for an instantiation used as a method-call object.
func InstantiationNeedsParens(ctx Context, inst *ast.Instantiation) bool {
	if !ctx.supports(version.NewWithoutParentheses) {
		return true
	}
	if inst.Arguments == nil || len(inst.Arguments.Arguments) == 0 {
		if ctx.Settings.ParenthesesInNewExpression {
			return ctx.Settings.ParenthesesAroundNewInMemberAccess
		}
		return true
	}
	return ctx.Settings.ParenthesesAroundNewInMemberAccess
}

func isUnaryOrBinaryOrTernary(node ast.Node) bool {
	switch node.(type) {
	case *ast.UnaryPrefix, *ast.UnaryPostfix, *ast.Binary, *ast.Pipe, *ast.Conditional:
		return true
	}
	return false
}
