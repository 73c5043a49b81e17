package formatter

import (
	"strings"

	"phpfmt/pkg/ast"
	"phpfmt/pkg/comments"
	"phpfmt/pkg/document"
	"phpfmt/pkg/version"
)

// Casts with more than one spelling print in their short form.
var castAliases = map[ast.UnaryPrefixOperator]string{
	ast.OpBooleanCast: "(bool)",
	ast.OpIntegerCast: "(int)",
	ast.OpDoubleCast:  "(float)",
	ast.OpRealCast:    "(float)",
	ast.OpBinaryCast:  "(string)",
}

// lowerExpression lowers the expression on top of the stack.
func (f *state) lowerExpression(e ast.Expression) document.Document {
	switch x := e.(type) {
	case *ast.Literal:
		return literal(x)
	case *ast.Variable:
		return document.Text(x.Name)
	case *ast.Identifier:
		return document.Text(x.Name)
	case *ast.ConstantAccess:
		return document.Text(x.Name)
	case *ast.MagicConstant:
		return document.Text(strings.ToUpper(x.Name))
	case *ast.Static:
		return document.Text("static")
	case *ast.Self:
		return document.Text("self")
	case *ast.Parent:
		return document.Text("parent")
	case *ast.Parenthesized:
		return f.expression(x.Inner)
	case *ast.Array:
		if x.Legacy {
			return f.array(x, x.Elements, "array(", ")")
		}
		return f.array(x, x.Elements, "[", "]")
	case *ast.List:
		if x.Legacy {
			return f.array(x, x.Elements, "list(", ")")
		}
		return f.array(x, x.Elements, "[", "]")
	case *ast.ArrayAccess:
		return document.NewGroup(f.expression(x.Array), document.Text("["), f.expression(x.Index), document.Text("]"))
	case *ast.ArrayAppend:
		return document.Concat{f.expression(x.Array), document.Text("[]")}
	case *ast.Binary:
		return f.binary(x)
	case *ast.UnaryPrefix:
		return f.unaryPrefix(x)
	case *ast.UnaryPostfix:
		return document.Concat{f.expression(x.Operand), document.Text(x.Operator.String())}
	case *ast.Assignment:
		return f.assignment(x)
	case *ast.Conditional:
		return f.conditional(x)
	case *ast.Pipe:
		return f.pipe(x)
	case *ast.FunctionCall:
		return document.NewGroup(f.expression(x.Function), f.arguments(x.Arguments))
	case *ast.MethodCall, *ast.PropertyAccess:
		return f.memberAccess(x)
	case *ast.StaticMethodCall:
		return document.NewGroup(
			f.expression(x.Class),
			document.Text("::"),
			f.member(x.Method),
			f.arguments(x.Arguments),
		)
	case *ast.StaticPropertyAccess:
		return document.Concat{f.expression(x.Class), document.Text("::"), f.expression(x.Property)}
	case *ast.ClassConstantAccess:
		return document.Concat{f.expression(x.Class), document.Text("::"), f.member(x.Constant)}
	case *ast.Instantiation:
		return f.instantiation(x)
	case *ast.Closure:
		return f.closure(x)
	case *ast.ArrowFunction:
		return f.arrowFunction(x)
	case *ast.ClosureCreation:
		return f.closureCreation(x)
	case *ast.AnonymousClass:
		return f.anonymousClass(x)
	case *ast.Match:
		return f.match(x)
	case *ast.Construct:
		return f.construct(x)
	case *ast.Clone:
		return document.Concat{document.Text("clone "), f.expression(x.Object)}
	case *ast.Throw:
		return document.Concat{document.Text("throw "), f.expression(x.Exception)}
	}
	return f.unknown(e)
}

func literal(l *ast.Literal) document.Document {
	switch l.Kind {
	case ast.LiteralTrue:
		return document.Text("true")
	case ast.LiteralFalse:
		return document.Text("false")
	case ast.LiteralNull:
		return document.Text("null")
	case ast.LiteralString:
		return document.SplitLines(l.Raw)
	}
	return document.Text(l.Raw)
}

// member prints the name part of an access: `name`, `$name` or `{expr}`.
func (f *state) member(e ast.Expression) document.Document {
	switch x := e.(type) {
	case *ast.Identifier:
		return document.Text(x.Name)
	case *ast.Variable:
		return f.expression(x)
	}
	return document.Concat{document.Text("{"), f.expression(e), document.Text("}")}
}

func (f *state) unaryPrefix(u *ast.UnaryPrefix) document.Document {
	op := u.Operator.String()
	if alias, ok := castAliases[u.Operator]; ok {
		op = alias
	}
	if u.Operator.IsCast() {
		op += " "
	}
	return document.Concat{document.Text(op), f.expression(u.Operand)}
}

// breaksAfterOperator reports right-hand sides that move to their own line
// as a whole before breaking internally.
func breaksAfterOperator(rhs ast.Expression) bool {
	switch x := ast.Unparen(rhs).(type) {
	case *ast.Binary:
		return true
	case *ast.Literal:
		return x.Kind == ast.LiteralString && !strings.Contains(x.Raw, "\n")
	}
	return false
}

func (f *state) assignment(a *ast.Assignment) document.Document {
	lhs := f.expression(a.LHS)
	op := document.Text(" " + a.Operator.String())
	rhs := f.expression(a.RHS)

	if breaksAfterOperator(a.RHS) {
		return document.NewGroup(lhs, op, document.NewGroup(document.Indent{document.DefaultLine(), rhs}))
	}
	return document.NewGroup(lhs, op, document.Space(), rhs)
}

func (f *state) conditional(c *ast.Conditional) document.Document {
	cond := f.expression(c.Condition)
	if c.Then == nil {
		return document.NewGroup(cond, document.Indent{
			document.DefaultLine(), document.Text("?: "), f.expression(c.Else),
		})
	}
	return document.NewGroup(cond, document.Indent{
		document.DefaultLine(), document.Text("? "), f.expression(c.Then),
		document.DefaultLine(), document.Text(": "), f.expression(c.Else),
	})
}

func (f *state) instantiation(n *ast.Instantiation) document.Document {
	parts := document.Concat{document.Text("new "), f.expression(n.Class)}

	args := n.Arguments
	switch {
	case args != nil && (len(args.Arguments) > 0 || f.hasComment(args.Span(), comments.Dangling)):
		parts = append(parts, f.arguments(args))
	case f.settings.ParenthesesInNewExpression:
		parts = append(parts, document.Text("()"))
	}
	return parts
}

// returnType prints `: type`, or nothing.
func returnType(t *ast.TypeHint) document.Document {
	if t == nil {
		return nil
	}
	return document.Text(": " + t.Text)
}

func (f *state) closure(c *ast.Closure) document.Document {
	parts := document.Concat{f.attributes(c.Attributes, true)}
	if c.Static {
		parts = append(parts, document.Text("static "))
	}
	parts = append(parts, document.Text("function "))
	if c.ByRef {
		parts = append(parts, document.Text("&"))
	}
	params, _ := f.parameters(c.Parameters)
	parts = append(parts, params)

	if len(c.Uses) > 0 {
		uses := make([]document.Document, 0, len(c.Uses))
		for _, use := range c.Uses {
			uses = append(uses, f.commented(use, func() document.Document {
				f.enter(use)
				defer f.leave()
				if use.ByRef {
					return document.Text("&" + use.Variable.Name)
				}
				return document.Text(use.Variable.Name)
			}))
		}
		parts = append(parts, document.Text(" use "), document.NewGroup(
			document.Text("("),
			document.Indent{document.SoftLine(), document.Concat(document.Join(uses, document.SeparatorCommaLine))},
			document.IfBreak{Break: f.trailingComma(f.supports(version.TrailingCommaInClosureUseLists))},
			document.SoftLine(),
			document.Text(")"),
		))
	}

	parts = append(parts, returnType(c.ReturnType), document.Space(), f.body(c.Body, nil))
	return parts
}

func (f *state) arrowFunction(a *ast.ArrowFunction) document.Document {
	f.require(version.ArrowFunctions, a)
	parts := document.Concat{f.attributes(a.Attributes, true)}
	if a.Static {
		parts = append(parts, document.Text("static "))
	}
	parts = append(parts, document.Text("fn"))
	if a.ByRef {
		parts = append(parts, document.Text("&"))
	}
	params, _ := f.parameters(a.Parameters)
	parts = append(parts, params, returnType(a.ReturnType))

	saved := f.inCondition
	f.inCondition = false
	body := f.expression(a.Body)
	f.inCondition = saved

	if f.shouldHugExpression(a.Body, true) {
		return append(parts, document.Text(" => "), body)
	}
	return append(parts, document.Text(" =>"), document.NewGroup(document.Indent{document.DefaultLine(), body}))
}

func (f *state) closureCreation(c *ast.ClosureCreation) document.Document {
	switch c.Kind {
	case ast.ClosureCreationMethod:
		return document.Concat{f.expression(c.Target), document.Text("->"), f.member(c.Method), document.Text("(...)")}
	case ast.ClosureCreationStaticMethod:
		return document.Concat{f.expression(c.Target), document.Text("::"), f.member(c.Method), document.Text("(...)")}
	}
	return document.Concat{f.expression(c.Target), document.Text("(...)")}
}

func (f *state) anonymousClass(c *ast.AnonymousClass) document.Document {
	parts := document.Concat{
		document.Text("new "),
		f.attributes(c.Attributes, true),
		f.modifierPrefix(c.Modifiers),
		document.Text("class"),
	}
	if c.Arguments != nil {
		parts = append(parts, f.arguments(c.Arguments))
	}
	parts = append(parts, f.inheritance(c.Extends, c.Implements), document.Space())
	return append(parts, f.classBody(c, c.Members, nil))
}

func (f *state) match(m *ast.Match) document.Document {
	head := document.Concat{document.Text("match"), f.condition(m.Subject, true), document.Text(" {")}

	if len(m.Arms) == 0 {
		if dangling := f.comments.PrintDanglingComments(m.Span(), true); dangling != nil {
			return append(head, dangling, document.HardLine(), document.Text("}"))
		}
		return append(head, document.Text("}"))
	}

	saved := f.inCondition
	f.inCondition = false
	defer func() { f.inCondition = saved }()

	arms := make([]document.Document, 0, len(m.Arms))
	for _, arm := range m.Arms {
		arms = append(arms, f.commented(arm, func() document.Document {
			return document.Concat{f.matchArm(arm), document.Text(",")}
		}))
	}

	parts := append(head, document.Indent{document.HardLine(), document.Concat(document.Join(arms, document.SeparatorHardLine))})
	if dangling := f.comments.PrintDanglingComments(m.Span(), true); dangling != nil {
		parts = append(parts, dangling)
	}
	return append(parts, document.HardLine(), document.Text("}"))
}

func (f *state) matchArm(arm *ast.MatchArm) document.Document {
	f.enter(arm)
	defer f.leave()

	var conditions document.Document = document.Text("default")
	if !arm.IsDefault() {
		docs := make([]document.Document, 0, len(arm.Conditions))
		for _, c := range arm.Conditions {
			docs = append(docs, f.expression(c))
		}
		conditions = document.NewGroup(document.Concat(document.Join(docs, document.SeparatorCommaLine)))
	}
	return document.NewGroup(conditions, document.Text(" => "), f.expression(arm.Body))
}

func (f *state) construct(c *ast.Construct) document.Document {
	keyword := document.Text(c.Kind.String())
	values := make([]document.Document, 0, len(c.Values))
	for _, v := range c.Values {
		values = append(values, f.expression(v))
	}

	switch c.Kind {
	case ast.ConstructIsset, ast.ConstructEmpty, ast.ConstructEval:
		return document.NewGroup(
			keyword,
			document.Text("("),
			document.Indent{document.SoftLine(), document.Concat(document.Join(values, document.SeparatorCommaLine))},
			document.SoftLine(),
			document.Text(")"),
		)
	case ast.ConstructExit, ast.ConstructDie:
		if !c.Parenthesized {
			return keyword
		}
		return document.Concat{keyword, document.Text("("), document.Concat(document.Join(values, document.SeparatorCommaSpace)), document.Text(")")}
	}

	if len(values) == 0 {
		return keyword
	}
	return document.Concat{keyword, document.Space(), values[0]}
}
