package formatter

import (
	"phpfmt/pkg/ast"
	"phpfmt/pkg/comments"
	"phpfmt/pkg/document"
	"phpfmt/pkg/settings"
	"phpfmt/pkg/version"
)

// shouldHugExpression reports whether e may sit directly inside the
// parentheses or brackets of its parent, with no line break of its own
// around it.
func (f *state) shouldHugExpression(e ast.Expression, arrowRecursion bool) bool {
	switch x := e.(type) {
	case *ast.Parenthesized:
		return f.shouldHugExpression(x.Inner, arrowRecursion)
	case *ast.UnaryPrefix:
		return f.shouldHugExpression(x.Operand, arrowRecursion)
	}

	if f.hasComment(e.Span(), comments.Leading|comments.Trailing) {
		return false
	}

	switch x := e.(type) {
	case *ast.FunctionCall, *ast.MethodCall, *ast.StaticMethodCall,
		*ast.PropertyAccess, *ast.StaticPropertyAccess, *ast.ClassConstantAccess:
		return !f.isBreakableChain(e)
	case *ast.ArrowFunction:
		return !arrowRecursion && f.shouldHugExpression(x.Body, true)
	case *ast.Binary:
		lhs, rhs := isSimpleExpression(x.LHS), isSimpleExpression(x.RHS)
		if lhs && rhs {
			return true
		}
		if !x.Operator.IsConcatenation() {
			return false
		}
		return lhs && f.shouldHugExpression(x.RHS, arrowRecursion) ||
			rhs && f.shouldHugExpression(x.LHS, arrowRecursion)
	case *ast.Instantiation:
		if _, ok := ast.Unparen(x.Class).(*ast.Identifier); !ok {
			return false
		}
		return x.Arguments == nil || len(x.Arguments.Arguments) == 0 || f.shouldHugInstantiationArguments(x.Arguments.Arguments, arrowRecursion)
	case *ast.Array, *ast.List, *ast.Closure, *ast.ClosureCreation,
		*ast.AnonymousClass, *ast.Match:
		return true
	}
	return false
}

// shouldHugInstantiationArguments accepts a single positional argument that
// hugs or is itself an instantiation, any number of named arguments, or up
// to three simple positional ones.
func (f *state) shouldHugInstantiationArguments(list []ast.Argument, arrowRecursion bool) bool {
	if len(list) == 1 {
		p, ok := list[0].(*ast.PositionalArgument)
		if !ok {
			return false
		}
		_, nested := p.Value.(*ast.Instantiation)
		return nested || f.shouldHugExpression(p.Value, arrowRecursion)
	}

	named := true
	for _, arg := range list {
		if _, ok := arg.(*ast.NamedArgument); !ok {
			named = false
		}
	}
	if named {
		return true
	}
	if len(list) >= 4 {
		return false
	}
	for _, arg := range list {
		p, ok := arg.(*ast.PositionalArgument)
		if !ok || p.Ellipsis || !isSimpleExpression(p.Value) {
			return false
		}
	}
	return true
}

// isSimpleExpression reports expressions made only of names, literals and
// operators over them.
func isSimpleExpression(e ast.Expression) bool {
	switch x := e.(type) {
	case *ast.Parenthesized:
		return isSimpleExpression(x.Inner)
	case *ast.UnaryPrefix:
		return isSimpleExpression(x.Operand)
	case *ast.Binary:
		return isSimpleExpression(x.LHS) && isSimpleExpression(x.RHS)
	case *ast.Static, *ast.Parent, *ast.Self, *ast.MagicConstant, *ast.Literal,
		*ast.Identifier, *ast.ConstantAccess, *ast.Variable, *ast.ClassConstantAccess:
		return true
	}
	return false
}

// hasTrailingSegment reports whether the clause being lowered is followed
// by more of the same statement: an else/elseif after an if body, the
// while of a do-while.
func (f *state) hasTrailingSegment() bool {
	switch n := f.current().(type) {
	case *ast.If:
		return len(n.ElseIfs) > 0 || n.Else != nil
	case *ast.ElseIf:
		parent, ok := f.parent().(*ast.If)
		if !ok {
			return false
		}
		if parent.Else != nil {
			return true
		}
		return len(parent.ElseIfs) > 0 && parent.ElseIfs[len(parent.ElseIfs)-1] != n
	case *ast.DoWhile:
		return true
	}
	return false
}

// adjustClause positions the body of a control structure relative to its
// header.
func (f *state) adjustClause(body ast.Statement, clause document.Document, forceSpace bool) document.Document {
	block, isBlock := body.(*ast.Block)
	_, isNoop := body.(*ast.Noop)
	trailing := f.hasTrailingSegment()

	if isBlock {
		switch {
		case f.settings.ControlBraceStyle == settings.SameLine || forceSpace:
			clause = document.Concat{document.Space(), clause}
		case f.settings.InlineEmptyControlBraces && f.isEmptyBlock(block):
			clause = document.Concat{document.Space(), clause}
		default:
			clause = document.Concat{document.DefaultLine(), clause}
		}
		if trailing {
			return document.Concat{clause, document.Space()}
		}
		return clause
	}

	switch {
	case isNoop:
	case forceSpace:
		clause = document.Concat{document.Space(), clause}
	default:
		clause = document.Indent{document.BreakParent{}, document.HardLine(), clause}
	}
	if trailing {
		return document.Concat{clause, document.HardLine()}
	}
	return clause
}

func (f *state) isEmptyBlock(b *ast.Block) bool {
	return len(b.Statements) == 0 && !f.hasComment(b.Span(), comments.Dangling)
}

// clause lowers the body of a control structure and places it.
func (f *state) clause(body ast.Statement, forceSpace bool) document.Document {
	return f.adjustClause(body, f.statement(body), forceSpace)
}

// condition prints the parenthesized condition of a control structure.
// Binary chains inside it rely on the indentation given here instead of
// adding their own.
func (f *state) condition(cond ast.Expression, spaceBefore bool) document.Document {
	saved := f.inCondition
	f.inCondition = true
	doc := f.expression(cond)
	f.inCondition = saved

	line := document.SoftLine()
	if f.settings.SpaceWithinGroupingParenthesis {
		line = document.DefaultLine()
	}
	lead := document.Empty()
	if spaceBefore {
		lead = document.Space()
	}
	return document.NewGroup(
		lead,
		document.Text("("),
		document.IndentIfBreak{Contents: []document.Document{line, doc}},
		line,
		document.Text(")"),
	)
}

// modifiers orders a modifier list canonically: final, abstract, then
// static, readonly and visibility in the configured order. Each slot prints
// the first matching modifier only.
func (f *state) modifiers(mods []*ast.Modifier) []document.Document {
	first := func(pred func(*ast.Modifier) bool) []document.Document {
		for _, m := range mods {
			if pred(m) {
				return []document.Document{document.Text(m.Keyword())}
			}
		}
		return nil
	}
	kind := func(k ast.ModifierKind) func(*ast.Modifier) bool {
		return func(m *ast.Modifier) bool { return m.Kind == k }
	}

	for _, m := range mods {
		switch {
		case m.Kind == ast.ModifierReadonly:
			f.require(version.ReadonlyProperties, m)
		case m.IsWriteVisibility():
			f.require(version.AsymmetricVisibility, m)
		}
	}

	var out []document.Document
	out = append(out, first(kind(ast.ModifierFinal))...)
	out = append(out, first(kind(ast.ModifierAbstract))...)

	static := first(kind(ast.ModifierStatic))
	readonly := first(kind(ast.ModifierReadonly))
	read := first((*ast.Modifier).IsReadVisibility)
	write := first((*ast.Modifier).IsWriteVisibility)
	if f.settings.StaticBeforeVisibility {
		out = append(out, static...)
		out = append(out, readonly...)
		out = append(out, read...)
		out = append(out, write...)
	} else {
		out = append(out, read...)
		out = append(out, write...)
		out = append(out, static...)
		out = append(out, readonly...)
	}
	return out
}

// modifierPrefix returns the ordered modifiers followed by a space, or nil.
func (f *state) modifierPrefix(mods []*ast.Modifier) document.Document {
	docs := f.modifiers(mods)
	if len(docs) == 0 {
		return nil
	}
	return document.Concat{document.Concat(document.Join(docs, document.SeparatorSpace)), document.Space()}
}

// attributes prints attribute lists ahead of a declaration, one per line.
// Inline lists (on parameters) stay on the declaration's line unless one of
// them spans several source lines.
func (f *state) attributes(lists []*ast.AttributeList, inline bool) document.Document {
	if len(lists) == 0 {
		return nil
	}

	docs := make([]document.Document, 0, len(lists))
	multiline := false
	for _, list := range lists {
		docs = append(docs, f.attributeList(list))
		multiline = multiline || f.spansLines(list)
	}

	if inline && !multiline {
		return document.Concat{
			document.Concat(document.Join(docs, document.SeparatorSpace)),
			document.Space(),
		}
	}
	return document.NewGroup(
		document.Concat(document.Join(docs, document.SeparatorHardLine)),
		document.HardLine(),
	)
}

func (f *state) attributeList(list *ast.AttributeList) document.Document {
	f.enter(list)
	defer f.leave()

	docs := make([]document.Document, 0, len(list.Attributes))
	for _, attr := range list.Attributes {
		docs = append(docs, f.commented(attr, func() document.Document {
			f.enter(attr)
			defer f.leave()
			if attr.Arguments == nil {
				return document.Text(attr.Name.Name)
			}
			return document.Concat{document.Text(attr.Name.Name), f.arguments(attr.Arguments)}
		}))
	}

	return document.NewGroup(
		document.Text("#["),
		document.Indent{document.SoftLine(), document.Concat(document.Join(docs, document.SeparatorCommaLine))},
		document.IfBreak{Break: f.trailingComma(true)},
		document.SoftLine(),
		document.Text("]"),
	)
}

// trailingComma is the comma printed after the last item of a broken list.
func (f *state) trailingComma(allowed bool) document.Document {
	if allowed && f.settings.TrailingComma {
		return document.Text(",")
	}
	return nil
}
