package formatter

import (
	"phpfmt/pkg/ast"
	"phpfmt/pkg/comments"
	"phpfmt/pkg/document"
	"phpfmt/pkg/version"
)

// arguments prints a call's argument list. A single huggable argument, or a
// trailing closure, array or match after simple arguments, sits directly
// against the parentheses; anything else becomes a group that breaks one
// argument per line.
func (f *state) arguments(list *ast.ArgumentList) document.Document {
	if list == nil {
		return document.Text("()")
	}

	f.enter(list)
	defer f.leave()
	saved := f.inCondition
	f.inCondition = false
	defer func() { f.inCondition = saved }()

	if len(list.Arguments) == 0 {
		if dangling := f.comments.PrintDanglingComments(list.Span(), true); dangling != nil {
			return document.Concat{document.Text("("), dangling, document.HardLine(), document.Text(")")}
		}
		return document.Text("()")
	}

	hugOnly := len(list.Arguments) == 1 && f.shouldHugExpression(list.Arguments[0].ArgumentValue(), false)
	hugLast := !hugOnly && f.shouldHugLastArgument(list.Arguments)

	docs := make([]document.Document, 0, len(list.Arguments))
	for _, arg := range list.Arguments {
		docs = append(docs, f.argument(arg))
	}

	if hugOnly || hugLast {
		return document.Concat{
			document.Text("("),
			document.Concat(document.Join(docs, document.SeparatorCommaSpace)),
			document.Text(")"),
		}
	}

	return document.NewGroup(
		document.Text("("),
		document.Indent{document.SoftLine(), document.Concat(document.Join(docs, document.SeparatorCommaLine))},
		document.IfBreak{Break: f.trailingComma(f.supports(version.TrailingCommaInCallArguments))},
		document.SoftLine(),
		document.Text(")"),
	)
}

// shouldHugLastArgument allows `foo($a, function () { ... })`: a few simple
// arguments followed by a closure, array or match that breaks on its own.
func (f *state) shouldHugLastArgument(args []ast.Argument) bool {
	if len(args) < 2 || len(args) > 4 {
		return false
	}

	last := args[len(args)-1]
	if f.hasComment(last.Span(), comments.Leading|comments.Trailing) {
		return false
	}
	switch x := ast.Unparen(last.ArgumentValue()).(type) {
	case *ast.Closure, *ast.Match, *ast.AnonymousClass:
	case *ast.ArrowFunction:
		if !f.shouldHugExpression(x.Body, true) {
			return false
		}
	case *ast.Array:
		if len(x.Elements) == 0 {
			return false
		}
	default:
		return false
	}

	for _, arg := range args[:len(args)-1] {
		p, ok := arg.(*ast.PositionalArgument)
		if !ok || p.Ellipsis || !isSimpleExpression(p.Value) {
			return false
		}
		if f.hasComment(arg.Span(), comments.Leading|comments.Trailing) {
			return false
		}
	}
	return true
}

func (f *state) argument(arg ast.Argument) document.Document {
	return f.commented(arg, func() document.Document {
		f.enter(arg)
		defer f.leave()

		switch x := arg.(type) {
		case *ast.PositionalArgument:
			if x.Ellipsis {
				return document.Concat{document.Text("..."), f.expression(x.Value)}
			}
			return f.expression(x.Value)
		case *ast.NamedArgument:
			return document.Concat{document.Text(x.Name.Name + ": "), f.expression(x.Value)}
		}
		return f.unknown(arg)
	})
}

// chainLinks splits `base->a()->b->c()` into its base and its links,
// innermost first.
func chainLinks(e ast.Expression) (ast.Expression, []ast.Expression) {
	var links []ast.Expression
	for {
		switch x := e.(type) {
		case *ast.MethodCall:
			links = append(links, x)
			e = ast.Unparen(x.Object)
		case *ast.PropertyAccess:
			links = append(links, x)
			e = ast.Unparen(x.Object)
		default:
			for l, r := 0, len(links)-1; l < r; l, r = l+1, r-1 {
				links[l], links[r] = links[r], links[l]
			}
			return e, links
		}
	}
}

func countCalls(links []ast.Expression) int {
	n := 0
	for _, l := range links {
		if _, ok := l.(*ast.MethodCall); ok {
			n++
		}
	}
	return n
}

// isBreakableChain reports member chains with enough method calls to be
// printed one call per line when they do not fit.
func (f *state) isBreakableChain(e ast.Expression) bool {
	_, links := chainLinks(ast.Unparen(e))
	return countCalls(links) >= f.settings.MethodChainBreakingThreshold
}

// memberAccess lowers the method call or property access on top of the
// stack.
func (f *state) memberAccess(e ast.Expression) document.Document {
	base, links := chainLinks(e)
	if countCalls(links) >= f.settings.MethodChainBreakingThreshold {
		return f.memberChain(base, links)
	}

	switch x := e.(type) {
	case *ast.MethodCall:
		return document.NewGroup(f.expression(x.Object), f.link(x))
	case *ast.PropertyAccess:
		return document.Concat{f.expression(x.Object), f.link(x)}
	}
	return f.unknown(e)
}

// link prints one `->name(...)` step. Its node is on top of the stack.
func (f *state) link(e ast.Expression) document.Document {
	switch x := e.(type) {
	case *ast.MethodCall:
		return document.Concat{arrow(x.NullSafe), f.member(x.Method), f.arguments(x.Arguments)}
	case *ast.PropertyAccess:
		return document.Concat{arrow(x.NullSafe), f.member(x.Property)}
	}
	return f.unknown(e)
}

func arrow(nullSafe bool) document.Document {
	if nullSafe {
		return document.Text("?->")
	}
	return document.Text("->")
}

// memberChain prints a chain of links as
//
//	$head->first()
//	    ->second()
//	    ->third();
//
// when it does not fit on one line. Property accesses stay attached to the
// call that follows them. The outermost link is already on the stack; the
// inner ones are pushed so every link and the base see their real parent.
func (f *state) memberChain(base ast.Expression, links []ast.Expression) document.Document {
	for i := len(links) - 2; i >= 0; i-- {
		f.enter(links[i])
	}

	head := document.Concat{f.expression(base)}
	steps := make([]document.Document, len(links))
	for i, l := range links {
		steps[i] = f.link(l)
		if i < len(links)-1 {
			f.leave()
		}
	}

	i := 0
	for i < len(links) {
		if _, ok := links[i].(*ast.PropertyAccess); !ok {
			break
		}
		head = append(head, steps[i])
		i++
	}

	var groups []document.Concat
	var current document.Concat
	for ; i < len(links); i++ {
		current = append(current, steps[i])
		if _, ok := links[i].(*ast.MethodCall); ok {
			groups = append(groups, current)
			current = nil
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	if len(head) == 1 && len(groups) > 0 && f.isShortChainHead(base) {
		head = append(head, groups[0])
		groups = groups[1:]
	}

	rest := make(document.Indent, 0, len(groups)*2)
	for _, g := range groups {
		rest = append(rest, document.SoftLine(), g)
	}
	return document.NewGroup(head, rest)
}

// isShortChainHead reports bases short enough that the first call stays on
// their line: `$this->a()` rather than `$this` alone.
func (f *state) isShortChainHead(base ast.Expression) bool {
	switch x := base.(type) {
	case *ast.Variable:
		return x.Name == "$this" || len(x.Name) <= f.settings.IndentSize+1
	case *ast.Static, *ast.Self, *ast.Parent:
		return true
	}
	return false
}
