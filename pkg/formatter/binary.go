package formatter

import (
	"phpfmt/pkg/ast"
	"phpfmt/pkg/document"
	"phpfmt/pkg/parens"
	"phpfmt/pkg/version"
)

// binary prints an operator chain with each continuation line led by its
// operator:
//
//	$first
//	    && $second
//	    && $third
//
// Operations of the same precedence that the resolver lets go without
// parentheses are flattened into one chain, on either side.
func (f *state) binary(b *ast.Binary) document.Document {
	parts := f.binaryParts(b)

	// Conditions and synthesized parentheses provide the indentation.
	if f.inCondition || f.ownParens() {
		return document.Concat(parts)
	}
	if _, ok := f.parent().(*ast.Assignment); ok {
		return document.NewGroup(parts...)
	}
	return document.NewGroup(parts[0], document.Indent(parts[1:]))
}

// binaryParts returns the operands of the chain rooted at b, which is on
// top of the stack, separated by lines.
func (f *state) binaryParts(b *ast.Binary) []document.Document {
	var parts []document.Document

	lhs, ok := ast.Unparen(b.LHS).(*ast.Binary)
	if ok && parens.ShouldFlatten(b.Operator, lhs.Operator) && !parens.NeedsParens(f.parensContext(f.stack), lhs) {
		f.enter(lhs)
		parts = f.binaryParts(lhs)
		f.leave()
	} else {
		parts = []document.Document{f.expression(b.LHS)}
	}

	op := document.Text(b.Operator.String())

	// `a . (b . c)` loses its parentheses and reads back as `a . b . c`, so
	// it prints as the same flat chain.
	rhs, ok := ast.Unparen(b.RHS).(*ast.Binary)
	if ok && parens.ShouldFlatten(b.Operator, rhs.Operator) && !parens.NeedsParens(f.parensContext(f.stack), rhs) {
		f.enter(rhs)
		rest := f.binaryParts(rhs)
		f.leave()
		parts = append(parts, document.DefaultLine(), document.Concat{op, document.Space(), rest[0]})
		return append(parts, rest[1:]...)
	}

	return append(parts, document.DefaultLine(), document.Concat{op, document.Space(), f.expression(b.RHS)})
}

// pipe prints `$x |> a(...) |> b(...)` with one stage per line when it
// breaks.
func (f *state) pipe(p *ast.Pipe) document.Document {
	f.require(version.PipeOperator, p)
	parts := f.pipeParts(p)
	return document.NewGroup(parts[0], document.Indent(parts[1:]))
}

func (f *state) pipeParts(p *ast.Pipe) []document.Document {
	var parts []document.Document

	input, ok := ast.Unparen(p.Input).(*ast.Pipe)
	if ok && !parens.NeedsParens(f.parensContext(f.stack), input) {
		f.enter(input)
		parts = f.pipeParts(input)
		f.leave()
	} else {
		parts = []document.Document{f.expression(p.Input)}
	}

	return append(parts, document.DefaultLine(), document.Concat{
		document.Text("|> "),
		f.expression(p.Callable),
	})
}
