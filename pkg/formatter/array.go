package formatter

import (
	"phpfmt/pkg/ast"
	"phpfmt/pkg/document"
)

// array prints an array or list literal. Numeric-only arrays wrap like
// running text; arrays of arrays, and keyed arrays that were broken in the
// source, always break.
func (f *state) array(node ast.Node, elements []ast.ArrayElement, open, close string) document.Document {
	if len(elements) == 0 {
		if dangling := f.comments.PrintDanglingComments(node.Span(), true); dangling != nil {
			return document.Concat{document.Text(open), dangling, document.HardLine(), document.Text(close)}
		}
		return document.Text(open + close)
	}

	saved := f.inCondition
	f.inCondition = false
	defer func() { f.inCondition = saved }()

	shouldBreak := f.isMatrix(elements) || f.wasBrokenInSource(node, elements)

	docs := make([]document.Document, 0, len(elements))
	for _, el := range elements {
		docs = append(docs, f.arrayElement(el))
	}

	var comma document.Document
	if _, missing := elements[len(elements)-1].(*ast.MissingArrayElement); !missing {
		comma = f.trailingComma(true)
	}

	var content document.Document
	if isNumericArray(elements) {
		fill := make(document.Fill, 0, len(docs)*2)
		for i, d := range docs {
			if i == len(docs)-1 {
				fill = append(fill, d)
				break
			}
			fill = append(fill, document.Concat{d, document.Text(",")}, document.DefaultLine())
		}
		content = fill
	} else {
		content = document.Concat(document.Join(docs, document.SeparatorCommaLine))
	}

	return document.NewGroup(
		document.Text(open),
		document.Indent{document.SoftLine(), content, document.IfBreak{Break: comma}},
		document.SoftLine(),
		document.Text(close),
	).WithBreak(shouldBreak)
}

func (f *state) arrayElement(el ast.ArrayElement) document.Document {
	return f.commented(el, func() document.Document {
		f.enter(el)
		defer f.leave()

		switch x := el.(type) {
		case *ast.KeyValueArrayElement:
			return document.Concat{f.expression(x.Key), document.Text(" => "), f.expression(x.Value)}
		case *ast.ValueArrayElement:
			return f.expression(x.Value)
		case *ast.VariadicArrayElement:
			return document.Concat{document.Text("..."), f.expression(x.Value)}
		case *ast.MissingArrayElement:
			return document.Empty()
		}
		return f.unknown(el)
	})
}

// isNumericArray reports arrays of two or more plain, possibly signed,
// number literals.
func isNumericArray(elements []ast.ArrayElement) bool {
	if len(elements) < 2 {
		return false
	}
	for _, el := range elements {
		v, ok := el.(*ast.ValueArrayElement)
		if !ok || !isNumber(v.Value) {
			return false
		}
	}
	return true
}

func isNumber(e ast.Expression) bool {
	switch x := ast.Unparen(e).(type) {
	case *ast.Literal:
		return x.IsNumeric()
	case *ast.UnaryPrefix:
		if x.Operator != ast.OpNegation && x.Operator != ast.OpPlus {
			return false
		}
		lit, ok := ast.Unparen(x.Operand).(*ast.Literal)
		return ok && lit.IsNumeric()
	}
	return false
}

// isMatrix reports arrays whose elements are all arrays of more than one
// element.
func (f *state) isMatrix(elements []ast.ArrayElement) bool {
	if len(elements) < 2 {
		return false
	}
	for _, el := range elements {
		var value ast.Expression
		switch x := el.(type) {
		case *ast.ValueArrayElement:
			value = x.Value
		case *ast.KeyValueArrayElement:
			value = x.Value
		default:
			return false
		}
		inner, ok := ast.Unparen(value).(*ast.Array)
		if !ok || len(inner.Elements) < 2 {
			return false
		}
	}
	return true
}

// wasBrokenInSource keeps a keyed array broken when its first element
// started on a new line in the source.
func (f *state) wasBrokenInSource(node ast.Node, elements []ast.ArrayElement) bool {
	if _, ok := elements[0].(*ast.KeyValueArrayElement); !ok {
		return false
	}
	span, first := node.Span(), elements[0].Span()
	if span.IsZero() || first.IsZero() {
		return false
	}
	return f.file.HasNewlineInRange(span.Start, first.Start)
}
