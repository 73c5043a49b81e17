package formatter

import (
	"strings"

	"phpfmt/pkg/ast"
	"phpfmt/pkg/document"
	"phpfmt/pkg/settings"
	"phpfmt/pkg/version"
)

func (f *state) function(fn *ast.Function) document.Document {
	params, id := f.parameters(fn.Parameters)

	parts := document.Concat{f.attributes(fn.Attributes, false), document.Text("function ")}
	if fn.ByRef {
		parts = append(parts, document.Text("&"))
	}
	parts = append(parts, document.Text(fn.Name.Name), params, returnType(fn.ReturnType))
	return append(parts, f.functionBody(fn.Body, id)...)
}

// functionBody places the body of a function or method. With next-line
// braces the brace moves up next to `)` when the parameter list broke, and
// an empty body keeps its braces on separate lines otherwise.
func (f *state) functionBody(body *ast.Block, params document.GroupID) []document.Document {
	if f.settings.FunctionBraceStyle == settings.SameLine {
		return []document.Document{document.Space(), f.body(body, nil)}
	}

	empty := document.IfBreak{
		Break:   document.Text("{}"),
		Flat:    document.Concat{document.Text("{"), document.HardLine(), document.Text("}")},
		GroupID: params,
	}
	return []document.Document{
		document.IfBreak{Break: document.Space(), Flat: document.HardLine(), GroupID: params},
		f.body(body, empty),
	}
}

func (f *state) class(c *ast.Class) document.Document {
	parts := document.Concat{
		f.attributes(c.Attributes, false),
		f.modifierPrefix(c.Modifiers),
		document.Text("class " + c.Name.Name),
		f.inheritance(c.Extends, c.Implements),
	}

	var empty document.Document
	if f.settings.ClassLikeBraceStyle == settings.NextLine {
		empty = document.Concat{document.Text("{"), document.HardLine(), document.Text("}")}
	}
	return append(parts, braceSeparator(f.settings.ClassLikeBraceStyle), f.classBody(c, c.Members, empty))
}

// inheritance prints ` extends A implements B, C`.
func (f *state) inheritance(extends *ast.Identifier, implements []*ast.Identifier) document.Document {
	parts := document.Concat{}
	if extends != nil {
		parts = append(parts, document.Text(" extends "+extends.Name))
	}
	if len(implements) > 0 {
		names := make([]document.Document, 0, len(implements))
		for _, i := range implements {
			names = append(names, document.Text(i.Name))
		}
		parts = append(parts, document.Text(" implements"), document.NewGroup(document.Indent{
			document.DefaultLine(),
			document.Concat(document.Join(names, document.SeparatorCommaLine)),
		}))
	}
	return parts
}

// classBody prints the member list of a class. Methods are always set off by
// a blank line; other members keep the blank lines of the source.
func (f *state) classBody(owner ast.Node, members []ast.ClassMember, empty document.Document) document.Document {
	saved := f.inCondition
	f.inCondition = false
	defer func() { f.inCondition = saved }()

	parts := make(document.Concat, 0, len(members)*3)
	for i, m := range members {
		if i > 0 {
			parts = append(parts, document.HardLine())
			if f.isNextLineEmpty(members[i-1]) || isMethod(members[i-1]) || isMethod(m) {
				parts = append(parts, document.HardLine())
			}
		}
		parts = append(parts, f.classMember(m))
	}

	dangling := f.comments.PrintDanglingComments(owner.Span(), true)
	if len(members) == 0 {
		switch {
		case dangling != nil:
			return document.Concat{document.Text("{"), dangling, document.HardLine(), document.Text("}")}
		case empty != nil:
			return empty
		}
		return document.Text("{}")
	}

	body := document.Concat{document.Text("{"), document.Indent{document.HardLine(), parts}}
	if dangling != nil {
		body = append(body, dangling)
	}
	return append(body, document.HardLine(), document.Text("}"))
}

func isMethod(m ast.ClassMember) bool {
	_, ok := m.(*ast.Method)
	return ok
}

func (f *state) classMember(m ast.ClassMember) document.Document {
	return f.commented(m, func() document.Document {
		f.enter(m)
		defer f.leave()

		switch x := m.(type) {
		case *ast.Property:
			return f.property(x)
		case *ast.ClassConstant:
			return f.classConstant(x)
		case *ast.Method:
			return f.method(x)
		case *ast.TraitUse:
			names := make([]string, 0, len(x.Traits))
			for _, t := range x.Traits {
				names = append(names, t.Name)
			}
			return document.Text("use " + strings.Join(names, ", ") + ";")
		}
		return f.unknown(m)
	})
}

func (f *state) property(p *ast.Property) document.Document {
	parts := document.Concat{f.attributes(p.Attributes, false)}
	if prefix := f.modifierPrefix(p.Modifiers); prefix != nil {
		parts = append(parts, prefix)
	} else {
		parts = append(parts, document.Text("var "))
	}
	if p.Type != nil {
		parts = append(parts, document.Text(p.Type.Text+" "))
	}

	items := make([]document.Document, 0, len(p.Items))
	for _, item := range p.Items {
		f.enter(item)
		doc := document.Concat{document.Text(item.Variable.Name)}
		if item.Default != nil {
			doc = append(doc, document.Text(" = "), f.expression(item.Default))
		}
		f.leave()
		items = append(items, doc)
	}
	return append(parts, document.Concat(document.Join(items, document.SeparatorCommaSpace)), document.Text(";"))
}

func (f *state) classConstant(c *ast.ClassConstant) document.Document {
	parts := document.Concat{f.attributes(c.Attributes, false), f.modifierPrefix(c.Modifiers), document.Text("const ")}
	if c.Type != nil {
		parts = append(parts, document.Text(c.Type.Text+" "))
	}

	items := make([]document.Document, 0, len(c.Items))
	for _, item := range c.Items {
		f.enter(item)
		items = append(items, document.Concat{document.Text(item.Name.Name + " = "), f.expression(item.Value)})
		f.leave()
	}
	return append(parts, document.Concat(document.Join(items, document.SeparatorCommaSpace)), document.Text(";"))
}

func (f *state) method(m *ast.Method) document.Document {
	params, id := f.parameters(m.Parameters)

	parts := document.Concat{
		f.attributes(m.Attributes, false),
		f.modifierPrefix(m.Modifiers),
		document.Text("function "),
	}
	if m.ByRef {
		parts = append(parts, document.Text("&"))
	}
	parts = append(parts, document.Text(m.Name.Name), params, returnType(m.ReturnType))

	if m.Body == nil {
		return append(parts, document.Text(";"))
	}
	return append(parts, f.functionBody(m.Body, id)...)
}

// parameters prints a parameter list as a group and returns its id, so the
// brace of the body can react to it. A list with a promoted constructor
// property always breaks.
func (f *state) parameters(list *ast.ParameterList) (document.Document, document.GroupID) {
	id := f.ids.Next()
	if list == nil {
		return document.NewGroup(document.Text("()")).WithID(id), id
	}

	f.enter(list)
	defer f.leave()

	if len(list.Parameters) == 0 {
		if dangling := f.comments.PrintDanglingComments(list.Span(), true); dangling != nil {
			return document.NewGroup(document.Text("("), dangling, document.HardLine(), document.Text(")")).WithID(id), id
		}
		return document.NewGroup(document.Text("()")).WithID(id), id
	}

	promoted := false
	docs := make([]document.Document, 0, len(list.Parameters))
	for _, p := range list.Parameters {
		promoted = promoted || len(p.Modifiers) > 0
		docs = append(docs, f.parameter(p))
	}

	var comma document.Document
	if !list.Parameters[len(list.Parameters)-1].Variadic {
		comma = f.trailingComma(f.supports(version.TrailingCommaInParameterLists))
	}

	return document.NewGroup(
		document.Text("("),
		document.Indent{document.SoftLine(), document.Concat(document.Join(docs, document.SeparatorCommaLine))},
		document.IfBreak{Break: comma},
		document.SoftLine(),
		document.Text(")"),
	).WithBreak(promoted).WithID(id), id
}

func (f *state) parameter(p *ast.Parameter) document.Document {
	return f.commented(p, func() document.Document {
		f.enter(p)
		defer f.leave()

		parts := document.Concat{f.attributes(p.Attributes, true), f.modifierPrefix(p.Modifiers)}
		if p.Type != nil {
			parts = append(parts, document.Text(p.Type.Text+" "))
		}
		if p.ByRef {
			parts = append(parts, document.Text("&"))
		}
		if p.Variadic {
			parts = append(parts, document.Text("..."))
		}
		parts = append(parts, document.Text(p.Variable.Name))
		if p.Default != nil {
			parts = append(parts, document.Text(" = "), f.expression(p.Default))
		}
		return parts
	})
}
