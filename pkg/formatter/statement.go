package formatter

import (
	"strings"

	"phpfmt/pkg/ast"
	"phpfmt/pkg/document"
	"phpfmt/pkg/settings"
)

func (f *state) program(p *ast.Program) document.Document {
	if p == nil {
		return nil
	}
	f.enter(p)
	defer f.leave()

	parts := document.Concat{f.statements(p.Statements)}

	// Comments no node claimed end up after the last statement.
	if f.file != nil {
		rest := f.comments.PrintDanglingComments(ast.Span{Start: 0, End: len(f.file.Content)}, false)
		if rest != nil {
			if len(p.Statements) > 0 {
				parts = append(parts, document.HardLine())
			}
			parts = append(parts, rest)
		}
	}
	return parts
}

// statements joins a statement sequence with line breaks, keeping single
// blank lines from the source.
func (f *state) statements(stmts []ast.Statement) document.Document {
	parts := make(document.Concat, 0, len(stmts)*3)
	for i, s := range stmts {
		if i > 0 {
			parts = append(parts, document.HardLine())
			if f.isNextLineEmpty(stmts[i-1]) {
				parts = append(parts, document.HardLine())
			}
		}
		parts = append(parts, f.statement(s))
	}
	return parts
}

func (f *state) statement(s ast.Statement) document.Document {
	return f.commented(s, func() document.Document {
		f.enter(s)
		defer f.leave()
		return f.lowerStatement(s)
	})
}

// lowerStatement lowers the statement on top of the stack.
func (f *state) lowerStatement(s ast.Statement) document.Document {
	switch x := s.(type) {
	case *ast.OpeningTag:
		return document.Text("<?php")
	case *ast.ClosingTag:
		return document.Text("?>")
	case *ast.InlineHTML:
		return document.SplitLines(x.Value)
	case *ast.Declare:
		return f.declare(x)
	case *ast.Namespace:
		return document.Text("namespace " + x.Name.Name + ";")
	case *ast.Use:
		return f.use(x)
	case *ast.ExpressionStatement:
		return document.Concat{f.expression(x.Expression), document.Text(";")}
	case *ast.Echo:
		values := make([]document.Document, 0, len(x.Values))
		for _, v := range x.Values {
			values = append(values, f.expression(v))
		}
		return document.NewGroup(
			document.Text("echo "),
			document.Indent{document.Concat(document.Join(values, document.SeparatorCommaLine))},
			document.Text(";"),
		)
	case *ast.Return:
		if x.Value == nil {
			return document.Text("return;")
		}
		return document.Concat{document.Text("return "), f.expression(x.Value), document.Text(";")}
	case *ast.Block:
		return f.block(x, nil)
	case *ast.Noop:
		return document.Text(";")
	case *ast.ColonBlock:
		return f.colonBlock(x)
	case *ast.If:
		return f.ifStatement(x)
	case *ast.While:
		if isColonBlock(x.Body) {
			return document.Concat{
				document.Text("while"),
				f.condition(x.Condition, true),
				f.statement(x.Body),
				document.Text("endwhile;"),
			}
		}
		return document.NewGroup(document.Text("while"), f.condition(x.Condition, true), f.clause(x.Body, false))
	case *ast.DoWhile:
		return document.NewGroup(
			document.Text("do"),
			f.clause(x.Body, false),
			document.Text("while"),
			f.condition(x.Condition, true),
			document.Text(";"),
		)
	case *ast.For:
		return f.forStatement(x)
	case *ast.Foreach:
		return f.foreach(x)
	case *ast.Break:
		return f.jump("break", x.Level)
	case *ast.Continue:
		return f.jump("continue", x.Level)
	case *ast.Try:
		return f.try(x)
	case *ast.Function:
		return f.function(x)
	case *ast.Class:
		return f.class(x)
	}
	return f.unknown(s)
}

// body lowers a function or closure body. empty replaces `{}` for a body
// with no statements and no comments.
func (f *state) body(b *ast.Block, empty document.Document) document.Document {
	if b == nil {
		return document.Text("{}")
	}
	f.enter(b)
	defer f.leave()
	return f.block(b, empty)
}

// block prints the block on top of the stack.
func (f *state) block(b *ast.Block, empty document.Document) document.Document {
	saved := f.inCondition
	f.inCondition = false
	defer func() { f.inCondition = saved }()

	stmts := f.statements(b.Statements)
	dangling := f.comments.PrintDanglingComments(b.Span(), true)

	if len(b.Statements) == 0 {
		switch {
		case dangling != nil:
			return document.Concat{document.Text("{"), dangling, document.HardLine(), document.Text("}")}
		case empty != nil:
			return empty
		}
		return document.Text("{}")
	}

	parts := document.Concat{document.Text("{"), document.Indent{document.HardLine(), stmts}}
	if dangling != nil {
		parts = append(parts, dangling)
	}
	return append(parts, document.HardLine(), document.Text("}"))
}

func isColonBlock(s ast.Statement) bool {
	_, ok := s.(*ast.ColonBlock)
	return ok
}

// colonBlock prints `:` and the statements of an alternative-syntax body,
// ending on the line where the closing keyword goes. A body that starts
// with `?>` stays on the header line, and one that ends with `<?php` keeps
// the keyword after it.
func (f *state) colonBlock(b *ast.ColonBlock) document.Document {
	saved := f.inCondition
	f.inCondition = false
	defer func() { f.inCondition = saved }()

	parts := document.Concat{document.Text(":")}
	if len(b.Statements) > 0 {
		stmts := f.statements(b.Statements)
		if _, ok := b.Statements[0].(*ast.ClosingTag); ok {
			parts = append(parts, document.Space(), stmts)
		} else {
			parts = append(parts, document.Indent{document.HardLine(), stmts})
		}
	}

	if dangling := f.comments.PrintDanglingComments(b.Span(), true); dangling != nil {
		parts = append(parts, dangling, document.HardLine())
	} else if _, ok := lastStatement(b.Statements).(*ast.OpeningTag); ok {
		parts = append(parts, document.Space())
	} else {
		parts = append(parts, document.HardLine())
	}
	return document.NewGroup(parts...).WithBreak(true)
}

func lastStatement(stmts []ast.Statement) ast.Statement {
	if len(stmts) == 0 {
		return nil
	}
	return stmts[len(stmts)-1]
}

// braceSeparator is what goes between a header and its opening brace.
func braceSeparator(style settings.BraceStyle) document.Document {
	if style == settings.NextLine {
		return document.HardLine()
	}
	return document.Space()
}

func (f *state) declare(d *ast.Declare) document.Document {
	items := make([]document.Document, 0, len(d.Items))
	for _, item := range d.Items {
		f.enter(item)
		items = append(items, document.Concat{document.Text(item.Name.Name + "="), f.expression(item.Value)})
		f.leave()
	}
	return document.Concat{
		document.Text("declare("),
		document.Concat(document.Join(items, document.SeparatorCommaSpace)),
		document.Text(");"),
	}
}

func (f *state) use(u *ast.Use) document.Document {
	prefix := "use "
	switch u.Kind {
	case ast.UseFunction:
		prefix += "function "
	case ast.UseConst:
		prefix += "const "
	}

	items := make([]document.Document, 0, len(u.Items))
	for _, item := range u.Items {
		text := item.Name.Name
		if item.Alias != nil {
			text += " as " + item.Alias.Name
		}
		items = append(items, document.Text(text))
	}
	return document.NewGroup(
		document.Text(prefix),
		document.Indent{document.Concat(document.Join(items, document.SeparatorCommaLine))},
		document.Text(";"),
	)
}

func (f *state) ifStatement(s *ast.If) document.Document {
	if isColonBlock(s.Body) {
		return f.colonIf(s)
	}

	parts := []document.Document{
		document.Text("if"),
		f.condition(s.Condition, true),
		f.clause(s.Body, false),
	}

	for _, elseIf := range s.ElseIfs {
		f.enter(elseIf)
		parts = append(parts,
			document.Text("elseif"),
			f.condition(elseIf.Condition, true),
			f.clause(elseIf.Body, false),
		)
		f.leave()
	}

	if s.Else != nil {
		f.enter(s.Else)
		_, elseIf := s.Else.Body.(*ast.If)
		parts = append(parts, document.Text("else"), f.clause(s.Else.Body, elseIf))
		f.leave()
	}
	return document.NewGroup(parts...)
}

// colonIf prints `if (...): ... elseif (...): ... else: ... endif;`.
func (f *state) colonIf(s *ast.If) document.Document {
	parts := document.Concat{document.Text("if"), f.condition(s.Condition, true), f.statement(s.Body)}

	for _, elseIf := range s.ElseIfs {
		f.enter(elseIf)
		parts = append(parts, document.Text("elseif"), f.condition(elseIf.Condition, true), f.statement(elseIf.Body))
		f.leave()
	}

	if s.Else != nil {
		f.enter(s.Else)
		parts = append(parts, document.Text("else"), f.statement(s.Else.Body))
		f.leave()
	}
	return append(parts, document.Text("endif;"))
}

func (f *state) forStatement(s *ast.For) document.Document {
	sections := [][]ast.Expression{s.Initializations, s.Conditions, s.Increments}

	header := make(document.Concat, 0, 8)
	for i, section := range sections {
		if i > 0 {
			header = append(header, document.Text(";"))
			if len(section) > 0 {
				header = append(header, document.DefaultLine())
			}
		}
		docs := make([]document.Document, 0, len(section))
		for _, e := range section {
			docs = append(docs, f.expression(e))
		}
		header = append(header, document.Concat(document.Join(docs, document.SeparatorCommaSpace)))
	}

	return f.loop("for", header, s.Body, "endfor;")
}

func (f *state) foreach(s *ast.Foreach) document.Document {
	header := document.Concat{f.expression(s.Expression), document.Text(" as ")}
	if s.Key != nil {
		header = append(header, f.expression(s.Key), document.Text(" => "))
	}
	header = append(header, f.expression(s.Value))

	return f.loop("foreach", header, s.Body, "endforeach;")
}

// loop prints a for or foreach header and its body, braced or in the
// alternative syntax closed by end.
func (f *state) loop(keyword string, header document.Document, body ast.Statement, end string) document.Document {
	parts := document.Concat{
		document.Text(keyword),
		document.NewGroup(
			document.Text(" ("),
			document.Indent{document.SoftLine(), header},
			document.SoftLine(),
			document.Text(")"),
		),
	}
	if isColonBlock(body) {
		return append(parts, f.statement(body), document.Text(end))
	}
	return append(parts, f.clause(body, false))
}

func (f *state) jump(keyword string, level ast.Expression) document.Document {
	if level == nil {
		return document.Text(keyword + ";")
	}
	return document.Concat{document.Text(keyword + " "), f.expression(level), document.Text(";")}
}

func (f *state) try(s *ast.Try) document.Document {
	brace := braceSeparator(f.settings.ControlBraceStyle)
	parts := document.Concat{document.Text("try"), brace, f.body(s.Block, nil)}

	for _, c := range s.Catches {
		f.enter(c)
		names := make([]string, 0, len(c.Types))
		for _, t := range c.Types {
			names = append(names, t.Name)
		}
		header := " catch (" + strings.Join(names, " | ")
		if c.Variable != nil {
			header += " " + c.Variable.Name
		}
		parts = append(parts, document.Text(header+")"), brace, f.body(c.Block, nil))
		f.leave()
	}

	if s.Finally != nil {
		parts = append(parts, document.Text(" finally"), brace, f.body(s.Finally, nil))
	}
	return parts
}
