package printer

import "phpfmt/pkg/document"

// propagateBreaks marks every group that contains a hard line, a literal
// line or a BreakParent, at any depth, as broken. A broken group breaks its
// enclosing group in turn.
func (p *printer) propagateBreaks(root document.Document) {
	type frame struct {
		doc  document.Document
		exit *document.Group
	}

	var open []*document.Group
	markTop := func() {
		if len(open) > 0 {
			p.broken[open[len(open)-1]] = true
		}
	}

	stack := []frame{{doc: root}}
	pushAll := func(docs []document.Document) {
		for i := len(docs) - 1; i >= 0; i-- {
			stack = append(stack, frame{doc: docs[i]})
		}
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit != nil {
			open = open[:len(open)-1]
			if p.mustBreak(f.exit) {
				markTop()
			}
			continue
		}

		switch d := f.doc.(type) {
		case *document.Group:
			open = append(open, d)
			stack = append(stack, frame{exit: d})
			pushAll(d.Contents)
		case document.Concat:
			pushAll(d)
		case document.Indent:
			pushAll(d)
		case document.IndentIfBreak:
			pushAll(d.Contents)
		case document.Fill:
			pushAll(d)
		case document.IfBreak:
			pushAll([]document.Document{d.Break, d.Flat})
		case document.Line:
			if d.Kind == document.LineHard || d.Kind == document.LineLiteral {
				markTop()
			}
		case document.BreakParent:
			markTop()
		}
	}
}
