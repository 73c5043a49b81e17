// Package printer lays out a document.Document as text under a maximum line
// width.
//
// The printer is a single pass over an explicit work stack, so deeply nested
// documents never grow the native call stack. Before printing, a pre-pass
// marks every group that contains a hard line, a literal line or a
// BreakParent, and all groups enclosing it, as broken.
package printer

import (
	"fmt"
	"strings"

	"phpfmt/pkg/document"
	"phpfmt/pkg/errors"
)

// Options configures the layout. There are no defaults: callers pass the
// values from their settings.
type Options struct {
	Width      int  // maximum line width in columns
	IndentSize int  // columns per indentation level
	UseTabs    bool // indent with one tab per level instead of spaces
}

type mode int

const (
	modeBreak mode = iota
	modeFlat
)

func (m mode) String() string {
	if m == modeFlat {
		return "flat"
	}
	return "break"
}

// command is one unit of pending work: a document, the indentation level it
// is printed at, and the mode of its enclosing group.
type command struct {
	indent int
	mode   mode
	doc    document.Document
}

type printer struct {
	opts       Options
	out        []byte
	pos        int // current column
	groupModes map[document.GroupID]mode
	broken     map[*document.Group]bool
}

// Print renders doc as text.
func Print(doc document.Document, opts Options) string {
	p := &printer{
		opts:       opts,
		groupModes: make(map[document.GroupID]mode),
		broken:     make(map[*document.Group]bool),
	}
	if p.opts.IndentSize < 0 {
		p.opts.IndentSize = 0
	}

	p.propagateBreaks(doc)
	p.print(doc)
	p.trim()

	return string(p.out)
}

func (p *printer) mustBreak(g *document.Group) bool {
	return g.ShouldBreak || p.broken[g]
}

func (p *printer) modeOf(id document.GroupID, enclosing mode) mode {
	if id == 0 {
		return enclosing
	}
	if m, ok := p.groupModes[id]; ok {
		return m
	}
	return modeFlat
}

func (p *printer) indentation(level int) (string, int) {
	if p.opts.UseTabs {
		return strings.Repeat("\t", level), level * p.opts.IndentSize
	}
	width := level * p.opts.IndentSize
	return strings.Repeat(" ", width), width
}

// trim drops trailing spaces and tabs from the output.
func (p *printer) trim() {
	n := len(p.out)
	for n > 0 && (p.out[n-1] == ' ' || p.out[n-1] == '\t') {
		n--
	}
	p.out = p.out[:n]
}

func (p *printer) newline(indent int, literal bool) {
	if literal {
		p.out = append(p.out, '\n')
		p.pos = 0
		return
	}
	p.trim()
	ind, width := p.indentation(indent)
	p.out = append(p.out, '\n')
	p.out = append(p.out, ind...)
	p.pos = width
}

func pushReversed(cmds []command, indent int, m mode, docs []document.Document) []command {
	for i := len(docs) - 1; i >= 0; i-- {
		cmds = append(cmds, command{indent: indent, mode: m, doc: docs[i]})
	}
	return cmds
}

func (p *printer) print(root document.Document) {
	cmds := []command{{indent: 0, mode: modeBreak, doc: root}}
	shouldRemeasure := false

	for len(cmds) > 0 {
		c := cmds[len(cmds)-1]
		cmds = cmds[:len(cmds)-1]

		switch d := c.doc.(type) {
		case nil:
			// nothing to print
		case document.Text:
			s := string(d)
			if strings.IndexByte(s, '\n') >= 0 {
				panic(&errors.InvariantError{Msg: fmt.Sprintf("text leaf contains a newline: %q", s)})
			}
			p.out = append(p.out, s...)
			p.pos += Width(s)
		case document.Concat:
			cmds = pushReversed(cmds, c.indent, c.mode, d)
		case document.Indent:
			cmds = pushReversed(cmds, c.indent+1, c.mode, d)
		case document.IndentIfBreak:
			indent := c.indent
			if p.modeOf(d.GroupID, c.mode) == modeBreak {
				indent++
			}
			cmds = pushReversed(cmds, indent, c.mode, d.Contents)
		case *document.Group:
			m := modeBreak
			switch {
			case p.mustBreak(d):
				m = modeBreak
			case c.mode == modeFlat && !shouldRemeasure:
				m = modeFlat
			default:
				shouldRemeasure = false
				next := command{indent: c.indent, mode: modeFlat, doc: document.Concat(d.Contents)}
				if p.fits(next, cmds, p.opts.Width-p.pos, false) {
					m = modeFlat
				}
			}
			if d.ID != 0 {
				p.groupModes[d.ID] = m
			}
			cmds = pushReversed(cmds, c.indent, m, d.Contents)
		case document.Fill:
			cmds = p.fill(c, d, cmds)
		case document.IfBreak:
			if p.modeOf(d.GroupID, c.mode) == modeBreak {
				cmds = append(cmds, command{indent: c.indent, mode: c.mode, doc: d.Break})
			} else {
				cmds = append(cmds, command{indent: c.indent, mode: c.mode, doc: d.Flat})
			}
		case document.Line:
			if c.mode == modeFlat {
				switch d.Kind {
				case document.LineDefault:
					p.out = append(p.out, ' ')
					p.pos++
					continue
				case document.LineSoft:
					continue
				default:
					// A hard line in flat content still breaks; later flat
					// groups have to be measured again.
					shouldRemeasure = true
				}
			}
			p.newline(c.indent, d.Kind == document.LineLiteral)
		case document.BreakParent:
			// Only affects break propagation.
		default:
			panic(&errors.InvariantError{Msg: fmt.Sprintf("unknown document %T", d)})
		}
	}
}

// fill lays out alternating content/separator pairs, breaking only the
// separators whose following content does not fit on the line.
func (p *printer) fill(c command, parts document.Fill, cmds []command) []command {
	if len(parts) == 0 {
		return cmds
	}

	rem := p.opts.Width - p.pos
	content := parts[0]
	contentFlat := command{indent: c.indent, mode: modeFlat, doc: content}
	contentBreak := command{indent: c.indent, mode: modeBreak, doc: content}
	contentFits := p.fits(contentFlat, nil, rem, true)

	if len(parts) == 1 {
		if contentFits {
			return append(cmds, contentFlat)
		}
		return append(cmds, contentBreak)
	}

	separator := parts[1]
	separatorFlat := command{indent: c.indent, mode: modeFlat, doc: separator}
	separatorBreak := command{indent: c.indent, mode: modeBreak, doc: separator}

	if len(parts) == 2 {
		if contentFits {
			return append(cmds, separatorFlat, contentFlat)
		}
		return append(cmds, separatorBreak, contentBreak)
	}

	remaining := command{indent: c.indent, mode: c.mode, doc: parts[2:]}
	pair := command{indent: c.indent, mode: modeFlat, doc: document.Concat{content, separator, parts[2]}}

	switch {
	case p.fits(pair, nil, rem, true):
		return append(cmds, remaining, separatorFlat, contentFlat)
	case contentFits:
		return append(cmds, remaining, separatorBreak, contentFlat)
	default:
		return append(cmds, remaining, separatorBreak, contentBreak)
	}
}

// fitCommand is a command being measured. own marks content that belongs to
// the document under test rather than to the rest of the line.
type fitCommand struct {
	mode mode
	doc  document.Document
	own  bool
}

// fits reports whether next, followed by the rest of the current line, can
// be printed flat within width columns. Measuring stops successfully at the
// first newline outside next; a hard line or BreakParent inside next is a
// failure.
func (p *printer) fits(next command, rest []command, width int, mustBeFlat bool) bool {
	restIdx := len(rest)
	cmds := []fitCommand{{mode: next.mode, doc: next.doc, own: true}}

	for width >= 0 {
		if len(cmds) == 0 {
			if restIdx == 0 {
				return true
			}
			restIdx--
			r := rest[restIdx]
			cmds = append(cmds, fitCommand{mode: r.mode, doc: r.doc})
			continue
		}

		c := cmds[len(cmds)-1]
		cmds = cmds[:len(cmds)-1]

		push := func(m mode, docs []document.Document) {
			for i := len(docs) - 1; i >= 0; i-- {
				cmds = append(cmds, fitCommand{mode: m, doc: docs[i], own: c.own})
			}
		}

		switch d := c.doc.(type) {
		case nil:
		case document.Text:
			width -= Width(string(d))
		case document.Concat:
			push(c.mode, d)
		case document.Indent:
			push(c.mode, d)
		case document.IndentIfBreak:
			push(c.mode, d.Contents)
		case document.Fill:
			push(c.mode, d)
		case *document.Group:
			if mustBeFlat && p.mustBreak(d) {
				return false
			}
			m := c.mode
			if p.mustBreak(d) {
				m = modeBreak
			}
			push(m, d.Contents)
		case document.IfBreak:
			if p.modeOf(d.GroupID, c.mode) == modeBreak {
				push(c.mode, []document.Document{d.Break})
			} else {
				push(c.mode, []document.Document{d.Flat})
			}
		case document.Line:
			if d.Kind == document.LineHard || d.Kind == document.LineLiteral {
				return !c.own
			}
			if c.mode == modeBreak {
				return true
			}
			if d.Kind == document.LineDefault {
				width--
			}
		case document.BreakParent:
			if c.own {
				return false
			}
		}
	}

	return false
}
