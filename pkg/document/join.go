package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Separator is placed between documents by Join.
type Separator int

const (
	SeparatorSpace Separator = iota
	SeparatorSoftLine
	SeparatorHardLine
	SeparatorLine
	SeparatorCommaLine  // "," followed by a default line
	SeparatorCommaSpace // ", "
)

func (s Separator) documents() []Document {
	switch s {
	case SeparatorSpace:
		return []Document{Space()}
	case SeparatorSoftLine:
		return []Document{SoftLine()}
	case SeparatorHardLine:
		return []Document{HardLine()}
	case SeparatorLine:
		return []Document{DefaultLine()}
	case SeparatorCommaLine:
		return []Document{Text(","), DefaultLine()}
	case SeparatorCommaSpace:
		return []Document{Text(", ")}
	default:
		panic(fmt.Sprintf("document: unknown separator %d", s))
	}
}

// Join interleaves docs with sep. Nil documents are dropped.
func Join(docs []Document, sep Separator) []Document {
	out := make([]Document, 0, len(docs)*2)
	for _, d := range docs {
		if d == nil {
			continue
		}
		if len(out) > 0 {
			out = append(out, sep.documents()...)
		}
		out = append(out, d)
	}
	return out
}

// SplitLines turns possibly multi-line verbatim text into Text nodes joined
// by literal lines, so no Text ever carries a newline.
func SplitLines(s string) Document {
	if !strings.Contains(s, "\n") {
		return Text(s)
	}
	lines := strings.Split(s, "\n")
	parts := make([]Document, 0, len(lines)*2)
	for i, l := range lines {
		if i > 0 {
			parts = append(parts, LiteralLine())
		}
		parts = append(parts, Text(strings.TrimSuffix(l, "\r")))
	}
	return Concat(parts)
}

// Dump renders the structure of a document in a compact s-expression form.
// It is meant for debugging and tests.
func Dump(d Document) string {
	var b strings.Builder
	dump(&b, d)
	return b.String()
}

func dumpList(b *strings.Builder, name string, docs []Document) {
	b.WriteString(name)
	b.WriteByte('(')
	for i, d := range docs {
		if i > 0 {
			b.WriteString(", ")
		}
		dump(b, d)
	}
	b.WriteByte(')')
}

func dump(b *strings.Builder, d Document) {
	switch d := d.(type) {
	case nil:
		b.WriteString("nil")
	case Text:
		b.WriteString(strconv.Quote(string(d)))
	case Concat:
		dumpList(b, "concat", d)
	case Indent:
		dumpList(b, "indent", d)
	case IndentIfBreak:
		dumpList(b, fmt.Sprintf("indentIfBreak#%d", d.GroupID), d.Contents)
	case *Group:
		name := "group"
		if d.ShouldBreak {
			name += "!"
		}
		if d.ID != 0 {
			name += fmt.Sprintf("#%d", d.ID)
		}
		dumpList(b, name, d.Contents)
	case Line:
		b.WriteString(d.Kind.String())
	case BreakParent:
		b.WriteString("breakParent")
	case Fill:
		dumpList(b, "fill", d)
	case IfBreak:
		dumpList(b, fmt.Sprintf("ifBreak#%d", d.GroupID), []Document{d.Break, d.Flat})
	default:
		panic(fmt.Sprintf("document: unknown document %T", d))
	}
}
