// Package comments attaches source comments to syntax nodes by position and
// renders them as documents.
//
// Attachment is purely positional: a comment immediately before a node
// (separated by whitespace only) leads it, a comment after a node on the
// same line trails it, and a comment inside a node's span that neither
// leads nor trails a child dangles in it. Every comment is printed at most
// once; an Index remembers which ones it has handed out, so one Index
// serves exactly one formatting run.
package comments

import (
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"phpfmt/pkg/ast"
	"phpfmt/pkg/document"
	"phpfmt/pkg/source"
)

// Flags selects comment placements in HasComment.
type Flags uint8

const (
	Leading Flags = 1 << iota
	Trailing
	Dangling
)

// Has reports whether every bit of other is set in f.
func (f Flags) Has(other Flags) bool { return f&other == other }

func (f Flags) String() string {
	var names []string
	if f.Has(Leading) {
		names = append(names, "leading")
	}
	if f.Has(Trailing) {
		names = append(names, "trailing")
	}
	if f.Has(Dangling) {
		names = append(names, "dangling")
	}
	return strings.Join(names, "|")
}

// Kind is the lexical form of a comment.
type Kind int

const (
	SingleLine Kind = iota // // ...
	Hash                   // # ...
	Block                  // /* ... */
	DocBlock               // /** ... */
)

func (k Kind) String() string {
	switch k {
	case SingleLine:
		return "single-line"
	case Hash:
		return "hash"
	case Block:
		return "block"
	case DocBlock:
		return "docblock"
	}
	return "unknown"
}

// `/**/` is an empty block comment, and `#[` opens an attribute.
var (
	docBlockPattern = regexp2.MustCompile(`^/\*\*(?!/)`, regexp2.None)
	hashPattern     = regexp2.MustCompile(`^#(?!\[)`, regexp2.None)
	docLinePattern  = regexp2.MustCompile(`^[ \t]*\*(?!/)`, regexp2.None)
)

// Classify returns the kind of a comment from its text.
func Classify(text string) Kind {
	if strings.HasPrefix(text, "//") {
		return SingleLine
	}
	if ok, _ := hashPattern.MatchString(text); ok {
		return Hash
	}
	if ok, _ := docBlockPattern.MatchString(text); ok {
		return DocBlock
	}
	return Block
}

// Comment is one comment token.
type Comment struct {
	Span ast.Span
	Text string
	Kind Kind
}

// IsSingleLine reports comments that run to the end of the line and so force
// a line break after them.
func (c Comment) IsSingleLine() bool {
	return c.Kind == SingleLine || c.Kind == Hash
}

// Index answers placement queries for the comments of one file.
type Index struct {
	file     *source.File
	comments []Comment
	printed  []bool
}

// NewIndex builds an index over the given comment spans of file. Comment
// text and kind are taken from the source.
func NewIndex(file *source.File, spans []ast.Span) *Index {
	list := make([]Comment, 0, len(spans))
	for _, span := range spans {
		text := strings.TrimRight(file.Slice(span.Start, span.End), " \t\r\n")
		list = append(list, Comment{Span: span, Text: text, Kind: Classify(text)})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Span.Start < list[j].Span.Start })

	return &Index{file: file, comments: list, printed: make([]bool, len(list))}
}

// Comments returns every comment in source order.
func (x *Index) Comments() []Comment { return x.comments }

// Remaining counts the comments not printed yet.
func (x *Index) Remaining() int {
	n := 0
	for _, p := range x.printed {
		if !p {
			n++
		}
	}
	return n
}

// leading returns the indices of the unprinted comments directly before
// span, in source order.
func (x *Index) leading(span ast.Span) []int {
	if x == nil || span.IsZero() {
		return nil
	}

	end := span.Start
	var found []int
	for i := len(x.comments) - 1; i >= 0; i-- {
		c := x.comments[i]
		if c.Span.End > end {
			continue
		}
		if x.printed[i] || !x.file.IsWhitespaceRange(c.Span.End, end) {
			break
		}
		found = append(found, i)
		end = c.Span.Start
	}

	for l, r := 0, len(found)-1; l < r; l, r = l+1, r-1 {
		found[l], found[r] = found[r], found[l]
	}
	return found
}

// trailing returns the indices of the unprinted comments after span on the
// same line.
func (x *Index) trailing(span ast.Span) []int {
	if x == nil || span.IsZero() {
		return nil
	}

	start := span.End
	var found []int
	for i, c := range x.comments {
		if c.Span.Start < start {
			continue
		}
		if x.printed[i] || !sameLineGap(x.file.Slice(start, c.Span.Start)) {
			break
		}
		found = append(found, i)
		if c.IsSingleLine() {
			break
		}
		start = c.Span.End
	}
	return found
}

func sameLineGap(gap string) bool {
	return strings.Trim(gap, " \t;,") == ""
}

// dangling returns the indices of unprinted comments inside span.
func (x *Index) dangling(span ast.Span) []int {
	if x == nil {
		return nil
	}

	var found []int
	for i, c := range x.comments {
		if !x.printed[i] && c.Span.Start >= span.Start && c.Span.End <= span.End {
			found = append(found, i)
		}
	}
	return found
}

// HasComment reports whether span has an unprinted comment in any of the
// requested placements.
func (x *Index) HasComment(span ast.Span, flags Flags) bool {
	if flags.Has(Leading) && len(x.leading(span)) > 0 {
		return true
	}
	if flags.Has(Trailing) && len(x.trailing(span)) > 0 {
		return true
	}
	if flags.Has(Dangling) && !span.IsZero() && len(x.dangling(span)) > 0 {
		return true
	}
	return false
}

// PrintLeadingComments renders the comments before span, each followed by a
// line break (or a space for an inline block comment), and marks them
// printed. It returns nil when there are none.
func (x *Index) PrintLeadingComments(span ast.Span) document.Document {
	indices := x.leading(span)
	if len(indices) == 0 {
		return nil
	}

	var parts []document.Document
	for n, i := range indices {
		c := x.comments[i]
		x.printed[i] = true
		parts = append(parts, x.render(c))

		next := span.Start
		if n+1 < len(indices) {
			next = x.comments[indices[n+1]].Span.Start
		}
		switch {
		case !c.IsSingleLine() && !x.file.HasNewlineInRange(c.Span.End, next):
			parts = append(parts, document.Space())
		case x.file.IsNextLineEmpty(c.Span.End):
			parts = append(parts, document.HardLine(), document.HardLine())
		default:
			parts = append(parts, document.HardLine())
		}
	}
	return document.Concat(parts)
}

// PrintTrailingComments renders the same-line comments after span, each
// preceded by a space, and marks them printed. It returns nil when there
// are none.
func (x *Index) PrintTrailingComments(span ast.Span) document.Document {
	indices := x.trailing(span)
	if len(indices) == 0 {
		return nil
	}

	var parts []document.Document
	for _, i := range indices {
		c := x.comments[i]
		x.printed[i] = true
		parts = append(parts, document.Space(), x.render(c))
		if c.IsSingleLine() {
			parts = append(parts, document.BreakParent{})
		}
	}
	return document.Concat(parts)
}

// PrintDanglingComments renders every unprinted comment inside span, one per
// line, and marks them printed. With indented set the comments start on a
// new line one level deeper, ready to sit between a pair of braces; the
// caller adds the closing line break. It returns nil when there are none.
func (x *Index) PrintDanglingComments(span ast.Span, indented bool) document.Document {
	indices := x.dangling(span)
	if len(indices) == 0 {
		return nil
	}

	var parts []document.Document
	forceBreak := false
	for n, i := range indices {
		c := x.comments[i]
		x.printed[i] = true
		if n > 0 {
			parts = append(parts, document.HardLine())
			if x.file.IsNextLineEmpty(x.comments[indices[n-1]].Span.End) {
				parts = append(parts, document.HardLine())
			}
		}
		parts = append(parts, x.render(c))
		forceBreak = forceBreak || c.IsSingleLine()
	}
	if forceBreak {
		parts = append(parts, document.BreakParent{})
	}

	if indented {
		return document.Indent(append([]document.Document{document.HardLine()}, parts...))
	}
	return document.Concat(parts)
}

// render prints a comment. Doc blocks are re-indented so that every line
// starts with " *"; other multi-line block comments are kept verbatim.
func (x *Index) render(c Comment) document.Document {
	if !strings.Contains(c.Text, "\n") {
		return document.Text(c.Text)
	}
	if c.Kind != DocBlock {
		return document.SplitLines(c.Text)
	}

	lines := strings.Split(c.Text, "\n")
	parts := []document.Document{document.Text(strings.TrimRight(lines[0], " \t\r"))}
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, " \t\r")
		if ok, _ := docLinePattern.MatchString(line); ok || strings.HasSuffix(strings.TrimSpace(line), "*/") {
			line = " " + strings.TrimLeft(line, " \t")
		} else if strings.TrimSpace(line) == "" {
			line = " *"
		} else {
			line = " * " + strings.TrimLeft(line, " \t")
		}
		parts = append(parts, document.HardLine(), document.Text(line))
	}
	return document.Concat(parts)
}
