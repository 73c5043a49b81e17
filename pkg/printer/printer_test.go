package printer

import (
	"strings"
	"testing"

	. "phpfmt/pkg/document"
	"phpfmt/pkg/errors"
)

var opts = Options{Width: 80, IndentSize: 4}

func withWidth(w int) Options {
	o := opts
	o.Width = w
	return o
}

func callDoc() Document {
	return NewGroup(
		Text("foo("),
		Indent{SoftLine(), Text("a"), Text(","), DefaultLine(), Text("b")},
		SoftLine(),
		Text(")"),
	)
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		opts Options
		want string
	}{
		{
			name: "group fits flat",
			doc:  callDoc(),
			opts: opts,
			want: "foo(a, b)",
		},
		{
			name: "group breaks when too wide",
			doc:  callDoc(),
			opts: withWidth(5),
			want: "foo(\n    a,\n    b\n)",
		},
		{
			name: "tabs",
			doc:  callDoc(),
			opts: Options{Width: 5, IndentSize: 4, UseTabs: true},
			want: "foo(\n\ta,\n\tb\n)",
		},
		{
			name: "forced break",
			doc:  NewGroup(Text("x"), DefaultLine(), Text("y")).WithBreak(true),
			opts: opts,
			want: "x\ny",
		},
		{
			name: "break parent",
			doc:  NewGroup(Text("x"), DefaultLine(), Text("y"), BreakParent{}),
			opts: opts,
			want: "x\ny",
		},
		{
			name: "rest of line counts against the group",
			doc:  Concat{NewGroup(Text("a"), DefaultLine(), Text("b")), Text("cccccc")},
			opts: withWidth(5),
			want: "a\nbcccccc",
		},
		{
			name: "measurement stops at the next newline",
			doc:  Concat{NewGroup(Text("a"), DefaultLine(), Text("b")), HardLine(), Text("cccccc")},
			opts: withWidth(5),
			want: "a b\ncccccc",
		},
		{
			name: "literal line ignores indentation",
			doc:  Indent{Text("a"), HardLine(), Text("x"), LiteralLine(), Text("y")},
			opts: opts,
			want: "a\n    x\ny",
		},
		{
			name: "trailing whitespace is trimmed",
			doc:  Concat{Text("a "), HardLine(), Indent{HardLine(), HardLine(), Text("x")}, Text("  ")},
			opts: opts,
			want: "a\n\n\n    x",
		},
		{
			name: "if break flat",
			doc:  NewGroup(Text("["), Indent{SoftLine(), Text("a")}, IfBreak{Break: Text(",")}, SoftLine(), Text("]")),
			opts: opts,
			want: "[a]",
		},
		{
			name: "if break broken",
			doc:  NewGroup(Text("["), Indent{SoftLine(), Text("a")}, IfBreak{Break: Text(",")}, SoftLine(), Text("]")),
			opts: withWidth(2),
			want: "[\n    a,\n]",
		},
		{
			name: "nil documents are skipped",
			doc:  Concat{nil, Text("a"), nil},
			opts: opts,
			want: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Print(tt.doc, tt.opts); got != tt.want {
				t.Errorf("Print() mismatch\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestHardLinePropagatesThroughNestedGroups(t *testing.T) {
	inner := NewGroup(Text("c"), DefaultLine(), Text("d"), HardLine(), Text("e"))
	middle := NewGroup(Text("b"), DefaultLine(), inner)
	outer := NewGroup(Text("a"), DefaultLine(), middle)

	got := Print(outer, opts)
	if want := "a\nb\nc\nd\ne"; got != want {
		t.Errorf("all three groups should break\n got: %q\nwant: %q", got, want)
	}
}

func TestIndentIfBreak(t *testing.T) {
	var ids IDGenerator
	build := func() Document {
		id := ids.Next()
		return NewGroup(
			Text("if ("),
			NewIndentIfBreak(id, SoftLine(), Text("cond")),
			SoftLine(),
			Text(")"),
		).WithID(id)
	}

	if got := Print(build(), opts); got != "if (cond)" {
		t.Errorf("flat: got %q", got)
	}
	if got := Print(build(), withWidth(5)); got != "if (\n    cond\n)" {
		t.Errorf("broken: got %q", got)
	}
}

func TestIndentIfBreakReferencesOtherGroup(t *testing.T) {
	var ids IDGenerator
	id := ids.Next()
	head := NewGroup(Text("$x ="), DefaultLine()).WithID(id)
	doc := Concat{
		NewGroup(Text("["), head, Text("]")),
		NewIndentIfBreak(id, HardLine(), Text("tail")),
	}

	// The head group fits, so the tail is not indented.
	if got := Print(doc, opts); got != "[$x = ]\ntail" {
		t.Errorf("got %q", got)
	}
}

func TestFillWrapsOnlyOverflowingBoundaries(t *testing.T) {
	doc := Fill{
		Text("aaa"), DefaultLine(),
		Text("bbb"), DefaultLine(),
		Text("ccc"), DefaultLine(),
		Text("ddd"),
	}

	got := Print(doc, withWidth(8))
	if want := "aaa bbb\nccc ddd"; got != want {
		t.Errorf("Fill mismatch\n got: %q\nwant: %q", got, want)
	}

	if got := Print(doc, opts); got != "aaa bbb ccc ddd" {
		t.Errorf("Fill should stay on one line when it fits, got %q", got)
	}
}

func TestFillInsideIndentedGroup(t *testing.T) {
	numbers := Fill{
		Text("1,"), DefaultLine(),
		Text("22,"), DefaultLine(),
		Text("333,"), DefaultLine(),
		Text("4444"),
	}
	doc := NewGroup(Text("["), Indent{SoftLine(), numbers}, SoftLine(), Text("]"))

	got := Print(doc, withWidth(12))
	want := "[\n    1, 22,\n    333,\n    4444\n]"
	if got != want {
		t.Errorf("Fill mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestTextWithNewlinePanics(t *testing.T) {
	defer func() {
		r := recover()
		if _, ok := r.(*errors.InvariantError); !ok {
			t.Fatalf("expected *errors.InvariantError panic, got %v", r)
		}
	}()
	Print(Text("a\nb"), opts)
}

func TestDeepDocumentDoesNotRecurse(t *testing.T) {
	const depth = 50000
	var doc Document = Text("x")
	for i := 0; i < depth; i++ {
		doc = Concat{NewGroup(doc)}
	}

	if got := Print(doc, opts); got != "x" {
		t.Errorf("got %q", got)
	}
}

func TestWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"abc", 3},
		{"", 0},
		{"日本", 2},
		{"e\u0301", 1},
		{"$naïve", 6},
	}
	for _, tt := range tests {
		if got := Width(tt.in); got != tt.want {
			t.Errorf("Width(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNoLineExceedsWidth(t *testing.T) {
	var parts []Document
	for i := 0; i < 40; i++ {
		if i > 0 {
			parts = append(parts, Text(","), DefaultLine())
		}
		parts = append(parts, Text("$argument"))
	}
	doc := NewGroup(Text("call("), Indent(append([]Document{SoftLine()}, parts...)), SoftLine(), Text(")"))

	for _, line := range strings.Split(Print(doc, withWidth(20)), "\n") {
		if Width(line) > 20 {
			t.Errorf("line %q exceeds width", line)
		}
	}
}
