// Package formatter lowers a PHP syntax tree to a document.Document and
// prints it.
//
// Lowering walks the tree with an explicit ancestor stack. Every expression
// boundary consults the parens resolver, and statement, call and argument
// boundaries consult the layout heuristics in misc.go. A Formatter is
// immutable; each Format call builds a private state, so one Formatter may
// serve many goroutines.
package formatter

import (
	"fmt"
	"strings"

	"phpfmt/pkg/ast"
	"phpfmt/pkg/comments"
	"phpfmt/pkg/document"
	"phpfmt/pkg/errors"
	"phpfmt/pkg/logger"
	"phpfmt/pkg/parens"
	"phpfmt/pkg/printer"
	"phpfmt/pkg/settings"
	"phpfmt/pkg/source"
	"phpfmt/pkg/version"
)

// CommentIndex is the comment-attachment capability lowering relies on.
// *comments.Index implements it.
type CommentIndex interface {
	HasComment(span ast.Span, flags comments.Flags) bool
	PrintLeadingComments(span ast.Span) document.Document
	PrintTrailingComments(span ast.Span) document.Document
	// PrintDanglingComments returns nil when span holds no unprinted
	// comment.
	PrintDanglingComments(span ast.Span, indented bool) document.Document
}

type noComments struct{}

func (noComments) HasComment(ast.Span, comments.Flags) bool               { return false }
func (noComments) PrintLeadingComments(ast.Span) document.Document        { return nil }
func (noComments) PrintTrailingComments(ast.Span) document.Document       { return nil }
func (noComments) PrintDanglingComments(ast.Span, bool) document.Document { return nil }

// Formatter turns syntax trees into canonically styled source text.
type Formatter struct {
	settings settings.Settings
	features version.FeatureGate
}

// New returns a Formatter. A nil feature gate means the latest PHP version.
func New(s settings.Settings, features version.FeatureGate) *Formatter {
	if features == nil {
		features = version.Latest
	}
	logger.LogSettings(
		"print_width", s.PrintWidth,
		"indent_size", s.IndentSize,
		"use_tabs", s.UseTabs,
		"control_brace_style", s.ControlBraceStyle.String(),
	)
	return &Formatter{settings: s, features: features}
}

// Format lowers program and prints it. file supplies the source text used
// for blank-line and comment placement; comments may be nil.
func (fm *Formatter) Format(file *source.File, program *ast.Program, comments CommentIndex) string {
	out, _ := fm.Check(file, program, comments)
	return out
}

// Check formats program like Format and also reports, once per feature,
// syntax that the target PHP version does not support. The output is
// produced either way.
func (fm *Formatter) Check(file *source.File, program *ast.Program, comments CommentIndex) (string, []errors.FormatterError) {
	f := fm.lower(file, comments)
	doc := f.program(program)
	logger.LogLowering(file.DisplayPath(), f.nodes)

	out := printer.Print(doc, printer.Options{
		Width:      fm.settings.PrintWidth,
		IndentSize: fm.settings.IndentSize,
		UseTabs:    fm.settings.UseTabs,
	})
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	logger.LogPrinting(file.DisplayPath(), len(out), strings.Count(out, "\n"))
	return out, f.unsupported
}

// Document returns the lowered document without printing it.
func (fm *Formatter) Document(file *source.File, program *ast.Program, comments CommentIndex) document.Document {
	f := fm.lower(file, comments)
	doc := f.program(program)
	logger.LogLowering(file.DisplayPath(), f.nodes)
	return doc
}

func (fm *Formatter) lower(file *source.File, comments CommentIndex) *state {
	if comments == nil {
		comments = noComments{}
	}
	return &state{
		settings: fm.settings,
		features: fm.features,
		file:     file,
		comments: comments,
	}
}

// state is the per-run formatter state: the ancestor stack and the
// transient flags of the node being lowered.
type state struct {
	settings settings.Settings
	features version.FeatureGate
	file     *source.File
	comments CommentIndex

	stack       []ast.Node
	inCondition bool
	ids         document.IDGenerator
	nodes       int

	unsupported []errors.FormatterError
	reported    map[version.Feature]bool
}

func (f *state) enter(n ast.Node) {
	f.stack = append(f.stack, n)
	f.nodes++
}

func (f *state) leave() {
	f.stack = f.stack[:len(f.stack)-1]
}

// nthParent returns the nth node from the top of the stack: 0 is the node
// being lowered, 1 its parent.
func (f *state) nthParent(n int) ast.Node {
	i := len(f.stack) - 1 - n
	if i < 0 {
		return nil
	}
	return f.stack[i]
}

func (f *state) current() ast.Node { return f.nthParent(0) }
func (f *state) parent() ast.Node  { return f.nthParent(1) }

func (f *state) parensContext(ancestors []ast.Node) parens.Context {
	return parens.Context{Ancestors: ancestors, Settings: f.settings, Features: f.features}
}

// ownParens reports whether the node on top of the stack will be wrapped in
// parentheses.
func (f *state) ownParens() bool {
	if len(f.stack) == 0 {
		return false
	}
	return parens.NeedsParens(f.parensContext(f.stack[:len(f.stack)-1]), f.current())
}

func (f *state) supports(feature version.Feature) bool {
	return f.features.IsSupported(feature)
}

// require records a use of feature by n when the target version lacks it.
func (f *state) require(feature version.Feature, n ast.Node) {
	if f.supports(feature) || f.reported[feature] {
		return
	}
	if f.reported == nil {
		f.reported = make(map[version.Feature]bool)
	}
	f.reported[feature] = true

	err := &errors.FeatureError{
		Feature: feature.String(),
		Msg:     fmt.Sprintf("%s requires PHP %s", feature, feature.Since()),
	}
	if span := n.Span(); f.file != nil && !span.IsZero() {
		err.Position = errors.PositionAt(f.file, span.Start, span.End)
	}
	f.unsupported = append(f.unsupported, err)
}

func (f *state) hasComment(span ast.Span, flags comments.Flags) bool {
	return f.comments.HasComment(span, flags)
}

// isNextLineEmpty reports a blank line after n in the source. Synthesized
// nodes have no position and never do.
func (f *state) isNextLineEmpty(n ast.Node) bool {
	span := n.Span()
	return !span.IsZero() && f.file.IsNextLineEmpty(span.End)
}

// spansLines reports whether n covers more than one source line.
func (f *state) spansLines(n ast.Node) bool {
	span := n.Span()
	return !span.IsZero() && f.file.HasNewlineInRange(span.Start, span.End)
}

// commented lowers n between its leading and trailing comments. Leading
// comments are claimed before the children are lowered, so a child starting
// at the same offset does not print them.
func (f *state) commented(n ast.Node, lower func() document.Document) document.Document {
	span := n.Span()
	leading := f.comments.PrintLeadingComments(span)
	doc := lower()
	trailing := f.comments.PrintTrailingComments(span)
	if leading == nil && trailing == nil {
		return doc
	}
	return document.Concat{leading, doc, trailing}
}

// expression lowers e, dropping source parentheses and adding back the ones
// the resolver asks for.
func (f *state) expression(e ast.Expression) document.Document {
	e = ast.Unparen(e)
	if e == nil {
		return nil
	}

	needsParens := parens.NeedsParens(f.parensContext(f.stack), e)
	f.enter(e)
	doc := f.lowerExpression(e)
	f.leave()

	if needsParens {
		return f.parenthesize(doc, e)
	}
	return doc
}

// parenthesize wraps doc in synthesized parentheses. Operator expressions
// get their own indented block when the parentheses break.
func (f *state) parenthesize(doc document.Document, n ast.Node) document.Document {
	spaced := f.settings.SpaceWithinGroupingParenthesis
	if parens.ShouldIndent(n) {
		line := document.SoftLine()
		if spaced {
			line = document.DefaultLine()
		}
		return document.NewGroup(
			document.Text("("),
			document.Indent{line, doc},
			line,
			document.Text(")"),
		)
	}

	pad := document.Empty()
	if spaced {
		pad = document.Space()
	}
	return document.NewGroup(document.Text("("), pad, doc, pad, document.Text(")"))
}

// unknown panics for node kinds lowering has no case for; the node set is
// closed, so this is a programming error.
func (f *state) unknown(n ast.Node) document.Document {
	err := &errors.InvariantError{Msg: fmt.Sprintf("cannot lower node of type %T", n)}
	if f.file != nil {
		if span := n.Span(); !span.IsZero() {
			err.Position = errors.PositionAt(f.file, span.Start, span.End)
		}
	}
	panic(err)
}
