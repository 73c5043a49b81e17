// Package settings holds the style options of the formatter.
package settings

import (
	"fmt"

	"phpfmt/pkg/errors"
)

// BraceStyle places the opening brace of a body.
type BraceStyle int

const (
	// SameLine keeps the brace on the line of the header: `if ($a) {`.
	SameLine BraceStyle = iota
	// NextLine moves the brace to its own line.
	NextLine
)

func (s BraceStyle) String() string {
	if s == NextLine {
		return "next_line"
	}
	return "same_line"
}

// ParseBraceStyle reads "same_line" or "next_line".
func ParseBraceStyle(s string) (BraceStyle, bool) {
	switch s {
	case "same_line":
		return SameLine, true
	case "next_line":
		return NextLine, true
	}
	return SameLine, false
}

// Settings is the immutable style configuration of one formatter.
type Settings struct {
	PrintWidth int
	IndentSize int
	UseTabs    bool

	ControlBraceStyle        BraceStyle
	FunctionBraceStyle       BraceStyle
	ClassLikeBraceStyle      BraceStyle
	InlineEmptyControlBraces bool

	// StaticBeforeVisibility prints `static public` instead of
	// `public static`.
	StaticBeforeVisibility bool

	// SpaceWithinGroupingParenthesis prints `( $a + $b )` for synthesized
	// and preserved grouping parentheses.
	SpaceWithinGroupingParenthesis bool

	// ParenthesesInNewExpression keeps `new Foo()` rather than `new Foo`.
	ParenthesesInNewExpression bool
	// ParenthesesAroundNewInMemberAccess keeps `(new Foo())->bar()` on
	// versions that accept `new Foo()->bar()`.
	ParenthesesAroundNewInMemberAccess bool

	// TrailingComma adds a trailing comma to broken lists where the target
	// version allows it.
	TrailingComma bool

	// MethodChainBreakingThreshold is the number of method calls from which
	// a member-access chain is printed one call per line when it breaks.
	MethodChainBreakingThreshold int
}

// Default returns the standard style.
func Default() Settings {
	return Settings{
		PrintWidth:                   120,
		IndentSize:                   4,
		ControlBraceStyle:            SameLine,
		FunctionBraceStyle:           NextLine,
		ClassLikeBraceStyle:          NextLine,
		ParenthesesInNewExpression:   true,
		TrailingComma:                true,
		MethodChainBreakingThreshold: 3,
	}
}

// Validate rejects settings the printer cannot honor.
func (s Settings) Validate() error {
	if s.PrintWidth < 1 {
		return &errors.ConfigError{Option: "print_width", Msg: fmt.Sprintf("must be positive, got %d", s.PrintWidth)}
	}
	if s.IndentSize < 1 || s.IndentSize > 16 {
		return &errors.ConfigError{Option: "indent_size", Msg: fmt.Sprintf("must be between 1 and 16, got %d", s.IndentSize)}
	}
	if s.MethodChainBreakingThreshold < 1 {
		return &errors.ConfigError{
			Option: "method_chain_breaking_threshold",
			Msg:    fmt.Sprintf("must be positive, got %d", s.MethodChainBreakingThreshold),
		}
	}
	return nil
}
