package settings

import (
	"strconv"
	"strings"

	"github.com/xyproto/env/v2"

	"phpfmt/pkg/errors"
)

// Prefix is prepended to every environment variable name.
const Prefix = "PHPFMT_"

var boolWords = map[string]bool{
	"1": true, "true": true, "yes": true, "on": true, "y": true,
	"0": false, "false": false, "no": false, "off": false, "n": false,
}

// FromEnv applies PHPFMT_* overrides on top of base and validates the
// result.
func FromEnv(base Settings) (Settings, error) {
	s := base

	ints := []struct {
		name   string
		option string
		dst    *int
	}{
		{"PRINT_WIDTH", "print_width", &s.PrintWidth},
		{"INDENT_SIZE", "indent_size", &s.IndentSize},
		{"METHOD_CHAIN_BREAKING_THRESHOLD", "method_chain_breaking_threshold", &s.MethodChainBreakingThreshold},
	}
	for _, v := range ints {
		if err := readInt(v.name, v.option, v.dst); err != nil {
			return base, err
		}
	}

	bools := []struct {
		name   string
		option string
		dst    *bool
	}{
		{"USE_TABS", "use_tabs", &s.UseTabs},
		{"STATIC_BEFORE_VISIBILITY", "static_before_visibility", &s.StaticBeforeVisibility},
		{"INLINE_EMPTY_CONTROL_BRACES", "inline_empty_control_braces", &s.InlineEmptyControlBraces},
		{"SPACE_WITHIN_GROUPING_PARENTHESIS", "space_within_grouping_parenthesis", &s.SpaceWithinGroupingParenthesis},
		{"PARENTHESES_IN_NEW_EXPRESSION", "parentheses_in_new_expression", &s.ParenthesesInNewExpression},
		{"PARENTHESES_AROUND_NEW_IN_MEMBER_ACCESS", "parentheses_around_new_in_member_access", &s.ParenthesesAroundNewInMemberAccess},
		{"TRAILING_COMMA", "trailing_comma", &s.TrailingComma},
	}
	for _, v := range bools {
		if err := readBool(v.name, v.option, v.dst); err != nil {
			return base, err
		}
	}

	braces := []struct {
		name   string
		option string
		dst    *BraceStyle
	}{
		{"CONTROL_BRACE_STYLE", "control_brace_style", &s.ControlBraceStyle},
		{"FUNCTION_BRACE_STYLE", "function_brace_style", &s.FunctionBraceStyle},
		{"CLASSLIKE_BRACE_STYLE", "classlike_brace_style", &s.ClassLikeBraceStyle},
	}
	for _, v := range braces {
		if !env.Has(Prefix + v.name) {
			continue
		}
		raw := strings.ToLower(strings.TrimSpace(env.Str(Prefix + v.name)))
		style, ok := ParseBraceStyle(raw)
		if !ok {
			return base, &errors.ConfigError{Option: v.option, Msg: "expected same_line or next_line, got " + strconv.Quote(raw)}
		}
		*v.dst = style
	}

	if err := s.Validate(); err != nil {
		return base, err
	}
	return s, nil
}

func readInt(name, option string, dst *int) error {
	key := Prefix + name
	if !env.Has(key) {
		return nil
	}
	raw := strings.TrimSpace(env.Str(key))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return (&errors.ConfigError{Option: option, Msg: "expected an integer, got " + strconv.Quote(raw)}).CausedBy(err)
	}
	*dst = n
	return nil
}

func readBool(name, option string, dst *bool) error {
	key := Prefix + name
	if !env.Has(key) {
		return nil
	}
	raw := strings.ToLower(strings.TrimSpace(env.Str(key)))
	value, ok := boolWords[raw]
	if !ok {
		return &errors.ConfigError{Option: option, Msg: "expected a boolean, got " + strconv.Quote(raw)}
	}
	*dst = value
	return nil
}
