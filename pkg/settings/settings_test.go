package settings

import (
	stderrors "errors"
	"testing"

	"phpfmt/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if s.PrintWidth != 120 || s.IndentSize != 4 || s.MethodChainBreakingThreshold != 3 {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.ControlBraceStyle != SameLine || s.FunctionBraceStyle != NextLine || s.ClassLikeBraceStyle != NextLine {
		t.Errorf("unexpected brace defaults: %+v", s)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		option string
	}{
		{"zero width", func(s *Settings) { s.PrintWidth = 0 }, "print_width"},
		{"huge indent", func(s *Settings) { s.IndentSize = 40 }, "indent_size"},
		{"zero threshold", func(s *Settings) { s.MethodChainBreakingThreshold = 0 }, "method_chain_breaking_threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			err := s.Validate()
			var cerr *errors.ConfigError
			if !stderrors.As(err, &cerr) {
				t.Fatalf("Validate() = %v, want *errors.ConfigError", err)
			}
			if cerr.Option != tt.option {
				t.Errorf("Option = %q, want %q", cerr.Option, tt.option)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PHPFMT_PRINT_WIDTH", "80")
	t.Setenv("PHPFMT_USE_TABS", "yes")
	t.Setenv("PHPFMT_CONTROL_BRACE_STYLE", "next_line")
	t.Setenv("PHPFMT_STATIC_BEFORE_VISIBILITY", "1")
	t.Setenv("PHPFMT_PARENTHESES_IN_NEW_EXPRESSION", "false")

	s, err := FromEnv(Default())
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if s.PrintWidth != 80 {
		t.Errorf("PrintWidth = %d, want 80", s.PrintWidth)
	}
	if !s.UseTabs || !s.StaticBeforeVisibility {
		t.Errorf("boolean overrides not applied: %+v", s)
	}
	if s.ControlBraceStyle != NextLine {
		t.Errorf("ControlBraceStyle = %s, want next_line", s.ControlBraceStyle)
	}
	if s.ParenthesesInNewExpression {
		t.Error("ParenthesesInNewExpression should be overridden to false")
	}
	if s.IndentSize != 4 {
		t.Errorf("unset variables must keep the base value, IndentSize = %d", s.IndentSize)
	}
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key    string
		value  string
		option string
	}{
		{"PHPFMT_PRINT_WIDTH", "wide", "print_width"},
		{"PHPFMT_INDENT_SIZE", "0", "indent_size"},
		{"PHPFMT_USE_TABS", "sometimes", "use_tabs"},
		{"PHPFMT_CONTROL_BRACE_STYLE", "k&r", "control_brace_style"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			base := Default()
			got, err := FromEnv(base)
			var cerr *errors.ConfigError
			if !stderrors.As(err, &cerr) {
				t.Fatalf("FromEnv() error = %v, want *errors.ConfigError", err)
			}
			if cerr.Option != tt.option {
				t.Errorf("Option = %q, want %q", cerr.Option, tt.option)
			}
			if got != base {
				t.Error("FromEnv must return the base settings on error")
			}
		})
	}
}
