// Package version models the PHP version the formatted code targets and the
// language features that version supports.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"phpfmt/pkg/errors"
)

// Version is a PHP release number.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Latest is the newest release the formatter knows about.
var Latest = Version{Major: 8, Minor: 5, Patch: 0}

// Parse reads "8", "8.4" or "8.4.1".
func Parse(s string) (Version, error) {
	input := strings.TrimSpace(s)
	if input == "" {
		return Version{}, &errors.VersionError{Input: s, Msg: "empty version"}
	}

	parts := strings.Split(input, ".")
	if len(parts) > 3 {
		return Version{}, &errors.VersionError{Input: s, Msg: "too many components"}
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, (&errors.VersionError{Input: s, Msg: fmt.Sprintf("invalid component %q", part)}).CausedBy(err)
		}
		if n < 0 {
			return Version{}, &errors.VersionError{Input: s, Msg: fmt.Sprintf("negative component %d", n)}
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustParse is Parse for constants; it panics on malformed input.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or +1.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return sign(v.Major - other.Major)
	case v.Minor != other.Minor:
		return sign(v.Minor - other.Minor)
	default:
		return sign(v.Patch - other.Patch)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// AtLeast reports whether v is other or newer.
func (v Version) AtLeast(other Version) bool { return v.Compare(other) >= 0 }

// Feature is a version-dependent language feature the formatter cares about.
type Feature int

const (
	TrailingCommaInCallArguments Feature = iota
	ArrowFunctions
	TrailingCommaInParameterLists
	TrailingCommaInClosureUseLists
	ReadonlyProperties
	NewWithoutParentheses
	AsymmetricVisibility
	PipeOperator
)

var features = [...]struct {
	name  string
	since Version
}{
	TrailingCommaInCallArguments:   {"trailing-comma-in-call-arguments", Version{7, 3, 0}},
	ArrowFunctions:                 {"arrow-functions", Version{7, 4, 0}},
	TrailingCommaInParameterLists:  {"trailing-comma-in-parameter-lists", Version{8, 0, 0}},
	TrailingCommaInClosureUseLists: {"trailing-comma-in-closure-use-lists", Version{8, 0, 0}},
	ReadonlyProperties:             {"readonly-properties", Version{8, 1, 0}},
	NewWithoutParentheses:          {"new-without-parentheses", Version{8, 4, 0}},
	AsymmetricVisibility:           {"asymmetric-visibility", Version{8, 4, 0}},
	PipeOperator:                   {"pipe-operator", Version{8, 5, 0}},
}

func (f Feature) String() string { return features[f].name }

// Since returns the first version supporting f.
func (f Feature) Since() Version { return features[f].since }

// FeatureGate answers whether a language feature may be used in output.
type FeatureGate interface {
	IsSupported(f Feature) bool
}

// IsSupported makes Version a FeatureGate.
func (v Version) IsSupported(f Feature) bool {
	return v.AtLeast(f.Since())
}
