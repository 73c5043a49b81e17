// Package driver wires settings, version gating, comment attachment and the
// formatter together for callers that hold a parsed PHP file.
package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/xyproto/env/v2"

	"phpfmt/pkg/ast"
	"phpfmt/pkg/comments"
	"phpfmt/pkg/errors"
	"phpfmt/pkg/formatter"
	"phpfmt/pkg/logger"
	"phpfmt/pkg/settings"
	"phpfmt/pkg/source"
	"phpfmt/pkg/version"
)

// VersionVariable names the environment variable holding the target PHP
// version.
const VersionVariable = settings.Prefix + "PHP_VERSION"

// Driver formats whole files with one set of settings and one target
// version. It is safe for concurrent use as long as the error output is.
type Driver struct {
	settings  settings.Settings
	target    version.Version
	formatter *formatter.Formatter
	errOut    io.Writer
}

// New reads PHPFMT_* overrides on top of the default settings and targets
// the version in PHPFMT_PHP_VERSION, or the latest one when it is unset.
func New() (*Driver, error) {
	s, err := settings.FromEnv(settings.Default())
	if err != nil {
		logger.Error("Invalid settings", "error", err)
		return nil, err
	}

	target := version.Latest
	if raw := env.Str(VersionVariable, ""); raw != "" {
		target, err = version.Parse(raw)
		if err != nil {
			logger.Error("Invalid target version", "variable", VersionVariable, "error", err)
			return nil, err
		}
	}
	return NewWithOptions(s, target), nil
}

// NewWithOptions creates a Driver from explicit settings and target.
// Errors are displayed on stderr until SetErrorOutput says otherwise.
func NewWithOptions(s settings.Settings, target version.Version) *Driver {
	logger.Info("Driver ready", "target", target.String(), "print_width", s.PrintWidth)
	return &Driver{
		settings:  s,
		target:    target,
		formatter: formatter.New(s, target),
		errOut:    os.Stderr,
	}
}

// SetErrorOutput redirects error display. A nil writer discards it.
func (d *Driver) SetErrorOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	d.errOut = w
}

func (d *Driver) Settings() settings.Settings { return d.settings }
func (d *Driver) Target() version.Version     { return d.target }

// FormatSource formats program, which was parsed from content. path may be
// empty for standard input. commentSpans are the byte spans of every
// comment token in content, in any order.
//
// The formatted text is returned even when errors are reported, except
// for an internal invariant failure, which yields an empty string and a
// single *errors.InvariantError. Errors are also written to the error
// output.
func (d *Driver) FormatSource(path, content string, program *ast.Program, commentSpans []ast.Span) (out string, errs []errors.FormatterError) {
	file := source.NewStdinSource(content)
	if path != "" {
		file = source.FromFile(path, content)
	}
	log := logger.With("file", file.DisplayPath())

	defer func() {
		if r := recover(); r != nil {
			invariant, ok := r.(*errors.InvariantError)
			if !ok {
				invariant = &errors.InvariantError{Msg: fmt.Sprint(r)}
			}
			log.Error("Formatting aborted", "error", invariant)
			out, errs = "", []errors.FormatterError{invariant}
			d.Report(content, errs)
		}
	}()

	index := comments.NewIndex(file, commentSpans)
	out, errs = d.formatter.Check(file, program, index)

	if n := index.Remaining(); n > 0 {
		logger.Warn("Comments left unprinted", "file", file.DisplayPath(), "count", n)
	}
	for _, err := range errs {
		log.Warn("Unsupported syntax", "kind", err.Kind(), "message", err.Message())
	}
	d.Report(content, errs)
	return out, errs
}

// Report displays errs against content on the error output and returns
// true when there was nothing to display.
func (d *Driver) Report(content string, errs []errors.FormatterError) bool {
	if len(errs) == 0 {
		return true
	}
	errors.DisplayErrors(d.errOut, content, errs)
	return false
}
