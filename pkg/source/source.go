package source

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// File represents a PHP source file with its content and metadata.
// The formatter only reads it: for blank-line preservation, for deciding
// whether a node spans several source lines, and for error excerpts.
type File struct {
	Name       string   // Display name (e.g., "index.php", "<stdin>")
	Path       string   // Full file path (empty for stdin/eval)
	Content    string   // The source code content
	lines      []string // Cached split lines (lazy initialization)
	lineStarts []int    // Cached byte offsets of line starts (lazy initialization)
}

// NewFile creates a new source file
func NewFile(name, path, content string) *File {
	return &File{
		Name:    name,
		Path:    path,
		Content: content,
	}
}

// NewStdinSource creates a source file for stdin input
func NewStdinSource(content string) *File {
	return &File{
		Name:    "<stdin>",
		Path:    "",
		Content: content,
	}
}

// FromFile creates a File from a file path and content
func FromFile(filePath, content string) *File {
	name := filepath.Base(filePath)
	return NewFile(name, filePath, content)
}

// Lines returns the source split into lines (cached)
func (f *File) Lines() []string {
	if f == nil {
		return nil
	}
	if f.lines == nil {
		f.lines = strings.Split(f.Content, "\n")
	}
	return f.lines
}

// DisplayPath returns the best path for display (prefers Path, falls back to Name)
func (f *File) DisplayPath() string {
	if f == nil {
		return "<unknown>"
	}
	if f.Path != "" {
		return f.Path
	}
	return f.Name
}

// Slice returns the content between two byte offsets, clamped to the file.
func (f *File) Slice(start, end int) string {
	if f == nil {
		return ""
	}
	start, end = f.clamp(start), f.clamp(end)
	if start >= end {
		return ""
	}
	return f.Content[start:end]
}

func (f *File) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(f.Content) {
		return len(f.Content)
	}
	return offset
}

// LineColumn converts a byte offset into a 1-based line and a 1-based
// column counted in runes.
func (f *File) LineColumn(offset int) (line, column int) {
	if f == nil {
		return 0, 0
	}
	if f.lineStarts == nil {
		f.lineStarts = []int{0}
		for i := 0; i < len(f.Content); i++ {
			if f.Content[i] == '\n' {
				f.lineStarts = append(f.lineStarts, i+1)
			}
		}
	}
	offset = f.clamp(offset)
	idx := sort.Search(len(f.lineStarts), func(i int) bool { return f.lineStarts[i] > offset }) - 1
	start := f.lineStarts[idx]
	return idx + 1, utf8.RuneCountInString(f.Content[start:offset]) + 1
}

// HasNewlineInRange reports whether a newline occurs between two offsets.
func (f *File) HasNewlineInRange(start, end int) bool {
	return strings.Contains(f.Slice(start, end), "\n")
}

// IsWhitespaceRange reports whether the content between two offsets
// consists of whitespace only.
func (f *File) IsWhitespaceRange(start, end int) bool {
	return strings.TrimSpace(f.Slice(start, end)) == ""
}

// IsNextLineEmpty reports whether the line following the one containing
// offset is blank. Trailing separators (";" and ",") and spaces on the
// current line are skipped first.
func (f *File) IsNextLineEmpty(offset int) bool {
	if f == nil {
		return false
	}
	text := f.Content
	i := f.clamp(offset)
	for i < len(text) && (text[i] == ' ' || text[i] == '\t' || text[i] == ';' || text[i] == ',') {
		i++
	}
	if i < len(text) && text[i] == '\r' {
		i++
	}
	if i >= len(text) || text[i] != '\n' {
		return false
	}
	i++
	for i < len(text) && (text[i] == ' ' || text[i] == '\t' || text[i] == '\r') {
		i++
	}
	return i < len(text) && text[i] == '\n'
}
