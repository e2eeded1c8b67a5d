package source

import (
	"path/filepath"
	"strings"
)

// SourceFile represents a source file with its content and metadata.
type SourceFile struct {
	Name    string // display name (e.g. "script.oo", "<stdin>")
	Path    string // full file path (empty for eval/stdin input)
	Content string
	lines   []string // cached split lines
}

// NewSourceFile creates a new source file.
func NewSourceFile(name, path, content string) *SourceFile {
	return &SourceFile{Name: name, Path: path, Content: content}
}

// NewEvalSource creates a source file for eval input.
func NewEvalSource(content string) *SourceFile {
	return &SourceFile{Name: "<eval>", Content: content}
}

// NewStdinSource creates a source file for stdin input.
func NewStdinSource(content string) *SourceFile {
	return &SourceFile{Name: "<stdin>", Content: content}
}

// FromFile creates a SourceFile from a file path and content.
func FromFile(filePath, content string) *SourceFile {
	return NewSourceFile(filepath.Base(filePath), filePath, content)
}

// Lines returns the source split into lines (cached).
func (sf *SourceFile) Lines() []string {
	if sf.lines == nil {
		sf.lines = strings.Split(sf.Content, "\n")
	}
	return sf.lines
}

// DisplayPath returns the best path for display.
func (sf *SourceFile) DisplayPath() string {
	if sf.Path != "" {
		return sf.Path
	}
	return sf.Name
}

// IsFile reports whether this represents an actual file on disk.
func (sf *SourceFile) IsFile() bool {
	return sf.Path != ""
}
