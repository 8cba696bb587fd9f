package diff

import (
	"errors"
	"strings"
)

var (
	// ErrMissingFilename is returned when a file header matches the variant's
	// header pattern but no filename can be extracted from it.
	ErrMissingFilename = errors.New("missing filename in file header")
	// ErrInvalidHunkHeader is returned for a hunk header whose line ranges do
	// not parse.
	ErrInvalidHunkHeader = errors.New("invalid hunk header")
)

// FileSection is one file's slice of a composite diff.
type FileSection struct {
	// Name is Path with the converter's file prefix applied.
	Name string
	// Path is the filename extracted from the header.
	Path   string
	Header string
	// Body is the raw text following the header line.
	Body string
}

type Op int

const (
	OpContext Op = iota
	OpRemoved
	OpAdded
	OpNoNewline
	OpUnknown
)

func (o Op) String() string {
	switch o {
	case OpContext:
		return "context"
	case OpRemoved:
		return "removed"
	case OpAdded:
		return "added"
	case OpNoNewline:
		return "no-newline"
	default:
		return "unknown"
	}
}

// changed reports whether the op belongs to a change run.
func (o Op) changed() bool {
	return o == OpRemoved || o == OpAdded
}

type DiffLine struct {
	Op   Op
	Text string
}

// classify derives a DiffLine from a raw hunk line. The leading marker is
// stripped, except for "\ No newline at end of file" which keeps the whole
// line as its text. An empty line is an empty context line; the parser
// rejects it once the hunk has no lines left.
func classify(raw string) DiffLine {
	if raw == "" {
		return DiffLine{Op: OpContext}
	}
	switch raw[0] {
	case ' ':
		return DiffLine{Op: OpContext, Text: raw[1:]}
	case '-':
		return DiffLine{Op: OpRemoved, Text: raw[1:]}
	case '+':
		return DiffLine{Op: OpAdded, Text: raw[1:]}
	case '\\':
		return DiffLine{Op: OpNoNewline, Text: raw}
	default:
		return DiffLine{Op: OpUnknown, Text: raw}
	}
}

func splitLines(body string) []string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
