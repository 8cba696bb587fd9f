package diff

import (
	"fmt"
	"regexp"
	"strings"
)

// Variant is the file header policy of one version control system: the
// pattern that introduces a file section and the rule that pulls the
// filename out of it.
type Variant struct {
	Name     string
	header   *regexp.Regexp
	filename *regexp.Regexp
}

var (
	// Git splits on "diff --git a/<old> b/<new>" and names the file after
	// the new path.
	Git = Variant{
		Name:     "git",
		header:   regexp.MustCompile(`(?m)^diff --git.+$`),
		filename: regexp.MustCompile(` b/(.+)`),
	}
	// Svn splits on "Index: <path>".
	Svn = Variant{
		Name:     "svn",
		header:   regexp.MustCompile(`(?m)^Index: .+$`),
		filename: regexp.MustCompile(`^Index: (.+)`),
	}
)

// VariantByName resolves a configured VCS name. Empty means git.
func VariantByName(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "git":
		return Git, nil
	case "svn", "subversion":
		return Svn, nil
	default:
		return Variant{}, fmt.Errorf("unknown vcs %q (want git or svn)", name)
	}
}

// Filename extracts the file name from a header line matched by the variant.
func (v Variant) Filename(header string) (string, error) {
	header = strings.TrimRight(header, "\r")
	if v.Name == Git.Name {
		if name, ok := samePathHeader(header); ok {
			return name, nil
		}
	}
	matches := v.filename.FindStringSubmatch(header)
	if len(matches) < 2 || matches[1] == "" {
		return "", fmt.Errorf("%w: %q", ErrMissingFilename, header)
	}
	return matches[1], nil
}

// samePathHeader handles "diff --git a/<p> b/<p>" where both paths are
// equal, which stays unambiguous when <p> itself contains " b/".
func samePathHeader(header string) (string, bool) {
	rest, ok := strings.CutPrefix(header, "diff --git ")
	if !ok || len(rest)%2 == 0 {
		return "", false
	}
	mid := len(rest) / 2
	left, right := rest[:mid], rest[mid+1:]
	if rest[mid] != ' ' || !strings.HasPrefix(left, "a/") || !strings.HasPrefix(right, "b/") {
		return "", false
	}
	if left[2:] != right[2:] || right[2:] == "" {
		return "", false
	}
	return right[2:], true
}

func (v Variant) valid() bool {
	return v.header != nil && v.filename != nil
}
