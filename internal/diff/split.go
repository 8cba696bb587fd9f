package diff

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Split breaks a composite diff into file sections in input order. Each
// header is matched together with the body that runs up to the next header,
// so a section can never be paired with the wrong header. Text before the
// first header is dropped.
func Split(composite string, v Variant, filePrefix string) ([]FileSection, error) {
	if !v.valid() {
		v = Git
	}
	locs := v.header.FindAllStringIndex(composite, -1)
	sections := make([]FileSection, 0, len(locs))
	for i, loc := range locs {
		header := strings.TrimRight(composite[loc[0]:loc[1]], "\r")
		path, err := v.Filename(header)
		if err != nil {
			return nil, err
		}
		end := len(composite)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sections = append(sections, FileSection{
			Name:   filePrefix + path,
			Path:   path,
			Header: header,
			Body:   strings.TrimPrefix(composite[loc[1]:end], "\n"),
		})
	}
	return sections, nil
}

// Join rebuilds a composite diff from sections, so that a subset of a diff
// can be rendered on its own.
func Join(sections []FileSection) string {
	var b strings.Builder
	for _, section := range sections {
		b.WriteString(section.Header)
		b.WriteString("\n")
		b.WriteString(section.Body)
		if section.Body != "" && !strings.HasSuffix(section.Body, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func isIgnored(path string, globs []string) bool {
	for _, glob := range globs {
		match, err := doublestar.Match(glob, path)
		if err == nil && match {
			return true
		}
	}
	return false
}

// filterSections drops ignored sections and caps the count, keeping order.
func filterSections(sections []FileSection, ignoreGlobs []string, maxFiles int) []FileSection {
	kept := make([]FileSection, 0, len(sections))
	for _, section := range sections {
		if maxFiles > 0 && len(kept) >= maxFiles {
			break
		}
		if isIgnored(section.Path, ignoreGlobs) {
			continue
		}
		kept = append(kept, section)
	}
	return kept
}
