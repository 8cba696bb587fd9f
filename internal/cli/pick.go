package cli

import (
	"fmt"
	"strings"

	"github.com/brianndofor/diffhtml/internal/diff"
)

// pickSections lets the user choose file sections of text in a TUI and
// returns the composite diff of the chosen ones, or "" when cancelled.
func pickSections(app *App, text string, opts renderOptions) (string, error) {
	variant, err := app.variant(opts)
	if err != nil {
		return "", err
	}
	sections, err := diff.Split(text, variant, app.filePrefix(opts))
	if err != nil {
		return "", err
	}
	if len(sections) == 0 {
		return "", fmt.Errorf("no file sections found")
	}
	chosen, err := runPickTUI(sections)
	if err != nil {
		return "", err
	}
	return diff.Join(chosen), nil
}

// sectionStats counts added and removed lines of a section body without
// rendering it. Lines before the first hunk header are file headers.
func sectionStats(body string) (added, removed int) {
	inHunk := false
	for _, line := range strings.Split(body, "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			inHunk = true
		case !inHunk:
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}
