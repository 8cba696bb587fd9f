package diff

import (
	"fmt"
	"regexp"
	"strconv"
)

var hunkHeaderRE = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// hunkHeader is a parsed "@@ -L,N +R,M @@" line. An omitted count is 1.
type hunkHeader struct {
	LeftStart  int
	LeftCount  int
	RightStart int
	RightCount int
	Text       string
}

func parseHunkHeader(line string) (hunkHeader, error) {
	matches := hunkHeaderRE.FindStringSubmatch(line)
	if matches == nil {
		return hunkHeader{}, fmt.Errorf("%w: %q", ErrInvalidHunkHeader, line)
	}
	h := hunkHeader{Text: line}
	fields := []struct {
		raw string
		dst *int
	}{
		{matches[1], &h.LeftStart},
		{matches[2], &h.LeftCount},
		{matches[3], &h.RightStart},
		{matches[4], &h.RightCount},
	}
	for _, f := range fields {
		if f.raw == "" {
			*f.dst = 1
			continue
		}
		n, err := strconv.Atoi(f.raw)
		if err != nil {
			return hunkHeader{}, fmt.Errorf("%w: %q", ErrInvalidHunkHeader, line)
		}
		*f.dst = n
	}
	return h, nil
}

// counters are the next left and right line numbers to emit.
type counters struct {
	left  int
	right int
}

func (c *counters) reset(h hunkHeader) {
	c.left = h.LeftStart
	c.right = h.RightStart
}
