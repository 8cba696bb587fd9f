package diff

import (
	"strings"

	"golang.org/x/net/html"
)

// Status summarizes how a file section was rendered.
type Status string

const (
	StatusOK Status = "ok"
	// StatusMalformed marks a section without "---"/"+++" markers.
	StatusMalformed Status = "malformed"
	// StatusTruncated marks a section closed early on an unrecognized line.
	StatusTruncated Status = "truncated"
	// StatusInvalid marks a section whose hunk header did not parse.
	StatusInvalid Status = "invalid"
)

type fileResult struct {
	html    string
	status  Status
	hunks   int
	added   int
	removed int
}

// fileParser is the scratch state of one section. It lives for a single
// parseFile call.
type fileParser struct {
	r   *renderer
	out strings.Builder
	run hunkState
	pos counters
	// pendingLeft and pendingRight count the old and new lines the current
	// hunk still expects.
	pendingLeft  int
	pendingRight int
	lastChanged  bool
	result       fileResult
}

// parseFile renders one file section. Sections without an old-file marker
// degrade to a fallback block; a hunk header that does not parse is returned
// as ErrInvalidHunkHeader.
func parseFile(section FileSection, r *renderer) (fileResult, error) {
	lines := splitLines(section.Body)

	i := 0
	for i < len(lines) && !strings.HasPrefix(lines[i], "---") {
		i++
	}
	if i == len(lines) {
		return fileResult{html: r.fallbackFile(section.Name, lines), status: StatusMalformed}, nil
	}
	i++
	if i < len(lines) && strings.HasPrefix(lines[i], "+++") {
		i++
	}

	p := &fileParser{r: r, result: fileResult{status: StatusOK}}
	r.beginFile(&p.out, section.Name)
	if i < len(lines) {
		if err := p.startHunk(lines[i]); err != nil {
			return fileResult{}, err
		}
		i++
	}

	for ; i < len(lines); i++ {
		raw := lines[i]
		if strings.HasPrefix(raw, "@") {
			p.flush()
			if err := p.startHunk(raw); err != nil {
				return fileResult{}, err
			}
			continue
		}

		line := classify(raw)
		// A blank line past the hunk's declared lines is not part of it, as
		// before svn's "Property changes on:" block.
		if raw == "" && (p.pendingLeft <= 0 || p.pendingRight <= 0) {
			line.Op = OpUnknown
		}
		if line.Op == OpUnknown {
			p.result.status = StatusTruncated
			break
		}
		op := line.Op
		if op == OpNoNewline {
			op = OpContext
		}
		if op.changed() != p.lastChanged {
			p.flush()
		}
		p.run.push(op, html.EscapeString(line.Text))
		p.consume(line.Op)
		p.lastChanged = op.changed()
	}

	p.flush()
	r.endFile(&p.out)
	p.result.html = p.out.String()
	return p.result, nil
}

func (p *fileParser) startHunk(line string) error {
	h, err := parseHunkHeader(line)
	if err != nil {
		return err
	}
	p.pos.reset(h)
	p.pendingLeft = h.LeftCount
	p.pendingRight = h.RightCount
	p.lastChanged = false
	p.result.hunks++
	p.r.rangeRow(&p.out, h.Text)
	return nil
}

func (p *fileParser) flush() {
	removed, added := p.run.flush(&p.out, p.r, &p.pos)
	p.result.removed += removed
	p.result.added += added
}

func (p *fileParser) consume(op Op) {
	switch op {
	case OpContext:
		p.pendingLeft--
		p.pendingRight--
	case OpRemoved:
		p.pendingLeft--
	case OpAdded:
		p.pendingRight--
	}
}
