package diff

import "strings"

// hunkState buffers the run currently being accumulated. Context lines go to
// both sides and render once; removed lines go left, added lines go right.
type hunkState struct {
	left     []string
	right    []string
	modified bool
}

func (h *hunkState) push(op Op, escapedText string) {
	switch op {
	case OpRemoved:
		h.left = append(h.left, escapedText)
		h.modified = true
	case OpAdded:
		h.right = append(h.right, escapedText)
		h.modified = true
	default:
		h.left = append(h.left, escapedText)
		h.right = append(h.right, escapedText)
	}
}

func (h *hunkState) empty() bool {
	return len(h.left) == 0 && len(h.right) == 0
}

// flush writes the pending run as rows, advances the counters and clears the
// buffers. A modified run lists every removed row before every added row.
// It returns the number of removed and added rows written.
func (h *hunkState) flush(w *strings.Builder, r *renderer, c *counters) (removed, added int) {
	if h.empty() {
		return 0, 0
	}
	if h.modified {
		for _, line := range h.left {
			r.removedRow(w, c.left, line)
			c.left++
		}
		for _, line := range h.right {
			r.addedRow(w, c.right, line)
			c.right++
		}
		removed, added = len(h.left), len(h.right)
	} else {
		for _, line := range h.left {
			r.contextRow(w, c.left, c.right, line)
			c.left++
			c.right++
		}
	}
	h.left = nil
	h.right = nil
	h.modified = false
	return removed, added
}
