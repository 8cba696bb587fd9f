package diff

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Theme holds the inline style values of the rendered fragment. Values are
// opaque CSS strings.
type Theme struct {
	AddedBackground      string `json:"added_background" mapstructure:"added_background"`
	RemovedBackground    string `json:"removed_background" mapstructure:"removed_background"`
	RangeBackground      string `json:"range_background" mapstructure:"range_background"`
	LineNumberBackground string `json:"line_number_background" mapstructure:"line_number_background"`
	FontFamily           string `json:"font_family" mapstructure:"font_family"`
}

func DefaultTheme() Theme {
	return Theme{
		AddedBackground:      "#dfd",
		RemovedBackground:    "#fdd",
		RangeBackground:      "rgb(234,242,245)",
		LineNumberBackground: "#ddd",
		FontFamily:           "monospace",
	}
}

// withDefaults fills empty fields from DefaultTheme.
func (t Theme) withDefaults() Theme {
	d := DefaultTheme()
	if t.AddedBackground == "" {
		t.AddedBackground = d.AddedBackground
	}
	if t.RemovedBackground == "" {
		t.RemovedBackground = d.RemovedBackground
	}
	if t.RangeBackground == "" {
		t.RangeBackground = d.RangeBackground
	}
	if t.LineNumberBackground == "" {
		t.LineNumberBackground = d.LineNumberBackground
	}
	if t.FontFamily == "" {
		t.FontFamily = d.FontFamily
	}
	return t
}

const (
	listOpen  = `<ul style="margin:0; padding:0; list-style:none;">`
	listClose = `</ul>`
	fileClose = "</table></li>"
)

type rowStyle int

const (
	styleContext rowStyle = iota
	styleRemoved
	styleAdded
)

// renderer formats single rows and file blocks. Row text arrives already
// escaped and is written as-is.
type renderer struct {
	theme Theme
}

func newRenderer(theme Theme) *renderer {
	t := theme.withDefaults()
	// Theme values land inside quoted attributes.
	t.AddedBackground = html.EscapeString(t.AddedBackground)
	t.RemovedBackground = html.EscapeString(t.RemovedBackground)
	t.RangeBackground = html.EscapeString(t.RangeBackground)
	t.LineNumberBackground = html.EscapeString(t.LineNumberBackground)
	t.FontFamily = html.EscapeString(t.FontFamily)
	return &renderer{theme: t}
}

// numberCell renders a line number cell, empty when ok is false.
func (r *renderer) numberCell(n int, ok bool) string {
	text := ""
	if ok {
		text = strconv.Itoa(n)
	}
	return fmt.Sprintf("<td class='ln' style='width:25px; padding:3px; background-color:%s; border-top:1px solid #bbb; border-right:1px solid #bbb; text-align:right; font-family:%s; color:#999;'>%s</td>",
		r.theme.LineNumberBackground, r.theme.FontFamily, text)
}

// contentCells renders the marker cell and the text cell of a row.
func (r *renderer) contentCells(style rowStyle, escapedText string) string {
	marker, background := "", ""
	switch style {
	case styleRemoved:
		marker, background = "-", " background-color:"+r.theme.RemovedBackground+";"
	case styleAdded:
		marker, background = "+", " background-color:"+r.theme.AddedBackground+";"
	}
	return fmt.Sprintf("<td style='padding:3px; text-align:right; font-family:%s;%s'>%s</td><td style='padding:3px 10px; text-align:left; font-family:%s; white-space:pre;%s'>%s</td>",
		r.theme.FontFamily, background, marker, r.theme.FontFamily, background, escapedText)
}

func (r *renderer) contextRow(w *strings.Builder, left, right int, escapedText string) {
	w.WriteString("<tr>")
	w.WriteString(r.numberCell(left, true))
	w.WriteString(r.numberCell(right, true))
	w.WriteString(r.contentCells(styleContext, escapedText))
	w.WriteString("</tr>\n")
}

func (r *renderer) removedRow(w *strings.Builder, left int, escapedText string) {
	w.WriteString("<tr>")
	w.WriteString(r.numberCell(left, true))
	w.WriteString(r.numberCell(0, false))
	w.WriteString(r.contentCells(styleRemoved, escapedText))
	w.WriteString("</tr>\n")
}

func (r *renderer) addedRow(w *strings.Builder, right int, escapedText string) {
	w.WriteString("<tr>")
	w.WriteString(r.numberCell(0, false))
	w.WriteString(r.numberCell(right, true))
	w.WriteString(r.contentCells(styleAdded, escapedText))
	w.WriteString("</tr>\n")
}

// rangeRow renders the hunk marker row with the literal header text.
func (r *renderer) rangeRow(w *strings.Builder, header string) {
	fmt.Fprintf(w, "<tr class='range'><td colspan=4 style='padding:3px; background-color:%s; color:#999;'>... %s</td></tr>\n",
		r.theme.RangeBackground, html.EscapeString(header))
}

func (r *renderer) beginFile(w *strings.Builder, name string) {
	fmt.Fprintf(w, `<li style="background-color:#eee; padding:2px; margin-bottom:10px; border:1px solid #ddd; border-radius:6px;"><h3 style="margin:5px; font-size:14px; font-weight:normal; line-height:20px;">%s</h3><table cellspacing=0 style="width:100%%; font-size:12px; font-family:%s; border:1px solid #bbb; border-radius:4px; border-collapse:separate; padding:0; background-color:#fff;">`+"\n",
		html.EscapeString(name), r.theme.FontFamily)
}

func (r *renderer) endFile(w *strings.Builder) {
	w.WriteString(fileClose)
}

// fallbackFile renders a file block without a table, showing the raw text
// that was found instead of a diff.
func (r *renderer) fallbackFile(name string, lines []string) string {
	escaped := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		escaped = append(escaped, html.EscapeString(line))
	}
	return fmt.Sprintf(`<li style="background-color:#eee; padding:2px; margin-bottom:10px; border:1px solid #ddd; border-radius:6px;"><h3 style="margin:5px; font-size:14px; font-weight:normal;">%s</h3><div style="margin:5px; font-size:12px; font-family:%s; white-space:pre;">%s</div></li>`,
		html.EscapeString(name), r.theme.FontFamily, strings.Join(escaped, "\n"))
}
