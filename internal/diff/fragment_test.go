package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// row is one parsed table row. Range rows carry only Text.
type row struct {
	Range  bool
	Left   string
	Right  string
	Marker string
	Text   string
}

type renderedFile struct {
	Title    string
	HasTable bool
	Fallback string
	Rows     []row
}

// readFragment parses a rendered fragment back into file blocks.
func readFragment(t *testing.T, fragment string) []renderedFile {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(fragment))
	require.NoError(t, err)

	var files []renderedFile
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			files = append(files, readFile(t, n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return files
}

func readFile(t *testing.T, li *html.Node) renderedFile {
	var f renderedFile
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h3":
				f.Title = textOf(n)
				return
			case "div":
				f.Fallback = textOf(n)
				return
			case "tr":
				f.Rows = append(f.Rows, readRow(t, n))
				return
			case "table":
				f.HasTable = true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(li)
	return f
}

func readRow(t *testing.T, tr *html.Node) row {
	if attr(tr, "class") == "range" {
		return row{Range: true, Text: textOf(tr)}
	}
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "td" {
			cells = append(cells, textOf(c))
		}
	}
	require.Len(t, cells, 4)
	return row{Left: cells[0], Right: cells[1], Marker: cells[2], Text: cells[3]}
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// lineRows drops range rows.
func lineRows(rows []row) []row {
	out := make([]row, 0, len(rows))
	for _, r := range rows {
		if !r.Range {
			out = append(out, r)
		}
	}
	return out
}
