// Package markdown renders the article dialect used by folio content files
// to HTML, exposed as a templ component. It covers headings, paragraphs,
// lists, quotes, fenced code with language badges, tables and a small inline
// grammar (bold, italic, strikethrough, code, safe links and images).
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

var reOrderedItem = regexp.MustCompile(`^(\d+)\.\s`)

// Markdown returns a templ.Component that renders src as HTML.
func Markdown(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		Render(&buf, src)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// block kinds the renderer can be inside of.
type block int

const (
	blockNone block = iota
	blockPara
	blockList
	blockOrdered
	blockQuote
	blockTable
)

type renderer struct {
	buf       *bytes.Buffer
	current   block
	inCode    bool
	codeLang  bool // current code block carries a language badge
	tableBody bool
	images    int
}

// Render writes the HTML representation of src to buf.
func Render(buf *bytes.Buffer, src string) {
	r := &renderer{buf: buf}
	for _, raw := range strings.Split(src, "\n") {
		r.line(strings.TrimRight(raw, "\r"))
	}
	r.close(blockNone)
	r.closeCode()
}

// close ends the current block unless it already is next.
func (r *renderer) close(next block) {
	if r.current == next {
		return
	}
	switch r.current {
	case blockPara:
		r.buf.WriteString("</p>")
	case blockList:
		r.buf.WriteString("</ul>")
	case blockOrdered:
		r.buf.WriteString("</ol>")
	case blockQuote:
		r.buf.WriteString("</blockquote>")
	case blockTable:
		if r.tableBody {
			r.buf.WriteString("</tbody>")
			r.tableBody = false
		}
		r.buf.WriteString("</table>")
	}
	r.current = blockNone
}

// open starts a block, closing whatever was active.
func (r *renderer) open(b block, tag string) {
	if r.current == b {
		return
	}
	r.close(blockNone)
	r.buf.WriteString(tag)
	r.current = b
}

func (r *renderer) closeCode() {
	if !r.inCode {
		return
	}
	r.buf.WriteString("</code></pre>")
	if r.codeLang {
		r.buf.WriteString("</div>")
		r.codeLang = false
	}
	r.inCode = false
}

func (r *renderer) line(line string) {
	if strings.HasPrefix(line, "```") {
		if r.inCode {
			r.closeCode()
			return
		}
		r.close(blockNone)
		lang := strings.TrimSpace(line[3:])
		if lang != "" {
			escaped := html.EscapeString(lang)
			r.codeLang = true
			r.buf.WriteString(`<div class="code-block-wrapper"><span class="code-lang code-lang-` + escaped + `">` + escaped + `</span>`)
			r.buf.WriteString(`<pre class="code-block"><code class="language-` + escaped + `">`)
		} else {
			r.buf.WriteString(`<pre class="code-block"><code>`)
		}
		r.inCode = true
		return
	}

	if r.inCode {
		r.buf.WriteString(html.EscapeString(line))
		r.buf.WriteString("\n")
		return
	}

	if strings.TrimSpace(line) == "" {
		r.close(blockNone)
		return
	}

	switch {
	case strings.HasPrefix(line, "---"):
		r.close(blockNone)
		r.buf.WriteString("<hr/>")
	case strings.HasPrefix(line, "#### "):
		r.heading("h4", line[5:])
	case strings.HasPrefix(line, "### "):
		r.heading("h3", line[4:])
	case strings.HasPrefix(line, "## "):
		r.heading("h2", line[3:])
	case strings.HasPrefix(line, "# "):
		r.heading("h1", line[2:])
	case strings.HasPrefix(line, "|"):
		r.tableRow(line)
	case strings.HasPrefix(line, "- "):
		r.open(blockList, "<ul>")
		r.buf.WriteString("<li>")
		r.buf.WriteString(r.inline(strings.TrimSpace(line[2:])))
		r.buf.WriteString("</li>")
	case reOrderedItem.MatchString(line):
		r.open(blockOrdered, "<ol>")
		item := reOrderedItem.ReplaceAllString(line, "")
		r.buf.WriteString("<li>")
		r.buf.WriteString(r.inline(strings.TrimSpace(item)))
		r.buf.WriteString("</li>")
	case strings.HasPrefix(line, "> "):
		r.open(blockQuote, "<blockquote>")
		r.buf.WriteString(r.inline(strings.TrimSpace(line[2:])))
	default:
		if r.current == blockPara {
			r.buf.WriteString(" ")
		} else {
			r.open(blockPara, "<p>")
		}
		r.buf.WriteString(r.inline(strings.TrimSpace(line)) + "\n")
	}
}

func (r *renderer) heading(tag, text string) {
	r.close(blockNone)
	r.buf.WriteString("<" + tag + ">")
	r.buf.WriteString(r.inline(strings.TrimSpace(text)))
	r.buf.WriteString("</" + tag + ">")
}

func (r *renderer) tableRow(line string) {
	if r.current != blockTable {
		r.open(blockTable, "<table>")
		r.buf.WriteString("<thead><tr>")
		for _, cell := range tableCells(line) {
			r.buf.WriteString("<th>")
			r.buf.WriteString(r.inline(cell))
			r.buf.WriteString("</th>")
		}
		r.buf.WriteString("</tr></thead>")
		return
	}
	if isTableSeparator(line) {
		if !r.tableBody {
			r.buf.WriteString("<tbody>")
			r.tableBody = true
		}
		return
	}
	if !r.tableBody {
		r.buf.WriteString("<tbody>")
		r.tableBody = true
	}
	r.buf.WriteString("<tr>")
	for _, cell := range tableCells(line) {
		r.buf.WriteString("<td>")
		r.buf.WriteString(r.inline(cell))
		r.buf.WriteString("</td>")
	}
	r.buf.WriteString("</tr>")
}

func tableCells(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.Trim(line, "|")
	parts := strings.Split(line, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func isTableSeparator(line string) bool {
	line = strings.TrimSpace(line)
	line = strings.Trim(line, "|")
	for _, cell := range strings.Split(line, "|") {
		cell = strings.TrimSpace(cell)
		cleaned := strings.ReplaceAll(strings.ReplaceAll(cell, "-", ""), ":", "")
		if cleaned != "" {
			return false
		}
	}
	return true
}
