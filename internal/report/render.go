// Package report writes word counts as an HTML table.
//
// Word text and the title are written verbatim. Nothing is escaped, so a word
// containing markup characters becomes markup in the output document.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"harshagw/wordcount/internal/tally"
)

// Renderer writes a single HTML document in three parts: header, rows, footer.
type Renderer struct {
	w   *bufio.Writer
	err error
}

// NewRenderer returns a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: bufio.NewWriter(w)}
}

func (r *Renderer) line(s string) {
	if r.err != nil {
		return
	}
	if _, err := r.w.WriteString(s); err != nil {
		r.err = err
		return
	}
	r.err = r.w.WriteByte('\n')
}

// Header writes the document preamble and the table's column headings.
func (r *Renderer) Header(title string) {
	r.line("<html>")
	r.line("<head>")
	r.line("<title>Words Counted in " + title + "</title>")
	r.line("</head>")
	r.line("<body>")
	r.line("<h2>Words Counted in " + title + "</h2>")
	r.line("<hr />")
	r.line(`<table border="1">`)
	r.line("<tr>")
	r.line("<th>Words</th>")
	r.line("<th>Counts</th>")
	r.line("</tr>")
}

// Row writes one table row.
func (r *Renderer) Row(e tally.Entry) {
	r.line("<tr>")
	r.line("<td>" + e.Word + "</td>")
	r.line("<td>" + strconv.Itoa(e.Count) + "</td>")
	r.line("</tr>")
}

// Footer closes the table and the document.
func (r *Renderer) Footer() {
	r.line("</table>")
	r.line("</body>")
	r.line("</html>")
}

// Flush writes any buffered output and returns the first error encountered.
func (r *Renderer) Flush() error {
	if r.err != nil {
		return fmt.Errorf("failed to write report: %w", r.err)
	}
	if err := r.w.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Render writes a complete document for entries.
func Render(w io.Writer, title string, entries []tally.Entry) error {
	r := NewRenderer(w)
	r.Header(title)
	for _, e := range entries {
		r.Row(e)
	}
	r.Footer()
	return r.Flush()
}
