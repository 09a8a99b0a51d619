package cli

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// table aligns columns by display width so wide characters in member names
// do not break the layout.
type table struct {
	headers []string
	rows    [][]string
	right   map[int]bool
}

func newTable(headers ...string) *table {
	return &table{headers: headers, right: make(map[int]bool)}
}

// alignRight right-aligns the given columns, used for amounts.
func (t *table) alignRight(cols ...int) *table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

func (t *table) row(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(app *App) {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range t.rows {
		for i, c := range r {
			if w := runewidth.StringWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	_, _ = fmt.Fprintln(app.Out, app.styles.header.Render(t.line(t.headers, widths)))
	for _, r := range t.rows {
		_, _ = fmt.Fprintln(app.Out, t.line(r, widths))
	}
}

func (t *table) line(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		if t.right[i] {
			padded[i] = runewidth.FillLeft(c, widths[i])
		} else {
			padded[i] = runewidth.FillRight(c, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}
