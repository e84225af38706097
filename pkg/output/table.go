package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ajxudir/pyreqs/pkg/filter"
)

// Table is a minimal column formatter with dynamic widths. It handles
// Unicode-aware width calculations so names with wide characters stay
// aligned.
//
// Fields:
//   - headers: Column header texts
//   - widths: Current display width per column
//   - rows: Accumulated data rows
type Table struct {
	headers []string
	widths  []int
	rows    [][]string
}

// NewTable creates a table with the given column headers.
//
// Parameters:
//   - headers: The column header texts
//
// Returns:
//   - *Table: A new table ready to accumulate rows
func NewTable(headers ...string) *Table {
	t := &Table{headers: headers, widths: make([]int, len(headers))}
	for i, h := range headers {
		t.widths[i] = runewidth.StringWidth(h)
	}
	return t
}

// AddRow appends a data row, growing column widths as needed.
//
// Rows shorter than the header count are padded with empty cells; longer
// rows are truncated to it.
//
// Parameters:
//   - cells: The cell values, one per column
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if w := runewidth.StringWidth(row[i]); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, row)
}

// Render writes the table with aligned columns and a separator rule.
//
// Parameters:
//   - w: Destination writer
//
// Returns:
//   - error: When writing fails
func (t *Table) Render(w io.Writer) error {
	if err := t.writeRow(w, t.headers); err != nil {
		return err
	}

	rule := make([]string, len(t.headers))
	for i, width := range t.widths {
		rule[i] = strings.Repeat("-", width)
	}
	if err := t.writeRow(w, rule); err != nil {
		return err
	}

	for _, row := range t.rows {
		if err := t.writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

// writeRow writes one row with width-aware padding between columns.
//
// Parameters:
//   - w: Destination writer
//   - cells: The cell values
//
// Returns:
//   - error: When writing fails
func (t *Table) writeRow(w io.Writer, cells []string) error {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			parts[i] = cell
			continue
		}
		parts[i] = cell + strings.Repeat(" ", t.widths[i]-runewidth.StringWidth(cell))
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	return err
}

// WriteExplainTable renders per-specifier filtering decisions as an
// aligned table.
//
// Parameters:
//   - w: Destination writer
//   - decisions: The decisions to render, in declaration order
//
// Returns:
//   - error: When writing fails
func WriteExplainTable(w io.Writer, decisions []filter.Decision) error {
	table := NewTable("SPECIFIER", "NAME", "STATUS", "REASON")
	for _, d := range decisions {
		status := "excluded"
		if d.Included {
			status = "included"
		}
		table.AddRow(d.Spec, d.Name, status, d.Reason)
	}
	return table.Render(w)
}
