// Package tabular provides a columnar bulk container for container-mode
// collection definitions, plus a parquet bridge for batch ingestion files.
package tabular

import (
	"fmt"

	"github.com/kailas-cloud/vecmodel"
)

// Frame is an ordered, row-major table: the bulk container value carried by
// container-mode definitions in place of one object per record. Column names
// are storage names.
type Frame struct {
	columns []string
	index   map[string]int
	records [][]any
}

// New creates an empty frame with the given column order.
func New(columns ...string) *Frame {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c] = i
	}
	return &Frame{columns: columns, index: idx}
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// Len returns the number of records.
func (f *Frame) Len() int { return len(f.records) }

// Append adds one record. The value count must match the column count.
func (f *Frame) Append(values ...any) error {
	if len(values) != len(f.columns) {
		return fmt.Errorf("tabular: record has %d values, frame has %d columns", len(values), len(f.columns))
	}
	rec := make([]any, len(values))
	copy(rec, values)
	f.records = append(f.records, rec)
	return nil
}

// Record returns the i-th record in insertion order.
func (f *Frame) Record(i int) []any {
	rec := make([]any, len(f.records[i]))
	copy(rec, f.records[i])
	return rec
}

// Value returns the value at record i, named column. The second result is
// false for an unknown column or a nil cell.
func (f *Frame) Value(i int, column string) (any, bool) {
	j, ok := f.index[column]
	if !ok {
		return nil, false
	}
	v := f.records[i][j]
	return v, v != nil
}

// Hooks returns the container hook pair grouping row-mappings into a Frame
// and back. Cells for storage names absent from a row are nil, and nil cells
// ungroup back to absent names, so the pair round-trips row order and field
// sets exactly.
func Hooks(columns []string) (vecmodel.ToContainerFunc, vecmodel.FromContainerFunc) {
	to := func(rows vecmodel.Rows) (any, error) {
		frame := New(columns...)
		for i, row := range rows {
			rec := make([]any, len(columns))
			for j, col := range columns {
				if v, ok := row[col]; ok {
					rec[j] = v
				}
			}
			if err := frame.Append(rec...); err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
		}
		return frame, nil
	}

	from := func(container any) (vecmodel.Rows, error) {
		frame, ok := container.(*Frame)
		if !ok {
			return nil, fmt.Errorf("tabular: container is %T, want *tabular.Frame", container)
		}
		rows := make(vecmodel.Rows, frame.Len())
		for i := range frame.records {
			row := make(vecmodel.Row, len(frame.columns))
			for j, col := range frame.columns {
				if v := frame.records[i][j]; v != nil {
					row[col] = v
				}
			}
			rows[i] = row
		}
		return rows, nil
	}

	return to, from
}
