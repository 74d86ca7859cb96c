package series

import (
	"fmt"

	"reddlag/domain/core"
)

// Frame is an immutable year-indexed table of named numeric columns:
// the combined annual series the pipeline threads through its steps.
// Every transformation returns a new Frame; callers never see shared
// mutable state.
type Frame struct {
	years    []core.Year
	order    []string
	columns  map[string][]float64
	warnings []Warning
}

// NewFrame creates a frame over the given years with no columns yet
func NewFrame(years []core.Year) *Frame {
	ys := make([]core.Year, len(years))
	copy(ys, years)
	return &Frame{
		years:   ys,
		columns: make(map[string][]float64),
	}
}

// Len returns the number of rows (years)
func (f *Frame) Len() int {
	return len(f.years)
}

// Years returns a copy of the year index
func (f *Frame) Years() []core.Year {
	ys := make([]core.Year, len(f.years))
	copy(ys, f.years)
	return ys
}

// ColumnNames returns the column keys in attachment order
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.order))
	copy(names, f.order)
	return names
}

// HasColumn reports whether a column is present
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.columns[name]
	return ok
}

// Column returns a copy of a column's values
func (f *Frame) Column(name string) ([]float64, bool) {
	vals, ok := f.columns[name]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(vals))
	copy(out, vals)
	return out, true
}

// WithColumn returns a new frame with the column attached. Attaching a
// column that already exists replaces its values in place in the column
// order, which makes repeated identical joins idempotent.
func (f *Frame) WithColumn(name string, values []float64) (*Frame, error) {
	if len(values) != len(f.years) {
		return nil, fmt.Errorf("%w: column %q has %d values for %d years",
			core.ErrColumnLength, name, len(values), len(f.years))
	}
	next := f.clone()
	vals := make([]float64, len(values))
	copy(vals, values)
	if !next.has(name) {
		next.order = append(next.order, name)
	}
	next.columns[name] = vals
	return next, nil
}

// WithWarnings returns a new frame with warnings appended
func (f *Frame) WithWarnings(ws ...Warning) *Frame {
	if len(ws) == 0 {
		return f
	}
	next := f.clone()
	next.warnings = append(next.warnings, ws...)
	return next
}

// Warnings returns a copy of the accumulated data-quality warnings
func (f *Frame) Warnings() []Warning {
	out := make([]Warning, len(f.warnings))
	copy(out, f.warnings)
	return out
}

func (f *Frame) has(name string) bool {
	_, ok := f.columns[name]
	return ok
}

func (f *Frame) clone() *Frame {
	next := &Frame{
		years:    make([]core.Year, len(f.years)),
		order:    make([]string, len(f.order)),
		columns:  make(map[string][]float64, len(f.columns)),
		warnings: make([]Warning, len(f.warnings)),
	}
	copy(next.years, f.years)
	copy(next.order, f.order)
	copy(next.warnings, f.warnings)
	for name, vals := range f.columns {
		c := make([]float64, len(vals))
		copy(c, vals)
		next.columns[name] = c
	}
	return next
}
