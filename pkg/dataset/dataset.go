// Package dataset defines the columnar Frame type passed between the
// dashboard stages. Every column carries a fixed type tag (numeric or
// categorical) established by a single inference pass when the frame
// is built, so Profiler and Trainer never re-derive dtypes on their
// own.
package dataset

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// MaxFilterCardinality is the distinct-value cap under which a
// categorical column is considered usable as a dashboard filter.
// Transformer and Profiler must share this threshold.
const MaxFilterCardinality = 20

// ColType tags a column as numeric or categorical.
type ColType int

const (
	Numeric ColType = iota
	Categorical
)

func (t ColType) String() string {
	if t == Numeric {
		return "numeric"
	}
	return "categorical"
}

// Column is a single named column. For Numeric columns Floats holds
// the values; for Categorical columns Strings does. Missing marks
// cells that had no value in the source; transformed frames have no
// missing cells.
type Column struct {
	Name    string
	Type    ColType
	Floats  []float64
	Strings []string
	Missing []bool
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	if c.Type == Numeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// IsMissing reports whether the cell at row i has no value.
func (c *Column) IsMissing(i int) bool {
	return c.Missing != nil && c.Missing[i]
}

// ValidFloats returns the non-missing numeric values.
func (c *Column) ValidFloats() []float64 {
	out := make([]float64, 0, len(c.Floats))
	for i, v := range c.Floats {
		if !c.IsMissing(i) {
			out = append(out, v)
		}
	}
	return out
}

// StringAt returns the stringified value at row i ("" when missing).
func (c *Column) StringAt(i int) string {
	if c.IsMissing(i) {
		return ""
	}
	if c.Type == Numeric {
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	}
	return c.Strings[i]
}

// DistinctStrings returns the distinct non-missing values in
// first-seen row order.
func (c *Column) DistinctStrings() []string {
	seen := make(map[string]struct{})
	var out []string
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			continue
		}
		s := c.StringAt(i)
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// UniqueCount returns the number of distinct non-missing values.
func (c *Column) UniqueCount() int { return len(c.DistinctStrings()) }

// ValueCounts returns occurrence counts keyed by stringified value.
func (c *Column) ValueCounts() map[string]int {
	counts := make(map[string]int)
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			continue
		}
		counts[c.StringAt(i)]++
	}
	return counts
}

// Frame is an ordered collection of equal-length columns.
type Frame struct {
	cols  []*Column
	index map[string]int
}

// NewFrame builds a frame from columns. All columns must have equal
// length and unique names.
func NewFrame(cols []*Column) (*Frame, error) {
	f := &Frame{index: make(map[string]int, len(cols))}
	n := -1
	for _, c := range cols {
		if n >= 0 && c.Len() != n {
			return nil, errors.Errorf("dataset: column %q has %d rows, want %d", c.Name, c.Len(), n)
		}
		n = c.Len()
		if _, dup := f.index[c.Name]; dup {
			return nil, errors.Errorf("dataset: duplicate column %q", c.Name)
		}
		f.index[c.Name] = len(f.cols)
		f.cols = append(f.cols, c)
	}
	return f, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if len(f.cols) == 0 {
		return 0
	}
	return f.cols[0].Len()
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

// Col returns the named column, or nil if absent.
func (f *Frame) Col(name string) *Column {
	if i, ok := f.index[name]; ok {
		return f.cols[i]
	}
	return nil
}

// Cols returns the columns in order.
func (f *Frame) Cols() []*Column { return f.cols }

// Drop returns a new frame without the named columns. Unknown names
// are ignored. Column data is shared, not copied.
func (f *Frame) Drop(names ...string) *Frame {
	skip := make(map[string]struct{}, len(names))
	for _, n := range names {
		skip[n] = struct{}{}
	}
	out := &Frame{index: make(map[string]int)}
	for _, c := range f.cols {
		if _, ok := skip[c.Name]; ok {
			continue
		}
		out.index[c.Name] = len(out.cols)
		out.cols = append(out.cols, c)
	}
	return out
}

// Select returns a new frame containing the given rows, in order.
func (f *Frame) Select(rows []int) *Frame {
	out := &Frame{index: make(map[string]int, len(f.cols))}
	for _, c := range f.cols {
		nc := &Column{Name: c.Name, Type: c.Type}
		if c.Missing != nil {
			nc.Missing = make([]bool, 0, len(rows))
		}
		if c.Type == Numeric {
			nc.Floats = make([]float64, 0, len(rows))
		} else {
			nc.Strings = make([]string, 0, len(rows))
		}
		for _, i := range rows {
			if c.Type == Numeric {
				nc.Floats = append(nc.Floats, c.Floats[i])
			} else {
				nc.Strings = append(nc.Strings, c.Strings[i])
			}
			if c.Missing != nil {
				nc.Missing = append(nc.Missing, c.Missing[i])
			}
		}
		out.index[nc.Name] = len(out.cols)
		out.cols = append(out.cols, nc)
	}
	return out
}

// Copy returns a deep copy of the frame.
func (f *Frame) Copy() *Frame {
	rows := make([]int, f.Len())
	for i := range rows {
		rows[i] = i
	}
	return f.Select(rows)
}

// Records converts the frame to row-oriented maps for the JSON
// boundary. Missing cells become nil.
func (f *Frame) Records() []map[string]interface{} {
	out := make([]map[string]interface{}, f.Len())
	for i := range out {
		rec := make(map[string]interface{}, len(f.cols))
		for _, c := range f.cols {
			switch {
			case c.IsMissing(i):
				rec[c.Name] = nil
			case c.Type == Numeric:
				rec[c.Name] = c.Floats[i]
			default:
				rec[c.Name] = c.Strings[i]
			}
		}
		out[i] = rec
	}
	return out
}

// FromRecords builds a frame from row-oriented maps, inferring each
// column's type from the realized values: a column is numeric when
// every non-null value is a number (or a numeric string). Column
// order is the sorted union of keys so the result is deterministic.
func FromRecords(recs []map[string]interface{}) (*Frame, error) {
	nameSet := make(map[string]struct{})
	for _, r := range recs {
		for k := range r {
			nameSet[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(nameSet))
	for k := range nameSet {
		names = append(names, k)
	}
	sort.Strings(names)

	cols := make([]*Column, 0, len(names))
	for _, name := range names {
		raw := make([]string, len(recs))
		missing := make([]bool, len(recs))
		for i, r := range recs {
			v, ok := r[name]
			if !ok || v == nil {
				missing[i] = true
				continue
			}
			switch x := v.(type) {
			case float64:
				raw[i] = strconv.FormatFloat(x, 'g', -1, 64)
			case int:
				raw[i] = strconv.Itoa(x)
			case string:
				raw[i] = x
			case bool:
				raw[i] = strconv.FormatBool(x)
			default:
				return nil, errors.Errorf("dataset: unsupported value %T in column %q", v, name)
			}
		}
		cols = append(cols, buildColumn(name, raw, missing))
	}
	return NewFrame(cols)
}

// buildColumn is the single shared type-inference point: raw holds
// stringified cells, missing flags empty ones.
func buildColumn(name string, raw []string, missing []bool) *Column {
	numeric := false
	floats := make([]float64, len(raw))
	allParse := true
	seen := false
	for i, s := range raw {
		if missing[i] {
			continue
		}
		seen = true
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			allParse = false
			break
		}
		floats[i] = v
	}
	numeric = seen && allParse

	c := &Column{Name: name, Missing: missing}
	if numeric {
		c.Type = Numeric
		c.Floats = floats
	} else {
		c.Type = Categorical
		c.Strings = raw
	}
	return c
}
