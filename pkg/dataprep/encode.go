package dataprep

import (
	"math"
	"sort"

	"github.com/tsakane28/notebook/pkg/dataset"
)

// EncodeFeatures converts a feature frame into a fully numeric frame.
// Numeric columns keep their original order; each categorical column
// is then expanded, in column order, either into one binary column
// per distinct value ("col_value", values sorted) when oneHot is set,
// or into a single integer-labelled column otherwise. The result's
// column order is the deterministic post-encoding feature-name list.
func EncodeFeatures(f *dataset.Frame, oneHot bool) (*dataset.Frame, error) {
	var cols []*dataset.Column
	n := f.Len()

	for _, c := range f.Cols() {
		if c.Type == dataset.Numeric {
			cols = append(cols, numericCopy(c))
		}
	}
	for _, c := range f.Cols() {
		if c.Type != dataset.Categorical {
			continue
		}
		if oneHot {
			cols = append(cols, oneHotColumns(c, n)...)
		} else {
			cols = append(cols, labelColumn(c, n))
		}
	}
	return dataset.NewFrame(cols)
}

func numericCopy(c *dataset.Column) *dataset.Column {
	floats := make([]float64, len(c.Floats))
	copy(floats, c.Floats)
	for i := range floats {
		if c.IsMissing(i) {
			floats[i] = math.NaN()
		}
	}
	return &dataset.Column{Name: c.Name, Type: dataset.Numeric, Floats: floats}
}

// oneHotColumns expands a categorical column into one 0/1 column per
// distinct value. Missing cells leave every indicator at zero.
func oneHotColumns(c *dataset.Column, n int) []*dataset.Column {
	values := c.DistinctStrings()
	sort.Strings(values)

	out := make([]*dataset.Column, len(values))
	index := make(map[string]int, len(values))
	for j, v := range values {
		index[v] = j
		out[j] = &dataset.Column{
			Name:   c.Name + "_" + v,
			Type:   dataset.Numeric,
			Floats: make([]float64, n),
		}
	}
	for i := 0; i < n; i++ {
		if c.IsMissing(i) {
			continue
		}
		out[index[c.StringAt(i)]].Floats[i] = 1
	}
	return out
}

// labelColumn encodes a categorical column as first-seen integer
// labels. Missing cells become NaN.
func labelColumn(c *dataset.Column, n int) *dataset.Column {
	labels := make(map[string]int)
	floats := make([]float64, n)
	for i := 0; i < n; i++ {
		if c.IsMissing(i) {
			floats[i] = math.NaN()
			continue
		}
		v := c.StringAt(i)
		if _, ok := labels[v]; !ok {
			labels[v] = len(labels)
		}
		floats[i] = float64(labels[v])
	}
	return &dataset.Column{Name: c.Name, Type: dataset.Numeric, Floats: floats}
}

// Matrix converts a fully numeric frame into row-major samples.
func Matrix(f *dataset.Frame) [][]float64 {
	cols := f.Cols()
	X := make([][]float64, f.Len())
	for i := range X {
		row := make([]float64, len(cols))
		for j, c := range cols {
			row[j] = c.Floats[i]
		}
		X[i] = row
	}
	return X
}
