package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSVAndInference(t *testing.T) {
	path := writeCSV(t, "age,city,score\n25,Harare,1.5\n30,Bulawayo,2.5\n,Harare,NaN\n")
	raw, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "city", "score"}, raw.Header)
	require.Len(t, raw.Rows, 3)

	f, err := raw.Frame()
	require.NoError(t, err)
	assert.Equal(t, 3, f.Len())

	age := f.Col("age")
	require.NotNil(t, age)
	assert.Equal(t, Numeric, age.Type)
	assert.True(t, age.IsMissing(2))
	assert.Equal(t, []float64{25, 30}, age.ValidFloats())

	city := f.Col("city")
	require.NotNil(t, city)
	assert.Equal(t, Categorical, city.Type)
	assert.Equal(t, 2, city.UniqueCount())

	score := f.Col("score")
	assert.Equal(t, Numeric, score.Type)
	assert.True(t, score.IsMissing(2), "NaN marker counts as missing")
}

func TestNumericStringsStayNumeric(t *testing.T) {
	path := writeCSV(t, "a,b\n1,x\n2.5,y\n-3e2,z\n")
	raw, err := ReadCSV(path)
	require.NoError(t, err)
	f, err := raw.Frame()
	require.NoError(t, err)
	assert.Equal(t, Numeric, f.Col("a").Type)
	assert.Equal(t, Categorical, f.Col("b").Type)
}

func TestFromRecords(t *testing.T) {
	recs := []map[string]interface{}{
		{"age": 25.0, "city": "Harare"},
		{"age": nil, "city": "Gweru"},
		{"age": 40.0, "city": "Harare"},
	}
	f, err := FromRecords(recs)
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "city"}, f.Columns())
	assert.Equal(t, Numeric, f.Col("age").Type)
	assert.Equal(t, Categorical, f.Col("city").Type)
	assert.True(t, f.Col("age").IsMissing(1))

	out := f.Records()
	require.Len(t, out, 3)
	assert.Equal(t, 25.0, out[0]["age"])
	assert.Nil(t, out[1]["age"])
	assert.Equal(t, "Gweru", out[1]["city"])
}

func TestDropSelectCopy(t *testing.T) {
	recs := []map[string]interface{}{
		{"a": 1.0, "b": "x", "c": 2.0},
		{"a": 3.0, "b": "y", "c": 4.0},
	}
	f, err := FromRecords(recs)
	require.NoError(t, err)

	dropped := f.Drop("b", "missing-column")
	assert.Equal(t, []string{"a", "c"}, dropped.Columns())

	sel := f.Select([]int{1})
	assert.Equal(t, 1, sel.Len())
	assert.Equal(t, 3.0, sel.Col("a").Floats[0])

	cp := f.Copy()
	cp.Col("a").Floats[0] = 99
	assert.Equal(t, 1.0, f.Col("a").Floats[0], "copy must not alias the original")
}

func TestNewFrameRejectsDuplicates(t *testing.T) {
	_, err := NewFrame([]*Column{
		{Name: "a", Type: Numeric, Floats: []float64{1}},
		{Name: "a", Type: Numeric, Floats: []float64{2}},
	})
	assert.Error(t, err)
}

func TestValueCounts(t *testing.T) {
	f, err := FromRecords([]map[string]interface{}{
		{"c": "x"}, {"c": "y"}, {"c": "x"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 2, "y": 1}, f.Col("c").ValueCounts())
	assert.Equal(t, []string{"x", "y"}, f.Col("c").DistinctStrings())
}
