package evaluate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsakane28/notebook/pkg/dataset"
	"github.com/tsakane28/notebook/pkg/errs"
	"github.com/tsakane28/notebook/pkg/model"
)

func testFrame(t *testing.T, x, y []float64) *dataset.Frame {
	t.Helper()
	f, err := dataset.NewFrame([]*dataset.Column{
		{Name: "x", Type: dataset.Numeric, Floats: x},
		{Name: "y", Type: dataset.Numeric, Floats: y},
	})
	require.NoError(t, err)
	return f
}

func TestEvaluateRegression(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{1, 3, 5, 7}
	m := model.NewLinearRegression()
	require.NoError(t, m.Fit([][]float64{{0}, {1}, {2}, {3}}, y))

	res, err := Model(m, testFrame(t, x, y), "y")
	require.NoError(t, err)
	require.NotNil(t, res.Regression)
	assert.Nil(t, res.Classification)
	assert.InDelta(t, 0.0, res.Regression.MSE, 1e-9)
	assert.InDelta(t, math.Sqrt(res.Regression.MSE), res.Regression.RMSE, 1e-12)
	assert.InDelta(t, 1.0, res.Regression.R2, 1e-9)

	// LinearRegression has no impurity importances, so the ranking
	// falls back to absolute coefficients.
	require.Len(t, res.FeatureImportance, 1)
	assert.Equal(t, "x", res.FeatureImportance[0].Feature)
	assert.InDelta(t, 2.0, res.FeatureImportance[0].Weight, 1e-9)
}

func TestEvaluateClassification(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {10}, {11}, {12}}
	y := []float64{0, 0, 0, 1, 1, 1}
	m := model.NewRandomForestClassifier()
	m.NEstimators = 15
	require.NoError(t, m.Fit(X, y))

	x := []float64{2, 11}
	res, err := Model(m, testFrame(t, x, []float64{0, 1}), "y")
	require.NoError(t, err)
	require.NotNil(t, res.Classification)
	assert.Nil(t, res.Regression)
	c := res.Classification
	for _, v := range []float64{c.Accuracy, c.F1, c.Precision, c.Recall} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.Equal(t, 1.0, c.Accuracy)
}

func TestImportanceSortedDescending(t *testing.T) {
	// The second feature is constant, so it can never split and all
	// importance mass lands on the first.
	X := [][]float64{
		{1, 5}, {2, 5}, {3, 5}, {10, 5}, {11, 5}, {12, 5},
	}
	y := []float64{0, 0, 0, 1, 1, 1}
	m := model.NewRandomForestClassifier()
	m.NEstimators = 15
	require.NoError(t, m.Fit(X, y))

	f, err := dataset.NewFrame([]*dataset.Column{
		{Name: "a", Type: dataset.Numeric, Floats: []float64{2, 11}},
		{Name: "b", Type: dataset.Numeric, Floats: []float64{0.5, 0.5}},
		{Name: "y", Type: dataset.Numeric, Floats: []float64{0, 1}},
	})
	require.NoError(t, err)

	res, err := Model(m, f, "y")
	require.NoError(t, err)
	require.Len(t, res.FeatureImportance, 2)
	assert.GreaterOrEqual(t, res.FeatureImportance[0].Weight, res.FeatureImportance[1].Weight)
	assert.Equal(t, "a", res.FeatureImportance[0].Feature,
		"the separating feature carries the weight")
}

type opaqueModel struct{}

func (opaqueModel) Fit(X [][]float64, y []float64) error { return nil }
func (opaqueModel) Predict(X [][]float64) []float64      { return make([]float64, len(X)) }

func TestImportanceEmptyForOpaqueModel(t *testing.T) {
	res, err := Model(opaqueModel{}, testFrame(t, []float64{1, 2}, []float64{0, 0}), "y")
	require.NoError(t, err)
	assert.Empty(t, res.FeatureImportance)
	assert.NotNil(t, res.FeatureImportance, "serializes as [] rather than null")
}

func TestEvaluateMissingTarget(t *testing.T) {
	m := model.NewLinearRegression()
	_, err := Model(m, testFrame(t, []float64{1}, []float64{1}), "absent")
	require.Error(t, err)
	assert.True(t, errs.IsConfiguration(err))
}
