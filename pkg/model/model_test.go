package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A line with no noise; OLS must recover it exactly.
func TestLinearRegressionRecoversLine(t *testing.T) {
	X := [][]float64{{0}, {1}, {2}, {3}}
	y := []float64{1, 3, 5, 7} // y = 2x + 1
	m := NewLinearRegression()
	require.NoError(t, m.Fit(X, y))
	assert.InDelta(t, 2.0, m.W[0], 1e-9)
	assert.InDelta(t, 1.0, m.B, 1e-9)

	pred := m.Predict([][]float64{{10}})
	assert.InDelta(t, 21.0, pred[0], 1e-9)

	coef := m.Coefficients()
	require.Len(t, coef, 1)
	assert.Equal(t, m.W, coef[0])
}

func TestLinearRegressionErrors(t *testing.T) {
	m := NewLinearRegression()
	assert.Error(t, m.Fit(nil, nil))
	assert.Error(t, m.Fit([][]float64{{1}}, []float64{1, 2}))
}

func TestLogisticRegressionBinary(t *testing.T) {
	X := [][]float64{{-3}, {-2}, {-1}, {1}, {2}, {3}}
	y := []float64{0, 0, 0, 1, 1, 1}
	m := NewLogisticRegression()
	require.NoError(t, m.Fit(X, y))
	assert.Equal(t, []float64{0, 1}, m.Classes())
	assert.Equal(t, y, m.Predict(X), "separable data is classified perfectly")
	assert.Equal(t, []float64{0, 1}, m.Predict([][]float64{{-10}, {10}}))
}

func TestLogisticRegressionMultiClass(t *testing.T) {
	X := [][]float64{{-5}, {-4}, {0}, {1}, {5}, {6}}
	y := []float64{0, 0, 1, 1, 2, 2}
	m := NewLogisticRegression()
	require.NoError(t, m.Fit(X, y))
	assert.Equal(t, []float64{0, 1, 2}, m.Classes())
	assert.Equal(t, y, m.Predict(X))
	assert.Len(t, m.Coefficients(), 3, "one weight row per class")
}

func TestLogisticRegressionNeedsTwoClasses(t *testing.T) {
	m := NewLogisticRegression()
	assert.Error(t, m.Fit([][]float64{{1}, {2}}, []float64{1, 1}))
}

func TestClassificationTree(t *testing.T) {
	X := [][]float64{{1, 0}, {2, 0}, {3, 0}, {10, 0}, {11, 0}, {12, 0}}
	y := []float64{0, 0, 0, 1, 1, 1}
	tree := NewClassificationTree()
	require.NoError(t, tree.Fit(X, y))
	assert.Equal(t, y, tree.Predict(X))
	assert.Equal(t, []float64{0, 1}, tree.Classes())

	imp := tree.FeatureImportances()
	require.Len(t, imp, 2)
	// All signal is in the first feature.
	assert.InDelta(t, 1.0, imp[0], 1e-9)
	assert.Equal(t, 0.0, imp[1])
}

func TestRegressionTreeDepthLimit(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}}
	y := []float64{1, 2, 3, 4}
	tree := NewRegressionTree(WithMaxDepth(1))
	require.NoError(t, tree.Fit(X, y))
	// Depth 1 means one split: only two distinct leaf values.
	pred := tree.Predict(X)
	distinct := map[float64]struct{}{}
	for _, v := range pred {
		distinct[v] = struct{}{}
	}
	assert.LessOrEqual(t, len(distinct), 2)
}

func TestTreeRoutesMissingRight(t *testing.T) {
	X := [][]float64{{1}, {2}, {10}, {11}}
	y := []float64{0, 0, 1, 1}
	tree := NewClassificationTree()
	require.NoError(t, tree.Fit(X, y))
	pred := tree.Predict([][]float64{{math.NaN()}})
	assert.Equal(t, 1.0, pred[0], "NaN falls to the right branch")
}

func TestRandomForestClassifier(t *testing.T) {
	X := [][]float64{{1, 5}, {2, 4}, {3, 6}, {10, 5}, {11, 4}, {12, 6}}
	y := []float64{0, 0, 0, 1, 1, 1}
	f := NewRandomForestClassifier()
	f.NEstimators = 25
	require.NoError(t, f.Fit(X, y))
	assert.Equal(t, y, f.Predict(X))
	assert.Equal(t, []float64{0, 1}, f.Classes())

	imp := f.FeatureImportances()
	require.Len(t, imp, 2)
	sum := imp[0] + imp[1]
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestRandomForestReproducible(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {10}, {11}, {12}}
	y := []float64{1, 2, 3, 10, 11, 12}
	a := NewRandomForestRegressor()
	a.NEstimators = 10
	b := NewRandomForestRegressor()
	b.NEstimators = 10
	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))
	assert.Equal(t, a.Predict(X), b.Predict(X), "same seed, same forest")
}

func TestGradientBoostingRegressor(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}, {5}, {6}}
	y := []float64{2, 4, 6, 8, 10, 12}
	g := NewGradientBoostingRegressor()
	require.NoError(t, g.Fit(X, y))
	pred := g.Predict(X)
	for i := range y {
		assert.InDelta(t, y[i], pred[i], 0.5)
	}
	imp := g.FeatureImportances()
	require.Len(t, imp, 1)
	assert.InDelta(t, 1.0, imp[0], 1e-9)
}

func TestGradientBoostingClassifier(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {10}, {11}, {12}}
	y := []float64{0, 0, 0, 1, 1, 1}
	g := NewGradientBoostingClassifier()
	g.NEstimators = 20
	require.NoError(t, g.Fit(X, y))
	assert.Equal(t, y, g.Predict(X))
	assert.Equal(t, []float64{0, 1}, g.Classes())
}

func TestGradientBoostingMultiClass(t *testing.T) {
	X := [][]float64{{-5}, {-4}, {0}, {1}, {5}, {6}}
	y := []float64{0, 0, 1, 1, 2, 2}
	g := NewGradientBoostingClassifier()
	g.NEstimators = 20
	require.NoError(t, g.Fit(X, y))
	assert.Equal(t, y, g.Predict(X))
}
