package model

import (
	"encoding"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, src encoding.BinaryMarshaler, dst encoding.BinaryUnmarshaler) {
	t.Helper()
	data, err := src.MarshalBinary()
	require.NoError(t, err)
	require.NoError(t, dst.UnmarshalBinary(data))
}

func TestTreeRoundTrip(t *testing.T) {
	X := [][]float64{{1}, {2}, {10}, {11}}
	y := []float64{0, 0, 1, 1}
	tree := NewClassificationTree()
	require.NoError(t, tree.Fit(X, y))

	var restored DecisionTree
	roundTrip(t, tree, &restored)
	assert.Equal(t, tree.Predict(X), restored.Predict(X))
	assert.Equal(t, tree.Classes(), restored.Classes())
	assert.Equal(t, tree.FeatureImportances(), restored.FeatureImportances())
}

func TestForestRoundTrip(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {10}, {11}, {12}}
	y := []float64{0, 0, 0, 1, 1, 1}
	f := NewRandomForestClassifier()
	f.NEstimators = 10
	require.NoError(t, f.Fit(X, y))

	var restored RandomForestClassifier
	roundTrip(t, f, &restored)
	assert.Equal(t, f.Predict(X), restored.Predict(X))
	assert.Equal(t, f.Classes(), restored.Classes())
}

func TestBoostingRoundTrip(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}}
	y := []float64{2, 4, 6, 8}
	g := NewGradientBoostingRegressor()
	g.NEstimators = 20
	require.NoError(t, g.Fit(X, y))

	var restored GradientBoostingRegressor
	roundTrip(t, g, &restored)
	assert.Equal(t, g.Predict(X), restored.Predict(X))
}

func TestBoostingClassifierRoundTrip(t *testing.T) {
	X := [][]float64{{-5}, {-4}, {0}, {1}, {5}, {6}}
	y := []float64{0, 0, 1, 1, 2, 2}
	g := NewGradientBoostingClassifier()
	g.NEstimators = 10
	require.NoError(t, g.Fit(X, y))

	var restored GradientBoostingClassifier
	roundTrip(t, g, &restored)
	assert.Equal(t, g.Predict(X), restored.Predict(X))
	assert.Equal(t, g.Classes(), restored.Classes())
}

func TestLogisticRoundTrip(t *testing.T) {
	X := [][]float64{{-3}, {-2}, {2}, {3}}
	y := []float64{0, 0, 1, 1}
	m := NewLogisticRegression()
	require.NoError(t, m.Fit(X, y))

	var restored LogisticRegression
	roundTrip(t, m, &restored)
	// The restored scaler must reproduce the standardized inputs, so
	// predictions match bit for bit.
	assert.Equal(t, m.Predict(X), restored.Predict(X))
	assert.Equal(t, m.Classes(), restored.Classes())
}
