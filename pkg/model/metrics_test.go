package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMSEAndRMSE(t *testing.T) {
	yTrue := []float64{1, 2, 3}
	yPred := []float64{1, 2, 5}
	mse := MSE(yTrue, yPred)
	assert.InDelta(t, 4.0/3.0, mse, 1e-9)
	assert.InDelta(t, math.Sqrt(mse), RMSE(yTrue, yPred), 1e-12)
	assert.Equal(t, 0.0, MSE(nil, nil))
}

func TestR2(t *testing.T) {
	yTrue := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.0, R2(yTrue, yTrue))
	// Predicting the mean scores exactly zero.
	mean := []float64{2.5, 2.5, 2.5, 2.5}
	assert.InDelta(t, 0.0, R2(yTrue, mean), 1e-9)
	// A constant target has no variance to explain.
	assert.Equal(t, 0.0, R2([]float64{5, 5}, []float64{4, 6}))
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0.75, Accuracy([]float64{0, 1, 1, 0}, []float64{0, 1, 0, 0}))
	assert.Equal(t, 0.0, Accuracy(nil, nil))
}

func TestWeightedPrecisionRecallF1(t *testing.T) {
	yTrue := []float64{0, 0, 1, 1, 2, 2}
	prec, rec, f1 := WeightedPrecisionRecallF1(yTrue, yTrue)
	assert.Equal(t, 1.0, prec)
	assert.Equal(t, 1.0, rec)
	assert.Equal(t, 1.0, f1)

	yPred := []float64{0, 1, 1, 1, 2, 0}
	prec, rec, f1 = WeightedPrecisionRecallF1(yTrue, yPred)
	for _, v := range []float64{prec, rec, f1} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestWeightedMetricsZeroDivision(t *testing.T) {
	// Class 1 is never predicted, class 0 is never true. Both sides
	// would divide by zero; the contribution is zero instead.
	prec, rec, f1 := WeightedPrecisionRecallF1([]float64{1, 1}, []float64{0, 0})
	assert.Equal(t, 0.0, prec)
	assert.Equal(t, 0.0, rec)
	assert.Equal(t, 0.0, f1)
}
