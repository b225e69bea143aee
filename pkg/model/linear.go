package model

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// LinearRegression fits ordinary least squares via QR decomposition.
type LinearRegression struct {
	W []float64 // weights, one per feature
	B float64   // intercept
}

func NewLinearRegression() *LinearRegression { return &LinearRegression{} }

// Fit solves min ||Xw + b - y|| exactly. Rank-deficient designs still
// yield a usable least-squares solution.
func (m *LinearRegression) Fit(X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 {
		return errors.New("linear: empty X")
	}
	if len(y) != n {
		return errors.New("linear: X and y length mismatch")
	}
	p := len(X[0])

	// Design matrix with a leading intercept column.
	a := mat.NewDense(n, p+1, nil)
	for i, row := range X {
		if len(row) != p {
			return errors.New("linear: inconsistent number of features in X rows")
		}
		a.Set(i, 0, 1)
		for j, v := range row {
			a.Set(i, j+1, v)
		}
	}
	b := mat.NewDense(n, 1, y)

	var qr mat.QR
	qr.Factorize(a)
	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, b); err != nil {
		// A Condition error still carries a valid least-squares
		// solution; anything else is fatal.
		if _, ok := err.(mat.Condition); !ok {
			return err
		}
	}

	m.B = beta.At(0, 0)
	m.W = make([]float64, p)
	for j := 0; j < p; j++ {
		m.W[j] = beta.At(j+1, 0)
	}
	return nil
}

// Predict returns predictions for rows in X.
func (m *LinearRegression) Predict(X [][]float64) []float64 {
	pred := make([]float64, len(X))
	for i, row := range X {
		sum := m.B
		for j, v := range row {
			sum += m.W[j] * v
		}
		pred[i] = sum
	}
	return pred
}

// Coefficients returns the fitted weights as a single output row.
func (m *LinearRegression) Coefficients() [][]float64 {
	return [][]float64{m.W}
}
