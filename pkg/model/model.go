// Package model implements the supervised estimators the dashboard
// can train: ordinary least squares, logistic regression, random
// forests and gradient-boosted trees, plus the metrics used to score
// them.
package model

// Model is a generic supervised learning interface.
type Model interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) []float64
}

// Classifier marks models that predict discrete class labels.
type Classifier interface {
	Model
	Classes() []float64
}

// ImportanceProvider exposes impurity-based feature importances,
// aligned with the training feature order and summing to one.
type ImportanceProvider interface {
	FeatureImportances() []float64
}

// CoefProvider exposes linear coefficients, one row per output
// dimension.
type CoefProvider interface {
	Coefficients() [][]float64
}
