// Package evaluate scores fitted models against held-out partitions
// and extracts feature-importance signals.
package evaluate

import (
	"math"
	"sort"

	"github.com/tsakane28/notebook/pkg/dataprep"
	"github.com/tsakane28/notebook/pkg/dataset"
	"github.com/tsakane28/notebook/pkg/errs"
	"github.com/tsakane28/notebook/pkg/model"
)

// RegressionMetrics scores a regressor on held-out data.
type RegressionMetrics struct {
	MSE  float64 `json:"mse"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

// ClassificationMetrics scores a classifier, all weighted-average and
// in [0, 1].
type ClassificationMetrics struct {
	Accuracy  float64 `json:"accuracy"`
	F1        float64 `json:"f1_score"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
}

// FeatureWeight is one entry of the importance ranking.
type FeatureWeight struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// Result holds the metric variant matching the model's family plus
// the importance ranking (descending; empty when the model exposes no
// signal).
type Result struct {
	Regression        *RegressionMetrics     `json:"regression,omitempty"`
	Classification    *ClassificationMetrics `json:"classification,omitempty"`
	FeatureImportance []FeatureWeight        `json:"feature_importance"`
}

// Model predicts the held-out partition (encoded features plus the
// target column) and scores the result. Classifier-family models get
// accuracy/f1/precision/recall; anything else mse/rmse/r2.
func Model(m model.Model, test *dataset.Frame, target string) (*Result, error) {
	targetCol := test.Col(target)
	if targetCol == nil {
		return nil, errs.Configurationf("target column %q not found in the test rows", target)
	}
	features := test.Drop(target)
	yTrue := targetCol.Floats
	yPred := m.Predict(dataprep.Matrix(features))
	if len(yPred) != len(yTrue) {
		return nil, errs.Computationf(nil, "prediction count %d does not match %d test rows", len(yPred), len(yTrue))
	}

	out := &Result{FeatureImportance: importance(m, features.Columns())}
	if _, ok := m.(model.Classifier); ok {
		prec, rec, f1 := model.WeightedPrecisionRecallF1(yTrue, yPred)
		out.Classification = &ClassificationMetrics{
			Accuracy:  model.Accuracy(yTrue, yPred),
			F1:        f1,
			Precision: prec,
			Recall:    rec,
		}
		return out, nil
	}
	out.Regression = &RegressionMetrics{
		MSE:  model.MSE(yTrue, yPred),
		RMSE: model.RMSE(yTrue, yPred),
		R2:   model.R2(yTrue, yPred),
	}
	return out, nil
}

// importance prefers a model's native impurity importances and falls
// back to mean absolute linear coefficients; models exposing neither
// yield an empty ranking.
func importance(m model.Model, features []string) []FeatureWeight {
	var weights []float64
	switch v := m.(type) {
	case model.ImportanceProvider:
		weights = v.FeatureImportances()
	case model.CoefProvider:
		coef := v.Coefficients()
		if len(coef) == 0 {
			break
		}
		weights = make([]float64, len(coef[0]))
		for _, row := range coef {
			for j, w := range row {
				weights[j] += math.Abs(w)
			}
		}
		for j := range weights {
			weights[j] /= float64(len(coef))
		}
	}
	if len(weights) != len(features) {
		return []FeatureWeight{}
	}

	out := make([]FeatureWeight, len(features))
	for i, name := range features {
		out[i] = FeatureWeight{Feature: name, Weight: weights[i]}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Weight > out[b].Weight })
	return out
}
