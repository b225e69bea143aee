// Package trainer builds a feature/target matrix from a row set,
// splits it, fits a model of the requested family and returns the
// fitted model together with the partitions it was fit on.
package trainer

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/tsakane28/notebook/pkg/dataprep"
	"github.com/tsakane28/notebook/pkg/dataset"
	"github.com/tsakane28/notebook/pkg/errs"
	"github.com/tsakane28/notebook/pkg/model"
)

// Preprocessing controls the feature pipeline. TargetType may pin the
// task to "numeric" or "categorical"; when empty the target column's
// realized type decides.
type Preprocessing struct {
	HandleMissing     bool   `json:"handle_missing"`
	EncodeCategorical bool   `json:"encode_categorical"`
	TargetType        string `json:"target_type,omitempty"`
}

// DefaultPreprocessing imputes missing values and one-hot encodes
// categorical features.
func DefaultPreprocessing() Preprocessing {
	return Preprocessing{HandleMissing: true, EncodeCategorical: true}
}

// Result is a model artifact: the fitted estimator, the resolved
// family and task, the post-encoding feature-name list any future
// scoring must reuse, and the partitions the model was fit on (encoded
// features plus the target column).
type Result struct {
	Model     model.Model
	Family    Family
	Task      Task
	Features  []string
	TrainRows *dataset.Frame
	TestRows  *dataset.Frame
	// Labels maps original target values to their encoded integers
	// for classification on a non-numeric target; nil otherwise.
	Labels map[string]int
}

// Train fits a model against the target column of f. The task is
// resolved from the target's realized type (or the pinned
// preprocessing target type); a model hint that contradicts the
// resolved task is reinterpreted rather than rejected, preserving the
// caller-facing auto-correction the dashboard has always had.
func Train(f *dataset.Frame, target, modelHint string, pre Preprocessing, exclude []string) (*Result, error) {
	targetCol := f.Col(target)
	if targetCol == nil {
		return nil, errs.Configurationf("target column %q not found in the dataset", target)
	}

	task := resolveTask(targetCol, pre.TargetType)
	if implied, ok := hintTask(modelHint); ok && implied != task {
		logrus.WithFields(logrus.Fields{
			"hint": modelHint,
			"task": task.String(),
		}).Warn("trainer: model hint contradicts target type, reinterpreting")
	}
	family := ParseFamily(modelHint, task)

	y, labels, err := buildTarget(targetCol, task)
	if err != nil {
		return nil, err
	}

	feats := f.Drop(append([]string{target}, exclude...)...)
	if len(feats.Cols()) == 0 {
		return nil, errs.Configurationf("no feature columns remain after excluding %q", target)
	}
	if pre.HandleMissing {
		feats = feats.Copy()
		dataprep.Impute(feats)
	}
	encoded, err := dataprep.EncodeFeatures(feats, pre.EncodeCategorical)
	if err != nil {
		return nil, errs.Computationf(err, "could not encode features")
	}

	// The partitions carry the encoded features plus the (encoded)
	// target so the evaluator can score without re-deriving anything.
	cols := append([]*dataset.Column{}, encoded.Cols()...)
	cols = append(cols, &dataset.Column{Name: target, Type: dataset.Numeric, Floats: y})
	full, err := dataset.NewFrame(cols)
	if err != nil {
		return nil, errs.Configurationf("target column name collides with an encoded feature: %v", err)
	}

	trainIdx, testIdx := splitIndices(full.Len(), TestRatio, SplitSeed)
	trainRows := full.Select(trainIdx)
	testRows := full.Select(testIdx)

	m := newModel(family, task)
	X := dataprep.Matrix(trainRows.Drop(target))
	if err := m.Fit(X, trainRows.Col(target).Floats); err != nil {
		return nil, errs.Computationf(err, "model fit failed")
	}

	return &Result{
		Model:     m,
		Family:    family,
		Task:      task,
		Features:  encoded.Columns(),
		TrainRows: trainRows,
		TestRows:  testRows,
		Labels:    labels,
	}, nil
}

func resolveTask(target *dataset.Column, pinned string) Task {
	switch pinned {
	case "numeric":
		return TaskRegression
	case "categorical":
		return TaskClassification
	}
	if target.Type == dataset.Numeric {
		return TaskRegression
	}
	return TaskClassification
}

// buildTarget produces the numeric target vector. Classification on a
// non-numeric column label-encodes values to contiguous integers in
// first-seen order; the mapping is returned so callers can decode
// predictions.
func buildTarget(c *dataset.Column, task Task) ([]float64, map[string]int, error) {
	n := c.Len()
	y := make([]float64, n)

	if task == TaskRegression {
		for i := 0; i < n; i++ {
			if c.IsMissing(i) {
				return nil, nil, errs.Computationf(nil, "target column %q contains missing values", c.Name)
			}
			if c.Type == dataset.Numeric {
				y[i] = c.Floats[i]
				continue
			}
			v, err := strconv.ParseFloat(c.Strings[i], 64)
			if err != nil {
				return nil, nil, errs.Computationf(err, "target column %q is not convertible to numeric", c.Name)
			}
			y[i] = v
		}
		return y, nil, nil
	}

	if c.Type == dataset.Numeric {
		for i := 0; i < n; i++ {
			if c.IsMissing(i) {
				return nil, nil, errs.Computationf(nil, "target column %q contains missing values", c.Name)
			}
			y[i] = c.Floats[i]
		}
		return y, nil, nil
	}

	labels := make(map[string]int)
	for i := 0; i < n; i++ {
		if c.IsMissing(i) {
			return nil, nil, errs.Computationf(nil, "target column %q contains missing values", c.Name)
		}
		v := c.Strings[i]
		if _, ok := labels[v]; !ok {
			labels[v] = len(labels)
		}
		y[i] = float64(labels[v])
	}
	return y, labels, nil
}

func newModel(family Family, task Task) model.Model {
	switch family {
	case FamilyRandomForest:
		if task == TaskClassification {
			return model.NewRandomForestClassifier()
		}
		return model.NewRandomForestRegressor()
	case FamilyGradientBoosting:
		if task == TaskClassification {
			return model.NewGradientBoostingClassifier()
		}
		return model.NewGradientBoostingRegressor()
	case FamilyLogisticRegression:
		return model.NewLogisticRegression()
	default:
		return model.NewLinearRegression()
	}
}
