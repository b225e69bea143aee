package trainer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsakane28/notebook/pkg/dataset"
	"github.com/tsakane28/notebook/pkg/errs"
	"github.com/tsakane28/notebook/pkg/model"
)

// Twenty rows with one numeric target, one predictive numeric feature
// and one categorical feature.
func regressionFrame(t *testing.T) *dataset.Frame {
	t.Helper()
	recs := make([]map[string]interface{}, 20)
	for i := range recs {
		recs[i] = map[string]interface{}{
			"x":     float64(i),
			"group": fmt.Sprintf("g%d", i%2),
			"y":     float64(2*i + 1),
		}
	}
	f, err := dataset.FromRecords(recs)
	require.NoError(t, err)
	return f
}

func classificationFrame(t *testing.T) *dataset.Frame {
	t.Helper()
	recs := make([]map[string]interface{}, 20)
	for i := range recs {
		label := "no"
		if i >= 10 {
			label = "yes"
		}
		recs[i] = map[string]interface{}{
			"x":     float64(i),
			"label": label,
		}
	}
	f, err := dataset.FromRecords(recs)
	require.NoError(t, err)
	return f
}

func TestTrainMissingTarget(t *testing.T) {
	f := regressionFrame(t)
	res, err := Train(f, "absent", "regressor", DefaultPreprocessing(), nil)
	require.Error(t, err)
	assert.True(t, errs.IsConfiguration(err))
	assert.Nil(t, res)
}

func TestTrainRegression(t *testing.T) {
	f := regressionFrame(t)
	res, err := Train(f, "y", "regressor", DefaultPreprocessing(), nil)
	require.NoError(t, err)
	assert.Equal(t, TaskRegression, res.Task)
	assert.Equal(t, FamilyLinearRegression, res.Family)
	assert.Nil(t, res.Labels)

	// 20 rows split 16/4 with ceil(20*0.2) test rows.
	assert.Equal(t, 16, res.TrainRows.Len())
	assert.Equal(t, 4, res.TestRows.Len())
	assert.Equal(t, len(res.Features), len(res.TrainRows.Columns())-1,
		"partitions carry the features plus the target")
	assert.Equal(t, []string{"x", "group_g0", "group_g1"}, res.Features)

	_, isClassifier := res.Model.(model.Classifier)
	assert.False(t, isClassifier)
}

func TestTrainClassification(t *testing.T) {
	f := classificationFrame(t)
	res, err := Train(f, "label", "classifier", DefaultPreprocessing(), nil)
	require.NoError(t, err)
	assert.Equal(t, TaskClassification, res.Task)
	assert.Equal(t, FamilyLogisticRegression, res.Family)
	assert.Equal(t, map[string]int{"no": 0, "yes": 1}, res.Labels)

	_, isClassifier := res.Model.(model.Classifier)
	assert.True(t, isClassifier)
}

func TestTrainHintAutoCorrection(t *testing.T) {
	// Numeric target with a classifier hint still trains a regressor.
	res, err := Train(regressionFrame(t), "y", "classifier", DefaultPreprocessing(), nil)
	require.NoError(t, err)
	assert.Equal(t, TaskRegression, res.Task)
	assert.Equal(t, FamilyLinearRegression, res.Family)

	// Categorical target with a regressor hint trains a classifier.
	res, err = Train(classificationFrame(t), "label", "regressor", DefaultPreprocessing(), nil)
	require.NoError(t, err)
	assert.Equal(t, TaskClassification, res.Task)
	_, isClassifier := res.Model.(model.Classifier)
	assert.True(t, isClassifier)
}

func TestTrainPinnedTargetType(t *testing.T) {
	pre := DefaultPreprocessing()
	pre.TargetType = "categorical"
	res, err := Train(regressionFrame(t), "group", "", pre, nil)
	require.NoError(t, err)
	assert.Equal(t, TaskClassification, res.Task)
}

func TestTrainExcludeColumns(t *testing.T) {
	res, err := Train(regressionFrame(t), "y", "random_forest", DefaultPreprocessing(), []string{"group"})
	require.NoError(t, err)
	assert.Equal(t, FamilyRandomForest, res.Family)
	assert.Equal(t, []string{"x"}, res.Features)
}

func TestTrainNoFeaturesLeft(t *testing.T) {
	f, err := dataset.FromRecords([]map[string]interface{}{
		{"y": 1.0}, {"y": 2.0},
	})
	require.NoError(t, err)
	_, err = Train(f, "y", "", DefaultPreprocessing(), nil)
	require.Error(t, err)
	assert.True(t, errs.IsConfiguration(err))
}

func TestTrainDeterministicSplit(t *testing.T) {
	a, err := Train(regressionFrame(t), "y", "", DefaultPreprocessing(), nil)
	require.NoError(t, err)
	b, err := Train(regressionFrame(t), "y", "", DefaultPreprocessing(), nil)
	require.NoError(t, err)
	assert.Equal(t, a.TestRows.Col("y").Floats, b.TestRows.Col("y").Floats)
}

func TestParseFamily(t *testing.T) {
	cases := []struct {
		hint string
		task Task
		want Family
	}{
		{"random_forest", TaskRegression, FamilyRandomForest},
		{"RandomForest", TaskClassification, FamilyRandomForest},
		{"random forest classifier", TaskClassification, FamilyRandomForest},
		{"gradient_boosting", TaskRegression, FamilyGradientBoosting},
		{"GradientBoostingClassifier", TaskClassification, FamilyGradientBoosting},
		{"boosting", TaskRegression, FamilyGradientBoosting},
		{"regressor", TaskRegression, FamilyLinearRegression},
		{"classifier", TaskClassification, FamilyLogisticRegression},
		{"", TaskRegression, FamilyLinearRegression},
		{"", TaskClassification, FamilyLogisticRegression},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseFamily(tc.hint, tc.task), "hint %q", tc.hint)
	}
}

func TestSplitIndices(t *testing.T) {
	train, test := splitIndices(10, TestRatio, SplitSeed)
	assert.Len(t, test, 2)
	assert.Len(t, train, 8)

	seen := make(map[int]bool)
	for _, i := range append(append([]int{}, train...), test...) {
		assert.False(t, seen[i], "index %d appears twice", i)
		seen[i] = true
	}
	assert.Len(t, seen, 10)

	// Ceil rounding: 5 rows at 0.2 still give one test row.
	_, test = splitIndices(5, TestRatio, SplitSeed)
	assert.Len(t, test, 1)
	// And a tiny set never yields an empty test partition.
	_, test = splitIndices(2, TestRatio, SplitSeed)
	assert.Len(t, test, 1)
}
