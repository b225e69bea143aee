package trainer

import "strings"

// Task is the resolved learning task, derived from the target
// column's realized value type.
type Task int

const (
	TaskRegression Task = iota
	TaskClassification
)

func (t Task) String() string {
	if t == TaskRegression {
		return "regression"
	}
	return "classification"
}

// Family is the closed enumeration of supported model families. The
// free-form hints accepted by the API are folded into it exactly once,
// by ParseFamily.
type Family int

const (
	FamilyLinearRegression Family = iota
	FamilyLogisticRegression
	FamilyRandomForest
	FamilyGradientBoosting
)

func (f Family) String() string {
	switch f {
	case FamilyLinearRegression:
		return "linear_regression"
	case FamilyLogisticRegression:
		return "logistic_regression"
	case FamilyRandomForest:
		return "random_forest"
	default:
		return "gradient_boosting"
	}
}

// ParseFamily resolves a free-form model hint against the resolved
// task. Matching is case-insensitive and ignores separators, so
// "RandomForest", "random_forest" and "random forest" all agree.
// Random forest and gradient boosting keywords take precedence;
// anything else falls back to the task's default linear or logistic
// model.
func ParseFamily(hint string, task Task) Family {
	h := strings.ToLower(hint)
	h = strings.NewReplacer("_", "", "-", "", " ", "").Replace(h)
	switch {
	case strings.Contains(h, "randomforest"):
		return FamilyRandomForest
	case strings.Contains(h, "gradient"), strings.Contains(h, "boosting"):
		return FamilyGradientBoosting
	case task == TaskRegression:
		return FamilyLinearRegression
	default:
		return FamilyLogisticRegression
	}
}

// hintTask extracts the task a hint implies, if any, so a mismatch
// with the resolved task can be surfaced as a warning.
func hintTask(hint string) (Task, bool) {
	h := strings.ToLower(hint)
	switch {
	case strings.Contains(h, "regress"):
		return TaskRegression, true
	case strings.Contains(h, "classif"):
		return TaskClassification, true
	}
	return 0, false
}
