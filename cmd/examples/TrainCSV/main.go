// Command TrainCSV runs the full pipeline on a CSV file from the
// command line: validate, transform, profile, train, evaluate.
package main

import (
	"fmt"
	"os"

	"github.com/tsakane28/notebook/pkg/dataprep"
	"github.com/tsakane28/notebook/pkg/evaluate"
	"github.com/tsakane28/notebook/pkg/profile"
	"github.com/tsakane28/notebook/pkg/trainer"
	"github.com/tsakane28/notebook/pkg/validate"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <csv-file> <target-column> [model-type]\n", os.Args[0])
		os.Exit(2)
	}
	path, target := os.Args[1], os.Args[2]
	modelType := "classifier"
	if len(os.Args) > 3 {
		modelType = os.Args[3]
	}

	if result := validate.CSV(path); !result.Valid {
		fmt.Fprintln(os.Stderr, "validation failed:", result.Message)
		os.Exit(1)
	}

	frame, err := dataprep.TransformWith(path, dataprep.Options{})
	if err != nil {
		fmt.Fprintln(os.Stderr, "transform failed:", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d rows, %d columns\n", frame.Len(), len(frame.Columns()))

	report := profile.Analyze(frame)
	for name, col := range report.Stats {
		if col.Numeric != nil {
			fmt.Printf("  %s: numeric mean=%.3f std=%.3f\n", name, col.Numeric.Mean, col.Numeric.Std)
		} else {
			fmt.Printf("  %s: categorical %d distinct\n", name, col.Categorical.UniqueValues)
		}
	}

	result, err := trainer.Train(frame, target, modelType, trainer.DefaultPreprocessing(), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "training failed:", err)
		os.Exit(1)
	}
	fmt.Printf("Trained %s (%s) on %d features\n", result.Family, result.Task, len(result.Features))

	scores, err := evaluate.Model(result.Model, result.TestRows, target)
	if err != nil {
		fmt.Fprintln(os.Stderr, "evaluation failed:", err)
		os.Exit(1)
	}
	if scores.Classification != nil {
		c := scores.Classification
		fmt.Printf("accuracy=%.4f f1=%.4f precision=%.4f recall=%.4f\n", c.Accuracy, c.F1, c.Precision, c.Recall)
	} else {
		r := scores.Regression
		fmt.Printf("mse=%.4f rmse=%.4f r2=%.4f\n", r.MSE, r.RMSE, r.R2)
	}
	for i, fw := range scores.FeatureImportance {
		if i >= 5 {
			break
		}
		fmt.Printf("  importance %s = %.4f\n", fw.Feature, fw.Weight)
	}
}
