// Package dataprep turns raw uploads into analysis-ready frames and
// builds the numeric design matrices the trainer consumes.
package dataprep

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/tsakane28/notebook/pkg/dataset"
)

// DefaultEncodersDir is where value->integer encoder maps are
// persisted for potential reuse.
const DefaultEncodersDir = "data/encoders"

// Options controls the transform side effects.
type Options struct {
	SaveEncoders bool
	EncodersDir  string
}

// Transform reads a delimited table and returns a clean frame: rows
// that are entirely null are dropped, numeric nulls are filled with
// the column median, and non-numeric nulls with "Unknown". Encoder
// maps for low-cardinality categorical columns are persisted
// best-effort.
func Transform(path string) (*dataset.Frame, error) {
	return TransformWith(path, Options{SaveEncoders: true, EncodersDir: DefaultEncodersDir})
}

// TransformWith is Transform with explicit side-effect options.
func TransformWith(path string, opts Options) (*dataset.Frame, error) {
	raw, err := dataset.ReadCSV(path)
	if err != nil {
		return nil, err
	}
	dropNullRows(raw)

	frame, err := raw.Frame()
	if err != nil {
		return nil, err
	}
	Impute(frame)

	if opts.SaveEncoders {
		encoders := BuildEncoders(frame, CategoricalEligible(frame))
		if err := saveEncoders(opts.EncodersDir, encoders); err != nil {
			// Best-effort side effect: a failed save never fails the
			// transform itself.
			logrus.WithError(err).Warn("dataprep: could not persist encoders")
		}
	}
	return frame, nil
}

// dropNullRows removes records whose every cell is null.
func dropNullRows(raw *dataset.Raw) {
	kept := raw.Rows[:0]
	for _, row := range raw.Rows {
		allNull := true
		for _, cell := range row {
			if !dataset.IsMissingValue(cell) {
				allNull = false
				break
			}
		}
		if !allNull {
			kept = append(kept, row)
		}
	}
	raw.Rows = kept
}

// CategoricalEligible lists the categorical columns with fewer
// distinct values than the filter cardinality cap, in column order.
func CategoricalEligible(f *dataset.Frame) []string {
	var out []string
	for _, c := range f.Cols() {
		if c.Type == dataset.Categorical && c.UniqueCount() < dataset.MaxFilterCardinality {
			out = append(out, c.Name)
		}
	}
	return out
}

// BuildEncoders maps each listed column's distinct values to
// contiguous integers in first-seen row order.
func BuildEncoders(f *dataset.Frame, cols []string) map[string]map[string]int {
	encoders := make(map[string]map[string]int, len(cols))
	for _, name := range cols {
		c := f.Col(name)
		if c == nil {
			continue
		}
		enc := make(map[string]int)
		for _, v := range c.DistinctStrings() {
			enc[v] = len(enc)
		}
		encoders[name] = enc
	}
	return encoders
}

func saveEncoders(dir string, encoders map[string]map[string]int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(encoders, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "encoders.json"), data, 0o644)
}
