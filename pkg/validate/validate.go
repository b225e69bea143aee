// Package validate gates uploaded tables before they enter the
// pipeline. It is a pure read-only pass: no state is retained and a
// rejected file leaves nothing behind.
package validate

import (
	"fmt"
	"os"
	"strings"

	"github.com/tsakane28/notebook/pkg/dataset"
)

// Result is the outcome of validating an upload. Message is safe to
// show to the user either way.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// CSV validates a delimited table file. Parse failures are reported
// in the result rather than returned as errors.
func CSV(path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		return Result{Valid: false, Message: "File not found."}
	}
	if info.Size() == 0 {
		return Result{Valid: false, Message: "File is empty."}
	}

	raw, err := dataset.ReadCSV(path)
	if err != nil {
		return Result{Valid: false, Message: fmt.Sprintf("Error validating file: %v", err)}
	}
	if len(raw.Rows) == 0 {
		return Result{Valid: false, Message: "No data found in the file."}
	}
	if len(raw.Header) < 2 {
		return Result{Valid: false, Message: "File must contain at least 2 columns."}
	}

	seen := make(map[string]struct{}, len(raw.Header))
	for _, name := range raw.Header {
		if _, dup := seen[name]; dup {
			return Result{Valid: false, Message: "File contains duplicate column names."}
		}
		seen[name] = struct{}{}
	}

	var empty []string
	for j, name := range raw.Header {
		allNull := true
		for _, row := range raw.Rows {
			if !dataset.IsMissingValue(row[j]) {
				allNull = false
				break
			}
		}
		if allNull {
			empty = append(empty, name)
		}
	}
	if len(empty) > 0 {
		return Result{Valid: false, Message: fmt.Sprintf("File contains empty columns: %s", strings.Join(empty, ", "))}
	}

	frame, err := raw.Frame()
	if err != nil {
		return Result{Valid: false, Message: fmt.Sprintf("Error validating file: %v", err)}
	}
	numeric := 0
	for _, c := range frame.Cols() {
		if c.Type == dataset.Numeric {
			numeric++
		}
	}
	if numeric == 0 {
		return Result{Valid: false, Message: "File must contain at least one numeric column for visualization."}
	}

	return Result{Valid: true, Message: "File validation successful."}
}
