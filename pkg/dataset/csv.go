package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"
)

// missingMarkers are the cell values treated as nulls on ingestion.
var missingMarkers = map[string]struct{}{
	"":    {},
	"NA":  {},
	"NaN": {},
}

// IsMissingValue reports whether a raw cell counts as null.
func IsMissingValue(s string) bool {
	_, ok := missingMarkers[s]
	return ok
}

// Raw is a parsed delimited table before type inference: a header and
// string cells, exactly as found in the file.
type Raw struct {
	Header []string
	Rows   [][]string
}

// ReadCSV parses the whole file into a Raw table. The table is fully
// materialized; callers accept O(file size) memory per request.
func ReadCSV(path string) (*Raw, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("empty file")
	}
	if err != nil {
		return nil, err
	}

	raw := &Raw{Header: header}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]string, len(rec))
		copy(row, rec)
		raw.Rows = append(raw.Rows, row)
	}
	return raw, nil
}

// Frame runs type inference over the raw table and returns a typed
// frame. A column is numeric when all its non-null cells parse as
// floats; otherwise it is categorical. Null cells are flagged missing.
func (r *Raw) Frame() (*Frame, error) {
	n := len(r.Rows)
	cols := make([]*Column, 0, len(r.Header))
	for j, name := range r.Header {
		raw := make([]string, n)
		missing := make([]bool, n)
		for i, row := range r.Rows {
			cell := row[j]
			if IsMissingValue(cell) {
				missing[i] = true
				continue
			}
			raw[i] = cell
		}
		cols = append(cols, buildColumn(name, raw, missing))
	}
	return NewFrame(cols)
}
