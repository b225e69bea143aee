// Package store holds the dataset and model repositories the caller
// layer injects into the HTTP handlers. The core pipeline never
// touches these: persistence is strictly the caller's concern.
package store

import (
	"time"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a record id is unknown.
var ErrNotFound = errors.New("store: not found")

// DatasetRecord describes one uploaded dataset.
type DatasetRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Rows       int       `json:"rows"`
	Columns    int       `json:"columns"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ModelRecord describes one trained model. Artifact is the
// gob-encoded estimator; Features is the post-encoding column order
// any future scoring must reuse.
type ModelRecord struct {
	ID        string    `json:"id"`
	DatasetID string    `json:"dataset_id"`
	Target    string    `json:"target"`
	Family    string    `json:"family"`
	Task      string    `json:"task"`
	Features  []string  `json:"features"`
	CreatedAt time.Time `json:"created_at"`
	Artifact  []byte    `json:"-"`
}

// DatasetRepository stores dataset records.
type DatasetRepository interface {
	SaveDataset(rec DatasetRecord) error
	Dataset(id string) (DatasetRecord, error)
	Datasets() ([]DatasetRecord, error)
	DeleteDataset(id string) error
}

// ModelRepository stores model records.
type ModelRepository interface {
	SaveModel(rec ModelRecord) error
	Model(id string) (ModelRecord, error)
	Models(datasetID string) ([]ModelRecord, error)
}

// Repository is both repositories behind one handle.
type Repository interface {
	DatasetRepository
	ModelRepository
}
