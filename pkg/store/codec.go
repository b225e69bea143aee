package store

import (
	"bytes"
	"encoding/gob"

	"github.com/pkg/errors"

	"github.com/tsakane28/notebook/pkg/model"
)

func init() {
	gob.Register(&model.LinearRegression{})
	gob.Register(&model.LogisticRegression{})
	gob.Register(&model.DecisionTree{})
	gob.Register(&model.RandomForestRegressor{})
	gob.Register(&model.RandomForestClassifier{})
	gob.Register(&model.GradientBoostingRegressor{})
	gob.Register(&model.GradientBoostingClassifier{})
}

// EncodeModel serializes a fitted estimator for storage.
func EncodeModel(m model.Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&m); err != nil {
		return nil, errors.Wrap(err, "store: encode model")
	}
	return buf.Bytes(), nil
}

// DecodeModel restores an estimator serialized by EncodeModel.
func DecodeModel(data []byte) (model.Model, error) {
	var m model.Model
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil {
		return nil, errors.Wrap(err, "store: decode model")
	}
	return m, nil
}
