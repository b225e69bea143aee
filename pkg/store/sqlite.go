package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	path        TEXT NOT NULL,
	rows        INTEGER NOT NULL,
	columns     INTEGER NOT NULL,
	uploaded_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS models (
	id         TEXT PRIMARY KEY,
	dataset_id TEXT NOT NULL,
	target     TEXT NOT NULL,
	family     TEXT NOT NULL,
	task       TEXT NOT NULL,
	features   TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	artifact   BLOB
);
`

// SQLite is a Repository backed by a single sqlite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed initializes) the database at path.
// Use ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "store: open sqlite")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store: init schema")
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) SaveDataset(rec DatasetRecord) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO datasets (id, name, path, rows, columns, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Path, rec.Rows, rec.Columns, rec.UploadedAt,
	)
	return errors.Wrap(err, "store: save dataset")
}

func (s *SQLite) Dataset(id string) (DatasetRecord, error) {
	row := s.db.QueryRow(`SELECT id, name, path, rows, columns, uploaded_at FROM datasets WHERE id = ?`, id)
	var rec DatasetRecord
	err := row.Scan(&rec.ID, &rec.Name, &rec.Path, &rec.Rows, &rec.Columns, &rec.UploadedAt)
	if err == sql.ErrNoRows {
		return DatasetRecord{}, ErrNotFound
	}
	return rec, errors.Wrap(err, "store: load dataset")
}

func (s *SQLite) Datasets() ([]DatasetRecord, error) {
	rows, err := s.db.Query(`SELECT id, name, path, rows, columns, uploaded_at FROM datasets ORDER BY uploaded_at`)
	if err != nil {
		return nil, errors.Wrap(err, "store: list datasets")
	}
	defer rows.Close()
	var out []DatasetRecord
	for rows.Next() {
		var rec DatasetRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Path, &rec.Rows, &rec.Columns, &rec.UploadedAt); err != nil {
			return nil, errors.Wrap(err, "store: scan dataset")
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLite) DeleteDataset(id string) error {
	res, err := s.db.Exec(`DELETE FROM datasets WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "store: delete dataset")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) SaveModel(rec ModelRecord) error {
	features, err := json.Marshal(rec.Features)
	if err != nil {
		return errors.Wrap(err, "store: encode features")
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO models (id, dataset_id, target, family, task, features, created_at, artifact) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.DatasetID, rec.Target, rec.Family, rec.Task, string(features), rec.CreatedAt, rec.Artifact,
	)
	return errors.Wrap(err, "store: save model")
}

func (s *SQLite) Model(id string) (ModelRecord, error) {
	row := s.db.QueryRow(`SELECT id, dataset_id, target, family, task, features, created_at, artifact FROM models WHERE id = ?`, id)
	rec, err := scanModel(row.Scan)
	if err == sql.ErrNoRows {
		return ModelRecord{}, ErrNotFound
	}
	return rec, errors.Wrap(err, "store: load model")
}

func (s *SQLite) Models(datasetID string) ([]ModelRecord, error) {
	query := `SELECT id, dataset_id, target, family, task, features, created_at, artifact FROM models`
	args := []interface{}{}
	if datasetID != "" {
		query += ` WHERE dataset_id = ?`
		args = append(args, datasetID)
	}
	query += ` ORDER BY created_at`
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "store: list models")
	}
	defer rows.Close()
	var out []ModelRecord
	for rows.Next() {
		rec, err := scanModel(rows.Scan)
		if err != nil {
			return nil, errors.Wrap(err, "store: scan model")
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanModel(scan func(...interface{}) error) (ModelRecord, error) {
	var rec ModelRecord
	var features string
	var created time.Time
	if err := scan(&rec.ID, &rec.DatasetID, &rec.Target, &rec.Family, &rec.Task, &features, &created, &rec.Artifact); err != nil {
		return ModelRecord{}, err
	}
	rec.CreatedAt = created
	if err := json.Unmarshal([]byte(features), &rec.Features); err != nil {
		return ModelRecord{}, err
	}
	return rec, nil
}
