package server

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/tsakane28/notebook/pkg/dataprep"
	"github.com/tsakane28/notebook/pkg/errs"
	"github.com/tsakane28/notebook/pkg/evaluate"
	"github.com/tsakane28/notebook/pkg/profile"
	"github.com/tsakane28/notebook/pkg/store"
	"github.com/tsakane28/notebook/pkg/trainer"
	"github.com/tsakane28/notebook/pkg/validate"
)

const maxUploadBytes = 64 << 20

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, errs.Validationf("missing file upload: %v", err))
		return
	}
	defer file.Close()

	id, err := uuid.NewV4()
	if err != nil {
		s.writeError(w, errors.Wrap(err, "server: uuid"))
		return
	}
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		s.writeError(w, errors.Wrap(err, "server: upload dir"))
		return
	}
	path := filepath.Join(s.cfg.UploadDir, id.String()+".csv")
	dst, err := os.Create(path)
	if err != nil {
		s.writeError(w, errors.Wrap(err, "server: save upload"))
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		s.writeError(w, errors.Wrap(err, "server: save upload"))
		return
	}
	dst.Close()

	if result := validate.CSV(path); !result.Valid {
		os.Remove(path)
		s.writeError(w, &errs.ValidationError{Msg: result.Message})
		return
	}

	frame, err := dataprep.TransformWith(path, dataprep.Options{
		SaveEncoders: true,
		EncodersDir:  s.cfg.EncodersDir,
	})
	if err != nil {
		os.Remove(path)
		s.writeError(w, err)
		return
	}

	rec := store.DatasetRecord{
		ID:         id.String(),
		Name:       header.Filename,
		Path:       path,
		Rows:       frame.Len(),
		Columns:    len(frame.Columns()),
		UploadedAt: time.Now().UTC(),
	}
	if err := s.cfg.Repo.SaveDataset(rec); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"dataset":  rec,
		"analysis": profile.Analyze(frame),
	})
}

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	recs, err := s.cfg.Repo.Datasets()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"datasets": recs})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	rec, err := s.cfg.Repo.Dataset(mux.Vars(r)["id"])
	if err == store.ErrNotFound {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "dataset not found"})
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	frame, err := dataprep.TransformWith(rec.Path, dataprep.Options{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile.Analyze(frame))
}

type trainRequest struct {
	TargetColumn   string                `json:"target_column"`
	ModelType      string                `json:"model_type"`
	Preprocessing  *trainer.Preprocessing `json:"preprocessing,omitempty"`
	ExcludeColumns []string              `json:"exclude_columns,omitempty"`
}

func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	rec, err := s.cfg.Repo.Dataset(mux.Vars(r)["id"])
	if err == store.ErrNotFound {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "dataset not found"})
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req trainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errs.Configurationf("invalid train request: %v", err))
		return
	}
	if req.TargetColumn == "" {
		s.writeError(w, errs.Configurationf("target_column is required"))
		return
	}
	pre := trainer.DefaultPreprocessing()
	if req.Preprocessing != nil {
		pre = *req.Preprocessing
	}

	frame, err := dataprep.TransformWith(rec.Path, dataprep.Options{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	result, err := trainer.Train(frame, req.TargetColumn, req.ModelType, pre, req.ExcludeColumns)
	if err != nil {
		s.writeError(w, err)
		return
	}
	scores, err := evaluate.Model(result.Model, result.TestRows, req.TargetColumn)
	if err != nil {
		s.writeError(w, err)
		return
	}

	artifact, err := store.EncodeModel(result.Model)
	if err != nil {
		s.writeError(w, err)
		return
	}
	modelID, err := uuid.NewV4()
	if err != nil {
		s.writeError(w, errors.Wrap(err, "server: uuid"))
		return
	}
	modelRec := store.ModelRecord{
		ID:        modelID.String(),
		DatasetID: rec.ID,
		Target:    req.TargetColumn,
		Family:    result.Family.String(),
		Task:      result.Task.String(),
		Features:  result.Features,
		CreatedAt: time.Now().UTC(),
		Artifact:  artifact,
	}
	if err := s.cfg.Repo.SaveModel(modelRec); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"model_id":           modelRec.ID,
		"family":             modelRec.Family,
		"task":               modelRec.Task,
		"features":           modelRec.Features,
		"metrics":            scores,
		"feature_importance": scores.FeatureImportance,
	})
}

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	recs, err := s.cfg.Repo.Models(r.URL.Query().Get("dataset"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"models": recs})
}

func (s *Server) handleGetModel(w http.ResponseWriter, r *http.Request) {
	rec, err := s.cfg.Repo.Model(mux.Vars(r)["id"])
	if err == store.ErrNotFound {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "model not found"})
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}
