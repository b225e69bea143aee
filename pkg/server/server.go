// Package server is the thin HTTP caller layer over the core
// pipeline: upload, profile, train. It owns the repositories and the
// upload directory; the core packages stay free of I/O policy.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/tsakane28/notebook/pkg/errs"
	"github.com/tsakane28/notebook/pkg/store"
)

// Config wires a Server.
type Config struct {
	UploadDir   string
	EncodersDir string
	Repo        store.Repository
	Log         *logrus.Logger
}

type Server struct {
	cfg    Config
	log    *logrus.Logger
	router *mux.Router
}

func New(cfg Config) *Server {
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}
	s := &Server{cfg: cfg, log: cfg.Log}
	r := mux.NewRouter()
	r.HandleFunc("/api/datasets", s.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/api/datasets", s.handleListDatasets).Methods(http.MethodGet)
	r.HandleFunc("/api/datasets/{id}/analysis", s.handleAnalyze).Methods(http.MethodGet)
	r.HandleFunc("/api/datasets/{id}/models", s.handleTrain).Methods(http.MethodPost)
	r.HandleFunc("/api/models", s.handleListModels).Methods(http.MethodGet)
	r.HandleFunc("/api/models/{id}", s.handleGetModel).Methods(http.MethodGet)
	r.Use(s.logging)
	s.router = r
	return s
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Info("request")
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Error("server: encode response")
	}
}

// writeError maps the core error taxonomy onto HTTP statuses:
// validation and configuration problems are the caller's fault,
// computation failures mean the request was well-formed but the data
// would not fit.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errs.IsValidation(err), errs.IsConfiguration(err):
		status = http.StatusBadRequest
	case errs.IsComputation(err):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.log.WithError(err).Error("server: internal error")
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
