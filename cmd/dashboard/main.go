// Command dashboard serves the dataset upload / profile / train API.
package main

import (
	"flag"
	"net/http"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/tsakane28/notebook/pkg/server"
	"github.com/tsakane28/notebook/pkg/store"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dataDir := flag.String("data", "data", "data directory (uploads, encoders, db)")
	dbPath := flag.String("db", "", "sqlite database path (empty = in-memory store)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	var repo store.Repository
	if *dbPath != "" {
		db, err := store.OpenSQLite(*dbPath)
		if err != nil {
			log.WithError(err).Fatal("open sqlite store")
		}
		defer db.Close()
		repo = db
	} else {
		repo = store.NewMemory()
	}

	srv := server.New(server.Config{
		UploadDir:   filepath.Join(*dataDir, "uploads"),
		EncodersDir: filepath.Join(*dataDir, "encoders"),
		Repo:        repo,
		Log:         log,
	})

	log.WithField("addr", *addr).Info("dashboard listening")
	if err := http.ListenAndServe(*addr, srv.Router()); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
