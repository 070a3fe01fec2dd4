package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"github.com/muhammadolammi/skillscan/internal/analysis"
	"github.com/muhammadolammi/skillscan/internal/config"
	"github.com/muhammadolammi/skillscan/internal/database"
	"github.com/muhammadolammi/skillscan/internal/generation"
	"github.com/muhammadolammi/skillscan/internal/storage"
	"github.com/muhammadolammi/skillscan/internal/worker"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal("error loading configuration. err: ", err)
	}
	InitLogger(conf.Log.Level)
	if err := conf.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", conf.Database.URL)
	if err != nil {
		log.Fatal("error opening db. err: ", err)
	}
	defer db.Close()

	documents, err := storage.NewR2Store(ctx, storage.R2Config{
		AccountID: conf.R2.AccountID,
		Bucket:    conf.R2.Bucket,
		AccessKey: conf.R2.AccessKey,
		SecretKey: conf.R2.SecretKey,
	})
	if err != nil {
		log.Fatal(err)
	}

	gen, err := generation.New(ctx, generation.Config{
		Backend: conf.Google.Backend,
		APIKey:  conf.Google.APIKey,
		Model:   conf.Google.Model,
		BaseURL: conf.Google.BaseURL,
	})
	if err != nil {
		log.Fatalf("failed to create generator: %v", err)
	}

	transport, err := NewTransport(ctx, conf)
	if err != nil {
		log.Fatal(err)
	}
	defer transport.Close()

	logger := log.WithField("app", "skillscan")
	processor := worker.NewProcessor(
		database.New(db),
		documents,
		transport.Publisher,
		analysis.New(gen, logger.WithField("component", "analysis")),
		logger.WithField("component", "worker"),
	)

	log.Infof("Starting %d workers consumer pool", conf.Worker.Count)
	StartConsumerWorkerPool(ctx, processor, transport, conf.Worker.Count)
}
