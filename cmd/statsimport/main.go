package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Clark-Hu/scouting-api/internal/config"
	"github.com/Clark-Hu/scouting-api/internal/logging"
	"github.com/Clark-Hu/scouting-api/internal/repository"
	"github.com/Clark-Hu/scouting-api/internal/statsimport"
	"github.com/Clark-Hu/scouting-api/internal/store"
)

func main() {
	var (
		dir         = flag.String("dir", "data", "directory holding the round CSV files")
		rounds      = flag.Int("rounds", statsimport.DefaultRounds, "number of rounds to read")
		mappingPath = flag.String("mapping", "", "optional YAML column mapping")
		concurrency = flag.Int("concurrency", statsimport.DefaultConcurrency, "round files parsed in parallel")
		dryRun      = flag.Bool("dry-run", false, "parse and log without writing to the database")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadImport()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	mapping := statsimport.DefaultMapping()
	if *mappingPath != "" {
		if mapping, err = statsimport.LoadMapping(*mappingPath); err != nil {
			logger.Fatal("load mapping", "path", *mappingPath, "error", err)
		}
	}

	importer, err := statsimport.New(statsimport.Options{
		Mapping:     mapping,
		Rounds:      *rounds,
		Concurrency: *concurrency,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("init importer", "error", err)
	}

	var sink statsimport.Sink = statsimport.LogSink{Logger: logger}
	if !*dryRun {
		if cfg.DBURL == "" {
			logger.Fatal("DB_URL is required unless -dry-run is set")
		}
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		st, err := store.New(dbCtx, cfg.DBURL, store.Options{Logger: logger})
		cancel()
		if err != nil {
			logger.Fatal("connect database", "error", err)
		}
		defer st.Close()
		sink = statsimport.NewPostgresSink(repository.New(st))
	}

	written, err := importer.Run(ctx, *dir, sink)
	if err != nil {
		logger.Error("import failed", "dir", *dir, "error", err)
		os.Exit(1)
	}
	logger.Info("import finished", "dir", *dir, "records", written, "dry_run", *dryRun)
}
