package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/emaildig/internal/buildinfo"
	"github.com/dmitrijs2005/emaildig/internal/catalog"
	"github.com/dmitrijs2005/emaildig/internal/cli"
	"github.com/dmitrijs2005/emaildig/internal/config"
	"github.com/dmitrijs2005/emaildig/internal/format"
	"github.com/dmitrijs2005/emaildig/internal/logging"
	"github.com/dmitrijs2005/emaildig/internal/scoring"
	"github.com/dmitrijs2005/emaildig/internal/session"
	"github.com/dmitrijs2005/emaildig/internal/storage"
)

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	mode, err := format.ParseMode(cfg.OutputFormat)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	store, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer store.Close()

	sess := session.NewManager(cat, store, logger, session.WithKey(cfg.StateKey))
	if err := sess.Load(ctx); err != nil {
		// keep playing on defaults; the next completion overwrites the slot
		logger.Error(ctx, "could not restore saved game", "error", err)
	}

	engine := scoring.NewEngine(sess, cat, logger)
	app := cli.NewApp(cat, sess, engine, logger, cli.WithMode(mode))
	app.Run(ctx, os.Stdin)
}
