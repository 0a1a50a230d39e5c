// Package app assembles the service graph shared by the API server and the CLI.
package app

import (
	"fmt"

	"github.com/denisok6893-rgb/warehouse-grading/internal/address"
	"github.com/denisok6893-rgb/warehouse-grading/internal/catalog"
	"github.com/denisok6893-rgb/warehouse-grading/internal/config"
	"github.com/denisok6893-rgb/warehouse-grading/internal/evaluation"
	httpapi "github.com/denisok6893-rgb/warehouse-grading/internal/http"
	"github.com/denisok6893-rgb/warehouse-grading/internal/logging"
	"github.com/denisok6893-rgb/warehouse-grading/internal/metrics"
	"github.com/denisok6893-rgb/warehouse-grading/internal/storage"
)

type App struct {
	Log     logging.Logger
	Catalog *catalog.Catalog
	Store   storage.Store
	Metrics *metrics.Metrics
	Service *evaluation.Service
	Server  *httpapi.Server
}

// New builds every component from cfg. A catalog file that fails to load is
// logged and replaced by the built-in templates.
func New(cfg *config.Config) (*App, error) {
	log, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return NewWithLogger(cfg, log)
}

func NewWithLogger(cfg *config.Config, log logging.Logger) (*App, error) {
	cat := loadCatalog(cfg.Catalog.Path, log)

	store, err := openStore(cfg.Store)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	svc := evaluation.NewService(cat, store,
		evaluation.WithObserver(m),
		evaluation.WithLogger(log.Named("evaluation")),
	)
	srv := httpapi.NewServer(svc, address.NewStaticSuggester(nil), m, log.Named("http"))

	log.Info("service ready",
		logging.Int("templates", cat.Len()),
		logging.String("store", cfg.Store.Driver),
	)
	return &App{Log: log, Catalog: cat, Store: store, Metrics: m, Service: svc, Server: srv}, nil
}

func loadCatalog(path string, log logging.Logger) *catalog.Catalog {
	if path == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadFromFile(path)
	if err != nil {
		log.Warn("use built-in templates", logging.String("path", path), logging.Err(err))
		return catalog.Default()
	}
	return cat
}

func openStore(cfg config.StoreConfig) (storage.Store, error) {
	switch cfg.Driver {
	case config.StoreSQLite:
		s, err := storage.OpenSQLite(cfg.Name)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	default:
		return storage.NewMemoryStore(), nil
	}
}

func (a *App) Close() error {
	err := a.Store.Close()
	_ = a.Log.Sync()
	return err
}
