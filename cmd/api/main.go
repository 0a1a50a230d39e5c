package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/denisok6893-rgb/warehouse-grading/internal/app"
	"github.com/denisok6893-rgb/warehouse-grading/internal/config"
	"github.com/denisok6893-rgb/warehouse-grading/internal/logging"
)

func main() {
	configPath := flag.String("config", os.Getenv("WGRADE_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := run(cfg); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func run(cfg *config.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	a.Log.Info("API listening", logging.String("address", cfg.HTTP.Address))
	return http.ListenAndServe(cfg.HTTP.Address, a.Server.Routes())
}
