package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"

	mambo "cactus/mambo/src"
)

func main() {
	configPath := "./config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := mambo.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	output := io.Writer(os.Stdout)
	if cfg.Logging.File != "" {
		logFile, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		defer logFile.Close()
		output = io.MultiWriter(os.Stdout, logFile)
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "mambo",
		Level:  hclog.LevelFromString(cfg.Logging.Level),
		Output: output,
	})

	if cfg.Security.Enabled || cfg.GCP.RecordsBucket != "" {
		if err := mambo.SetupGCP(); err != nil {
			log.Fatalf("failed to setup GCP: %v", err)
		}
	}

	data, err := mambo.LoadDatasetCSV(cfg.Data.Path)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}
	logger.Info("dataset loaded", "samples", data.Len())

	master, err := mambo.NewMaster(cfg, data, logger)
	if err != nil {
		log.Fatalf("failed to build master: %v", err)
	}
	if err := master.Start(); err != nil {
		log.Fatalf("failed to start master: %v", err)
	}

	fitDone := make(chan struct{})
	master.Cluster().WhenReady(func() {
		defer close(fitDone)
		result, err := master.Fit(context.Background())
		if err != nil {
			logger.Error("training failed", "error", err)
			return
		}
		logger.Info("training finished",
			"final_loss", result.FinalLoss,
			"updates", result.Updates,
			"weights_sparsity", result.Grad.Sparsity(),
			"elapsed", result.End.Sub(result.Start))
	})

	// Trap SIGINT/SIGTERM so the port is always released on the way out.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case s := <-sig:
		logger.Info("signal received, shutting down", "signal", s)
	case <-fitDone:
	}
	master.Stop()
}
