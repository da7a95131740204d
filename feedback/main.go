package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/homefinder/eih-site-explorer/config"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.LoadConfig()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	nc, err := NewNats(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer nc.Close()

	logWriter, err := NewFeedbackLog(cfg.Feedback.LogPath)
	if err != nil {
		log.Fatal(err)
	}
	defer logWriter.Close()

	handler := NewHandler(logWriter)

	workers := cfg.Feedback.Workers
	if workers < 1 {
		workers = 2
	}
	queueSize := cfg.Feedback.QueueSize
	if queueSize < 1 {
		queueSize = 100
	}
	slog.Info("Starting feedback consumer", "workers", workers, "queueSize", queueSize, "log", cfg.Feedback.LogPath)

	pool := NewWorkerPool(ctx, workers, queueSize, handler.HandleFeedbackMessage)

	worker := errgroup.Group{}
	errChan := make(chan error)

	worker.Go(func() error {
		return nc.Subscribe(ctx, cfg.Nats.FeedbackSubject, pool)
	})

	go func() {
		errChan <- worker.Wait()
	}()

	select {
	case <-shutdown:
		slog.Info("Shutting down")
		cancel()
	case err := <-errChan:
		slog.Info("Shutting down due to error", "error", err)
		cancel()
	}
}
