package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/project-hirewire/go-aggregator/internal/api"
	"github.com/project-hirewire/go-aggregator/internal/config"
	"github.com/project-hirewire/go-aggregator/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Job Aggregation API")

	// Load configuration
	cfg := config.Load()

	// Initialize PostgreSQL store
	pgStore, err := store.NewPostgresStore(cfg.Postgres.ConnectionString, cfg.Postgres.TableName)
	if err != nil {
		log.Fatalf("PostgreSQL connection failed: %v", err)
	}
	defer pgStore.Close()
	log.Println("PostgreSQL connected")

	server := api.NewServer(pgStore)
	httpServer := &http.Server{
		Addr:    cfg.API.Addr,
		Handler: server,
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Listening on %s", cfg.API.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("API stopped")
}
