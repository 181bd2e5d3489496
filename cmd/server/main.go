package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpslab/rps-opponent-go/internal/api"
	"github.com/rpslab/rps-opponent-go/internal/store"
)

func main() {
	addr := flag.String("addr", envOr("RPS_ADDR", ":8080"), "listen address")
	dbPath := flag.String("db", envOr("RPS_DB", "rps.db"), "sqlite database path")
	flag.Parse()

	logger := log.New(os.Stdout, "[SERVER] ", log.LstdFlags)

	db, err := store.New(*dbPath)
	if err != nil {
		logger.Fatalf("open database %s: %v", *dbPath, err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatalf("migrate database: %v", err)
	}

	srv := &http.Server{
		Addr:         *addr,
		Handler:      api.NewServer(db).Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // websocket round feed holds connections open
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("listening on %s (db %s)", *addr, *dbPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
