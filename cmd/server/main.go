package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gestidoc/internal/bus"
	"gestidoc/internal/config"
	"gestidoc/internal/db"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()

	conn, err := db.Open(cfg.DatabaseDSN, cfg.LogQueries)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if *migrateOnlyFlag {
		log.Println("Migrations completed successfully")
		return
	}

	b := bus.New()
	// The sync collaborator is external; its whole coupling to this core is
	// this one signal. Until one is attached we just log the request.
	cancel := b.Subscribe(bus.SyncRequested, func() {
		log.Println("sync requested")
	})
	defer cancel()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: NewApp(conn, b),
	}

	go func() {
		log.Printf("listening on :%s (env=%s, dsn=%s)", cfg.Port, cfg.Env, cfg.DatabaseDSN)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
