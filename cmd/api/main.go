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

	"csvexplorer/adapters/excel"
	"csvexplorer/app"
	"csvexplorer/internal/config"
	"csvexplorer/ui"

	"github.com/joho/godotenv"
)

// Serves only the stateless JSON API, for scripted use without the page
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	readerConfig := excel.DefaultReaderConfig()
	readerConfig.MaxBytes = cfg.Upload.MaxBytes()

	defaults := app.DefaultOptions()
	defaults.PreviewRows = cfg.View.PreviewRows
	defaults.HistogramBins = cfg.View.HistogramBins

	api := ui.NewAPI(app.NewExplorer(excel.NewDataReader(readerConfig), defaults), cfg.Upload.MaxBytes())
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           api,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown failed: %v", err)
		}
	}()

	log.Printf("Starting API server on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server failed:", err)
	}
}
