package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"csvexplorer/adapters/excel"
	"csvexplorer/app"
	"csvexplorer/internal/config"
	"csvexplorer/ui"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	readerConfig := excel.DefaultReaderConfig()
	readerConfig.MaxBytes = appConfig.Upload.MaxBytes()

	defaults := app.DefaultOptions()
	defaults.PreviewRows = appConfig.View.PreviewRows
	defaults.HistogramBins = appConfig.View.HistogramBins

	explorer := app.NewExplorer(excel.NewDataReader(readerConfig), defaults)
	sessions := ui.NewSessionStore(appConfig.Session.TTL)

	server, err := ui.NewServer(appConfig, explorer, sessions)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Start(ctx, ":"+appConfig.Server.Port)
	})

	g.Go(func() error {
		return sessions.Run(ctx)
	})

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		g.Go(func() error {
			return servePprof(ctx, ":"+appConfig.Profiling.Port, appConfig.Server.ShutdownTimeout)
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	log.Println("Server stopped")
}

// servePprof exposes the default mux, where net/http/pprof registers itself
func servePprof(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{Addr: addr, Handler: http.DefaultServeMux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Performance profiling server starting on %s", addr)
	log.Printf("View profiles: go tool pprof -http=:8081 http://localhost%s/debug/pprof/profile?seconds=30", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
