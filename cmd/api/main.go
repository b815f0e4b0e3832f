// Package main API.
//
// go-pdfeditor provides a REST API for interactive PDF editing: signature
// placement, page arrangement, page extraction, scan staging, merging and
// single-file operations.
//
//	Schemes: http
//	BasePath: /
//	Version: 1.0.0
//	Host: localhost:8080
//
//	Consumes:
//	- application/json
//	- multipart/form-data
//
//	Produces:
//	- application/json
//	- application/pdf
//	- application/zip
//
// swagger:meta
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go-pdfeditor/internal/config"
	"go-pdfeditor/internal/server"

	"github.com/sirupsen/logrus"
)

func gracefulShutdown(apiServer *http.Server, log *logrus.Logger, done chan bool, cleanupFunc func()) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("Server forced to shutdown")
	}

	// Cleanup all session files and temp files
	if cleanupFunc != nil {
		log.Info("Cleaning directories")
		cleanupFunc()
	}

	log.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

// cleanDirs empties the working directories, previews included.
func cleanDirs(dirs []string) {
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			_ = os.RemoveAll(filepath.Join(dir, entry.Name()))
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	log := cfg.NewLogger()
	cleanup := func() { cleanDirs(cfg.Dirs()) }

	// Cleanup uploads/, output/ and previews/ on startup
	cleanup()

	log.WithField("port", cfg.Port).Info("Starting server")

	server := server.NewServer(cfg, log)

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(server, log, done, cleanup)

	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("http server error")
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete.")
}
