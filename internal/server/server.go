// Package server provides the HTTP server setup for go-pdfeditor.
//
// NewServer creates and configures the HTTP server, session manager, and file directories.
//
// Expected outputs:
// - Server listens on the configured port (default 8080)
// - Expired sessions, their editors and files are cleaned up periodically
//
// Usage:
//
//	cfg, _ := config.Load()
//	server := server.NewServer(cfg, cfg.NewLogger())
//	server.ListenAndServe()
//
// See internal/server/routes.go for route registration.
package server

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"go-pdfeditor/internal/config"
	"go-pdfeditor/internal/render"
	"go-pdfeditor/internal/session"

	"github.com/sirupsen/logrus"
)

type Server struct {
	port           int
	SessionManager *session.SessionManager
	UploadDir      string
	OutputDir      string
	Editors        session.EditorConfig
	AllowedOrigins []string
	Log            *logrus.Logger
}

func NewServer(cfg *config.Config, log *logrus.Logger) *http.Server {
	for _, dir := range cfg.Dirs() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.WithError(err).WithField("dir", dir).Fatal("Cannot create directory")
		}
	}

	srv := &Server{
		port:           cfg.Port,
		SessionManager: session.NewSessionManager(),
		UploadDir:      cfg.UploadDir,
		OutputDir:      cfg.OutputDir,
		Editors: session.EditorConfig{
			Renderer:       render.PDFRenderer{},
			PreviewDir:     cfg.PreviewDir,
			CaptureTimeout: cfg.CaptureTimeout,
		},
		AllowedOrigins: cfg.AllowedOrigins,
		Log:            log,
	}

	// Cleanup goroutine for old sessions/files
	go func() {
		ticker := time.NewTicker(cfg.CleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			if expired := srv.SessionManager.Expire(cfg.SessionTTL); len(expired) > 0 {
				log.WithField("count", len(expired)).Info("Expired sessions removed")
			}
		}
	}()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", srv.port),
		Handler:      srv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	server.RegisterOnShutdown(srv.SessionManager.CleanupAll)

	return server
}
