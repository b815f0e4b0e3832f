// Package server sets up the HTTP server and registers API routes for go-pdfeditor.
//
// RegisterRoutes returns an http.Handler with all API endpoints for session,
// editor and PDF management.
//
// Expected outputs:
// - All API endpoints are available under /api/sessions
// - CORS and logging middleware are enabled
package server

import (
	"net"
	"net/http"

	_ "go-pdfeditor/docs"
	"go-pdfeditor/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Only allow requests from localhost to /swagger/*
func localhostOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, _ := net.SplitHostPort(r.RemoteAddr)
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) RegisterRoutes() http.Handler {
	origins := s.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"https://*", "http://*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.With(localhostOnly).Get("/swagger/*", httpSwagger.WrapHandler)
	h := handlers.NewAPIHandler(s.SessionManager, s.UploadDir, s.OutputDir, s.Editors, s.Log)
	r.Route("/api/sessions", func(api chi.Router) {
		api.Post("/", h.CreateSession)
		api.Route("/{sessionID}", func(sr chi.Router) {
			sr.Delete("/", h.DeleteSession)
			sr.Post("/files", h.UploadFile)
			sr.Post("/signature", h.UploadSignature)
			sr.Post("/images", h.UploadImage)
			sr.Put("/order", h.UpdateOrder)
			sr.Post("/actions/merge", h.MergeFiles)
			sr.Post("/actions/{operation}", h.RunOperation)
			sr.Post("/sign", h.SignPDF)
			sr.Get("/files/{filename}", h.DownloadFile)

			sr.Route("/editor", func(er chi.Router) {
				er.Post("/", h.OpenEditor)
				er.Get("/", h.EditorState)
				er.Delete("/", h.CancelEditor)
				er.Put("/source", h.ReplaceSource)
				er.Post("/measure", h.MeasureSurface)
				er.Put("/page", h.SetPage)
				er.Post("/pointer", h.Pointer)
				er.Put("/overlay", h.PlaceOverlay)
				er.Post("/reorder", h.Reorder)
				er.Post("/pages/{pageID}/rotate", h.RotatePage)
				er.Post("/pages/{pageID}/select", h.ToggleSelect)
				er.Put("/scan", h.SetScanOptions)
				er.Get("/previews/{token}", h.Preview)
				er.Post("/commit", h.CommitEditor)
			})
		})
	})

	return r
}
