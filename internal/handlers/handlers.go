// Package handlers provides HTTP handlers for the PDF editing API.
//
// This package contains the HTTP endpoints for session management, file
// upload, merging, the interactive editors (signature placement, page
// arrangement, page extraction and scan staging), single-file operations
// and download.
//
// Example usage:
//
//	h := handlers.NewAPIHandler(sessionManager, uploadDir, outputDir, editors, log)
//	r := chi.NewRouter()
//	r.Post("/api/sessions/", h.CreateSession)
//
// All handlers are designed to be used with the chi router.
package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go-pdfeditor/internal/editor"
	"go-pdfeditor/internal/pdf"
	"go-pdfeditor/internal/session"
	"go-pdfeditor/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type APIHandler struct {
	SessionManager *session.SessionManager
	UploadDir      string
	OutputDir      string
	Editors        session.EditorConfig
	Processor      *pdf.Processor
	Log            *logrus.Logger
}

func NewAPIHandler(sm *session.SessionManager, uploadDir, outputDir string, editors session.EditorConfig, log *logrus.Logger) *APIHandler {
	return &APIHandler{
		SessionManager: sm,
		UploadDir:      uploadDir,
		OutputDir:      outputDir,
		Editors:        editors,
		Processor:      pdf.NewProcessor(outputDir, log),
		Log:            log,
	}
}

// FileResponse describes a stored upload.
type FileResponse struct {
	Filename string `json:"filename"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
}

// DownloadResponse points at a produced file.
type DownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
	Filename    string `json:"filename"`
}

func (h *APIHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, exists := h.SessionManager.GetSession(chi.URLParam(r, "sessionID"))
	if !exists {
		writeError(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return s, true
}

func downloadURL(sessionID, path string) string {
	return fmt.Sprintf("/api/sessions/%s/files/%s", sessionID, filepath.Base(path))
}

// CreateSession godoc
// @Summary      Create a new session
// @Description  Creates a new workspace and returns its session ID
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  map[string]string  "{ sessionId: string }"
// @Router       /api/sessions/ [post]
func (h *APIHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.SessionManager.CreateSession()
	h.Log.WithField("session_id", session.ID).Info("Session created")
	writeJSON(w, http.StatusOK, map[string]string{"sessionId": session.ID})
}

// DeleteSession godoc
// @Summary      Delete a session
// @Description  Cancels any open editor and removes every file of the session
// @Tags         sessions
// @Param        sessionID  path  string  true  "Session ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /api/sessions/{sessionID} [delete]
func (h *APIHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.Cleanup()
	h.SessionManager.DeleteSession(session.ID)
	w.WriteHeader(http.StatusNoContent)
}

// UploadFile godoc
// @Summary      Upload a PDF file
// @Description  Uploads a PDF file to the session
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        pdf        formData  file    true  "PDF file"
// @Success      200  {object}  FileResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/sessions/{sessionID}/files [post]
func (h *APIHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	const maxUploadSize = 25 * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "File too large")
		return
	}

	file, handler, err := r.FormFile("pdf")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error retrieving file")
		return
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(handler.Filename)) != ".pdf" {
		writeError(w, http.StatusBadRequest, "Only PDF files are allowed")
		return
	}

	header := make([]byte, 5)
	if _, err := io.ReadFull(file, header); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read file")
		return
	}
	if string(header) != "%PDF-" {
		writeError(w, http.StatusBadRequest, "Uploaded file is not a valid PDF")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to process file")
		return
	}

	path, err := h.store(file, utils.StoredName("", handler.Filename))
	if err != nil {
		h.Log.WithError(err).Error("Failed to store upload")
		writeError(w, http.StatusInternalServerError, "Failed to save file")
		return
	}

	session.AddFile(path)
	h.Log.WithFields(logrus.Fields{"session_id": session.ID, "file": filepath.Base(path)}).Info("PDF uploaded")
	writeJSON(w, http.StatusOK, FileResponse{
		Filename: filepath.Base(path),
		Name:     utils.DisplayName(path),
		Size:     handler.Size,
	})
}

func (h *APIHandler) store(src io.Reader, name string) (string, error) {
	path := filepath.Join(h.UploadDir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// UpdateOrder godoc
// @Summary      Set file order
// @Description  Sets the order of uploaded PDF files for merging
// @Tags         files
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        files      body      object  true  "{ files: [string] }"
// @Success      200  {object}  map[string]bool  "{ success: true }"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/sessions/{sessionID}/order [put]
func (h *APIHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var fileOrder struct {
		Files []string `json:"files"`
	}
	if err := decodeJSON(r, &fileOrder); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid file order data")
		return
	}
	currentFiles := session.GetFiles()
	ordered := make([]string, 0, len(fileOrder.Files))
	for _, name := range fileOrder.Files {
		path, err := session.ResolveFile(name)
		if err != nil || !slices.Contains(currentFiles, path) {
			writeError(w, http.StatusBadRequest, "Invalid file in order list")
			return
		}
		ordered = append(ordered, path)
	}
	if len(ordered) > 0 {
		session.SetFiles(ordered)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// MergeFiles godoc
// @Summary      Merge uploaded files
// @Description  Merges all uploaded PDFs in the session and returns a download URL
// @Tags         files
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200  {object}  DownloadResponse
// @Failure      400  {object}  ErrorResponse  "No files to merge"
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse  "Merge already in progress or done"
// @Router       /api/sessions/{sessionID}/actions/merge [post]
func (h *APIHandler) MergeFiles(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	session.Mutex.Lock()
	if session.MergeStatus == "in_progress" {
		session.Mutex.Unlock()
		writeError(w, http.StatusConflict, "Merge already in progress")
		return
	}
	if session.MergeStatus == "done" {
		session.Mutex.Unlock()
		writeError(w, http.StatusConflict, "Files already merged")
		return
	}
	session.MergeStatus = "in_progress"
	session.Mutex.Unlock()

	setStatus := func(status string) {
		session.Mutex.Lock()
		session.MergeStatus = status
		session.Mutex.Unlock()
	}

	files := session.GetFiles()
	if len(files) == 0 {
		setStatus("idle")
		writeError(w, http.StatusBadRequest, "No files to merge")
		return
	}

	outputPath := filepath.Join(h.OutputDir, utils.StoredName("", "merged.pdf"))
	if err := pdf.MergePDFs(files, outputPath); err != nil {
		setStatus("idle")
		h.Log.WithError(err).WithField("session_id", session.ID).Error("Error merging PDFs")
		writeError(w, http.StatusInternalServerError, "Failed to merge PDFs")
		return
	}
	if err := pdf.RemoveBookmarks(outputPath); err != nil {
		os.Remove(outputPath)
		setStatus("idle")
		h.Log.WithError(err).WithField("session_id", session.ID).Error("Error removing bookmarks")
		writeError(w, http.StatusInternalServerError, "Failed to process merged PDF")
		return
	}
	session.SetOutput(outputPath, "merged.pdf")
	setStatus("done")
	writeJSON(w, http.StatusOK, DownloadResponse{
		DownloadURL: downloadURL(session.ID, outputPath),
		Filename:    "merged.pdf",
	})
}

// DownloadFile godoc
// @Summary      Download the produced file
// @Description  Downloads the last file produced in the session. The session is removed shortly after.
// @Tags         files
// @Produce      application/pdf
// @Produce      application/zip
// @Param        sessionID  path      string  true  "Session ID"
// @Param        filename   path      string  true  "Output filename"
// @Success      200  {file}  file  "File download"
// @Failure      403  {object}  ErrorResponse  "Unauthorized access to file"
// @Failure      404  {object}  ErrorResponse
// @Router       /api/sessions/{sessionID}/files/{filename} [get]
func (h *APIHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	filename := chi.URLParam(r, "filename")

	session.Mutex.Lock()
	outputFile, outputName := session.OutputFile, session.OutputName
	session.Mutex.Unlock()

	if outputFile == "" || filepath.Base(outputFile) != filename || filepath.Join(h.OutputDir, filename) != outputFile {
		writeError(w, http.StatusForbidden, "Unauthorized access to file")
		return
	}
	if _, err := os.Stat(outputFile); os.IsNotExist(err) {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}
	contentType := "application/pdf"
	if strings.HasSuffix(outputFile, ".zip") {
		contentType = "application/zip"
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outputName))
	w.Header().Set("Content-Type", contentType)
	http.ServeFile(w, r, outputFile)
	go func() {
		time.Sleep(1 * time.Second)
		session.Cleanup()
		h.SessionManager.DeleteSession(session.ID)
	}()
}

// SignPDF godoc
// @Summary      Sign a PDF file
// @Description  Places an uploaded signature image on a PDF at document coordinates without an interactive editor
// @Tags         signature
// @Accept       json
// @Produce      json
// @Param        sessionID  path    string  true   "Session ID"
// @Param        request    body    SignRequest  true   "Sign request"
// @Success      200  {object}  DownloadResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/sessions/{sessionID}/sign [post]
func (h *APIHandler) SignPDF(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if req.SourcePDF == "" || req.Signature == "" || req.Page < 1 || req.Width <= 0 {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	sourcePDFPath, err := session.ResolveFile(req.SourcePDF)
	if err != nil || !slices.Contains(session.GetFiles(), sourcePDFPath) {
		writeError(w, http.StatusNotFound, "Source PDF not found in session")
		return
	}
	sigPath, err := session.ResolveFile(req.Signature)
	if err != nil || !slices.Contains(session.GetImages(), sigPath) {
		writeError(w, http.StatusNotFound, "Signature file not found in session")
		return
	}

	h.process(w, r, session, editor.Source{Document: sourcePDFPath, Overlay: sigPath}, editor.SignaturePayload{
		SourcePage: req.Page,
		X:          req.X,
		Y:          req.Y,
		Width:      req.Width,
	})
}

// SignRequest places a signature in document units, origin bottom-left.
type SignRequest struct {
	SourcePDF string  `json:"sourcePdf"`
	Signature string  `json:"signature"`
	Page      int     `json:"page"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
}

// process hands a payload to the processor and records the output.
func (h *APIHandler) process(w http.ResponseWriter, r *http.Request, session *session.Session, src editor.Source, payload editor.Payload) {
	res, err := h.Processor.Process(src, payload)
	if err != nil {
		h.fail(w, r, &editor.CollaboratorError{Op: "process " + string(payload.Kind()), Err: err})
		return
	}
	session.SetOutput(res.Path, res.Filename)
	writeJSON(w, http.StatusOK, DownloadResponse{
		DownloadURL: downloadURL(session.ID, res.Path),
		Filename:    res.Filename,
	})
}

// UploadSignature godoc
// @Summary      Upload a signature image
// @Description  Uploads a signature image (PNG/JPEG) to the session
// @Tags         signature
// @Accept       multipart/form-data
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        signature  formData  file    true  "Signature image file (PNG/JPEG)"
// @Success      200  {object}  FileResponse
// @Failure      400  {object}  ErrorResponse  "Bad request - invalid image format"
// @Failure      404  {object}  ErrorResponse
// @Router       /api/sessions/{sessionID}/signature [post]
func (h *APIHandler) UploadSignature(w http.ResponseWriter, r *http.Request) {
	h.uploadImage(w, r, "signature", "sig")
}

// UploadImage godoc
// @Summary      Upload an image
// @Description  Uploads a photographed page (PNG/JPEG/WebP) for scan staging
// @Tags         scan
// @Accept       multipart/form-data
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        image      formData  file    true  "Image file (PNG/JPEG/WebP)"
// @Success      200  {object}  FileResponse
// @Failure      400  {object}  ErrorResponse  "Bad request - invalid image format"
// @Failure      404  {object}  ErrorResponse
// @Router       /api/sessions/{sessionID}/images [post]
func (h *APIHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	h.uploadImage(w, r, "image", "img")
}

var validExtensions = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/webp": {".webp"},
}

func (h *APIHandler) uploadImage(w http.ResponseWriter, r *http.Request, field, prefix string) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	const maxUploadSize = 10 * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "File too large")
		return
	}

	file, handler, err := r.FormFile(field)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error retrieving file")
		return
	}
	defer file.Close()

	// Read first few bytes to verify it's an image
	header := make([]byte, 512)
	n, err := io.ReadFull(file, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		writeError(w, http.StatusBadRequest, "Failed to read file")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to process file")
		return
	}

	contentType := http.DetectContentType(header[:n])
	extensions, allowed := validExtensions[contentType]
	if !allowed {
		writeError(w, http.StatusBadRequest, "Invalid image format. Only PNG, JPEG and WebP images are allowed")
		return
	}
	if !slices.Contains(extensions, strings.ToLower(filepath.Ext(handler.Filename))) {
		writeError(w, http.StatusBadRequest, "File extension doesn't match content type")
		return
	}

	path, err := h.store(file, utils.StoredName(prefix, handler.Filename))
	if err != nil {
		h.Log.WithError(err).Error("Failed to store upload")
		writeError(w, http.StatusInternalServerError, "Failed to save file")
		return
	}

	session.AddImage(path)
	h.Log.WithFields(logrus.Fields{"session_id": session.ID, "file": filepath.Base(path)}).Info("Image uploaded")
	writeJSON(w, http.StatusOK, FileResponse{
		Filename: filepath.Base(path),
		Name:     utils.DisplayName(path),
		Size:     handler.Size,
	})
}
