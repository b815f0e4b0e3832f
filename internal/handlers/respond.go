package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-pdfeditor/internal/editor"
	"go-pdfeditor/internal/pages"
	"go-pdfeditor/internal/pdf"
	"go-pdfeditor/internal/preview"
	"go-pdfeditor/internal/render"
	"go-pdfeditor/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// ErrorResponse is the body of every JSON error.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	var pre *editor.PreconditionError
	switch {
	case errors.As(err, &pre):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrEditorOpen):
		return http.StatusConflict
	case errors.Is(err, session.ErrNoEditor), errors.Is(err, editor.ErrClosed),
		errors.Is(err, preview.ErrNotFound), errors.Is(err, session.ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, editor.ErrWrongKind), errors.Is(err, pages.ErrIndexOutOfRange),
		errors.Is(err, pages.ErrUnknownPage), errors.Is(err, pages.ErrInvalidRange),
		errors.Is(err, render.ErrPageOutOfRange), errors.Is(err, pdf.ErrNoPagesLeft),
		errors.Is(err, pdf.ErrInvalidRotation), errors.Is(err, pdf.ErrEmptyPassword),
		errors.Is(err, pdf.ErrEmptyText):
		return http.StatusBadRequest
	case editor.IsCollaborator(err):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (h *APIHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	var pre *editor.PreconditionError
	if errors.As(err, &pre) {
		msg = pre.Reason
	}
	entry := h.Log.WithFields(logrus.Fields{
		"session_id": chi.URLParam(r, "sessionID"),
		"path":       r.URL.Path,
		"status":     status,
	})
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error("Request failed")
		if status == http.StatusInternalServerError {
			msg = "internal error"
		}
	} else {
		entry.WithError(err).Debug("Request rejected")
	}
	writeError(w, status, msg)
}
