package handlers

import (
	"net/http"
	"path/filepath"
	"slices"

	"go-pdfeditor/internal/pages"
	"go-pdfeditor/internal/pdf"
	"go-pdfeditor/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// OperationRequest selects a session PDF and the operation's parameters.
type OperationRequest struct {
	File     string `json:"file"`
	Text     string `json:"text,omitempty"`
	Password string `json:"password,omitempty"`
	Pages    string `json:"pages,omitempty"`
	Angle    int    `json:"angle,omitempty"`
}

type operation struct {
	prefix string
	run    func(in, out string, req OperationRequest) error
}

var operations = map[string]operation{
	"watermark": {"watermarked", func(in, out string, req OperationRequest) error {
		return pdf.AddTextWatermark(in, req.Text, out)
	}},
	"lock": {"locked", func(in, out string, req OperationRequest) error {
		return pdf.Lock(in, req.Password, out)
	}},
	"unlock": {"unlocked", func(in, out string, req OperationRequest) error {
		return pdf.Unlock(in, req.Password, out)
	}},
	"rotate": {"rotated", func(in, out string, req OperationRequest) error {
		return pdf.RotateAll(in, req.Angle, out)
	}},
	"delete-pages": {"deleted", func(in, out string, req OperationRequest) error {
		n, err := pdf.PageCount(in)
		if err != nil {
			return err
		}
		remove, err := pages.ParseRange(req.Pages, n)
		if err != nil {
			return err
		}
		return pdf.DeletePages(in, remove, out)
	}},
}

// RunOperation godoc
// @Summary      Run a single-file operation
// @Description  Applies watermark, lock, unlock, rotate or delete-pages to an uploaded PDF
// @Tags         operations
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string            true  "Session ID"
// @Param        operation  path  string            true  "watermark | lock | unlock | rotate | delete-pages"
// @Param        request    body  OperationRequest  true  "Operation parameters"
// @Success      200  {object}  DownloadResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse  "The PDF could not be processed"
// @Router       /api/sessions/{sessionID}/actions/{operation} [post]
func (h *APIHandler) RunOperation(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "operation")
	op, known := operations[name]
	if !known {
		writeError(w, http.StatusNotFound, "Unknown operation")
		return
	}
	var req OperationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	in, err := session.ResolveFile(req.File)
	if err != nil || !slices.Contains(session.GetFiles(), in) {
		writeError(w, http.StatusNotFound, "PDF not found in session")
		return
	}
	display := utils.DisplayName(in)
	out := filepath.Join(h.OutputDir, utils.StoredName("", op.prefix+"-"+display))

	log := h.Log.WithFields(logrus.Fields{"session_id": session.ID, "op": name})
	if err := op.run(in, out, req); err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			// pdfcpu rejects unreadable or wrongly encrypted input
			status = http.StatusUnprocessableEntity
		}
		log.WithError(err).Warn("Operation failed")
		writeError(w, status, "Failed to "+name+": "+err.Error())
		return
	}
	filename := op.prefix + "_" + display
	session.SetOutput(out, filename)
	log.Info("Operation finished")
	writeJSON(w, http.StatusOK, DownloadResponse{
		DownloadURL: downloadURL(session.ID, out),
		Filename:    filename,
	})
}
