package handlers

import (
	"fmt"
	"net/http"
	"slices"

	"go-pdfeditor/internal/editor"
	"go-pdfeditor/internal/geometry"
	"go-pdfeditor/internal/overlay"
	"go-pdfeditor/internal/preview"
	"go-pdfeditor/internal/render"
	"go-pdfeditor/internal/scan"
	"go-pdfeditor/internal/session"

	"github.com/disintegration/imaging"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// OpenEditorRequest names the workflow and the session files it works on.
// Document defaults to the first uploaded PDF, the signature image to the
// last uploaded image and scan images to every uploaded image.
type OpenEditorRequest struct {
	Kind     string   `json:"kind"`
	Document string   `json:"document,omitempty"`
	Images   []string `json:"images,omitempty"`
}

// PointerRequest is one pointer event in page-surface pixels.
type PointerRequest struct {
	Action string  `json:"action"`
	Target string  `json:"target"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// PointerResponse reports whether the event changed anything.
type PointerResponse struct {
	Accepted bool        `json:"accepted"`
	Editor   editor.View `json:"editor"`
}

// ReorderRequest is either an index move (from, to), a drag end (activeId,
// overId) or a keyboard step (id, delta).
type ReorderRequest struct {
	From     *int   `json:"from,omitempty"`
	To       *int   `json:"to,omitempty"`
	ActiveID string `json:"activeId,omitempty"`
	OverID   string `json:"overId,omitempty"`
	ID       string `json:"id,omitempty"`
	Delta    int    `json:"delta,omitempty"`
}

// resolveSource maps request filenames onto session files.
func resolveSource(s *session.Session, k editor.Kind, document string, images []string) (editor.Source, error) {
	var src editor.Source
	files, uploaded := s.GetFiles(), s.GetImages()

	if k != editor.KindScan {
		switch {
		case document != "":
			path, err := s.ResolveFile(document)
			if err != nil || !slices.Contains(files, path) {
				return src, fmt.Errorf("%w: %s", session.ErrFileNotFound, document)
			}
			src.Document = path
		case len(files) > 0:
			src.Document = files[0]
		}
	}

	var picked []string
	for _, name := range images {
		path, err := s.ResolveFile(name)
		if err != nil || !slices.Contains(uploaded, path) {
			return src, fmt.Errorf("%w: %s", session.ErrFileNotFound, name)
		}
		picked = append(picked, path)
	}
	if len(images) == 0 {
		picked = uploaded
	}

	switch k {
	case editor.KindSignature:
		if len(picked) > 0 {
			src.Overlay = picked[len(picked)-1]
		}
	case editor.KindScan:
		src.Images = picked
	}
	return src, nil
}

// OpenEditor godoc
// @Summary      Open an editor
// @Description  Opens an interactive editor on session files. Only one editor can be open per session.
// @Tags         editor
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string             true  "Session ID"
// @Param        request    body  OpenEditorRequest  true  "Editor kind and files"
// @Success      201  {object}  editor.View
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse  "An editor is already open"
// @Failure      422  {object}  ErrorResponse  "Missing input files"
// @Failure      502  {object}  ErrorResponse  "Document could not be loaded"
// @Router       /api/sessions/{sessionID}/editor [post]
func (h *APIHandler) OpenEditor(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req OpenEditorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	kind, err := editor.ParseKind(req.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	src, err := resolveSource(s, kind, req.Document, req.Images)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ed, err := s.OpenEditor(kind, src, h.Editors)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Log.WithFields(logrus.Fields{
		"session_id":  s.ID,
		"editor_id":   ed.ID,
		"editor_kind": kind,
	}).Info("Editor opened")

	var view editor.View
	_ = s.WithEditor(func(ed *editor.Session) error {
		view = ed.View()
		return nil
	})
	writeJSON(w, http.StatusCreated, view)
}

// withEditor runs fn on the open editor and answers with the resulting view.
func (h *APIHandler) withEditor(w http.ResponseWriter, r *http.Request, fn func(ed *editor.Session) error) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var view editor.View
	err := s.WithEditor(func(ed *editor.Session) error {
		err := fn(ed)
		view = ed.View()
		return err
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// EditorState godoc
// @Summary      Get the editor state
// @Tags         editor
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  editor.View
// @Failure      404  {object}  ErrorResponse  "No editor is open"
// @Router       /api/sessions/{sessionID}/editor [get]
func (h *APIHandler) EditorState(w http.ResponseWriter, r *http.Request) {
	h.withEditor(w, r, func(*editor.Session) error { return nil })
}

// CancelEditor godoc
// @Summary      Cancel the editor
// @Description  Discards all local edits and releases every preview
// @Tags         editor
// @Param        sessionID  path  string  true  "Session ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse  "No editor is open"
// @Router       /api/sessions/{sessionID}/editor [delete]
func (h *APIHandler) CancelEditor(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.WithEditor(func(ed *editor.Session) error { return ed.Cancel() }); err != nil {
		h.fail(w, r, err)
		return
	}
	h.Log.WithField("session_id", s.ID).Info("Editor cancelled")
	w.WriteHeader(http.StatusNoContent)
}

// ReplaceSource godoc
// @Summary      Replace the editor source
// @Description  Switches the editor to other session files. All edits are discarded.
// @Tags         editor
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string             true  "Session ID"
// @Param        request    body  OpenEditorRequest  true  "New files; kind is ignored"
// @Success      200  {object}  editor.View
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse  "Document could not be loaded; the editor is closed"
// @Router       /api/sessions/{sessionID}/editor/source [put]
func (h *APIHandler) ReplaceSource(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req OpenEditorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	var kind editor.Kind
	if err := s.WithEditor(func(ed *editor.Session) error {
		kind = ed.Kind
		return nil
	}); err != nil {
		h.fail(w, r, err)
		return
	}
	// resolved outside WithEditor, which holds the session lock
	src, err := resolveSource(s, kind, req.Document, req.Images)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.withEditor(w, r, func(ed *editor.Session) error { return ed.ReplaceSource(src) })
}

// MeasureSurface godoc
// @Summary      Measure the page surface
// @Description  Fits the current page into the editor column. The first measurement is kept for the rest of the editor.
// @Tags         signature
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Param        request    body  object  true  "{ containerWidth: number }"
// @Success      200  {object}  editor.View
// @Failure      400  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /api/sessions/{sessionID}/editor/measure [post]
func (h *APIHandler) MeasureSurface(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ContainerWidth float64 `json:"containerWidth"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	h.withEditor(w, r, func(ed *editor.Session) error {
		_, err := ed.Measure(req.ContainerWidth)
		return err
	})
}

// SetPage godoc
// @Summary      Select the signature page
// @Description  Sets the page directly, or moves by delta clamped to the document
// @Tags         signature
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Param        request    body  object  true  "{ page: int } or { delta: int }"
// @Success      200  {object}  editor.View
// @Failure      400  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse  "Page out of range"
// @Router       /api/sessions/{sessionID}/editor/page [put]
func (h *APIHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page  *int `json:"page"`
		Delta *int `json:"delta"`
	}
	if err := decodeJSON(r, &req); err != nil || (req.Page == nil) == (req.Delta == nil) {
		writeError(w, http.StatusBadRequest, "Exactly one of page and delta is required")
		return
	}
	h.withEditor(w, r, func(ed *editor.Session) error {
		if req.Page != nil {
			return ed.SetPage(*req.Page)
		}
		_, err := ed.Navigate(*req.Delta)
		return err
	})
}

// Pointer godoc
// @Summary      Send a pointer event
// @Description  Drives the signature overlay. Moves that would break a constraint are ignored and reported as not accepted.
// @Tags         signature
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string          true  "Session ID"
// @Param        request    body  PointerRequest  true  "Pointer event"
// @Success      200  {object}  PointerResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /api/sessions/{sessionID}/editor/pointer [post]
func (h *APIHandler) Pointer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req PointerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	action := editor.PointerAction(req.Action)
	switch action {
	case editor.PointerDown, editor.PointerMove, editor.PointerUp:
	default:
		writeError(w, http.StatusBadRequest, "action must be down, move or up")
		return
	}
	target, ok := overlay.ParseTarget(req.Target)
	if !ok {
		writeError(w, http.StatusBadRequest, "target must be body or handle")
		return
	}

	var res PointerResponse
	err := s.WithEditor(func(ed *editor.Session) error {
		accepted, err := ed.Pointer(action, target, overlay.Point{X: req.X, Y: req.Y})
		res = PointerResponse{Accepted: accepted, Editor: ed.View()}
		return err
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// PlaceOverlay godoc
// @Summary      Place the signature
// @Description  Sets the signature position and width in page-surface pixels. The height follows the aspect ratio.
// @Tags         signature
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Param        request    body  object  true  "{ x: number, y: number, width: number }"
// @Success      200  {object}  editor.View
// @Failure      400  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse  "Page not measured or placement outside the page"
// @Router       /api/sessions/{sessionID}/editor/overlay [put]
func (h *APIHandler) PlaceOverlay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		Width float64 `json:"width"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	h.withEditor(w, r, func(ed *editor.Session) error {
		return ed.PlaceOverlay(geometry.Rect{X: req.X, Y: req.Y, Width: req.Width})
	})
}

// Reorder godoc
// @Summary      Reorder pages or staged images
// @Tags         editor
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string          true  "Session ID"
// @Param        request    body  ReorderRequest  true  "Move"
// @Success      200  {object}  editor.View
// @Failure      400  {object}  ErrorResponse  "Unknown page or index out of range"
// @Router       /api/sessions/{sessionID}/editor/reorder [post]
func (h *APIHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	h.withEditor(w, r, func(ed *editor.Session) error {
		switch {
		case req.ActiveID != "" || req.OverID != "":
			return ed.MoveByID(req.ActiveID, req.OverID)
		case req.ID != "":
			return ed.Step(req.ID, req.Delta)
		case req.From != nil && req.To != nil:
			return ed.Reorder(*req.From, *req.To)
		}
		return &editor.PreconditionError{Reason: "from/to, activeId/overId or id/delta is required"}
	})
}

// RotatePage godoc
// @Summary      Rotate a page
// @Description  Turns one page of the arrange editor by 90 degrees clockwise
// @Tags         arrange
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Param        pageID     path  string  true  "Page descriptor ID"
// @Success      200  {object}  editor.View
// @Failure      400  {object}  ErrorResponse
// @Router       /api/sessions/{sessionID}/editor/pages/{pageID}/rotate [post]
func (h *APIHandler) RotatePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "pageID")
	h.withEditor(w, r, func(ed *editor.Session) error { return ed.Rotate(id) })
}

// ToggleSelect godoc
// @Summary      Toggle page selection
// @Description  Selects or deselects one page of the split editor
// @Tags         split
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Param        pageID     path  string  true  "Page descriptor ID"
// @Success      200  {object}  editor.View
// @Failure      400  {object}  ErrorResponse
// @Router       /api/sessions/{sessionID}/editor/pages/{pageID}/select [post]
func (h *APIHandler) ToggleSelect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "pageID")
	h.withEditor(w, r, func(ed *editor.Session) error { return ed.ToggleSelect(id) })
}

// SetScanOptions godoc
// @Summary      Choose scan effect and output
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Param        request    body  object  true  "{ effect: original|scan|magic_color, outputFormat: pdf|jpg }"
// @Success      200  {object}  editor.View
// @Failure      400  {object}  ErrorResponse
// @Router       /api/sessions/{sessionID}/editor/scan [put]
func (h *APIHandler) SetScanOptions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Effect       string `json:"effect"`
		OutputFormat string `json:"outputFormat"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	var (
		effect scan.Effect
		format scan.OutputFormat
		err    error
	)
	if req.Effect != "" {
		if effect, err = scan.ParseEffect(req.Effect); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.OutputFormat != "" {
		if format, err = scan.ParseFormat(req.OutputFormat); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	h.withEditor(w, r, func(ed *editor.Session) error {
		if effect != "" {
			if err := ed.SetEffect(effect); err != nil {
				return err
			}
		}
		if format != "" {
			return ed.SetOutputFormat(format)
		}
		return nil
	})
}

// Preview godoc
// @Summary      Fetch a preview
// @Description  Serves a preview issued by the open editor. Scan thumbnails are served with the selected effect applied.
// @Tags         editor
// @Produce      image/png
// @Produce      application/pdf
// @Param        sessionID  path  string  true  "Session ID"
// @Param        token      path  string  true  "Preview token"
// @Success      200  {file}  file
// @Failure      404  {object}  ErrorResponse
// @Router       /api/sessions/{sessionID}/editor/previews/{token} [get]
func (h *APIHandler) Preview(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	token := chi.URLParam(r, "token")
	var (
		item   preview.Item
		effect scan.Effect
	)
	err := s.WithEditor(func(ed *editor.Session) error {
		var err error
		item, err = ed.Preview(token)
		if ed.Kind == editor.KindScan {
			effect = ed.Effect()
		}
		return err
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if !item.Owned || effect == "" || effect == scan.EffectNone {
		w.Header().Set("Content-Type", item.ContentType)
		http.ServeFile(w, r, item.Path)
		return
	}
	img, err := render.LoadImage(item.Path)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := imaging.Encode(w, scan.Apply(img, effect), imaging.PNG); err != nil {
		h.Log.WithError(err).Warn("Failed to write preview")
	}
}

// CommitEditor godoc
// @Summary      Commit the editor
// @Description  Validates the edits, closes the editor and produces the output file
// @Tags         editor
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  DownloadResponse
// @Failure      404  {object}  ErrorResponse  "No editor is open"
// @Failure      422  {object}  ErrorResponse  "Precondition failed; the editor stays open"
// @Failure      502  {object}  ErrorResponse  "Processing failed; the editor is closed"
// @Router       /api/sessions/{sessionID}/editor/commit [post]
func (h *APIHandler) CommitEditor(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var (
		src     editor.Source
		payload editor.Payload
	)
	err := s.WithEditor(func(ed *editor.Session) error {
		src = ed.Source()
		var err error
		payload, err = ed.Commit()
		return err
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Log.WithFields(logrus.Fields{
		"session_id":  s.ID,
		"editor_kind": payload.Kind(),
	}).Info("Editor committed")
	h.process(w, r, s, src, payload)
}
