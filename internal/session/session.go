// Package session manages the client workspaces of the editing service.
//
// Types:
//   - Session: Tracks uploaded files, the last output file and the single
//     editor that may be open in the workspace.
//   - SessionManager: Manages all active sessions.
//
// Expected outputs:
// - Session IDs are unique (UUID)
// - At most one editor is open per session; opening another returns ErrEditorOpen
// - Cleanup cancels the open editor and removes all files of a session
//
// Used by API handlers to manage user state.
package session

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go-pdfeditor/internal/editor"
	"go-pdfeditor/internal/overlay"
	"go-pdfeditor/internal/preview"
	"go-pdfeditor/internal/render"
	"go-pdfeditor/internal/utils"
)

var (
	ErrEditorOpen   = errors.New("an editor is already open in this session")
	ErrNoEditor     = errors.New("no editor is open in this session")
	ErrFileNotFound = errors.New("file not found in session")
)

// EditorConfig holds what the session needs to open editors.
type EditorConfig struct {
	Renderer       render.Renderer
	PreviewDir     string
	CaptureTimeout time.Duration
	ThumbnailWidth int
}

type Session struct {
	ID          string
	Files       []string
	Images      []string
	OutputFile  string
	OutputName  string
	CreatedAt   time.Time
	MergeStatus string
	Mutex       sync.Mutex

	editor      *editor.Session
	captureGen  int
	previewRoot string
}

type SessionManager struct {
	Sessions map[string]*Session
	Mutex    sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		Sessions: make(map[string]*Session),
	}
}

func (sm *SessionManager) CreateSession() *Session {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()

	session := &Session{
		ID:          utils.GenerateUUID(),
		Files:       []string{},
		CreatedAt:   time.Now(),
		MergeStatus: "idle",
	}
	sm.Sessions[session.ID] = session
	return session
}

func (sm *SessionManager) GetSession(id string) (*Session, bool) {
	sm.Mutex.RLock()
	defer sm.Mutex.RUnlock()
	session, exists := sm.Sessions[id]
	return session, exists
}

func (sm *SessionManager) DeleteSession(id string) {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()
	delete(sm.Sessions, id)
}

// Expire cleans up and forgets every session created more than ttl ago.
// It returns the IDs it removed.
func (sm *SessionManager) Expire(ttl time.Duration) []string {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()
	var expired []string
	for id, session := range sm.Sessions {
		if time.Since(session.CreatedAt) > ttl {
			session.Cleanup()
			delete(sm.Sessions, id)
			expired = append(expired, id)
		}
	}
	return expired
}

// CleanupAll removes every session and its files.
func (sm *SessionManager) CleanupAll() {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()
	for id, session := range sm.Sessions {
		session.Cleanup()
		delete(sm.Sessions, id)
	}
}

func (s *Session) AddFile(filepath string) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	s.Files = append(s.Files, filepath)
}

func (s *Session) AddImage(filepath string) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	s.Images = append(s.Images, filepath)
}

func (s *Session) SetFiles(files []string) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	s.Files = files
}

func (s *Session) GetFiles() []string {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	out := make([]string, len(s.Files))
	copy(out, s.Files)
	return out
}

func (s *Session) GetImages() []string {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	out := make([]string, len(s.Images))
	copy(out, s.Images)
	return out
}

// SetOutput records the last produced file and its download name. A
// previous output is removed.
func (s *Session) SetOutput(path, name string) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.OutputFile != "" && s.OutputFile != path {
		os.Remove(s.OutputFile)
	}
	s.OutputFile = path
	s.OutputName = name
}

// ResolveFile finds a session file by its stored base name. Uploaded PDFs,
// images and the output file are searched.
func (s *Session) ResolveFile(name string) (string, error) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	return s.resolve(name)
}

func (s *Session) resolve(name string) (string, error) {
	name = filepath.Base(name)
	for _, list := range [][]string{s.Files, s.Images, {s.OutputFile}} {
		for _, p := range list {
			if p != "" && filepath.Base(p) == name {
				return p, nil
			}
		}
	}
	return "", ErrFileNotFound
}

// OpenEditor starts an editor of kind k on src. Only one editor may be open
// at a time.
func (s *Session) OpenEditor(k editor.Kind, src editor.Source, cfg EditorConfig) (*editor.Session, error) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.editor != nil && !s.editor.Closed() {
		return nil, ErrEditorOpen
	}
	id := utils.GenerateUUID()
	s.previewRoot = filepath.Join(cfg.PreviewDir, s.ID)
	registry := preview.NewRegistry(filepath.Join(s.previewRoot, id))
	opts := editor.Options{ThumbnailWidth: cfg.ThumbnailWidth}
	if cfg.CaptureTimeout > 0 {
		opts.Capture = s.capture(cfg.CaptureTimeout)
	}
	ed, err := editor.Open(id, k, src, cfg.Renderer, registry, opts)
	if err != nil {
		return nil, err
	}
	s.editor = ed
	return ed, nil
}

// WithEditor runs fn on the open editor while holding the session lock.
// A closed editor is dropped from the slot once fn returns.
func (s *Session) WithEditor(fn func(ed *editor.Session) error) error {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.editor == nil {
		return ErrNoEditor
	}
	err := fn(s.editor)
	if s.editor.Closed() {
		s.editor = nil
	}
	return err
}

func (s *Session) closeEditor() {
	if s.editor == nil {
		return
	}
	if !s.editor.Closed() {
		_ = s.editor.Cancel()
	}
	s.editor = nil
}

// HasEditor reports whether an editor is open.
func (s *Session) HasEditor() bool {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	return s.editor != nil && !s.editor.Closed()
}

// capture returns the pointer-capture hook for editors of this session.
// If no accepted pointer move or pointer-up arrives within timeout, the
// interaction is ended as if the pointer had been released.
func (s *Session) capture(timeout time.Duration) overlay.CaptureFunc {
	return func() overlay.Capture {
		// Called from PointerDown, with s.Mutex held.
		s.captureGen++
		gen := s.captureGen
		last := time.Now()
		var timer *time.Timer
		timer = time.AfterFunc(timeout, func() {
			s.Mutex.Lock()
			defer s.Mutex.Unlock()
			if s.captureGen != gen || s.editor == nil || s.editor.Closed() {
				return
			}
			// a move raced the timer
			if idle := time.Since(last); idle < timeout {
				timer.Reset(timeout - idle)
				return
			}
			_, _ = s.editor.Pointer(editor.PointerUp, overlay.Body, overlay.Point{})
		})
		return overlay.Capture{
			Touch: func() {
				last = time.Now()
				timer.Reset(timeout)
			},
			Release: func() {
				s.captureGen++
				timer.Stop()
			},
		}
	}
}

func (s *Session) Cleanup() {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	s.closeEditor()
	for _, file := range s.Files {
		os.Remove(file)
	}
	for _, file := range s.Images {
		os.Remove(file)
	}
	if s.OutputFile != "" {
		os.Remove(s.OutputFile)
	}
	if s.previewRoot != "" {
		os.RemoveAll(s.previewRoot)
	}
}
