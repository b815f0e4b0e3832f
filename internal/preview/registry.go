// Package preview keeps the transient preview resources of one editor
// session.
//
// Every preview a session hands to the client is registered here under an
// unguessable token. Closing the session calls ReleaseAll, which forgets
// every token and deletes the files the registry created itself.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("preview not found")

// Item is one registered preview.
type Item struct {
	Token       string
	Path        string
	ContentType string
	// Owned items were written by the registry and are deleted on release.
	Owned bool
}

// Registry is an arena of previews. It is safe for concurrent use.
type Registry struct {
	dir   string
	mu    sync.Mutex
	items map[string]Item
}

// NewRegistry returns a registry that writes generated previews into dir.
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir, items: make(map[string]Item)}
}

// Register exposes an existing file. The file is not deleted on release.
func (r *Registry) Register(path, contentType string) string {
	token := uuid.NewString()
	r.mu.Lock()
	r.items[token] = Item{Token: token, Path: path, ContentType: contentType}
	r.mu.Unlock()
	return token
}

// Store encodes img as PNG into the registry directory and registers it.
func (r *Registry) Store(img image.Image) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", err
	}
	token := uuid.NewString()
	path := filepath.Join(r.dir, "preview-"+token+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to encode preview: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	r.mu.Lock()
	r.items[token] = Item{Token: token, Path: path, ContentType: "image/png", Owned: true}
	r.mu.Unlock()
	return token, nil
}

// Lookup returns the item registered under token.
func (r *Registry) Lookup(token string) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[token]
	if !ok {
		return Item{}, ErrNotFound
	}
	return it, nil
}

// Len returns the number of live previews.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// ReleaseAll forgets every preview and removes owned files. It returns the
// number of previews released.
func (r *Registry) ReleaseAll() int {
	r.mu.Lock()
	items := r.items
	r.items = make(map[string]Item)
	r.mu.Unlock()

	for _, it := range items {
		if it.Owned {
			os.Remove(it.Path)
		}
	}
	return len(items)
}
