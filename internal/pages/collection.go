// Package pages models an ordered set of page descriptors: display order,
// per-page rotation and selection.
//
// Descriptor identities are assigned once and never change, so a page keeps
// its rotation and selection while it is dragged around. Number always
// refers to the source page the descriptor renders, independent of its
// position in the collection.
package pages

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrIndexOutOfRange = errors.New("page index out of range")
	ErrUnknownPage     = errors.New("unknown page")
)

// Page is one descriptor.
type Page struct {
	ID       string `json:"id"`
	Number   int    `json:"pageNumber"`
	Rotation int    `json:"rotation"`
	Selected bool   `json:"selected"`
}

// Collection is an ordered sequence of descriptors. The zero value is an
// empty collection. It is not safe for concurrent use.
type Collection struct {
	pages []Page
}

// New returns a collection with one descriptor per page 1..count in source
// order.
func New(count int) *Collection {
	c := &Collection{pages: make([]Page, count)}
	for i := range c.pages {
		c.pages[i] = Page{ID: uuid.NewString(), Number: i + 1}
	}
	return c
}

// Len returns the number of descriptors.
func (c *Collection) Len() int {
	return len(c.pages)
}

// Pages returns a copy of the descriptors in display order.
func (c *Collection) Pages() []Page {
	out := make([]Page, len(c.pages))
	copy(out, c.pages)
	return out
}

// Index returns the display position of the descriptor with the given ID,
// or -1.
func (c *Collection) Index(id string) int {
	for i, p := range c.pages {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (c *Collection) lookup(id string) (*Page, error) {
	i := c.Index(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, id)
	}
	return &c.pages[i], nil
}

// Reorder moves the descriptor at from to position to.
func (c *Collection) Reorder(from, to int) error {
	pages, err := Move(c.pages, from, to)
	if err != nil {
		return err
	}
	c.pages = pages
	return nil
}

// MoveByID moves the descriptor activeID to the position currently held by
// overID, as at the end of a drag gesture.
func (c *Collection) MoveByID(activeID, overID string) error {
	from, to := c.Index(activeID), c.Index(overID)
	if from < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownPage, activeID)
	}
	if to < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownPage, overID)
	}
	return c.Reorder(from, to)
}

// Step moves a descriptor delta positions, as a keyboard move does.
func (c *Collection) Step(id string, delta int) error {
	from := c.Index(id)
	if from < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownPage, id)
	}
	return c.Reorder(from, from+delta)
}

// Rotate advances a descriptor's rotation by 90 degrees.
func (c *Collection) Rotate(id string) error {
	p, err := c.lookup(id)
	if err != nil {
		return err
	}
	p.Rotation = NextRotation(p.Rotation)
	return nil
}

// ToggleSelect flips a descriptor's selection flag.
func (c *Collection) ToggleSelect(id string) error {
	p, err := c.lookup(id)
	if err != nil {
		return err
	}
	p.Selected = !p.Selected
	return nil
}

// Order returns the source page numbers in display order.
func (c *Collection) Order() []int {
	out := make([]int, len(c.pages))
	for i, p := range c.pages {
		out[i] = p.Number
	}
	return out
}

// Rotations maps every source page number to its rotation.
func (c *Collection) Rotations() map[int]int {
	out := make(map[int]int, len(c.pages))
	for _, p := range c.pages {
		out[p.Number] = p.Rotation
	}
	return out
}

// Selected returns the source page numbers of selected descriptors in
// display order.
func (c *Collection) Selected() []int {
	var out []int
	for _, p := range c.pages {
		if p.Selected {
			out = append(out, p.Number)
		}
	}
	return out
}

// NextRotation returns r+90 modulo 360.
func NextRotation(r int) int {
	return ((r+90)%360 + 360) % 360
}

// Move returns items with the element at from moved to position to. All
// other elements keep their relative order. The input slice is not
// modified.
func Move[T any](items []T, from, to int) ([]T, error) {
	n := len(items)
	if from < 0 || from >= n {
		return nil, fmt.Errorf("%w: from=%d len=%d", ErrIndexOutOfRange, from, n)
	}
	if to < 0 || to >= n {
		return nil, fmt.Errorf("%w: to=%d len=%d", ErrIndexOutOfRange, to, n)
	}
	out := make([]T, 0, n)
	moved := items[from]
	for i, it := range items {
		if i == from {
			continue
		}
		if len(out) == to {
			out = append(out, moved)
		}
		out = append(out, it)
	}
	if len(out) == to {
		out = append(out, moved)
	}
	return out, nil
}
