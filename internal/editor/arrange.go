package editor

import (
	"fmt"

	"go-pdfeditor/internal/pages"
	"go-pdfeditor/internal/scan"
)

// Pages returns the page descriptors of an arrange or split session.
func (s *Session) Pages() ([]pages.Page, error) {
	if err := s.check(KindArrange, KindExtract); err != nil {
		return nil, err
	}
	return s.pages.Pages(), nil
}

// Reorder moves the item at from to position to. Arrange sessions move
// pages; scan sessions move staged images.
func (s *Session) Reorder(from, to int) error {
	if err := s.check(KindArrange, KindScan); err != nil {
		return err
	}
	if s.Kind == KindScan {
		staged, err := pages.Move(s.staged, from, to)
		if err != nil {
			return err
		}
		s.staged = staged
		return nil
	}
	return s.pages.Reorder(from, to)
}

// MoveByID drops item activeID onto the position of overID.
func (s *Session) MoveByID(activeID, overID string) error {
	if err := s.check(KindArrange, KindScan); err != nil {
		return err
	}
	if s.Kind == KindScan {
		from, to := s.stagedIndex(activeID), s.stagedIndex(overID)
		if from < 0 || to < 0 {
			return fmt.Errorf("%w: %q or %q", pages.ErrUnknownPage, activeID, overID)
		}
		return s.Reorder(from, to)
	}
	return s.pages.MoveByID(activeID, overID)
}

// Step moves an item delta positions.
func (s *Session) Step(id string, delta int) error {
	if err := s.check(KindArrange, KindScan); err != nil {
		return err
	}
	if s.Kind == KindScan {
		from := s.stagedIndex(id)
		if from < 0 {
			return fmt.Errorf("%w: %q", pages.ErrUnknownPage, id)
		}
		return s.Reorder(from, from+delta)
	}
	return s.pages.Step(id, delta)
}

// Rotate turns a page of an arrange session by 90 degrees.
func (s *Session) Rotate(id string) error {
	if err := s.check(KindArrange); err != nil {
		return err
	}
	return s.pages.Rotate(id)
}

// ToggleSelect flips the selection of a page in a split session.
func (s *Session) ToggleSelect(id string) error {
	if err := s.check(KindExtract); err != nil {
		return err
	}
	return s.pages.ToggleSelect(id)
}

// Staged returns the staged images of a scan session in output order.
func (s *Session) Staged() ([]StagedImage, error) {
	if err := s.check(KindScan); err != nil {
		return nil, err
	}
	out := make([]StagedImage, len(s.staged))
	copy(out, s.staged)
	return out, nil
}

// Effect returns the selected scan effect.
func (s *Session) Effect() scan.Effect {
	return s.effect
}

// SetEffect selects the scan effect.
func (s *Session) SetEffect(e scan.Effect) error {
	if err := s.check(KindScan); err != nil {
		return err
	}
	s.effect = e
	return nil
}

// OutputFormat returns the selected scan output format.
func (s *Session) OutputFormat() scan.OutputFormat {
	return s.format
}

// SetOutputFormat selects between a PDF and an image archive.
func (s *Session) SetOutputFormat(f scan.OutputFormat) error {
	if err := s.check(KindScan); err != nil {
		return err
	}
	s.format = f
	return nil
}

func (s *Session) stagedIndex(id string) int {
	for i, it := range s.staged {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) commitScan() (Payload, error) {
	if len(s.staged) == 0 {
		return nil, precondition("at least one image is required")
	}
	files := make([]string, len(s.staged))
	for i, it := range s.staged {
		files[i] = it.Path
	}
	return ScanPayload{Files: files, Effect: s.effect, OutputFormat: s.format}, nil
}
