package drawing

import (
	"errors"
	"fmt"
	"image"
	"slices"
	"strings"
)

var (
	ErrDuplicateID   = errors.New("duplicate shape id")
	ErrInvalidShape  = errors.New("invalid shape")
	ErrNotFound      = errors.New("shape not found")
	ErrNotResizable  = errors.New("shape has no resize handles")
	ErrUnknownHandle = errors.New("unknown resize handle")
	ErrDegenerate    = errors.New("resize would collapse the shape")
	ErrTooLarge      = errors.New("drawing would be too large")
)

// Store is the ordered set of shapes on the canvas. The zero value is not
// usable; call NewStore.
type Store struct {
	shapes []Shape
	// used remembers every id ever added so ids stay unique for the lifetime
	// of the store, even after the shape is removed.
	used map[string]struct{}
}

func NewStore() *Store {
	return &Store{used: map[string]struct{}{}}
}

func (s *Store) Add(shape Shape) error {
	if shape == nil {
		return fmt.Errorf("%w: nil shape", ErrInvalidShape)
	}
	id := shape.Head().ID
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidShape)
	}
	if _, ok := s.used[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	if err := Validate(shape); err != nil {
		return err
	}
	if err := s.fits(shape, -1); err != nil {
		return err
	}
	s.used[id] = struct{}{}
	s.shapes = append(s.shapes, shape)
	return nil
}

func (s *Store) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.shapes = slices.Delete(s.shapes, i, i+1)
	return true
}

func (s *Store) Get(id string) (Shape, bool) {
	i := s.index(id)
	if i < 0 {
		return nil, false
	}
	return s.shapes[i], true
}

// Shapes returns the shapes in insertion order. The slice is a copy.
func (s *Store) Shapes() []Shape {
	return slices.Clone(s.shapes)
}

// Layered returns the shapes in paint order.
func (s *Store) Layered() []Shape {
	layered := slices.Clone(s.shapes)
	slices.SortStableFunc(layered, func(a, b Shape) int {
		return Layer(a) - Layer(b)
	})
	return layered
}

func (s *Store) Len() int {
	return len(s.shapes)
}

// Last returns the most recently added shape that is still in the store.
func (s *Store) Last() (Shape, bool) {
	if len(s.shapes) == 0 {
		return nil, false
	}
	return s.shapes[len(s.shapes)-1], true
}

// FindAt returns the topmost shape occupying the cell.
func (s *Store) FindAt(p Point) (Shape, bool) {
	layered := s.Layered()
	for i := len(layered) - 1; i >= 0; i-- {
		if Contains(layered[i], p) {
			return layered[i], true
		}
	}
	return nil, false
}

func (s *Store) Move(id string, dx, dy int) error {
	shape, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	moved := Clone(shape, id)
	h := moved.Head()
	h.X += dx
	h.Y += dy
	return s.Replace(moved)
}

func (s *Store) Resize(id string, handle Handle, dx, dy int) error {
	shape, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	resized, err := Resized(shape, handle, dx, dy)
	if err != nil {
		return err
	}
	return s.Replace(resized)
}

// Replace swaps in new geometry for the shape with the same id, keeping its
// place in insertion order.
func (s *Store) Replace(shape Shape) error {
	if shape == nil {
		return fmt.Errorf("%w: nil shape", ErrInvalidShape)
	}
	i := s.index(shape.Head().ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, shape.Head().ID)
	}
	if err := Validate(shape); err != nil {
		return err
	}
	if err := s.fits(shape, i); err != nil {
		return err
	}
	s.shapes[i] = shape
	return nil
}

// fits checks that the drawing with shape in place of the one at index skip
// (or added, when skip is -1) still rasterizes to at most MaxCells cells.
func (s *Store) fits(shape Shape, skip int) error {
	r := Bounds(shape)
	for i, other := range s.shapes {
		if i != skip {
			r = r.Union(Bounds(other))
		}
	}
	if area(r) > MaxCells {
		return fmt.Errorf("%w: %dx%d cells, at most %d", ErrTooLarge, r.Dx(), r.Dy(), MaxCells)
	}
	return nil
}

func area(r image.Rectangle) int {
	return r.Dx() * r.Dy()
}

func (s *Store) Clear() {
	s.shapes = nil
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.shapes, func(shape Shape) bool {
		return shape.Head().ID == id
	})
}
