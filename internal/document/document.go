// Package document reads and writes drawings as JSON files.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/idursun/asciidraw/internal/drawing"
	"github.com/idursun/asciidraw/internal/raster"
	"github.com/idursun/asciidraw/internal/validation"
)

const Version = "1.0"

var (
	ErrMalformed = errors.New("malformed drawing document")
	ErrEmpty     = errors.New("nothing to export")
)

type Document struct {
	Version   string    `json:"version" validate:"required"`
	Timestamp time.Time `json:"timestamp"`
	Elements  []Element `json:"elements" validate:"required,dive"`
	ASCIIArt  string    `json:"asciiArt"`
}

// Element is the flat, type tagged form of a shape. Only the fields of the
// element's type are written. The limits match drawing.MaxCoord; the store
// checks the exact geometry when the shape is added.
type Element struct {
	Type   string          `json:"type" validate:"required,oneof=rectangle line text"`
	ID     string          `json:"id,omitempty" validate:"max=128"`
	X      int             `json:"x" validate:"gte=-100000,lte=100000"`
	Y      int             `json:"y" validate:"gte=-100000,lte=100000"`
	Width  int             `json:"width,omitempty" validate:"gte=0,lte=200000"`
	Height int             `json:"height,omitempty" validate:"gte=0,lte=200000"`
	Points []drawing.Point `json:"points,omitempty" validate:"max=20000"`
	Text   string          `json:"text,omitempty" validate:"max=100000"`
}

func ElementOf(s drawing.Shape) Element {
	h := s.Head()
	e := Element{Type: string(s.Kind()), ID: h.ID, X: h.X, Y: h.Y}
	switch s := s.(type) {
	case *drawing.Rectangle:
		e.Width, e.Height = s.Width, s.Height
	case *drawing.Line:
		e.Points = append([]drawing.Point(nil), s.Points...)
	case *drawing.Text:
		e.Text = s.Text
	}
	return e
}

// Shape converts the element back into a shape with the given id. A line
// keeps its stored cells when they form a connected path, otherwise it is
// rasterized again from its first and last point.
func (e Element) Shape(id string) (drawing.Shape, error) {
	var s drawing.Shape
	switch drawing.Kind(e.Type) {
	case drawing.KindRectangle:
		s = drawing.NewRectangle(id, e.X, e.Y, e.Width, e.Height)
	case drawing.KindLine:
		if len(e.Points) < 2 {
			return nil, fmt.Errorf("%w: line needs at least 2 points, got %d", drawing.ErrInvalidShape, len(e.Points))
		}
		cells := make([]drawing.Point, len(e.Points))
		for i, p := range e.Points {
			// relative cells span at most twice the range; checked before adding
			// so the sum can't overflow
			if max(p.X, -p.X, p.Y, -p.Y) > 2*drawing.MaxCoord || !drawing.InBounds(p.Add(e.X, e.Y)) {
				return nil, fmt.Errorf("%w: line point (%d,%d) is outside the drawing area", drawing.ErrInvalidShape, p.X, p.Y)
			}
			cells[i] = p.Add(e.X, e.Y)
		}
		if drawing.Connected(cells) {
			s = drawing.LineFromPoints(id, cells)
		} else {
			s = drawing.NewLine(id, cells[0], cells[len(cells)-1])
		}
	case drawing.KindText:
		s = drawing.NewText(id, e.X, e.Y, strings.TrimSpace(e.Text))
	default:
		return nil, fmt.Errorf("%w: unknown element type %q", drawing.ErrInvalidShape, e.Type)
	}
	if err := drawing.Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// New snapshots the shapes, in the order given, into a document.
func New(shapes []drawing.Shape, now time.Time) *Document {
	elements := make([]Element, 0, len(shapes))
	for _, s := range shapes {
		elements = append(elements, ElementOf(s))
	}
	return &Document{
		Version:   Version,
		Timestamp: now.UTC().Truncate(time.Second),
		Elements:  elements,
		ASCIIArt:  raster.Text(shapes, false),
	}
}

// Snapshot encodes the elements of shapes without timestamp or art, so two
// drawings with the same geometry in the same order compare equal.
func Snapshot(shapes []drawing.Shape) string {
	elements := make([]Element, 0, len(shapes))
	for _, s := range shapes {
		elements = append(elements, ElementOf(s))
	}
	b, _ := json.Marshal(elements)
	return string(b)
}

func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(d)
}

// Decode parses and validates a document without building shapes.
func Decode(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := validation.Struct(d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	major, _, _ := strings.Cut(d.Version, ".")
	if want, _, _ := strings.Cut(Version, "."); major != want {
		return nil, fmt.Errorf("%w: unsupported version %q", ErrMalformed, d.Version)
	}
	return &d, nil
}

// Store builds a fresh store from the document. Element ids are kept when
// present and unique, otherwise new ones are generated.
func (d *Document) Store() (*drawing.Store, error) {
	store := drawing.NewStore()
	for i, e := range d.Elements {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			id = drawing.NewID()
		} else if _, taken := store.Get(id); taken {
			id = drawing.NewID()
		}
		s, err := e.Shape(id)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrMalformed, i, err)
		}
		if err := store.Add(s); err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrMalformed, i, err)
		}
	}
	return store, nil
}

// Read decodes a document and returns the store it describes.
func Read(r io.Reader) (*drawing.Store, error) {
	d, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return d.Store()
}

func Load(path string) (*drawing.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	store, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

// Save writes the shapes to path, replacing any existing file atomically.
func Save(path string, shapes []drawing.Shape, now time.Time) error {
	if len(shapes) == 0 {
		return ErrEmpty
	}
	return WriteFileAtomic(path, func(w io.Writer) error {
		return New(shapes, now).Encode(w)
	})
}

// DefaultFileName is the name used when the user does not pick one.
func DefaultFileName(now time.Time, ext string) string {
	return "ascii-drawing-" + now.Format("2006-01-02T15-04-05") + ext
}

// WriteFileAtomic writes to a temporary file next to path and renames it
// into place once write succeeded.
func WriteFileAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
