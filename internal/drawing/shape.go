package drawing

import (
	"fmt"
	"image"
	"strings"

	"github.com/google/uuid"
)

// MinRectSize keeps the four corner glyphs of a rectangle distinct from its
// border glyphs.
const MinRectSize = 2

const (
	// MaxCoord bounds every cell a shape occupies, on both axes.
	MaxCoord = 100_000
	// MaxCells bounds the area of a drawing's bounding box, which is the
	// size of the grid it rasterizes to.
	MaxCells = 1_000_000
)

type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindLine      Kind = "line"
	KindText      Kind = "text"
)

// Shape is one of *Rectangle, *Line or *Text.
type Shape interface {
	Kind() Kind
	Head() *Header
}

// Header holds what every shape has: identity and anchor cell.
type Header struct {
	ID string
	X  int
	Y  int
}

func (h *Header) Head() *Header { return h }

func (h *Header) Anchor() Point { return Point{X: h.X, Y: h.Y} }

type Rectangle struct {
	Header
	Width  int
	Height int
}

func (*Rectangle) Kind() Kind { return KindRectangle }

// Line stores its cells relative to the anchor, which is the top-left corner
// of the line's bounding box.
type Line struct {
	Header
	Points []Point
}

func (*Line) Kind() Kind { return KindLine }

type Text struct {
	Header
	Text string
}

func (*Text) Kind() Kind { return KindText }

func NewID() string {
	return uuid.NewString()
}

func NewRectangle(id string, x, y, width, height int) *Rectangle {
	return &Rectangle{Header: Header{ID: id, X: x, Y: y}, Width: width, Height: height}
}

// RectangleFromCorners builds the rectangle spanned by two opposite corner
// cells, in any order.
func RectangleFromCorners(id string, a, b Point) *Rectangle {
	return NewRectangle(id, min(a.X, b.X), min(a.Y, b.Y), abs(b.X-a.X)+1, abs(b.Y-a.Y)+1)
}

// NewLine rasterizes the segment between two absolute cells.
func NewLine(id string, start, end Point) *Line {
	return LineFromPoints(id, Rasterize(start, end))
}

// LineFromPoints takes absolute cells and re-bases them on their bounding box.
func LineFromPoints(id string, points []Point) *Line {
	if len(points) == 0 {
		return &Line{Header: Header{ID: id}}
	}
	minX, minY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
	}
	rel := make([]Point, len(points))
	for i, p := range points {
		rel[i] = Point{X: p.X - minX, Y: p.Y - minY}
	}
	return &Line{Header: Header{ID: id, X: minX, Y: minY}, Points: rel}
}

func NewText(id string, x, y int, text string) *Text {
	return &Text{Header: Header{ID: id, X: x, Y: y}, Text: text}
}

// AbsPoints returns the line cells in grid coordinates.
func (l *Line) AbsPoints() []Point {
	abs := make([]Point, len(l.Points))
	for i, p := range l.Points {
		abs[i] = Point{X: l.X + p.X, Y: l.Y + p.Y}
	}
	return abs
}

func (l *Line) Start() Point {
	if len(l.Points) == 0 {
		return l.Anchor()
	}
	return l.Points[0].Add(l.X, l.Y)
}

func (l *Line) End() Point {
	if len(l.Points) == 0 {
		return l.Anchor()
	}
	return l.Points[len(l.Points)-1].Add(l.X, l.Y)
}

func (t *Text) Lines() []string {
	return strings.Split(t.Text, "\n")
}

// Layer orders shapes for painting and hit testing: rectangles are drawn
// first, texts last.
func Layer(s Shape) int {
	switch s.(type) {
	case *Rectangle:
		return 0
	case *Line:
		return 1
	case *Text:
		return 2
	}
	return -1
}

// Bounds returns the cells covered by the shape as a half-open rectangle.
func Bounds(s Shape) image.Rectangle {
	switch s := s.(type) {
	case *Rectangle:
		return image.Rect(s.X, s.Y, s.X+s.Width, s.Y+s.Height)
	case *Line:
		if len(s.Points) == 0 {
			return image.Rectangle{}
		}
		r := image.Rectangle{Min: image.Pt(s.X, s.Y), Max: image.Pt(s.X+1, s.Y+1)}
		for _, p := range s.Points {
			r.Max.X = max(r.Max.X, s.X+p.X+1)
			r.Max.Y = max(r.Max.Y, s.Y+p.Y+1)
		}
		return r
	case *Text:
		w, h := TextSize(s.Text)
		return image.Rect(s.X, s.Y, s.X+w, s.Y+h)
	}
	return image.Rectangle{}
}

// Contains reports whether the shape occupies the cell. Rectangles occupy
// their interior too; lines only their own cells.
func Contains(s Shape, p Point) bool {
	switch s := s.(type) {
	case *Rectangle:
		return p.X >= s.X && p.X < s.X+s.Width && p.Y >= s.Y && p.Y < s.Y+s.Height
	case *Line:
		for _, lp := range s.Points {
			if s.X+lp.X == p.X && s.Y+lp.Y == p.Y {
				return true
			}
		}
		return false
	case *Text:
		row := p.Y - s.Y
		lines := s.Lines()
		if row < 0 || row >= len(lines) {
			return false
		}
		return p.X >= s.X && p.X < s.X+DisplayWidth(lines[row])
	}
	return false
}

// Clone deep-copies the shape, giving it the provided id.
func Clone(s Shape, id string) Shape {
	switch s := s.(type) {
	case *Rectangle:
		c := *s
		c.ID = id
		return &c
	case *Line:
		c := *s
		c.ID = id
		c.Points = append([]Point(nil), s.Points...)
		return &c
	case *Text:
		c := *s
		c.ID = id
		return &c
	}
	return nil
}

// Validate checks the geometry invariants of a shape.
func Validate(s Shape) error {
	if s == nil {
		return fmt.Errorf("%w: nil shape", ErrInvalidShape)
	}
	switch s := s.(type) {
	case *Rectangle:
		if s.Width < MinRectSize || s.Height < MinRectSize {
			return fmt.Errorf("%w: rectangle %dx%d is smaller than %dx%d", ErrInvalidShape, s.Width, s.Height, MinRectSize, MinRectSize)
		}
	case *Line:
		if len(s.Points) < 2 {
			return fmt.Errorf("%w: line needs at least 2 points, got %d", ErrInvalidShape, len(s.Points))
		}
		if !Connected(s.Points) {
			return fmt.Errorf("%w: line points are not a connected path", ErrInvalidShape)
		}
	case *Text:
		if strings.TrimSpace(s.Text) == "" {
			return fmt.Errorf("%w: empty text", ErrInvalidShape)
		}
	default:
		return fmt.Errorf("%w: unsupported shape %T", ErrInvalidShape, s)
	}
	return checkRange(s)
}

// checkRange keeps every occupied cell inside [-MaxCoord, MaxCoord]. The
// anchor and sizes are checked before Bounds so the sums can't overflow.
func checkRange(s Shape) error {
	h := s.Head()
	if !inRange(h.X) || !inRange(h.Y) {
		return fmt.Errorf("%w: anchor (%d,%d) is outside the drawing area", ErrInvalidShape, h.X, h.Y)
	}
	switch s := s.(type) {
	case *Rectangle:
		if s.Width > 2*MaxCoord || s.Height > 2*MaxCoord {
			return fmt.Errorf("%w: rectangle %dx%d is too large", ErrInvalidShape, s.Width, s.Height)
		}
	case *Line:
		for _, p := range s.Points {
			if p.X < 0 || p.Y < 0 || p.X > 2*MaxCoord || p.Y > 2*MaxCoord {
				return fmt.Errorf("%w: line point (%d,%d) is outside the drawing area", ErrInvalidShape, p.X, p.Y)
			}
		}
	}
	r := Bounds(s)
	if r.Min.X < -MaxCoord || r.Min.Y < -MaxCoord || r.Max.X > MaxCoord+1 || r.Max.Y > MaxCoord+1 {
		return fmt.Errorf("%w: %v is outside the drawing area", ErrInvalidShape, r)
	}
	return nil
}

// Connected reports whether each point is one of the eight neighbours of the
// point before it.
func Connected(points []Point) bool {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if max(abs(a.X-b.X), abs(a.Y-b.Y)) != 1 {
			return false
		}
	}
	return true
}

// InBounds reports whether a cell lies in [-MaxCoord, MaxCoord] on both axes.
func InBounds(p Point) bool {
	return inRange(p.X) && inRange(p.Y)
}

func inRange(v int) bool {
	return v >= -MaxCoord && v <= MaxCoord
}
