package drawing

import "fmt"

type Handle string

const (
	HandleNone  Handle = ""
	HandleN     Handle = "n"
	HandleS     Handle = "s"
	HandleE     Handle = "e"
	HandleW     Handle = "w"
	HandleNE    Handle = "ne"
	HandleNW    Handle = "nw"
	HandleSE    Handle = "se"
	HandleSW    Handle = "sw"
	HandleStart Handle = "start"
	HandleEnd   Handle = "end"
)

type HandlePoint struct {
	Handle Handle
	Point  Point
}

// Handles lists the resize handles of a shape and the cell each one sits on.
// Corners come before edge midpoints so they win when a small rectangle puts
// both on the same cell.
func Handles(s Shape) []HandlePoint {
	switch s := s.(type) {
	case *Rectangle:
		left, top := s.X, s.Y
		right, bottom := s.X+s.Width-1, s.Y+s.Height-1
		midX, midY := s.X+s.Width/2, s.Y+s.Height/2
		return []HandlePoint{
			{HandleNW, Point{left, top}},
			{HandleNE, Point{right, top}},
			{HandleSW, Point{left, bottom}},
			{HandleSE, Point{right, bottom}},
			{HandleN, Point{midX, top}},
			{HandleS, Point{midX, bottom}},
			{HandleW, Point{left, midY}},
			{HandleE, Point{right, midY}},
		}
	case *Line:
		return []HandlePoint{
			{HandleStart, s.Start()},
			{HandleEnd, s.End()},
		}
	}
	return nil
}

// HandleAt returns the handle of s located on p, if any.
func HandleAt(s Shape, p Point) Handle {
	for _, h := range Handles(s) {
		if h.Point == p {
			return h.Handle
		}
	}
	return HandleNone
}

// Resized returns a resized copy of s; s itself is left untouched.
func Resized(s Shape, handle Handle, dx, dy int) (Shape, error) {
	switch s := s.(type) {
	case *Rectangle:
		return resizeRectangle(s, handle, dx, dy)
	case *Line:
		return resizeLine(s, handle, dx, dy)
	case *Text:
		return nil, fmt.Errorf("%w: text %s", ErrNotResizable, s.ID)
	}
	return nil, fmt.Errorf("%w: %T", ErrInvalidShape, s)
}

func resizeRectangle(r *Rectangle, handle Handle, dx, dy int) (Shape, error) {
	var north, south, east, west bool
	switch handle {
	case HandleN:
		north = true
	case HandleS:
		south = true
	case HandleE:
		east = true
	case HandleW:
		west = true
	case HandleNE:
		north, east = true, true
	case HandleNW:
		north, west = true, true
	case HandleSE:
		south, east = true, true
	case HandleSW:
		south, west = true, true
	default:
		return nil, fmt.Errorf("%w: %q on rectangle", ErrUnknownHandle, handle)
	}

	// edges are half-open: right and bottom are one past the last cell.
	left, top := r.X, r.Y
	right, bottom := r.X+r.Width, r.Y+r.Height
	if west {
		left = min(left+dx, right-MinRectSize)
	}
	if east {
		right = max(right+dx, left+MinRectSize)
	}
	if north {
		top = min(top+dy, bottom-MinRectSize)
	}
	if south {
		bottom = max(bottom+dy, top+MinRectSize)
	}
	return NewRectangle(r.ID, left, top, right-left, bottom-top), nil
}

func resizeLine(l *Line, handle Handle, dx, dy int) (Shape, error) {
	start, end := l.Start(), l.End()
	switch handle {
	case HandleStart:
		start = start.Add(dx, dy)
	case HandleEnd:
		end = end.Add(dx, dy)
	default:
		return nil, fmt.Errorf("%w: %q on line", ErrUnknownHandle, handle)
	}
	if start == end {
		return nil, fmt.Errorf("%w: line %s", ErrDegenerate, l.ID)
	}
	return NewLine(l.ID, start, end), nil
}
