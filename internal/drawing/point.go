package drawing

import "math"

// Point is a cell position on the drawing grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Mapper converts continuous pointer coordinates into grid cells.
// The terminal canvas uses 1x1 cells offset by the canvas origin and pan;
// image export uses pixel sized cells.
type Mapper struct {
	CellWidth  float64
	CellHeight float64
	OriginX    float64
	OriginY    float64
}

func NewMapper(cellWidth, cellHeight float64) Mapper {
	return Mapper{CellWidth: cellWidth, CellHeight: cellHeight}
}

func (m Mapper) cellSize() (float64, float64) {
	w, h := m.CellWidth, m.CellHeight
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return w, h
}

// ToCell floors, so pointers left of or above the origin land on negative cells.
func (m Mapper) ToCell(px, py float64) Point {
	w, h := m.cellSize()
	return Point{
		X: int(math.Floor((px - m.OriginX) / w)),
		Y: int(math.Floor((py - m.OriginY) / h)),
	}
}

// ToPixel returns the top-left corner of the cell.
func (m Mapper) ToPixel(p Point) (float64, float64) {
	w, h := m.cellSize()
	return m.OriginX + float64(p.X)*w, m.OriginY + float64(p.Y)*h
}
