package drawing

// Rasterize returns the cells of the segment from a to b, both endpoints
// included, using integer Bresenham stepping. Consecutive points are always
// 8-connected and every step moves towards b on both axes.
func Rasterize(a, b Point) []Point {
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	sx := 1
	if a.X > b.X {
		sx = -1
	}
	sy := 1
	if a.Y > b.Y {
		sy = -1
	}

	points := make([]Point, 0, max(dx, dy)+1)
	x, y := a.X, a.Y
	err := dx - dy
	for {
		points = append(points, Point{X: x, Y: y})
		if x == b.X && y == b.Y {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
	return points
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
