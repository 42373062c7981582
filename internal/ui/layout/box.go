// Package layout slices screen rectangles into the areas components draw in.
package layout

import (
	uv "github.com/charmbracelet/ultraviolet"
)

type Rectangle = uv.Rectangle

// Rect returns the rectangle with its top-left corner at (x, y).
func Rect(x, y, w, h int) Rectangle {
	return uv.Rect(x, y, w, h)
}

// Box is an area of the screen in absolute cell coordinates.
type Box struct {
	R Rectangle
}

func NewBox(r Rectangle) Box {
	return Box{R: r}
}

type specKind int

const (
	specFixed specKind = iota
	specPercent
	specFill
)

// Spec sizes one slice of a V or H split.
type Spec struct {
	kind  specKind
	value float64
}

// Fixed takes exactly n cells, or what is left.
func Fixed(n int) Spec { return Spec{kind: specFixed, value: float64(n)} }

// Percent takes p percent of the whole box, rounded down.
func Percent(p float64) Spec { return Spec{kind: specPercent, value: p} }

// Fill shares the space left after Fixed and Percent slices by weight.
func Fill(weight float64) Spec { return Spec{kind: specFill, value: weight} }

// V splits the box into rows, top to bottom.
func (b Box) V(specs ...Spec) []Box {
	sizes := allocate(b.R.Dy(), specs)
	out := make([]Box, len(sizes))
	y := b.R.Min.Y
	for i, h := range sizes {
		out[i] = Box{R: Rect(b.R.Min.X, y, b.R.Dx(), h)}
		y += h
	}
	return out
}

// H splits the box into columns, left to right.
func (b Box) H(specs ...Spec) []Box {
	sizes := allocate(b.R.Dx(), specs)
	out := make([]Box, len(sizes))
	x := b.R.Min.X
	for i, w := range sizes {
		out[i] = Box{R: Rect(x, b.R.Min.Y, w, b.R.Dy())}
		x += w
	}
	return out
}

func allocate(total int, specs []Spec) []int {
	total = max(total, 0)
	sizes := make([]int, len(specs))
	remaining := total
	var weights float64
	for i, s := range specs {
		switch s.kind {
		case specFixed:
			sizes[i] = min(int(s.value), remaining)
		case specPercent:
			sizes[i] = min(int(float64(total)*s.value/100), remaining)
		case specFill:
			weights += s.value
			continue
		}
		sizes[i] = max(sizes[i], 0)
		remaining -= sizes[i]
	}
	if weights <= 0 {
		return sizes
	}
	left := remaining
	last := -1
	for i, s := range specs {
		if s.kind != specFill {
			continue
		}
		sizes[i] = int(float64(remaining) * s.value / weights)
		left -= sizes[i]
		last = i
	}
	// rounding leftovers go to the last fill
	sizes[last] += left
	return sizes
}

// Center returns a w x h box centred in b, clipped to b.
func (b Box) Center(w, h int) Box {
	w = min(w, b.R.Dx())
	h = min(h, b.R.Dy())
	x := b.R.Min.X + (b.R.Dx()-w)/2
	y := b.R.Min.Y + (b.R.Dy()-h)/2
	return Box{R: Rect(x, y, w, h)}
}

// Inset shrinks the box by n cells on every side.
func (b Box) Inset(n int) Box {
	r := b.R
	r.Min.X += n
	r.Min.Y += n
	r.Max.X -= n
	r.Max.Y -= n
	if r.Dx() < 0 || r.Dy() < 0 {
		return Box{R: Rect(b.R.Min.X, b.R.Min.Y, 0, 0)}
	}
	return Box{R: r}
}

// CutTop splits off the first n rows.
func (b Box) CutTop(n int) (top, rest Box) {
	boxes := b.V(Fixed(n), Fill(1))
	return boxes[0], boxes[1]
}

// CutBottom splits off the last n rows.
func (b Box) CutBottom(n int) (rest, bottom Box) {
	boxes := b.V(Fill(1), Fixed(n))
	return boxes[0], boxes[1]
}

func (b Box) Contains(x, y int) bool {
	return x >= b.R.Min.X && x < b.R.Max.X && y >= b.R.Min.Y && y < b.R.Max.Y
}
