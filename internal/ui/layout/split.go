package layout

// Split divides a box between a main area and a secondary pane whose size is
// a percentage of the whole. The secondary pane sits right of (or below) the
// main area.
type Split struct {
	Percentage float64
	Vertical   bool
	MinPercent float64
	MaxPercent float64
}

func NewSplit(percentage float64, vertical bool) *Split {
	s := &Split{
		Percentage: percentage,
		Vertical:   vertical,
		MinPercent: 10,
		MaxPercent: 95,
	}
	s.clamp()
	return s
}

// Apply returns the main and secondary boxes.
func (s *Split) Apply(box Box) (main, secondary Box) {
	mainPct := 100 - s.Percentage
	if s.Vertical {
		boxes := box.V(Percent(mainPct), Fill(1))
		return boxes[0], boxes[1]
	}
	boxes := box.H(Percent(mainPct), Fill(1))
	return boxes[0], boxes[1]
}

// Divider is the first row or column of the secondary pane, where a drag
// starts.
func (s *Split) Divider(box Box) Rectangle {
	_, secondary := s.Apply(box)
	r := secondary.R
	if s.Vertical {
		r.Max.Y = min(r.Max.Y, r.Min.Y+1)
	} else {
		r.Max.X = min(r.Max.X, r.Min.X+1)
	}
	return r
}

// DragTo moves the divider to (x, y) and reports whether the percentage
// changed.
func (s *Split) DragTo(box Box, x, y int) bool {
	old := s.Percentage
	if s.Vertical {
		total := box.R.Dy()
		if total <= 0 {
			return false
		}
		s.Percentage = float64((box.R.Max.Y-y)*100) / float64(total)
	} else {
		total := box.R.Dx()
		if total <= 0 {
			return false
		}
		s.Percentage = float64((box.R.Max.X-x)*100) / float64(total)
	}
	s.clamp()
	return s.Percentage != old
}

// Resize grows the secondary pane by delta percent; negative deltas shrink it.
func (s *Split) Resize(delta float64) {
	s.Percentage += delta
	s.clamp()
}

func (s *Split) clamp() {
	s.Percentage = max(s.MinPercent, min(s.Percentage, s.MaxPercent))
}
