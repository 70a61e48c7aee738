package selection

// Layout holds the grid dimensions in display units.
// The first column of the grid shows the time labels.
type Layout struct {
	OriginX         float64
	OriginY         float64
	TimeColumnWidth float64
	ColumnWidth     float64
	RowHeight       float64
}

// Rect is an axis-aligned rectangle, Y grows downwards
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Bottom returns the lower edge
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// RectFor maps a selection to its rectangle: from the top edge of the earlier row
// to the bottom edge of the later row, exactly one instructor column wide.
// The row indexes may come in any order.
func RectFor(l Layout, instructorIndex, fromTimeIndex, toTimeIndex int) Rect {
	top, bottom := fromTimeIndex, toTimeIndex
	if bottom < top {
		top, bottom = bottom, top
	}

	return Rect{
		X:      l.OriginX + l.TimeColumnWidth + float64(instructorIndex)*l.ColumnWidth,
		Y:      l.OriginY + float64(top)*l.RowHeight,
		Width:  l.ColumnWidth,
		Height: float64(bottom-top+1) * l.RowHeight,
	}
}
