package model

import "math"

// Point2D represents a 2D drawing coordinate. Y grows upward.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Area returns the absolute polygon area (shoelace formula).
func (o Outline) Area() float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Y
		area -= o[j].X * o[i].Y
	}
	return math.Abs(area) / 2
}

// Contains reports whether p lies inside the outline (even-odd rule).
func (o Outline) Contains(p Point2D) bool {
	inside := false
	n := len(o)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := o[i], o[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Rasterize lays a grid of cellSize squares over the bounding box and
// returns the cells whose centre lies inside the outline. Row 0 is the top
// of the drawing.
func (o Outline) Rasterize(cellSize float64) Cells {
	if len(o) < 3 || cellSize <= 0 {
		return Cells{}
	}
	min, max := o.BoundingBox()
	const eps = 1e-9
	cols := int(math.Ceil((max.X-min.X)/cellSize - eps))
	rows := int(math.Ceil((max.Y-min.Y)/cellSize - eps))

	var cells Cells
	for r := 0; r < rows; r++ {
		y := max.Y - (float64(r)+0.5)*cellSize
		for c := 0; c < cols; c++ {
			x := min.X + (float64(c)+0.5)*cellSize
			if o.Contains(Point2D{X: x, Y: y}) {
				cells = append(cells, Point{Row: r, Col: c})
			}
		}
	}
	return cells.Normalize()
}
