package engine

import "github.com/piwi3910/PolyPack/internal/model"

// Placement is one shape variation bound to a grid of a given width and height.
type Placement struct {
	Offsets []int // linear index row*W+col of each cell, relative to the anchor
	Anchors []int // ascending top-left positions where the bounding box fits
	Area    int

	coversAnchor bool // offset 0 is one of the cells
}

// CoversAnchor reports whether the variation occupies its own anchor cell.
func (p Placement) CoversAnchor() bool { return p.coversAnchor }

// Compile binds a normalized variation to a w x h grid. A variation whose
// bounding box is larger than the grid gets no anchors.
func Compile(v model.Cells, w, h int) Placement {
	p := Placement{
		Offsets: make([]int, len(v)),
		Area:    len(v),
	}
	for i, pt := range v {
		off := pt.Row*w + pt.Col
		p.Offsets[i] = off
		if off == 0 {
			p.coversAnchor = true
		}
	}

	rows, cols := v.Size()
	if rows == 0 || rows > h || cols > w {
		return p
	}
	p.Anchors = make([]int, 0, (h-rows+1)*(w-cols+1))
	for r := 0; r <= h-rows; r++ {
		for c := 0; c <= w-cols; c++ {
			p.Anchors = append(p.Anchors, r*w+c)
		}
	}
	return p
}

// ShapeTable holds the variations of every shape of a puzzle. It is built
// once and shared read-only by every query.
type ShapeTable struct {
	Shapes     []model.Shape
	Variations [][]model.Cells

	connected bool
}

// NewShapeTable computes the variations of each shape.
func NewShapeTable(shapes []model.Shape) *ShapeTable {
	t := &ShapeTable{
		Shapes:     shapes,
		Variations: make([][]model.Cells, len(shapes)),
		connected:  true,
	}
	for i, s := range shapes {
		t.Variations[i] = s.Cells.Variations()
		if !s.Cells.Connected() {
			t.connected = false
		}
	}
	return t
}

// Connected reports whether every shape is edge-connected.
func (t *ShapeTable) Connected() bool { return t.connected }

// Compile returns the compiled variations of the shapes at the given
// indices for a w x h grid, indexed by shape index. Other entries are nil.
func (t *ShapeTable) Compile(w, h int, indices []int) [][]Placement {
	out := make([][]Placement, len(t.Shapes))
	for _, i := range indices {
		if out[i] != nil {
			continue
		}
		vars := t.Variations[i]
		compiled := make([]Placement, len(vars))
		for j, v := range vars {
			compiled[j] = Compile(v, w, h)
		}
		out[i] = compiled
	}
	return out
}

// fits reports whether at least one variation has an anchor.
func fits(placements []Placement) bool {
	for _, p := range placements {
		if len(p.Anchors) > 0 {
			return true
		}
	}
	return false
}
