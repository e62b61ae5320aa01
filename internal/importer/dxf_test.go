package importer

import (
	"math"
	"testing"

	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/PolyPack/internal/model"
)

func pt(x, y float64) model.Point2D {
	return model.Point2D{X: x, Y: y}
}

func TestImportShapesDXF_FileNotFound(t *testing.T) {
	result := ImportShapesDXF("/nonexistent/shapes.dxf", 1)

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
	if len(result.Shapes) != 0 {
		t.Errorf("expected no shapes, got %d", len(result.Shapes))
	}
}

func TestChainSegments_ClosedSquare(t *testing.T) {
	segs := []segment{
		{start: pt(0, 0), end: pt(2, 0)},
		{start: pt(2, 2), end: pt(2, 0)}, // reversed
		{start: pt(2, 2), end: pt(0, 2)},
		{start: pt(0, 2), end: pt(0, 0)},
	}

	outlines := chainSegments(segs, 0.01)
	if len(outlines) != 1 {
		t.Fatalf("expected 1 outline, got %d", len(outlines))
	}
	if len(outlines[0]) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(outlines[0]))
	}
	if math.Abs(outlines[0].Area()-4) > 1e-9 {
		t.Errorf("expected area 4, got %f", outlines[0].Area())
	}
}

func TestChainSegments_OpenChainDropped(t *testing.T) {
	segs := []segment{
		{start: pt(0, 0), end: pt(1, 0)},
		{start: pt(1, 0), end: pt(1, 1)},
	}

	if outlines := chainSegments(segs, 0.01); len(outlines) != 0 {
		t.Errorf("expected open chain to be dropped, got %d outlines", len(outlines))
	}
}

func TestChainSegments_Empty(t *testing.T) {
	if outlines := chainSegments(nil, 0.01); outlines != nil {
		t.Errorf("expected nil, got %v", outlines)
	}
}

func TestLwPolylineToOutline_LShape(t *testing.T) {
	lw := &entity.LwPolyline{
		Vertices: [][]float64{{10, 10}, {12, 10}, {12, 11}, {11, 11}, {11, 12}, {10, 12}},
	}

	outline := lwPolylineToOutline(lw)
	if len(outline) != 6 {
		t.Fatalf("expected 6 vertices, got %d", len(outline))
	}

	cells := normalizeOutline(outline).Rasterize(1)
	want := model.Cells{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 1, Col: 1}}
	if !cells.Equal(want) {
		t.Errorf("expected %v, got %v", want, cells)
	}
}

func TestCircleToOutline(t *testing.T) {
	c := &entity.Circle{Center: []float64{0, 0, 0}, Radius: 2}

	outline := circleToOutline(c, 64)
	if len(outline) != 64 {
		t.Fatalf("expected 64 points, got %d", len(outline))
	}
	expected := math.Pi * 4
	if math.Abs(outline.Area()-expected) > 0.1 {
		t.Errorf("expected area near %f, got %f", expected, outline.Area())
	}
}

func TestBulgeArcPoints_Semicircle(t *testing.T) {
	pts := bulgeArcPoints(pt(0, 0), pt(2, 0), 1, 16)

	if len(pts) != 17 {
		t.Fatalf("expected 17 points, got %d", len(pts))
	}
	for i, p := range pts {
		d := math.Hypot(p.X-1, p.Y)
		if math.Abs(d-1) > 1e-6 {
			t.Errorf("point %d not on unit circle around (1,0): %v", i, p)
		}
	}
}

func TestNormalizeOutline(t *testing.T) {
	o := normalizeOutline(model.Outline{pt(5, 7), pt(8, 7), pt(8, 9)})
	min, _ := o.BoundingBox()
	if min.X != 0 || min.Y != 0 {
		t.Errorf("expected origin at (0,0), got %v", min)
	}
}
