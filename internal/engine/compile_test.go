package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PolyPack/internal/model"
)

func cells(rows ...string) model.Cells {
	var c model.Cells
	for r, line := range rows {
		for col, ch := range line {
			if ch == '#' {
				c = append(c, model.Point{Row: r, Col: col})
			}
		}
	}
	return c.Normalize()
}

func shapes(defs ...model.Cells) []model.Shape {
	out := make([]model.Shape, len(defs))
	for i, d := range defs {
		out[i] = model.NewShape(i, d)
	}
	return out
}

func TestCompile_OffsetsAndAnchors(t *testing.T) {
	p := Compile(cells("#.", "##"), 4, 3)

	assert.Equal(t, []int{0, 4, 5}, p.Offsets)
	assert.Equal(t, []int{0, 1, 2, 4, 5, 6}, p.Anchors)
	assert.Equal(t, 3, p.Area)
	assert.True(t, p.CoversAnchor())
}

func TestCompile_EmptyTopLeft(t *testing.T) {
	p := Compile(cells(".#", "##"), 4, 3)

	assert.Equal(t, []int{1, 4, 5}, p.Offsets)
	assert.False(t, p.CoversAnchor())
}

func TestCompile_ExactFit(t *testing.T) {
	p := Compile(cells("###", "###"), 3, 2)
	assert.Equal(t, []int{0}, p.Anchors)
}

func TestCompile_TooWideOrTall(t *testing.T) {
	wide := Compile(cells("####"), 3, 5)
	assert.Empty(t, wide.Anchors)
	assert.Len(t, wide.Offsets, 4)

	tall := Compile(cells("#", "#", "#"), 5, 2)
	assert.Empty(t, tall.Anchors)
}

func TestCompile_AnchorsAreAscending(t *testing.T) {
	p := Compile(cells("##", "#."), 6, 5)
	require.Len(t, p.Anchors, 5*4)
	for i := 1; i < len(p.Anchors); i++ {
		assert.Less(t, p.Anchors[i-1], p.Anchors[i])
	}
}

func TestShapeTable_CompileOnlyRequested(t *testing.T) {
	table := NewShapeTable(shapes(cells("#"), cells("##"), cells("#.", "##")))
	compiled := table.Compile(3, 3, []int{2, 2, 0})

	assert.Len(t, compiled[0], 1)
	assert.Nil(t, compiled[1])
	assert.Len(t, compiled[2], 4)
}

func TestShapeTable_Connected(t *testing.T) {
	assert.True(t, NewShapeTable(shapes(cells("##"), cells("#.", "##"))).Connected())
	assert.False(t, NewShapeTable(shapes(cells("##"), cells("#.#"))).Connected())
}

// ─── Task Tests ────────────────────────────────────────────

func TestBuildTask_OrderByAreaThenID(t *testing.T) {
	s := shapes(cells("##"), cells("###"), cells("#"), cells("#.", "##"))
	task := BuildTask(s, model.NewQuery(5, 5, []int{2, 1, 1, 2}))

	assert.Equal(t, []int{1, 3, 3, 0, 0, 2}, task.Pieces)
	assert.Equal(t, 3+3+3+2+2+1, task.Area)
	assert.Equal(t, []int{1, 3, 0, 2}, task.distinct())
}

func TestBuildTask_DropsZeroAreaAndMissingCounts(t *testing.T) {
	s := shapes(cells("##"), model.Cells{}, cells("#"))
	task := BuildTask(s, model.NewQuery(2, 2, []int{1, 5}))

	assert.Equal(t, []int{0}, task.Pieces)
	assert.Equal(t, 2, task.Area)
}

func TestBuildTask_Empty(t *testing.T) {
	task := BuildTask(shapes(cells("#")), model.NewQuery(2, 2, []int{0}))
	assert.Empty(t, task.Pieces)
	assert.Zero(t, task.Area)
}
