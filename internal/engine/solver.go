package engine

import (
	"context"
	"errors"
	"sort"
)

// ErrStepBudget is reported when a search exceeds its step limit.
var ErrStepBudget = errors.New("step budget exhausted")

// ctxCheckInterval is how many placement attempts pass between context checks.
const ctxCheckInterval = 1024

// solver is a depth-first search over one query. It owns its occupancy grid
// and is not safe for concurrent use.
type solver struct {
	ctx        context.Context
	grid       []bool
	pieces     []int
	placements [][]Placement
	areas      []int // area per piece, same order as pieces
	symmetry   bool
	regions    *regionScanner
	maxSteps   int64

	steps   int64
	aborted error
}

func newSolver(ctx context.Context, w, h int, task Task, placements [][]Placement) *solver {
	s := &solver{
		ctx:        ctx,
		grid:       make([]bool, w*h),
		pieces:     task.Pieces,
		placements: placements,
		areas:      make([]int, len(task.Pieces)),
	}
	for i, p := range task.Pieces {
		s.areas[i] = placements[p][0].Area
	}
	return s
}

// solve reports whether every piece can be placed. When the search is cut
// short the result is false and s.aborted holds the cause.
func (s *solver) solve(remaining int) bool {
	return s.search(0, len(s.grid), remaining, 0)
}

func (s *solver) search(idx, empty, remaining, lastAnchor int) bool {
	if idx == len(s.pieces) {
		return true
	}
	if empty < remaining {
		return false
	}
	if s.regions != nil {
		smallest := s.areas[len(s.areas)-1]
		if empty-s.regions.deadCells(s.grid, smallest) < remaining {
			return false
		}
	}

	shape := s.pieces[idx]
	floor := 0
	if s.symmetry && idx > 0 && s.pieces[idx-1] == shape {
		floor = lastAnchor
	}

	for _, pl := range s.placements[shape] {
		start := sort.SearchInts(pl.Anchors, floor)
		for _, anchor := range pl.Anchors[start:] {
			if s.stopped() {
				return false
			}
			s.steps++

			if pl.coversAnchor && s.grid[anchor] {
				continue
			}
			if !s.free(pl, anchor) {
				continue
			}

			s.mark(pl, anchor, true)
			if s.search(idx+1, empty-pl.Area, remaining-pl.Area, anchor) {
				return true
			}
			s.mark(pl, anchor, false)
			if s.aborted != nil {
				return false
			}
		}
	}
	return false
}

func (s *solver) free(pl Placement, anchor int) bool {
	for _, off := range pl.Offsets {
		if s.grid[anchor+off] {
			return false
		}
	}
	return true
}

func (s *solver) mark(pl Placement, anchor int, v bool) {
	for _, off := range pl.Offsets {
		s.grid[anchor+off] = v
	}
}

func (s *solver) stopped() bool {
	if s.aborted != nil {
		return true
	}
	if s.maxSteps > 0 && s.steps >= s.maxSteps {
		s.aborted = ErrStepBudget
		return true
	}
	if s.steps%ctxCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			s.aborted = err
			return true
		}
	}
	return false
}
