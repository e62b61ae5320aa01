package engine

// regionScanner flood-fills the empty cells of a grid into edge-connected
// regions. Its buffers are reused between scans.
type regionScanner struct {
	w, h  int
	seen  []bool
	stack []int
}

func newRegionScanner(w, h int) *regionScanner {
	return &regionScanner{
		w:     w,
		h:     h,
		seen:  make([]bool, w*h),
		stack: make([]int, 0, w*h),
	}
}

// deadCells returns the number of empty cells lying in regions smaller
// than minArea. A connected piece cannot use any of them.
func (r *regionScanner) deadCells(grid []bool, minArea int) int {
	for i := range r.seen {
		r.seen[i] = false
	}
	dead := 0
	for start, filled := range grid {
		if filled || r.seen[start] {
			continue
		}
		size := r.fill(grid, start)
		if size < minArea {
			dead += size
		}
	}
	return dead
}

func (r *regionScanner) fill(grid []bool, start int) int {
	r.stack = append(r.stack[:0], start)
	r.seen[start] = true
	size := 0
	for len(r.stack) > 0 {
		i := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]
		size++

		row, col := i/r.w, i%r.w
		if row > 0 {
			r.visit(grid, i-r.w)
		}
		if row < r.h-1 {
			r.visit(grid, i+r.w)
		}
		if col > 0 {
			r.visit(grid, i-1)
		}
		if col < r.w-1 {
			r.visit(grid, i+1)
		}
	}
	return size
}

func (r *regionScanner) visit(grid []bool, i int) {
	if !grid[i] && !r.seen[i] {
		r.seen[i] = true
		r.stack = append(r.stack, i)
	}
}
