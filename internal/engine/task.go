package engine

import (
	"sort"

	"github.com/piwi3910/PolyPack/internal/model"
)

// Task is the flattened list of pieces to place for one query.
type Task struct {
	Pieces []int // shape indices, largest area first, ties by ascending shape id
	Area   int   // summed area of every piece
}

// BuildTask expands the query's counts into individual pieces. Zero-area
// shapes are dropped since they place trivially.
func BuildTask(shapes []model.Shape, q model.Query) Task {
	var task Task
	for i, s := range shapes {
		n := q.Count(i)
		if n <= 0 || s.Area() == 0 {
			continue
		}
		for k := 0; k < n; k++ {
			task.Pieces = append(task.Pieces, i)
		}
		task.Area += n * s.Area()
	}

	// Sort by area descending (largest first fails fast)
	sort.SliceStable(task.Pieces, func(i, j int) bool {
		a, b := shapes[task.Pieces[i]], shapes[task.Pieces[j]]
		if a.Area() != b.Area() {
			return a.Area() > b.Area()
		}
		return a.ID < b.ID
	})
	return task
}

// distinct returns the shape indices used by the task, in first-seen order.
func (t Task) distinct() []int {
	var out []int
	for i, p := range t.Pieces {
		if i == 0 || t.Pieces[i-1] != p {
			out = append(out, p)
		}
	}
	return out
}
