package model

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Point is a grid cell coordinate. Rows grow downward, columns to the right.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Less orders points row-major.
func (p Point) Less(o Point) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// Cells is a set of occupied grid cells.
type Cells []Point

// BoundingBox returns the min and max corners of the cell set.
func (c Cells) BoundingBox() (min, max Point) {
	if len(c) == 0 {
		return Point{}, Point{}
	}
	min, max = c[0], c[0]
	for _, p := range c[1:] {
		if p.Row < min.Row {
			min.Row = p.Row
		}
		if p.Col < min.Col {
			min.Col = p.Col
		}
		if p.Row > max.Row {
			max.Row = p.Row
		}
		if p.Col > max.Col {
			max.Col = p.Col
		}
	}
	return min, max
}

// Translate shifts all cells by dr rows and dc columns.
func (c Cells) Translate(dr, dc int) Cells {
	result := make(Cells, len(c))
	for i, p := range c {
		result[i] = Point{Row: p.Row + dr, Col: p.Col + dc}
	}
	return result
}

// Normalize translates the cells so the minimum row and column are 0,
// sorts them row-major and drops duplicates. An empty set stays empty.
func (c Cells) Normalize() Cells {
	if len(c) == 0 {
		return Cells{}
	}
	min, _ := c.BoundingBox()
	out := c.Translate(-min.Row, -min.Col)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })

	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}

// Rotate turns the cells 90 degrees with (r, c) -> (c, -r) and normalizes.
func (c Cells) Rotate() Cells {
	result := make(Cells, len(c))
	for i, p := range c {
		result[i] = Point{Row: p.Col, Col: -p.Row}
	}
	return result.Normalize()
}

// Reflect mirrors the cells with (r, c) -> (r, -c) and normalizes.
func (c Cells) Reflect() Cells {
	result := make(Cells, len(c))
	for i, p := range c {
		result[i] = Point{Row: p.Row, Col: -p.Col}
	}
	return result.Normalize()
}

// Size returns the bounding box height and width. Zero for an empty set.
func (c Cells) Size() (rows, cols int) {
	if len(c) == 0 {
		return 0, 0
	}
	min, max := c.BoundingBox()
	return max.Row - min.Row + 1, max.Col - min.Col + 1
}

// Area returns the number of cells.
func (c Cells) Area() int { return len(c) }

// Equal reports whether both sets hold the same points in the same order.
func (c Cells) Equal(o Cells) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

// Compare orders cell sets lexicographically by point, shorter first on a common prefix.
func (c Cells) Compare(o Cells) int {
	for i := 0; i < len(c) && i < len(o); i++ {
		if c[i] == o[i] {
			continue
		}
		if c[i].Less(o[i]) {
			return -1
		}
		return 1
	}
	switch {
	case len(c) < len(o):
		return -1
	case len(c) > len(o):
		return 1
	}
	return 0
}

// Connected reports whether every cell is reachable from the first across shared edges.
func (c Cells) Connected() bool {
	if len(c) <= 1 {
		return true
	}
	set := make(map[Point]bool, len(c))
	for _, p := range c {
		set[p] = true
	}
	seen := map[Point]bool{c[0]: true}
	stack := []Point{c[0]}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range [4]Point{{p.Row - 1, p.Col}, {p.Row + 1, p.Col}, {p.Row, p.Col - 1}, {p.Row, p.Col + 1}} {
			if set[n] && !seen[n] {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return len(seen) == len(set)
}

// Variations returns the distinct forms of the cells under the four
// rotations and their reflections, normalized and sorted with Compare.
// The result has at most 8 entries and is nil for an empty set.
func (c Cells) Variations() []Cells {
	cur := c.Normalize()
	if len(cur) == 0 {
		return nil
	}
	all := make([]Cells, 0, 8)
	for i := 0; i < 4; i++ {
		all = append(all, cur, cur.Reflect())
		cur = cur.Rotate()
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Compare(all[j]) < 0 })

	out := []Cells{all[0]}
	for _, v := range all[1:] {
		if !v.Equal(out[len(out)-1]) {
			out = append(out, v)
		}
	}
	return out
}

// Rows renders the cells as '#' and '.' lines covering the bounding box.
func (c Cells) Rows() []string {
	n := c.Normalize()
	rows, cols := n.Size()
	grid := make([][]byte, rows)
	for r := range grid {
		grid[r] = []byte(strings.Repeat(".", cols))
	}
	for _, p := range n {
		grid[p.Row][p.Col] = '#'
	}
	out := make([]string, rows)
	for r := range grid {
		out[r] = string(grid[r])
	}
	return out
}

// Shape is one piece type.
type Shape struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Cells Cells  `json:"cells"`
}

func NewShape(id int, cells Cells) Shape {
	return Shape{
		ID:    id,
		Label: fmt.Sprintf("Shape %d", id),
		Cells: cells.Normalize(),
	}
}

// Area returns the cell count of the shape.
func (s Shape) Area() int { return len(s.Cells) }

// Query asks whether the required pieces fit on a Width x Height grid.
// Counts[i] is the number of instances of the i-th shape in ascending id order.
type Query struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Counts []int  `json:"counts"`
	Line   int    `json:"line,omitempty"` // source line or row, 0 when unknown
}

func NewQuery(w, h int, counts []int) Query {
	return Query{
		ID:     uuid.New().String()[:8],
		Label:  fmt.Sprintf("%dx%d", w, h),
		Width:  w,
		Height: h,
		Counts: counts,
	}
}

// GridArea returns Width*Height.
func (q Query) GridArea() int { return q.Width * q.Height }

// Count returns the required count for shape index i, 0 when out of range.
func (q Query) Count(i int) int {
	if i < 0 || i >= len(q.Counts) {
		return 0
	}
	return q.Counts[i]
}

// Instances returns the total number of required pieces.
func (q Query) Instances() int {
	n := 0
	for _, c := range q.Counts {
		n += c
	}
	return n
}

// Puzzle is a parsed input: shapes sorted by id and the queries in input order.
type Puzzle struct {
	Name    string  `json:"name"`
	Shapes  []Shape `json:"shapes"`
	Queries []Query `json:"queries"`
}

func NewPuzzle() Puzzle {
	return Puzzle{
		Name:    "Untitled",
		Shapes:  []Shape{},
		Queries: []Query{},
	}
}

// RequiredArea returns the summed area of every piece q asks for.
func (p Puzzle) RequiredArea(q Query) int {
	total := 0
	for i, s := range p.Shapes {
		total += q.Count(i) * s.Area()
	}
	return total
}

// Verdict is the outcome of one query.
type Verdict int

const (
	VerdictInfeasible Verdict = iota
	VerdictFeasible
	VerdictUnknown // search budget or timeout exhausted
)

func (v Verdict) String() string {
	switch v {
	case VerdictFeasible:
		return "feasible"
	case VerdictUnknown:
		return "unknown"
	default:
		return "infeasible"
	}
}

func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Verdict) UnmarshalText(b []byte) error {
	switch string(b) {
	case "feasible":
		*v = VerdictFeasible
	case "infeasible":
		*v = VerdictInfeasible
	case "unknown":
		*v = VerdictUnknown
	default:
		return fmt.Errorf("unknown verdict %q", string(b))
	}
	return nil
}

// Mode selects what counts as a solution.
type Mode string

const (
	ModePack  Mode = "pack"  // every piece placed without overlap, gaps allowed
	ModeExact Mode = "exact" // every piece placed and every cell covered
)

// ParseMode accepts "pack" or "exact", case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModePack:
		return ModePack, nil
	case ModeExact:
		return ModeExact, nil
	}
	return "", fmt.Errorf("unknown mode %q (want pack or exact)", s)
}

// SolverSettings holds search configuration.
type SolverSettings struct {
	Mode             Mode          `json:"mode"`
	SymmetryBreaking bool          `json:"symmetry_breaking"`
	RegionPruning    bool          `json:"region_pruning"`
	MaxSteps         int64         `json:"max_steps"`     // placement attempts per query, 0 = unbounded
	QueryTimeout     time.Duration `json:"query_timeout"` // 0 = no timeout
	Workers          int           `json:"workers"`
}

func DefaultSettings() SolverSettings {
	return SolverSettings{
		Mode:             ModePack,
		SymmetryBreaking: true,
		RegionPruning:    false,
		MaxSteps:         0,
		QueryTimeout:     0,
		Workers:          1,
	}
}

// QueryResult is the solver outcome for one query.
type QueryResult struct {
	Query    Query         `json:"query"`
	Verdict  Verdict       `json:"verdict"`
	Steps    int64         `json:"steps"`
	Duration time.Duration `json:"duration"`
	Reason   string        `json:"reason,omitempty"`
}

// BatchResult holds the results of a whole puzzle, in query order.
type BatchResult struct {
	Results  []QueryResult  `json:"results"`
	Settings SolverSettings `json:"settings"`
	Duration time.Duration  `json:"duration"`
}

func (br BatchResult) count(v Verdict) int {
	n := 0
	for _, r := range br.Results {
		if r.Verdict == v {
			n++
		}
	}
	return n
}

// Feasible returns the number of feasible queries.
func (br BatchResult) Feasible() int { return br.count(VerdictFeasible) }

// Infeasible returns the number of infeasible queries.
func (br BatchResult) Infeasible() int { return br.count(VerdictInfeasible) }

// Unknown returns the number of queries that ran out of budget.
func (br BatchResult) Unknown() int { return br.count(VerdictUnknown) }

// TotalSteps returns the summed placement attempts.
func (br BatchResult) TotalSteps() int64 {
	var total int64
	for _, r := range br.Results {
		total += r.Steps
	}
	return total
}
