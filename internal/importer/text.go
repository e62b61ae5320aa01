package importer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/piwi3910/PolyPack/internal/model"
)

// block is a run of non-blank input lines.
type block struct {
	start int // line number of the first line
	lines []string
}

// ParsePuzzleFile reads a puzzle definition from a file.
func ParsePuzzleFile(path string) (model.Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Puzzle{}, fmt.Errorf("failed to open puzzle: %w", err)
	}
	defer f.Close()

	p, err := ParsePuzzle(f)
	if err != nil {
		return model.Puzzle{}, err
	}
	p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return p, nil
}

// ParsePuzzleString parses a puzzle definition held in memory.
func ParsePuzzleString(s string) (model.Puzzle, error) {
	return ParsePuzzle(strings.NewReader(s))
}

// ParsePuzzle reads blank-line separated blocks. A shape block starts with
// an "<id>:" header followed by rows where '#' marks an occupied cell. A
// query block holds lines of the form "<W>x<H>: <c0> <c1> ...". Any
// malformed block fails the whole parse.
func ParsePuzzle(r io.Reader) (model.Puzzle, error) {
	blocks, err := splitBlocks(r)
	if err != nil {
		return model.Puzzle{}, err
	}

	p := model.NewPuzzle()
	for _, b := range blocks {
		if isQueryBlock(b) {
			for i, line := range b.lines {
				q, err := ParseQueryLine(line)
				if err != nil {
					return model.Puzzle{}, withLine(err, b.start+i)
				}
				q.Line = b.start + i
				p.Queries = append(p.Queries, q)
			}
			continue
		}

		shape, err := parseShapeBlock(b)
		if err != nil {
			return model.Puzzle{}, err
		}
		p.Shapes = append(p.Shapes, shape)
	}

	sort.SliceStable(p.Shapes, func(i, j int) bool { return p.Shapes[i].ID < p.Shapes[j].ID })
	for i := 1; i < len(p.Shapes); i++ {
		if p.Shapes[i].ID == p.Shapes[i-1].ID {
			return model.Puzzle{}, parseErr(0, strconv.Itoa(p.Shapes[i].ID), ErrDuplicateShapeID)
		}
	}
	if err := ValidateQueries(p.Shapes, p.Queries); err != nil {
		return model.Puzzle{}, err
	}
	return p, nil
}

// ValidateQueries checks that no query asks for a shape that does not exist.
// Counts past the last shape are allowed when they are zero.
func ValidateQueries(shapes []model.Shape, queries []model.Query) error {
	for _, q := range queries {
		for i := len(shapes); i < len(q.Counts); i++ {
			if q.Counts[i] != 0 {
				frag := fmt.Sprintf("%s (count %d at position %d, %d shapes defined)", q.Label, q.Counts[i], i, len(shapes))
				return parseErr(q.Line, frag, ErrUnknownShape)
			}
		}
	}
	return nil
}

// ParseQueryLine parses "<W>x<H>: <c0> <c1> ...". W and H must be positive
// and counts non-negative. The returned query has no line number set.
func ParseQueryLine(line string) (model.Query, error) {
	dims, rest, ok := strings.Cut(line, ":")
	if !ok {
		return model.Query{}, parseErr(0, line, ErrInvalidQueryFormat)
	}

	ws, hs, ok := strings.Cut(strings.TrimSpace(dims), "x")
	if !ok {
		return model.Query{}, parseErr(0, dims, ErrInvalidDimensionFormat)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil || w < 1 {
		return model.Query{}, parseErr(0, dims, ErrInvalidDimensionFormat)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil || h < 1 {
		return model.Query{}, parseErr(0, dims, ErrInvalidDimensionFormat)
	}

	fields := strings.Fields(rest)
	counts := make([]int, len(fields))
	for i, tok := range fields {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 {
			return model.Query{}, parseErr(0, tok, ErrInvalidInteger)
		}
		counts[i] = n
	}
	return model.NewQuery(w, h, counts), nil
}

func splitBlocks(r io.Reader) ([]block, error) {
	var blocks []block
	var cur *block

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			cur = nil
			continue
		}
		if cur == nil {
			blocks = append(blocks, block{start: lineNum})
			cur = &blocks[len(blocks)-1]
		}
		cur.lines = append(cur.lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read puzzle: %w", err)
	}
	return blocks, nil
}

// isShapeHeader reports whether line is "<int>" or "<int>:".
func isShapeHeader(line string) bool {
	_, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(line), ":"))
	return err == nil
}

func isQueryBlock(b block) bool {
	first := b.lines[0]
	if isShapeHeader(first) || strings.Contains(first, "#") {
		return false
	}
	return strings.Contains(strings.Join(b.lines, "\n"), "x")
}

func parseShapeBlock(b block) (model.Shape, error) {
	header := strings.TrimSpace(b.lines[0])
	id, err := strconv.Atoi(strings.TrimSuffix(header, ":"))
	if err != nil {
		return model.Shape{}, parseErr(b.start, header, ErrInvalidShapeID)
	}

	var cells model.Cells
	for r, row := range b.lines[1:] {
		for c := 0; c < len(row); c++ {
			if row[c] == '#' {
				cells = append(cells, model.Point{Row: r, Col: c})
			}
		}
	}
	return model.NewShape(id, cells), nil
}

func withLine(err error, line int) error {
	if pe, ok := err.(*ParseError); ok && pe.Line == 0 {
		pe.Line = line
	}
	return err
}
