// Package export writes solve results as text, JSON, XLSX and PDF reports,
// and prints QR-coded shape cards.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/piwi3910/PolyPack/internal/model"
)

// VerdictStyle decorates an already padded verdict cell. Nil leaves it plain.
type VerdictStyle func(v model.Verdict, cell string) string

// WriteCount writes the number of feasible queries followed by a newline.
func WriteCount(w io.Writer, br model.BatchResult) error {
	_, err := fmt.Fprintln(w, br.Feasible())
	return err
}

// WriteSummary writes a plain text table with one line per query and the
// batch totals.
func WriteSummary(w io.Writer, p model.Puzzle, br model.BatchResult, style VerdictStyle) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Puzzle: %s\n", p.Name)
	fmt.Fprintf(&b, "Settings: %s\n\n", describeSettings(br.Settings))

	rows := [][]string{{"#", "LABEL", "GRID", "PIECES", "AREA", "VERDICT", "STEPS"}}
	for i, r := range br.Results {
		q := r.Query
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			q.Label,
			fmt.Sprintf("%dx%d", q.Width, q.Height),
			strconv.Itoa(q.Instances()),
			fmt.Sprintf("%d/%d", p.RequiredArea(q), q.GridArea()),
			r.Verdict.String(),
			strconv.FormatInt(r.Steps, 10),
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	const verdictCol = 5
	for n, row := range rows {
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			padded := fmt.Sprintf("%-*s", widths[i], cell)
			if i == verdictCol && n > 0 && style != nil {
				padded = style(br.Results[n-1].Verdict, padded)
			}
			b.WriteString(padded)
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "\nFeasible: %d  Infeasible: %d  Unknown: %d  Total steps: %d\n",
		br.Feasible(), br.Infeasible(), br.Unknown(), br.TotalSteps())

	_, err := io.WriteString(w, b.String())
	return err
}

func describeSettings(s model.SolverSettings) string {
	return fmt.Sprintf("mode=%s symmetry=%s regions=%s workers=%d max-steps=%d timeout=%s",
		s.Mode, onOff(s.SymmetryBreaking), onOff(s.RegionPruning), s.Workers, s.MaxSteps, s.QueryTimeout)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// JSONReport is the document written by WriteJSON.
type JSONReport struct {
	Puzzle     string               `json:"puzzle"`
	Settings   model.SolverSettings `json:"settings"`
	Feasible   int                  `json:"feasible"`
	Infeasible int                  `json:"infeasible"`
	Unknown    int                  `json:"unknown"`
	TotalSteps int64                `json:"total_steps"`
	DurationMS int64                `json:"duration_ms"`
	Results    []JSONResult         `json:"results"`
}

// JSONResult is one query line of a JSONReport.
type JSONResult struct {
	Index        int           `json:"index"`
	ID           string        `json:"id"`
	Label        string        `json:"label"`
	Width        int           `json:"width"`
	Height       int           `json:"height"`
	Counts       []int         `json:"counts"`
	RequiredArea int           `json:"required_area"`
	GridArea     int           `json:"grid_area"`
	Verdict      model.Verdict `json:"verdict"`
	Steps        int64         `json:"steps"`
	DurationMS   float64       `json:"duration_ms"`
	Reason       string        `json:"reason,omitempty"`
}

// BuildJSONReport converts a batch into its JSON report form.
func BuildJSONReport(p model.Puzzle, br model.BatchResult) JSONReport {
	rep := JSONReport{
		Puzzle:     p.Name,
		Settings:   br.Settings,
		Feasible:   br.Feasible(),
		Infeasible: br.Infeasible(),
		Unknown:    br.Unknown(),
		TotalSteps: br.TotalSteps(),
		DurationMS: br.Duration.Milliseconds(),
		Results:    make([]JSONResult, 0, len(br.Results)),
	}
	for i, r := range br.Results {
		rep.Results = append(rep.Results, JSONResult{
			Index:        i + 1,
			ID:           r.Query.ID,
			Label:        r.Query.Label,
			Width:        r.Query.Width,
			Height:       r.Query.Height,
			Counts:       r.Query.Counts,
			RequiredArea: p.RequiredArea(r.Query),
			GridArea:     r.Query.GridArea(),
			Verdict:      r.Verdict,
			Steps:        r.Steps,
			DurationMS:   float64(r.Duration.Microseconds()) / 1000,
			Reason:       r.Reason,
		})
	}
	return rep
}

// WriteJSON writes the batch as an indented JSON document.
func WriteJSON(w io.Writer, p model.Puzzle, br model.BatchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildJSONReport(p, br)); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}
