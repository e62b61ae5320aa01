package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/PolyPack/internal/model"
)

const (
	resultsSheet = "Results"
	shapesSheet  = "Shapes"
	summarySheet = "Summary"
)

var resultHeaders = []interface{}{
	"#", "Label", "Width", "Height", "Pieces", "Required Area", "Grid Area", "Verdict", "Steps", "Duration (ms)", "Reason",
}

// ExportXLSX writes a workbook with a results sheet, a shape sheet and a
// summary sheet.
func ExportXLSX(path string, p model.Puzzle, br model.BatchResult) error {
	if len(br.Results) == 0 {
		return fmt.Errorf("no results to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), resultsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{shapesSheet, summarySheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeResultsSheet(f, p, br, header); err != nil {
		return err
	}
	if err := writeShapesSheet(f, p, header); err != nil {
		return err
	}
	if err := writeSummarySheet(f, p, br, header); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeResultsSheet(f *excelize.File, p model.Puzzle, br model.BatchResult, header int) error {
	if err := f.SetSheetRow(resultsSheet, "A1", &resultHeaders); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(resultHeaders), 1)
	if err := f.SetCellStyle(resultsSheet, "A1", last, header); err != nil {
		return err
	}

	for i, r := range br.Results {
		q := r.Query
		row := []interface{}{
			i + 1,
			q.Label,
			q.Width,
			q.Height,
			q.Instances(),
			p.RequiredArea(q),
			q.GridArea(),
			r.Verdict.String(),
			r.Steps,
			float64(r.Duration.Microseconds()) / 1000,
			r.Reason,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(resultsSheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(resultsSheet, "B", "B", 16); err != nil {
		return err
	}
	return f.SetColWidth(resultsSheet, "K", "K", 36)
}

func writeShapesSheet(f *excelize.File, p model.Puzzle, header int) error {
	headers := []interface{}{"ID", "Label", "Area", "Variations", "Connected", "Rows"}
	if err := f.SetSheetRow(shapesSheet, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(shapesSheet, "A1", "F1", header); err != nil {
		return err
	}

	for i, s := range p.Shapes {
		row := []interface{}{
			s.ID,
			s.Label,
			s.Area(),
			len(s.Cells.Variations()),
			s.Cells.Connected(),
			strings.Join(s.Cells.Rows(), "/"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(shapesSheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(shapesSheet, "F", "F", 30)
}

func writeSummarySheet(f *excelize.File, p model.Puzzle, br model.BatchResult, header int) error {
	items := [][]interface{}{
		{"Puzzle", p.Name},
		{"Queries", len(br.Results)},
		{"Feasible", br.Feasible()},
		{"Infeasible", br.Infeasible()},
		{"Unknown", br.Unknown()},
		{"Total Steps", br.TotalSteps()},
		{"Duration (ms)", br.Duration.Milliseconds()},
		{"Mode", string(br.Settings.Mode)},
		{"Symmetry Breaking", br.Settings.SymmetryBreaking},
		{"Region Pruning", br.Settings.RegionPruning},
		{"Workers", br.Settings.Workers},
		{"Max Steps", br.Settings.MaxSteps},
		{"Query Timeout", br.Settings.QueryTimeout.String()},
	}
	for i, item := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &item); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(items)), header); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "A", "A", 20)
}
