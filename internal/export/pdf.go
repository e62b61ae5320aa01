package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/PolyPack/internal/model"
)

// shapeColor represents an RGB fill color for a shape.
type shapeColor struct {
	R, G, B int
}

// shapeColors is cycled by shape id.
var shapeColors = []shapeColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

func colorFor(id int) shapeColor {
	return shapeColors[id%len(shapeColors)]
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	rowHeight    = 6.0

	catalogueCols = 4
	catalogueRows = 3
	tileWidth     = (pageWidth - marginLeft - marginRight) / catalogueCols
	tileHeight    = 50.0
)

// ExportPDF generates a PDF report: a summary page, the query table split
// over as many pages as needed, and a catalogue of every shape.
func ExportPDF(path string, p model.Puzzle, br model.BatchResult) error {
	if len(br.Results) == 0 {
		return fmt.Errorf("no results to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderSummaryPage(pdf, p, br)

	renderQueryTable(pdf, p, br)

	if len(p.Shapes) > 0 {
		renderShapeCatalogue(pdf, p.Shapes)
	}

	return pdf.OutputFileAndClose(path)
}

// renderSummaryPage draws the overall statistics and solver settings.
func renderSummaryPage(pdf *fpdf.Fpdf, p model.Puzzle, br model.BatchResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Feasibility Report: "+p.Name, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	y = renderKeyValues(pdf, y, "Overall Statistics", []keyValue{
		{"Shapes", fmt.Sprintf("%d", len(p.Shapes))},
		{"Queries", fmt.Sprintf("%d", len(br.Results))},
		{"Feasible", fmt.Sprintf("%d", br.Feasible())},
		{"Infeasible", fmt.Sprintf("%d", br.Infeasible())},
		{"Unknown", fmt.Sprintf("%d", br.Unknown())},
		{"Total Steps", fmt.Sprintf("%d", br.TotalSteps())},
		{"Duration", br.Duration.String()},
	})

	y += 5
	s := br.Settings
	renderKeyValues(pdf, y, "Solver Settings", []keyValue{
		{"Mode", string(s.Mode)},
		{"Symmetry Breaking", onOff(s.SymmetryBreaking)},
		{"Region Pruning", onOff(s.RegionPruning)},
		{"Workers", fmt.Sprintf("%d", s.Workers)},
		{"Max Steps", fmt.Sprintf("%d", s.MaxSteps)},
		{"Query Timeout", s.QueryTimeout.String()},
	})

	renderFooter(pdf)
}

type keyValue struct {
	label string
	value string
}

func renderKeyValues(pdf *fpdf.Fpdf, y float64, title string, items []keyValue) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	return y
}

var (
	tableWidths  = []float64{12, 55, 25, 20, 35, 30, 35, 55}
	tableHeaders = []string{"#", "Label", "Grid", "Pieces", "Area", "Verdict", "Steps", "Reason"}
)

// renderQueryTable writes one row per query, starting a new page whenever
// the current one is full.
func renderQueryTable(pdf *fpdf.Fpdf, p model.Puzzle, br model.BatchResult) {
	y := pageHeight
	for i, r := range br.Results {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "B", 14)
			pdf.SetXY(marginLeft, marginTop)
			pdf.CellFormat(200, 8, "Query Results", "", 0, "L", false, 0, "")
			y = renderTableHeader(pdf, marginTop+12)
		}

		q := r.Query
		cells := []string{
			fmt.Sprintf("%d", i+1),
			q.Label,
			fmt.Sprintf("%d x %d", q.Width, q.Height),
			fmt.Sprintf("%d", q.Instances()),
			fmt.Sprintf("%d / %d", p.RequiredArea(q), q.GridArea()),
			r.Verdict.String(),
			fmt.Sprintf("%d", r.Steps),
			r.Reason,
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		pdf.SetFont("Helvetica", "", 9)
		x := marginLeft
		for j, cell := range cells {
			pdf.SetXY(x, y)
			setVerdictColor(pdf, j == 5, r.Verdict)
			pdf.CellFormat(tableWidths[j], rowHeight, truncate(pdf, cell, tableWidths[j]-2), "1", 0, "C", true, 0, "")
			x += tableWidths[j]
		}
		pdf.SetTextColor(0, 0, 0)
		y += rowHeight
	}
}

func renderTableHeader(pdf *fpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, header := range tableHeaders {
		pdf.SetXY(x, y)
		pdf.CellFormat(tableWidths[i], rowHeight, header, "1", 0, "C", true, 0, "")
		x += tableWidths[i]
	}
	return y + rowHeight
}

func setVerdictColor(pdf *fpdf.Fpdf, verdictCell bool, v model.Verdict) {
	if !verdictCell {
		pdf.SetTextColor(0, 0, 0)
		return
	}
	switch v {
	case model.VerdictFeasible:
		pdf.SetTextColor(30, 130, 50)
	case model.VerdictUnknown:
		pdf.SetTextColor(180, 120, 0)
	default:
		pdf.SetTextColor(200, 0, 0)
	}
}

// truncate shortens s with an ellipsis until it fits width.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// renderShapeCatalogue draws every shape as a cell diagram, twelve per page.
func renderShapeCatalogue(pdf *fpdf.Fpdf, shapes []model.Shape) {
	perPage := catalogueCols * catalogueRows
	for i, s := range shapes {
		if i%perPage == 0 {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "B", 14)
			pdf.SetTextColor(0, 0, 0)
			pdf.SetXY(marginLeft, marginTop)
			pdf.CellFormat(200, 8, "Shape Catalogue", "", 0, "L", false, 0, "")
		}
		pos := i % perPage
		x := marginLeft + float64(pos%catalogueCols)*tileWidth
		y := marginTop + 12 + float64(pos/catalogueCols)*tileHeight
		renderShapeTile(pdf, s, x, y)
	}
}

func renderShapeTile(pdf *fpdf.Fpdf, s model.Shape, x, y float64) {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x+1, y+1, tileWidth-2, tileHeight-2, "D")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(x+3, y+3)
	pdf.CellFormat(tileWidth-6, 4, truncate(pdf, s.Label, tileWidth-6), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(x+3, y+7.5)
	info := fmt.Sprintf("Area %d | %d variations", s.Area(), len(s.Cells.Variations()))
	pdf.CellFormat(tileWidth-6, 3.5, info, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	drawCells(pdf, s.Cells, colorFor(s.ID), x+3, y+13, tileWidth-6, tileHeight-17)
}

// drawCells renders a cell set scaled to fit the w x h box, top-left aligned.
func drawCells(pdf *fpdf.Fpdf, cells model.Cells, col shapeColor, x, y, w, h float64) {
	rows, cols := cells.Size()
	if rows == 0 || cols == 0 {
		return
	}
	cell := math.Min(w/float64(cols), h/float64(rows))
	cell = math.Min(cell, 8)

	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.2)
	for _, c := range cells {
		pdf.Rect(x+float64(c.Col)*cell, y+float64(c.Row)*cell, cell, cell, "FD")
	}
}

func renderFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by PolyPack - Polyomino Packing Feasibility", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
