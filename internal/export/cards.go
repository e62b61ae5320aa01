package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/PolyPack/internal/model"
)

// ShapeCard holds the data encoded into each shape card's QR code.
type ShapeCard struct {
	ID         int      `json:"id"`
	Label      string   `json:"label"`
	Area       int      `json:"area"`
	Variations int      `json:"variations"`
	Rows       []string `json:"rows"`
	Demand     int      `json:"demand"` // instances requested over all queries
}

// Card layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each card is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	cardMarginTop  = 12.7 // mm
	cardMarginLeft = 4.8  // mm
	cardWidth      = 66.7 // mm per card
	cardHeight     = 25.4 // mm per card
	cardCols       = 3
	cardRows       = 10
	cardsPerPage   = cardCols * cardRows
	qrSize         = 20.0 // QR code size in mm
	cardPadding    = 2.0  // mm internal padding
)

// CollectShapeCards builds one card per shape with a non-empty cell set.
func CollectShapeCards(p model.Puzzle) []ShapeCard {
	var cards []ShapeCard
	for i, s := range p.Shapes {
		if s.Area() == 0 {
			continue
		}
		demand := 0
		for _, q := range p.Queries {
			demand += q.Count(i)
		}
		cards = append(cards, ShapeCard{
			ID:         s.ID,
			Label:      s.Label,
			Area:       s.Area(),
			Variations: len(s.Cells.Variations()),
			Rows:       s.Cells.Rows(),
			Demand:     demand,
		})
	}
	return cards
}

// ExportShapeCards generates a PDF of QR-coded shape cards. Each card shows
// the shape label, its area and demand, a cell diagram, and a QR code that
// encodes the card as JSON.
func ExportShapeCards(path string, p model.Puzzle) error {
	cards := CollectShapeCards(p)
	if len(cards) == 0 {
		return fmt.Errorf("no shapes to generate cards for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, card := range cards {
		if i%cardsPerPage == 0 {
			pdf.AddPage()
		}

		pos := i % cardsPerPage
		x := cardMarginLeft + float64(pos%cardCols)*cardWidth
		y := cardMarginTop + float64(pos/cardCols)*cardHeight

		if err := renderCard(pdf, x, y, card); err != nil {
			return fmt.Errorf("failed to render card for %q: %w", card.Label, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderCard draws a single card at the given position.
func renderCard(pdf *fpdf.Fpdf, x, y float64, card ShapeCard) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, cardWidth, cardHeight, "D")

	qrData, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to marshal shape card: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_shape_%d", card.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + cardWidth - qrSize - cardPadding
	qrY := y + (cardHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + cardPadding
	textW := cardWidth - qrSize - 3*cardPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+cardPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, card.Label, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+cardPadding+4.5)
	info := fmt.Sprintf("Area %d | %d var. | demand %d", card.Area, card.Variations, card.Demand)
	pdf.CellFormat(textW, 3, truncate(pdf, info, textW), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	drawRows(pdf, card.Rows, colorFor(card.ID), textX, y+cardPadding+8.5, textW, cardHeight-2*cardPadding-8.5)
	return nil
}

// drawRows renders the '#' cells of a row diagram inside the given box.
func drawRows(pdf *fpdf.Fpdf, rows []string, col shapeColor, x, y, w, h float64) {
	var cells model.Cells
	for r, line := range rows {
		for c := 0; c < len(line); c++ {
			if line[c] == '#' {
				cells = append(cells, model.Point{Row: r, Col: c})
			}
		}
	}
	drawCells(pdf, cells, col, x, y, w, h)
}
