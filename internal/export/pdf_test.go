package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PolyPack/internal/model"
)

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")

	p, br := buildTestBatch()
	if err := ExportPDF(path, p, br); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if len(data) < 500 {
		t.Errorf("PDF file seems too small: %d bytes", len(data))
	}
	if string(data[:5]) != "%PDF-" {
		t.Errorf("missing PDF header, got %q", data[:5])
	}
}

func TestExportPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	if err := ExportPDF(path, model.NewPuzzle(), model.BatchResult{}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestExportPDF_ManyQueriesAndShapes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "many.pdf")

	p := model.NewPuzzle()
	p.Name = "many"
	for i := 0; i < 15; i++ {
		cells := model.Cells{}
		for c := 0; c <= i%5; c++ {
			cells = append(cells, model.Point{Row: 0, Col: c})
		}
		p.Shapes = append(p.Shapes, model.NewShape(i, cells))
	}

	br := model.BatchResult{Settings: model.DefaultSettings()}
	for i := 0; i < 80; i++ {
		q := model.NewQuery(5+i%7, 5, []int{i % 3})
		p.Queries = append(p.Queries, q)
		br.Results = append(br.Results, model.QueryResult{
			Query:   q,
			Verdict: model.Verdict(i % 3),
			Steps:   int64(i * 10),
			Reason:  "a reason long enough that it needs to be truncated to fit its column",
		})
	}

	if err := ExportPDF(path, p, br); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}

func TestColorForCycles(t *testing.T) {
	if colorFor(0) != colorFor(len(shapeColors)) {
		t.Error("expected colors to cycle")
	}
	if colorFor(0) == colorFor(1) {
		t.Error("expected adjacent ids to differ")
	}
}
