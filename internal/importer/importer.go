// Package importer reads puzzle input: the block text format, CSV and
// Excel query tables, and DXF shape outlines. Tables support automatic
// delimiter detection, flexible column mapping, and case-insensitive
// header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/PolyPack/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Queries  []model.Query
	Shapes   []model.Shape
	Errors   []string
	Warnings []string
}

// Err folds the collected errors into one, or nil when there are none.
func (r ImportResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("import failed: %s", strings.Join(r.Errors, "; "))
}

// ColumnMapping maps semantic column roles to their indices in the data.
// Counts[i] is the column holding the count of the i-th shape, -1 if absent.
type ColumnMapping struct {
	Label  int
	Size   int // combined "WxH" column
	Width  int
	Height int
	Counts []int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":  {"label", "name", "query", "description", "desc", "id"},
	"size":   {"size", "grid", "dimensions", "dims", "region"},
	"width":  {"width", "w", "cols", "columns"},
	"height": {"height", "h", "rows"},
}

// countPrefixes are accepted in front of a shape index in a count column header.
var countPrefixes = []string{"shape ", "shape", "count ", "c", "s", "#"}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// parseCountHeader returns the shape index named by a count column header.
func parseCountHeader(h string) (int, bool) {
	if n, err := strconv.Atoi(h); err == nil && n >= 0 {
		return n, true
	}
	for _, prefix := range countPrefixes {
		if rest, ok := strings.CutPrefix(h, prefix); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil && n >= 0 {
				return n, true
			}
		}
	}
	return 0, false
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Size: -1, Width: -1, Height: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		matched := false
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				matched = true
				switch role {
				case "label":
					if mapping.Label == -1 {
						mapping.Label = i
					}
				case "size":
					if mapping.Size == -1 {
						mapping.Size = i
					}
				case "width":
					if mapping.Width == -1 {
						mapping.Width = i
					}
				case "height":
					if mapping.Height == -1 {
						mapping.Height = i
					}
				}
			}
		}
		if matched {
			isHeader = true
			continue
		}
		if idx, ok := parseCountHeader(normalized); ok {
			for len(mapping.Counts) <= idx {
				mapping.Counts = append(mapping.Counts, -1)
			}
			if mapping.Counts[idx] == -1 {
				mapping.Counts[idx] = i
			}
		}
	}

	if !isHeader {
		return positionalMapping(row), false
	}
	return mapping, true
}

// positionalMapping handles rows without a header: either "WxH, c0, c1, ..."
// or "W, H, c0, c1, ...".
func positionalMapping(row []string) ColumnMapping {
	mapping := ColumnMapping{Label: -1, Size: -1, Width: -1, Height: -1}
	var first int
	if strings.Contains(strings.ToLower(getCell(row, 0)), "x") {
		mapping.Size = 0
		first = 1
	} else {
		mapping.Width = 0
		mapping.Height = 1
		first = 2
	}
	for i := first; i < len(row); i++ {
		mapping.Counts = append(mapping.Counts, i)
	}
	return mapping
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDimension(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil && n >= 1
}

// parseRow extracts a Query from a row using the given column mapping.
// Returns the query and any error message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.Query, string) {
	var w, h int
	if mapping.Size >= 0 {
		size := getCell(row, mapping.Size)
		ws, hs, ok := strings.Cut(strings.ToLower(size), "x")
		if !ok {
			return model.Query{}, fmt.Sprintf("%s: Invalid size '%s'", rowLabel, size)
		}
		var okW, okH bool
		w, okW = parseDimension(strings.TrimSpace(ws))
		h, okH = parseDimension(strings.TrimSpace(hs))
		if !okW || !okH {
			return model.Query{}, fmt.Sprintf("%s: Invalid size '%s'", rowLabel, size)
		}
	} else {
		widthStr := getCell(row, mapping.Width)
		if widthStr == "" {
			return model.Query{}, fmt.Sprintf("%s: Missing width value", rowLabel)
		}
		var ok bool
		if w, ok = parseDimension(widthStr); !ok {
			return model.Query{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr)
		}
		heightStr := getCell(row, mapping.Height)
		if heightStr == "" {
			return model.Query{}, fmt.Sprintf("%s: Missing height value", rowLabel)
		}
		if h, ok = parseDimension(heightStr); !ok {
			return model.Query{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr)
		}
	}

	counts := make([]int, len(mapping.Counts))
	for i, col := range mapping.Counts {
		s := getCell(row, col)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return model.Query{}, fmt.Sprintf("%s: Invalid count '%s' for shape %d", rowLabel, s, i)
		}
		counts[i] = n
	}

	q := model.NewQuery(w, h, counts)
	if label := getCell(row, mapping.Label); label != "" {
		q.Label = label
	}
	return q, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports queries from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports queries from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports queries from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into a query.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 || (len(rows) == 1 && isEmptyRow(rows[0])) {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Size == -1 && (mapping.Width == -1 || mapping.Height == -1) {
			result.Errors = append(result.Errors, "Required columns not found in header: Size or Width and Height")
			return result
		}
		for i, col := range mapping.Counts {
			if col == -1 {
				result.Warnings = append(result.Warnings, fmt.Sprintf("No count column for shape %d, assuming 0", i))
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		lineNum := i + 1
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		rowMapping := mapping
		if !hasHeader {
			rowMapping = positionalMapping(row)
		}
		q, errMsg := parseRow(row, rowMapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		q.Line = lineNum
		result.Queries = append(result.Queries, q)
	}

	if len(result.Queries) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}
