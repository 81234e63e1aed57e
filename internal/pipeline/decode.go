package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jhillyerd/enmime"
	"github.com/xuri/excelize/v2"

	"supplierboard/internal"
)

// DecodeGrid turns an uploaded file into a raw grid of text cells.
// Dispatch is by filename extension, the only signal available for an
// upload. The grid is untyped; all interpretation happens downstream.
func DecodeGrid(filename string, blob []byte) (internal.RawGrid, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xls":
		return decodeXLSX(blob)
	case ".csv":
		return decodeCSV(blob)
	case ".html", ".htm":
		return decodeHTMLTable(blob)
	case ".eml":
		return decodeEmailAttachment(blob)
	default:
		return nil, fmt.Errorf("unsupported input format: %q", ext)
	}
}

func decodeXLSX(blob []byte) (internal.RawGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		return rows, nil
	}
	return nil, fmt.Errorf("workbook has no non-empty sheet")
}

func decodeCSV(blob []byte) (internal.RawGrid, error) {
	blob = bytes.TrimPrefix(blob, []byte("\xef\xbb\xbf"))
	reader := csv.NewReader(bytes.NewReader(blob))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func decodeHTMLTable(blob []byte) (internal.RawGrid, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no <table> in html input")
	}

	grid := internal.RawGrid{}
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := []string{}
		row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, normalizeSpaces(cell.Text()))
		})
		grid = append(grid, cells)
	})
	return grid, nil
}

// decodeEmailAttachment pulls the first spreadsheet attachment out of a
// raw RFC 5322 message and decodes it.
func decodeEmailAttachment(blob []byte) (internal.RawGrid, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("read mail envelope: %w", err)
	}

	for _, att := range env.Attachments {
		name := strings.ToLower(strings.TrimSpace(att.FileName))
		if strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xls") || strings.HasSuffix(name, ".csv") {
			return DecodeGrid(name, att.Content)
		}
	}
	return nil, fmt.Errorf("no spreadsheet attachment in mail")
}

var reSpaces = regexp.MustCompile(`\s+`)

func normalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}
