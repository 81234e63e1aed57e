package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"supplierboard/internal"
)

// ExportSummariesToXLSX writes a scored summary table to a workbook,
// one row per vendor in the order given.
func ExportSummariesToXLSX(summaries []internal.SupplierSummary, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range SummaryColumns() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, s := range summaries {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, s.Vendor)
		set(2, s.Orders)
		set(3, derefFloat(s.AvgLeadDays))
		set(4, derefFloat(s.AvgAPTerms))
		set(5, derefFloat(s.AvgItemCost))
		set(6, s.TotalSpend)
		set(7, s.CompositeScore)
	}

	return saveWorkbook(f, outputPath)
}

// ExportWinsToXLSX writes a vendor win tally to a workbook.
func ExportWinsToXLSX(wins []internal.VendorWins, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	_ = f.SetCellValue(sheet, "A1", "Vendor")
	_ = f.SetCellValue(sheet, "B1", "Wins")
	for i, w := range wins {
		cellA, _ := excelize.CoordinatesToCellName(1, i+2)
		cellB, _ := excelize.CoordinatesToCellName(2, i+2)
		_ = f.SetCellValue(sheet, cellA, w.Vendor)
		_ = f.SetCellValue(sheet, cellB, w.Wins)
	}

	return saveWorkbook(f, outputPath)
}

func saveWorkbook(f *excelize.File, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return f.SaveAs(outputPath)
}

func derefFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
