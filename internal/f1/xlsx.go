package f1

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const standingsSheet = "Standings"

// WriteXLSX writes the standings table to an .xlsx workbook at path.
// Used as the local fallback when no Sheets credentials are configured.
func WriteXLSX(rows []StandingRow, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(standingsSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for col, name := range Header() {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(standingsSheet, cell, name); err != nil {
			return err
		}
	}

	for i, row := range rows {
		values := []string{row.Position, row.Driver, row.Points, row.Wins, row.Constructor}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(standingsSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
