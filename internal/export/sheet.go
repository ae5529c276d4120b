package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// amountFormat is the built-in "#,##0.00" number format.
const amountFormat = 4

type sheet struct {
	name    string
	headers []string
	widths  []float64
	amounts []int // Zero-based columns rendered with two decimals
	rows    [][]any
}

// writeSheet renders sh as the sheet at index, reusing the default sheet for index 0.
func writeSheet(f *excelize.File, index int, sh sheet) error {
	if index == 0 {
		if err := f.SetSheetName(f.GetSheetName(0), sh.name); err != nil {
			return err
		}
	} else if _, err := f.NewSheet(sh.name); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: amountFormat})
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}

	if err := f.SetSheetRow(sh.name, "A1", &sh.headers); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(sh.headers), 1)
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(sh.name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range sh.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
			return err
		}
	}

	if len(sh.rows) > 0 {
		for _, col := range sh.amounts {
			top, _ := excelize.CoordinatesToCellName(col+1, 2)
			bottom, _ := excelize.CoordinatesToCellName(col+1, len(sh.rows)+1)

			if err := f.SetCellStyle(sh.name, top, bottom, amountStyle); err != nil {
				return err
			}
		}
	}

	for i, width := range sh.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}

		if err := f.SetColWidth(sh.name, col, col, width); err != nil {
			return err
		}
	}

	return f.SetPanes(sh.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
