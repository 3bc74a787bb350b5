// Package report выгружает таблицу заявок в Excel.
package report

import (
	"fmt"
	"io"

	"repairdesk/internal/app/service"

	"github.com/xuri/excelize/v2"
)

// SheetName - лист с заявками
const SheetName = "Заявки"

// WriteTable пишет таблицу заявок в xlsx: первая строка - заголовки роли,
// далее строки в том же порядке, что и на экране
func WriteTable(w io.Writer, t *service.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row.Cells))
		for j, v := range row.Cells {
			values[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row.RequestID, err)
		}
	}

	if len(t.Headers) > 0 {
		last, err := excelize.ColumnNumberToName(len(t.Headers))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, "A", last, 20); err != nil {
			return err
		}
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, "A1", last+"1", style); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}
