// Package excel builds spreadsheet exports of the scoreboard.
package excel

import (
	"bytes"
	"fmt"

	"github.com/example/puntosbot/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ExportConfig defines the export configuration
type ExportConfig struct {
	SheetName string // Name of the sheet to write
}

// DefaultExportConfig returns the default export configuration
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		SheetName: "Puntuaciones",
	}
}

// ExportUsers writes the scoreboard to an xlsx workbook and returns its bytes.
// Users are written in the order given, one row each, with the yearly total
// followed by one column per month.
func ExportUsers(users []*models.User, config ExportConfig) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %v", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %v", err)
	}

	headers := []string{"Usuario", "Total"}
	for _, month := range models.Months {
		headers = append(headers, month)
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to compute header cell: %v", err)
		}
		if err := f.SetCellValue(config.SheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %v", err)
		}
	}

	for rowIdx, user := range users {
		row := rowIdx + 2
		values := []interface{}{user.Name(), user.TotalScore}
		for _, month := range models.Months {
			values = append(values, user.MonthlyScores[month])
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to compute cell: %v", err)
			}
			if err := f.SetCellValue(config.SheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %v", row, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %v", err)
	}
	return buf.Bytes(), nil
}
