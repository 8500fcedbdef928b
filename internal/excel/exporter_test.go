package excel

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/example/puntosbot/pkg/models"
)

func TestExportUsers(t *testing.T) {
	ana := models.NewUser("1")
	ana.DisplayName = "Ana"
	ana.SetMonthlyScore("enero", 10)
	ana.SetMonthlyScore("mayo", 5)

	anon := models.NewUser("2")
	anon.SetMonthlyScore("enero", 3)

	data, err := ExportUsers([]*models.User{ana, anon}, DefaultExportConfig())
	if err != nil {
		t.Fatalf("Failed to export users: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	sheet := DefaultExportConfig().SheetName
	cases := []struct {
		cell string
		want string
	}{
		{"A1", "Usuario"},
		{"B1", "Total"},
		{"C1", "enero"},
		{"N1", "diciembre"},
		{"A2", "Ana"},
		{"B2", "15"},
		{"C2", "10"},
		{"G2", "5"},
		{"A3", "2"}, // falls back to the identifier without a display name
		{"C3", "3"},
	}
	for _, c := range cases {
		got, err := f.GetCellValue(sheet, c.cell)
		if err != nil {
			t.Fatalf("Failed to read cell %s: %v", c.cell, err)
		}
		if got != c.want {
			t.Errorf("cell %s = %q, want %q", c.cell, got, c.want)
		}
	}
}
