package infra

import (
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"

	"github.com/xuri/excelize/v2"
)

// ExportInventoryXLSX renders the inventory as a single-sheet workbook.
func ExportInventoryXLSX(items []model.InventoryItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Inventory"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{
		"ID", "Name", "Category", "Volume", "Bottles/Case", "Current Stock", "Min Stock",
		"Max Stock", "Status", "Unit Cost", "Total Value", "Location", "Supplier", "Last Updated",
	}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, it := range items {
		row := r + 2
		unitCost, _ := it.UnitCost.Float64()
		totalValue, _ := it.TotalValue.Float64()
		values := []any{
			it.ID,
			it.Name,
			it.Category,
			it.Volume,
			it.BottlesPerCase,
			it.CurrentStock,
			it.MinStock,
			it.MaxStock,
			string(it.Status),
			unitCost,
			totalValue,
			it.Location,
			it.Supplier,
			it.LastUpdated.Format("2006-01-02 15:04"),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 38)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "C", "I", 14)
	_ = f.SetColWidth(sheet, "J", "K", 12)
	_ = f.SetColWidth(sheet, "L", "M", 20)
	_ = f.SetColWidth(sheet, "N", "N", 18)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "N1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
