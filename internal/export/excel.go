package export

import (
	"fmt"

	"github.com/rmorales-dev/tienda-sync/internal/model"
	"github.com/xuri/excelize/v2"
)

const productSheet = "Products"

// ProductsWorkbook builds an .xlsx workbook with one row per catalog
// product. The caller owns the returned file and must close it.
func ProductsWorkbook(products []model.Product) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(productSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []string{"ID", "Name", "Description", "Price", "Category", "Stock", "Image Key"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(productSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, p := range products {
		values := []interface{}{p.ID, p.Name, p.Description, p.Price, p.Category, p.Stock, p.ImageKey}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(productSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
