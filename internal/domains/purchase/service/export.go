package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"kiosk-backend/internal/domains/purchase/model"
)

const salesSheet = "Sales"

// ExportSales builds an .xlsx of every purchase of the author's articles
// with a total row at the bottom.
func (s *purchaseService) ExportSales(ctx context.Context, authorID uuid.UUID) ([]byte, error) {
	records, err := s.repo.ListSalesByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	f, err := buildSalesFile(records)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func buildSalesFile(records []*model.PurchaseRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return nil, err
	}

	headers := []string{"Purchase ID", "Article", "Article ID", "Buyer ID", "Amount (USD)", "Purchased At"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(salesSheet, cell, header)
	}

	headerStyle, styleErr := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if styleErr == nil {
		f.SetCellStyle(salesSheet, "A1", "F1", headerStyle)
	}

	total := decimal.Zero
	for i, rec := range records {
		row := i + 2
		cell := func(col int) string {
			name, _ := excelize.CoordinatesToCellName(col, row)
			return name
		}

		f.SetCellValue(salesSheet, cell(1), rec.ID.String())
		f.SetCellValue(salesSheet, cell(2), rec.ArticleTitle)
		f.SetCellValue(salesSheet, cell(3), rec.ArticleID.String())
		f.SetCellValue(salesSheet, cell(4), rec.UserID.String())
		f.SetCellValue(salesSheet, cell(5), rec.AmountPaid.InexactFloat64())
		f.SetCellValue(salesSheet, cell(6), rec.CreatedAt.UTC().Format("2006-01-02 15:04:05"))

		total = total.Add(rec.AmountPaid)
	}

	totalRow := len(records) + 2
	labelCell, _ := excelize.CoordinatesToCellName(4, totalRow)
	totalCell, _ := excelize.CoordinatesToCellName(5, totalRow)
	f.SetCellValue(salesSheet, labelCell, "Total")
	f.SetCellValue(salesSheet, totalCell, total.InexactFloat64())
	if styleErr == nil {
		f.SetCellStyle(salesSheet, labelCell, totalCell, headerStyle)
	}

	f.SetColWidth(salesSheet, "A", "D", 38)
	f.SetColWidth(salesSheet, "B", "B", 48)
	f.SetColWidth(salesSheet, "E", "F", 20)

	return f, nil
}
