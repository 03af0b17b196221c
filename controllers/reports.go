package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/retail_backend/config"
	"github.com/shoplite/retail_backend/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExportSalesReport streams an xlsx listing of a business's sales.
func ExportSalesReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		businessId := c.Query("businessId")
		if businessId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "businessId required"})
			return
		}

		sales, err := models.GetSalesByBusiness(c.Request.Context(), businessId, c.Query("shopId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}

		f := excelize.NewFile()
		defer f.Close()
		sheet := "Sales"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Sale ID", "Date", "Shop", "Created By", "Total Amount", "VAT", "Turnover Tax", "Levy", "Grand Total"}
		for i, header := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, header)
		}

		grandTotal := decimal.Zero
		for row, sale := range sales {
			saleDate := ""
			if sale.Date != nil {
				saleDate = sale.Date.Format("2006-01-02 15:04")
			}
			values := []interface{}{
				sale.ID,
				saleDate,
				sale.ShopId,
				sale.CreatedBy,
				sale.TotalAmount.InexactFloat64(),
				sale.Vat.InexactFloat64(),
				sale.TurnoverTax.InexactFloat64(),
				sale.Levy.InexactFloat64(),
				sale.GrandTotal.InexactFloat64(),
			}
			for col, value := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, value)
			}
			grandTotal = grandTotal.Add(sale.GrandTotal)
		}

		totalRow := len(sales) + 2
		totalLabelCell, _ := excelize.CoordinatesToCellName(1, totalRow)
		totalValueCell, _ := excelize.CoordinatesToCellName(len(headers), totalRow)
		f.SetCellValue(sheet, totalLabelCell, "Total")
		f.SetCellValue(sheet, totalValueCell, grandTotal.InexactFloat64())

		buf, err := f.WriteToBuffer()
		if err != nil {
			config.LogError(logger, "controllers", "ExportSalesReport", "writing workbook", businessId, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}

		filename := fmt.Sprintf("sales_%s_%s.xlsx", businessId, time.Now().Format("20060102"))
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}
