package models

import (
	"context"

	"github.com/shoplite/retail_backend/config"
	"github.com/shoplite/retail_backend/utils"
	"github.com/shopspring/decimal"
)

type SaleItem struct {
	ID          int             `gorm:"primary_key;autoIncrement" json:"id"`
	SaleId      string          `gorm:"size:64;not null;index" json:"saleId"`
	ProductId   *string         `gorm:"size:64" json:"productId"`
	ProductName string          `gorm:"size:255" json:"productName"`
	Price       decimal.Decimal `gorm:"type:decimal(13,2)" json:"price"`
	Quantity    int             `gorm:"not null;default:0" json:"quantity"`
}

type NewSaleItem struct {
	SaleId      string          `json:"saleId"`
	ProductId   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

func CreateSaleItem(ctx context.Context, input *NewSaleItem) (*SaleItem, error) {
	db := config.GetDB()

	item := SaleItem{
		SaleId:      input.SaleId,
		ProductId:   utils.NilIfEmpty(input.ProductId),
		ProductName: input.ProductName,
		Price:       input.Price,
		Quantity:    input.Quantity,
	}
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func GetSaleItemsBySale(ctx context.Context, saleId string) ([]*SaleItem, error) {
	db := config.GetDB()
	var results []*SaleItem

	if err := db.WithContext(ctx).Where("sale_id = ?", saleId).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func DeleteSaleItem(ctx context.Context, id int) error {
	db := config.GetDB()

	res := db.WithContext(ctx).Where("id = ?", id).Delete(&SaleItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}
