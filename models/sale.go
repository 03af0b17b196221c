package models

import (
	"context"
	"time"

	"github.com/shoplite/retail_backend/config"
	"github.com/shoplite/retail_backend/utils"
	"github.com/shopspring/decimal"
)

type Sale struct {
	ID          string          `gorm:"primary_key;size:64" json:"id"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(13,2)" json:"totalAmount"`
	GrandTotal  decimal.Decimal `gorm:"type:decimal(13,2)" json:"grandTotal"`
	Vat         decimal.Decimal `gorm:"type:decimal(13,2)" json:"vat"`
	TurnoverTax decimal.Decimal `gorm:"type:decimal(13,2)" json:"turnoverTax"`
	Levy        decimal.Decimal `gorm:"type:decimal(13,2)" json:"levy"`
	Date        *time.Time      `json:"date"`
	CreatedBy   string          `gorm:"size:64;not null" json:"createdBy"`
	ShopId      string          `gorm:"size:64;not null;index" json:"shopId"`
	BusinessId  *string         `gorm:"size:64;index" json:"businessId"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewSale struct {
	ID          string          `json:"id"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
	Vat         decimal.Decimal `json:"vat"`
	TurnoverTax decimal.Decimal `json:"turnoverTax"`
	Levy        decimal.Decimal `json:"levy"`
	Date        *time.Time      `json:"date"`
	CreatedBy   string          `json:"createdBy" binding:"required"`
	ShopId      string          `json:"shopId" binding:"required"`
	BusinessId  string          `json:"businessId"`
	Items       []NewSaleItem   `json:"items"`
}

func CreateSale(ctx context.Context, input *NewSale) (*Sale, error) {
	db := config.GetDB()

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	sale := Sale{
		ID:          utils.ResourceId(input.ID),
		TotalAmount: input.TotalAmount,
		GrandTotal:  input.GrandTotal,
		Vat:         input.Vat,
		TurnoverTax: input.TurnoverTax,
		Levy:        input.Levy,
		Date:        &date,
		CreatedBy:   input.CreatedBy,
		ShopId:      input.ShopId,
		BusinessId:  utils.NilIfEmpty(input.BusinessId),
	}

	if err := db.WithContext(ctx).Create(&sale).Error; err != nil {
		return nil, err
	}

	for i := range input.Items {
		input.Items[i].SaleId = sale.ID
		if _, err := CreateSaleItem(ctx, &input.Items[i]); err != nil {
			return nil, err
		}
	}
	return &sale, nil
}

func GetSale(ctx context.Context, id string) (*Sale, error) {
	db := config.GetDB()
	var result Sale

	if err := db.WithContext(ctx).Where("id = ?", id).Take(&result).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}

func GetSalesByBusiness(ctx context.Context, businessId string, shopId string) ([]*Sale, error) {
	db := config.GetDB()
	var results []*Sale

	dbCtx := db.WithContext(ctx).Where("business_id = ?", businessId)
	if shopId != "" {
		dbCtx = dbCtx.Where("shop_id = ?", shopId)
	}
	if err := dbCtx.Order("date DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func UpdateSale(ctx context.Context, id string, attrs map[string]interface{}) (*Sale, error) {
	db := config.GetDB()
	var sale Sale

	if err := db.WithContext(ctx).Where("id = ?", id).Take(&sale).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := db.WithContext(ctx).Model(&sale).Updates(attrs).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&sale).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func DeleteSale(ctx context.Context, id string) error {
	db := config.GetDB()

	res := db.WithContext(ctx).Where("id = ?", id).Delete(&Sale{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	// sale items stay queryable by saleId; the client owns their cleanup
	return nil
}
