package models

import (
	"context"
	"time"

	"github.com/shoplite/retail_backend/config"
	"github.com/shoplite/retail_backend/utils"
	"github.com/shopspring/decimal"
)

type Inventory struct {
	ID                string          `gorm:"primary_key;size:64" json:"id"`
	Name              string          `gorm:"size:255;not null" json:"name"`
	Price             decimal.Decimal `gorm:"type:decimal(13,2)" json:"price"`
	Quantity          int             `gorm:"not null;default:0" json:"quantity"`
	LowStockThreshold int             `gorm:"not null;default:5" json:"lowStockThreshold"`
	Barcode           *string         `gorm:"size:128" json:"barcode"`
	CreatedBy         string          `gorm:"size:64;not null" json:"createdBy"`
	ShopId            string          `gorm:"size:64;not null;index" json:"shopId"`
	BusinessId        *string         `gorm:"size:64;index" json:"businessId"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewInventory struct {
	ID                string          `json:"id"`
	Name              string          `json:"name" binding:"required"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int             `json:"quantity"`
	LowStockThreshold *int            `json:"lowStockThreshold"`
	Barcode           string          `json:"barcode"`
	CreatedBy         string          `json:"createdBy" binding:"required"`
	ShopId            string          `json:"shopId" binding:"required"`
	BusinessId        string          `json:"businessId"`
}

func CreateInventory(ctx context.Context, input *NewInventory) (*Inventory, error) {
	db := config.GetDB()

	threshold := 5
	if input.LowStockThreshold != nil {
		threshold = *input.LowStockThreshold
	}

	item := Inventory{
		ID:                utils.ResourceId(input.ID),
		Name:              input.Name,
		Price:             input.Price,
		Quantity:          input.Quantity,
		LowStockThreshold: threshold,
		Barcode:           utils.NilIfEmpty(input.Barcode),
		CreatedBy:         input.CreatedBy,
		ShopId:            input.ShopId,
		BusinessId:        utils.NilIfEmpty(input.BusinessId),
	}
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func GetInventory(ctx context.Context, id string) (*Inventory, error) {
	db := config.GetDB()
	var result Inventory

	if err := db.WithContext(ctx).Where("id = ?", id).Take(&result).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}

func GetInventoriesByShop(ctx context.Context, shopId string) ([]*Inventory, error) {
	db := config.GetDB()
	var results []*Inventory

	if err := db.WithContext(ctx).Where("shop_id = ?", shopId).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func UpdateInventory(ctx context.Context, id string, attrs map[string]interface{}) (*Inventory, error) {
	db := config.GetDB()
	var item Inventory

	if err := db.WithContext(ctx).Where("id = ?", id).Take(&item).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := db.WithContext(ctx).Model(&item).Updates(attrs).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func DeleteInventory(ctx context.Context, id string) error {
	db := config.GetDB()

	res := db.WithContext(ctx).Where("id = ?", id).Delete(&Inventory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}
